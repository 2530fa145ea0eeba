package dataprep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survfeat/pkg/table"
)

func TestTicketPrefix(t *testing.T) {
	tests := []struct {
		ticket string
		want   string
	}{
		{"A/5 21171", "A5"},
		{"113803", SentinelNoPrefix},
		{"PC 17599", "PC"},
		{"STON/O2. 3101282", "STONO2"},
		{"SC/Paris 2123", "SCParis"},
		{"line", "LINE"},
		{"  ", SentinelMissing},
		{"./", SentinelMissing},
	}
	for _, tt := range tests {
		t.Run(tt.ticket, func(t *testing.T) {
			assert.Equal(t, tt.want, TicketPrefix(tt.ticket))
		})
	}
}

func TestTicketFeatureDeriver_GroupSizes(t *testing.T) {
	fit := newTable(
		row{ColTicket: str("A/5 21171")},
		row{ColTicket: str("A/5 21171")},
		row{ColTicket: num(113803)},
		row{ColTicket: table.Null()},
	)
	d := NewTicketFeatureDeriver(nil)
	require.NoError(t, d.Fit(fit))
	assert.Equal(t, 2, d.GroupSize("A/5 21171"))
	assert.Equal(t, 1, d.GroupSize("113803"))
	assert.Equal(t, 1, d.GroupSize("never seen"))

	out, err := d.Transform(fit)
	require.NoError(t, err)
	assert.Equal(t, []string{"A5", "A5", SentinelNoPrefix, SentinelMissing}, []string{
		textOf(out, 0, ColTicketPrefix), textOf(out, 1, ColTicketPrefix),
		textOf(out, 2, ColTicketPrefix), textOf(out, 3, ColTicketPrefix),
	})
	assert.Equal(t, 2.0, floatAt(t, out, 0, ColTicketGroupSize))
	assert.Equal(t, 1.0, floatAt(t, out, 2, ColTicketGroupSize))
	assert.Equal(t, 1.0, floatAt(t, out, 3, ColTicketGroupSize))
}

func TestTicketFeatureDeriver_AllowList(t *testing.T) {
	in := newTable(
		row{ColTicket: str("PC 17599")},
		row{ColTicket: str("A/5 21171")},
		row{ColTicket: str("113803")},
		row{ColTicket: table.Null()},
	)
	d := NewTicketFeatureDeriver([]string{"PC", "CA"})
	require.NoError(t, d.Fit(in))
	out, err := d.Transform(in)
	require.NoError(t, err)
	assert.Equal(t, "PC", textOf(out, 0, ColTicketPrefix))
	assert.Equal(t, SentinelRare, textOf(out, 1, ColTicketPrefix))
	assert.Equal(t, SentinelRare, textOf(out, 2, ColTicketPrefix))
	assert.Equal(t, SentinelMissing, textOf(out, 3, ColTicketPrefix))
}
