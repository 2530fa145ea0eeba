package dataprep

import (
	"strings"
	"unicode"

	"survfeat/pkg/table"
)

// TicketFeatureDeriver derives TicketPrefix and TicketGroupSize, the number
// of fit-table passengers travelling on the same ticket.
type TicketFeatureDeriver struct {
	TicketColumn    string
	PrefixColumn    string
	GroupSizeColumn string
	// AllowedPrefixes, when non-empty, collapses every other prefix into Rare.
	AllowedPrefixes []string

	counts map[string]int
}

func NewTicketFeatureDeriver(allowed []string) *TicketFeatureDeriver {
	return &TicketFeatureDeriver{
		TicketColumn:    ColTicket,
		PrefixColumn:    ColTicketPrefix,
		GroupSizeColumn: ColTicketGroupSize,
		AllowedPrefixes: allowed,
	}
}

func (d *TicketFeatureDeriver) Name() string       { return "ticket" }
func (d *TicketFeatureDeriver) Requires() []string { return []string{d.TicketColumn} }
func (d *TicketFeatureDeriver) Provides() []string {
	return []string{d.PrefixColumn, d.GroupSizeColumn}
}

// Fit counts passengers per raw ticket string. Missing tickets are not counted.
func (d *TicketFeatureDeriver) Fit(t *table.Table) error {
	if err := t.Require(d.TicketColumn); err != nil {
		return err
	}
	d.counts = map[string]int{}
	for i := 0; i < t.Len(); i++ {
		if ticket, ok := textAt(t, i, d.TicketColumn); ok {
			d.counts[ticket]++
		}
	}
	return nil
}

// GroupSize returns the learned count for a ticket, 1 when unseen.
func (d *TicketFeatureDeriver) GroupSize(ticket string) int {
	if n, ok := d.counts[ticket]; ok {
		return n
	}
	return 1
}

// TicketPrefix extracts the alphabetic prefix of a raw ticket:
// "A/5 21171" -> "A5", "113803" -> "NoPrefix", "PC 17599" -> "PC".
func TicketPrefix(ticket string) string {
	cleaned := strings.TrimSpace(strings.NewReplacer("/", "", ".", "").Replace(ticket))
	parts := strings.Fields(cleaned)
	switch {
	case len(parts) == 0:
		return SentinelMissing
	case len(parts) > 1:
		return parts[0]
	case isDigits(cleaned):
		return SentinelNoPrefix
	default:
		return strings.ToUpper(cleaned)
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func (d *TicketFeatureDeriver) prefix(t *table.Table, i int) string {
	ticket, ok := textAt(t, i, d.TicketColumn)
	if !ok {
		return SentinelMissing
	}
	p := TicketPrefix(ticket)
	if len(d.AllowedPrefixes) > 0 && p != SentinelMissing && !inSet(p, d.AllowedPrefixes) {
		return SentinelRare
	}
	return p
}

func (d *TicketFeatureDeriver) Apply(t *table.Table) error {
	if err := t.Require(d.TicketColumn); err != nil {
		return err
	}
	t.AddColumn(d.PrefixColumn)
	t.AddColumn(d.GroupSizeColumn)
	for i := 0; i < t.Len(); i++ {
		t.Set(i, d.PrefixColumn, table.Str(d.prefix(t, i)))
		size := 1
		if ticket, ok := textAt(t, i, d.TicketColumn); ok {
			size = d.GroupSize(ticket)
		}
		t.Set(i, d.GroupSizeColumn, table.Num(float64(size)))
	}
	return nil
}

func (d *TicketFeatureDeriver) Transform(t *table.Table) (*table.Table, error) {
	return cloneApply(t, d.Apply)
}
