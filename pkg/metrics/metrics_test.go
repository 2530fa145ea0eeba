package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.AddRows(PhaseFit, 3)
	c.AddRows(PhaseFit, 2)
	c.SetMissing("Age", PhaseTransform, 4)
	c.ObserveStage("fare", PhaseFit, 2*time.Millisecond)

	assert.Equal(t, 5.0, testutil.ToFloat64(c.rows.WithLabelValues(PhaseFit)))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.missing.WithLabelValues("Age", PhaseTransform)))
	assert.Equal(t, 1, testutil.CollectAndCount(c.stageDuration))
}

func TestWriteTextfile(t *testing.T) {
	c := NewCollector()
	c.AddRows(PhaseTransform, 7)

	path := filepath.Join(t.TempDir(), "survfeat.prom")
	require.NoError(t, c.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `survfeat_rows_total{phase="transform"} 7`)
}

func TestTimer(t *testing.T) {
	timer := NewTimer()
	assert.GreaterOrEqual(t, timer.Stop(), time.Duration(0))
}
