// Package pipeline composes the feature stages into one fit/transform unit.
package pipeline

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"survfeat/pkg/metrics"
	"survfeat/pkg/table"
)

var (
	// ErrNotFitted is returned by Transform before a successful Fit.
	ErrNotFitted = errors.New("pipeline: not fitted")
	// ErrUnknownPreset is returned for a preset name other than base or rich.
	ErrUnknownPreset = errors.New("pipeline: unknown preset")
)

// DefaultDrop lists the identifier columns removed at the end of Transform.
var DefaultDrop = []string{"PassengerId", "Name", "Ticket", "Cabin"}

// Stage is one fit/transform unit over a shared table.
type Stage interface {
	Name() string
	Requires() []string
	Provides() []string
	// Fit learns the stage state, replacing any previous state.
	Fit(t *table.Table) error
	// Apply transforms t in place using the learned state.
	Apply(t *table.Table) error
	// Transform returns a transformed copy of t.
	Transform(t *table.Table) (*table.Table, error)
}

// Pipeline chains stages in a fixed order.
type Pipeline struct {
	stages  []Stage
	drop    []string
	log     *zap.Logger
	metrics *metrics.Collector
	fitted  bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger; the default discards output.
func WithLogger(l *zap.Logger) Option { return func(p *Pipeline) { p.log = l } }

// WithMetrics records stage timings and row counts on c.
func WithMetrics(c *metrics.Collector) Option { return func(p *Pipeline) { p.metrics = c } }

// WithDrop replaces the identifier columns dropped by Transform.
func WithDrop(cols ...string) Option {
	return func(p *Pipeline) { p.drop = append([]string(nil), cols...) }
}

// New returns an unfitted pipeline over stages.
func New(stages []Stage, opts ...Option) *Pipeline {
	p := &Pipeline{
		stages: stages,
		drop:   append([]string(nil), DefaultDrop...),
		log:    zap.NewNop(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Stages returns the stages in execution order.
func (p *Pipeline) Stages() []Stage { return append([]Stage(nil), p.stages...) }

// Fitted reports whether Fit has completed successfully.
func (p *Pipeline) Fitted() bool { return p.fitted }

// Fit learns every stage's state. Stages are fitted on a private copy of t
// that each fitted stage is applied to before the next stage is fitted, so
// later stages learn from imputed and derived columns. t is not modified.
func (p *Pipeline) Fit(t *table.Table) error {
	p.fitted = false
	if err := p.Schema().Check(t); err != nil {
		return err
	}
	work := t.Clone()
	for _, s := range p.stages {
		timer := metrics.NewTimer()
		if err := s.Fit(work); err != nil {
			return fmt.Errorf("fit %s: %w", s.Name(), err)
		}
		if err := s.Apply(work); err != nil {
			return fmt.Errorf("fit %s: %w", s.Name(), err)
		}
		elapsed := timer.Stop()
		p.log.Debug("stage fitted", zap.String("stage", s.Name()), zap.Duration("elapsed", elapsed))
		if p.metrics != nil {
			p.metrics.ObserveStage(s.Name(), metrics.PhaseFit, elapsed)
		}
	}
	p.fitted = true
	if p.metrics != nil {
		p.metrics.AddRows(metrics.PhaseFit, t.Len())
	}
	p.log.Info("pipeline fitted", zap.Int("rows", t.Len()), zap.Int("stages", len(p.stages)))
	return nil
}

// Transform applies every stage in order to a copy of t and drops the
// identifier columns. t is not modified; concurrent calls are safe once fitted.
func (p *Pipeline) Transform(t *table.Table) (*table.Table, error) {
	if !p.fitted {
		return nil, ErrNotFitted
	}
	if err := p.Schema().Check(t); err != nil {
		return nil, err
	}
	out := t.Clone()
	for _, s := range p.stages {
		timer := metrics.NewTimer()
		if err := s.Apply(out); err != nil {
			return nil, fmt.Errorf("transform %s: %w", s.Name(), err)
		}
		elapsed := timer.Stop()
		p.log.Debug("stage applied", zap.String("stage", s.Name()), zap.Duration("elapsed", elapsed))
		if p.metrics != nil {
			p.metrics.ObserveStage(s.Name(), metrics.PhaseTransform, elapsed)
		}
	}
	out.Drop(p.drop...)

	if p.metrics != nil {
		p.metrics.AddRows(metrics.PhaseTransform, out.Len())
		for _, c := range out.Columns() {
			p.metrics.SetMissing(c, metrics.PhaseTransform, out.MissingCount(c))
		}
	}
	return out, nil
}

// FitTransform fits on t and returns its transform.
func (p *Pipeline) FitTransform(t *table.Table) (*table.Table, error) {
	if err := p.Fit(t); err != nil {
		return nil, err
	}
	return p.Transform(t)
}
