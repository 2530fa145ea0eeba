package pipeline

import (
	"survfeat/pkg/table"
)

// Schema describes the columns a pipeline reads from its input and the
// columns its stages derive.
type Schema struct {
	// Inputs are required columns no earlier stage provides.
	Inputs []string
	// Derived are columns written by some stage, in stage order.
	Derived []string
}

// Schema walks the stages in order and collects their column contracts.
func (p *Pipeline) Schema() Schema {
	var s Schema
	provided := map[string]bool{}
	inputs := map[string]bool{}
	for _, st := range p.stages {
		for _, c := range st.Requires() {
			if !provided[c] && !inputs[c] {
				inputs[c] = true
				s.Inputs = append(s.Inputs, c)
			}
		}
		for _, c := range st.Provides() {
			if !provided[c] {
				provided[c] = true
				s.Derived = append(s.Derived, c)
			}
		}
	}
	return s
}

// Check returns one error wrapping table.ErrMissingColumn for every input
// column absent from t.
func (s Schema) Check(t *table.Table) error {
	return t.Require(s.Inputs...)
}
