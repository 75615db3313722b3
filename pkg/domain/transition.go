package domain

import (
	"slices"
	"strconv"
)

// Transition represents an action. Firing consumes one token from each input place
// and produces one token in each output place.
type Transition struct {
	ID    string `json:"id" yaml:"id" mapstructure:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`

	// Input and Output are ordered lists of place ids (single-token arcs).
	Input  []string `json:"input" yaml:"input" mapstructure:"input"`
	Output []string `json:"output" yaml:"output" mapstructure:"output"`

	// Condition is a boolean guard over context variables, e.g. "amount < 100 && approved".
	// If empty, the transition is unguarded.
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty" mapstructure:"condition"`
}

// Guarded reports whether the transition carries a condition.
func (t Transition) Guarded() bool {
	return t.Condition != ""
}

func (t Transition) clone() Transition {
	t.Input = slices.Clone(t.Input)
	t.Output = slices.Clone(t.Output)
	return t
}

func placeOrdinal(i int) string {
	return "place #" + strconv.Itoa(i)
}

func transitionOrdinal(i int) string {
	return "transition #" + strconv.Itoa(i)
}
