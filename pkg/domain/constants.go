package domain

// Run defaults, used when a RunConfig leaves a field unset.
const (
	DefaultStartPlace = "p_start"
	DefaultEndPlace   = "p_end"
	DefaultMaxSteps   = 1000
)
