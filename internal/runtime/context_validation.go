package runtime

import (
	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/aretw0/strumyk/pkg/schema"
)

// validateConfig rejects a run before any step when the start or end place is
// not declared, the step cap is not positive, or the context does not match the
// net's declared variable types.
func validateConfig(net *domain.Net, cfg domain.RunConfig) error {
	if !net.HasPlace(cfg.StartPlace) {
		return &domain.InvalidRunConfigurationError{
			Field:  "start_place",
			Value:  cfg.StartPlace,
			Reason: "is not a declared place",
		}
	}
	if !net.HasPlace(cfg.EndPlace) {
		return &domain.InvalidRunConfigurationError{
			Field:  "end_place",
			Value:  cfg.EndPlace,
			Reason: "is not a declared place",
		}
	}
	if cfg.MaxSteps < 1 {
		return &domain.InvalidRunConfigurationError{
			Field:  "max_steps",
			Value:  cfg.MaxSteps,
			Reason: "must be at least 1",
		}
	}
	return validateContext(net, cfg.Context)
}

func validateContext(net *domain.Net, vars domain.Context) error {
	declared := net.Variables()
	if len(declared) == 0 {
		return nil
	}

	s, err := schema.ParseTypeMap(declared)
	if err != nil {
		return &domain.InvalidRunConfigurationError{
			Field:  "variables",
			Value:  declared,
			Reason: err.Error(),
		}
	}
	if err := schema.Validate(s, vars); err != nil {
		return &domain.InvalidRunConfigurationError{
			Field:  "context",
			Value:  map[string]any(vars),
			Reason: err.Error(),
		}
	}
	return nil
}
