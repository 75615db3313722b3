package http

import "github.com/aretw0/strumyk/pkg/domain"

// NetRequest names the net to work on: an inline Document (YAML or JSON text)
// takes precedence over Name, which is looked up in the catalog.
type NetRequest struct {
	Document string `json:"document,omitempty"`
	Name     string `json:"name,omitempty"`
}

// SyntaxRequest is the body of POST /syntax.
type SyntaxRequest struct {
	Document string         `json:"document"`
	Schema   map[string]any `json:"schema,omitempty"`
}

// SyntaxResponse lists every schema violation.
type SyntaxResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// SimulateRequest is the body of POST /simulate.
type SimulateRequest struct {
	NetRequest
	Context    map[string]any `json:"context,omitempty"`
	StartPlace string         `json:"start_place,omitempty"`
	EndPlace   string         `json:"end_place,omitempty"`
	MaxSteps   int            `json:"max_steps,omitempty"`
}

// RunConfig maps the request onto the engine configuration.
func (r SimulateRequest) RunConfig() domain.RunConfig {
	return domain.RunConfig{
		Context:    domain.Context(r.Context),
		StartPlace: r.StartPlace,
		EndPlace:   r.EndPlace,
		MaxSteps:   r.MaxSteps,
	}
}

// GraphRequest is the body of POST /graph.
type GraphRequest struct {
	NetRequest
	RunID string `json:"run_id,omitempty"`
}

// GraphParams are the query parameters of POST /graph.
type GraphParams struct {
	Format *string `form:"format,omitempty" json:"format,omitempty"`
}

// ListRunsParams are the query parameters of GET /runs.
type ListRunsParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// ValidationResponse is the verdict of POST /validate.
type ValidationResponse struct {
	Net           string            `json:"net,omitempty"`
	Sound         bool              `json:"sound"`
	Error         *ErrorResponse    `json:"error,omitempty"`
	Sources       []string          `json:"sources"`
	Sinks         []string          `json:"sinks"`
	OffPath       []string          `json:"off_path,omitempty"`
	GuardWarnings map[string]string `json:"guard_warnings,omitempty"`
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Message string   `json:"message"`
	Kind    string   `json:"kind,omitempty"`
	IDs     []string `json:"ids,omitempty"`
	Field   string   `json:"field,omitempty"`
	Issues  []string `json:"issues,omitempty"`
}
