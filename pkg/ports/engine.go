package ports

import (
	"context"

	"github.com/aretw0/strumyk/pkg/domain"
)

// Toolkit is the surface the transport adapters (HTTP, MCP) drive.
// Every call is independent; nothing is shared between nets or runs.
type Toolkit interface {
	// Compile decodes a YAML or JSON document and applies structural checks.
	Compile(ctx context.Context, source string, data []byte) (*domain.Net, error)

	// Validate checks the soundness axioms and returns a *domain.SoundnessError on violation.
	Validate(ctx context.Context, net *domain.Net) error

	// Simulate runs the deterministic engine.
	Simulate(ctx context.Context, net *domain.Net, cfg domain.RunConfig) (*domain.RunResult, error)
}
