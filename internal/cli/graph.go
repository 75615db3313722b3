package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/strumyk"
	"github.com/aretw0/strumyk/pkg/domain"
)

// GraphOptions configures Graph.
type GraphOptions struct {
	Net    string // file path, "-" or catalog name
	Format string // mermaid, dot, svg or png

	// Trace overlays a fresh run using the simulate settings below.
	Trace    bool
	Simulate SimulateOptions

	// RunID overlays a stored run instead.
	RunID string
}

// Graph writes the net in the requested format, optionally highlighting a run.
func Graph(ctx context.Context, eng *strumyk.Engine, out io.Writer, opts GraphOptions) error {
	if opts.Trace && opts.RunID != "" {
		return fmt.Errorf("--trace and --run cannot be used together")
	}

	net, err := resolveNet(ctx, eng, opts.Net, os.Stdin)
	if err != nil {
		return err
	}

	var result *domain.RunResult
	switch {
	case opts.RunID != "":
		if result, err = eng.Report(ctx, opts.RunID); err != nil {
			return fmt.Errorf("run %s: %w", opts.RunID, err)
		}
	case opts.Trace:
		s := opts.Simulate
		vars, err := loadContext(s.Context, s.ContextFile, os.Stdin)
		if err != nil {
			return err
		}
		result, err = eng.Simulate(ctx, net, domain.RunConfig{
			Context:    vars,
			StartPlace: s.StartPlace,
			EndPlace:   s.EndPlace,
			MaxSteps:   s.MaxSteps,
		})
		if err != nil && result == nil {
			return err
		}
	}

	return eng.Render(out, net, result, opts.Format)
}
