package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/strumyk"
	"github.com/aretw0/strumyk/internal/presentation/tui"
	"github.com/aretw0/strumyk/pkg/domain"
)

// ExitIncomplete is the exit code of a run that deadlocked or hit the step cap.
const ExitIncomplete = 2

// SimulateOptions configures Simulate. Zero values fall back to the engine's run defaults.
type SimulateOptions struct {
	Net         string // file path, "-" or catalog name
	Context     string // inline JSON or YAML object
	ContextFile string
	StartPlace  string
	EndPlace    string
	MaxSteps    int
	Format      string
}

// Simulate runs the net once and writes the report to out.
// A run that ends without marking the end place returns an ExitError with ExitIncomplete.
func Simulate(ctx context.Context, eng *strumyk.Engine, out io.Writer, opts SimulateOptions) (*domain.RunResult, error) {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if err := checkFormat(opts.Format); err != nil {
		return nil, err
	}
	if opts.Net == "-" && opts.ContextFile == "-" {
		return nil, fmt.Errorf("net and context cannot both be read from stdin")
	}

	vars, err := loadContext(opts.Context, opts.ContextFile, os.Stdin)
	if err != nil {
		return nil, err
	}

	net, err := resolveNet(ctx, eng, opts.Net, os.Stdin)
	if err != nil {
		return nil, err
	}

	res, err := eng.Simulate(ctx, net, domain.RunConfig{
		Context:    vars,
		StartPlace: opts.StartPlace,
		EndPlace:   opts.EndPlace,
		MaxSteps:   opts.MaxSteps,
	})
	if err != nil && res == nil {
		return nil, err
	}
	saveErr := err

	if err := writeRun(out, res, opts.Format); err != nil {
		return res, err
	}
	if saveErr != nil {
		return res, saveErr
	}

	if !res.Completed() {
		return res, &ExitError{
			Code: ExitIncomplete,
			Err:  fmt.Errorf("run %s ended %s after %d step(s)", res.ID, res.Status, res.Steps),
		}
	}
	return res, nil
}

func writeRun(out io.Writer, res *domain.RunResult, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatMarkdown:
		_, err := fmt.Fprint(out, markdown(out, tui.RunMarkdown(res)))
		return err
	}
	tui.StatusLine(out, res.Status)
	_, err := fmt.Fprint(out, tui.RunText(res))
	return err
}
