package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/strumyk"
	"github.com/aretw0/strumyk/internal/compiler"
	"github.com/aretw0/strumyk/internal/presentation/tui"
	"github.com/aretw0/strumyk/pkg/domain"
)

// Output formats shared by the report commands.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// ErrUnknownFormat is returned for an unsupported --format value.
var ErrUnknownFormat = errors.New("unknown output format")

// ExitError carries a process exit code alongside the error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	return 1
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// resolveNet compiles the net named by arg: a file path (or "-" for stdin)
// when one exists, a catalog name otherwise.
func resolveNet(ctx context.Context, eng *strumyk.Engine, arg string, stdin io.Reader) (*domain.Net, error) {
	if arg == "-" {
		data, err := readInput(arg, stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return eng.Compile(ctx, "", data)
	}

	if _, err := os.Stat(arg); err == nil {
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", arg, err)
		}
		return eng.Compile(ctx, sourceName(arg), data)
	}

	net, err := eng.Load(ctx, arg)
	if errors.Is(err, strumyk.ErrNoLoader) {
		return nil, fmt.Errorf("%s: no such file (and no catalog configured)", arg)
	}
	return net, err
}

func sourceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// loadContext merges the run context from a file and an inline JSON/YAML
// object; inline keys win.
func loadContext(inline, path string, stdin io.Reader) (domain.Context, error) {
	vars := domain.Context{}
	if path != "" {
		data, err := readInput(path, stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read context file: %w", err)
		}
		fromFile, err := compiler.ParseContext(data)
		if err != nil {
			return nil, err
		}
		for k, v := range fromFile {
			vars[k] = v
		}
	}
	if inline != "" {
		fromArg, err := compiler.ParseContext([]byte(inline))
		if err != nil {
			return nil, err
		}
		for k, v := range fromArg {
			vars[k] = v
		}
	}
	return vars, nil
}

// markdown renders md through glamour when out is a terminal.
func markdown(out io.Writer, md string) string {
	if f, ok := out.(*os.File); ok {
		return tui.RenderIfTerminal(f, md)
	}
	return md
}

func checkFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatMarkdown:
		return nil
	}
	return fmt.Errorf("%w %q (want text, json or markdown)", ErrUnknownFormat, format)
}
