package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/strumyk"
	"github.com/aretw0/strumyk/internal/presentation/tui"
	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/aretw0/strumyk/pkg/schema"
)

// ValidateSyntax checks the document at path against the JSON Schema at
// schemaPath, or the embedded net schema when schemaPath is empty.
// Every violation is listed before the error is returned.
func ValidateSyntax(ctx context.Context, eng *strumyk.Engine, out io.Writer, path, schemaPath string) error {
	data, err := readInput(path, os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	var schemaJSON []byte
	if schemaPath != "" {
		if schemaJSON, err = os.ReadFile(schemaPath); err != nil {
			return fmt.Errorf("failed to read schema: %w", err)
		}
	}

	err = eng.CheckSyntax(ctx, data, schemaJSON)
	if err == nil {
		tui.Verdict(out, true, fmt.Sprintf("%s: syntax valid", path))
		return nil
	}

	issues := schema.ValidationErrors(err)
	if len(issues) == 0 {
		tui.Verdict(out, false, fmt.Sprintf("%s: %v", path, err))
		return &ExitError{Code: 1, Err: err}
	}
	tui.Verdict(out, false, fmt.Sprintf("%s: %d syntax error(s)", path, len(issues)))
	for _, issue := range issues {
		fmt.Fprintf(out, "  - %v\n", issue)
	}
	return &ExitError{Code: 1, Err: fmt.Errorf("%s: syntax invalid", path)}
}

// ValidateOptions configures ValidateSemantic.
type ValidateOptions struct {
	Net    string // file path, "-" or catalog name
	Format string
}

// ValidateSemantic compiles the net and checks the soundness axioms.
// Guard compile failures are reported as warnings and do not fail the check.
func ValidateSemantic(ctx context.Context, eng *strumyk.Engine, out io.Writer, opts ValidateOptions) error {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if err := checkFormat(opts.Format); err != nil {
		return err
	}

	net, err := resolveNet(ctx, eng, opts.Net, os.Stdin)
	if err != nil {
		return err
	}

	verdict := eng.Validate(ctx, net)
	analysis := eng.Analyze(net)
	warnings := eng.CheckGuards(net)

	switch opts.Format {
	case FormatJSON:
		report := jsonValidation{
			Net:     net.Name(),
			Sound:   verdict == nil,
			Sources: analysis.Sources,
			Sinks:   analysis.Sinks,
			OffPath: analysis.OffPath,
		}
		var se *domain.SoundnessError
		if errors.As(verdict, &se) {
			report.Kind = string(se.Kind)
			report.IDs = se.IDs
		}
		if verdict != nil {
			report.Error = verdict.Error()
		}
		if len(warnings) > 0 {
			report.GuardWarnings = make(map[string]string, len(warnings))
			for id, w := range warnings {
				report.GuardWarnings[id] = w.Error()
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	case FormatMarkdown:
		fmt.Fprint(out, markdown(out, tui.ValidationMarkdown(tui.ValidationReport{
			Net:      net.Name(),
			Sources:  analysis.Sources,
			Sinks:    analysis.Sinks,
			OffPath:  analysis.OffPath,
			Err:      verdict,
			Warnings: warnings,
		})))
	default:
		if verdict == nil {
			tui.Verdict(out, true, fmt.Sprintf("%s is sound", netLabel(net)))
		} else {
			tui.Verdict(out, false, fmt.Sprintf("%s: %v", netLabel(net), verdict))
		}
		for _, id := range sortedIDs(warnings) {
			fmt.Fprintf(out, "  warning: transition %s: %v\n", id, warnings[id])
		}
	}

	if verdict != nil {
		return &ExitError{Code: 1, Err: verdict}
	}
	return nil
}

type jsonValidation struct {
	Net           string            `json:"net,omitempty"`
	Sound         bool              `json:"sound"`
	Kind          string            `json:"kind,omitempty"`
	IDs           []string          `json:"ids,omitempty"`
	Error         string            `json:"error,omitempty"`
	Sources       []string          `json:"sources"`
	Sinks         []string          `json:"sinks"`
	OffPath       []string          `json:"off_path,omitempty"`
	GuardWarnings map[string]string `json:"guard_warnings,omitempty"`
}

func netLabel(net *domain.Net) string {
	if net.Name() == "" {
		return "net"
	}
	return net.Name()
}
