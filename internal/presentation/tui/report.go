// Package tui formats validation and run reports for terminals.
package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/strumyk/pkg/domain"
)

// ValidationReport is what the markdown validation report shows.
type ValidationReport struct {
	Net      string
	Sources  []string
	Sinks    []string
	OffPath  []string
	Err      error
	Warnings map[string]error // guard compile failures by transition id
}

// ValidationMarkdown renders r as a Markdown document.
func ValidationMarkdown(r ValidationReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Soundness: %s\n\n", nameOr(r.Net))
	if r.Err == nil {
		sb.WriteString("**Verdict:** sound\n\n")
	} else {
		fmt.Fprintf(&sb, "**Verdict:** not sound\n\n> %s\n\n", r.Err)
	}

	sb.WriteString("| Check | Result |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Sources | %s |\n", list(r.Sources))
	fmt.Fprintf(&sb, "| Sinks | %s |\n", list(r.Sinks))
	fmt.Fprintf(&sb, "| Off path | %s |\n", list(r.OffPath))

	if len(r.Warnings) > 0 {
		sb.WriteString("\n## Guard warnings\n\n")
		for _, id := range sortedKeys(r.Warnings) {
			fmt.Fprintf(&sb, "- `%s`: %s\n", id, r.Warnings[id])
		}
	}
	return sb.String()
}

// RunMarkdown renders a simulation result as a Markdown document.
func RunMarkdown(r *domain.RunResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Simulation: %s\n\n", nameOr(r.Net))
	fmt.Fprintf(&sb, "**Status:** %s  \n", r.Status)
	fmt.Fprintf(&sb, "**Run:** `%s`  \n", r.ID)
	fmt.Fprintf(&sb, "**Steps:** %d of %d (`%s` → `%s`)\n\n", r.Steps, r.MaxSteps, r.StartPlace, r.EndPlace)

	sb.WriteString("## Trace\n\n")
	if len(r.Trace) == 0 {
		sb.WriteString("_no transition fired_\n")
	}
	for i, id := range r.Trace {
		fmt.Fprintf(&sb, "%d. `%s`\n", i+1, id)
	}

	sb.WriteString("\n## Final marking\n\n| Place | Tokens |\n|---|---|\n")
	for _, id := range sortedKeys(r.FinalMarking) {
		if n := r.FinalMarking[id]; n > 0 {
			fmt.Fprintf(&sb, "| `%s` | %d |\n", id, n)
		}
	}

	if len(r.GuardFailures) > 0 {
		sb.WriteString("\n## Guard failures\n\n")
		for _, f := range r.GuardFailures {
			fmt.Fprintf(&sb, "- step %d, `%s` (`%s`): %s\n", f.Step, f.TransitionID, f.Condition, f.Error)
		}
	}
	return sb.String()
}

// RunText renders a compact plain-text summary.
func RunText(r *domain.RunResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "status: %s\n", r.Status)
	fmt.Fprintf(&sb, "steps:  %d\n", r.Steps)
	fmt.Fprintf(&sb, "trace:  %s\n", strings.Join(r.Trace, " -> "))
	fmt.Fprintf(&sb, "marked: %s\n", strings.Join(r.FinalMarking.Marked(), ", "))
	for _, f := range r.GuardFailures {
		fmt.Fprintf(&sb, "guard:  step %d %s: %s\n", f.Step, f.TransitionID, f.Error)
	}
	return sb.String()
}

func nameOr(name string) string {
	if name == "" {
		return "(unnamed net)"
	}
	return name
}

func list(ids []string) string {
	if len(ids) == 0 {
		return "none"
	}
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = "`" + id + "`"
	}
	return strings.Join(quoted, ", ")
}
