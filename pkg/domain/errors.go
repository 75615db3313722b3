package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrStructural is returned when a net document has duplicate, empty or dangling ids.
	ErrStructural = errors.New("malformed net")

	// ErrNoSource is returned when no place lacks incoming arcs.
	ErrNoSource = errors.New("no source place found (place with no incoming arcs)")

	// ErrMultipleSources is returned when more than one place lacks incoming arcs.
	ErrMultipleSources = errors.New("multiple source places found")

	// ErrNoSink is returned when no place lacks outgoing arcs.
	ErrNoSink = errors.New("no sink place found (place with no outgoing arcs)")

	// ErrMultipleSinks is returned when more than one place lacks outgoing arcs.
	ErrMultipleSinks = errors.New("multiple sink places found")

	// ErrNotOnPath is returned when some node is not on a path from the source to the sink.
	ErrNotOnPath = errors.New("not all elements are on a path from source to sink")

	// ErrInvalidRunConfiguration is returned when a run cannot start with the given configuration.
	ErrInvalidRunConfiguration = errors.New("invalid run configuration")

	// ErrGuardEvaluation marks a guard that failed to evaluate. It is never fatal to a run.
	ErrGuardEvaluation = errors.New("guard evaluation failed")

	// ErrNetNotFound is returned when a loader cannot find a net by name.
	ErrNetNotFound = errors.New("net not found")

	// ErrReportNotFound is returned when a run report ID cannot be found in the store.
	ErrReportNotFound = errors.New("run report not found")
)

// IssueKind classifies a structural defect in a net document.
type IssueKind string

const (
	IssueEmptyID             IssueKind = "empty_id"
	IssueDuplicatePlace      IssueKind = "duplicate_place"
	IssueDuplicateTransition IssueKind = "duplicate_transition"
	IssueIDCollision         IssueKind = "id_collision"
	IssueDanglingReference   IssueKind = "dangling_reference"
	IssueDuplicateArc        IssueKind = "duplicate_arc" // same place twice in one input or output list
)

// StructuralIssue is a single defect found while building a Net.
type StructuralIssue struct {
	ID     string    `json:"id,omitempty"`
	Kind   IssueKind `json:"kind"`
	Detail string    `json:"detail,omitempty"`
}

func (i StructuralIssue) String() string {
	var b strings.Builder
	b.WriteString(string(i.Kind))
	if i.ID != "" {
		b.WriteString(" '")
		b.WriteString(i.ID)
		b.WriteString("'")
	}
	if i.Detail != "" {
		b.WriteString(" (")
		b.WriteString(i.Detail)
		b.WriteString(")")
	}
	return b.String()
}

// StructuralError collects every structural issue of a net document.
type StructuralError struct {
	Issues []StructuralIssue `json:"issues"`
}

func (e *StructuralError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("%s: %s", ErrStructural, strings.Join(parts, "; "))
}

func (e *StructuralError) Unwrap() error { return ErrStructural }

func sortIssues(issues []StructuralIssue) {
	sort.SliceStable(issues, func(a, b int) bool {
		if issues[a].Kind != issues[b].Kind {
			return issues[a].Kind < issues[b].Kind
		}
		if issues[a].ID != issues[b].ID {
			return issues[a].ID < issues[b].ID
		}
		return issues[a].Detail < issues[b].Detail
	})
}

// SoundnessKind names the soundness check that failed.
type SoundnessKind string

const (
	NoSource        SoundnessKind = "no_source"
	MultipleSources SoundnessKind = "multiple_sources"
	NoSink          SoundnessKind = "no_sink"
	MultipleSinks   SoundnessKind = "multiple_sinks"
	NotOnPath       SoundnessKind = "not_on_path"
)

// SoundnessError reports the first failing soundness check and the offending ids, sorted.
type SoundnessError struct {
	Kind SoundnessKind `json:"kind"`
	IDs  []string      `json:"ids,omitempty"`
}

// NewSoundnessError copies and sorts ids so reports are deterministic.
func NewSoundnessError(kind SoundnessKind, ids []string) *SoundnessError {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	return &SoundnessError{Kind: kind, IDs: sorted}
}

func (e *SoundnessError) Error() string {
	sentinel := e.Unwrap()
	if len(e.IDs) == 0 {
		return sentinel.Error()
	}
	return fmt.Sprintf("%s: [%s]", sentinel, strings.Join(e.IDs, ", "))
}

func (e *SoundnessError) Unwrap() error {
	switch e.Kind {
	case NoSource:
		return ErrNoSource
	case MultipleSources:
		return ErrMultipleSources
	case NoSink:
		return ErrNoSink
	case MultipleSinks:
		return ErrMultipleSinks
	default:
		return ErrNotOnPath
	}
}

// InvalidRunConfigurationError explains why a run was refused before any step.
type InvalidRunConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidRunConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s=%v %s", ErrInvalidRunConfiguration, e.Field, e.Value, e.Reason)
}

func (e *InvalidRunConfigurationError) Unwrap() error { return ErrInvalidRunConfiguration }

// GuardEvaluationError wraps a failure of a single guard evaluation.
type GuardEvaluationError struct {
	TransitionID string
	Condition    string
	Step         int
	Err          error
}

func (e *GuardEvaluationError) Error() string {
	return fmt.Sprintf("guard of transition '%s' (%q) failed at step %d: %v", e.TransitionID, e.Condition, e.Step, e.Err)
}

func (e *GuardEvaluationError) Unwrap() []error { return []error{ErrGuardEvaluation, e.Err} }
