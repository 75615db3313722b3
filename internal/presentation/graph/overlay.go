package graph

import "github.com/aretw0/strumyk/pkg/domain"

// Overlay contains run and analysis data to highlight on the graph.
type Overlay struct {
	Fired   []string // transitions that fired at least once
	Marked  []string // places holding tokens at the end of the run
	OffPath []string // nodes not on a source-to-sink path
}

// FromResult builds an overlay from a finished run.
func FromResult(r *domain.RunResult) *Overlay {
	if r == nil {
		return nil
	}
	return &Overlay{
		Fired:  dedupe(r.Trace),
		Marked: r.FinalMarking.Marked(),
	}
}

// WithOffPath returns a copy of o that also marks ids as off-path.
// It accepts a nil receiver.
func (o *Overlay) WithOffPath(ids []string) *Overlay {
	out := &Overlay{}
	if o != nil {
		*out = *o
	}
	out.OffPath = ids
	return out
}

func (o *Overlay) sets() (fired, marked, offPath map[string]bool) {
	if o == nil {
		return nil, nil, nil
	}
	return toSet(o.Fired), toSet(o.Marked), toSet(o.OffPath)
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
