// Package validator checks the soundness axioms of a workflow net: a unique source
// place, a unique sink place, and every node lying on some path from source to sink.
package validator

import (
	"log/slog"
	"sort"

	"github.com/aretw0/strumyk/internal/logging"
	"github.com/aretw0/strumyk/pkg/domain"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// Validator runs the soundness checks. The zero value is not usable; use New.
type Validator struct {
	logger *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used for check tracing.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		v.logger = l
	}
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks the three axioms in order and returns the first violation
// as a *domain.SoundnessError, or nil when the net is sound.
func Validate(net *domain.Net) error {
	return New().Validate(net)
}

// Validate checks the three axioms in order and returns the first violation
// as a *domain.SoundnessError, or nil when the net is sound.
func (v *Validator) Validate(net *domain.Net) error {
	sources := Sources(net)
	switch len(sources) {
	case 0:
		return v.fail(net, domain.NewSoundnessError(domain.NoSource, nil))
	case 1:
	default:
		return v.fail(net, domain.NewSoundnessError(domain.MultipleSources, sources))
	}

	sinks := Sinks(net)
	switch len(sinks) {
	case 0:
		return v.fail(net, domain.NewSoundnessError(domain.NoSink, nil))
	case 1:
	default:
		return v.fail(net, domain.NewSoundnessError(domain.MultipleSinks, sinks))
	}

	if off := offPath(net, sources[0], sinks[0]); len(off) > 0 {
		return v.fail(net, domain.NewSoundnessError(domain.NotOnPath, off))
	}

	v.logger.Debug("net is sound", logging.Net(net.Name()),
		slog.String("source", sources[0]), slog.String("sink", sinks[0]))
	return nil
}

func (v *Validator) fail(net *domain.Net, err *domain.SoundnessError) error {
	v.logger.Debug("soundness check failed", logging.Net(net.Name()),
		slog.String("kind", string(err.Kind)), slog.Any("ids", err.IDs))
	return err
}

// Sources returns the places that no transition outputs to, sorted.
func Sources(net *domain.Net) []string {
	produced := make(map[string]bool)
	for _, t := range net.Transitions() {
		for _, p := range t.Output {
			produced[p] = true
		}
	}
	return without(net.PlaceIDs(), produced)
}

// Sinks returns the places that no transition consumes from, sorted.
func Sinks(net *domain.Net) []string {
	consumed := make(map[string]bool)
	for _, t := range net.Transitions() {
		for _, p := range t.Input {
			consumed[p] = true
		}
	}
	return without(net.PlaceIDs(), consumed)
}

func without(ids []string, exclude map[string]bool) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !exclude[id] {
			out = append(out, id)
		}
	}
	return out
}

// Analysis is a read-only summary of the net's structure, used by reports and graph overlays.
type Analysis struct {
	Sources  []string `json:"sources"`
	Sinks    []string `json:"sinks"`
	Forward  []string `json:"forward,omitempty"`  // reachable from the unique source
	Backward []string `json:"backward,omitempty"` // able to reach the unique sink
	OffPath  []string `json:"off_path,omitempty"`
}

// Analyze computes sources and sinks, and reachability when both are unique.
// All lists are sorted.
func Analyze(net *domain.Net) Analysis {
	a := Analysis{Sources: Sources(net), Sinks: Sinks(net)}
	if len(a.Sources) != 1 || len(a.Sinks) != 1 {
		return a
	}

	r := newReachability(net)
	fwd := r.forward(a.Sources[0])
	bwd := r.backward(a.Sinks[0])
	a.Forward = keys(fwd)
	a.Backward = keys(bwd)
	a.OffPath = r.outside(fwd, bwd)
	return a
}

func offPath(net *domain.Net, source, sink string) []string {
	r := newReachability(net)
	return r.outside(r.forward(source), r.backward(sink))
}

// reachability indexes every place and transition as a gonum node. Arcs go
// place->transition for inputs and transition->place for outputs; the reversed
// graph carries the same nodes with every arc flipped.
type reachability struct {
	ids      []string
	index    map[string]int64
	graph    *simple.DirectedGraph
	reversed *simple.DirectedGraph
}

func newReachability(net *domain.Net) *reachability {
	r := &reachability{
		index:    make(map[string]int64),
		graph:    simple.NewDirectedGraph(),
		reversed: simple.NewDirectedGraph(),
	}

	add := func(id string) {
		n := simple.Node(len(r.ids))
		r.index[id] = n.ID()
		r.ids = append(r.ids, id)
		r.graph.AddNode(n)
		r.reversed.AddNode(n)
	}
	for _, p := range net.Places() {
		add(p.ID)
	}
	transitions := net.Transitions()
	for _, t := range transitions {
		add(t.ID)
	}

	arc := func(from, to string) {
		f, t := simple.Node(r.index[from]), simple.Node(r.index[to])
		r.graph.SetEdge(simple.Edge{F: f, T: t})
		r.reversed.SetEdge(simple.Edge{F: t, T: f})
	}
	for _, t := range transitions {
		for _, p := range t.Input {
			arc(p, t.ID)
		}
		for _, p := range t.Output {
			arc(t.ID, p)
		}
	}
	return r
}

func (r *reachability) forward(from string) map[string]bool {
	return r.walk(r.graph, from)
}

func (r *reachability) backward(from string) map[string]bool {
	return r.walk(r.reversed, from)
}

func (r *reachability) walk(g graph.Graph, from string) map[string]bool {
	seen := make(map[string]bool)
	start := g.Node(r.index[from])
	if start == nil {
		return seen
	}
	bf := traverse.BreadthFirst{
		Visit: func(n graph.Node) {
			seen[r.ids[n.ID()]] = true
		},
	}
	bf.Walk(g, start, nil)
	return seen
}

func (r *reachability) outside(fwd, bwd map[string]bool) []string {
	var out []string
	for _, id := range r.ids {
		if !fwd[id] || !bwd[id] {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
