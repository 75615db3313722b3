package domain

import (
	"maps"
	"slices"
	"sort"
)

// NodeKind distinguishes the two node types of a net graph.
type NodeKind string

const (
	// NodePlace is a passive node that holds tokens in a marking.
	NodePlace NodeKind = "place"
	// NodeTransition is an active node that moves tokens when it fires.
	NodeTransition NodeKind = "transition"
)

// Place represents a process state. Its token count lives in a Marking, not here.
type Place struct {
	ID    string `json:"id" yaml:"id" mapstructure:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
}

// NetDocument is the decoded form of a net description, before any structural checks.
// It mirrors the on-disk document layout (YAML or JSON).
type NetDocument struct {
	Name        string       `json:"net,omitempty" yaml:"net,omitempty" mapstructure:"net"`
	Version     string       `json:"version,omitempty" yaml:"version,omitempty" mapstructure:"version"`
	Label       string       `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
	Places      []Place      `json:"places" yaml:"places" mapstructure:"places"`
	Transitions []Transition `json:"transitions" yaml:"transitions" mapstructure:"transitions"`

	// Variables optionally declares guard variable types, e.g. {"approved": "bool"}.
	Variables map[string]string `json:"variables,omitempty" yaml:"variables,omitempty" mapstructure:"variables"`
}

// Net is the immutable, validated-shape model shared read-only by the validator and the engine.
// Use NewNet to build one; the zero value is an empty net.
type Net struct {
	name        string
	version     string
	label       string
	variables   map[string]string
	places      []Place
	transitions []Transition

	placeIndex      map[string]int
	transitionIndex map[string]int
}

// NewNet builds a Net from a decoded document.
// It returns a *StructuralError listing every duplicate id, id collision, empty id
// and dangling arc reference found in the document.
func NewNet(doc NetDocument) (*Net, error) {
	net := &Net{
		name:            doc.Name,
		version:         doc.Version,
		label:           doc.Label,
		variables:       maps.Clone(doc.Variables),
		places:          make([]Place, 0, len(doc.Places)),
		transitions:     make([]Transition, 0, len(doc.Transitions)),
		placeIndex:      make(map[string]int, len(doc.Places)),
		transitionIndex: make(map[string]int, len(doc.Transitions)),
	}

	var issues []StructuralIssue

	for i, p := range doc.Places {
		if p.ID == "" {
			issues = append(issues, StructuralIssue{Kind: IssueEmptyID, Detail: placeOrdinal(i)})
			continue
		}
		if _, dup := net.placeIndex[p.ID]; dup {
			issues = append(issues, StructuralIssue{ID: p.ID, Kind: IssueDuplicatePlace})
			continue
		}
		net.placeIndex[p.ID] = len(net.places)
		net.places = append(net.places, p)
	}

	for i, t := range doc.Transitions {
		if t.ID == "" {
			issues = append(issues, StructuralIssue{Kind: IssueEmptyID, Detail: transitionOrdinal(i)})
			continue
		}
		if _, dup := net.transitionIndex[t.ID]; dup {
			issues = append(issues, StructuralIssue{ID: t.ID, Kind: IssueDuplicateTransition})
			continue
		}
		if _, clash := net.placeIndex[t.ID]; clash {
			issues = append(issues, StructuralIssue{ID: t.ID, Kind: IssueIDCollision})
			continue
		}
		net.transitionIndex[t.ID] = len(net.transitions)
		net.transitions = append(net.transitions, t.clone())
	}

	// Arc endpoints are checked after all ids are known. Arcs carry weight one,
	// so a place may appear at most once per input or output list.
	for _, t := range net.transitions {
		issues = append(issues, net.arcIssues(t.Input, "input of "+t.ID)...)
		issues = append(issues, net.arcIssues(t.Output, "output of "+t.ID)...)
	}

	if len(issues) > 0 {
		sortIssues(issues)
		return nil, &StructuralError{Issues: issues}
	}
	return net, nil
}

func (n *Net) arcIssues(places []string, detail string) []StructuralIssue {
	var issues []StructuralIssue
	seen := make(map[string]bool, len(places))
	for _, p := range places {
		if _, ok := n.placeIndex[p]; !ok {
			issues = append(issues, StructuralIssue{ID: p, Kind: IssueDanglingReference, Detail: detail})
		}
		if seen[p] {
			issues = append(issues, StructuralIssue{ID: p, Kind: IssueDuplicateArc, Detail: detail})
		}
		seen[p] = true
	}
	return issues
}

// Name returns the optional net name from the document.
func (n *Net) Name() string { return n.name }

// Version returns the optional document version.
func (n *Net) Version() string { return n.version }

// Label returns the optional human-readable title.
func (n *Net) Label() string { return n.label }

// Variables returns the declared guard variable types, if any.
func (n *Net) Variables() map[string]string { return maps.Clone(n.variables) }

// Places returns the declared places in declaration order.
func (n *Net) Places() []Place {
	return slices.Clone(n.places)
}

// Transitions returns the declared transitions in declaration order.
// Declaration order is the simulation tie-break rule.
func (n *Net) Transitions() []Transition {
	out := make([]Transition, len(n.transitions))
	for i, t := range n.transitions {
		out[i] = t.clone()
	}
	return out
}

// PlaceIDs returns all place ids, sorted.
func (n *Net) PlaceIDs() []string {
	ids := make([]string, 0, len(n.places))
	for _, p := range n.places {
		ids = append(ids, p.ID)
	}
	sort.Strings(ids)
	return ids
}

// TransitionIDs returns all transition ids in declaration order.
func (n *Net) TransitionIDs() []string {
	ids := make([]string, 0, len(n.transitions))
	for _, t := range n.transitions {
		ids = append(ids, t.ID)
	}
	return ids
}

// HasPlace reports whether id is a declared place.
func (n *Net) HasPlace(id string) bool {
	_, ok := n.placeIndex[id]
	return ok
}

// HasTransition reports whether id is a declared transition.
func (n *Net) HasTransition(id string) bool {
	_, ok := n.transitionIndex[id]
	return ok
}

// Kind reports whether id names a place or a transition.
func (n *Net) Kind(id string) (NodeKind, bool) {
	if n.HasPlace(id) {
		return NodePlace, true
	}
	if n.HasTransition(id) {
		return NodeTransition, true
	}
	return "", false
}

// Transition looks up a transition by id.
func (n *Net) Transition(id string) (Transition, bool) {
	i, ok := n.transitionIndex[id]
	if !ok {
		return Transition{}, false
	}
	return n.transitions[i].clone(), true
}

// Document converts the net back into its decoded document form.
func (n *Net) Document() NetDocument {
	return NetDocument{
		Name:        n.name,
		Version:     n.version,
		Label:       n.label,
		Variables:   n.Variables(),
		Places:      n.Places(),
		Transitions: n.Transitions(),
	}
}
