package dsl

import (
	"fmt"
	"maps"

	"github.com/aretw0/strumyk/pkg/domain"
)

// Builder manages the net construction. Declaration order is preserved,
// which matters for transitions: it is the simulation tie-break rule.
type Builder struct {
	doc domain.NetDocument
}

// New creates a new net builder.
func New(name string) *Builder {
	return &Builder{doc: domain.NetDocument{Name: name}}
}

// Version sets the document version.
func (b *Builder) Version(v string) *Builder {
	b.doc.Version = v
	return b
}

// Variable declares the expected type of a guard variable (e.g. "bool", "[int]").
func (b *Builder) Variable(name, typ string) *Builder {
	if b.doc.Variables == nil {
		b.doc.Variables = make(map[string]string)
	}
	b.doc.Variables[name] = typ
	return b
}

// Places declares unlabeled places.
func (b *Builder) Places(ids ...string) *Builder {
	for _, id := range ids {
		b.doc.Places = append(b.doc.Places, domain.Place{ID: id})
	}
	return b
}

// Place declares a single place with a label.
func (b *Builder) Place(id, label string) *Builder {
	b.doc.Places = append(b.doc.Places, domain.Place{ID: id, Label: label})
	return b
}

// Transition declares a transition and returns its builder.
func (b *Builder) Transition(id string) *TransitionBuilder {
	b.doc.Transitions = append(b.doc.Transitions, domain.Transition{ID: id})
	return &TransitionBuilder{builder: b, index: len(b.doc.Transitions) - 1}
}

// Document returns a copy of the document built so far.
func (b *Builder) Document() domain.NetDocument {
	doc := b.doc
	doc.Variables = maps.Clone(b.doc.Variables)
	doc.Places = append([]domain.Place(nil), b.doc.Places...)
	doc.Transitions = make([]domain.Transition, len(b.doc.Transitions))
	for i, t := range b.doc.Transitions {
		t.Input = append([]string(nil), t.Input...)
		t.Output = append([]string(nil), t.Output...)
		doc.Transitions[i] = t
	}
	return doc
}

// Build compiles the document into a Net, applying structural checks.
func (b *Builder) Build() (*domain.Net, error) {
	net, err := domain.NewNet(b.Document())
	if err != nil {
		return nil, fmt.Errorf("failed to build net %q: %w", b.doc.Name, err)
	}
	return net, nil
}

// MustBuild is like Build but panics on error. Intended for tests and static nets.
func (b *Builder) MustBuild() *domain.Net {
	net, err := b.Build()
	if err != nil {
		panic(err)
	}
	return net
}

// TransitionBuilder configures the most recently declared transition.
type TransitionBuilder struct {
	builder *Builder
	index   int
}

func (tb *TransitionBuilder) t() *domain.Transition {
	return &tb.builder.doc.Transitions[tb.index]
}

// From appends input places.
func (tb *TransitionBuilder) From(places ...string) *TransitionBuilder {
	tb.t().Input = append(tb.t().Input, places...)
	return tb
}

// To appends output places.
func (tb *TransitionBuilder) To(places ...string) *TransitionBuilder {
	tb.t().Output = append(tb.t().Output, places...)
	return tb
}

// When sets the guard condition.
func (tb *TransitionBuilder) When(condition string) *TransitionBuilder {
	tb.t().Condition = condition
	return tb
}

// Label sets a human-readable label.
func (tb *TransitionBuilder) Label(label string) *TransitionBuilder {
	tb.t().Label = label
	return tb
}

// Transition declares the next transition.
func (tb *TransitionBuilder) Transition(id string) *TransitionBuilder {
	return tb.builder.Transition(id)
}

// Places declares more places.
func (tb *TransitionBuilder) Places(ids ...string) *Builder {
	return tb.builder.Places(ids...)
}

// Document returns a copy of the document built so far.
func (tb *TransitionBuilder) Document() domain.NetDocument {
	return tb.builder.Document()
}

// Build compiles the document into a Net.
func (tb *TransitionBuilder) Build() (*domain.Net, error) {
	return tb.builder.Build()
}

// MustBuild is like Build but panics on error.
func (tb *TransitionBuilder) MustBuild() *domain.Net {
	return tb.builder.MustBuild()
}
