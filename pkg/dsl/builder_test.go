package dsl

import (
	"errors"
	"testing"

	"github.com/aretw0/strumyk/pkg/domain"
)

func TestBuilder_SimpleFlow(t *testing.T) {
	// 1. Build the net using DSL
	net, err := New("approval").
		Version("1").
		Places("p_start", "p_middle").
		Place("p_end", "Done").
		Transition("t1").From("p_start").To("p_middle").Label("Submit").
		Transition("t2").From("p_middle").To("p_end").When("approved").
		Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	// 2. Verify structure
	if net.Name() != "approval" || net.Version() != "1" {
		t.Errorf("unexpected metadata: %q %q", net.Name(), net.Version())
	}
	if got := net.TransitionIDs(); len(got) != 2 || got[0] != "t1" || got[1] != "t2" {
		t.Errorf("declaration order lost: %v", got)
	}

	t2, ok := net.Transition("t2")
	if !ok {
		t.Fatal("t2 missing")
	}
	if t2.Condition != "approved" {
		t.Errorf("expected condition 'approved', got %q", t2.Condition)
	}

	t1, _ := net.Transition("t1")
	if t1.Label != "Submit" {
		t.Errorf("expected label 'Submit', got %q", t1.Label)
	}
}

func TestBuilder_StructuralError(t *testing.T) {
	_, err := New("broken").
		Places("a").
		Transition("t").From("a").To("ghost").
		Build()

	if !errors.Is(err, domain.ErrStructural) {
		t.Fatalf("expected structural error, got %v", err)
	}
}

func TestBuilder_DocumentIsCopy(t *testing.T) {
	b := New("copy").Places("a", "b")
	b.Transition("t").From("a").To("b")

	doc := b.Document()
	doc.Transitions[0].Input[0] = "mutated"

	if b.Document().Transitions[0].Input[0] != "a" {
		t.Error("Document() must return an independent copy")
	}
}

func TestBuilder_MustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	New("dup").Places("a", "a").MustBuild()
}
