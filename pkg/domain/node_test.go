package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linearDoc() domain.NetDocument {
	return domain.NetDocument{
		Name:   "linear",
		Places: []domain.Place{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}},
		Transitions: []domain.Transition{
			{ID: "t1", Input: []string{"p1"}, Output: []string{"p2"}},
			{ID: "t2", Input: []string{"p2"}, Output: []string{"p3"}},
		},
	}
}

func TestNewNet_Valid(t *testing.T) {
	net, err := domain.NewNet(linearDoc())
	require.NoError(t, err)

	assert.Equal(t, "linear", net.Name())
	assert.Equal(t, []string{"p1", "p2", "p3"}, net.PlaceIDs())
	assert.Equal(t, []string{"t1", "t2"}, net.TransitionIDs())
	assert.True(t, net.HasPlace("p2"))
	assert.False(t, net.HasPlace("t1"))
	assert.True(t, net.HasTransition("t1"))

	kind, ok := net.Kind("t2")
	assert.True(t, ok)
	assert.Equal(t, domain.NodeTransition, kind)

	tr, ok := net.Transition("t1")
	require.True(t, ok)
	assert.Equal(t, []string{"p1"}, tr.Input)
}

func TestNewNet_IsIsolatedFromDocument(t *testing.T) {
	doc := linearDoc()
	net, err := domain.NewNet(doc)
	require.NoError(t, err)

	doc.Transitions[0].Input[0] = "mutated"
	tr, _ := net.Transition("t1")
	assert.Equal(t, "p1", tr.Input[0])

	returned := net.Transitions()
	returned[1].Output[0] = "mutated"
	tr, _ = net.Transition("t2")
	assert.Equal(t, "p3", tr.Output[0])
}

func TestNewNet_StructuralIssues(t *testing.T) {
	doc := domain.NetDocument{
		Places: []domain.Place{{ID: "p1"}, {ID: "p1"}, {ID: "p2"}, {ID: ""}},
		Transitions: []domain.Transition{
			{ID: "t1", Input: []string{"p1"}, Output: []string{"ghost"}},
			{ID: "t1", Input: []string{"p1"}},
			{ID: "p2", Input: []string{"p2"}},
		},
	}

	_, err := domain.NewNet(doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStructural))

	var se *domain.StructuralError
	require.ErrorAs(t, err, &se)

	kinds := make(map[domain.IssueKind]string)
	for _, issue := range se.Issues {
		kinds[issue.Kind] = issue.ID
	}
	assert.Equal(t, "ghost", kinds[domain.IssueDanglingReference])
	assert.Equal(t, "p1", kinds[domain.IssueDuplicatePlace])
	assert.Equal(t, "t1", kinds[domain.IssueDuplicateTransition])
	assert.Equal(t, "p2", kinds[domain.IssueIDCollision])
	assert.Contains(t, kinds, domain.IssueEmptyID)

	// Issues are sorted, so two builds produce the same message.
	_, err2 := domain.NewNet(doc)
	assert.Equal(t, err.Error(), err2.Error())
}

func TestNewNet_RejectsDuplicateArcs(t *testing.T) {
	doc := domain.NetDocument{
		Places: []domain.Place{{ID: "p_start"}, {ID: "p_end"}},
		Transitions: []domain.Transition{
			{ID: "t", Input: []string{"p_start", "p_start"}, Output: []string{"p_end"}},
			{ID: "loop", Input: []string{"p_end"}, Output: []string{"p_end"}},
		},
	}

	_, err := domain.NewNet(doc)
	var se *domain.StructuralError
	require.ErrorAs(t, err, &se)
	require.Len(t, se.Issues, 1, "a place on both sides of a transition is a plain self-loop")
	assert.Equal(t, domain.StructuralIssue{ID: "p_start", Kind: domain.IssueDuplicateArc, Detail: "input of t"}, se.Issues[0])
}

func TestSoundnessError_Messages(t *testing.T) {
	err := domain.NewSoundnessError(domain.MultipleSources, []string{"p2", "p1"})
	assert.Equal(t, "multiple source places found: [p1, p2]", err.Error())
	assert.ErrorIs(t, err, domain.ErrMultipleSources)

	err = domain.NewSoundnessError(domain.NoSource, nil)
	assert.Equal(t, "no source place found (place with no incoming arcs)", err.Error())

	err = domain.NewSoundnessError(domain.NotOnPath, []string{"t_loop", "isolated"})
	assert.Equal(t, []string{"isolated", "t_loop"}, err.IDs)
	assert.ErrorIs(t, err, domain.ErrNotOnPath)
}

func TestGuardEvaluationError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &domain.GuardEvaluationError{TransitionID: "t2", Condition: "approved", Step: 1, Err: cause}

	assert.ErrorIs(t, err, domain.ErrGuardEvaluation)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "t2")
}

func TestRunConfig_WithDefaults(t *testing.T) {
	cfg := domain.RunConfig{}.WithDefaults()
	assert.Equal(t, domain.DefaultStartPlace, cfg.StartPlace)
	assert.Equal(t, domain.DefaultEndPlace, cfg.EndPlace)
	assert.Equal(t, domain.DefaultMaxSteps, cfg.MaxSteps)

	cfg = domain.RunConfig{StartPlace: "i", EndPlace: "o", MaxSteps: 5}.WithDefaults()
	assert.Equal(t, "i", cfg.StartPlace)
	assert.Equal(t, 5, cfg.MaxSteps)
}

func TestMarking(t *testing.T) {
	net, err := domain.NewNet(linearDoc())
	require.NoError(t, err)

	m := domain.NewMarking(net)
	assert.Len(t, m, 3)
	m["p1"] = 1

	c := m.Clone()
	c["p1"] = 0
	assert.Equal(t, 1, m.Tokens("p1"))
	assert.Equal(t, 0, m.Tokens("unknown"))
	assert.Equal(t, []string{"p1"}, m.Marked())
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{OnFire: func(context.Context, *domain.FireEvent) { calls = append(calls, "a") }}
	b := domain.LifecycleHooks{
		OnFire:   func(context.Context, *domain.FireEvent) { calls = append(calls, "b") },
		OnRunEnd: func(context.Context, *domain.RunEvent) { calls = append(calls, "end") },
	}

	merged := a.Merge(b)
	merged.OnFire(context.Background(), &domain.FireEvent{})
	merged.OnRunEnd(context.Background(), &domain.RunEvent{})
	assert.Nil(t, merged.OnRunStart)
	assert.Equal(t, []string{"a", "b", "end"}, calls)
}
