package validator_test

import (
	"errors"
	"testing"

	"github.com/aretw0/strumyk/internal/validator"
	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/aretw0/strumyk/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	// 1. Scenario A: linear, sound
	linear := dsl.New("linear").
		Places("p1", "p2", "p3").
		Transition("t1").From("p1").To("p2").
		Transition("t2").From("p2").To("p3").
		MustBuild()

	require.NoError(t, validator.Validate(linear))
	a := validator.Analyze(linear)
	assert.Equal(t, []string{"p1"}, a.Sources)
	assert.Equal(t, []string{"p3"}, a.Sinks)
	assert.Empty(t, a.OffPath)

	// 2. Scenario B: multiple sources. t1 produces p1, so p2 and p3 have no incoming arcs.
	multi := dsl.New("multi").
		Places("p1", "p2", "p3").
		Transition("t1").From("p3").To("p1").
		MustBuild()

	err := validator.Validate(multi)
	var se *domain.SoundnessError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, domain.MultipleSources, se.Kind)
	assert.Equal(t, []string{"p2", "p3"}, se.IDs)
	assert.True(t, errors.Is(err, domain.ErrMultipleSources))

	// 3. Scenario C: isolated island
	island := dsl.New("island").
		Places("i", "o", "isolated").
		Transition("t1").From("i").To("o").
		Transition("t_loop").From("isolated").To("isolated").
		MustBuild()

	err = validator.Validate(island)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, domain.NotOnPath, se.Kind)
	assert.Equal(t, []string{"isolated", "t_loop"}, se.IDs)
	assert.Equal(t, "not all elements are on a path from source to sink: [isolated, t_loop]", err.Error())
}

func TestValidate_SourceAndSinkErrors(t *testing.T) {
	tests := []struct {
		name string
		net  *domain.Net
		kind domain.SoundnessKind
		ids  []string
		is   error
	}{
		{
			name: "no source (every place is produced)",
			net: dsl.New("cycle").
				Places("a", "b").
				Transition("t1").From("a").To("b").
				Transition("t2").From("b").To("a").
				MustBuild(),
			kind: domain.NoSource,
			is:   domain.ErrNoSource,
		},
		{
			name: "no places at all",
			net:  dsl.New("empty").MustBuild(),
			kind: domain.NoSource,
			is:   domain.ErrNoSource,
		},
		{
			name: "no sink",
			net: dsl.New("nosink").
				Places("i", "a", "b").
				Transition("t0").From("i").To("a").
				Transition("t1").From("a").To("b").
				Transition("t2").From("b").To("a").
				MustBuild(),
			kind: domain.NoSink,
			is:   domain.ErrNoSink,
		},
		{
			name: "multiple sinks",
			net: dsl.New("fork").
				Places("i", "o2", "o1").
				Transition("t").From("i").To("o1", "o2").
				MustBuild(),
			kind: domain.MultipleSinks,
			ids:  []string{"o1", "o2"},
			is:   domain.ErrMultipleSinks,
		},
		{
			name: "source checked before sink",
			net: dsl.New("both").
				Places("a", "b", "c", "d").
				MustBuild(),
			kind: domain.MultipleSources,
			ids:  []string{"a", "b", "c", "d"},
			is:   domain.ErrMultipleSources,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate(tt.net)
			var se *domain.SoundnessError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.kind, se.Kind)
			assert.Equal(t, tt.ids, se.IDs)
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestValidate_DeadBranchIsOffPath(t *testing.T) {
	// t_dead consumes from the source but leads to a place that can never reach o.
	// trap spins on itself, so it is not a second sink.
	net := dsl.New("dead").
		Places("i", "o", "trap").
		Transition("t1").From("i").To("o").
		Transition("t_dead").From("i").To("trap").
		Transition("t_spin").From("trap").To("trap").
		MustBuild()

	err := validator.Validate(net)
	var se *domain.SoundnessError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, []string{"t_dead", "t_spin", "trap"}, se.IDs)

	a := validator.Analyze(net)
	assert.Equal(t, []string{"i", "o", "t1", "t_dead", "t_spin", "trap"}, a.Forward)
	assert.Equal(t, []string{"i", "o", "t1"}, a.Backward)
	assert.Equal(t, se.IDs, a.OffPath)
}

func TestValidate_Idempotent(t *testing.T) {
	net := dsl.New("island").
		Places("i", "o", "isolated").
		Transition("t1").From("i").To("o").
		Transition("t_loop").From("isolated").To("isolated").
		MustBuild()

	v := validator.New()
	first := v.Validate(net)
	second := v.Validate(net)
	assert.Equal(t, first.Error(), second.Error())
	assert.Equal(t, []string{"i", "isolated", "o"}, net.PlaceIDs(), "validation must not mutate the net")
}

func TestAnalyze_NonUniqueSkipsReachability(t *testing.T) {
	net := dsl.New("multi").Places("a", "b").MustBuild()

	a := validator.Analyze(net)
	assert.Equal(t, []string{"a", "b"}, a.Sources)
	assert.Equal(t, []string{"a", "b"}, a.Sinks)
	assert.Nil(t, a.Forward)
	assert.Nil(t, a.OffPath)
}
