package tui_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/aretw0/strumyk/internal/presentation/tui"
	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidationMarkdown(t *testing.T) {
	md := tui.ValidationMarkdown(tui.ValidationReport{
		Net:     "island",
		Sources: []string{"i"},
		Sinks:   []string{"o"},
		OffPath: []string{"isolated", "t_loop"},
		Err:     domain.NewSoundnessError(domain.NotOnPath, []string{"t_loop", "isolated"}),
		Warnings: map[string]error{
			"t2": errors.New("forbidden"),
		},
	})

	assert.Contains(t, md, "# Soundness: island")
	assert.Contains(t, md, "not sound")
	assert.Contains(t, md, "[isolated, t_loop]")
	assert.Contains(t, md, "| Off path | `isolated`, `t_loop` |")
	assert.Contains(t, md, "- `t2`: forbidden")

	sound := tui.ValidationMarkdown(tui.ValidationReport{Sources: []string{"a"}, Sinks: []string{"b"}})
	assert.Contains(t, sound, "(unnamed net)")
	assert.Contains(t, sound, "**Verdict:** sound")
	assert.Contains(t, sound, "| Off path | none |")
}

func TestRunMarkdown(t *testing.T) {
	res := &domain.RunResult{
		ID:           "run-1",
		Net:          "order",
		Status:       domain.StatusDeadlocked,
		Trace:        domain.Trace{"t1"},
		FinalMarking: domain.Marking{"p_start": 0, "p_mid": 1},
		Steps:        1,
		MaxSteps:     1000,
		StartPlace:   "p_start",
		EndPlace:     "p_end",
		GuardFailures: []domain.GuardFailure{
			{Step: 1, TransitionID: "t2", Condition: "ok", Error: "undefined variable: ok"},
		},
	}

	md := tui.RunMarkdown(res)
	assert.Contains(t, md, "**Status:** deadlocked")
	assert.Contains(t, md, "1. `t1`")
	assert.Contains(t, md, "| `p_mid` | 1 |")
	assert.NotContains(t, md, "| `p_start` |")
	assert.Contains(t, md, "step 1, `t2`")

	txt := tui.RunText(res)
	assert.Contains(t, txt, "status: deadlocked")
	assert.Contains(t, txt, "trace:  t1")
	assert.Contains(t, txt, "marked: p_mid")
}

func TestVerdictAndStatusLine(t *testing.T) {
	var buf bytes.Buffer
	tui.Verdict(&buf, true, "net is sound")
	tui.Verdict(&buf, false, "net is broken")
	tui.StatusLine(&buf, domain.StatusCompleted)

	out := buf.String()
	assert.Contains(t, out, "net is sound")
	assert.Contains(t, out, "net is broken")
	assert.Contains(t, out, "completed")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "v0.1.0")
	assert.Contains(t, buf.String(), "v0.1.0")
}
