package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractResult(id string) *domain.RunResult {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.RunResult{
		ID:           id,
		Net:          "approval",
		Status:       domain.StatusCompleted,
		Trace:        domain.Trace{"t1", "t2"},
		FinalMarking: domain.Marking{"p_start": 0, "p_middle": 0, "p_end": 1},
		Steps:        2,
		StartPlace:   "p_start",
		EndPlace:     "p_end",
		MaxSteps:     1000,
		GuardFailures: []domain.GuardFailure{
			{Step: 0, TransitionID: "t0", Condition: "missing", Error: "undefined variable: missing"},
		},
		StartedAt:  start,
		FinishedAt: start.Add(time.Millisecond),
	}
}

// RunReportStoreContract runs a suite of tests to verify that a ReportStore implementation
// adheres to the defined interface contract.
func RunReportStoreContract(t *testing.T, store ReportStore) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		// 1. Create a result
		result := contractResult(runID)

		// 2. Save
		err := store.Save(ctx, result)
		require.NoError(t, err, "Save should not return error")

		// 3. Load
		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, result.Status, loaded.Status)
		assert.Equal(t, result.Trace, loaded.Trace)
		assert.Equal(t, result.FinalMarking, loaded.FinalMarking)
		assert.Equal(t, result.GuardFailures, loaded.GuardFailures)
		assert.True(t, result.StartedAt.Equal(loaded.StartedAt))
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		loaded.Trace[0] = "mutated"
		loaded.FinalMarking["p_end"] = 99

		again, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, "t1", again.Trace[0])
		assert.Equal(t, 1, again.FinalMarking["p_end"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		// Delete
		err := store.Delete(ctx, runID)
		require.NoError(t, err, "Delete should not return error")

		// Verify gone
		_, err = store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, "Load after Delete should return ErrReportNotFound")
	})

	t.Run("List", func(t *testing.T) {
		// Setup: Create 2 reports
		id1 := runID + "-1"
		id2 := runID + "-2"
		require.NoError(t, store.Save(ctx, contractResult(id1)))
		require.NoError(t, store.Save(ctx, contractResult(id2)))

		// Ensure cleanup
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		// List
		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
