package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/strumyk/internal/logging"
	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := logging.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := logging.ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewJSON_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSON(slog.LevelInfo, &buf)

	logger.Warn("guard failed",
		"error", "boom",
		logging.Transition("t2"),
		logging.Status(domain.StatusDeadlocked),
		logging.Step(3),
	)
	logger.Debug("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "boom", line["err"])
	assert.Equal(t, "t2", line["transition"])
	assert.Equal(t, "deadlocked", line["status"])
	assert.EqualValues(t, 3, line["step"])
	assert.NotContains(t, line, "error")
}

func TestErr(t *testing.T) {
	assert.Equal(t, "", logging.Err(nil).Value.String())
	assert.Equal(t, "boom", logging.Err(errors.New("boom")).Value.String())
	assert.Equal(t, "err", logging.Err(nil).Key)
	assert.Equal(t, "p_end", logging.Place("p_end").Value.String())
	assert.Equal(t, "net", logging.Net("x").Key)
	assert.Equal(t, "run_id", logging.RunID("r").Key)
}
