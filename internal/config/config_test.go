package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/strumyk/internal/config"
	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	c := config.NewDefaultConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, domain.DefaultStartPlace, c.StartPlace)
	assert.Equal(t, domain.DefaultEndPlace, c.EndPlace)
	assert.Equal(t, domain.DefaultMaxSteps, c.MaxSteps)
	assert.Equal(t, config.DefaultHTTPAddr, c.HTTPAddr)
	assert.Equal(t, config.DefaultStepLimit, c.StepLimit)
	assert.Empty(t, c.RedisAddr)
	assert.Equal(t, slog.LevelInfo, c.Level())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STRUMYK_LOG_LEVEL", "debug")
	t.Setenv("STRUMYK_MAX_STEPS", "50")
	t.Setenv("STRUMYK_START_PLACE", "i")
	t.Setenv("STRUMYK_END_PLACE", "o")
	t.Setenv("STRUMYK_REDIS_ADDR", "localhost:6379")
	t.Setenv("STRUMYK_REDIS_DB", "2")
	t.Setenv("STRUMYK_REPORT_TTL", "90m")
	t.Setenv("STRUMYK_REPORT_DIR", "/tmp/runs")
	t.Setenv("STRUMYK_CATALOG", "nets")
	t.Setenv("STRUMYK_STEP_LIMIT", "500")

	c := config.NewDefaultConfig()
	require.NoError(t, c.LoadFromEnv())

	assert.Equal(t, slog.LevelDebug, c.Level())
	assert.Equal(t, 50, c.MaxSteps)
	assert.Equal(t, "localhost:6379", c.RedisAddr)
	assert.Equal(t, 2, c.RedisDB)
	assert.Equal(t, 90*time.Minute, c.ReportTTL)
	assert.Equal(t, "/tmp/runs", c.ReportDir)
	assert.Equal(t, "nets", c.CatalogDir)
	assert.Equal(t, 500, c.StepLimit)

	rc := c.RunConfig(domain.Context{"x": 1})
	assert.Equal(t, "i", rc.StartPlace)
	assert.Equal(t, "o", rc.EndPlace)
	assert.Equal(t, 50, rc.MaxSteps)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
		want       error
	}{
		{"STRUMYK_MAX_STEPS", "0", config.ErrInvalidMaxSteps},
		{"STRUMYK_STEP_LIMIT", "999", config.ErrInvalidStepLimit},
		{"STRUMYK_STEP_LIMIT", "20000000", config.ErrInvalidStepLimit},
		{"STRUMYK_REDIS_DB", "16", config.ErrInvalidRedisDB},
		{"STRUMYK_REPORT_TTL", "soon", config.ErrInvalidReportTTL},
		{"STRUMYK_REPORT_TTL", "-1s", config.ErrInvalidReportTTL},
		{"STRUMYK_LOG_LEVEL", "loud", config.ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			err := config.NewDefaultConfig().LoadFromEnv()
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("unparsable int", func(t *testing.T) {
		t.Setenv("STRUMYK_MAX_STEPS", "many")
		assert.Error(t, config.NewDefaultConfig().LoadFromEnv())
	})
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("STRUMYK_MAX_STEPS=7\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("STRUMYK_MAX_STEPS") })

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, c.MaxSteps)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
