// Package config loads CLI and server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/aretw0/strumyk/internal/logging"
	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/joho/godotenv"
)

// Config holds settings shared by the CLI commands and the servers.
type Config struct {
	LogLevel string

	// Run defaults
	StartPlace string
	EndPlace   string
	MaxSteps   int

	// Highest max_steps a caller may request (HTTP, MCP and CLI alike)
	StepLimit int

	// Catalog directory served by name (loam repository); empty disables it
	CatalogDir string

	// HTTP API
	HTTPAddr string

	// Report store; Redis is used when RedisAddr is set, then ReportDir, memory otherwise
	ReportDir     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ReportTTL     time.Duration
}

const (
	EnvPrefix = "STRUMYK_"

	DefaultHTTPAddr  = ":8080"
	DefaultReportTTL = 24 * time.Hour
	MaxRedisDB       = 15
	MaxMaxSteps      = 10_000_000
	DefaultStepLimit = 100_000
)

var (
	ErrInvalidMaxSteps  = errors.New("max steps must be between 1 and 10000000")
	ErrInvalidStepLimit = errors.New("step limit must be between max steps and 10000000")
	ErrInvalidRedisDB   = errors.New("redis db must be between 0 and 15")
	ErrInvalidReportTTL = errors.New("report ttl must be a positive duration")
	ErrInvalidLogLevel  = errors.New("invalid log level")
)

// NewDefaultConfig creates a configuration with the run defaults and a memory report store.
func NewDefaultConfig() *Config {
	return &Config{
		LogLevel:   "info",
		StartPlace: domain.DefaultStartPlace,
		EndPlace:   domain.DefaultEndPlace,
		MaxSteps:   domain.DefaultMaxSteps,
		StepLimit:  DefaultStepLimit,
		HTTPAddr:   DefaultHTTPAddr,
		ReportTTL:  DefaultReportTTL,
	}
}

// Load reads an optional .env file (or the given files) and then the environment.
// A missing default .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	c := NewDefaultConfig()
	if err := c.LoadFromEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFromEnv populates configuration values from STRUMYK_* environment variables.
// Returns an error if any env var cannot be parsed.
func (c *Config) LoadFromEnv() error {
	lookupString("LOG_LEVEL", &c.LogLevel)
	lookupString("START_PLACE", &c.StartPlace)
	lookupString("END_PLACE", &c.EndPlace)
	lookupString("CATALOG", &c.CatalogDir)
	lookupString("HTTP_ADDR", &c.HTTPAddr)
	lookupString("REPORT_DIR", &c.ReportDir)
	lookupString("REDIS_ADDR", &c.RedisAddr)
	lookupString("REDIS_PASSWORD", &c.RedisPassword)

	if err := loadEnvInt("MAX_STEPS", &c.MaxSteps); err != nil {
		return err
	}
	if err := loadEnvInt("STEP_LIMIT", &c.StepLimit); err != nil {
		return err
	}
	if err := loadEnvInt("REDIS_DB", &c.RedisDB); err != nil {
		return err
	}
	if v, ok := os.LookupEnv(EnvPrefix + "REPORT_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidReportTTL, v)
		}
		c.ReportTTL = d
	}

	return c.Validate()
}

// Validate checks the ranges of every setting.
func (c *Config) Validate() error {
	if c.MaxSteps < 1 || c.MaxSteps > MaxMaxSteps {
		return fmt.Errorf("%w: %d", ErrInvalidMaxSteps, c.MaxSteps)
	}
	if c.StepLimit < c.MaxSteps || c.StepLimit > MaxMaxSteps {
		return fmt.Errorf("%w: %d", ErrInvalidStepLimit, c.StepLimit)
	}
	if c.RedisDB < 0 || c.RedisDB > MaxRedisDB {
		return fmt.Errorf("%w: %d", ErrInvalidRedisDB, c.RedisDB)
	}
	if c.ReportTTL <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidReportTTL, c.ReportTTL)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() slog.Level {
	lvl, _ := logging.ParseLevel(c.LogLevel)
	return lvl
}

// RunConfig returns the run defaults with the given context.
func (c *Config) RunConfig(vars domain.Context) domain.RunConfig {
	return domain.RunConfig{
		Context:    vars,
		StartPlace: c.StartPlace,
		EndPlace:   c.EndPlace,
		MaxSteps:   c.MaxSteps,
	}
}

func lookupString(key string, into *string) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
		*into = v
	}
}

func loadEnvInt(key string, into *int) error {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, key, v, err)
	}
	*into = n
	return nil
}
