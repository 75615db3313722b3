package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/strumyk"
	"github.com/aretw0/strumyk/internal/config"
	"github.com/aretw0/strumyk/pkg/adapters/file"
	"github.com/aretw0/strumyk/pkg/adapters/memory"
	"github.com/aretw0/strumyk/pkg/adapters/redis"
	"github.com/aretw0/strumyk/pkg/observability"
	"github.com/aretw0/strumyk/pkg/ports"
)

// StoreKind names the backend chosen by OpenReportStore.
type StoreKind string

const (
	StoreNone   StoreKind = "none"
	StoreMemory StoreKind = "memory"
	StoreFile   StoreKind = "file"
	StoreRedis  StoreKind = "redis"
)

// OpenReportStore picks the report backend from the configuration:
// Redis when an address is set, a directory when ReportDir is set, and
// otherwise memory (or nothing, when fallback is false).
// The returned closer releases the backend and is never nil.
func OpenReportStore(ctx context.Context, cfg *config.Config, fallback bool) (ports.ReportStore, StoreKind, io.Closer, error) {
	switch {
	case cfg.RedisAddr != "":
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redis.WithTTL(cfg.ReportTTL))
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, StoreNone, nopCloser{}, fmt.Errorf("redis %s unreachable: %w", cfg.RedisAddr, err)
		}
		return store, StoreRedis, store, nil
	case cfg.ReportDir != "":
		return file.NewStore(cfg.ReportDir), StoreFile, nopCloser{}, nil
	case fallback:
		return memory.NewStore(memory.WithCapacity(memory.DefaultCapacity)), StoreMemory, nopCloser{}, nil
	}
	return nil, StoreNone, nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewEngine initializes a strumyk engine with standard CLI conventions:
// run defaults from cfg, the catalog when one is configured, debug hooks
// on the logger, and any extra options last.
func NewEngine(cfg *config.Config, logger *slog.Logger, extra ...strumyk.Option) (*strumyk.Engine, error) {
	opts := []strumyk.Option{
		strumyk.WithLogger(logger),
		strumyk.WithRunDefaults(cfg.RunConfig(nil)),
		strumyk.WithStepLimit(cfg.StepLimit),
	}
	if cfg.Level() <= slog.LevelDebug {
		opts = append(opts, strumyk.WithLifecycleHooks(observability.LoggingHooks(logger)))
	}
	opts = append(opts, extra...)

	engine, err := strumyk.New(cfg.CatalogDir, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}
