package strumyk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/loam"

	"github.com/aretw0/strumyk/internal/compiler"
	"github.com/aretw0/strumyk/internal/guard"
	"github.com/aretw0/strumyk/internal/logging"
	"github.com/aretw0/strumyk/internal/presentation/graph"
	"github.com/aretw0/strumyk/internal/runtime"
	"github.com/aretw0/strumyk/internal/validator"
	loamAdapter "github.com/aretw0/strumyk/pkg/adapters/loam"
	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/aretw0/strumyk/pkg/ports"
	"github.com/aretw0/strumyk/pkg/schema"
)

// ErrNoLoader is returned by Load and List when the engine has no NetLoader.
var ErrNoLoader = errors.New("no net loader configured")

// ErrNoStore is returned by Report and Reports when the engine has no ReportStore.
var ErrNoStore = errors.New("no report store configured")

// Engine is the high-level entry point for the strumyk library.
// It wires the compiler, the soundness validator and the simulator, and
// provides a simplified API for consumers.
type Engine struct {
	runtime   *runtime.Engine
	validator *validator.Validator
	parser    *compiler.Parser
	guards    *guard.Evaluator
	loader    ports.NetLoader
	store     ports.ReportStore
	hooks     domain.LifecycleHooks
	defaults  domain.RunConfig
	stepLimit int
	strict    bool
	logger    *slog.Logger
	Name      string
}

var _ ports.Toolkit = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLoader injects a custom NetLoader, bypassing the default Loam initialization.
func WithLoader(l ports.NetLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithReportStore makes Simulate persist every finished run.
func WithReportStore(s ports.ReportStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStrict rejects documents carrying unknown keys.
func WithStrict(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// WithRunDefaults sets the start place, end place and step cap used when a
// RunConfig leaves them unset.
func WithRunDefaults(cfg domain.RunConfig) Option {
	return func(e *Engine) {
		e.defaults = cfg
	}
}

// WithStepLimit rejects runs asking for more than limit steps. Zero means no limit.
func WithStepLimit(limit int) Option {
	return func(e *Engine) {
		e.stepLimit = limit
	}
}

// New initializes a new Engine.
// When catalogPath is set and no WithLoader option is given, nets are served
// from a read-only Loam repository at that path. With neither, Load and List
// return ErrNoLoader and only Compile can produce nets.
func New(catalogPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil && catalogPath != "" {
		absPath, err := filepath.Abs(catalogPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		eng.Name = filepath.Base(absPath)

		// Strict mode keeps numbers consistent across JSON and Markdown/YAML documents.
		// The engine never writes to the catalog.
		repo, err := loam.Init(absPath,
			loam.WithStrict(true),
			loam.WithReadOnly(true),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize loam: %w", err)
		}
		eng.loader = loamAdapter.New(loam.NewTypedRepository[loamAdapter.NetMetadata](repo))
	} else if catalogPath != "" {
		eng.Name = filepath.Base(catalogPath)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("catalog", eng.Name)
	}

	eng.guards = guard.NewEvaluator()
	eng.parser = compiler.NewParser(compiler.WithStrict(eng.strict))
	eng.validator = validator.New(validator.WithLogger(eng.logger))
	eng.runtime = runtime.NewEngine(
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithEvaluator(eng.guards),
	)
	return eng, nil
}

// Compile decodes a YAML or JSON document and applies structural checks.
func (e *Engine) Compile(ctx context.Context, source string, data []byte) (*domain.Net, error) {
	return e.parser.Parse(source, data)
}

// CheckSyntax validates the raw document against a JSON Schema: schemaJSON when
// given, the embedded net schema otherwise. All violations are reported together.
func (e *Engine) CheckSyntax(ctx context.Context, data, schemaJSON []byte) error {
	raw, err := compiler.DecodeGeneric(data)
	if err != nil {
		return &compiler.DecodeError{Err: err}
	}

	doc := schema.DefaultDocumentSchema()
	if len(schemaJSON) > 0 {
		if doc, err = schema.ParseDocumentSchema(schemaJSON); err != nil {
			return err
		}
	}
	return doc.Validate(raw)
}

// Load fetches a net by name from the configured loader and compiles it.
func (e *Engine) Load(ctx context.Context, name string) (*domain.Net, error) {
	if e.loader == nil {
		return nil, ErrNoLoader
	}
	data, err := e.loader.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return e.Compile(ctx, name, data)
}

// List returns the names of the nets the loader can serve.
func (e *Engine) List(ctx context.Context) ([]string, error) {
	if e.loader == nil {
		return nil, ErrNoLoader
	}
	return e.loader.List(ctx)
}

// Validate checks the soundness axioms and reports the verdict to the OnValidate hook.
func (e *Engine) Validate(ctx context.Context, net *domain.Net) error {
	err := e.validator.Validate(net)
	if e.hooks.OnValidate != nil {
		e.hooks.OnValidate(ctx, &domain.ValidationEvent{
			EventBase: domain.EventBase{Timestamp: time.Now().UTC(), Type: domain.EventValidate, Net: net.Name()},
			Err:       err,
		})
	}
	return err
}

// Analyze returns sources, sinks and reachability of net.
func (e *Engine) Analyze(net *domain.Net) validator.Analysis {
	return validator.Analyze(net)
}

// CheckGuards compiles every guard of net and returns failures by transition id.
// A soundness check never looks at guards, so this is how authors catch typos early.
func (e *Engine) CheckGuards(net *domain.Net) map[string]error {
	return e.guards.Check(net)
}

// Simulate runs the deterministic engine. Unset fields of cfg fall back to the
// engine's run defaults. When a ReportStore is configured the result is saved.
func (e *Engine) Simulate(ctx context.Context, net *domain.Net, cfg domain.RunConfig) (*domain.RunResult, error) {
	if cfg.StartPlace == "" {
		cfg.StartPlace = e.defaults.StartPlace
	}
	if cfg.EndPlace == "" {
		cfg.EndPlace = e.defaults.EndPlace
	}
	if cfg.MaxSteps == 0 {
		cfg.MaxSteps = e.defaults.MaxSteps
	}
	cfg = cfg.WithDefaults()
	if e.stepLimit > 0 && cfg.MaxSteps > e.stepLimit {
		return nil, &domain.InvalidRunConfigurationError{
			Field:  "max_steps",
			Value:  cfg.MaxSteps,
			Reason: fmt.Sprintf("exceeds the limit of %d", e.stepLimit),
		}
	}

	res, err := e.runtime.Run(ctx, net, cfg)
	if err != nil {
		return nil, err
	}

	if e.store != nil {
		if err := e.store.Save(ctx, res); err != nil {
			return res, fmt.Errorf("failed to save run report: %w", err)
		}
	}
	return res, nil
}

// Report fetches a stored run report.
func (e *Engine) Report(ctx context.Context, id string) (*domain.RunResult, error) {
	if e.store == nil {
		return nil, ErrNoStore
	}
	return e.store.Load(ctx, id)
}

// DeleteReport removes a stored run report.
func (e *Engine) DeleteReport(ctx context.Context, id string) error {
	if e.store == nil {
		return ErrNoStore
	}
	return e.store.Delete(ctx, id)
}

// Reports lists stored run ids.
func (e *Engine) Reports(ctx context.Context) ([]string, error) {
	if e.store == nil {
		return nil, ErrNoStore
	}
	return e.store.List(ctx)
}

// Render writes net in the given format: "mermaid", or a Graphviz format
// ("dot", "svg", "png"). A non-nil result highlights the run on the graph.
func (e *Engine) Render(w io.Writer, net *domain.Net, result *domain.RunResult, format string) error {
	overlay := graph.FromResult(result)
	if result != nil {
		overlay = overlay.WithOffPath(validator.Analyze(net).OffPath)
	}

	if format == "" || format == "mermaid" {
		_, err := io.WriteString(w, graph.GenerateMermaid(net, overlay))
		return err
	}

	f, err := graph.ParseFormat(format)
	if err != nil {
		return err
	}
	cfg := graph.DefaultDotConfig()
	cfg.Format = f
	return graph.RenderDOT(w, net, overlay, cfg)
}

// Store returns the configured ReportStore, or nil.
func (e *Engine) Store() ports.ReportStore {
	return e.store
}

// Loader returns the configured NetLoader, or nil.
func (e *Engine) Loader() ports.NetLoader {
	return e.loader
}
