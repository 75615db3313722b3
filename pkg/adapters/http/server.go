// Package http exposes validation and simulation over a JSON API routed with chi.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/strumyk/internal/logging"
	"github.com/aretw0/strumyk/internal/validator"
	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/aretw0/strumyk/pkg/ports"
)

// maxBodyBytes caps request bodies; nets are small documents.
const maxBodyBytes = 4 << 20

// Engine is the toolkit surface the HTTP server drives.
type Engine interface {
	ports.Toolkit
	CheckSyntax(ctx context.Context, data, schemaJSON []byte) error
	Load(ctx context.Context, name string) (*domain.Net, error)
	List(ctx context.Context) ([]string, error)
	Analyze(net *domain.Net) validator.Analysis
	CheckGuards(net *domain.Net) map[string]error
	Report(ctx context.Context, id string) (*domain.RunResult, error)
	Reports(ctx context.Context) ([]string, error)
	DeleteReport(ctx context.Context, id string) error
	Render(w io.Writer, net *domain.Net, result *domain.RunResult, format string) error
}

// Server implements ServerInterface on top of an Engine.
type Server struct {
	Engine  Engine
	Version string
	logger  *slog.Logger
	metrics http.Handler

	// unsupported reports whether err means the engine lacks a loader or store.
	unsupported func(error) bool
}

var _ ServerInterface = (*Server)(nil)

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h at /metrics (typically promhttp.Handler()).
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithVersion sets the application version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// WithUnsupported marks errors that should be answered with 501, such as the
// facade's missing-loader and missing-store errors.
func WithUnsupported(targets ...error) Option {
	return func(s *Server) {
		s.unsupported = func(err error) bool {
			for _, t := range targets {
				if errors.Is(err, t) {
					return true
				}
			}
			return false
		}
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine:      engine,
		Version:     "dev",
		logger:      logging.NewNop(),
		unsupported: func(error) bool { return false },
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			server.logger.Error("Failed to load OpenAPI spec", "error", err)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	if server.metrics != nil {
		r.Handle("/metrics", server.metrics)
	}

	handler := HandlerFromMux(server, r)
	return enableCORS(handler)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>strumyk API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

func (s *Server) decode(w http.ResponseWriter, r *http.Request, op string, dst any) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid request body: " + err.Error()})
		s.logger.Warn(op+": Invalid request body", "error", err)
		return false
	}
	return true
}

func (s *Server) respondError(w http.ResponseWriter, op string, err error) {
	if s.unsupported(err) {
		err = fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	s.fail(w, op, err)
}

// net resolves a NetRequest to a compiled net.
func (s *Server) net(ctx context.Context, req NetRequest) (*domain.Net, error) {
	switch {
	case req.Document != "":
		source := req.Name
		if source == "" {
			source = "request"
		}
		return s.Engine.Compile(ctx, source, []byte(req.Document))
	case req.Name != "":
		return s.Engine.Load(ctx, req.Name)
	}
	return nil, ErrMissingNet
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "strumyk-http",
		"version":     s.Version,
		"api_version": apiVersion,
	})
}

// CheckSyntax handles the POST /syntax request.
func (s *Server) CheckSyntax(w http.ResponseWriter, r *http.Request) {
	var body SyntaxRequest
	if !s.decode(w, r, "CheckSyntax", &body) {
		return
	}

	var schemaJSON []byte
	if body.Schema != nil {
		var err error
		if schemaJSON, err = json.Marshal(body.Schema); err != nil {
			s.respondError(w, "CheckSyntax", err)
			return
		}
	}

	err := s.Engine.CheckSyntax(r.Context(), []byte(body.Document), schemaJSON)
	if err == nil {
		writeJSON(w, http.StatusOK, SyntaxResponse{Valid: true})
		return
	}
	if statusFor(err) != http.StatusBadRequest {
		s.respondError(w, "CheckSyntax", err)
		return
	}

	resp := SyntaxResponse{Valid: false}
	if e := errorBody(err); len(e.Issues) > 0 {
		resp.Errors = e.Issues
	} else {
		resp.Errors = []string{err.Error()}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ValidateNet handles the POST /validate request.
func (s *Server) ValidateNet(w http.ResponseWriter, r *http.Request) {
	var body NetRequest
	if !s.decode(w, r, "ValidateNet", &body) {
		return
	}

	net, err := s.net(r.Context(), body)
	if err != nil {
		s.respondError(w, "ValidateNet", err)
		return
	}

	verdict := s.Engine.Validate(r.Context(), net)
	analysis := s.Engine.Analyze(net)
	resp := ValidationResponse{
		Net:     net.Name(),
		Sound:   verdict == nil,
		Sources: analysis.Sources,
		Sinks:   analysis.Sinks,
		OffPath: analysis.OffPath,
	}
	if verdict != nil {
		resp.Error = errorBody(verdict)
	}
	if warnings := s.Engine.CheckGuards(net); len(warnings) > 0 {
		resp.GuardWarnings = make(map[string]string, len(warnings))
		for id, err := range warnings {
			resp.GuardWarnings[id] = err.Error()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// SimulateNet handles the POST /simulate request.
func (s *Server) SimulateNet(w http.ResponseWriter, r *http.Request) {
	var body SimulateRequest
	if !s.decode(w, r, "SimulateNet", &body) {
		return
	}

	net, err := s.net(r.Context(), body.NetRequest)
	if err != nil {
		s.respondError(w, "SimulateNet", err)
		return
	}

	res, err := s.Engine.Simulate(r.Context(), net, body.RunConfig())
	if err != nil {
		s.respondError(w, "SimulateNet", err)
		return
	}
	s.logger.Info("SimulateNet: finished", logging.RunID(res.ID), logging.Status(res.Status), logging.Step(res.Steps))
	writeJSON(w, http.StatusOK, res)
}

// RenderGraph handles the POST /graph request.
func (s *Server) RenderGraph(w http.ResponseWriter, r *http.Request, params GraphParams) {
	var body GraphRequest
	if !s.decode(w, r, "RenderGraph", &body) {
		return
	}

	net, err := s.net(r.Context(), body.NetRequest)
	if err != nil {
		s.respondError(w, "RenderGraph", err)
		return
	}

	var result *domain.RunResult
	if body.RunID != "" {
		if result, err = s.Engine.Report(r.Context(), body.RunID); err != nil {
			s.respondError(w, "RenderGraph", err)
			return
		}
	}

	format := "mermaid"
	if params.Format != nil && *params.Format != "" {
		format = *params.Format
	}

	var buf bytes.Buffer
	if err := s.Engine.Render(&buf, net, result, format); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	_, _ = w.Write(buf.Bytes())
}

func contentType(format string) string {
	switch format {
	case "svg":
		return "image/svg+xml"
	case "png":
		return "image/png"
	}
	return "text/plain; charset=utf-8"
}

// ListNets handles the GET /nets request.
func (s *Server) ListNets(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.List(r.Context())
	if err != nil {
		s.respondError(w, "ListNets", err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// ListRuns handles the GET /runs request.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request, params ListRunsParams) {
	ids, err := s.Engine.Reports(r.Context())
	if err != nil {
		s.respondError(w, "ListRuns", err)
		return
	}
	if params.Limit != nil {
		if *params.Limit < 1 {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "limit must be positive"})
			return
		}
		if *params.Limit < len(ids) {
			ids = ids[:*params.Limit]
		}
	}
	writeJSON(w, http.StatusOK, ids)
}

// GetRun handles the GET /runs/{id} request.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request, id string) {
	res, err := s.Engine.Report(r.Context(), id)
	if err != nil {
		s.respondError(w, "GetRun", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// DeleteRun handles the DELETE /runs/{id} request.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.Engine.DeleteReport(r.Context(), id); err != nil {
		s.respondError(w, "DeleteRun", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
