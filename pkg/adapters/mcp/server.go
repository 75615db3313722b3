// Package mcp exposes validation and simulation as Model Context Protocol tools.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/strumyk/internal/logging"
	"github.com/aretw0/strumyk/internal/validator"
	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/aretw0/strumyk/pkg/ports"
	"github.com/aretw0/strumyk/pkg/schema"
)

// SchemaURI is the resource holding the JSON Schema of net documents.
const SchemaURI = "strumyk://schema/net"

// Engine defines the interface required by the MCP server.
type Engine interface {
	ports.Toolkit
	Load(ctx context.Context, name string) (*domain.Net, error)
	List(ctx context.Context) ([]string, error)
	Analyze(net *domain.Net) validator.Analysis
	CheckGuards(net *domain.Net) map[string]error
	Report(ctx context.Context, id string) (*domain.RunResult, error)
	Render(w io.Writer, net *domain.Net, result *domain.RunResult, format string) error
}

// NetArgs selects the net: an inline document wins over a catalog name.
type NetArgs struct {
	Document string `json:"document,omitempty"`
	Name     string `json:"name,omitempty"`
}

// SimulateArgs are the arguments of simulate_net.
type SimulateArgs struct {
	NetArgs
	Context    string  `json:"context,omitempty"`
	StartPlace string  `json:"start_place,omitempty"`
	EndPlace   string  `json:"end_place,omitempty"`
	MaxSteps   float64 `json:"max_steps,omitempty"`
}

// GraphArgs are the arguments of get_graph.
type GraphArgs struct {
	NetArgs
	Format string `json:"format,omitempty"`
	RunID  string `json:"run_id,omitempty"`
}

// ValidationResponse is the structured result of validate_net.
type ValidationResponse struct {
	Net           string            `json:"net,omitempty" jsonschema_description:"Name of the net"`
	Sound         bool              `json:"sound" jsonschema_description:"True when all soundness checks pass"`
	Kind          string            `json:"kind,omitempty" jsonschema_description:"Failing check, e.g. multiple_sources"`
	IDs           []string          `json:"ids,omitempty" jsonschema_description:"Offending place or transition ids, sorted"`
	Message       string            `json:"message,omitempty"`
	Sources       []string          `json:"sources"`
	Sinks         []string          `json:"sinks"`
	GuardWarnings map[string]string `json:"guard_warnings,omitempty" jsonschema_description:"Guards that do not compile, by transition id"`
}

// ErrMissingNet is returned when a call carries neither a document nor a name.
var ErrMissingNet = errors.New("either document or name is required")

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("strumyk-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
		return nil
	})

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func netOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("document", mcp.Description("Net document as YAML or JSON text")),
		mcp.WithString("name", mcp.Description("Name of a net in the catalog (used when document is empty)")),
	}
}

func (s *Server) registerTools() {
	// TOOL: validate_net
	validateTool := mcp.NewTool("validate_net", append([]mcp.ToolOption{
		mcp.WithDescription("Check the workflow-net soundness axioms: one source place, one sink place, every node on a source-to-sink path."),
		mcp.WithOutputSchema[ValidationResponse](),
	}, netOptions()...)...)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: simulate_net
	simulateTool := mcp.NewTool("simulate_net", append([]mcp.ToolOption{
		mcp.WithDescription("Run the deterministic token simulator from the start place until the end place is marked, a deadlock, or the step cap."),
		mcp.WithString("context", mcp.Description("JSON object with the guard variables")),
		mcp.WithString("start_place", mcp.Description("Start place id (default p_start)")),
		mcp.WithString("end_place", mcp.Description("End place id (default p_end)")),
		mcp.WithNumber("max_steps", mcp.Description("Step cap (default 1000)")),
		mcp.WithOutputSchema[domain.RunResult](),
	}, netOptions()...)...)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	// TOOL: get_graph
	graphTool := mcp.NewTool("get_graph", append([]mcp.ToolOption{
		mcp.WithDescription("Render the net as a Mermaid flowchart (default) or Graphviz DOT, optionally highlighting a stored run."),
		mcp.WithString("format", mcp.Description("mermaid or dot"), mcp.Enum("mermaid", "dot")),
		mcp.WithString("run_id", mcp.Description("Id of a stored run to overlay")),
	}, netOptions()...)...)
	s.mcpServer.AddTool(graphTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args GraphArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		out, err := s.graph(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	})

	// TOOL: list_nets
	s.mcpServer.AddTool(mcp.NewTool("list_nets",
		mcp.WithDescription("List the nets available in the catalog."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := s.engine.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(names)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) net(ctx context.Context, args NetArgs) (*domain.Net, error) {
	switch {
	case args.Document != "":
		return s.engine.Compile(ctx, args.Name, []byte(args.Document))
	case args.Name != "":
		return s.engine.Load(ctx, args.Name)
	}
	return nil, ErrMissingNet
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args NetArgs) (ValidationResponse, error) {
	net, err := s.net(ctx, args)
	if err != nil {
		return ValidationResponse{}, err
	}

	verdict := s.engine.Validate(ctx, net)
	analysis := s.engine.Analyze(net)
	resp := ValidationResponse{
		Net:     net.Name(),
		Sound:   verdict == nil,
		Sources: analysis.Sources,
		Sinks:   analysis.Sinks,
	}
	var se *domain.SoundnessError
	if errors.As(verdict, &se) {
		resp.Kind = string(se.Kind)
		resp.IDs = se.IDs
		resp.Message = se.Error()
	}
	if warnings := s.engine.CheckGuards(net); len(warnings) > 0 {
		resp.GuardWarnings = make(map[string]string, len(warnings))
		for id, err := range warnings {
			resp.GuardWarnings[id] = err.Error()
		}
	}
	return resp, nil
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args SimulateArgs) (domain.RunResult, error) {
	net, err := s.net(ctx, args.NetArgs)
	if err != nil {
		return domain.RunResult{}, err
	}

	vars := domain.Context{}
	if args.Context != "" {
		if err := json.Unmarshal([]byte(args.Context), &vars); err != nil {
			return domain.RunResult{}, &domain.InvalidRunConfigurationError{
				Field: "context", Value: args.Context, Reason: "is not a JSON object",
			}
		}
	}

	res, err := s.engine.Simulate(ctx, net, domain.RunConfig{
		Context:    vars,
		StartPlace: args.StartPlace,
		EndPlace:   args.EndPlace,
		MaxSteps:   int(args.MaxSteps),
	})
	if err != nil {
		s.logger.Warn("MCP Simulate: rejected", "error", err)
		return domain.RunResult{}, err
	}
	return *res, nil
}

func (s *Server) graph(ctx context.Context, args GraphArgs) (string, error) {
	net, err := s.net(ctx, args.NetArgs)
	if err != nil {
		return "", err
	}

	var result *domain.RunResult
	if args.RunID != "" {
		if result, err = s.engine.Report(ctx, args.RunID); err != nil {
			return "", fmt.Errorf("run %s: %w", args.RunID, err)
		}
	}

	format := args.Format
	if format == "" {
		format = "mermaid"
	}
	if format != "mermaid" && format != "dot" {
		return "", fmt.Errorf("unsupported format %q", format)
	}

	var buf bytes.Buffer
	if err := s.engine.Render(&buf, net, result, format); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Server) registerResources() {
	// EXPOSE: strumyk://schema/net
	s.mcpServer.AddResource(mcp.NewResource(SchemaURI, "Net document JSON Schema",
		mcp.WithMIMEType("application/schema+json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      SchemaURI,
				MIMEType: "application/schema+json",
				Text:     string(schema.DefaultDocumentSchemaJSON()),
			},
		}, nil
	})
}
