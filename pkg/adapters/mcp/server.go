// Package mcp exposes the session manager as Model Context Protocol tools,
// so agents can create, drive and inspect algorithm runs.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/stepwise"
	"github.com/aretw0/stepwise/internal/logging"
	"github.com/aretw0/stepwise/pkg/catalogue"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/scheduler"
	"github.com/aretw0/stepwise/pkg/session"
)

// MaxTicks bounds tick_session so one call cannot run away with a large run.
const MaxTicks = 1000

// AlgorithmsResponse is the output of list_algorithms.
type AlgorithmsResponse struct {
	Algorithms []catalogue.Entry `json:"algorithms" jsonschema_description:"Catalogue entries in registration order"`
}

// SessionsResponse is the output of list_sessions.
type SessionsResponse struct {
	Sessions []session.Status `json:"sessions" jsonschema_description:"Live sessions, oldest first"`
}

// TickResponse is the output of tick_session.
type TickResponse struct {
	Frames  []scheduler.Frame `json:"frames" jsonschema_description:"Steps produced, in tick then lane order"`
	Session session.Status    `json:"session" jsonschema_description:"Session status after the last tick"`
}

// ResultsResponse is the output of list_results.
type ResultsResponse struct {
	Results []domain.RunSummary `json:"results" jsonschema_description:"Persisted lane summaries"`
}

// Server wraps a session manager and exposes it as an MCP Server.
type Server struct {
	manager   *session.Manager
	mcpServer *server.MCPServer
	base      context.Context
	logger    *slog.Logger
}

type Option func(*Server)

// WithBaseContext sets the context background runs started by autoplay use.
func WithBaseContext(ctx context.Context) Option {
	return func(s *Server) {
		s.base = ctx
	}
}

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(mgr *session.Manager, opts ...Option) *Server {
	s := &Server{
		manager:   mgr,
		mcpServer: server.NewMCPServer("stepwise-mcp", stepwise.Version, server.WithToolCapabilities(false)),
		base:      context.Background(),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "mcp")
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves on in/out until ctx is done or in is closed.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
}

// ServeSSE serves on the given port using SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_algorithms",
		mcp.WithDescription("List the algorithms that can be run, with their pseudocode lines."),
		mcp.WithOutputSchema[AlgorithmsResponse](),
	), mcp.NewStructuredToolHandler(s.handleListAlgorithms))

	s.mcpServer.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Create a session running one or more algorithms side by side over the same data. "+
			"Give exactly one of values, grid, random or maze."),
		mcp.WithArray("algorithms", mcp.Required(), mcp.Description("Algorithm ids or names, e.g. [\"bubble_sort\", \"quick\"]"),
			mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("values", mcp.Description("Sequence to sort or search"), mcp.Items(map[string]any{"type": "integer"})),
		mcp.WithArray("grid", mcp.Description("Maze rows, '#' for walls and '.' for free cells"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithObject("random", mcp.Description("Generate a sequence"), mcp.Properties(map[string]any{
			"min":      map[string]any{"type": "integer"},
			"max":      map[string]any{"type": "integer"},
			"size":     map[string]any{"type": "integer"},
			"seed":     map[string]any{"type": "integer"},
			"distinct": map[string]any{"type": "boolean"},
		})),
		mcp.WithObject("maze", mcp.Description("Generate a maze; empty for the demo maze"), mcp.Properties(map[string]any{
			"rows":    map[string]any{"type": "integer"},
			"cols":    map[string]any{"type": "integer"},
			"density": map[string]any{"type": "number"},
			"seed":    map[string]any{"type": "integer"},
		})),
		mcp.WithNumber("target", mcp.Description("Value searched for by search algorithms")),
		mcp.WithArray("start", mcp.Description("[row, col] start cell for pathfinding"), mcp.Items(map[string]any{"type": "integer"})),
		mcp.WithArray("goal", mcp.Description("[row, col] goal cell, defaults to the bottom-right cell"), mcp.Items(map[string]any{"type": "integer"})),
		mcp.WithString("direction", mcp.Description("Sort order"), mcp.Enum("asc", "desc")),
		mcp.WithBoolean("autoplay", mcp.Description("Start the session and let it run at its own pacing")),
		mcp.WithOutputSchema[session.Status](),
	), mcp.NewStructuredToolHandler(s.handleStartSession))

	s.mcpServer.AddTool(mcp.NewTool("control_session",
		mcp.WithDescription("Start, pause, resume, toggle or stop a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("action", mcp.Required(), mcp.Enum("start", "pause", "resume", "toggle", "stop")),
		mcp.WithOutputSchema[session.Status](),
	), mcp.NewStructuredToolHandler(s.handleControlSession))

	s.mcpServer.AddTool(mcp.NewTool("tick_session",
		mcp.WithDescription("Advance a running session by one or more ticks and return the steps produced."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithNumber("ticks", mcp.Description("Number of ticks, default 1"), mcp.Min(1), mcp.Max(MaxTicks)),
		mcp.WithOutputSchema[TickResponse](),
	), mcp.NewStructuredToolHandler(s.handleTickSession))

	s.mcpServer.AddTool(mcp.NewTool("session_status",
		mcp.WithDescription("Get the state and per-lane progress of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[session.Status](),
	), mcp.NewStructuredToolHandler(s.handleSessionStatus))

	s.mcpServer.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List live sessions."),
		mcp.WithOutputSchema[SessionsResponse](),
	), mcp.NewStructuredToolHandler(s.handleListSessions))

	s.mcpServer.AddTool(mcp.NewTool("list_results",
		mcp.WithDescription("List the persisted summaries of finished lanes."),
		mcp.WithOutputSchema[ResultsResponse](),
	), mcp.NewStructuredToolHandler(s.handleListResults))
}

func (s *Server) handleListAlgorithms(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (AlgorithmsResponse, error) {
	return AlgorithmsResponse{Algorithms: s.manager.Catalogue().List()}, nil
}

func (s *Server) handleStartSession(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (session.Status, error) {
	var req session.Request
	if err := mapstructure.Decode(args, &req); err != nil {
		return session.Status{}, fmt.Errorf("invalid arguments: %w", err)
	}
	algorithms, data, params, err := req.Resolve()
	if err != nil {
		return session.Status{}, err
	}
	sess, err := s.manager.Create(ctx, algorithms, data, params)
	if err != nil {
		return session.Status{}, err
	}
	s.logger.Info("session created", "session_id", sess.ID(), "algorithms", algorithms)

	if autoplay, _ := args["autoplay"].(bool); autoplay {
		if err := s.manager.Play(s.base, sess.ID()); err != nil {
			return session.Status{}, err
		}
	}
	return sess.Status(), nil
}

func (s *Server) handleControlSession(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (session.Status, error) {
	id, _ := args["session_id"].(string)
	action, _ := args["action"].(string)
	if err := s.manager.Control(ctx, id, action); err != nil {
		return session.Status{}, err
	}
	return s.status(id)
}

func (s *Server) handleTickSession(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TickResponse, error) {
	id, _ := args["session_id"].(string)
	ticks := 1
	if n, ok := args["ticks"].(float64); ok {
		ticks = int(n)
	}
	if ticks < 1 || ticks > MaxTicks {
		return TickResponse{}, fmt.Errorf("ticks must be between 1 and %d", MaxTicks)
	}

	resp := TickResponse{Frames: []scheduler.Frame{}}
	for range ticks {
		frames, err := s.manager.Tick(ctx, id)
		if err != nil {
			return TickResponse{}, err
		}
		if len(frames) == 0 {
			break
		}
		resp.Frames = append(resp.Frames, frames...)
	}
	status, err := s.status(id)
	if err != nil {
		return TickResponse{}, err
	}
	resp.Session = status
	return resp, nil
}

func (s *Server) handleSessionStatus(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (session.Status, error) {
	id, _ := args["session_id"].(string)
	return s.status(id)
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionsResponse, error) {
	sessions := s.manager.List()
	out := SessionsResponse{Sessions: make([]session.Status, 0, len(sessions))}
	for _, sess := range sessions {
		out.Sessions = append(out.Sessions, sess.Status())
	}
	return out, nil
}

func (s *Server) handleListResults(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ResultsResponse, error) {
	results, err := s.manager.Results(ctx)
	if err != nil {
		return ResultsResponse{}, err
	}
	if results == nil {
		results = []domain.RunSummary{}
	}
	return ResultsResponse{Results: results}, nil
}

func (s *Server) status(id string) (session.Status, error) {
	sess, err := s.manager.Get(id)
	if err != nil {
		return session.Status{}, err
	}
	return sess.Status(), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("stepwise://algorithms", "Algorithm Catalogue",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(s.manager.Catalogue().List())
		if err != nil {
			return nil, fmt.Errorf("failed to encode catalogue: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "stepwise://algorithms",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
