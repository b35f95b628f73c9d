// Package mcp exposes the transit engine as an MCP server so assistants
// can run transit searches and station lookups as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Anonyfox/celestine-sub000/pkg/domain"
	"github.com/Anonyfox/celestine-sub000/pkg/search"
)

// Engine defines the interface required by the MCP server.
type Engine interface {
	SearchTransits(ctx context.Context, points []domain.NatalPoint, start, end time.Time, cfg search.Config) (*search.Result, error)
	FindStations(ctx context.Context, body domain.Body, start, end time.Time) ([]domain.StationPoint, error)
	FindRetrogradePeriods(ctx context.Context, body domain.Body, start, end time.Time) ([]domain.RetrogradePeriod, error)
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, version string) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("celestine-mcp", version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
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
	// TOOL: search_transits
	searchTool := mcp.NewTool("search_transits",
		mcp.WithDescription("Search transit aspects of the current planets against a natal chart over a date range."),
		mcp.WithString("start", mcp.Required(), mcp.Description("Range start, RFC3339 (e.g. 2024-01-01T00:00:00Z)")),
		mcp.WithString("end", mcp.Required(), mcp.Description("Range end, RFC3339")),
		mcp.WithString("points", mcp.Required(), mcp.Description(`JSON array of natal points: [{"name":"Natal Sun","longitude":120,"class":"luminary"}]`)),
		mcp.WithString("config", mcp.Description("JSON search config: body/aspect subsets, orb overrides, dedup guard")),
		mcp.WithOutputSchema[search.Result](),
	)
	s.mcpServer.AddTool(searchTool, mcp.NewStructuredToolHandler(s.handleSearchTransits))

	// TOOL: find_stations
	stationsTool := mcp.NewTool("find_stations",
		mcp.WithDescription("Find the retrograde and direct stations of a planet in a date range."),
		mcp.WithString("body", mcp.Required(), mcp.Description("Planet name, lowercase (e.g. mercury)")),
		mcp.WithString("start", mcp.Required(), mcp.Description("Range start, RFC3339")),
		mcp.WithString("end", mcp.Required(), mcp.Description("Range end, RFC3339")),
	)
	s.mcpServer.AddTool(stationsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, start, end, err := rangeArgs(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		stations, err := s.engine.FindStations(ctx, body, start, end)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("find stations failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(stations)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: find_retrogrades
	retroTool := mcp.NewTool("find_retrogrades",
		mcp.WithDescription("Find the complete retrograde periods of a planet in a date range."),
		mcp.WithString("body", mcp.Required(), mcp.Description("Planet name, lowercase (e.g. mercury)")),
		mcp.WithString("start", mcp.Required(), mcp.Description("Range start, RFC3339")),
		mcp.WithString("end", mcp.Required(), mcp.Description("Range end, RFC3339")),
	)
	s.mcpServer.AddTool(retroTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, start, end, err := rangeArgs(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		periods, err := s.engine.FindRetrogradePeriods(ctx, body, start, end)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("find retrogrades failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(periods)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleSearchTransits(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (search.Result, error) {
	startStr, _ := args["start"].(string)
	endStr, _ := args["end"].(string)

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return search.Result{}, fmt.Errorf("invalid start %q: expected RFC3339", startStr)
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return search.Result{}, fmt.Errorf("invalid end %q: expected RFC3339", endStr)
	}

	var points []domain.NatalPoint
	if pointsStr, ok := args["points"].(string); ok {
		if err := json.Unmarshal([]byte(pointsStr), &points); err != nil {
			return search.Result{}, fmt.Errorf("invalid points: %w", err)
		}
	}

	var cfg search.Config
	if cfgStr, ok := args["config"].(string); ok && cfgStr != "" {
		if err := json.Unmarshal([]byte(cfgStr), &cfg); err != nil {
			return search.Result{}, fmt.Errorf("invalid config: %w", err)
		}
	}

	result, err := s.engine.SearchTransits(ctx, points, start, end, cfg)
	if err != nil {
		return search.Result{}, fmt.Errorf("search failed: %w", err)
	}
	return *result, nil
}

func rangeArgs(request mcp.CallToolRequest) (domain.Body, time.Time, time.Time, error) {
	body := domain.Body(request.GetString("body", ""))
	if !body.Valid() {
		return "", time.Time{}, time.Time{}, fmt.Errorf("unknown body %q", body)
	}
	start, err := time.Parse(time.RFC3339, request.GetString("start", ""))
	if err != nil {
		return "", time.Time{}, time.Time{}, fmt.Errorf("invalid start: expected RFC3339")
	}
	end, err := time.Parse(time.RFC3339, request.GetString("end", ""))
	if err != nil {
		return "", time.Time{}, time.Time{}, fmt.Errorf("invalid end: expected RFC3339")
	}
	return body, start, end, nil
}
