// Package mcpserver assembles the MCP stdio server from the endpoint catalog.
//
// Every catalog entry becomes one MCP tool whose handler performs exactly one
// HTTP call through the transport client. Handler failures are rendered as
// error results for the calling assistant; they never surface as protocol
// faults or crash the process.
package mcpserver

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"timetrack-mcp/catalog"
	"timetrack-mcp/otel"
	"timetrack-mcp/trackapi"
)

const serverName = "timetrack-mcp"

// Options configures the server assembly.
type Options struct {
	// Client is the transport the tool handlers invoke.
	Client catalog.Caller
	// Version is reported during the MCP initialize handshake.
	Version string
	// Logger receives per-invocation lines; must write to stderr when the
	// server runs over stdio. Defaults to slog.Default().
	Logger *slog.Logger
	// Observer records invocation telemetry; nil disables it.
	Observer *otel.InvokeObserver
}

// Server is the assembled MCP server plus its invocation plumbing.
type Server struct {
	mcp      *server.MCPServer
	invoker  *catalog.Invoker
	logger   *slog.Logger
	observer *otel.InvokeObserver
}

// New builds the server and registers every catalog endpoint as a tool.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		mcp: server.NewMCPServer(serverName, version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		invoker:  catalog.NewInvoker(opts.Client),
		logger:   logger,
		observer: opts.Observer,
	}
	for _, ep := range catalog.Endpoints() {
		s.mcp.AddTool(BuildTool(ep), s.handler(ep))
	}
	return s
}

// ServeStdio speaks the protocol over stdin/stdout until ctx is canceled or
// stdin closes. Diagnostics go to stderr; stdout belongs to the protocol.
func (s *Server) ServeStdio(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(os.Stderr, "", log.LstdFlags))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// BuildTool translates an endpoint descriptor into an MCP tool declaration.
func BuildTool(ep catalog.Endpoint) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(ep.Description)}
	for _, p := range ep.Params {
		var propOpts []mcp.PropertyOption
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		if p.Description != "" {
			propOpts = append(propOpts, mcp.Description(p.Description))
		}
		switch p.Type {
		case catalog.TypeString:
			if len(p.Enum) > 0 {
				propOpts = append(propOpts, mcp.Enum(p.Enum...))
			}
			opts = append(opts, mcp.WithString(p.Name, propOpts...))
		case catalog.TypeNumber:
			opts = append(opts, mcp.WithNumber(p.Name, propOpts...))
		case catalog.TypeBoolean:
			opts = append(opts, mcp.WithBoolean(p.Name, propOpts...))
		case catalog.TypeNumberList, catalog.TypeIDList:
			propOpts = append(propOpts, mcp.Items(map[string]any{"type": "number"}))
			opts = append(opts, mcp.WithArray(p.Name, propOpts...))
		}
	}
	return mcp.NewTool(ep.Name, opts...)
}

func (s *Server) handler(ep catalog.Endpoint) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		invocationID := uuid.NewString()
		start := time.Now()

		text, err := s.invoker.Invoke(ctx, ep, req.GetArguments())
		elapsed := time.Since(start)

		status := 0
		var apiErr *trackapi.APIError
		if errors.As(err, &apiErr) {
			status = apiErr.Status
		}
		s.observer.Observe(otel.InvokeObservation{
			Tool:         ep.Name,
			InvocationID: invocationID,
			Status:       status,
			Success:      err == nil,
			Duration:     elapsed,
		})

		if err != nil {
			s.logger.Warn("tool call failed",
				"invocation", invocationID,
				"tool", ep.Name,
				"status", status,
				"error", err)
			return mcp.NewToolResultError(catalog.FormatError(err)), nil
		}
		s.logger.Debug("tool call",
			"invocation", invocationID,
			"tool", ep.Name,
			"elapsed", elapsed)
		return mcp.NewToolResultText(text), nil
	}
}
