// Package mcpserver exposes the analyzers as Model Context Protocol tools
// served over stdio.
package mcpserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/panbanda/mccabre/internal/logging"
	"github.com/panbanda/mccabre/pkg/config"
)

// Server wraps the MCP server and registers all mccabre tools.
type Server struct {
	server *mcp.Server
	cfg    *config.Config
	logger *slog.Logger
}

// Option is a functional option for configuring Server.
type Option func(*Server)

// WithConfig sets the base configuration tool calls start from.
func WithConfig(cfg *config.Config) Option {
	return func(s *Server) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithLogger sets the logger passed to the analyzers.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logging.OrDiscard(l)
	}
}

// NewServer creates a new MCP server with all tools and prompts registered.
func NewServer(version string, opts ...Option) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: version,
		},
		nil,
	)

	s := &Server{server: server, cfg: config.DefaultConfig(), logger: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze",
		Description: describeAnalyze(),
	}, s.handleAnalyze)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_complexity",
		Description: describeComplexity(),
	}, s.handleComplexity)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_clones",
		Description: describeClones(),
	}, s.handleClones)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_loc",
		Description: describeLOC(),
	}, s.handleLOC)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_snippet",
		Description: describeSnippet(),
	}, s.handleSnippet)
}
