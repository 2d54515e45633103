// Package mcp exposes the notification history and preview cache to agents
// over the Model Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/btouchard/notch-hook/internal/mcp/handlers"
	"github.com/btouchard/notch-hook/internal/preview"
	"github.com/btouchard/notch-hook/internal/project"
)

// Deps holds shared dependencies injected into MCP handlers.
type Deps struct {
	Project  *project.Project
	Previews *preview.Generator
	// History is nil when history is disabled.
	History handlers.HistoryLister
	Version string
}

// NewServer creates and configures the MCP server with all tools registered.
func NewServer(deps *Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"notch-hook",
		deps.Version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)

	registerTools(s, deps)

	return s
}
