package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewDebloatMCPServer creates an MCP server with the debloat tools
// registered. Only read-only tools are exposed; mutations stay behind the
// interactive CLI where the approval gate lives.
func NewDebloatMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"debloat",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, projectPath)

	return s
}
