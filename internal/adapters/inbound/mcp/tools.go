package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/debloat-dev/debloat/internal/adapters/outbound/config"
	"github.com/debloat-dev/debloat/internal/adapters/outbound/scanner"
	"github.com/debloat-dev/debloat/internal/application"
	"github.com/debloat-dev/debloat/internal/domain"
)

// registerTools registers the debloat MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. debloat_scan
	s.AddTool(
		mcplib.NewTool("debloat_scan",
			mcplib.WithDescription("Scan the project for bloat and return classified, prioritized findings as JSON"),
			mcplib.WithNumber("level", mcplib.Description("Scan depth: 1 quick, 2 targeted, 3 comprehensive (default 2)")),
			mcplib.WithString("focus", mcplib.Description("Finding focus: code, docs, deps, or all (default all)")),
		),
		handleScan(projectPath),
	)

	// 2. debloat_classify
	s.AddTool(
		mcplib.NewTool("debloat_classify",
			mcplib.WithDescription("Classify the risk of acting on a hypothetical finding"),
			mcplib.WithNumber("confidence", mcplib.Required(), mcplib.Description("Collector agreement confidence, 0-100")),
			mcplib.WithNumber("reference_count", mcplib.Required(), mcplib.Description("Inbound reference count")),
			mcplib.WithString("category", mcplib.Description("File category: deprecated, test, archive, docs, infra, core, or code")),
			mcplib.WithBoolean("is_core", mcplib.Description("Whether the file is core")),
		),
		handleClassify(),
	)
}

func handleScan(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		level := 2
		if v, ok := request.GetArguments()["level"].(float64); ok {
			level = int(v)
		}
		focus := domain.FocusAll
		if v, ok := request.GetArguments()["focus"].(string); ok && v != "" {
			focus = domain.Focus(v)
		}

		svc := application.NewScanService(scanner.New(), config.New())
		result, err := svc.Scan(projectPath, application.ScanOptions{Level: level, Focus: focus})
		if err != nil {
			return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleClassify() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		confidence, ok := args["confidence"].(float64)
		if !ok {
			return errorResult("confidence is required"), nil
		}
		refs, ok := args["reference_count"].(float64)
		if !ok {
			return errorResult("reference_count is required"), nil
		}
		category, _ := args["category"].(string)
		isCore, _ := args["is_core"].(bool)

		risk := domain.Classify(int(confidence), int(refs), domain.Category(category), isCore)
		return jsonResult(map[string]string{"risk": risk.String()})
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
