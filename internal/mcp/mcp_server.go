// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pipewise/ilitrack/internal/contract"
)

// NewMCPServer initializes and configures the ilitrack MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"ILI Survey Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: list_surveys ---
	s.AddTool(mcp.NewTool("list_surveys",
		mcp.WithDescription("List all loaded inspection surveys with their joint and defect counts."),
	), h.handleListSurveys)

	// --- 2. Tool: compare_surveys ---
	s.AddTool(mcp.NewTool("compare_surveys",
		mcp.WithDescription("Correlate the defects of two loaded surveys by pipeline position and compute growth when depth data allows."),
		mcp.WithNumber("old_year", mcp.Description("Year of the older survey."), mcp.Required()),
		mcp.WithNumber("new_year", mcp.Description("Year of the newer survey."), mcp.Required()),
		mcp.WithNumber("tolerance", mcp.Description("Matching tolerance along the pipeline in meters (defaults to 0.01).")),
	), h.handleCompareSurveys)

	// --- 3. Tool: growth_summary ---
	s.AddTool(mcp.NewTool("growth_summary",
		mcp.WithDescription("Return the fastest-growing matched defects between two loaded surveys."),
		mcp.WithNumber("old_year", mcp.Description("Year of the older survey."), mcp.Required()),
		mcp.WithNumber("new_year", mcp.Description("Year of the newer survey."), mcp.Required()),
		mcp.WithNumber("tolerance", mcp.Description("Matching tolerance along the pipeline in meters.")),
		mcp.WithNumber("top", mcp.Description("Number of defects to return (defaults to 10).")),
	), h.handleGrowthSummary)

	// --- 4. Tool: near_miss ---
	s.AddTool(mcp.NewTool("near_miss",
		mcp.WithDescription("Scan candidate defect pairs within twice the matching tolerance for threshold tuning."),
		mcp.WithNumber("old_year", mcp.Description("Year of the older survey."), mcp.Required()),
		mcp.WithNumber("new_year", mcp.Description("Year of the newer survey."), mcp.Required()),
		mcp.WithNumber("tolerance", mcp.Description("Matching tolerance along the pipeline in meters.")),
	), h.handleNearMiss)

	return s
}

// StartMCPServer starts the ilitrack MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
