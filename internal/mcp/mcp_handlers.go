package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pipewise/ilitrack/core"
	"github.com/pipewise/ilitrack/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// applyYearPair copies the per-request year pair and tolerance onto a cloned
// config, re-running the same validation the CLI applies.
func (h *toolHandler) applyYearPair(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	cfg.OldYear = request.GetInt("old_year", 0)
	cfg.NewYear = request.GetInt("new_year", 0)
	cfg.CompareMode = cfg.OldYear != 0 && cfg.NewYear != 0
	if t := request.GetFloat("tolerance", 0); t > 0 {
		cfg.Tolerance = t
	}

	if !cfg.CompareMode {
		return nil, fmt.Errorf("old_year and new_year are required")
	}
	if cfg.OldYear == cfg.NewYear {
		return nil, fmt.Errorf("old_year and new_year must differ, got %d for both", cfg.OldYear)
	}
	if cfg.Tolerance < contract.MinTolerance || cfg.Tolerance > contract.MaxTolerance {
		return nil, fmt.Errorf("tolerance %g m is outside the supported range [%g, %g]",
			cfg.Tolerance, contract.MinTolerance, contract.MaxTolerance)
	}
	return cfg, nil
}

func (h *toolHandler) handleListSurveys(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store := h.mgr.GetSurveyStore()
	if store == nil {
		return mcp.NewToolResultError("survey store is not initialized"), nil
	}
	infos, err := store.ListSurveys()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(infos, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCompareSurveys(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyYearPair(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid comparison parameters: %v", err)), nil
	}

	result, err := core.GetComparisonResults(cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGrowthSummary(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyYearPair(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid growth parameters: %v", err)), nil
	}
	if n := request.GetInt("top", 0); n > 0 {
		cfg.TopN = n
	}

	result, top, err := core.GetGrowthResults(cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("growth analysis failed: %v", err)), nil
	}

	report := map[string]any{
		"old_year":     result.OldYear,
		"new_year":     result.NewYear,
		"top":          top,
		"growth_stats": result.GrowthStats,
	}
	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleNearMiss(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyYearPair(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid diagnostics parameters: %v", err)), nil
	}

	view, err := core.GetDiagnostics(cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("diagnostics failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(view, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
