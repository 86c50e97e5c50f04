// Package core has core logic for ingestion, correlation and growth analysis.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/pipewise/ilitrack/internal/outwriter"
	"github.com/pipewise/ilitrack/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// requireStore resolves the survey store from the manager.
func requireStore(mgr contract.StoreManager) (contract.SurveyStore, error) {
	store := mgr.GetSurveyStore()
	if store == nil {
		return nil, errors.New("survey store is not initialized")
	}
	return store, nil
}

// ExecuteLoad ingests one raw inspection export and persists it under its year.
// It serves as the main entry point for the 'load' command.
func ExecuteLoad(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	if cfg.InputFile == "" {
		return errors.New("a survey file argument is required")
	}
	if cfg.Year == 0 {
		return errors.New("--year is required")
	}
	store, err := requireStore(mgr)
	if err != nil {
		return err
	}

	survey, err := LoadSurveyFile(cfg.InputFile, cfg.Year)
	if err != nil {
		return fmt.Errorf("failed to load survey file: %w", err)
	}
	if err := store.SaveSurvey(survey); err != nil {
		return fmt.Errorf("failed to save survey: %w", err)
	}

	fmt.Printf("Loaded survey %d: %d joints, %d defects from %s\n",
		survey.Year, len(survey.Joints.Joints), len(survey.Defects.Defects), cfg.InputFile)
	return nil
}

// GetComparisonResults resolves the two surveys and runs the correlation.
// Exposed for the MCP server, which consumes results instead of output.
func GetComparisonResults(cfg *contract.Config, mgr contract.StoreManager) (*schema.ComparisonResult, error) {
	store, err := requireStore(mgr)
	if err != nil {
		return nil, err
	}
	if !cfg.CompareMode {
		return nil, errors.New("--old-year and --new-year are required")
	}

	oldSurvey, err := store.GetSurvey(cfg.OldYear)
	if err != nil {
		return nil, fmt.Errorf("old survey %d: %w", cfg.OldYear, err)
	}
	newSurvey, err := store.GetSurvey(cfg.NewYear)
	if err != nil {
		return nil, fmt.Errorf("new survey %d: %w", cfg.NewYear, err)
	}

	result, err := Compare(oldSurvey.Defects, newSurvey.Defects, CompareOptions{
		OldYear:   oldSurvey.Year,
		NewYear:   newSurvey.Year,
		Tolerance: cfg.Tolerance,
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ExecuteCompare runs the cross-survey correlation and prints the results.
// It serves as the main entry point for the 'compare' command.
func ExecuteCompare(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	result, err := GetComparisonResults(cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteComparison(result, cfg, duration)
}

// GetGrowthResults runs the correlation and ranks the fastest-growing matches.
func GetGrowthResults(cfg *contract.Config, mgr contract.StoreManager) (*schema.ComparisonResult, []schema.Match, error) {
	result, err := GetComparisonResults(cfg, mgr)
	if err != nil {
		return nil, nil, err
	}
	if result.GrowthStats == nil {
		return nil, nil, errors.New("growth requires a depth channel in both surveys and a chronological year pair")
	}
	return result, TopGrowth(result, cfg.TopN), nil
}

// ExecuteGrowth prints the top-N fastest-growing defects.
func ExecuteGrowth(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	result, top, err := GetGrowthResults(cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteGrowth(result, top, cfg)
}

// GetDiagnostics runs the widened, non-consuming candidate scan.
func GetDiagnostics(cfg *contract.Config, mgr contract.StoreManager) (*schema.DiagnosticView, error) {
	store, err := requireStore(mgr)
	if err != nil {
		return nil, err
	}
	if !cfg.CompareMode {
		return nil, errors.New("--old-year and --new-year are required")
	}

	oldSurvey, err := store.GetSurvey(cfg.OldYear)
	if err != nil {
		return nil, fmt.Errorf("old survey %d: %w", cfg.OldYear, err)
	}
	newSurvey, err := store.GetSurvey(cfg.NewYear)
	if err != nil {
		return nil, fmt.Errorf("new survey %d: %w", cfg.NewYear, err)
	}
	return NearMissScan(oldSurvey.Defects, newSurvey.Defects, cfg.Tolerance), nil
}

// ExecuteDiagnose prints the near-miss view for threshold tuning.
func ExecuteDiagnose(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	view, err := GetDiagnostics(cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteDiagnostics(view, cfg)
}

// ExecuteSurveyList prints the stored survey summaries.
func ExecuteSurveyList(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	store, err := requireStore(mgr)
	if err != nil {
		return err
	}
	infos, err := store.ListSurveys()
	if err != nil {
		return fmt.Errorf("failed to list surveys: %w", err)
	}
	return outwriter.NewOutWriter().WriteSurveyList(infos, cfg)
}

// ExecuteSurveyShow prints one survey's joints or defects table.
func ExecuteSurveyShow(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	if cfg.Year == 0 {
		return errors.New("--year is required")
	}
	store, err := requireStore(mgr)
	if err != nil {
		return err
	}
	survey, err := store.GetSurvey(cfg.Year)
	if err != nil {
		return fmt.Errorf("survey %d: %w", cfg.Year, err)
	}
	return outwriter.NewOutWriter().WriteSurveyDetail(survey, cfg)
}

// ExecuteStats prints dimension statistics and the worst-joint ranking for
// one stored survey.
func ExecuteStats(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	if cfg.Year == 0 {
		return errors.New("--year is required")
	}
	store, err := requireStore(mgr)
	if err != nil {
		return err
	}
	survey, err := store.GetSurvey(cfg.Year)
	if err != nil {
		return fmt.Errorf("survey %d: %w", cfg.Year, err)
	}

	dims := DimensionStatistics(survey.Defects)
	joints := RankJoints(survey.Defects, cfg.TopN)
	return outwriter.NewOutWriter().WriteStats(dims, joints, cfg)
}

// ExecuteCheck runs the correlation and fails when the maximum observed growth
// rate exceeds the configured gate. Intended for integrity-program automation:
// a non-nil error drives a non-zero exit code.
func ExecuteCheck(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	if cfg.MaxGrowthRate <= 0 {
		return errors.New("--max-growth is required")
	}
	result, err := GetComparisonResults(cfg, mgr)
	if err != nil {
		return err
	}
	if result.GrowthStats == nil {
		return errors.New("check requires a depth channel in both surveys and a chronological year pair")
	}

	observed := result.GrowthStats.MaxGrowthRatePct
	unit := "%/yr"
	if result.GrowthStats.GrowthStatsMM != nil {
		observed = result.GrowthStats.MaxGrowthRateMM
		unit = "mm/yr"
	}

	if observed > cfg.MaxGrowthRate {
		return fmt.Errorf("max growth rate %.3f %s exceeds the configured gate %.3f %s",
			observed, unit, cfg.MaxGrowthRate, unit)
	}
	fmt.Printf("OK: max growth rate %.3f %s within gate %.3f %s\n",
		observed, unit, cfg.MaxGrowthRate, unit)
	return nil
}

// GetTrendResults compares consecutive stored surveys across the requested
// years (or all stored years when none were requested).
func GetTrendResults(cfg *contract.Config, mgr contract.StoreManager) (*schema.TrendResult, error) {
	store, err := requireStore(mgr)
	if err != nil {
		return nil, err
	}

	years := cfg.TrendYears
	if len(years) == 0 {
		infos, err := store.ListSurveys()
		if err != nil {
			return nil, fmt.Errorf("failed to list surveys: %w", err)
		}
		for _, info := range infos {
			years = append(years, info.Year)
		}
	}
	if len(years) < 2 {
		return nil, errors.New("trend needs at least two stored surveys")
	}

	surveys := make([]*schema.Survey, 0, len(years))
	for _, year := range years {
		survey, err := store.GetSurvey(year)
		if err != nil {
			return nil, fmt.Errorf("survey %d: %w", year, err)
		}
		surveys = append(surveys, survey)
	}
	return Trend(surveys, cfg.Tolerance)
}

// ExecuteTrend prints the multi-survey trend.
func ExecuteTrend(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	trend, err := GetTrendResults(cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteTrend(trend, cfg)
}
