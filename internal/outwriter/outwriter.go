// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/pipewise/ilitrack/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteComparison prints comparison results using the configured output format.
func (ow *OutWriter) WriteComparison(result *schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	return PrintComparisonResults(result, cfg, duration)
}

// WriteGrowth prints the top-growth summary using the configured output format.
func (ow *OutWriter) WriteGrowth(result *schema.ComparisonResult, top []schema.Match, cfg *contract.Config) error {
	return PrintGrowthResults(result, top, cfg)
}

// WriteDiagnostics prints the near-miss view using the configured output format.
func (ow *OutWriter) WriteDiagnostics(view *schema.DiagnosticView, cfg *contract.Config) error {
	return PrintDiagnostics(view, cfg)
}

// WriteSurveyList prints stored survey summaries using the configured output format.
func (ow *OutWriter) WriteSurveyList(infos []schema.SurveyInfo, cfg *contract.Config) error {
	return PrintSurveyList(infos, cfg)
}

// WriteSurveyDetail prints one survey's joints or defects table.
func (ow *OutWriter) WriteSurveyDetail(survey *schema.Survey, cfg *contract.Config) error {
	return PrintSurveyDetail(survey, cfg)
}

// WriteStats prints dimension statistics and the joint severity ranking.
func (ow *OutWriter) WriteStats(dims []schema.DimensionStats, joints []schema.JointSeverity, cfg *contract.Config) error {
	return PrintStatsResults(dims, joints, cfg)
}

// WriteTrend prints the multi-survey trend using the configured output format.
func (ow *OutWriter) WriteTrend(trend *schema.TrendResult, cfg *contract.Config) error {
	return PrintTrendResults(trend, cfg)
}
