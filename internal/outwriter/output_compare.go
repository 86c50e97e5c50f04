package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/pipewise/ilitrack/internal/parquet"
	"github.com/pipewise/ilitrack/schema"
)

// PrintComparisonResults outputs a comparison, dispatching based on the
// output format configured.
func PrintComparisonResults(result *schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtOpt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonCSV(w, result, fmtFloat, fmtOpt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteMatchesParquet(result.Matches, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Printf("💾 Wrote %d matches to %s\n", len(result.Matches), cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonTable(w, result, cfg, fmtFloat, fmtOpt, duration)
		}, "Wrote table")
	}
	return nil
}

// writeComparisonTable generates and writes the human-readable comparison.
func writeComparisonTable(w io.Writer, result *schema.ComparisonResult, cfg *contract.Config, fmtFloat, fmtOpt func(float64) string, duration time.Duration) error {
	if err := writeComparisonSummary(w, result, fmtFloat); err != nil {
		return err
	}

	withGrowth := result.GrowthStats != nil
	headers := []string{"New ID", "Old ID", "Dist [m]", "Δ [m]", "Type"}
	if withGrowth {
		headers = append(headers, "Old [%]", "New [%]", "Rate", "Label")
	}

	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	typeWidth := typeColumnWidth(cfg)
	var data [][]string
	for _, m := range limitMatches(result.Matches, cfg.ResultLimit) {
		row := []string{
			strconv.Itoa(m.NewDefectID),
			strconv.Itoa(m.OldDefectID),
			fmtFloat(m.LogDist),
			fmtFloat(m.DistanceDiff),
			truncateCell(m.DefectType, typeWidth),
		}
		if withGrowth {
			row = append(row, matchGrowthCells(m, fmtOpt, cfg.UseColors)...)
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if shown := min(len(result.Matches), cfg.ResultLimit); shown < len(result.Matches) {
		if _, err := fmt.Fprintf(w, "Showing %d of %d matches\n", shown, len(result.Matches)); err != nil {
			return err
		}
	}
	if err := writeTypeDistribution(w, result.TypeDistribution, fmtFloat); err != nil {
		return err
	}
	if withGrowth {
		if err := writeGrowthStats(w, result.GrowthStats, fmtFloat); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Comparison completed in %v\n", duration)
	return err
}

// matchGrowthCells renders the growth columns of one match. The rate column
// shows mm/yr whenever the wall conversion exists, pct/yr otherwise.
func matchGrowthCells(m schema.Match, fmtOpt func(float64) string, colored bool) []string {
	if m.DepthGrowth == nil {
		return []string{"", "", "", ""}
	}
	rate := fmtOpt(m.GrowthRatePctPerYear) + " %/yr"
	if m.WallGrowth != nil {
		rate = fmtOpt(m.GrowthRateMMPerYear) + " mm/yr"
	}
	return []string{
		fmtOpt(m.OldDepthPct),
		fmtOpt(m.NewDepthPct),
		rate,
		severityLabel(m, colored),
	}
}

// writeComparisonSummary prints the headline numbers above the match table.
func writeComparisonSummary(w io.Writer, result *schema.ComparisonResult, fmtFloat func(float64) string) error {
	if result.OldYear != 0 && result.NewYear != 0 {
		if _, err := fmt.Fprintf(w, "Comparing %d against %d (tolerance %g m)\n", result.NewYear, result.OldYear, result.Tolerance); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "Comparing surveys (tolerance %g m)\n", result.Tolerance); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total defects: %d | Common: %d (%s%%) | New: %d (%s%%)\n",
		result.TotalDefects,
		result.CommonDefectsCount, fmtFloat(result.PctCommon),
		result.NewDefectsCount, fmtFloat(result.PctNew))
	return err
}

// writeTypeDistribution prints the unmatched-new-defect type breakdown.
func writeTypeDistribution(w io.Writer, dist []schema.TypeCount, fmtFloat func(float64) string) error {
	if len(dist) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "New defect types:"); err != nil {
		return err
	}
	for _, tc := range dist {
		if _, err := fmt.Fprintf(w, "  %s: %d (%s%%)\n", tc.DefectType, tc.Count, fmtFloat(tc.Percentage)); err != nil {
			return err
		}
	}
	return nil
}

// writeGrowthStats prints the growth aggregate block, mm first when present.
func writeGrowthStats(w io.Writer, stats *schema.GrowthStats, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "Growth over %d matched defects:\n", stats.TotalMatchedDefects); err != nil {
		return err
	}
	if stats.GrowthStatsMM != nil {
		if _, err := fmt.Fprintf(w, "  Avg rate: %s mm/yr | Avg positive: %s mm/yr | Max: %s mm/yr\n",
			fmtFloat(stats.AvgGrowthRateMM), fmtFloat(stats.AvgPositiveGrowthMM), fmtFloat(stats.MaxGrowthRateMM)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "  Avg rate: %s %%/yr | Avg positive: %s %%/yr | Max: %s %%/yr\n",
		fmtFloat(stats.AvgGrowthRatePct), fmtFloat(stats.AvgPositiveGrowthPct), fmtFloat(stats.MaxGrowthRatePct)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "  Negative growth: %d (%s%%) flagged for review\n",
		stats.NegativeGrowthCount, fmtFloat(stats.PctNegativeGrowth))
	return err
}

// writeComparisonCSV writes the matches table in CSV format.
func writeComparisonCSV(w io.Writer, result *schema.ComparisonResult, fmtFloat, fmtOpt func(float64) string) error {
	header := []string{
		"new_defect_id", "old_defect_id", "log_dist_m", "old_log_dist_m",
		"distance_diff_m", "defect_type",
		"old_depth_pct", "new_depth_pct", "growth_rate_pct_per_year",
		"growth_rate_mm_per_year", "label",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, m := range result.Matches {
			rec := []string{
				strconv.Itoa(m.NewDefectID),
				strconv.Itoa(m.OldDefectID),
				fmtFloat(m.LogDist),
				fmtFloat(m.OldLogDist),
				fmtFloat(m.DistanceDiff),
				m.DefectType,
			}
			if m.DepthGrowth != nil {
				rec = append(rec, fmtOpt(m.OldDepthPct), fmtOpt(m.NewDepthPct), fmtOpt(m.GrowthRatePctPerYear))
			} else {
				rec = append(rec, "", "", "")
			}
			if m.WallGrowth != nil {
				rec = append(rec, fmtOpt(m.GrowthRateMMPerYear))
			} else {
				rec = append(rec, "")
			}
			rec = append(rec, severityLabel(m, false))
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
