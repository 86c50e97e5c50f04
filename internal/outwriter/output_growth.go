package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/pipewise/ilitrack/internal/parquet"
	"github.com/pipewise/ilitrack/schema"
)

// growthReport is the JSON shape of the top-growth summary.
type growthReport struct {
	OldYear     int                 `json:"old_year,omitempty"`
	NewYear     int                 `json:"new_year,omitempty"`
	Top         []schema.Match      `json:"top"`
	GrowthStats *schema.GrowthStats `json:"growth_stats,omitempty"`
}

// PrintGrowthResults outputs the fastest-growing defects, dispatching based on
// the output format configured.
func PrintGrowthResults(result *schema.ComparisonResult, top []schema.Match, cfg *contract.Config) error {
	fmtFloat, fmtOpt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		report := growthReport{
			OldYear:     result.OldYear,
			NewYear:     result.NewYear,
			Top:         top,
			GrowthStats: result.GrowthStats,
		}
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGrowthCSV(w, top, fmtFloat, fmtOpt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteMatchesParquet(top, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Printf("💾 Wrote %d matches to %s\n", len(top), cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGrowthTable(w, result, top, cfg, fmtFloat, fmtOpt)
		}, "Wrote table")
	}
	return nil
}

// writeGrowthTable prints the ranked top-growth table.
func writeGrowthTable(w io.Writer, result *schema.ComparisonResult, top []schema.Match, cfg *contract.Config, fmtFloat, fmtOpt func(float64) string) error {
	if result.OldYear != 0 && result.NewYear != 0 {
		if _, err := fmt.Fprintf(w, "Top %d growing defects, %d against %d:\n", len(top), result.NewYear, result.OldYear); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "Top %d growing defects:\n", len(top)); err != nil {
			return err
		}
	}
	if len(top) == 0 {
		_, err := fmt.Fprintln(w, "No positive depth growth found")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Dist [m]", "Type", "Old [%]", "New [%]", "Rate", "Label"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	typeWidth := typeColumnWidth(cfg)
	var data [][]string
	for i, m := range top {
		rate := fmtOpt(m.GrowthRatePctPerYear) + " %/yr"
		if m.WallGrowth != nil {
			rate = fmtOpt(m.GrowthRateMMPerYear) + " mm/yr"
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			fmtFloat(m.LogDist),
			truncateCell(m.DefectType, typeWidth),
			fmtOpt(m.OldDepthPct),
			fmtOpt(m.NewDepthPct),
			rate,
			severityLabel(m, cfg.UseColors),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if result.GrowthStats != nil {
		return writeGrowthStats(w, result.GrowthStats, fmtFloat)
	}
	return nil
}

// writeGrowthCSV writes the ranked top-growth rows in CSV format.
func writeGrowthCSV(w io.Writer, top []schema.Match, fmtFloat, fmtOpt func(float64) string) error {
	header := []string{
		"rank", "new_defect_id", "old_defect_id", "log_dist_m", "defect_type",
		"old_depth_pct", "new_depth_pct", "growth_rate_pct_per_year",
		"growth_rate_mm_per_year", "label",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, m := range top {
			rec := []string{
				strconv.Itoa(i + 1),
				strconv.Itoa(m.NewDefectID),
				strconv.Itoa(m.OldDefectID),
				fmtFloat(m.LogDist),
				m.DefectType,
				fmtOpt(m.OldDepthPct),
				fmtOpt(m.NewDepthPct),
				fmtOpt(m.GrowthRatePctPerYear),
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
