package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/pipewise/ilitrack/schema"
)

// PrintTrendResults outputs the multi-survey trend, dispatching based on the
// output format configured.
func PrintTrendResults(trend *schema.TrendResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, trend)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendCSV(w, trend, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for trends")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendTable(w, trend, fmtFloat)
		}, "Wrote table")
	}
	return nil
}

func writeTrendTable(w io.Writer, trend *schema.TrendResult, fmtFloat func(float64) string) error {
	if len(trend.Points) == 0 {
		_, err := fmt.Fprintln(w, "No trend points available")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Interval", "Total", "Common", "New", "New [%]", "Avg rate"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range trend.Points {
		rate := ""
		if p.HasGrowth {
			rate = fmtFloat(p.AvgGrowthRatePct) + " %/yr"
			if p.HasMM {
				rate = fmtFloat(p.AvgGrowthRateMM) + " mm/yr"
			}
		}
		data = append(data, []string{
			fmt.Sprintf("%d-%d", p.OldYear, p.NewYear),
			strconv.Itoa(p.TotalDefects),
			strconv.Itoa(p.CommonDefectsCount),
			strconv.Itoa(p.NewDefectsCount),
			fmtFloat(p.PctNew),
			rate,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeTrendCSV(w io.Writer, trend *schema.TrendResult, fmtFloat func(float64) string) error {
	header := []string{
		"old_year", "new_year", "total_defects", "common_defects_count",
		"new_defects_count", "pct_new", "avg_growth_rate_pct", "avg_growth_rate_mm",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, p := range trend.Points {
			rec := []string{
				strconv.Itoa(p.OldYear),
				strconv.Itoa(p.NewYear),
				strconv.Itoa(p.TotalDefects),
				strconv.Itoa(p.CommonDefectsCount),
				strconv.Itoa(p.NewDefectsCount),
				fmtFloat(p.PctNew),
			}
			if p.HasGrowth {
				rec = append(rec, fmtFloat(p.AvgGrowthRatePct))
			} else {
				rec = append(rec, "")
			}
			if p.HasMM {
				rec = append(rec, fmtFloat(p.AvgGrowthRateMM))
			} else {
				rec = append(rec, "")
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
