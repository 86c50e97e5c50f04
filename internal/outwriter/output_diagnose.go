package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/pipewise/ilitrack/schema"
)

// PrintDiagnostics outputs the near-miss view, dispatching based on the output
// format configured.
func PrintDiagnostics(view *schema.DiagnosticView, cfg *contract.Config) error {
	fmtFloat, fmtOpt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, view)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDiagnosticsCSV(w, view, fmtFloat, fmtOpt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for diagnostics")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDiagnosticsTable(w, view, cfg, fmtFloat, fmtOpt)
		}, "Wrote table")
	}
	return nil
}

// writeDiagnosticsTable prints the near-miss pairs with optional columns
// driven by the view's capability flags.
func writeDiagnosticsTable(w io.Writer, view *schema.DiagnosticView, cfg *contract.Config, fmtFloat, fmtOpt func(float64) string) error {
	if _, err := fmt.Fprintf(w, "Candidate pairs within %g m (2x tolerance %g m):\n",
		2*view.Tolerance, view.Tolerance); err != nil {
		return err
	}
	if len(view.Rows) == 0 {
		_, err := fmt.Fprintln(w, "No candidate pairs found")
		return err
	}

	headers := []string{"New [m]", "Old [m]", "Δ [m]", "Type", "Match?"}
	if view.HasDepth {
		headers = append(headers, "New [%]", "Old [%]")
	}
	if view.HasClock {
		headers = append(headers, "New clk", "Old clk")
	}

	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	typeWidth := typeColumnWidth(cfg)
	var data [][]string
	limit := cfg.ResultLimit
	for i, r := range view.Rows {
		if limit > 0 && i >= limit {
			break
		}
		would := "no"
		if r.WouldMatch {
			would = "yes"
		}
		row := []string{
			fmtFloat(r.NewDist),
			fmtFloat(r.OldDist),
			fmtFloat(r.DistanceDiff),
			truncateCell(r.DefectType, typeWidth),
			would,
		}
		if view.HasDepth {
			row = append(row, fmtOpt(r.NewDepthPct), fmtOpt(r.OldDepthPct))
		}
		if view.HasClock {
			row = append(row, r.NewClock, r.OldClock)
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if limit > 0 && len(view.Rows) > limit {
		if _, err := fmt.Fprintf(w, "Showing %d of %d pairs\n", limit, len(view.Rows)); err != nil {
			return err
		}
	}
	return nil
}

// writeDiagnosticsCSV writes every near-miss row, ignoring the display limit.
func writeDiagnosticsCSV(w io.Writer, view *schema.DiagnosticView, fmtFloat, fmtOpt func(float64) string) error {
	header := []string{
		"new_dist_m", "old_dist_m", "distance_diff_m", "defect_type", "would_match",
		"new_depth_pct", "old_depth_pct", "new_clock", "old_clock",
		"new_length_mm", "old_length_mm", "new_width_mm", "old_width_mm",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range view.Rows {
			would := "false"
			if r.WouldMatch {
				would = "true"
			}
			rec := []string{
				fmtFloat(r.NewDist),
				fmtFloat(r.OldDist),
				fmtFloat(r.DistanceDiff),
				r.DefectType,
				would,
				fmtOpt(r.NewDepthPct),
				fmtOpt(r.OldDepthPct),
				r.NewClock,
				r.OldClock,
				fmtOpt(r.NewLengthMM),
				fmtOpt(r.OldLengthMM),
				fmtOpt(r.NewWidthMM),
				fmtOpt(r.OldWidthMM),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
