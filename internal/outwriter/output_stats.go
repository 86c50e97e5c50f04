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

// statsReport is the JSON shape of the statistics output.
type statsReport struct {
	Dimensions []schema.DimensionStats `json:"dimensions"`
	Joints     []schema.JointSeverity  `json:"joints"`
}

// PrintStatsResults outputs dimension statistics plus the joint severity
// ranking, dispatching based on the output format configured.
func PrintStatsResults(dims []schema.DimensionStats, joints []schema.JointSeverity, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, statsReport{Dimensions: dims, Joints: joints})
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsCSV(w, dims, joints, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for statistics")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsTables(w, dims, joints, fmtFloat)
		}, "Wrote table")
	}
	return nil
}

func writeStatsTables(w io.Writer, dims []schema.DimensionStats, joints []schema.JointSeverity, fmtFloat func(float64) string) error {
	if len(dims) == 0 {
		if _, err := fmt.Fprintln(w, "No defect dimensions available"); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(w, "Defect dimensions:"); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Dimension", "Count", "Mean", "Median", "Min", "Max", "StdDev"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, d := range dims {
			data = append(data, []string{
				d.Dimension,
				strconv.Itoa(d.Count),
				fmtFloat(d.Mean),
				fmtFloat(d.Median),
				fmtFloat(d.Min),
				fmtFloat(d.Max),
				fmtFloat(d.StdDev),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if len(joints) == 0 {
		_, err := fmt.Fprintln(w, "No joint ranking available")
		return err
	}
	if _, err := fmt.Fprintln(w, "Worst joints:"); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Joint", "Defects", "Severity"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, j := range joints {
		data = append(data, []string{
			strconv.Itoa(j.Rank),
			fmtFloat(j.JointNumber),
			strconv.Itoa(j.DefectCount),
			fmtFloat(j.Severity),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeStatsCSV writes both blocks into one CSV stream with a section column.
func writeStatsCSV(w io.Writer, dims []schema.DimensionStats, joints []schema.JointSeverity, fmtFloat func(float64) string) error {
	header := []string{"section", "key", "count", "mean", "median", "min", "max", "std_dev", "rank", "severity"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, d := range dims {
			rec := []string{
				"dimension", d.Dimension, strconv.Itoa(d.Count),
				fmtFloat(d.Mean), fmtFloat(d.Median), fmtFloat(d.Min),
				fmtFloat(d.Max), fmtFloat(d.StdDev), "", "",
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		for _, j := range joints {
			rec := []string{
				"joint", fmtFloat(j.JointNumber), strconv.Itoa(j.DefectCount),
				"", "", "", "", "",
				strconv.Itoa(j.Rank), fmtFloat(j.Severity),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
