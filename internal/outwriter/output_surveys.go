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

// PrintSurveyList outputs stored survey summaries, dispatching based on the
// output format configured.
func PrintSurveyList(infos []schema.SurveyInfo, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, infos)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSurveyListCSV(w, infos)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for survey listings")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSurveyListTable(w, infos)
		}, "Wrote table")
	}
	return nil
}

func writeSurveyListTable(w io.Writer, infos []schema.SurveyInfo) error {
	if len(infos) == 0 {
		_, err := fmt.Fprintln(w, "No surveys loaded")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Year", "Joints", "Defects", "Source", "Loaded"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, info := range infos {
		data = append(data, []string{
			strconv.Itoa(info.Year),
			strconv.Itoa(info.JointCount),
			strconv.Itoa(info.DefectCount),
			truncateCell(info.SourceFile, 40),
			info.LoadedAt.Format(time.DateTime),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeSurveyListCSV(w io.Writer, infos []schema.SurveyInfo) error {
	header := []string{"year", "joint_count", "defect_count", "source_file", "loaded_at"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, info := range infos {
			rec := []string{
				strconv.Itoa(info.Year),
				strconv.Itoa(info.JointCount),
				strconv.Itoa(info.DefectCount),
				info.SourceFile,
				info.LoadedAt.UTC().Format(time.RFC3339),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// PrintSurveyDetail outputs one survey's joints or defects table, selected by
// cfg.Table and capped by cfg.ResultLimit for text output.
func PrintSurveyDetail(survey *schema.Survey, cfg *contract.Config) error {
	fmtFloat, fmtOpt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if cfg.Table == schema.JointsTable {
				return writeJSON(w, survey.Joints)
			}
			return writeJSON(w, survey.Defects)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if cfg.Table == schema.JointsTable {
				return writeJointsCSV(w, survey.Joints.Joints, fmtOpt)
			}
			return writeDefectsCSV(w, survey.Defects.Defects, fmtOpt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.Table == schema.JointsTable {
			return fmt.Errorf("parquet output is not supported for the joints table")
		}
		if err := parquet.WriteDefectsParquet(survey.Defects.Defects, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Printf("💾 Wrote %d defects to %s\n", len(survey.Defects.Defects), cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if cfg.Table == schema.JointsTable {
				return writeJointsTable(w, survey, cfg, fmtFloat, fmtOpt)
			}
			return writeDefectsTable(w, survey, cfg, fmtFloat, fmtOpt)
		}, "Wrote table")
	}
	return nil
}

func writeJointsTable(w io.Writer, survey *schema.Survey, cfg *contract.Config, fmtFloat, fmtOpt func(float64) string) error {
	if _, err := fmt.Fprintf(w, "Survey %d: %d joints\n", survey.Year, len(survey.Joints.Joints)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Joint", "Dist [m]", "Length [m]", "WT [mm]"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, j := range survey.Joints.Joints {
		if cfg.ResultLimit > 0 && i >= cfg.ResultLimit {
			break
		}
		data = append(data, []string{
			fmtOpt(j.JointNumber),
			fmtFloat(j.LogDist),
			fmtOpt(j.JointLength),
			fmtOpt(j.WallNominal),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	return writeShownFooter(w, len(data), len(survey.Joints.Joints), "joints")
}

func writeDefectsTable(w io.Writer, survey *schema.Survey, cfg *contract.Config, fmtFloat, fmtOpt func(float64) string) error {
	if _, err := fmt.Fprintf(w, "Survey %d: %d defects\n", survey.Year, len(survey.Defects.Defects)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Dist [m]", "Type", "Joint", "Clock", "Depth [%]", "L [mm]", "W [mm]", "Surface"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	typeWidth := typeColumnWidth(cfg)
	var data [][]string
	for i, d := range survey.Defects.Defects {
		if cfg.ResultLimit > 0 && i >= cfg.ResultLimit {
			break
		}
		data = append(data, []string{
			strconv.Itoa(d.ID),
			fmtOpt(d.LogDist),
			truncateCell(d.AnomalyType, typeWidth),
			fmtOpt(d.JointNumber),
			d.Clock,
			fmtOpt(d.DepthPct),
			fmtOpt(d.LengthMM),
			fmtOpt(d.WidthMM),
			d.SurfaceLoc,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	return writeShownFooter(w, len(data), len(survey.Defects.Defects), "defects")
}

func writeShownFooter(w io.Writer, shown, total int, noun string) error {
	if shown >= total {
		return nil
	}
	_, err := fmt.Fprintf(w, "Showing %d of %d %s\n", shown, total, noun)
	return err
}

func writeJointsCSV(w io.Writer, joints []schema.Joint, fmtOpt func(float64) string) error {
	header := []string{"joint_number", "log_dist_m", "joint_length_m", "wt_nom_mm"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, j := range joints {
			rec := []string{
				fmtOpt(j.JointNumber),
				fmtOpt(j.LogDist),
				fmtOpt(j.JointLength),
				fmtOpt(j.WallNominal),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeDefectsCSV(w io.Writer, defects []schema.Defect, fmtOpt func(float64) string) error {
	header := []string{
		"defect_id", "log_dist_m", "anomaly_type", "joint_number", "up_weld_dist_m",
		"clock", "depth_pct", "length_mm", "width_mm", "wt_nom_mm", "surface_location",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, d := range defects {
			rec := []string{
				strconv.Itoa(d.ID),
				fmtOpt(d.LogDist),
				d.AnomalyType,
				fmtOpt(d.JointNumber),
				fmtOpt(d.UpWeldDist),
				d.Clock,
				fmtOpt(d.DepthPct),
				fmtOpt(d.LengthMM),
				fmtOpt(d.WidthMM),
				fmtOpt(d.WallNominal),
				d.SurfaceLoc,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// PrintStoreStatus reports store health as plain text. Status is operator
// output, so it ignores the structured output modes.
func PrintStoreStatus(status *schema.StoreStatus) {
	fmt.Printf("Backend: %s\n", status.Backend)
	if status.Location != "" {
		fmt.Printf("Location: %s\n", status.Location)
	}
	fmt.Printf("Surveys: %d\n", status.SurveyCount)
	fmt.Printf("Joint rows: %d\n", status.JointRows)
	fmt.Printf("Defect rows: %d\n", status.DefectRows)
}
