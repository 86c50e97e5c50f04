package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/pipewise/ilitrack/schema"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// createFormatters creates the common formatter closures used across multiple
// output types. fmtOpt renders the missing sentinel as an empty cell.
func createFormatters(precision int) (fmtFloat func(float64) string, fmtOpt func(float64) string) {
	fmtFloat = func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
	fmtOpt = func(v float64) string {
		if schema.IsMissing(v) {
			return ""
		}
		return fmtFloat(v)
	}
	return fmtFloat, fmtOpt
}

// severityLabel picks the right growth label for a match, preferring mm/yr
// whenever the wall block exists, and colors it for table output only.
func severityLabel(m schema.Match, colored bool) string {
	var text string
	if m.WallGrowth != nil {
		text = contract.GetGrowthLabelMM(m.GrowthRateMMPerYear)
	} else if m.DepthGrowth != nil {
		text = contract.GetGrowthLabelPct(m.GrowthRatePctPerYear)
	} else {
		return ""
	}
	if colored {
		return contract.GetColorLabel(text)
	}
	return text
}

// limitMatches caps a match slice for display.
func limitMatches(matches []schema.Match, limit int) []schema.Match {
	if limit > 0 && len(matches) > limit {
		return matches[:limit]
	}
	return matches
}
