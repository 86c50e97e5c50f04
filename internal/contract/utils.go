package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// Severity label constants.
const (
	CriticalValue = "Critical" // Critical value
	HighValue     = "High"     // High value
	ModerateValue = "Moderate" // Moderate value
	LowValue      = "Low"      // Low value
)

// Growth-rate severity thresholds. The mm/yr bands follow common
// corrosion-management practice; the %/yr bands are the fallback when
// wall-thickness data is unavailable.
const (
	CriticalGrowthMMPerYear = 0.4
	HighGrowthMMPerYear     = 0.2
	ModerateGrowthMMPerYear = 0.1

	CriticalGrowthPctPerYear = 5.0
	HighGrowthPctPerYear     = 2.0
	ModerateGrowthPctPerYear = 1.0
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor represents strong, distinct warning.
	ModerateColor = color.New(color.FgYellow)              // moderateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor represents informational / low-priority signal.
)

// GetGrowthLabelMM returns a plain text severity label for a growth rate
// expressed in mm per year. This is the core logic used for CSV, JSON, and
// table printing.
func GetGrowthLabelMM(rate float64) string {
	switch {
	case rate >= CriticalGrowthMMPerYear:
		return CriticalValue
	case rate >= HighGrowthMMPerYear:
		return HighValue
	case rate >= ModerateGrowthMMPerYear:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetGrowthLabelPct returns a plain text severity label for a growth rate
// expressed in depth-percent per year.
func GetGrowthLabelPct(rate float64) string {
	switch {
	case rate >= CriticalGrowthPctPerYear:
		return CriticalValue
	case rate >= HighGrowthPctPerYear:
		return HighValue
	case rate >= ModerateGrowthPctPerYear:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel applies the severity color scheme to a plain label for
// console output (table).
func GetColorLabel(text string) string {
	switch text {
	case CriticalValue:
		return CriticalColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for survey storage.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".ilitrack_surveys.db"
	}
	return filepath.Join(homeDir, ".ilitrack_surveys.db")
}
