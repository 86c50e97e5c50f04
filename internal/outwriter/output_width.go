package outwriter

import (
	"os"

	"github.com/pipewise/ilitrack/internal/contract"
	"golang.org/x/term"
)

// getTableWidth returns the usable terminal width for table output.
// A width override from flag/env wins; otherwise the terminal is probed with
// a conservative fallback for pipes and CI.
func getTableWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// typeColumnWidth budgets the anomaly-type column from the terminal width,
// leaving room for the fixed numeric columns around it.
func typeColumnWidth(cfg *contract.Config) int {
	width := getTableWidth(cfg) - 50
	if width < 15 {
		return 15
	}
	if width > 60 {
		return 60
	}
	return width
}

// truncateCell truncates a table cell to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 so there is room for the "..." and one character.
func truncateCell(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return s
}
