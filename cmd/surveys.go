package cmd

import (
	"github.com/pipewise/ilitrack/core"
	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/spf13/cobra"
)

// surveysCmd lists the stored surveys.
var surveysCmd = &cobra.Command{
	Use:   "surveys",
	Short: "List loaded surveys with their joint and defect counts.",
	Long: `Show every survey currently held in the store, ordered by year.

Examples:
  # List stored surveys
  ilitrack surveys

  # Export the listing
  ilitrack surveys --output csv --output-file surveys.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSurveyList(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list surveys", err)
		}
	},
}

// surveysShowCmd shows one survey's joints or defects table.
var surveysShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the joints or defects table of one stored survey.",
	Long: `Print the parsed rows of one stored survey.

Select the table with --table (defects by default) and cap the row count
with --limit. Missing cells render as blanks in text and CSV output and as
nulls in JSON output.

Examples:
  # First 25 defects of the 2020 survey
  ilitrack surveys show --year 2020

  # The joints table instead
  ilitrack surveys show --year 2020 --table joints

  # Full defect table as Parquet
  ilitrack surveys show --year 2020 --output parquet --output-file defects.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSurveyShow(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot show survey", err)
		}
	},
}
