package cmd

import (
	"github.com/pipewise/ilitrack/core"
	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/spf13/cobra"
)

// loadCmd ingests one raw inspection export into the survey store.
var loadCmd = &cobra.Command{
	Use:   "load <survey-file>",
	Short: "Load a raw inspection export into the survey store.",
	Long: `Parse a raw in-line inspection export and store it under its survey year.

The loader accepts comma, semicolon or tab separated files, canonicalizes
known vendor header variants, converts spreadsheet-fraction clock columns to
H:MM text, and splits the rows into a joints table and a defects table.
Reloading a year replaces the previously stored dataset for that year.

Examples:
  # Load the 2020 run
  ilitrack load run2020.csv --year 2020

  # Load a semicolon-separated vendor export
  ilitrack load vendor_export.csv --year 2015`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteLoad(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot load survey", err)
		}
	},
}
