package cmd

import (
	"github.com/pipewise/ilitrack/core"
	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/spf13/cobra"
)

// statsCmd summarizes one stored survey.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize defect dimensions and rank the worst joints.",
	Long: `Print summary statistics for one stored survey.

Shows mean, median, min, max and standard deviation per measured dimension,
plus the worst joints ranked by maximum depth (or defect count when the
survey has no depth channel).

Examples:
  # Summarize the 2020 survey
  ilitrack stats --year 2020

  # More joints in the ranking
  ilitrack stats --year 2020 --top 20`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStats(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run stats", err)
		}
	},
}
