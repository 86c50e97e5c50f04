package cmd

import (
	"github.com/pipewise/ilitrack/core"
	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/spf13/cobra"
)

// trendCmd reduces consecutive-year comparisons to their headline numbers.
var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Track defect counts and growth across consecutive surveys.",
	Long: `Compare each consecutive pair of stored surveys and print one row per
interval: totals, new-defect share and average growth rate.

By default every stored year participates; pass --years to restrict the
sequence.

Examples:
  # Trend over everything in the store
  ilitrack trend

  # Only these runs, in order
  ilitrack trend --years 2010,2015,2020`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTrend(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run trend analysis", err)
		}
	},
}
