package cmd

import (
	"github.com/pipewise/ilitrack/core"
	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/spf13/cobra"
)

// compareCmd correlates two stored surveys.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Correlate the defects of two stored surveys by position.",
	Long: `Match defects between two loaded surveys by distance along the pipeline.

Each defect of the newer survey claims the nearest unclaimed defect of the
older survey within the tolerance. Matched pairs carry per-defect growth when
both surveys report depth; unmatched new defects are summarized by anomaly
type. Negative growth is flagged for review, not hidden.

Examples:
  # Compare the 2020 run against the 2015 run
  ilitrack compare --old-year 2015 --new-year 2020

  # Tighter matching for high-resolution tools
  ilitrack compare --old-year 2015 --new-year 2020 --tolerance 0.005

  # Full result as JSON for downstream tooling
  ilitrack compare --old-year 2015 --new-year 2020 --output json

  # Matched pairs as Parquet
  ilitrack compare --old-year 2015 --new-year 2020 --output parquet --output-file matches.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompare(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run comparison", err)
		}
	},
}
