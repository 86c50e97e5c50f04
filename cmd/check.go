package cmd

import (
	"github.com/pipewise/ilitrack/core"
	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd gates on the maximum observed growth rate.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fail when the maximum growth rate exceeds a gate.",
	Long: `Run the comparison and exit non-zero when the maximum observed growth
rate exceeds --max-growth.

The gate compares mm/yr when wall-thickness data allows the conversion, %/yr
otherwise. Intended for integrity-program automation where an excessive rate
should stop a pipeline until an engineer looks at it.

Examples:
  # Gate at 0.4 mm/yr
  ilitrack check --old-year 2015 --new-year 2020 --max-growth 0.4

  # Use inside CI
  ilitrack check --old-year 2015 --new-year 2020 --max-growth 0.4 || notify-oncall`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Growth gate failed", err)
		}
	},
}
