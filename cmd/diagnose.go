package cmd

import (
	"github.com/pipewise/ilitrack/core"
	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/spf13/cobra"
)

// diagnoseCmd shows candidate pairs around the matching threshold.
var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Inspect candidate defect pairs near the matching tolerance.",
	Long: `Scan defect pairs within twice the tolerance, without the one-to-one
matching rule, so you can judge whether the tolerance is set well.

Pairs inside the original tolerance are marked as would-match. One old defect
may appear against several new defects here; this view never changes what
compare reports.

Examples:
  # See what sits just outside the default tolerance
  ilitrack diagnose --old-year 2015 --new-year 2020

  # Evaluate a candidate tolerance before adopting it
  ilitrack diagnose --old-year 2015 --new-year 2020 --tolerance 0.02`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDiagnose(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run diagnostics", err)
		}
	},
}
