package cmd

import (
	"github.com/pipewise/ilitrack/core"
	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/spf13/cobra"
)

// growthCmd ranks the fastest-growing matched defects.
var growthCmd = &cobra.Command{
	Use:   "growth",
	Short: "Show the fastest-growing defects between two surveys.",
	Long: `Rank matched defects by growth rate, worst first.

Rates are mm/yr when nominal wall thickness allows the conversion, %/yr
otherwise. Defects whose depth decreased are excluded from the ranking; the
summary still counts them so sizing scatter stays visible.

Examples:
  # Ten fastest-growing defects
  ilitrack growth --old-year 2015 --new-year 2020

  # A longer list with severity labels uncolored for piping
  ilitrack growth --old-year 2015 --new-year 2020 --top 25 --color no`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGrowth(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run growth analysis", err)
		}
	},
}
