// Package cmd defines the command-line interface for ilitrack.
package cmd

import (
	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/pipewise/ilitrack/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(surveysCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(growthCmd)
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the surveys subcommands to the parent surveys command
	surveysCmd.AddCommand(surveysShowCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("year", "y", 0, "Survey year to operate on")
	rootCmd.PersistentFlags().Int("old-year", 0, "Year of the older survey for comparison")
	rootCmd.PersistentFlags().Int("new-year", 0, "Year of the newer survey for comparison")
	rootCmd.PersistentFlags().Float64P("tolerance", "t", contract.DefaultTolerance, "Matching tolerance along the pipeline in meters")
	rootCmd.PersistentFlags().Int("top", contract.DefaultTopN, "Number of top results for growth and stats rankings")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("table", string(schema.DefectsTable), "Survey table to show: joints or defects")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Survey store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().Float64("max-growth", 0, "Growth-rate gate in mm/yr (or %/yr without wall data)")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of trendCmd to Viper
	trendCmd.Flags().String("years", "", "Comma-separated ascending survey years (default: all stored)")
	if err := viper.BindPFlags(trendCmd.Flags()); err != nil {
		contract.LogFatal("Error binding trend flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
