package cmd

import (
	"fmt"

	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/pipewise/ilitrack/internal/outwriter"
	"github.com/pipewise/ilitrack/internal/surveystore"
	"github.com/pipewise/ilitrack/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeCmd focused on survey store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by analysis commands. Clear and migrate operate on
// the database directly and must not open the store themselves.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the survey store",
	Long: `Manage the database that holds loaded inspection surveys.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (in-memory)

Subcommands:
  status  - Show survey counts and connection info
  clear   - Remove all stored surveys
  migrate - Run schema migrations

Examples:
  # Check what the store holds
  ilitrack store status

  # Start over
  ilitrack store clear`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display survey store statistics and connection details",
	Long: `Show the configured backend, its location, and how many surveys,
joint rows and defect rows it currently holds.

Examples:
  # SQLite store in the home directory (default)
  ilitrack store status

  # A shared PostgreSQL store
  ILITRACK_STORE_BACKEND=postgresql ILITRACK_STORE_DB_CONNECT="..." ilitrack store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := surveystore.NewSurveyStore(cfg.StoreBackend, cfg.StoreDBConnect)
		if err != nil {
			contract.LogFatal("Failed to open survey store", err)
		}
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to read store status", err)
		}
		outwriter.PrintStoreStatus(&status)
	},
}

// storeClearCmd clears the survey store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored surveys",
	Long: `Delete every stored survey from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the survey tables

Examples:
  # Clear the default SQLite store
  ilitrack store clear

  # Clear a MySQL store (set connection string via env variable)
  ILITRACK_STORE_BACKEND=mysql ILITRACK_STORE_DB_CONNECT="..." ilitrack store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := surveystore.ClearStore(cfg.StoreBackend, contract.GetStoreDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear survey store", err)
		}
		fmt.Println("Survey store cleared successfully.")
	},
}

// storeMigrateCmd runs schema migrations on the survey store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run survey store schema migrations",
	Long: `Apply or roll back the survey store schema.

Target selection:
  --target-version -1   migrate to the latest version (default)
  --target-version  0   roll back everything
  --target-version  N   migrate to version N

Examples:
  # Bring the schema up to date
  ilitrack store migrate

  # Roll back to a clean database
  ilitrack store migrate --target-version 0`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := surveystore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to migrate survey store", err)
		}
	},
}
