// =============================================================================
// Smart Bookshop POS - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (bookshop)
//   ├── bookCmd     (bookshop book add|update|delete|show|list|import|export)
//   ├── saleCmd     (bookshop sale <sku>...)
//   ├── reportCmd   (bookshop report list|show)
//   ├── passwordCmd (bookshop password change)
//   └── versionCmd  (bookshop version)
//
// STARTUP:
//   Before any subcommand runs, the root command:
//   1. Loads an optional .env file into the environment
//   2. Loads the configuration (config.yaml + environment overrides)
//   3. Sets up logging
//   4. Creates the data directories and loads every store
//   5. Checks the staff password (the login gate)
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/smartbookshop/bookshop-pos/internal/config"
	"github.com/smartbookshop/bookshop-pos/internal/types"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// dataDir overrides the configured data directory when set.
var dataDir string

// password is the staff password checked before protected commands run.
var password string

// verbose enables debug logging when set to true.
var verbose bool

// Command annotations.
const (
	// annotationApp set to "none" skips loading config and stores.
	annotationApp = "app"

	// annotationAuth set to "skip" skips the password check.
	annotationAuth = "auth"
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bookshop",
	Short: "Smart Bookshop POS - inventory and daily sales ledger",
	Long: `Smart Bookshop POS manages a bookshop's inventory and records every sale
in a daily spreadsheet ledger.

Data files (relative to the data directory):
  Inventory/books.json                 the book catalog
  Application_Files/credentials.json   the staff password
  Sales_Records/DD-MM-YYYY.xlsx        one sales ledger per day

Example Usage:
  bookshop book add --title "Algebra I" --sku BK-001 --category 9 --price 250 -p admin123
  bookshop sale BK-001 BK-001 -p admin123
  bookshop report list -p admin123`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == cmd.Root() || cmd.Name() == "help" || cmd.Annotations[annotationApp] == "none" {
			return nil
		}

		app, err := setupApp()
		if err != nil {
			return err
		}

		if cmd.Annotations[annotationAuth] != "skip" && !app.Credentials.Verify(password) {
			app.Logger.Warn("login rejected", "command", cmd.CommandPath())
			return &types.AuthError{Message: "incorrect password (use --password)"}
		}

		cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, app))
		return nil
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", describeError(err))
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (defaults are used if it does not exist)",
	)

	rootCmd.PersistentFlags().StringVar(
		&dataDir,
		"data-dir",
		"",
		"Working data directory (overrides data_dir and "+config.EnvDataDir+")",
	)

	rootCmd.PersistentFlags().StringVarP(
		&password,
		"password",
		"p",
		"",
		"Staff password",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// setupApp runs the startup sequence shared by every store-backed command.
func setupApp() (*App, error) {
	envErr := godotenv.Load()

	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load main config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	logger := newLogger(cfg.LogLevel)
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn("failed to load .env file", "err", envErr)
	}
	logger.Debug("configuration loaded", "config", cfgFile, "data_dir", cfg.DataDir)

	return OpenApp(cfg, logger)
}

// newLogger builds the process logger.
func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "bookshop",
		ReportTimestamp: true,
	})

	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	if verbose {
		parsed = log.DebugLevel
	}
	logger.SetLevel(parsed)
	return logger
}
