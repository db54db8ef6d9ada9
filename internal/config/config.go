// =============================================================================
// Smart Bookshop POS - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration.
//
// CONFIGURATION SOURCES (later wins):
//   1. Built-in defaults
//   2. Main config (config.yaml)
//   3. Environment variables (BOOKSHOP_DATA_DIR, BOOKSHOP_LOG_LEVEL),
//      optionally seeded from a .env file by the CLI
//
// DATA LAYOUT:
//   <data_dir>/Inventory/books.json
//   <data_dir>/Application_Files/credentials.json
//   <data_dir>/Sales_Records/DD-MM-YYYY.xlsx
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvDataDir  = "BOOKSHOP_DATA_DIR"
	EnvLogLevel = "BOOKSHOP_LOG_LEVEL"
)

// DefaultPassword is seeded into the credential file on first run.
const DefaultPassword = "admin123"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
// This is loaded from the main config.yaml file.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// DataDir is the working data directory. All other directories are
	// relative to it unless absolute.
	// Default: "."
	DataDir string `yaml:"data_dir"`

	// InventoryDir holds books.json.
	// Default: "Inventory"
	InventoryDir string `yaml:"inventory_dir"`

	// SalesDir holds one ledger workbook per day.
	// Default: "Sales_Records"
	SalesDir string `yaml:"sales_dir"`

	// AppFilesDir holds credentials.json.
	// Default: "Application_Files"
	AppFilesDir string `yaml:"app_files_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// SHOP SETTINGS
	// =========================================================================

	// CurrencySymbol is shown in ledger headers and on invoices.
	// Default: "Rs"
	CurrencySymbol string `yaml:"currency_symbol"`

	// DefaultPassword is written to credentials.json when it does not exist.
	// Default: "admin123"
	DefaultPassword string `yaml:"default_password"`

	// Ledger controls the layout of the daily sales workbooks.
	Ledger LedgerSettings `yaml:"ledger"`

	// Import controls bulk catalog import.
	Import ImportSettings `yaml:"import"`
}

// =============================================================================
// LEDGER SETTINGS STRUCTURE
// =============================================================================

// LedgerSettings controls the look of newly created ledger files.
// Styling is applied once, when a day's file is created.
type LedgerSettings struct {
	// SheetName is the worksheet name for new files. Existing files are
	// always read from their first sheet.
	// Default: "Sales"
	SheetName string `yaml:"sheet_name"`

	// HeaderFillColor is the header background (hex RGB, no '#').
	// Default: "366092"
	HeaderFillColor string `yaml:"header_fill_color"`

	// HeaderFontColor is the header font color (hex RGB, no '#').
	// Default: "FFFFFF"
	HeaderFontColor string `yaml:"header_font_color"`

	// ColumnWidths are the widths of columns A onward.
	// Default: [15, 12, 35, 18, 22, 18, 18]
	ColumnWidths []float64 `yaml:"column_widths"`
}

// ImportSettings controls CSV catalog import and export.
type ImportSettings struct {
	// Delimiter separates fields. Accepts "," "|" ";" or "tab".
	// Default: ","
	Delimiter string `yaml:"delimiter"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file. A missing file is
//     not an error; defaults are used instead.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file exists but cannot be read or parsed.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var config MainConfig

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Defaults only.
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	applyEnvOverrides(&config)
	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns a configuration with every default applied and dataDir as
// the working data directory.
func Default(dataDir string) *MainConfig {
	config := &MainConfig{DataDir: dataDir}
	applyMainConfigDefaults(config)
	return config
}

// applyEnvOverrides copies environment variables over file values.
func applyEnvOverrides(config *MainConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		config.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		config.LogLevel = v
	}
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.DataDir == "" {
		config.DataDir = "."
	}
	if config.InventoryDir == "" {
		config.InventoryDir = "Inventory"
	}
	if config.SalesDir == "" {
		config.SalesDir = "Sales_Records"
	}
	if config.AppFilesDir == "" {
		config.AppFilesDir = "Application_Files"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.CurrencySymbol == "" {
		config.CurrencySymbol = "Rs"
	}
	if config.DefaultPassword == "" {
		config.DefaultPassword = DefaultPassword
	}
	if config.Ledger.SheetName == "" {
		config.Ledger.SheetName = "Sales"
	}
	if config.Ledger.HeaderFillColor == "" {
		config.Ledger.HeaderFillColor = "366092"
	}
	if config.Ledger.HeaderFontColor == "" {
		config.Ledger.HeaderFontColor = "FFFFFF"
	}
	if len(config.Ledger.ColumnWidths) == 0 {
		config.Ledger.ColumnWidths = []float64{15, 12, 35, 18, 22, 18, 18}
	}
	if config.Import.Delimiter == "" {
		config.Import.Delimiter = ","
	}
}

// validateMainConfig validates the main configuration.
// Directories are not created here; the file manager does that on startup.
func validateMainConfig(config *MainConfig) error {
	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	for _, w := range config.Ledger.ColumnWidths {
		if w <= 0 {
			return fmt.Errorf("ledger column widths must be positive, got %v", w)
		}
	}

	if strings.ContainsAny(config.Ledger.SheetName, `[]:*?/\`) {
		return fmt.Errorf("ledger sheet_name %q contains invalid characters", config.Ledger.SheetName)
	}

	if DelimiterRune(config.Import.Delimiter) == 0 {
		return fmt.Errorf("unsupported import delimiter %q", config.Import.Delimiter)
	}

	return nil
}

// =============================================================================
// PATH HELPERS
// =============================================================================

// InventoryPath returns the path to books.json.
func (c *MainConfig) InventoryPath() string {
	return filepath.Join(c.resolve(c.InventoryDir), "books.json")
}

// CredentialsPath returns the path to credentials.json.
func (c *MainConfig) CredentialsPath() string {
	return filepath.Join(c.resolve(c.AppFilesDir), "credentials.json")
}

// SalesPath returns the ledger directory.
func (c *MainConfig) SalesPath() string {
	return c.resolve(c.SalesDir)
}

// Directories returns every directory the application writes to.
func (c *MainConfig) Directories() []string {
	return []string{
		c.resolve(c.InventoryDir),
		c.resolve(c.SalesDir),
		c.resolve(c.AppFilesDir),
	}
}

func (c *MainConfig) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.DataDir, dir)
}

// DelimiterRune maps a configured delimiter to the rune used by encoding/csv.
// It returns 0 for unsupported values.
func DelimiterRune(delimiter string) rune {
	switch delimiter {
	case ",", "comma":
		return ','
	case "\\t", "\t", "tab", "TAB":
		return '\t'
	case "|", "pipe", "PIPE":
		return '|'
	case ";", "semicolon":
		return ';'
	default:
		return 0
	}
}
