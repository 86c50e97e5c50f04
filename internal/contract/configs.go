package contract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pipewise/ilitrack/schema"
)

// Default values for configuration.
const (
	DefaultTolerance   = 0.01 // meters
	MinTolerance       = 0.0001
	MaxTolerance       = 1.0
	DefaultTopN        = 10
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 3

	MinSurveyYear = 1950
	MaxSurveyYear = 2100
)

// Config holds the runtime configuration for all commands.
// This struct remains the "final, validated" config.
type Config struct {
	Year    int // Survey year for load/show/stats
	OldYear int
	NewYear int

	Tolerance   float64 // Matching tolerance along the pipeline, meters
	TopN        int
	ResultLimit int
	Precision   int

	Output     schema.OutputMode
	OutputFile string
	Table      schema.TableKind
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	MaxGrowthRate float64 // Gate threshold for the check command; 0 disables
	TrendYears    []int   // Explicit year sequence for trend; empty = all stored

	InputFile string // Positional survey file argument for load

	CompareMode bool // Both OldYear and NewYear were provided
}

// Clone returns a shallow copy of the config with its own TrendYears slice.
// MCP handlers clone the base config before applying per-request overrides.
func (c *Config) Clone() *Config {
	clone := *c
	if c.TrendYears != nil {
		clone.TrendYears = append([]int(nil), c.TrendYears...)
	}
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	Year    int `mapstructure:"year"`
	OldYear int `mapstructure:"old-year"`
	NewYear int `mapstructure:"new-year"`

	Tolerance float64 `mapstructure:"tolerance"`
	TopN      int     `mapstructure:"top"`
	Limit     int     `mapstructure:"limit"`
	Precision int     `mapstructure:"precision"`

	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Table      string `mapstructure:"table"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`

	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	MaxGrowthRate float64 `mapstructure:"max-growth"`
	YearsStr      string  `mapstructure:"years"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateYears(cfg, input); err != nil {
		return err
	}
	if err := validateAnalysisInputs(cfg, input); err != nil {
		return err
	}
	if err := validateOutputInputs(cfg, input); err != nil {
		return err
	}
	if err := validateStoreInputs(cfg, input); err != nil {
		return err
	}
	return nil
}

func validateYears(cfg *Config, input *ConfigRawInput) error {
	for _, pair := range []struct {
		name string
		year int
	}{
		{"year", input.Year},
		{"old-year", input.OldYear},
		{"new-year", input.NewYear},
	} {
		if pair.year != 0 && (pair.year < MinSurveyYear || pair.year > MaxSurveyYear) {
			return fmt.Errorf("%s %d is outside the plausible range [%d, %d]", pair.name, pair.year, MinSurveyYear, MaxSurveyYear)
		}
	}
	cfg.Year = input.Year
	cfg.OldYear = input.OldYear
	cfg.NewYear = input.NewYear
	cfg.CompareMode = input.OldYear != 0 && input.NewYear != 0

	if cfg.CompareMode && input.OldYear == input.NewYear {
		return fmt.Errorf("old-year and new-year must differ, got %d for both", input.OldYear)
	}

	if input.YearsStr != "" {
		parts := strings.Split(input.YearsStr, ",")
		years := make([]int, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			y, err := strconv.Atoi(p)
			if err != nil {
				return fmt.Errorf("invalid year %q in --years", p)
			}
			if y < MinSurveyYear || y > MaxSurveyYear {
				return fmt.Errorf("year %d in --years is outside the plausible range [%d, %d]", y, MinSurveyYear, MaxSurveyYear)
			}
			years = append(years, y)
		}
		if len(years) > 0 && len(years) < 2 {
			return fmt.Errorf("--years needs at least two years, got %d", len(years))
		}
		for i := 1; i < len(years); i++ {
			if years[i] <= years[i-1] {
				return fmt.Errorf("--years must be strictly increasing, got %d after %d", years[i], years[i-1])
			}
		}
		cfg.TrendYears = years
	}
	return nil
}

func validateAnalysisInputs(cfg *Config, input *ConfigRawInput) error {
	tolerance := input.Tolerance
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}
	if tolerance < MinTolerance || tolerance > MaxTolerance {
		return fmt.Errorf("tolerance %g m is outside the supported range [%g, %g]", tolerance, MinTolerance, MaxTolerance)
	}
	cfg.Tolerance = tolerance

	if input.TopN < 0 {
		return fmt.Errorf("top must be positive, got %d", input.TopN)
	}
	cfg.TopN = input.TopN
	if cfg.TopN == 0 {
		cfg.TopN = DefaultTopN
	}

	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d, got %d", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit
	if cfg.ResultLimit == 0 {
		cfg.ResultLimit = DefaultResultLimit
	}

	if input.Precision < 1 || input.Precision > 6 {
		return fmt.Errorf("precision must be between 1 and 6, got %d", input.Precision)
	}
	cfg.Precision = input.Precision

	if input.MaxGrowthRate < 0 {
		return fmt.Errorf("max-growth must be positive, got %g", input.MaxGrowthRate)
	}
	cfg.MaxGrowthRate = input.MaxGrowthRate
	return nil
}

func validateOutputInputs(cfg *Config, input *ConfigRawInput) error {
	output := schema.OutputMode(strings.ToLower(input.Output))
	if output == "" {
		output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode: %s. Must be text, csv, json, or parquet", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile

	if output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	tableKind := schema.TableKind(strings.ToLower(input.Table))
	if tableKind == "" {
		tableKind = schema.DefectsTable
	}
	if _, ok := schema.ValidTableKinds[tableKind]; !ok {
		return fmt.Errorf("invalid table kind: %s. Must be joints or defects", input.Table)
	}
	cfg.Table = tableKind

	cfg.Width = input.Width
	cfg.UseColors = parseBoolish(input.Color, true)
	return nil
}

func validateStoreInputs(cfg *Config, input *ConfigRawInput) error {
	backend := schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidStoreBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend: %s. Must be sqlite, mysql, postgresql, or none", input.StoreBackend)
	}
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(backend, input.StoreDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "=") && !strings.HasPrefix(connStr, "postgres://") {
			return fmt.Errorf("PostgreSQL connection string must be key=value pairs or a postgres:// URL")
		}
	}
	return nil
}

// parseBoolish interprets yes/no/true/false/1/0 with a fallback default.
func parseBoolish(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return def
	}
}
