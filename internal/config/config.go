// Package config loads the quickfilter CLI configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all CLI configuration
type Config struct {
	TimeZone string `mapstructure:"time_zone"`
	LogLevel string `mapstructure:"log_level"`

	// Columns maps column names to type tags so that callers can name a
	// column without repeating its type. Viper lowercases map keys.
	Columns map[string]string `mapstructure:"columns"`

	// ColumnMapping renames columns when rendering SQL.
	ColumnMapping map[string]string `mapstructure:"column_mapping"`

	DuckDB DuckDBConfig `mapstructure:"duckdb"`
}

// DuckDBConfig selects the database and table that --run counts rows in.
type DuckDBConfig struct {
	// Path of the database file; empty opens an in-memory database.
	Path  string `mapstructure:"path"`
	Table string `mapstructure:"table"`
}

// ErrInvalidLogLevel is returned for log levels slog cannot parse.
var ErrInvalidLogLevel = errors.New("invalid log level")

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	return &Config{
		TimeZone:      "",
		LogLevel:      "info",
		Columns:       map[string]string{},
		ColumnMapping: map[string]string{},
		DuckDB: DuckDBConfig{
			Path:  "",
			Table: "data",
		},
	}
}

// Load loads configuration. An explicit path must exist; otherwise
// quickfilter.yaml is looked up in the user config directory and the
// current directory, and a missing file leaves the defaults in place.
// Environment variables prefixed with QUICKFILTER_ override file values,
// e.g. QUICKFILTER_DUCKDB_TABLE.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("quickfilter")
		v.SetConfigType("yaml")
		if configDir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(configDir, "quickfilter"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("QUICKFILTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := GetDefaults()
	v.SetDefault("time_zone", defaults.TimeZone)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("columns", defaults.Columns)
	v.SetDefault("column_mapping", defaults.ColumnMapping)
	v.SetDefault("duckdb.path", defaults.DuckDB.Path)
	v.SetDefault("duckdb.table", defaults.DuckDB.Table)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return level, nil
}
