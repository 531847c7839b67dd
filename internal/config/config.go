// Package config provides Viper-based configuration loading for the board
// exporter.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ExportConfig holds pipeline settings.
type ExportConfig struct {
	// Output is the path of the emitted board description file.
	Output string `mapstructure:"output"`
	// Policy is the topology extraction policy: "strict" or "faithful".
	Policy string `mapstructure:"policy"`
}

// TerrainConfig holds the static location-name sets driving terrain
// classification. Names absent from both sets classify as Sand.
type TerrainConfig struct {
	// Strongholds lists location names classified as Stronghold.
	Strongholds []string `mapstructure:"strongholds"`
	// Rock lists location names classified as Rock.
	Rock []string `mapstructure:"rock"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File is an optional log file path; empty disables file logging.
	File string `mapstructure:"file"`
	// MaxSizeMB is the size at which the log file is rotated.
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated log files to keep.
	MaxBackups int `mapstructure:"max_backups"`
	// MaxAgeDays is the age after which rotated files are deleted.
	MaxAgeDays int `mapstructure:"max_age_days"`
	// Compress enables gzip compression of rotated files.
	Compress bool `mapstructure:"compress"`
}

// Config is the top-level application configuration.
type Config struct {
	Export  ExportConfig  `mapstructure:"export"`
	Terrain TerrainConfig `mapstructure:"terrain"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateExport(c.Export); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateTerrain(c.Terrain); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateExport(e ExportConfig) error {
	var errs []string
	if e.Output == "" {
		errs = append(errs, "export.output must not be empty")
	}
	validPolicies := map[string]bool{"strict": true, "faithful": true}
	if !validPolicies[e.Policy] {
		errs = append(errs, fmt.Sprintf("export.policy must be one of [strict, faithful], got %q", e.Policy))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateTerrain(t TerrainConfig) error {
	var errs []string
	for _, name := range t.Strongholds {
		if name == "" {
			errs = append(errs, "terrain.strongholds must not contain empty names")
			break
		}
	}
	for _, name := range t.Rock {
		if name == "" {
			errs = append(errs, "terrain.rock must not contain empty names")
			break
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	if l.File != "" {
		if l.MaxSizeMB < 1 {
			errs = append(errs, fmt.Sprintf("logging.max_size_mb must be >= 1, got %d", l.MaxSizeMB))
		}
		if l.MaxBackups < 0 {
			errs = append(errs, fmt.Sprintf("logging.max_backups must be >= 0, got %d", l.MaxBackups))
		}
		if l.MaxAgeDays < 0 {
			errs = append(errs, fmt.Sprintf("logging.max_age_days must be >= 0, got %d", l.MaxAgeDays))
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with BOARD_ prefix
	v.SetEnvPrefix("BOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Default returns the built-in configuration used when no config file is
// supplied: the classic board's terrain sets and a locations.ron output in
// the working directory.
//
// Postcondition: Returns a Config that passes Validate.
func Default() Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Defaults are static; an unmarshal failure is a programming error.
		panic(fmt.Sprintf("unmarshalling default config: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("export.output", "locations.ron")
	v.SetDefault("export.policy", "strict")

	v.SetDefault("terrain.strongholds", []string{
		"Arrakeen",
		"Carthag",
		"Habbanya Sietch",
		"Sietch Tabr",
		"Tuek's Sietch",
	})
	v.SetDefault("terrain.rock", []string{
		"False Wall East",
		"False Wall South",
		"False Wall West",
		"Pasty Mesa",
		"Plastic Basin",
		"Rim Wall West",
		"Shield Wall",
	})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 50)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 7)
	v.SetDefault("logging.compress", true)
}
