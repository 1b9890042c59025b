// Package config loads the extractor's configuration from defaults,
// environment variables, and command line flags, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultDataDir     = "data"
	DefaultOutputCSV   = "data/nhtsa_data.csv"
	DefaultFirstYear   = 2020
	DefaultLastYear    = 2026
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultWorkers     = 4

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the AALA extraction pipeline.
type Config struct {
	// Data locations
	DataDir   string // directory for downloaded report PDFs
	OutputCSV string // path of the exported CSV table
	DBPath    string // optional SQLite output, empty to disable

	// Report range
	FirstYear int
	LastYear  int

	// Behavior
	Offline bool // use cached PDFs only, never hit the network
	Workers int  // per-year processing concurrency

	// Application configuration
	Version     string
	LogLevel    string
	MaxFileSize int64 // maximum report PDF size in bytes
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:     DefaultDataDir,
		OutputCSV:   DefaultOutputCSV,
		FirstYear:   DefaultFirstYear,
		LastYear:    DefaultLastYear,
		Workers:     DefaultWorkers,
		Version:     "1.0.0",
		LogLevel:    DefaultLogLevel,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.DataDir != "" {
		if expandedPath, err := filepath.Abs(cfg.DataDir); err == nil {
			cfg.DataDir = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("AALA")
	viper.AutomaticEnv()

	viper.SetDefault("dir", cfg.DataDir)
	viper.SetDefault("out", cfg.OutputCSV)
	viper.SetDefault("db", cfg.DBPath)
	viper.SetDefault("firstyear", cfg.FirstYear)
	viper.SetDefault("lastyear", cfg.LastYear)
	viper.SetDefault("offline", cfg.Offline)
	viper.SetDefault("workers", cfg.Workers)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("dir", cfg.DataDir, "Directory for downloaded report PDFs")
	pflag.String("out", cfg.OutputCSV, "Path of the exported CSV table")
	pflag.String("db", cfg.DBPath, "Optional SQLite database output path")
	pflag.Int("firstyear", cfg.FirstYear, "First model year to process")
	pflag.Int("lastyear", cfg.LastYear, "Last model year to process")
	pflag.Bool("offline", cfg.Offline, "Use cached PDFs only, skip downloads")
	pflag.Int("workers", cfg.Workers, "Per-year processing concurrency")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum report PDF size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("out", pflag.Lookup("out"))
	_ = viper.BindPFlag("db", pflag.Lookup("db"))
	_ = viper.BindPFlag("firstyear", pflag.Lookup("firstyear"))
	_ = viper.BindPFlag("lastyear", pflag.Lookup("lastyear"))
	_ = viper.BindPFlag("offline", pflag.Lookup("offline"))
	_ = viper.BindPFlag("workers", pflag.Lookup("workers"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAALA Extract - structured parts-origin data from NHTSA AALA report PDFs\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                  # all years, data/ cache, CSV output\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --firstyear=2023 --lastyear=2024 # a subset of report years\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --offline --db=data/aala.db      # cached PDFs only, SQLite output too\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  AALA_DIR         Data directory\n")
		fmt.Fprintf(os.Stderr, "  AALA_OUT         CSV output path\n")
		fmt.Fprintf(os.Stderr, "  AALA_DB          SQLite output path\n")
		fmt.Fprintf(os.Stderr, "  AALA_FIRSTYEAR   First model year\n")
		fmt.Fprintf(os.Stderr, "  AALA_LASTYEAR    Last model year\n")
		fmt.Fprintf(os.Stderr, "  AALA_OFFLINE     Skip downloads\n")
		fmt.Fprintf(os.Stderr, "  AALA_WORKERS     Processing concurrency\n")
		fmt.Fprintf(os.Stderr, "  AALA_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  AALA_MAXFILESIZE Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.DataDir = viper.GetString("dir")
	cfg.OutputCSV = viper.GetString("out")
	cfg.DBPath = viper.GetString("db")
	cfg.FirstYear = viper.GetInt("firstyear")
	cfg.LastYear = viper.GetInt("lastyear")
	cfg.Offline = viper.GetBool("offline")
	cfg.Workers = viper.GetInt("workers")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data directory cannot be empty")
	}

	if _, err := os.Stat(c.DataDir); os.IsNotExist(err) {
		if err := os.MkdirAll(c.DataDir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create data directory %s: %w", c.DataDir, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access data directory %s: %w", c.DataDir, err)
	}

	if c.OutputCSV == "" {
		return errors.New("CSV output path cannot be empty")
	}

	if c.FirstYear < 1994 {
		return errors.New("first year cannot predate the AALA reporting requirement (1994)")
	}

	if c.LastYear < c.FirstYear {
		return errors.New("last year cannot be before first year")
	}

	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Years returns every model year in the configured range, ascending.
func (c *Config) Years() []int {
	years := make([]int, 0, c.LastYear-c.FirstYear+1)
	for year := c.FirstYear; year <= c.LastYear; year++ {
		years = append(years, year)
	}
	return years
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{DataDir: %s, OutputCSV: %s, DBPath: %s, Years: %d-%d, Offline: %t, Workers: %d, LogLevel: %s, MaxFileSize: %d}",
		c.DataDir, c.OutputCSV, c.DBPath, c.FirstYear, c.LastYear, c.Offline, c.Workers, c.LogLevel, c.MaxFileSize)
}
