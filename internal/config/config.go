package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// DefaultMaxFileSize caps how much of a file the engine will score. Larger
// files are rejected by the caller before evaluation; the engine itself never
// sees them.
const DefaultMaxFileSize = 1 << 20 // 1 MiB

// DefaultBaseRate is the simulated payout in BTC per line of contributed
// code at a composite score of 1.0.
const DefaultBaseRate = 0.00001

// Config represents the codecred configuration.
type Config struct {
	Root        string   `mapstructure:"root"`
	Exclude     []string `mapstructure:"exclude"`
	Extensions  []string `mapstructure:"extensions"`
	Format      string   `mapstructure:"format"`
	Output      string   `mapstructure:"output"`
	Quiet       bool     `mapstructure:"quiet"`
	Verbose     bool     `mapstructure:"verbose"`
	MinScore    float64  `mapstructure:"minScore"`
	MaxFileSize int64    `mapstructure:"maxFileSize"`
	BaseRate    float64  `mapstructure:"baseRate"`
	LedgerPath  string   `mapstructure:"ledgerPath"`
	Manifest    string   `mapstructure:"manifest"`
	Concurrency int      `mapstructure:"concurrency"`
	Parallel    bool     `mapstructure:"parallel"`
	ListenAddr  string   `mapstructure:"listenAddr"`
}

// DefaultExtensions lists the source file extensions scored when no explicit
// paths are given.
var DefaultExtensions = []string{
	".c", ".cc", ".cpp", ".h", ".hpp",
	".go", ".java", ".js", ".ts", ".py", ".rs", ".rb", ".cs", ".swift", ".kt",
}

// Load loads configuration from defaults, config file, and environment.
func Load(rootPath string) (*Config, error) {
	viper.SetDefault("root", ".")
	viper.SetDefault("exclude", []string{"**/vendor/**", "**/node_modules/**", "**/.git/**"})
	viper.SetDefault("extensions", DefaultExtensions)
	viper.SetDefault("format", "console")
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("minScore", 0.0)
	viper.SetDefault("maxFileSize", DefaultMaxFileSize)
	viper.SetDefault("baseRate", DefaultBaseRate)
	viper.SetDefault("ledgerPath", ".codecred/ledger.db")
	viper.SetDefault("manifest", ".codecred.yaml")
	viper.SetDefault("concurrency", 10)
	viper.SetDefault("parallel", true)
	viper.SetDefault("listenAddr", ":8639")

	// Config file locations
	configPaths := []string{".codecredrc.json", ".codecredrc.yaml", ".codecredrc.yml"}
	for _, path := range configPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
		break
	}

	// Environment variables
	viper.SetEnvPrefix("CODECRED")
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if rootPath != "" {
		cfg.Root = rootPath
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks a configuration for internally consistent values.
func Validate(cfg *Config) error {
	if cfg.Format != "console" && cfg.Format != "json" && cfg.Format != "markdown" {
		return fmt.Errorf("invalid format: %s. Must be 'console', 'json', or 'markdown'", cfg.Format)
	}

	if cfg.MinScore < 0.0 || cfg.MinScore > 1.0 {
		return fmt.Errorf("minScore must be within [0.0, 1.0], got %f", cfg.MinScore)
	}

	if cfg.MaxFileSize < 1 {
		return fmt.Errorf("maxFileSize must be at least 1 byte")
	}

	if cfg.BaseRate <= 0 {
		return fmt.Errorf("baseRate must be greater than zero")
	}

	if cfg.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}

	return nil
}
