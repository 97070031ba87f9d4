package config

import (
	"os"
	"path/filepath"
	"time"
)

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// EngineConfig represents safety engine configuration
type EngineConfig struct {
	Workers       int           `yaml:"workers" json:"workers"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout"`
	FailOnInvalid bool          `yaml:"fail_on_invalid" json:"fail_on_invalid"`
}

// RulesConfig represents safety rule catalog configuration
type RulesConfig struct {
	CustomPaths  []string `yaml:"custom_paths" json:"custom_paths"`
	RiskFilter   []string `yaml:"risk_filter" json:"risk_filter"`
	IncludeRules []string `yaml:"include_rules" json:"include_rules"`
	ExcludeRules []string `yaml:"exclude_rules" json:"exclude_rules"`
	Categories   []string `yaml:"categories" json:"categories"`
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Format  string `yaml:"format" json:"format"`
	Verbose bool   `yaml:"verbose" json:"verbose"`
	File    string `yaml:"file" json:"file"`
	Pretty  bool   `yaml:"pretty" json:"pretty"`
}

// WeatherConfig represents the weather provider configuration. When Offline
// is set the deterministic local estimator is used instead of the API.
type WeatherConfig struct {
	BaseURL  string        `yaml:"base_url" json:"base_url"`
	APIKey   string        `yaml:"api_key" json:"api_key"`
	Units    string        `yaml:"units" json:"units"`
	CacheTTL time.Duration `yaml:"cache_ttl" json:"cache_ttl"`
	Offline  bool          `yaml:"offline" json:"offline"`
}

// AuditConfig represents fairness audit configuration
type AuditConfig struct {
	Workers        int      `yaml:"workers" json:"workers"`
	SuitePaths     []string `yaml:"suite_paths" json:"suite_paths"`
	FailOnCritical bool     `yaml:"fail_on_critical" json:"fail_on_critical"`
}

// PerformanceConfig represents performance configuration
type PerformanceConfig struct {
	EnableCache bool          `yaml:"enable_cache" json:"enable_cache"`
	CacheTTL    time.Duration `yaml:"cache_ttl" json:"cache_ttl"`
}

// DevelopmentConfig represents development configuration
type DevelopmentConfig struct {
	Debug        bool `yaml:"debug" json:"debug"`
	DryRun       bool `yaml:"dry_run" json:"dry_run"`
	ValidateOnly bool `yaml:"validate_only" json:"validate_only"`
}

// FitHeroConfig represents the complete engine configuration
type FitHeroConfig struct {
	CacheDir  string `yaml:"cache_dir" json:"cache_dir"`
	RulesDir  string `yaml:"rules_dir" json:"rules_dir"`
	SuitesDir string `yaml:"suites_dir" json:"suites_dir"`

	Logging     LoggingConfig     `yaml:"logging" json:"logging"`
	Engine      EngineConfig      `yaml:"engine" json:"engine"`
	Rules       RulesConfig       `yaml:"rules" json:"rules"`
	Output      OutputConfig      `yaml:"output" json:"output"`
	Weather     WeatherConfig     `yaml:"weather" json:"weather"`
	Audit       AuditConfig       `yaml:"audit" json:"audit"`
	Performance PerformanceConfig `yaml:"performance" json:"performance"`
	Development DevelopmentConfig `yaml:"development" json:"development"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *FitHeroConfig {
	homeDir, _ := os.UserHomeDir()
	fitheroDir := filepath.Join(homeDir, ".fithero")

	return &FitHeroConfig{
		CacheDir:  fitheroDir,
		RulesDir:  filepath.Join(fitheroDir, "rules"),
		SuitesDir: filepath.Join(fitheroDir, "suites"),

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Engine: EngineConfig{
			Workers:       4,
			Timeout:       30 * time.Second,
			FailOnInvalid: false,
		},
		Rules: RulesConfig{
			CustomPaths:  []string{"./custom-rules/"},
			RiskFilter:   []string{"critical", "high", "medium", "low"},
			IncludeRules: []string{},
			ExcludeRules: []string{},
			Categories:   []string{},
		},
		Output: OutputConfig{
			Format:  "table",
			Verbose: false,
			File:    "",
			Pretty:  true,
		},
		Weather: WeatherConfig{
			BaseURL:  "https://api.open-meteo.com/v1",
			APIKey:   "",
			Units:    "metric",
			CacheTTL: 30 * time.Minute,
			Offline:  false,
		},
		Audit: AuditConfig{
			Workers:        4,
			SuitePaths:     []string{},
			FailOnCritical: true,
		},
		Performance: PerformanceConfig{
			EnableCache: true,
			CacheTTL:    1 * time.Hour,
		},
		Development: DevelopmentConfig{
			Debug:        false,
			DryRun:       false,
			ValidateOnly: false,
		},
	}
}

// GetFitHeroDir returns the engine configuration directory
func GetFitHeroDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".fithero"), nil
}

// GetConfigPath returns the path to the configuration file
func GetConfigPath() (string, error) {
	fitheroDir, err := GetFitHeroDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(fitheroDir, "config.yaml"), nil
}

// GetRulesDir returns the custom rules directory path
func GetRulesDir() (string, error) {
	fitheroDir, err := GetFitHeroDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(fitheroDir, "rules"), nil
}

// GetSuitesDir returns the custom audit suites directory path
func GetSuitesDir() (string, error) {
	fitheroDir, err := GetFitHeroDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(fitheroDir, "suites"), nil
}

// EnsureDirectories creates the necessary directories if they don't exist
func EnsureDirectories() error {
	fitheroDir, err := GetFitHeroDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(fitheroDir, 0755); err != nil {
		return err
	}

	rulesDir, err := GetRulesDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(rulesDir, 0755); err != nil {
		return err
	}

	suitesDir, err := GetSuitesDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(suitesDir, 0755); err != nil {
		return err
	}

	return nil
}
