package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads the configuration from the config file
func LoadConfig() (*FitHeroConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// If config file doesn't exist, return default config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config FitHeroConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Fill in missing fields with defaults
	defaultConfig := DefaultConfig()
	if config.CacheDir == "" {
		config.CacheDir = defaultConfig.CacheDir
	}
	if config.RulesDir == "" {
		config.RulesDir = defaultConfig.RulesDir
	}
	if config.SuitesDir == "" {
		config.SuitesDir = defaultConfig.SuitesDir
	}
	if config.Weather.BaseURL == "" {
		config.Weather.BaseURL = defaultConfig.Weather.BaseURL
	}
	if config.Weather.CacheTTL == 0 {
		config.Weather.CacheTTL = defaultConfig.Weather.CacheTTL
	}
	if config.Engine.Workers == 0 {
		config.Engine.Workers = defaultConfig.Engine.Workers
	}
	if config.Audit.Workers == 0 {
		config.Audit.Workers = defaultConfig.Audit.Workers
	}

	return &config, nil
}

// SaveConfig saves the configuration to the config file
func SaveConfig(config *FitHeroConfig) error {
	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// InitializeConfig initializes the configuration and creates necessary directories
func InitializeConfig() (*FitHeroConfig, error) {
	if err := EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveConfig(config); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	return config, nil
}
