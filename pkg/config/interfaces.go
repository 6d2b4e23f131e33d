package config

// Package config provides configuration management for genetic trace runs

// ConfigManager handles loading, validation and saving of run configurations
type ConfigManager interface {
	// Load resolves the configuration from file, environment and overrides
	Load(configFile string, overrides map[string]interface{}) (*RunConfig, error)

	// ValidateConfig validates a configuration
	ValidateConfig(cfg *RunConfig) error

	// SaveConfig saves configuration to file
	SaveConfig(cfg *RunConfig, path string) error
}

// Validator interface for configuration validation
type Validator interface {
	Validate(cfg *RunConfig) error
}

var _ ConfigManager = (*Manager)(nil)
