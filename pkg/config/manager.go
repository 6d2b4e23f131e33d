package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the manager
const EnvPrefix = "GENETIC"

// Manager loads run configuration from defaults, a config file, the environment and overrides
type Manager struct {
	validator Validator
	envFiles  []string
}

// NewManager creates a configuration manager; envFiles are loaded with godotenv before reading env vars
func NewManager(envFiles ...string) *Manager {
	return &Manager{
		validator: NewRunValidator(),
		envFiles:  envFiles,
	}
}

// Load resolves the configuration. Precedence, lowest first:
// defaults, configFile, GENETIC_* environment, overrides.
func (m *Manager) Load(configFile string, overrides map[string]interface{}) (*RunConfig, error) {
	if err := m.loadEnvFiles(); err != nil {
		return nil, err
	}

	v := viper.New()
	for key, value := range NewDefaultRunConfig().settings() {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// no default, so AutomaticEnv alone would not surface it to Unmarshal
	if err := v.BindEnv("fitness_threshold"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	cfg := &RunConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Problem = strings.ToLower(strings.TrimSpace(cfg.Problem))

	if err := m.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadEnvFiles loads .env style files; missing files are skipped
func (m *Manager) loadEnvFiles() error {
	for _, file := range m.envFiles {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}
	return nil
}

// ValidateConfig validates a configuration
func (m *Manager) ValidateConfig(cfg *RunConfig) error {
	return m.validator.Validate(cfg)
}

// SaveConfig writes cfg to path; the format follows the file extension (yaml, json, toml)
func (m *Manager) SaveConfig(cfg *RunConfig, path string) error {
	v := viper.New()
	for key, value := range cfg.settings() {
		v.Set(key, value)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
