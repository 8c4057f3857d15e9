// Package config loads the optional tasktimer YAML configuration.
//
// Every field has a default, so a missing file yields a working
// configuration identical to running with no configuration at all.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	terrors "git.home.luguber.info/inful/tasktimer/internal/errors"
)

const (
	DefaultConfigPath = "tasktimer.yaml"
	DefaultStorePath  = "timers.json"
	DefaultServerName = "task-timer"
)

// Config represents the tasktimer configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	History HistoryConfig `yaml:"history"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig controls how the tool server announces itself.
type ServerConfig struct {
	Name string `yaml:"name"`
}

// StoreConfig locates the running-timer file.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// HistoryConfig enables the completed-session journal. Empty Path disables it.
type HistoryConfig struct {
	Path string `yaml:"path,omitempty"`
}

// MetricsConfig enables the Prometheus endpoint. Empty Listen disables it.
type MetricsConfig struct {
	Listen string `yaml:"listen,omitempty"`
}

// LoggingConfig selects log level and output format.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from the specified file. A missing file is not
// an error: defaults are returned instead. The .env files are only read when
// a configuration file exists, since they only feed ${VAR} expansion.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, terrors.ConfigInvalid(configPath, fmt.Errorf("failed to read config file: %w", err))
	}

	loadEnvFiles()

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, terrors.ConfigInvalid(configPath, fmt.Errorf("failed to unmarshal config: %w", err))
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Name == "" {
		c.Server.Name = DefaultServerName
	}
	if c.Store.Path == "" {
		c.Store.Path = DefaultStorePath
	}
	c.Logging.Level = NormalizeLogLevel(string(c.Logging.Level))
	c.Logging.Format = NormalizeLogFormat(string(c.Logging.Format))
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return terrors.ValidationFailed("configuration file", "already exists: "+configPath+" (use --force to overwrite)")
	}

	exampleConfig := Config{
		Server:  ServerConfig{Name: DefaultServerName},
		Store:   StoreConfig{Path: DefaultStorePath},
		History: HistoryConfig{Path: "timer-history.db"},
		Metrics: MetricsConfig{Listen: ""},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return terrors.InternalError("failed to marshal config", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return terrors.ConfigInvalid(configPath, fmt.Errorf("failed to write config file: %w", err))
	}

	return nil
}
