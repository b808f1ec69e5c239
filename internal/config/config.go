// Package config loads the editor's settings from a YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigFileName is the settings file inside the app directory
const ConfigFileName = "settings.yaml"

// DatabaseFileName is the default SQLite userlist inside the app directory
const DatabaseFileName = "userlist.db"

// Userlist backends
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Config holds the editor's settings
type Config struct {
	Game            string `yaml:"game" env:"METADATA_EDITOR_GAME"`
	DataPath        string `yaml:"data_path" env:"METADATA_EDITOR_DATA_PATH"`
	MasterlistPath  string `yaml:"masterlist_path" env:"METADATA_EDITOR_MASTERLIST"`
	UserlistBackend string `yaml:"userlist_backend" env:"METADATA_EDITOR_USERLIST_BACKEND"`
	UserlistPath    string `yaml:"userlist_path" env:"METADATA_EDITOR_USERLIST"`
	LogLevel        string `yaml:"log_level" env:"METADATA_EDITOR_LOG_LEVEL"`
	Notifications   bool   `yaml:"notifications" env:"METADATA_EDITOR_NOTIFICATIONS"`
}

// Default returns the settings used when no file exists. Paths are rooted at appDir.
func Default(appDir string) Config {
	return Config{
		Game:            "skyrimse",
		MasterlistPath:  filepath.Join(appDir, "masterlist.yaml"),
		UserlistBackend: BackendYAML,
		UserlistPath:    filepath.Join(appDir, "userlist.yaml"),
		LogLevel:        "info",
		Notifications:   true,
	}
}

// Load reads appDir/settings.yaml over the defaults, then applies environment
// overrides. A missing file is not an error.
func Load(appDir string) (*Config, error) {
	cfg := Default(appDir)

	err := readFile(filepath.Join(appDir, ConfigFileName), &cfg)
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		return nil, err
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	// The default userlist path is a YAML file; SQLite gets its own default.
	if cfg.UserlistBackend == BackendSQLite && cfg.UserlistPath == Default(appDir).UserlistPath {
		cfg.UserlistPath = filepath.Join(appDir, DatabaseFileName)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrConfigNotFound
		}
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// Validate checks that the settings can be used
func (c *Config) Validate() error {
	if c.Game == "" {
		return fmt.Errorf("%w: game is required", ErrInvalidConfig)
	}
	switch c.UserlistBackend {
	case BackendYAML, BackendSQLite:
	default:
		return fmt.Errorf("%w: unknown userlist backend %q", ErrInvalidConfig, c.UserlistBackend)
	}
	if c.UserlistPath == "" {
		return fmt.Errorf("%w: userlist path is required", ErrInvalidConfig)
	}
	return nil
}
