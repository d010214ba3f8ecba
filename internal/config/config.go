// Package config resolves where the inventory lives and how the tool logs.
//
// Sources are applied in order, each overriding the last: built-in defaults,
// the YAML config file, a .env file in the working directory, ZALOGA_*
// environment variables, and finally command-line flags (applied by the
// caller).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "zaloga"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"

	// DefaultDBPath is the database file used when nothing else is configured.
	DefaultDBPath = "inventory.db"
	// DefaultLogLevel is the minimum level written to the log file.
	DefaultLogLevel = "info"
)

// Config holds the resolved settings.
type Config struct {
	DBPath   string `yaml:"db_path,omitempty" env:"ZALOGA_DB"`
	LogPath  string `yaml:"log_path,omitempty" env:"ZALOGA_LOG"`
	LogLevel string `yaml:"log_level,omitempty" env:"ZALOGA_LOG_LEVEL"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DBPath:   DefaultDBPath,
		LogLevel: DefaultLogLevel,
	}
}

// Path returns the default config file path.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/zaloga/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load resolves settings from defaults, the config file at path (or Path()
// when path is empty), .env and the environment. A missing default config
// file or .env is not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = Path()
	}
	if path != "" {
		if err := loadFile(path, &cfg, explicit); err != nil {
			return Config{}, err
		}
	}

	// Variables already set in the environment win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config, explicit bool) error {
	data, err := os.ReadFile(ExpandTilde(path))
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// Validate expands paths and checks the settings. It must be called after
// flags have been applied.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("database path must not be empty")
	}
	c.DBPath = ExpandTilde(c.DBPath)
	c.LogPath = ExpandTilde(c.LogPath)

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel converts a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log level %q (expected debug, info, warn or error)", name)
	}
	return level, nil
}

// ExpandTilde expands a leading ~ to the user's home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
