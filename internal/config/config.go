// Package config loads the TOML configuration from
// ~/.config/routined/config.toml, falling back to defaults when the file is
// missing, then applies ROUTINED_* environment overrides on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	App      AppConfig      `toml:"app"`
	Log      LogConfig      `toml:"log"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type AppConfig struct {
	// Timezone names the IANA location calendar days are bucketed in.
	// Empty means the process-local timezone.
	Timezone string `toml:"timezone"`
}

type LogConfig struct {
	// Path is the log file destination. The TUI owns the terminal, so
	// logs never go to stderr while the program runs.
	Path  string `toml:"path"`
	Debug bool   `toml:"debug"`
}

func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(homeDir, ".config", "routined", "routined.db"),
		},
		Log: LogConfig{
			Path: filepath.Join(homeDir, ".config", "routined", "routined.log"),
		},
	}
}

// Load reads the config from the standard location and applies environment
// overrides.
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home dir: %w", err)
	}
	return LoadFrom(filepath.Join(homeDir, ".config", "routined", "config.toml"))
}

// LoadFrom reads the config from a specific path. A missing file is not an
// error; defaults apply.
func LoadFrom(configPath string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnv(cfg)

	cfg.Database.Path = expandPath(cfg.Database.Path)
	cfg.Log.Path = expandPath(cfg.Log.Path)

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Location resolves the configured timezone name. An empty name means the
// process-local timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.App.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.App.Timezone, err)
	}
	return loc, nil
}

func applyEnv(cfg *Config) {
	if v, ok := getEnvString("ROUTINED_DB_PATH"); ok {
		cfg.Database.Path = v
	}
	if v, ok := getEnvString("ROUTINED_TIMEZONE"); ok {
		cfg.App.Timezone = v
	}
	if v, ok := getEnvString("ROUTINED_LOG_PATH"); ok {
		cfg.Log.Path = v
	}
	if v, ok := getEnvBool("ROUTINED_DEBUG"); ok {
		cfg.Log.Debug = v
	}
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

// expandPath expands a leading ~ to the home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
