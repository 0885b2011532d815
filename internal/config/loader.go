package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/mynotes"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary. Durations are strings in
// the file ("15s") and pointers distinguish "absent" from zero values.
type rawConfig struct {
	Server rawServerConfig `json:"server"`
	UI     rawUIConfig     `json:"ui"`
}

type rawServerConfig struct {
	URL     string `json:"url"`
	Timeout string `json:"timeout"`
}

type rawUIConfig struct {
	Theme      string `json:"theme"`
	ShowFooter *bool  `json:"showFooter"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/mynotes/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil // Return defaults on error
		}
		path = filepath.Join(home, configDir, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	mergeConfig(cfg, &raw)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeConfig merges raw config values into the defaults.
func mergeConfig(cfg *Config, raw *rawConfig) {
	if raw.Server.URL != "" {
		cfg.Server.URL = strings.TrimRight(raw.Server.URL, "/")
	}
	if raw.Server.Timeout != "" {
		if d, err := time.ParseDuration(raw.Server.Timeout); err == nil {
			cfg.Server.Timeout = d
		}
	}
	if raw.UI.Theme != "" {
		cfg.UI.Theme = raw.UI.Theme
	}
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Dir returns the configuration directory, creating nothing.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir)
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	d := Dir()
	if d == "" {
		return ""
	}
	return filepath.Join(d, configFile)
}
