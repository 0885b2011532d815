package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Server saveServerConfig `json:"server"`
	UI     saveUIConfig     `json:"ui"`
}

type saveServerConfig struct {
	URL     string `json:"url,omitempty"`
	Timeout string `json:"timeout,omitempty"`
}

type saveUIConfig struct {
	Theme      string `json:"theme,omitempty"`
	ShowFooter *bool  `json:"showFooter,omitempty"`
}

func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Server: saveServerConfig{
			URL:     cfg.Server.URL,
			Timeout: cfg.Server.Timeout.String(),
		},
		UI: saveUIConfig{
			Theme:      cfg.UI.Theme,
			ShowFooter: &cfg.UI.ShowFooter,
		},
	}
}

// Save writes the config to ~/.config/mynotes/config.json
func Save(cfg *Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to a specific path.
func SaveTo(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(toSaveConfig(cfg), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SaveTheme updates only the theme name in config and saves.
func SaveTheme(themeName string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	cfg.UI.Theme = themeName
	return Save(cfg)
}
