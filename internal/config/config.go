package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `json:"server"`
	UI     UIConfig     `json:"ui"`
}

// ServerConfig points the client at a MyNotes backend.
type ServerConfig struct {
	URL     string        `json:"url"`
	Timeout time.Duration `json:"timeout"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	Theme      string `json:"theme"` // "dark" or "light"
	ShowFooter bool   `json:"showFooter"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     "http://localhost:8000",
			Timeout: 15 * time.Second,
		},
		UI: UIConfig{
			Theme:      "dark",
			ShowFooter: true,
		},
	}
}

// Validate checks the configuration for errors, repairing what it can.
func (c *Config) Validate() error {
	if c.Server.Timeout <= 0 {
		c.Server.Timeout = 15 * time.Second
	}
	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		c.UI.Theme = "dark"
	}
	return nil
}
