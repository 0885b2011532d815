package config

import (
	"os"
	"path/filepath"
	"strings"
)

const tokenFile = "token"

// TokenPath returns the path of the persisted access token.
func TokenPath() string {
	d := Dir()
	if d == "" {
		return ""
	}
	return filepath.Join(d, tokenFile)
}

// LoadToken reads the persisted access token. A missing file means
// unauthenticated and is not an error.
func LoadToken() (string, error) {
	return LoadTokenFrom(TokenPath())
}

// LoadTokenFrom reads a token from a specific path.
func LoadTokenFrom(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// SaveToken persists the access token with owner-only permissions.
func SaveToken(token string) error {
	return SaveTokenTo(TokenPath(), token)
}

// SaveTokenTo persists a token to a specific path.
func SaveTokenTo(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0600)
}

// ClearToken removes the persisted token on logout or 401.
func ClearToken() error {
	return ClearTokenAt(TokenPath())
}

// ClearTokenAt removes a token file at a specific path.
func ClearTokenAt(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
