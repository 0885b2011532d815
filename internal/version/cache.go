package version

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/marcus/mynotes/internal/config"
)

const cacheTTL = 24 * time.Hour

// CacheEntry is the persisted result of the last release check.
type CacheEntry struct {
	LatestVersion  string    `json:"latestVersion"`
	CurrentVersion string    `json:"currentVersion"`
	ReleaseURL     string    `json:"releaseUrl"`
	CheckedAt      time.Time `json:"checkedAt"`
	HasUpdate      bool      `json:"hasUpdate"`
}

func cachePath() string {
	d := config.Dir()
	if d == "" {
		return ""
	}
	return filepath.Join(d, "version-check.json")
}

// LoadCache reads the persisted check result.
func LoadCache() (*CacheEntry, error) {
	path := cachePath()
	if path == "" {
		return nil, os.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// SaveCache persists a check result.
func SaveCache(entry *CacheEntry) error {
	path := cachePath()
	if path == "" {
		return os.ErrNotExist
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// cacheValid reports whether a cached entry still answers for this binary:
// it must be fresh and recorded against the same running version.
func cacheValid(entry *CacheEntry, currentVersion string) bool {
	if entry == nil {
		return false
	}
	if entry.CurrentVersion != currentVersion {
		return false
	}
	return time.Since(entry.CheckedAt) < cacheTTL
}
