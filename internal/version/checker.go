// Package version checks GitHub releases for a newer mynotes build. Checks
// run in the background and are cached so startup never blocks on the network.
package version

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const releaseURL = "https://api.github.com/repos/marcus/mynotes/releases/latest"

// UpdateAvailableMsg is sent when a newer release exists.
type UpdateAvailableMsg struct {
	CurrentVersion string
	LatestVersion  string
	ReleaseURL     string
}

type releaseInfo struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// CheckAsync returns a command that checks for updates in the background. It
// consults the cache first; a valid cached "up to date" answer produces no
// message at all.
func CheckAsync(currentVersion string) tea.Cmd {
	return func() tea.Msg {
		if cached, err := LoadCache(); err == nil && cacheValid(cached, currentVersion) {
			if cached.HasUpdate {
				return UpdateAvailableMsg{
					CurrentVersion: currentVersion,
					LatestVersion:  cached.LatestVersion,
					ReleaseURL:     cached.ReleaseURL,
				}
			}
			return nil
		}

		latest, url, err := fetchLatest()
		if err != nil {
			// Network failures are not cached, so the next start retries.
			return nil
		}

		hasUpdate := IsNewer(latest, currentVersion)
		_ = SaveCache(&CacheEntry{
			LatestVersion:  latest,
			CurrentVersion: currentVersion,
			ReleaseURL:     url,
			CheckedAt:      time.Now(),
			HasUpdate:      hasUpdate,
		})

		if hasUpdate {
			return UpdateAvailableMsg{
				CurrentVersion: currentVersion,
				LatestVersion:  latest,
				ReleaseURL:     url,
			}
		}
		return nil
	}
}

func fetchLatest() (version, url string, err error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(releaseURL)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("release lookup: status %d", resp.StatusCode)
	}

	var info releaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", "", err
	}
	if info.TagName == "" {
		return "", "", fmt.Errorf("release lookup: empty tag")
	}
	return info.TagName, info.HTMLURL, nil
}

// IsNewer reports whether latest is a strictly newer semantic version than
// current. Malformed versions compare as not-newer, so a bad tag never nags.
func IsNewer(latest, current string) bool {
	l, lok := parseVersion(latest)
	c, cok := parseVersion(current)
	if !lok || !cok {
		return false
	}
	for i := 0; i < 3; i++ {
		if l[i] != c[i] {
			return l[i] > c[i]
		}
	}
	return false
}

func parseVersion(v string) ([3]int, bool) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	// Ignore pre-release/build suffixes for ordering.
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}

	var out [3]int
	parts := strings.Split(v, ".")
	if len(parts) == 0 || len(parts) > 3 {
		return out, false
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return out, false
		}
		out[i] = n
	}
	return out, true
}
