package styles

import "github.com/charmbracelet/lipgloss"

// theme is a named palette.
type theme struct {
	primary, accent, favorite         lipgloss.Color
	success, warning, errColor        lipgloss.Color
	textPrimary, textSecondary, muted lipgloss.Color
	bgSecondary, bgTertiary           lipgloss.Color
	borderNormal, borderActive        lipgloss.Color
	markdown                          string
}

var themes = map[string]theme{
	"dark": {
		primary:       lipgloss.Color("#3B82F6"),
		accent:        lipgloss.Color("#F59E0B"),
		favorite:      lipgloss.Color("#EF4444"),
		success:       lipgloss.Color("#10B981"),
		warning:       lipgloss.Color("#F59E0B"),
		errColor:      lipgloss.Color("#EF4444"),
		textPrimary:   lipgloss.Color("#F9FAFB"),
		textSecondary: lipgloss.Color("#9CA3AF"),
		muted:         lipgloss.Color("#6B7280"),
		bgSecondary:   lipgloss.Color("#1F2937"),
		bgTertiary:    lipgloss.Color("#374151"),
		borderNormal:  lipgloss.Color("#374151"),
		borderActive:  lipgloss.Color("#3B82F6"),
		markdown:      "dark",
	},
	"light": {
		primary:       lipgloss.Color("#2563EB"),
		accent:        lipgloss.Color("#B45309"),
		favorite:      lipgloss.Color("#DC2626"),
		success:       lipgloss.Color("#047857"),
		warning:       lipgloss.Color("#B45309"),
		errColor:      lipgloss.Color("#DC2626"),
		textPrimary:   lipgloss.Color("#111827"),
		textSecondary: lipgloss.Color("#4B5563"),
		muted:         lipgloss.Color("#9CA3AF"),
		bgSecondary:   lipgloss.Color("#E5E7EB"),
		bgTertiary:    lipgloss.Color("#D1D5DB"),
		borderNormal:  lipgloss.Color("#D1D5DB"),
		borderActive:  lipgloss.Color("#2563EB"),
		markdown:      "light",
	},
}

// ListThemes returns the available theme names.
func ListThemes() []string {
	return []string{"dark", "light"}
}

// ApplyTheme swaps the palette and rebuilds derived styles. Unknown names
// fall back to dark.
func ApplyTheme(name string) {
	t, ok := themes[name]
	if !ok {
		t = themes["dark"]
	}

	Primary = t.primary
	Accent = t.accent
	Favorite = t.favorite
	Success = t.success
	Warning = t.warning
	Error = t.errColor
	TextPrimary = t.textPrimary
	TextSecondary = t.textSecondary
	TextMuted = t.muted
	BgSecondary = t.bgSecondary
	BgTertiary = t.bgTertiary
	BorderNormal = t.borderNormal
	BorderActive = t.borderActive
	CurrentMarkdownTheme = t.markdown

	Rebuild()
}
