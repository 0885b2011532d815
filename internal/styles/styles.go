package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - default dark theme. ApplyTheme rewrites these in place,
// followed by Rebuild for the derived styles.
var (
	Primary   = lipgloss.Color("#3B82F6") // Blue
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Favorite  = lipgloss.Color("#EF4444") // Heart red

	Success = lipgloss.Color("#10B981")
	Warning = lipgloss.Color("#F59E0B")
	Error   = lipgloss.Color("#EF4444")

	TextPrimary   = lipgloss.Color("#F9FAFB")
	TextSecondary = lipgloss.Color("#9CA3AF")
	TextMuted     = lipgloss.Color("#6B7280")

	BgSecondary = lipgloss.Color("#1F2937")
	BgTertiary  = lipgloss.Color("#374151")

	BorderNormal = lipgloss.Color("#374151")
	BorderActive = lipgloss.Color("#3B82F6")

	// Markdown style name handed to glamour (updated by ApplyTheme)
	CurrentMarkdownTheme = "dark"
)

// Text and layout styles, derived from the palette.
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	ErrText  lipgloss.Style
	Logo     lipgloss.Style
	Tag      lipgloss.Style
	Heart    lipgloss.Style

	Reminder       lipgloss.Style
	ReminderPassed lipgloss.Style

	RowSelected lipgloss.Style

	ModalBox    lipgloss.Style
	ModalDanger lipgloss.Style
	ModalTitle  lipgloss.Style

	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonDanger  lipgloss.Style
	ButtonDangerFocused lipgloss.Style

	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style

	KeyHint lipgloss.Style
	Input   lipgloss.Style
)

func init() {
	Rebuild()
}

// Rebuild recomputes the derived styles from the current palette.
func Rebuild() {
	Title = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	Subtitle = lipgloss.NewStyle().Foreground(TextSecondary)
	Body = lipgloss.NewStyle().Foreground(TextPrimary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	ErrText = lipgloss.NewStyle().Foreground(Error)
	Logo = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Tag = lipgloss.NewStyle().Foreground(Primary)
	Heart = lipgloss.NewStyle().Foreground(Favorite)

	Reminder = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	ReminderPassed = lipgloss.NewStyle().Foreground(Error).Strikethrough(true)

	RowSelected = lipgloss.NewStyle().
		Background(BgSecondary).
		Foreground(TextPrimary).
		Bold(true)

	ModalBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderActive).
		Padding(1, 2)

	ModalDanger = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Error).
		Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)

	Button = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(BgTertiary).
		Padding(0, 1)

	ButtonFocused = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Primary).
		Bold(true).
		Padding(0, 1)

	ButtonDanger = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(BgTertiary).
		Padding(0, 1)

	ButtonDangerFocused = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Error).
		Bold(true).
		Padding(0, 1)

	ToastSuccess = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(Success).
		Padding(0, 1)

	ToastError = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(Error).
		Padding(0, 1)

	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	Input = lipgloss.NewStyle().Foreground(TextPrimary)
}
