package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/mynotes/internal/api"
	"github.com/marcus/mynotes/internal/sanitize"
	"github.com/marcus/mynotes/internal/store"
	"github.com/marcus/mynotes/internal/styles"
	"github.com/marcus/mynotes/internal/ui"
)

const dateLayout = "02 Jan 2006, 3:04 PM"

// View renders the current screen, compositing at most one modal on top.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var base string
	switch m.screen {
	case screenLogin, screenSignUp:
		base = m.authView()
	case screenNotes:
		base = m.listView()
	}

	var modal string
	switch m.modal {
	case modalEditor:
		modal = m.editorView()
	case modalDetail:
		modal = m.detailView()
	case modalConfirmDelete:
		modal = m.confirmView()
	}
	if modal != "" {
		return ui.OverlayModal(base, modal, m.width, m.height)
	}
	return base
}

func (m Model) listView() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n")

	notes := m.visible()
	if len(notes) == 0 {
		b.WriteString("\n")
		b.WriteString(m.emptyView())
	} else {
		b.WriteString(m.rowsView(notes))
	}

	content := b.String()
	footer := m.footerView()
	gap := m.height - lipgloss.Height(content) - lipgloss.Height(footer)
	if gap > 0 {
		content += strings.Repeat("\n", gap)
	}
	return content + footer
}

func (m Model) headerView() string {
	logo := styles.Logo.Render("MyNotes")

	who := ""
	if m.user != nil {
		who = styles.Subtitle.Render(m.user.FullName)
	}

	search := m.searchInput.View()
	if !m.searchFocused && m.searchInput.Value() == "" && !m.store.InSearch() {
		search = styles.Muted.Render("/ to search")
	}
	if m.store.InSearch() {
		search = styles.Subtitle.Render(fmt.Sprintf("search: %q", m.store.Query()))
	}
	if m.searchFocused {
		search = m.searchInput.View()
	}

	status := ""
	if m.loading {
		status = m.spin.View()
	}
	if m.favoritesOnly {
		status += " " + styles.Heart.Render("♥ favorites")
	}

	left := logo
	if who != "" {
		left += "  " + who
	}
	right := strings.TrimSpace(status + "  " + search)

	pad := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if pad < 1 {
		pad = 1
	}
	line := " " + left + strings.Repeat(" ", pad) + right

	rule := styles.Muted.Render(strings.Repeat("─", max(0, m.width)))
	return line + "\n" + rule
}

func (m Model) emptyView() string {
	var msg string
	switch m.store.Emptiness(m.favoritesOnly) {
	case store.NoMatch:
		msg = "No notes match your search"
	case store.NoFavorites:
		msg = "No favorite notes yet. Press f on a note to favorite it."
	case store.NoNotes:
		msg = "Start creating your first note! Press n to add a note with\nyour ideas, thoughts and reminders."
	default:
		return ""
	}
	return lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Foreground(styles.TextMuted).
		Render("\n\n" + msg)
}

// rowsView renders the visible notes as two-line cards inside a scroll
// window anchored to the cursor.
func (m Model) rowsView(notes []api.Note) string {
	const rowHeight = 3
	maxRows := (m.height - 5) / rowHeight
	if maxRows < 1 {
		maxRows = 1
	}

	start := m.scrollOff
	if m.cursor >= start+maxRows {
		start = m.cursor - maxRows + 1
	}
	if start > m.cursor {
		start = m.cursor
	}
	end := start + maxRows
	if end > len(notes) {
		end = len(notes)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.rowView(notes[i], i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) rowView(n api.Note, selected bool) string {
	w := m.width - 4
	if w < 20 {
		w = 20
	}

	marker := "  "
	if selected {
		marker = styles.Logo.Render("> ")
	}

	title := runewidth.Truncate(n.Title, w-24, "…")
	if selected {
		title = styles.RowSelected.Render(title)
	} else {
		title = styles.Title.Render(title)
	}

	heart := "  "
	if n.IsFavorite {
		heart = styles.Heart.Render("♥ ")
	}

	date := styles.Muted.Render(n.CreatedOn.Local().Format(dateLayout))

	top := marker + heart + title + "  " + date

	preview := sanitize.CleanStrict(n.Content)
	preview = strings.Join(strings.Fields(preview), " ")
	preview = runewidth.Truncate(preview, w-len("    "), "…")

	var meta []string
	if preview != "" {
		meta = append(meta, styles.Subtitle.Render(preview))
	}

	bottom := "    " + strings.Join(meta, " ")

	var extras []string
	for _, tag := range n.Tags {
		extras = append(extras, styles.Tag.Render("#"+tag))
	}
	if n.ReminderTime != nil {
		stamp := "⏰ " + n.ReminderTime.Local().Format(dateLayout)
		if n.ReminderPassed(m.now()) {
			extras = append(extras, styles.ReminderPassed.Render(stamp))
		} else {
			extras = append(extras, styles.Reminder.Render(stamp))
		}
	}
	tagLine := ""
	if len(extras) > 0 {
		tagLine = "\n    " + strings.Join(extras, " ")
	} else {
		tagLine = "\n"
	}

	return top + "\n" + bottom + tagLine
}

func (m Model) footerView() string {
	var hints []string
	add := func(keys, label string) {
		hints = append(hints, styles.KeyHint.Render(keys)+" "+styles.Muted.Render(label))
	}

	switch {
	case m.modal == modalEditor:
		add("tab", "next field")
		add("ctrl+s", "save")
		add("esc", "cancel")
	case m.modal == modalDetail:
		add("e", "edit")
		add("y", "copy")
		add("esc", "close")
	case m.modal == modalConfirmDelete:
		add("y", "delete")
		add("n", "cancel")
	case m.searchFocused:
		add("enter", "search")
		add("esc", "cancel")
	default:
		add("n", "new")
		add("e", "edit")
		add("d", "delete")
		add("f", "favorite")
		add("/", "search")
		add("enter", "details")
		add("q", "quit")
	}

	line := " " + strings.Join(hints, " ")

	if m.statusMsg != "" {
		style := styles.ToastSuccess
		if m.statusIsError {
			style = styles.ToastError
		}
		toast := style.Render(m.statusMsg)
		pad := m.width - lipgloss.Width(line) - lipgloss.Width(toast) - 1
		if pad < 1 {
			pad = 1
		}
		line += strings.Repeat(" ", pad) + toast
	}

	if m.cfg != nil && !m.cfg.UI.ShowFooter && m.statusMsg == "" {
		return ""
	}
	return line
}

func (m Model) editorView() string {
	title := "Add Note"
	if m.sess != nil && m.sess.NoteID() != "" {
		title = "Edit Note"
	}

	label := func(s string, focused bool) string {
		if focused {
			return styles.Logo.Render(s)
		}
		return styles.Subtitle.Render(s)
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(label("Title", m.form.focus == 0))
	b.WriteString("\n" + m.form.title.View() + "\n\n")
	b.WriteString(label("Content", m.form.focus == 1))
	b.WriteString("\n" + m.form.content.View() + "\n\n")
	b.WriteString(label("Tags", m.form.focus == 2))
	b.WriteString("\n" + m.form.tags.View() + "\n\n")
	b.WriteString(label("Reminder", m.form.focus == 3))
	b.WriteString("\n" + m.form.reminder.View())

	if m.sess != nil && !m.sess.Draft().Reminder.IsZero() {
		b.WriteString("\n" + styles.Muted.Render("reminder "+strings.ToLower(m.sess.ReminderState().String())))
	}

	if m.form.errMsg != "" {
		b.WriteString("\n\n" + styles.ErrText.Render(m.form.errMsg))
	}
	if m.form.saving {
		b.WriteString("\n\n" + styles.Muted.Render("Saving..."))
	}

	return styles.ModalBox.Render(b.String())
}

func (m Model) detailView() string {
	n := m.detailNote
	w := m.width * 2 / 3
	if w < 40 {
		w = 40
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render(n.Title))
	if n.IsFavorite {
		b.WriteString(" " + styles.Heart.Render("♥"))
	}
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(n.CreatedOn.Local().Format(dateLayout)))
	b.WriteString("\n\n")
	b.WriteString(renderMarkdown(sanitize.Clean(n.Content), w-4))

	if len(n.Tags) > 0 {
		var tags []string
		for _, tag := range n.Tags {
			tags = append(tags, styles.Tag.Render("#"+tag))
		}
		b.WriteString("\n" + strings.Join(tags, " "))
	}
	if n.ReminderTime != nil {
		stamp := "⏰ " + n.ReminderTime.Local().Format(dateLayout)
		if n.ReminderPassed(m.now()) {
			b.WriteString("\n" + styles.ReminderPassed.Render(stamp))
		} else {
			b.WriteString("\n" + styles.Reminder.Render(stamp))
		}
	}

	return styles.ModalBox.Width(w).Render(b.String())
}

// renderMarkdown renders note content through glamour, falling back to the
// raw text when rendering fails.
func renderMarkdown(content string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.CurrentMarkdownTheme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

func (m Model) confirmView() string {
	title := runewidth.Truncate(m.deleteNote.Title, 40, "…")

	cancel := styles.Button.Render("Cancel")
	del := styles.ButtonDanger.Render("Delete")
	if m.confirmFocus == 0 {
		cancel = styles.ButtonFocused.Render("Cancel")
	} else {
		del = styles.ButtonDangerFocused.Render("Delete")
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render("Delete note?"))
	b.WriteString("\n\n")
	b.WriteString(styles.Body.Render(fmt.Sprintf("%q will be permanently deleted.", title)))
	b.WriteString("\n\n")
	b.WriteString(cancel + "  " + del)

	return styles.ModalDanger.Render(b.String())
}
