package app

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/mynotes/internal/api"
	"github.com/marcus/mynotes/internal/config"
	"github.com/marcus/mynotes/internal/editor"
	"github.com/marcus/mynotes/internal/reminder"
	"github.com/marcus/mynotes/internal/styles"
	"github.com/marcus/mynotes/internal/version"
)

// reminderInputLayouts are the accepted forms for the reminder field.
var reminderInputLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// Update routes messages. Modal state is checked before screen state so an
// open modal always captures input first.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.clearExpiredToast()
		return m, tickCmd()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case toastMsg:
		m.showToast(msg.message, msg.isError)
		return m, nil

	case version.UpdateAvailableMsg:
		m.log.Info().
			Str("current", msg.CurrentVersion).
			Str("latest", msg.LatestVersion).
			Msg("update available")
		m.showToast("Update available: "+msg.LatestVersion, false)
		return m, nil

	case reminder.FiredMsg:
		// Resolve rejects ticks from superseded or closed episodes, so a
		// reminder notifies at most once and never after cancellation.
		if m.sess != nil && m.sess.Resolve(msg) {
			title := m.sess.Draft().Title
			if strings.TrimSpace(title) == "" {
				title = "your note"
			}
			m.log.Info().Str("title", title).Msg("reminder fired")
			m.showToast("Reminder: "+title, false)
			return m, ringBell()
		}
		return m, nil

	case notesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.handleRequestError(msg.err, "load notes")
		}
		m.store.SetAll(msg.notes)
		m.searchInput.SetValue("")
		m.searchFocused = false
		m.clampCursor()
		return m, nil

	case searchDoneMsg:
		m.loading = false
		if msg.err != nil {
			return m.handleRequestError(msg.err, "search notes")
		}
		// Last response wins; an older in-flight search that lands later
		// simply overwrites this, matching the refetch model.
		m.store.SetSearch(msg.query, msg.notes)
		m.cursor = 0
		m.scrollOff = 0
		return m, nil

	case userLoadedMsg:
		if msg.err != nil {
			if api.IsAuth(msg.err) {
				m.forceLogout("Session expired, please log in again")
				return m, nil
			}
			m.log.Warn().Err(msg.err).Msg("load user")
			return m, nil
		}
		m.user = msg.user
		return m, nil

	case noteSavedMsg:
		// Discard results for any session other than the one still open.
		if m.sess == nil || m.sess.ID() != msg.sessionID {
			return m, nil
		}
		m.form.saving = false
		if msg.err != nil {
			if api.IsAuth(msg.err) {
				m.forceLogout("Session expired, please log in again")
				return m, nil
			}
			// The draft is untouched so the user can correct and retry.
			m.form.errMsg = api.Message(msg.err)
			m.log.Error().Err(msg.err).Msg("save note")
			return m, nil
		}
		wasCreate := msg.mode == editor.ModeCreate
		m.closeEditor()
		if wasCreate {
			m.showToast("Note added", false)
		} else {
			m.showToast("Note updated", false)
		}
		m.loading = true
		return m, tea.Batch(m.loadNotes(), m.spin.Tick)

	case noteDeletedMsg:
		if msg.err != nil && !api.IsNotFound(msg.err) {
			return m.handleRequestError(msg.err, "delete note")
		}
		// A 404 means the note was already gone; the reload converges the
		// store either way.
		m.showToast("Note deleted", false)
		m.loading = true
		return m, tea.Batch(m.loadNotes(), m.spin.Tick)

	case favoriteToggledMsg:
		if msg.err != nil {
			return m.handleRequestError(msg.err, "toggle favorite")
		}
		m.loading = true
		return m, tea.Batch(m.loadNotes(), m.spin.Tick)

	case loginDoneMsg:
		m.auth.busy = false
		if msg.err != nil {
			m.auth.errMsg = api.Message(msg.err)
			return m, nil
		}
		if err := config.SaveToken(msg.token); err != nil {
			m.log.Warn().Err(err).Msg("persist token")
		}
		m.screen = screenNotes
		m.loading = true
		return m, tea.Batch(m.loadNotes(), m.loadUser(), m.spin.Tick)

	case signupDoneMsg:
		m.auth.busy = false
		if msg.err != nil {
			m.auth.errMsg = api.Message(msg.err)
			return m, nil
		}
		m.screen = screenLogin
		m.auth = newAuthForm()
		m.showToast("Account created. Check your email for the verification link.", false)
		return m, nil
	}

	return m, nil
}

// handleRequestError maps a failed request to either a forced logout (401) or
// an error toast.
func (m Model) handleRequestError(err error, op string) (tea.Model, tea.Cmd) {
	if api.IsAuth(err) {
		m.forceLogout("Session expired, please log in again")
		return m, nil
	}
	m.log.Error().Err(err).Str("op", op).Msg("request failed")
	m.showToast(api.Message(err), true)
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenLogin, screenSignUp:
		return m.handleAuthKey(msg)
	case screenNotes:
		switch m.modal {
		case modalEditor:
			return m.handleEditorKey(msg)
		case modalDetail:
			return m.handleDetailKey(msg)
		case modalConfirmDelete:
			return m.handleConfirmKey(msg)
		}
		if m.searchFocused {
			return m.handleSearchKey(msg)
		}
		return m.handleListKey(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.listKeys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.clampCursor()
		return m, nil

	case key.Matches(msg, k.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, k.Open):
		if note, ok := m.selected(); ok {
			m.detailNote = note
			m.modal = modalDetail
		}
		return m, nil

	case key.Matches(msg, k.New):
		return m, m.openEditor(editor.ModeCreate, nil)

	case key.Matches(msg, k.Edit):
		if note, ok := m.selected(); ok {
			return m, m.openEditor(editor.ModeEdit, &note)
		}
		return m, nil

	case key.Matches(msg, k.Delete):
		if note, ok := m.selected(); ok {
			m.deleteNote = note
			m.confirmFocus = 0
			m.modal = modalConfirmDelete
		}
		return m, nil

	case key.Matches(msg, k.ToggleFavorite):
		if note, ok := m.selected(); ok {
			return m, m.toggleFavoriteCmd(note)
		}
		return m, nil

	case key.Matches(msg, k.FilterFavs):
		m.favoritesOnly = !m.favoritesOnly
		m.cursor = 0
		m.scrollOff = 0
		return m, nil

	case key.Matches(msg, k.Search):
		m.searchFocused = true
		m.searchInput.Focus()
		return m, nil

	case key.Matches(msg, k.Refresh):
		m.loading = true
		return m, tea.Batch(m.loadNotes(), m.spin.Tick)

	case key.Matches(msg, k.Theme):
		next := nextTheme(m.cfg.UI.Theme)
		m.cfg.UI.Theme = next
		styles.ApplyTheme(next)
		if err := config.SaveTheme(next); err != nil {
			m.log.Warn().Err(err).Msg("persist theme")
		}
		return m, nil

	case key.Matches(msg, k.Logout):
		m.forceLogout("")
		m.showToast("Logged out", false)
		return m, nil
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Leaving search restores the canonical list.
		m.searchFocused = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		if m.store.InSearch() {
			m.store.ClearSearch()
			m.cursor = 0
			m.scrollOff = 0
		}
		return m, nil

	case "enter":
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			// An empty query never hits the server; it just exits search.
			m.searchFocused = false
			m.searchInput.Blur()
			if m.store.InSearch() {
				m.store.ClearSearch()
				m.cursor = 0
				m.scrollOff = 0
			}
			return m, nil
		}
		m.searchFocused = false
		m.searchInput.Blur()
		m.loading = true
		return m, tea.Batch(m.searchNotes(query), m.spin.Tick)

	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.editorKeys
	switch {
	case key.Matches(msg, k.Cancel):
		// A dirty draft needs a second esc before it is thrown away.
		if m.sess.Dirty() && !m.form.confirmDiscard {
			m.form.confirmDiscard = true
			m.showToast("Unsaved changes. Press esc again to discard.", true)
			return m, nil
		}
		m.closeEditor()
		return m, nil

	case key.Matches(msg, k.Submit):
		return m.submitEditor()

	case key.Matches(msg, k.NextField):
		m.setEditorFocus((m.form.focus + 1) % editorFieldCount)
		return m, nil

	case key.Matches(msg, k.PrevField):
		m.setEditorFocus((m.form.focus + editorFieldCount - 1) % editorFieldCount)
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Typing again withdraws a pending discard confirmation.
	m.form.confirmDiscard = false

	var cmd tea.Cmd
	switch m.form.focus {
	case 0:
		m.form.title, cmd = m.form.title.Update(msg)
		m.sess.SetTitle(m.form.title.Value())
	case 1:
		m.form.content, cmd = m.form.content.Update(msg)
		m.sess.SetContent(m.form.content.Value())
	case 2:
		m.form.tags, cmd = m.form.tags.Update(msg)
		m.sess.SetTags(m.form.tags.Value())
	case 3:
		m.form.reminder, cmd = m.form.reminder.Update(msg)
		armCmd := m.syncReminderField()
		return m, tea.Batch(cmd, armCmd)
	}
	return m, cmd
}

// syncReminderField drives the scheduler from the reminder input. Every value
// change reschedules: valid future text arms a fresh episode, anything else
// disarms, so a half-typed time can never fire.
func (m *Model) syncReminderField() tea.Cmd {
	raw := strings.TrimSpace(m.form.reminder.Value())
	if raw == "" {
		return m.sess.SetReminder(time.Time{})
	}
	t, err := parseReminderInput(raw)
	if err != nil {
		return m.sess.SetReminder(time.Time{})
	}
	return m.sess.SetReminder(t)
}

func (m *Model) setEditorFocus(focus int) {
	m.form.focus = focus
	m.form.title.Blur()
	m.form.content.Blur()
	m.form.tags.Blur()
	m.form.reminder.Blur()
	switch focus {
	case 0:
		m.form.title.Focus()
	case 1:
		m.form.content.Focus()
	case 2:
		m.form.tags.Focus()
	case 3:
		m.form.reminder.Focus()
	}
}

func (m Model) submitEditor() (tea.Model, tea.Cmd) {
	if m.form.saving {
		return m, nil
	}

	// Mirror the form into the session before validation in case the last
	// keystroke landed on a field the session has not seen.
	m.sess.SetTitle(m.form.title.Value())
	m.sess.SetContent(m.form.content.Value())
	m.sess.SetTags(m.form.tags.Value())

	if raw := strings.TrimSpace(m.form.reminder.Value()); raw != "" {
		if _, err := parseReminderInput(raw); err != nil {
			m.form.errMsg = "Invalid reminder time (use YYYY-MM-DD HH:MM)"
			return m, nil
		}
	}
	armCmd := m.syncReminderField()

	payload, err := m.sess.Payload()
	if err != nil {
		m.form.errMsg = err.Error()
		return m, armCmd
	}

	m.form.errMsg = ""
	m.form.saving = true
	return m, tea.Batch(armCmd, m.saveNote(m.sess.ID(), m.sess.Mode(), m.sess.NoteID(), payload))
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.detailKeys
	switch {
	case key.Matches(msg, k.Close):
		m.modal = modalNone
		return m, nil

	case key.Matches(msg, k.Edit):
		note := m.detailNote
		return m, m.openEditor(editor.ModeEdit, &note)

	case key.Matches(msg, k.Copy):
		if err := clipboard.WriteAll(m.detailNote.Content); err != nil {
			m.showToast("Copy failed: "+err.Error(), true)
			return m, nil
		}
		m.showToast("Content copied to clipboard", false)
		return m, nil
	}
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		m.modal = modalNone
		return m, nil
	case "left", "right", "tab", "h", "l":
		m.confirmFocus = 1 - m.confirmFocus
		return m, nil
	case "y":
		m.modal = modalNone
		return m, m.deleteNoteCmd(m.deleteNote.ID)
	case "enter":
		if m.confirmFocus == 1 {
			m.modal = modalNone
			return m, m.deleteNoteCmd(m.deleteNote.ID)
		}
		m.modal = modalNone
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// nextTheme cycles through the available themes.
func nextTheme(current string) string {
	names := styles.ListThemes()
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// parseReminderInput parses the reminder field in local time.
func parseReminderInput(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range reminderInputLayouts {
		t, err := time.ParseInLocation(layout, raw, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// formatReminderInput renders a reminder for the input field.
func formatReminderInput(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// joinTags renders a tag list back into the comma-separated input form.
func joinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
