package app

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/marcus/mynotes/internal/api"
	"github.com/marcus/mynotes/internal/config"
	"github.com/marcus/mynotes/internal/reminder"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	session := api.NewSession("test-token")
	client := api.New("http://localhost:0", session)
	m := New(config.Default(), client, zerolog.Nop(), "v0.2.0")
	m.width = 100
	m.height = 30
	m.ready = true
	m.screen = screenNotes
	return m
}

func seedNotes(m *Model, notes ...api.Note) {
	m.store.SetAll(notes)
}

func testNotes() []api.Note {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return []api.Note{
		{ID: "a1", Title: "Groceries", Content: "milk and eggs", CreatedOn: created},
		{ID: "b2", Title: "Project plan", Content: "draft the outline", IsFavorite: true, CreatedOn: created},
		{ID: "c3", Title: "Workout", Content: "leg day", CreatedOn: created},
	}
}

func pressKey(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return out, cmd
}

func deliver(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return out, cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewKeyOpensCreateEditor(t *testing.T) {
	m := newTestModel(t)
	seedNotes(&m, testNotes()...)

	m, _ = pressKey(t, m, runeKey('n'))

	if m.modal != modalEditor {
		t.Fatalf("modal = %v, want modalEditor", m.modal)
	}
	if m.sess == nil {
		t.Fatal("expected an editor session")
	}
	if m.sess.NoteID() != "" {
		t.Errorf("create session has note ID %q", m.sess.NoteID())
	}
}

func TestEditOpensSessionForSelectedNote(t *testing.T) {
	m := newTestModel(t)
	seedNotes(&m, testNotes()...)
	m.cursor = 1

	m, _ = pressKey(t, m, runeKey('e'))

	if m.modal != modalEditor {
		t.Fatalf("modal = %v, want modalEditor", m.modal)
	}
	if got := m.sess.NoteID(); got != "b2" {
		t.Errorf("session note ID = %q, want b2", got)
	}
	if got := m.form.title.Value(); got != "Project plan" {
		t.Errorf("title field = %q, want Project plan", got)
	}
}

func TestEditorCapturesKeysWhileOpen(t *testing.T) {
	m := newTestModel(t)
	seedNotes(&m, testNotes()...)

	m, _ = pressKey(t, m, runeKey('n'))

	// List bindings must not leak through an open editor.
	m, _ = pressKey(t, m, runeKey('d'))

	if m.modal != modalEditor {
		t.Fatalf("modal = %v, want modalEditor still open", m.modal)
	}
	if m.deleteNote.ID != "" {
		t.Errorf("delete target set to %q while editor open", m.deleteNote.ID)
	}
}

func TestEscClosesEditorAndCancelsReminder(t *testing.T) {
	m := newTestModel(t)
	seedNotes(&m, testNotes()...)

	m, _ = pressKey(t, m, runeKey('n'))
	sess := m.sess
	sess.SetReminder(time.Now().Add(time.Hour))

	// Setting the reminder dirtied the draft, so discarding takes two escs.
	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.modal != modalNone {
		t.Fatalf("modal = %v, want modalNone", m.modal)
	}
	if m.sess != nil {
		t.Error("session still attached after close")
	}
	if sess.Resolve(reminder.FiredMsg{Gen: 1}) {
		t.Error("closed session resolved a reminder")
	}
}

func TestDirtyDraftNeedsSecondEscToDiscard(t *testing.T) {
	m := newTestModel(t)
	seedNotes(&m, testNotes()...)

	m, _ = pressKey(t, m, runeKey('n'))
	m.sess.SetTitle("half-typed")

	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal != modalEditor {
		t.Fatal("first esc discarded a dirty draft")
	}
	if !m.form.confirmDiscard {
		t.Error("first esc did not arm the discard confirmation")
	}

	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal != modalNone || m.sess != nil {
		t.Error("second esc did not discard")
	}
}

func TestCleanDraftClosesOnFirstEsc(t *testing.T) {
	m := newTestModel(t)
	seedNotes(&m, testNotes()...)

	m, _ = pressKey(t, m, runeKey('n'))
	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.modal != modalNone {
		t.Error("clean draft required a second esc")
	}
}

func TestReminderFiredShowsToastWithLiveTitle(t *testing.T) {
	m := newTestModel(t)
	seedNotes(&m, testNotes()...)

	m, _ = pressKey(t, m, runeKey('n'))
	m.sess.SetReminder(time.Now().Add(time.Hour))
	m.sess.SetTitle("Walk the dog")

	m, cmd := deliver(t, m, reminder.FiredMsg{Gen: 1, At: time.Now()})

	if !strings.Contains(m.statusMsg, "Walk the dog") {
		t.Errorf("toast = %q, want it to carry the live title", m.statusMsg)
	}
	if cmd == nil {
		t.Error("expected the bell command")
	}
}

func TestStaleReminderGenerationIgnored(t *testing.T) {
	m := newTestModel(t)
	seedNotes(&m, testNotes()...)

	m, _ = pressKey(t, m, runeKey('n'))
	m.sess.SetReminder(time.Now().Add(time.Hour))
	m.sess.SetReminder(time.Now().Add(2 * time.Hour))

	m, _ = deliver(t, m, reminder.FiredMsg{Gen: 1, At: time.Now()})

	if m.statusMsg != "" {
		t.Errorf("stale generation produced toast %q", m.statusMsg)
	}
}

func TestReminderFiresAtMostOnce(t *testing.T) {
	m := newTestModel(t)
	seedNotes(&m, testNotes()...)

	m, _ = pressKey(t, m, runeKey('n'))
	m.sess.SetReminder(time.Now().Add(time.Hour))
	m.sess.SetTitle("Once")

	m, _ = deliver(t, m, reminder.FiredMsg{Gen: 1, At: time.Now()})
	first := m.statusMsg
	m.statusMsg = ""

	m, _ = deliver(t, m, reminder.FiredMsg{Gen: 1, At: time.Now()})

	if first == "" {
		t.Fatal("first delivery did not notify")
	}
	if m.statusMsg != "" {
		t.Errorf("second delivery notified again: %q", m.statusMsg)
	}
}

func TestNoteSavedForStaleSessionDiscarded(t *testing.T) {
	m := newTestModel(t)
	seedNotes(&m, testNotes()...)

	m, _ = pressKey(t, m, runeKey('n'))
	m.form.saving = true

	m, cmd := deliver(t, m, noteSavedMsg{sessionID: m.sess.ID() + 1000})

	if !m.form.saving {
		t.Error("stale result mutated the live session's form")
	}
	if m.modal != modalEditor {
		t.Error("stale result closed the editor")
	}
	if cmd != nil {
		t.Error("stale result triggered a command")
	}
}

func TestNoteSavedSuccessClosesEditorAndReloads(t *testing.T) {
	m := newTestModel(t)
	seedNotes(&m, testNotes()...)

	m, _ = pressKey(t, m, runeKey('n'))
	id := m.sess.ID()

	m, cmd := deliver(t, m, noteSavedMsg{sessionID: id})

	if m.modal != modalNone || m.sess != nil {
		t.Error("successful save left the editor open")
	}
	if !strings.Contains(m.statusMsg, "added") {
		t.Errorf("toast = %q, want add confirmation", m.statusMsg)
	}
	if cmd == nil {
		t.Error("expected a reload command")
	}
}

func TestNoteSaveFailureKeepsDraftForRetry(t *testing.T) {
	m := newTestModel(t)
	seedNotes(&m, testNotes()...)

	m, _ = pressKey(t, m, runeKey('n'))
	m.sess.SetTitle("Keep me")
	m.form.saving = true

	m, _ = deliver(t, m, noteSavedMsg{
		sessionID: m.sess.ID(),
		err:       &api.APIError{Status: 500, Message: "server exploded"},
	})

	if m.modal != modalEditor || m.sess == nil {
		t.Fatal("failed save closed the editor")
	}
	if m.form.saving {
		t.Error("saving flag not cleared after failure")
	}
	if m.form.errMsg != "server exploded" {
		t.Errorf("form error = %q, want server message", m.form.errMsg)
	}
	if got := m.sess.Draft().Title; got != "Keep me" {
		t.Errorf("draft title = %q after failed save", got)
	}
}

func TestAuthFailureForcesLogout(t *testing.T) {
	m := newTestModel(t)
	seedNotes(&m, testNotes()...)

	m, _ = deliver(t, m, notesLoadedMsg{err: &api.APIError{Status: 401}})

	if m.screen != screenLogin {
		t.Fatalf("screen = %v, want screenLogin", m.screen)
	}
	if m.client.Session().Active() {
		t.Error("token still present after 401")
	}
	if m.store.Len() != 0 {
		t.Error("store not cleared on logout")
	}
}

func TestAuthFailureDuringEditorClosesIt(t *testing.T) {
	m := newTestModel(t)
	seedNotes(&m, testNotes()...)

	m, _ = pressKey(t, m, runeKey('n'))
	id := m.sess.ID()

	m, _ = deliver(t, m, noteSavedMsg{sessionID: id, err: &api.APIError{Status: 401}})

	if m.screen != screenLogin {
		t.Fatalf("screen = %v, want screenLogin", m.screen)
	}
	if m.sess != nil || m.modal != modalNone {
		t.Error("editor survived forced logout")
	}
}

func TestFavoritesFilterNarrowsVisibleSet(t *testing.T) {
	m := newTestModel(t)
	seedNotes(&m, testNotes()...)
	m.cursor = 2

	m, _ = pressKey(t, m, runeKey('F'))

	visible := m.visible()
	if len(visible) != 1 || visible[0].ID != "b2" {
		t.Fatalf("visible = %v, want only the favorite", visible)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want reset to 0", m.cursor)
	}

	m, _ = pressKey(t, m, runeKey('F'))
	if len(m.visible()) != 3 {
		t.Error("filter off did not restore the full set")
	}
}

func TestSearchResultsOverlayAndReloadClears(t *testing.T) {
	m := newTestModel(t)
	seedNotes(&m, testNotes()...)

	m, _ = deliver(t, m, searchDoneMsg{query: "plan", notes: []api.Note{testNotes()[1]}})

	if !m.store.InSearch() {
		t.Fatal("search results did not enter search mode")
	}
	if got := len(m.visible()); got != 1 {
		t.Fatalf("visible = %d notes, want 1", got)
	}

	// Any reconciling reload replaces the canonical list and drops the
	// search overlay.
	m, _ = deliver(t, m, notesLoadedMsg{notes: testNotes()})

	if m.store.InSearch() {
		t.Error("reload left search mode active")
	}
	if got := len(m.visible()); got != 3 {
		t.Errorf("visible = %d notes after reload, want 3", got)
	}
}

func TestSearchEscRestoresCanonicalList(t *testing.T) {
	m := newTestModel(t)
	seedNotes(&m, testNotes()...)
	m, _ = deliver(t, m, searchDoneMsg{query: "plan", notes: []api.Note{testNotes()[1]}})

	m, _ = pressKey(t, m, runeKey('/'))
	if !m.searchFocused {
		t.Fatal("slash did not focus search")
	}

	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.store.InSearch() {
		t.Error("esc did not clear search mode")
	}
	if got := len(m.visible()); got != 3 {
		t.Errorf("visible = %d notes, want canonical 3", got)
	}
}

func TestDeleteConfirmFlow(t *testing.T) {
	m := newTestModel(t)
	seedNotes(&m, testNotes()...)

	m, _ = pressKey(t, m, runeKey('d'))
	if m.modal != modalConfirmDelete {
		t.Fatalf("modal = %v, want modalConfirmDelete", m.modal)
	}
	if m.deleteNote.ID != "a1" {
		t.Errorf("delete target = %q, want a1", m.deleteNote.ID)
	}

	// n cancels without issuing a delete.
	m, cmd := pressKey(t, m, runeKey('n'))
	if m.modal != modalNone {
		t.Error("cancel did not close the confirm modal")
	}
	if cmd != nil {
		t.Error("cancel issued a command")
	}

	// y confirms and issues the delete.
	m, _ = pressKey(t, m, runeKey('d'))
	m, cmd = pressKey(t, m, runeKey('y'))
	if m.modal != modalNone {
		t.Error("confirm did not close the modal")
	}
	if cmd == nil {
		t.Error("confirm did not issue the delete command")
	}
}

func TestDeleteMissingNoteStillReloads(t *testing.T) {
	m := newTestModel(t)
	seedNotes(&m, testNotes()...)

	m, cmd := deliver(t, m, noteDeletedMsg{id: "gone", err: &api.APIError{Status: 404}})

	if cmd == nil {
		t.Error("404 delete skipped the reconciling reload")
	}
	if m.statusIsError {
		t.Errorf("404 delete surfaced as error toast %q", m.statusMsg)
	}
}

func TestCursorClampsAfterShrinkingReload(t *testing.T) {
	m := newTestModel(t)
	seedNotes(&m, testNotes()...)
	m.cursor = 2

	m, _ = deliver(t, m, notesLoadedMsg{notes: testNotes()[:1]})

	if m.cursor != 0 {
		t.Errorf("cursor = %d, want clamped to 0", m.cursor)
	}
}

func TestToastExpiresOnTick(t *testing.T) {
	m := newTestModel(t)
	m.showToast("hello", false)

	base := time.Now()
	m.now = func() time.Time { return base.Add(10 * time.Second) }

	m, _ = deliver(t, m, tickMsg(base.Add(10*time.Second)))

	if m.statusMsg != "" {
		t.Errorf("toast %q survived past expiry", m.statusMsg)
	}
}

func TestWindowSizeMarksReady(t *testing.T) {
	m := newTestModel(t)
	m.ready = false

	m, _ = deliver(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	if !m.ready || m.width != 80 || m.height != 24 {
		t.Errorf("ready=%v width=%d height=%d after resize", m.ready, m.width, m.height)
	}
}

func TestParseReminderInput(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"space form", "2026-03-01 15:04", false},
		{"t form", "2026-03-01T15:04", false},
		{"garbage", "tomorrow-ish", true},
		{"date only", "2026-03-01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseReminderInput(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseReminderInput(%q) err = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
		})
	}
}
