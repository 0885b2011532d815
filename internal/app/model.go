// Package app is the session view controller: the root Bubble Tea model that
// routes user intents to the collection store, the backend gateway and the
// editor session, and owns which modal is visible.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/marcus/mynotes/internal/api"
	"github.com/marcus/mynotes/internal/config"
	"github.com/marcus/mynotes/internal/editor"
	"github.com/marcus/mynotes/internal/keymap"
	"github.com/marcus/mynotes/internal/store"
	"github.com/marcus/mynotes/internal/styles"
	"github.com/marcus/mynotes/internal/version"
)

// screen selects the top-level view.
type screen int

const (
	screenLogin screen = iota
	screenSignUp
	screenNotes
)

// modalKind is the single tagged modal variant: at most one modal is open at
// any time, enforced by the type rather than by convention.
type modalKind int

const (
	modalNone modalKind = iota
	modalEditor
	modalDetail
	modalConfirmDelete
)

// editorForm holds the bubbles inputs backing the add/edit modal. The editor
// session owns the draft; the form mirrors it for display and input.
type editorForm struct {
	title    textinput.Model
	content  textarea.Model
	tags     textinput.Model
	reminder textinput.Model
	focus    int // 0=title 1=content 2=tags 3=reminder
	errMsg   string
	saving   bool

	// confirmDiscard is set after the first esc on a dirty draft; the second
	// esc discards.
	confirmDiscard bool
}

const editorFieldCount = 4

// Model is the root Bubble Tea model for the MyNotes client.
type Model struct {
	cfg        *config.Config
	client     *api.Client
	log        zerolog.Logger
	store      *store.Store
	appVersion string

	listKeys   keymap.ListKeys
	editorKeys keymap.EditorKeys
	detailKeys keymap.DetailKeys

	screen screen
	width  int
	height int
	ready  bool

	// Login / signup form
	auth authForm
	user *api.User

	// Note list state
	searchInput   textinput.Model
	searchFocused bool
	favoritesOnly bool
	cursor        int
	scrollOff     int
	loading       bool
	spin          spinner.Model

	// Modal state
	modal        modalKind
	detailNote   api.Note
	deleteNote   api.Note
	confirmFocus int // 0=cancel 1=delete

	// Editor session (nil unless modal == modalEditor)
	sess *editor.Session
	form editorForm

	// Status/toast messages
	statusMsg     string
	statusExpiry  time.Time
	statusIsError bool

	now func() time.Time
}

// New creates the application model. The screen starts at the note list when
// a stored token made the session active, otherwise at login.
func New(cfg *config.Config, client *api.Client, log zerolog.Logger, appVersion string) Model {
	styles.ApplyTheme(cfg.UI.Theme)

	search := textinput.New()
	search.Placeholder = "Search notes..."
	search.CharLimit = 100
	search.Width = 36

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	scr := screenLogin
	if client.Session().Active() {
		scr = screenNotes
	}

	return Model{
		cfg:        cfg,
		client:     client,
		log:        log,
		store:      store.New(),
		appVersion: appVersion,
		listKeys:   keymap.DefaultListKeys(),
		editorKeys: keymap.DefaultEditorKeys(),
		detailKeys: keymap.DefaultDetailKeys(),
		screen:     scr,
		auth:       newAuthForm(),
		searchInput: search,
		spin:        sp,
		now:         time.Now,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(), textinput.Blink, version.CheckAsync(m.appVersion)}
	if m.screen == screenNotes {
		cmds = append(cmds, m.loadNotes(), m.loadUser(), m.spin.Tick)
	}
	return tea.Batch(cmds...)
}

// showToast displays a temporary status message.
func (m *Model) showToast(msg string, isError bool) {
	m.statusMsg = msg
	m.statusIsError = isError
	m.statusExpiry = m.now().Add(4 * time.Second)
}

// clearExpiredToast drops the toast once its time is up.
func (m *Model) clearExpiredToast() {
	if m.statusMsg != "" && m.now().After(m.statusExpiry) {
		m.statusMsg = ""
		m.statusIsError = false
	}
}

// visible returns the derived visible set for the current filter state.
func (m *Model) visible() []api.Note {
	return m.store.VisibleNotes(m.favoritesOnly)
}

// selected returns the note under the cursor, if any.
func (m *Model) selected() (api.Note, bool) {
	notes := m.visible()
	if len(notes) == 0 || m.cursor < 0 || m.cursor >= len(notes) {
		return api.Note{}, false
	}
	return notes[m.cursor], true
}

// clampCursor keeps the cursor inside the visible set after it changes.
func (m *Model) clampCursor() {
	n := len(m.visible())
	if n == 0 {
		m.cursor = 0
		m.scrollOff = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.scrollOff > m.cursor {
		m.scrollOff = m.cursor
	}
}

// openEditor spawns an editor session and fills the form from its draft.
// Opening an edit copies from the note, never references it, and re-arms a
// persisted future reminder for the session's lifetime.
func (m *Model) openEditor(mode editor.Mode, src *api.Note) tea.Cmd {
	sess, armCmd := editor.Open(mode, src)
	m.sess = sess
	m.modal = modalEditor

	d := sess.Draft()

	title := textinput.New()
	title.Placeholder = "Add your title here"
	title.CharLimit = 200
	title.Width = 48
	title.SetValue(d.Title)
	title.Focus()

	content := textarea.New()
	content.Placeholder = "Write your note..."
	content.CharLimit = 0
	content.SetWidth(52)
	content.SetHeight(8)
	content.SetValue(d.Content)
	content.Blur()

	tags := textinput.New()
	tags.Placeholder = "tags, comma, separated"
	tags.CharLimit = 200
	tags.Width = 48
	tags.SetValue(joinTags(d.Tags))

	rem := textinput.New()
	rem.Placeholder = "YYYY-MM-DD HH:MM (optional reminder)"
	rem.CharLimit = 32
	rem.Width = 48
	if !d.Reminder.IsZero() {
		rem.SetValue(formatReminderInput(d.Reminder))
	}

	m.form = editorForm{title: title, content: content, tags: tags, reminder: rem}
	return tea.Batch(armCmd, textarea.Blink)
}

// closeEditor tears the session down, cancelling any pending reminder.
func (m *Model) closeEditor() {
	if m.sess != nil {
		m.sess.Close()
		m.sess = nil
	}
	m.modal = modalNone
	m.form = editorForm{}
}

// forceLogout clears local session state after a 401 or explicit logout and
// returns to the login screen.
func (m *Model) forceLogout(reason string) {
	m.client.Session().Clear()
	if err := config.ClearToken(); err != nil {
		m.log.Warn().Err(err).Msg("clear token")
	}
	m.closeEditor()
	m.store.ClearSearch()
	m.store.SetAll(nil)
	m.user = nil
	m.searchFocused = false
	m.searchInput.SetValue("")
	m.favoritesOnly = false
	m.modal = modalNone
	m.screen = screenLogin
	m.auth = newAuthForm()
	if reason != "" {
		m.showToast(reason, true)
	}
}
