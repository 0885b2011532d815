package app

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/mynotes/internal/api"
	"github.com/marcus/mynotes/internal/editor"
)

// Messages delivered back into Update by async commands. Every mutation
// result triggers a full refetch rather than a local patch, so the store
// always reflects the server.
type (
	tickMsg time.Time

	toastMsg struct {
		message string
		isError bool
	}

	notesLoadedMsg struct {
		notes []api.Note
		err   error
	}

	searchDoneMsg struct {
		query string
		notes []api.Note
		err   error
	}

	userLoadedMsg struct {
		user *api.User
		err  error
	}

	// noteSavedMsg carries the editor session ID so results arriving after
	// the session closed (or a new one opened) are discarded.
	noteSavedMsg struct {
		sessionID int
		mode      editor.Mode
		err       error
	}

	noteDeletedMsg struct {
		id  string
		err error
	}

	favoriteToggledMsg struct {
		id  string
		err error
	}

	loginDoneMsg struct {
		token string
		err   error
	}

	signupDoneMsg struct {
		err error
	}
)

// tickCmd drives toast expiry.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ringBell emits the terminal bell, used as the reminder audio cue. The bell
// is zero-width so it does not disturb the renderer.
func ringBell() tea.Cmd {
	return func() tea.Msg {
		os.Stdout.WriteString("\a")
		return nil
	}
}

func (m *Model) loadNotes() tea.Cmd {
	client := m.client
	timeout := m.cfg.Server.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		notes, err := client.ListNotes(ctx)
		return notesLoadedMsg{notes: notes, err: err}
	}
}

func (m *Model) searchNotes(query string) tea.Cmd {
	client := m.client
	timeout := m.cfg.Server.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		notes, err := client.SearchNotes(ctx, query)
		return searchDoneMsg{query: query, notes: notes, err: err}
	}
}

func (m *Model) loadUser() tea.Cmd {
	client := m.client
	timeout := m.cfg.Server.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		user, err := client.GetUser(ctx)
		return userLoadedMsg{user: user, err: err}
	}
}

// saveNote submits the session's sanitized payload. Create and edit share the
// message so the update path stays in one place.
func (m *Model) saveNote(sessionID int, mode editor.Mode, noteID string, payload api.NotePayload) tea.Cmd {
	client := m.client
	timeout := m.cfg.Server.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		// The server copy is not applied locally; the reload after this
		// message is what reconciles the store.
		var err error
		if mode == editor.ModeCreate {
			_, err = client.CreateNote(ctx, payload)
		} else {
			_, err = client.EditNote(ctx, noteID, payload)
		}
		return noteSavedMsg{sessionID: sessionID, mode: mode, err: err}
	}
}

func (m *Model) deleteNoteCmd(id string) tea.Cmd {
	client := m.client
	timeout := m.cfg.Server.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := client.DeleteNote(ctx, id)
		return noteDeletedMsg{id: id, err: err}
	}
}

// toggleFavoriteCmd flips isFavorite via the partial-update endpoint.
func (m *Model) toggleFavoriteCmd(note api.Note) tea.Cmd {
	client := m.client
	timeout := m.cfg.Server.Timeout
	fields := api.NoteFields{"isFavorite": !note.IsFavorite}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, err := client.UpdateNote(ctx, note.ID, fields)
		return favoriteToggledMsg{id: note.ID, err: err}
	}
}

func (m *Model) loginCmd(email, password string) tea.Cmd {
	client := m.client
	timeout := m.cfg.Server.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		token, err := client.Login(ctx, email, password)
		return loginDoneMsg{token: token, err: err}
	}
}

func (m *Model) signupCmd(fullName, email, password string) tea.Cmd {
	client := m.client
	timeout := m.cfg.Server.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := client.CreateAccount(ctx, fullName, email, password)
		return signupDoneMsg{err: err}
	}
}
