// Package editor owns the draft for one add/edit interaction. A session lives
// from open to submit-or-close and holds exactly one reminder scheduler for
// that lifetime.
package editor

import (
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/mynotes/internal/api"
	"github.com/marcus/mynotes/internal/reminder"
	"github.com/marcus/mynotes/internal/sanitize"
)

// Mode selects between creating a new note and editing an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// ValidationError is a user-correctable submit failure, surfaced inline in
// the editor form rather than as a toast.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// Draft is the mutable projection of a note's editable fields. It is a copy,
// never an alias: edits stay invisible to the collection until submit
// succeeds.
type Draft struct {
	Title    string
	Content  string
	Tags     []string
	Reminder time.Time // zero means no reminder
}

// Session is a single editing interaction over one draft.
type Session struct {
	id     int
	mode   Mode
	noteID string
	draft  Draft

	sched    *reminder.Scheduler
	baseline uint64
	closed   bool
}

var nextID int

// Open starts a session. In edit mode the draft fields are copied from src;
// a persisted future reminder is re-armed for the session's lifetime, which
// is why the returned command must be dispatched. In create mode the draft
// starts empty.
func Open(mode Mode, src *api.Note) (*Session, tea.Cmd) {
	return openWithClock(mode, src, time.Now)
}

func openWithClock(mode Mode, src *api.Note, now func() time.Time) (*Session, tea.Cmd) {
	nextID++
	s := &Session{
		id:    nextID,
		mode:  mode,
		sched: reminder.NewWithClock(now),
	}

	if mode == ModeEdit && src != nil {
		s.noteID = src.ID
		s.draft.Title = src.Title
		s.draft.Content = src.Content
		s.draft.Tags = append([]string(nil), src.Tags...)
		if src.ReminderTime != nil {
			s.draft.Reminder = *src.ReminderTime
		}
	}
	s.baseline = s.hash()

	// Re-arm the persisted reminder; a past time leaves the scheduler idle.
	var cmd tea.Cmd
	if !s.draft.Reminder.IsZero() {
		cmd = s.sched.Set(s.draft.Reminder)
	}
	return s, cmd
}

// ID identifies this session. Async results carry it so a response landing
// after the session closed is discarded instead of applied.
func (s *Session) ID() int { return s.id }

// Mode returns the session mode.
func (s *Session) Mode() Mode { return s.mode }

// NoteID returns the target note's ID in edit mode, empty in create mode.
func (s *Session) NoteID() string { return s.noteID }

// Draft returns a snapshot of the current draft.
func (s *Session) Draft() Draft {
	d := s.draft
	d.Tags = append([]string(nil), s.draft.Tags...)
	return d
}

// ReminderState exposes the scheduler state for display.
func (s *Session) ReminderState() reminder.State { return s.sched.State() }

// SetTitle updates the draft title.
func (s *Session) SetTitle(v string) { s.draft.Title = v }

// SetContent updates the draft content.
func (s *Session) SetContent(v string) { s.draft.Content = v }

// SetTags replaces the tag set from raw comma-separated input. Order is
// preserved, duplicates and empties are dropped.
func (s *Session) SetTags(raw string) {
	s.draft.Tags = ParseTags(raw)
}

// SetReminder updates the draft reminder time and drives the scheduler. The
// returned command is non-nil only when a fresh episode was armed.
func (s *Session) SetReminder(t time.Time) tea.Cmd {
	s.draft.Reminder = t
	return s.sched.Set(t)
}

// Resolve forwards a fired tick to the scheduler; true means the reminder for
// this session's current episode should notify now, exactly once.
func (s *Session) Resolve(msg reminder.FiredMsg) bool {
	if s.closed {
		return false
	}
	return s.sched.Resolve(msg)
}

// Validate checks submit preconditions. Title and content must be non-empty;
// failures are ValidationErrors and leave the draft untouched for correction.
func (s *Session) Validate() error {
	if strings.TrimSpace(s.draft.Title) == "" {
		return &ValidationError{Msg: "Please enter the title"}
	}
	if strings.TrimSpace(s.draft.Content) == "" {
		return &ValidationError{Msg: "Please enter the content"}
	}
	return nil
}

// Payload validates and builds the request body, sanitizing content on the
// way out. The draft itself keeps the unsanitized text so a failed submit
// retains what the user typed.
func (s *Session) Payload() (api.NotePayload, error) {
	if err := s.Validate(); err != nil {
		return api.NotePayload{}, err
	}

	p := api.NotePayload{
		Title:   s.draft.Title,
		Content: sanitize.Clean(s.draft.Content),
		Tags:    append([]string(nil), s.draft.Tags...),
	}
	if !s.draft.Reminder.IsZero() {
		t := s.draft.Reminder
		p.ReminderTime = &t
	}
	return p, nil
}

// Dirty reports whether the draft differs from what the session opened with.
func (s *Session) Dirty() bool {
	return s.hash() != s.baseline
}

// Close discards the draft and tears down the scheduler. A pending reminder
// is cancelled with no notification.
func (s *Session) Close() {
	s.closed = true
	s.sched.Close()
}

// Closed reports whether the session has been torn down.
func (s *Session) Closed() bool { return s.closed }

// hash fingerprints the editable fields for dirty detection.
func (s *Session) hash() uint64 {
	h := xxhash.New()
	h.WriteString(s.draft.Title)
	h.Write([]byte{0})
	h.WriteString(s.draft.Content)
	h.Write([]byte{0})
	for _, tag := range s.draft.Tags {
		h.WriteString(tag)
		h.Write([]byte{0})
	}
	if !s.draft.Reminder.IsZero() {
		h.WriteString(s.draft.Reminder.UTC().Format(time.RFC3339))
	}
	return h.Sum64()
}

// ParseTags splits raw comma-separated input into a clean tag list,
// preserving first-seen order and dropping duplicates.
func ParseTags(raw string) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "#"))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
