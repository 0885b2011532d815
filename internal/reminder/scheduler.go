// Package reminder schedules the one-shot notification tied to an open editor
// session. At most one timer episode is live per scheduler at any instant.
package reminder

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// State is the scheduler's lifecycle position for the current reminder time.
type State int

const (
	// Idle means no reminder is pending: none set, cleared, or already passed.
	Idle State = iota
	// Armed means a timer is pending for FireAt.
	Armed
	// Fired means the armed episode delivered its notification. A new future
	// time re-enters Armed.
	Fired
)

// String returns the display name for the state.
func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case Fired:
		return "fired"
	default:
		return "idle"
	}
}

// FiredMsg is delivered by the tick command when an armed episode elapses.
// Gen identifies the arm it belongs to; Resolve rejects stale generations, so
// a tick that outlives a reschedule or teardown is discarded.
type FiredMsg struct {
	Gen uint64
	At  time.Time
}

// Scheduler is the per-session reminder state machine. tea.Tick commands
// cannot be cancelled once issued, so every arm carries a generation number
// and cancellation is a generation bump: the late tick arrives, fails the
// generation check in Resolve, and is dropped.
type Scheduler struct {
	state  State
	fireAt time.Time
	gen    uint64
	now    func() time.Time
}

// New creates an idle scheduler.
func New() *Scheduler {
	return &Scheduler{now: time.Now}
}

// NewWithClock creates a scheduler with an injected clock, for tests.
func NewWithClock(now func() time.Time) *Scheduler {
	return &Scheduler{now: now}
}

// State returns the current state.
func (s *Scheduler) State() State { return s.state }

// FireAt returns the scheduled time of the armed episode, zero otherwise.
func (s *Scheduler) FireAt() time.Time { return s.fireAt }

// Set transitions the machine for a new reminder time. The previous episode,
// if any, is always invalidated first; a future t arms a fresh one and
// returns the tick command to schedule it. A zero or past t disarms silently:
// already-passed reminders are policy, not errors.
func (s *Scheduler) Set(t time.Time) tea.Cmd {
	s.gen++
	if t.IsZero() || !t.After(s.now()) {
		s.state = Idle
		s.fireAt = time.Time{}
		return nil
	}

	s.state = Armed
	s.fireAt = t
	gen := s.gen
	return tea.Tick(t.Sub(s.now()), func(now time.Time) tea.Msg {
		return FiredMsg{Gen: gen, At: now}
	})
}

// Resolve reports whether msg belongs to the live armed episode, moving it to
// Fired on the first (and only) accepted delivery.
func (s *Scheduler) Resolve(msg FiredMsg) bool {
	if s.state != Armed || msg.Gen != s.gen {
		return false
	}
	s.state = Fired
	return true
}

// Close tears the scheduler down. A pending episode is invalidated with no
// notification: no reminder fires for a closed or unsaved draft.
func (s *Scheduler) Close() {
	s.gen++
	s.state = Idle
	s.fireAt = time.Time{}
}
