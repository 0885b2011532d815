package api

import "time"

// Note is the client-side copy of a server-owned note. ID and CreatedOn are
// assigned by the backend and never change after creation.
type Note struct {
	ID           string     `json:"_id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Tags         []string   `json:"tags"`
	IsFavorite   bool       `json:"isFavorite"`
	CreatedOn    time.Time  `json:"createdOn"`
	ReminderTime *time.Time `json:"reminderTime,omitempty"`
}

// ReminderPassed reports whether the note carries a reminder whose time has
// already elapsed. Passed reminders are display-only and never re-fire.
func (n Note) ReminderPassed(now time.Time) bool {
	return n.ReminderTime != nil && n.ReminderTime.Before(now)
}

// User is the authenticated account profile.
type User struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// NotePayload is the request body for creating or editing a note.
type NotePayload struct {
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Tags         []string   `json:"tags"`
	ReminderTime *time.Time `json:"reminderTime,omitempty"`
}

// NoteFields is a partial update body, used for the favorite toggle.
type NoteFields map[string]any
