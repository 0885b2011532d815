// Package store holds the client-side note collection and its derived
// visible set. The store is pure state: network calls and the
// reconcile-by-refetch policy live in the app's commands, which feed their
// results back in here.
package store

import (
	"github.com/marcus/mynotes/internal/api"
)

// EmptyKind distinguishes why the visible set is empty, so the UI can tell
// "no search match" apart from a genuinely empty collection.
type EmptyKind int

const (
	NotEmpty EmptyKind = iota
	NoNotes
	NoMatch
	NoFavorites
)

// Store is the single writer of the canonical note list. The search result
// set is kept separately so the canonical list survives clearSearch, and the
// favorite filter only affects derivation, never stored state.
type Store struct {
	notes   []api.Note
	results []api.Note
	query   string
	inSearch bool
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// SetAll replaces the canonical collection with the server's current list and
// clears any prior search state, keeping the rendered set consistent with the
// search flag after a reconciliation re-fetch.
func (s *Store) SetAll(notes []api.Note) {
	s.notes = notes
	s.ClearSearch()
}

// SetSearch enters search mode with the given results. The canonical
// collection is untouched.
func (s *Store) SetSearch(query string, results []api.Note) {
	s.query = query
	s.results = results
	s.inSearch = true
}

// ClearSearch exits search mode. Calling it when not searching is a no-op.
func (s *Store) ClearSearch() {
	s.query = ""
	s.results = nil
	s.inSearch = false
}

// InSearch reports whether a search overlay is active.
func (s *Store) InSearch() bool { return s.inSearch }

// Query returns the active search query, empty when not searching.
func (s *Store) Query() string { return s.query }

// Len returns the size of the canonical collection.
func (s *Store) Len() int { return len(s.notes) }

// Note returns the canonical note with the given ID, if present.
func (s *Store) Note(id string) (api.Note, bool) {
	for _, n := range s.notes {
		if n.ID == id {
			return n, true
		}
	}
	return api.Note{}, false
}

// VisibleNotes derives the sequence of notes to render. Pure: same inputs,
// same output. In search mode the search results are the base set, otherwise
// the canonical collection; the favorite filter keeps the backend's order.
func (s *Store) VisibleNotes(favoriteOnly bool) []api.Note {
	base := s.notes
	if s.inSearch {
		base = s.results
	}
	if !favoriteOnly {
		out := make([]api.Note, len(base))
		copy(out, base)
		return out
	}

	out := make([]api.Note, 0, len(base))
	for _, n := range base {
		if n.IsFavorite {
			out = append(out, n)
		}
	}
	return out
}

// Emptiness classifies an empty visible set for the given filter state.
func (s *Store) Emptiness(favoriteOnly bool) EmptyKind {
	if len(s.VisibleNotes(favoriteOnly)) > 0 {
		return NotEmpty
	}
	if s.inSearch {
		return NoMatch
	}
	if len(s.notes) == 0 {
		return NoNotes
	}
	return NoFavorites
}
