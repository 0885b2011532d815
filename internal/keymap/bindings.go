// Package keymap defines the key bindings for each view context.
package keymap

import "github.com/charmbracelet/bubbles/key"

// ListKeys are the bindings for the note list.
type ListKeys struct {
	Up             key.Binding
	Down           key.Binding
	Open           key.Binding
	New            key.Binding
	Edit           key.Binding
	Delete         key.Binding
	ToggleFavorite key.Binding
	FilterFavs     key.Binding
	Search         key.Binding
	Refresh        key.Binding
	Theme          key.Binding
	Logout         key.Binding
	Quit           key.Binding
}

// EditorKeys are the bindings active inside the add/edit modal.
type EditorKeys struct {
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Cancel    key.Binding
}

// DetailKeys are the bindings active inside the detail modal.
type DetailKeys struct {
	Edit  key.Binding
	Copy  key.Binding
	Close key.Binding
}

// DefaultListKeys returns the list bindings.
func DefaultListKeys() ListKeys {
	return ListKeys{
		Up:             key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:           key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Open:           key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		New:            key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new note")),
		Edit:           key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:         key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		ToggleFavorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		FilterFavs:     key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "favorites only")),
		Search:         key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Refresh:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Theme:          key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Logout:         key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// DefaultEditorKeys returns the editor bindings.
func DefaultEditorKeys() EditorKeys {
	return EditorKeys{
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// DefaultDetailKeys returns the detail bindings.
func DefaultDetailKeys() DetailKeys {
	return DetailKeys{
		Edit:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Copy:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy content")),
		Close: key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "close")),
	}
}
