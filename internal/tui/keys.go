package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the global bindings. Task actions are handled by the task
// list itself and only appear here for the help view.
type KeyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	// Jump selects a tab directly, indexed like tabTitles.
	Jump    [tabCount]key.Binding
	Quit    key.Binding
	Help    key.Binding
	Refresh key.Binding

	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	km := KeyMap{
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Refresh: key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "reload")),

		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "new task")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "mark done")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove task")),
	}
	for i, title := range tabTitles {
		n := string(rune('1' + i))
		km.Jump[i] = key.NewBinding(key.WithKeys(n), key.WithHelp(n, title))
	}
	return km
}
