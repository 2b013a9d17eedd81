package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonJui02/wordle-automated-deployment/internal/input"
)

// keyMap holds the non-letter bindings. Letters are matched directly.
type keyMap struct {
	Enter   key.Binding
	Delete  key.Binding
	NewGame key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Delete:  key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("⌫", "delete")),
		NewGame: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new game")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Enter, k.Delete},
		{k.NewGame, k.Help, k.Quit},
	}
}

// action translates a key press into a game action (KindNone when unmapped).
func (k keyMap) action(msg tea.KeyMsg) input.Action {
	switch {
	case key.Matches(msg, k.Enter):
		return input.Enter
	case key.Matches(msg, k.Delete):
		return input.Delete
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && !msg.Alt {
		r := msg.Runes[0]
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return input.Letter(r)
		}
	}
	return input.Action{}
}
