package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/calvinalkan/projects/internal/config"
)

// keyMap holds the bindings for each mode.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Quit    key.Binding
	Submit  key.Binding
	Leave   key.Binding
	Remove  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func newKeyMap(k config.Keys) keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp(k.Up+"/↑", "up")),
		Down:    key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp(k.Down+"/↓", "down")),
		Add:     key.NewBinding(key.WithKeys(k.Add), key.WithHelp(k.Add, "add")),
		Edit:    key.NewBinding(key.WithKeys(k.Edit, "enter"), key.WithHelp(k.Edit, "edit")),
		Delete:  key.NewBinding(key.WithKeys(k.Delete), key.WithHelp(k.Delete, "delete")),
		Quit:    key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(k.Quit, "quit")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Leave:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Remove:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
		Confirm: key.NewBinding(key.WithKeys(k.Confirm), key.WithHelp(k.Confirm, "delete")),
		Cancel:  key.NewBinding(key.WithKeys(k.Cancel, "esc"), key.WithHelp(k.Cancel, "keep")),
	}
}

// bindings is the help.KeyMap for one mode.
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding { return b }

func (b bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

func (m keyMap) list() bindings {
	return bindings{m.Up, m.Down, m.Add, m.Edit, m.Delete, m.Quit}
}

func (m keyMap) draft() bindings {
	return bindings{m.Submit, m.Leave}
}

func (m keyMap) edit() bindings {
	return bindings{m.Submit, m.Remove}
}

func (m keyMap) modal() bindings {
	return bindings{m.Confirm, m.Cancel}
}
