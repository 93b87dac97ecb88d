package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap is shown by the help bar and matched in Update.
type keyMap struct {
	Squash  key.Binding
	Finish  key.Binding
	History key.Binding
	New     key.Binding
	Copy    key.Binding
	Quit    key.Binding

	// History panel
	Up      key.Binding
	Down    key.Binding
	Load    key.Binding
	Delete  key.Binding
	Clear   key.Binding
	NewHist key.Binding
	Back    key.Binding
	Confirm key.Binding
	Cancel  key.Binding

	// Summary modal
	Continue key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Squash:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("click/ctrl+x", "squash")),
		Finish:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "finish")),
		History: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "history")),
		New:     key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new")),
		Copy:    key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),

		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Load:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "load")),
		Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Clear:   key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
		NewHist: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new session")),
		Back:    key.NewBinding(key.WithKeys("esc", "ctrl+o"), key.WithHelp("esc", "back")),
		Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "cancel")),

		Continue: key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "new session")),
	}
}

// helpKeys adapts a binding list to help.KeyMap.
type helpKeys []key.Binding

func (h helpKeys) ShortHelp() []key.Binding  { return h }
func (h helpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

func (k keyMap) writing() helpKeys {
	return helpKeys{k.Squash, k.Finish, k.History, k.New, k.Copy, k.Quit}
}

func (k keyMap) history() helpKeys {
	return helpKeys{k.Up, k.Down, k.Load, k.Delete, k.Clear, k.NewHist, k.Back}
}

func (k keyMap) confirm() helpKeys {
	return helpKeys{k.Confirm, k.Cancel}
}

func (k keyMap) summary() helpKeys {
	return helpKeys{k.Continue, k.Quit}
}
