package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down   key.Binding
	SwitchPane key.Binding
	Select     key.Binding
	Toggle     key.Binding
	Add        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	NewList    key.Binding
	Rename     key.Binding
	Settings   key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	Yes, No    key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		SwitchPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "lists/items")),
		Select:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "done")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		NewList:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new list")),
		Rename:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Settings:   key.NewBinding(key.WithKeys("c", "s"), key.WithHelp("c", "settings")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Yes:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		No:         key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// bindings adapts a flat binding slice to help.KeyMap.
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding  { return b }
func (b bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

func (m appModel) helpKeys() bindings {
	k := m.keys
	switch m.mode {
	case modeAddItem, modeNewList:
		return bindings{k.Confirm, k.Cancel}
	case modeEditItem, modeRenameList:
		return bindings{k.Confirm, k.Cancel, key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "leave"))}
	case modeConfig:
		return bindings{
			key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "auto-dismiss")),
			key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete list")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		}
	case modeConfirmDelete:
		return bindings{k.Yes, k.No}
	}
	if m.pane == paneLists {
		return bindings{k.Up, k.Down, k.Select, k.NewList, k.Settings, k.SwitchPane, k.Quit}
	}
	return bindings{k.Up, k.Down, k.Toggle, k.Add, k.Edit, k.Delete, k.NewList, k.Rename, k.Settings, k.SwitchPane, k.Quit}
}
