package update

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Add           key.Binding
	FocusInput    key.Binding
	FocusList     key.Binding
	Up            key.Binding
	Down          key.Binding
	Toggle        key.Binding
	RemoveChecked key.Binding
	Reset         key.Binding
	Confirm       key.Binding
	Palette       key.Binding
	Help          key.Binding
	Quit          key.Binding
	ForceQuit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add:           key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add item")),
		FocusInput:    key.NewBinding(key.WithKeys("i", "a", "tab"), key.WithHelp("i/tab", "type a new item")),
		FocusList:     key.NewBinding(key.WithKeys("esc", "tab"), key.WithHelp("esc/tab", "back to the list")),
		Up:            key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "move up")),
		Down:          key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "move down")),
		Toggle:        key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "check/uncheck")),
		RemoveChecked: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "remove checked items")),
		Reset:         key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset the list")),
		Confirm:       key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
		Palette:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command palette")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:          key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Palette, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.FocusInput, k.FocusList},
		{k.Up, k.Down, k.Toggle},
		{k.RemoveChecked, k.Reset, k.Palette},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
