package drill

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Submit key.Binding
	Pick   key.Binding
	Next   key.Binding
	Skip   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "answer"),
		),
		Pick: key.NewBinding(
			key.WithKeys("a", "b", "c", "d", "1", "2", "3", "4"),
			key.WithHelp("a-d", "pick"),
		),
		Next: key.NewBinding(
			key.WithKeys("enter", "space", "n"),
			key.WithHelp("enter", "next"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s", "tab"),
			key.WithHelp("s", "skip"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// pickIndex maps a pick key to a choice index.
func pickIndex(k string) int {
	switch k {
	case "a", "1":
		return 0
	case "b", "2":
		return 1
	case "c", "3":
		return 2
	case "d", "4":
		return 3
	}
	return -1
}
