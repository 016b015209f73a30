package listen

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the listening view.
type KeyMap struct {
	Stop key.Binding // Stop listening; the view closes once the session ends
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Stop: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "stop"),
		),
	}
}
