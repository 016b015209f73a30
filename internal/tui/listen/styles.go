package listen

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette.
var Colors = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Error   lipgloss.Color
	Success lipgloss.Color
	Text    lipgloss.Color
}{
	Primary: lipgloss.Color("#6C5CE7"), // Purple
	Muted:   lipgloss.Color("#636E72"), // Gray
	Error:   lipgloss.Color("#D63031"), // Red
	Success: lipgloss.Color("#00B894"), // Green
	Text:    lipgloss.Color("#DFE6E9"), // Light gray
}

// Styles contains the lipgloss styles for the listening view.
type Styles struct {
	App     lipgloss.Style
	Header  lipgloss.Style
	Spinner lipgloss.Style
	Interim lipgloss.Style
	Heard   lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
	Help    lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		App:     lipgloss.NewStyle().Padding(1, 2),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary),
		Spinner: lipgloss.NewStyle().Foreground(Colors.Primary),
		Interim: lipgloss.NewStyle().Italic(true).Foreground(Colors.Muted),
		Heard:   lipgloss.NewStyle().Foreground(Colors.Text),
		Success: lipgloss.NewStyle().Bold(true).Foreground(Colors.Success),
		Failure: lipgloss.NewStyle().Bold(true).Foreground(Colors.Error),
		Help:    lipgloss.NewStyle().Foreground(Colors.Muted),
	}
}
