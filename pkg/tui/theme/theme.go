package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/termenv"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Dark   bool
	Header HeaderTheme
	Input  InputTheme
	List   ListTheme
	Footer FooterTheme
}

// HeaderTheme styles the screen title.
type HeaderTheme struct {
	Title lipgloss.Style
	Count lipgloss.Style
}

// InputTheme styles the text input row and its add button.
type InputTheme struct {
	Frame         lipgloss.Style
	FrameFocused  lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
}

// ListTheme styles task rows.
type ListTheme struct {
	Item     lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Cursor   lipgloss.Style
	Empty    lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Prompt lipgloss.Style
}

// Detect picks a palette for the terminal background.
func Detect() Theme {
	return Default(termenv.HasDarkBackground())
}

// Default returns the built-in theme for a dark or light background.
func Default(dark bool) Theme {
	accent, muted, faint, text := "212", "244", "240", "252"
	if !dark {
		accent, muted, faint, text = "127", "241", "248", "235"
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(faint)).
		Padding(0, 1)
	button := lipgloss.NewStyle().
		Padding(0, 2).
		MarginLeft(1).
		Foreground(lipgloss.Color(text)).
		Background(lipgloss.Color(faint))

	return Theme{
		Dark: dark,
		Header: HeaderTheme{
			Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent)),
			Count: lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
		},
		Input: InputTheme{
			Frame:         frame,
			FrameFocused:  frame.BorderForeground(lipgloss.Color(accent)),
			Button:        button,
			ButtonFocused: button.Background(lipgloss.Color(accent)).Bold(true),
		},
		List: ListTheme{
			Item:     lipgloss.NewStyle().Foreground(lipgloss.Color(text)),
			Selected: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
			Done:     lipgloss.NewStyle().Foreground(lipgloss.Color(muted)).Strikethrough(true),
			Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color(accent)),
			Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color(muted)).Italic(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
		},
	}
}
