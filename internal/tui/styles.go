package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App            lipgloss.Style
	Pane           lipgloss.Style
	PaneActive     lipgloss.Style
	Title          lipgloss.Style
	Header         lipgloss.Style
	Badge          lipgloss.Style
	Item           lipgloss.Style
	ItemSelected   lipgloss.Style
	Restaurant     lipgloss.Style
	FacetLabel     lipgloss.Style
	OptionSelected lipgloss.Style
	Empty          lipgloss.Style
	Modal          lipgloss.Style
	FieldError     lipgloss.Style
	Link           lipgloss.Style
	LinkActive     lipgloss.Style
	Button         lipgloss.Style
	ButtonActive   lipgloss.Style
	HintKey        lipgloss.Style // Key portion of hints (e.g., "Enter", "j/k")
	HintDesc       lipgloss.Style // Description portion of hints (e.g., "confirm", "move")
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders
	danger := lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		PaneActive: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Header: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		Badge: lipgloss.NewStyle().
			Foreground(accent),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		Restaurant: lipgloss.NewStyle().
			Foreground(subtle),

		FacetLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),

		OptionSelected: lipgloss.NewStyle().
			Foreground(accent).
			PaddingLeft(1),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(1, 2),

		FieldError: lipgloss.NewStyle().
			Foreground(danger),

		Link: lipgloss.NewStyle().
			Foreground(subtle).
			Underline(true),

		LinkActive: lipgloss.NewStyle().
			Foreground(accent).
			Underline(true),

		Button: lipgloss.NewStyle().
			Foreground(primary).
			Padding(0, 2).
			Border(lipgloss.NormalBorder()).
			BorderForeground(border),

		ButtonActive: lipgloss.NewStyle().
			Foreground(accent).
			Padding(0, 2).
			Border(lipgloss.NormalBorder()).
			BorderForeground(accent),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),
	}
}
