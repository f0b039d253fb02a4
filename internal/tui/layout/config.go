package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane  PaneConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + header (1) + pane borders (2) + status (1) + help bar (1) = 6
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// FacetWidth is the fixed width of the facet pane.
	FacetWidth int

	// WidthOffset is subtracted from the terminal width before sizing the
	// results pane. Accounts for the borders of both panes and the app
	// padding.
	WidthOffset int

	// MinResultsWidth is the minimum width of the results pane.
	MinResultsWidth int

	// ContentPadding is subtracted from pane width for item rendering.
	ContentPadding int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// Padding is the horizontal padding of the modal style, both sides.
	Padding int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	KeywordCharLimit int
	FieldCharLimit   int
	PathCharLimit    int

	StandardWidth int
	DomainWidth   int // email domain input next to the local part
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction: 6,
			MinHeight:       5,
			FacetWidth:      28,
			WidthOffset:     8,
			MinResultsWidth: 30,
			ContentPadding:  4,
		},
		Modal: ModalConfig{
			DefaultWidthPercent: 40,
			MinWidth:            50,
			MaxWidth:            72,
			Padding:             4,
		},
		Input: InputConfig{
			KeywordCharLimit: 100,
			FieldCharLimit:   100,
			PathCharLimit:    500,
			StandardWidth:    40,
			DomainWidth:      14,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
