package layout

// CalculatePaneHeight computes the content height for panes.
// Returns at least MinHeight.
func CalculatePaneHeight(terminalHeight int, cfg PaneConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateResultsWidth computes the width of the results pane, which takes
// whatever the facet pane leaves.
func CalculateResultsWidth(terminalWidth int, cfg PaneConfig) int {
	width := terminalWidth - cfg.FacetWidth - cfg.WidthOffset
	if width < cfg.MinResultsWidth {
		return cfg.MinResultsWidth
	}
	return width
}

// CalculateItemWidth computes the width available for item content.
func CalculateItemWidth(paneWidth int, cfg PaneConfig) int {
	return paneWidth - cfg.ContentPadding
}

// CalculateVisibleHeight computes the visible item count in a pane.
func CalculateVisibleHeight(paneHeight, headerLines int) int {
	height := paneHeight - headerLines
	if height < 1 {
		return 1
	}
	return height
}
