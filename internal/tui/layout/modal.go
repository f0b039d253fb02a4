package layout

// InputFrame is what a text input draws besides its width: the "> " prompt
// and the cursor cell.
const InputFrame = 3

// CalculateModalWidth computes the modal width: widthPercent of the terminal,
// at least MinWidth and wide enough for contentWidth plus the modal padding.
// The result never exceeds MaxWidth and keeps a margin of 2 on each side of
// the terminal.
func CalculateModalWidth(terminalWidth, widthPercent, contentWidth int, cfg ModalConfig) int {
	width := max(terminalWidth*widthPercent/100, cfg.MinWidth)
	if contentWidth > 0 {
		width = max(width, contentWidth+cfg.Padding)
	}
	width = min(width, cfg.MaxWidth, terminalWidth-4)
	return max(width, 1)
}

// InputRowWidth returns the width of text inputs of the given widths laid out
// on one line, separated by sep.
func InputRowWidth(sep string, widths ...int) int {
	if len(widths) == 0 {
		return 0
	}
	total := DisplayWidth(sep) * (len(widths) - 1)
	for _, w := range widths {
		total += w + InputFrame
	}
	return total
}

// CalculateVisibleListItems computes the start and end indices for a scrollable list.
// Returns (start, end) where items[start:end] should be displayed.
func CalculateVisibleListItems(maxVisible, selectedIdx, totalItems int) (start, end int) {
	if totalItems <= maxVisible {
		return 0, totalItems
	}

	if selectedIdx >= maxVisible {
		start = selectedIdx - maxVisible + 1
	}

	end = start + maxVisible
	if end > totalItems {
		end = totalItems
	}

	return start, end
}
