package layout

import "testing"

func TestCalculateModalWidth(t *testing.T) {
	cfg := DefaultConfig().Modal

	tests := []struct {
		name          string
		terminalWidth int
		percent       int
		contentWidth  int
		want          int
	}{
		{"small share clamps to min", 120, 40, 0, 50}, // 48 -> 50
		{"within bounds", 160, 40, 0, 64},
		{"large terminal clamps to max", 200, 40, 0, 72}, // 80 -> 72
		{"narrow terminal keeps margin", 50, 40, 0, 46},  // 50 - 4 = 46
		{"tiny terminal clamps to 1", 3, 40, 0, 1},
		{"content fits", 120, 40, 43, 50},
		{"content widens", 120, 40, 60, 64},
		{"content capped at max", 200, 40, 90, 72},
		{"content capped at terminal", 60, 40, 60, 56},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateModalWidth(tt.terminalWidth, tt.percent, tt.contentWidth, cfg)
			if got != tt.want {
				t.Errorf("CalculateModalWidth(%d, %d, %d) = %d, want %d",
					tt.terminalWidth, tt.percent, tt.contentWidth, got, tt.want)
			}
		})
	}
}

func TestInputRowWidth(t *testing.T) {
	tests := []struct {
		name   string
		widths []int
		want   int
	}{
		{"no inputs", nil, 0},
		{"single input", []int{40}, 43},        // 40 + 3
		{"email and domain", []int{14, 14}, 37}, // 17 + 3 + 17
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InputRowWidth(" @ ", tt.widths...)
			if got != tt.want {
				t.Errorf("InputRowWidth(%v) = %d, want %d", tt.widths, got, tt.want)
			}
		})
	}
}

func TestCalculateVisibleListItems(t *testing.T) {
	tests := []struct {
		name        string
		maxVisible  int
		selectedIdx int
		totalItems  int
		wantStart   int
		wantEnd     int
	}{
		{"at start", 5, 0, 10, 0, 5},
		{"near start", 5, 2, 10, 0, 5},
		{"in middle", 5, 7, 10, 3, 8},
		{"at end", 5, 9, 10, 5, 10},
		{"fewer than max", 5, 2, 3, 0, 3},
		{"exact max items", 5, 2, 5, 0, 5},
		{"selected beyond max", 8, 10, 15, 3, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := CalculateVisibleListItems(tt.maxVisible, tt.selectedIdx, tt.totalItems)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("CalculateVisibleListItems(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.maxVisible, tt.selectedIdx, tt.totalItems,
					start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
