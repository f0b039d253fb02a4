package layout

import "testing"

func TestCalculatePaneHeight(t *testing.T) {
	cfg := DefaultConfig().Pane

	tests := []struct {
		name           string
		terminalHeight int
		want           int
	}{
		{"normal terminal", 24, 18},               // 24 - 6 = 18
		{"large terminal", 50, 44},                // 50 - 6 = 44
		{"small terminal enforces min", 8, 5},     // 8 - 6 = 2, min is 5
		{"exactly at reduction", 6, 5},            // 6 - 6 = 0, min is 5
		{"terminal smaller than reduction", 4, 5}, // negative clamps to min
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePaneHeight(tt.terminalHeight, cfg)
			if got != tt.want {
				t.Errorf("CalculatePaneHeight(%d) = %d, want %d",
					tt.terminalHeight, got, tt.want)
			}
		})
	}
}

func TestCalculateResultsWidth(t *testing.T) {
	cfg := DefaultConfig().Pane

	tests := []struct {
		name          string
		terminalWidth int
		want          int
	}{
		{"standard terminal", 120, 84}, // 120 - 28 - 8 = 84
		{"narrow terminal", 80, 44},    // 80 - 28 - 8 = 44
		{"tiny terminal clamps", 50, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateResultsWidth(tt.terminalWidth, cfg)
			if got != tt.want {
				t.Errorf("CalculateResultsWidth(%d) = %d, want %d",
					tt.terminalWidth, got, tt.want)
			}
		})
	}
}

func TestCalculateItemWidth(t *testing.T) {
	cfg := DefaultConfig().Pane

	tests := []struct {
		name      string
		paneWidth int
		want      int
	}{
		{"normal pane", 24, 20}, // 24 - 4 = 20
		{"wide pane", 40, 36},   // 40 - 4 = 36
		{"narrow pane", 15, 11}, // 15 - 4 = 11
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateItemWidth(tt.paneWidth, cfg)
			if got != tt.want {
				t.Errorf("CalculateItemWidth(%d) = %d, want %d",
					tt.paneWidth, got, tt.want)
			}
		})
	}
}

func TestCalculateVisibleHeight(t *testing.T) {
	tests := []struct {
		name        string
		paneHeight  int
		headerLines int
		want        int
	}{
		{"normal with header", 18, 4, 14},
		{"no header", 18, 0, 18},
		{"header equals height", 10, 10, 1}, // clamps to 1
		{"header exceeds height", 5, 10, 1}, // clamps to 1
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateVisibleHeight(tt.paneHeight, tt.headerLines)
			if got != tt.want {
				t.Errorf("CalculateVisibleHeight(%d, %d) = %d, want %d",
					tt.paneHeight, tt.headerLines, got, tt.want)
			}
		})
	}
}
