package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move a:apply"
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "Enter confirm  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint
	Edit   []Hint
	Action []Hint
	System []Hint
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeBrowse:
		if a.focus == PaneFacets {
			return a.getFacetHints()
		}
		return a.getResultHints()
	case ModeKeyword:
		return HintSet{
			Action: []Hint{{Key: "Enter", Desc: "search"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	default:
		return HintSet{}
	}
}

func (a App) getResultHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
			{Key: "tab", Desc: "filters"},
			{Key: "[/]", Desc: "history"},
		},
		Action: []Hint{
			{Key: "/", Desc: "keyword"},
			{Key: "y", Desc: "yank"},
		},
		System: []Hint{
			{Key: "L", Desc: "login"},
			{Key: "P", Desc: "picture"},
			{Key: "q", Desc: "quit"},
		},
	}
}

func (a App) getFacetHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
			{Key: "tab", Desc: "results"},
		},
		Edit: []Hint{
			{Key: "space", Desc: "toggle"},
			{Key: "a", Desc: "apply"},
			{Key: "r", Desc: "reset"},
		},
		System: []Hint{
			{Key: "q", Desc: "quit"},
		},
	}
}

// authHints returns the hints shown inside the auth modal.
func (a App) authHints() []Hint {
	if a.auth.Machine.Screen().Confirm() {
		hints := []Hint{{Key: "Enter", Desc: "close"}}
		if a.auth.Machine.FoundUsername() != "" {
			hints = append(hints, Hint{Key: "y", Desc: "copy"})
		}
		return hints
	}
	return []Hint{
		{Key: "Tab", Desc: "next"},
		{Key: "Enter", Desc: "submit"},
		{Key: "Esc", Desc: "close"},
	}
}

// profileHints returns the hints shown inside the profile modal.
func (a App) profileHints() []Hint {
	return []Hint{
		{Key: "Enter", Desc: "load"},
		{Key: "ctrl+s", Desc: "save"},
		{Key: "Esc", Desc: "cancel"},
	}
}
