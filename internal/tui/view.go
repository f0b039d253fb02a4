package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/mev/internal/auth"
	"github.com/nikbrunner/mev/internal/model"
	"github.com/nikbrunner/mev/internal/search"
	"github.com/nikbrunner/mev/internal/tui/layout"
)

// emailSeparator joins the email and domain inputs.
const emailSeparator = " @ "

// renderView creates the two-pane search view, or a modal on top of it.
func (a App) renderView() string {
	switch a.mode {
	case ModeAuth:
		return a.placeModal(a.renderAuthModal())
	case ModeProfile:
		return a.placeModal(a.renderProfileModal())
	}

	cfg := a.layoutConfig.Pane
	paneHeight := layout.CalculatePaneHeight(a.height, cfg)
	resultsWidth := layout.CalculateResultsWidth(a.width, cfg)

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.renderFacetPane(cfg.FacetWidth, paneHeight),
		a.renderResultsPane(resultsWidth, paneHeight),
	)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			a.renderHeader(),
			columns,
			a.renderMessageLine(),
			a.renderHints(a.getContextualHints()),
		),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the app name, the location and the keyword input.
func (a App) renderHeader() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("mev"))
	b.WriteString("  ")

	if a.mode == ModeKeyword {
		b.WriteString("/ " + a.keywordInput.View())
		return a.styles.Header.Render(b.String())
	}

	keyword := a.sync.Keyword()
	if keyword == "" {
		keyword = "(all)"
	}
	b.WriteString("keyword: " + keyword)
	b.WriteString("  " + a.styles.Badge.Render("["+a.sync.Mode().String()+"]"))
	b.WriteString(fmt.Sprintf("  %d/%d", a.router.Index()+1, a.router.Len()))
	return a.styles.Header.Render(b.String())
}

// renderFacetPane renders the facet options with their draft selection.
func (a App) renderFacetPane(width, height int) string {
	var content strings.Builder

	title := "Filters"
	if a.sync.Dirty() {
		title += " *"
	}
	content.WriteString(a.styles.Title.Render(title) + "\n\n")

	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	var lines []string
	selectedLine := 0
	for i, row := range a.rows {
		if row.First() {
			lines = append(lines, a.styles.FacetLabel.Render(row.Facet.Label))
		}

		mark := "[ ]"
		if a.sync.Selected(row.Facet.Key, row.Option.ID) {
			mark = "[x]"
		}
		text, _ := layout.TruncateText(mark+" "+row.Option.Label, itemWidth, a.layoutConfig.Text)

		switch {
		case i == a.facetIdx && a.focus == PaneFacets && a.mode == ModeBrowse:
			text = a.styles.ItemSelected.Render(layout.PadRight(text, itemWidth))
			selectedLine = len(lines)
		case mark == "[x]":
			text = a.styles.OptionSelected.Render(text)
		default:
			text = a.styles.Item.Render(text)
		}
		lines = append(lines, text)
	}

	visible := layout.CalculateVisibleHeight(height, resultsHeaderLines)
	start, end := layout.CalculateVisibleListItems(visible, selectedLine, len(lines))
	content.WriteString(strings.Join(lines[start:end], "\n"))

	style := a.styles.Pane
	if a.focus == PaneFacets && a.mode == ModeBrowse {
		style = a.styles.PaneActive
	}
	return style.Width(width).Height(height).Render(content.String())
}

// renderResultsPane renders the visible window of the loaded results.
func (a App) renderResultsPane(width, height int) string {
	var content strings.Builder

	items := a.feed.Items()
	title := fmt.Sprintf("Results (%d)", len(items))
	if a.feed.Done() {
		title += " · end"
	}
	content.WriteString(a.styles.Title.Render(title) + "\n\n")

	switch {
	case !a.feed.Loaded() && a.feed.Loading():
		content.WriteString(a.styles.Empty.Render("loading..."))
	case a.feed.Loaded() && len(items) == 0:
		content.WriteString(a.styles.Empty.Render("no results"))
	default:
		itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
		start, end := layout.CalculateVisibleListItems(a.visibleResults(), a.cursor, len(items))
		lines := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			lines = append(lines, a.renderResult(items[i], i == a.cursor && a.focus == PaneResults, itemWidth))
		}
		content.WriteString(strings.Join(lines, "\n"))
	}

	style := a.styles.Pane
	if a.focus == PaneResults && a.mode == ModeBrowse {
		style = a.styles.PaneActive
	}
	return style.Width(width).Height(height).Render(content.String())
}

// renderResult renders one result as "menu · restaurant  facets".
func (a App) renderResult(item model.MenuItem, selected bool, maxWidth int) string {
	text := item.MenuName + " · " + item.RestaurantName
	if facets := describeFacets(item); facets != "" {
		text += "  " + facets
	}
	text, _ = layout.TruncateText(text, maxWidth, a.layoutConfig.Text)

	if selected {
		return a.styles.ItemSelected.Render(layout.PadRight(text, maxWidth))
	}
	return a.styles.Item.Render(text)
}

// renderMessageLine renders the spinner while busy, otherwise the styled
// message with a prefix icon based on its type.
func (a App) renderMessageLine() string {
	if a.feed.Loading() {
		return a.spinner.View() + " " + a.styles.Empty.Render(a.loadingText())
	}
	if a.messageText == "" {
		return ""
	}

	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
	}

	return msgStyle.Render(prefix + a.messageText)
}

func (a App) loadingText() string {
	if a.feed.Mode() == search.ModeFilter {
		return "filtering..."
	}
	return "searching..."
}

// placeModal centers a modal in the terminal.
func (a App) placeModal(modal string) string {
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}

// modalWidth sizes a modal around content of the given width.
func (a App) modalWidth(contentWidth int) int {
	return layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, contentWidth, a.layoutConfig.Modal)
}

// authContentWidth is the widest input row of screen. The email and domain
// inputs share a row.
func (a App) authContentWidth(screen auth.Screen) int {
	in := a.layoutConfig.Input
	width := 0
	for _, f := range screen.Fields {
		switch f {
		case auth.FieldEmail:
			width = max(width, layout.InputRowWidth(emailSeparator, in.DomainWidth, in.DomainWidth))
		case auth.FieldEmailDomain: // counted with FieldEmail
		default:
			width = max(width, layout.InputRowWidth(emailSeparator, in.StandardWidth))
		}
	}
	return width
}

// renderAuthModal renders the active screen of the auth modal.
func (a App) renderAuthModal() string {
	m := a.auth.Machine
	screen := m.Screen()
	focused := a.auth.current()

	var content strings.Builder
	content.WriteString(a.styles.Title.Render(screen.Header) + "\n\n")

	if screen.Confirm() {
		content.WriteString(m.Body() + "\n\n")
	}

	for i := 0; i < len(screen.Fields); i++ {
		f := screen.Fields[i]
		content.WriteString(f.Label() + "\n")

		if f == auth.FieldEmail && i+1 < len(screen.Fields) && screen.Fields[i+1] == auth.FieldEmailDomain {
			content.WriteString(a.auth.Inputs[f].View() + emailSeparator + a.auth.Inputs[auth.FieldEmailDomain].View() + "\n")
			content.WriteString(a.renderFieldErrors(f, auth.FieldEmailDomain))
			i++
			continue
		}

		content.WriteString(a.auth.Inputs[f].View() + "\n")
		content.WriteString(a.renderFieldErrors(f))
	}

	if msg := m.Error(); msg != "" {
		content.WriteString(a.styles.FieldError.Render(msg) + "\n")
	}

	label := screen.Button
	if m.Pending() {
		label = a.spinner.View() + " " + label
	}
	button := a.styles.Button
	if focused.kind == targetButton {
		button = a.styles.ButtonActive
	}
	content.WriteString(button.Render(label) + "\n")

	if len(screen.Links) > 0 {
		links := make([]string, len(screen.Links))
		for i, l := range screen.Links {
			style := a.styles.Link
			if focused.kind == targetLink && focused.link == l {
				style = a.styles.LinkActive
			}
			links[i] = style.Render(l.Label())
		}
		content.WriteString(strings.Join(links, "  ") + "\n")
	}

	if a.messageText != "" {
		content.WriteString("\n" + a.renderMessageLine())
	}
	content.WriteString("\n" + a.renderHintsInline(a.authHints()))

	return a.styles.Modal.Width(a.modalWidth(a.authContentWidth(screen))).Render(content.String())
}

func (a App) renderFieldErrors(fields ...auth.Field) string {
	var b strings.Builder
	for _, f := range fields {
		if msg := a.auth.Machine.FieldError(f); msg != "" {
			b.WriteString(a.styles.FieldError.Render(msg) + "\n")
		}
	}
	return b.String()
}

// renderProfileModal renders the picture picker with the preview of the
// loaded file.
func (a App) renderProfileModal() string {
	p := a.profile

	var content strings.Builder
	content.WriteString(a.styles.Title.Render("Profile picture") + "\n\n")
	content.WriteString("Image file:\n")
	content.WriteString(p.PathInput.View() + "\n\n")

	in := a.layoutConfig.Input
	modalWidth := a.modalWidth(layout.InputRowWidth("", in.StandardWidth))
	width := modalWidth - a.layoutConfig.Modal.Padding
	if pic, ok := p.Editor.Picture(); ok {
		content.WriteString(fmt.Sprintf("%s (%s, %d bytes)\n", pic.Name, pic.MIME, len(pic.Data)))
		preview, _ := layout.TruncateText(p.Editor.Preview(), width, a.layoutConfig.Text)
		content.WriteString(a.styles.Empty.Render(preview) + "\n")
	} else {
		content.WriteString(a.styles.Empty.Render("no picture selected") + "\n")
	}

	if p.Err != nil {
		content.WriteString(a.styles.FieldError.Render(p.Err.Error()) + "\n")
	}

	content.WriteString("\n" + a.renderHintsInline(a.profileHints()))
	return a.styles.Modal.Width(modalWidth).Render(content.String())
}
