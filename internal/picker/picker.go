// Package picker lets the user choose one entry from a short list, narrowing
// it by typing.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/mev/internal/tui/layout"
)

var (
	accent = lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	subtle = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}

	titleStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	chosenStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	detailStyle = lipgloss.NewStyle().Foreground(subtle)
	hintStyle   = lipgloss.NewStyle().Foreground(subtle).MarginTop(1)
)

// Entry is one choice of the picker.
type Entry struct {
	Title  string
	Detail string // shown dimmed after the title, also matched
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "ctrl+p", "ctrl+k")),
	Down:   key.NewBinding(key.WithKeys("down", "ctrl+n", "ctrl+j")),
	Choose: key.NewBinding(key.WithKeys("enter")),
	Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c")),
}

// entrySource adapts entries to fuzzy.Source.
type entrySource []Entry

func (s entrySource) String(i int) string { return s[i].Title + " " + s[i].Detail }
func (s entrySource) Len() int            { return len(s) }

// Picker is a bubbletea model over a fixed list of entries. Typing filters
// the list; Enter chooses the highlighted match.
type Picker struct {
	title   string
	entries []Entry
	filter  textinput.Model
	matches []int // indexes into entries, best match first
	cursor  int   // index into matches

	selected  bool
	cancelled bool
	height    int
}

// New creates a Picker over entries.
func New(title string, entries []Entry) Picker {
	in := textinput.New()
	in.Placeholder = "type to filter"
	in.Prompt = "/ "
	in.Cursor.SetMode(cursor.CursorStatic)
	in.Focus()

	p := Picker{
		title:   title,
		entries: entries,
		filter:  in,
		height:  24,
	}
	p.refilter()
	return p
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Cancel):
			p.cancelled = true
			return p, tea.Quit

		case key.Matches(msg, keys.Choose):
			if len(p.matches) == 0 {
				return p, nil
			}
			p.selected = true
			return p, tea.Quit

		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.matches)-1 {
				p.cursor++
			}
			return p, nil

		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		}
	}

	before := p.filter.Value()
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	if p.filter.Value() != before {
		p.refilter()
	}
	return p, cmd
}

// refilter recomputes the matches for the current filter text and puts the
// cursor on the best one.
func (p *Picker) refilter() {
	p.cursor = 0
	pattern := strings.TrimSpace(p.filter.Value())

	if pattern == "" {
		p.matches = make([]int, len(p.entries))
		for i := range p.entries {
			p.matches[i] = i
		}
		return
	}

	found := fuzzy.FindFrom(pattern, entrySource(p.entries))
	p.matches = make([]int, len(found))
	for i, m := range found {
		p.matches[i] = m.Index
	}
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d/%d)", p.title, len(p.matches), len(p.entries))))
	b.WriteString("\n")
	b.WriteString(p.filter.View())
	b.WriteString("\n\n")

	if len(p.matches) == 0 {
		b.WriteString(detailStyle.Render("  no match"))
		b.WriteString("\n")
	}

	// title, filter, spacer and hint lines
	visible := max(p.height-6, 1)
	start, end := layout.CalculateVisibleListItems(visible, p.cursor, len(p.matches))
	for i := start; i < end; i++ {
		e := p.entries[p.matches[i]]
		line := e.Title
		if i == p.cursor {
			line = "> " + chosenStyle.Render(line)
		} else {
			line = "  " + line
		}
		if e.Detail != "" {
			line += "  " + detailStyle.Render(e.Detail)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(hintStyle.Render("↑/↓ move  enter choose  esc cancel"))
	return b.String()
}

// Selected returns the index in the original entries of the chosen entry.
// It returns false when the picker was cancelled or is still open.
func (p Picker) Selected() (int, bool) {
	if p.cancelled || !p.selected || p.cursor >= len(p.matches) {
		return 0, false
	}
	return p.matches[p.cursor], true
}

// Cancelled reports whether the user left without choosing.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
