package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func dishes() []Entry {
	return []Entry{
		{Title: "김치찌개", Detail: "한옥집"},
		{Title: "된장찌개", Detail: "한옥집"},
		{Title: "마르게리타", Detail: "Napoli"},
	}
}

func send(p Picker, msgs ...tea.KeyMsg) (Picker, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var m tea.Model
		m, cmd = p.Update(msg)
		p = m.(Picker)
	}
	return p, cmd
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPicker_InitialState(t *testing.T) {
	p := New("Menus", dishes())

	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
	if len(p.matches) != 3 {
		t.Errorf("expected all 3 entries to match, got %d", len(p.matches))
	}
	if _, ok := p.Selected(); ok {
		t.Error("expected no selection before Enter")
	}
}

func TestPicker_NavigateBounds(t *testing.T) {
	p := New("Menus", dishes())

	p, _ = send(p, tea.KeyMsg{Type: tea.KeyUp})
	if p.cursor != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", p.cursor)
	}

	p, _ = send(p, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyCtrlN}, tea.KeyMsg{Type: tea.KeyDown})
	if p.cursor != 2 {
		t.Errorf("expected cursor to stop at 2, got %d", p.cursor)
	}

	p, _ = send(p, tea.KeyMsg{Type: tea.KeyCtrlP})
	if p.cursor != 1 {
		t.Errorf("expected cursor at 1, got %d", p.cursor)
	}
}

func TestPicker_SelectEntry(t *testing.T) {
	p := New("Menus", dishes())

	p, cmd := send(p, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	idx, ok := p.Selected()
	if !ok || idx != 1 {
		t.Errorf("Selected() = (%d, %v), want (1, true)", idx, ok)
	}
	if cmd == nil {
		t.Error("expected quit command after selection")
	}
}

func TestPicker_FilterMapsToOriginalIndex(t *testing.T) {
	p := New("Menus", dishes())

	p, _ = send(p, typed("마르"))
	if len(p.matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(p.matches))
	}

	p, _ = send(p, tea.KeyMsg{Type: tea.KeyEnter})
	idx, ok := p.Selected()
	if !ok || idx != 2 {
		t.Errorf("Selected() = (%d, %v), want (2, true)", idx, ok)
	}
}

func TestPicker_FilterMatchesDetail(t *testing.T) {
	p := New("Menus", dishes())

	p, _ = send(p, typed("Napoli"))
	if len(p.matches) != 1 || p.matches[0] != 2 {
		t.Errorf("expected only entry 2 to match, got %v", p.matches)
	}
}

func TestPicker_FilterResetsCursor(t *testing.T) {
	p := New("Menus", dishes())

	p, _ = send(p, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, typed("찌개"))
	if p.cursor != 0 {
		t.Errorf("expected cursor back at 0, got %d", p.cursor)
	}
	if len(p.matches) != 2 {
		t.Errorf("expected 2 matches, got %d", len(p.matches))
	}
}

func TestPicker_EnterWithoutMatchKeepsOpen(t *testing.T) {
	p := New("Menus", dishes())

	p, cmd := send(p, typed("zzz"), tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command when nothing matches")
	}
	if p.Cancelled() {
		t.Error("expected picker to stay open")
	}
	if _, ok := p.Selected(); ok {
		t.Error("expected no selection")
	}
}

func TestPicker_Cancel(t *testing.T) {
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		p, cmd := send(New("Menus", dishes()), k)

		if !p.Cancelled() {
			t.Errorf("expected cancelled after %s", k)
		}
		if _, ok := p.Selected(); ok {
			t.Errorf("expected no selection after %s", k)
		}
		if cmd == nil {
			t.Errorf("expected quit command after %s", k)
		}
	}
}

func TestPicker_View(t *testing.T) {
	view := New("Menus", dishes()).View()

	for _, want := range []string{"Menus (3/3)", "> ", "김치찌개", "한옥집", "enter choose"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	p, _ := send(New("Menus", dishes()), typed("zzz"))
	if view := p.View(); !strings.Contains(view, "no match") {
		t.Errorf("view missing empty state:\n%s", view)
	}
}
