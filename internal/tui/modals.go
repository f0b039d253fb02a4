package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/mev/internal/auth"
)

// handleAuthKey handles keys while the auth modal is open.
func (a App) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m := a.auth.Machine

	switch {
	case key.Matches(msg, a.keys.Cancel):
		m.Close()
		a.mode = ModeBrowse
		return a, nil

	case key.Matches(msg, a.keys.NextField):
		a.auth.focusAt(a.auth.Focus + 1)
		return a, nil

	case key.Matches(msg, a.keys.PrevField):
		a.auth.focusAt(a.auth.Focus - 1)
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		return a.activateAuthTarget()

	case m.Mode() == auth.ModeAfterFindID && key.Matches(msg, a.keys.Yank):
		a.yank(m.FoundUsername())
		return a, nil
	}

	t := a.auth.current()
	if t.kind != targetField {
		return a, nil
	}

	var cmd tea.Cmd
	a.auth.Inputs[t.field], cmd = a.auth.Inputs[t.field].Update(msg)
	m.SetField(t.field, a.auth.Inputs[t.field].Value())
	return a, cmd
}

// activateAuthTarget follows the focused link, or submits the form. On
// confirmation screens it closes the modal.
func (a App) activateAuthTarget() (tea.Model, tea.Cmd) {
	m := a.auth.Machine
	t := a.auth.current()

	if t.kind == targetLink {
		if m.Follow(t.link) {
			a.log.Debug("auth modal link followed", "mode", m.Mode())
			a.auth.focusAt(0)
		}
		return a, nil
	}

	if m.Confirm() {
		a.mode = ModeBrowse
		return a, nil
	}

	sub, ok := m.Submit()
	if !ok {
		return a, nil
	}
	a.log.Info("auth submit", "mode", sub.Mode)
	return a, tea.Batch(a.execute(sub), a.spinner.Tick)
}

func (a App) execute(sub auth.Submission) tea.Cmd {
	b := a.backend
	return func() tea.Msg {
		return authResultMsg{result: auth.Execute(context.Background(), b, sub)}
	}
}

func (a App) handleAuthResult(r auth.Result) (tea.Model, tea.Cmd) {
	switch a.auth.Machine.Resolve(r) {
	case auth.OutcomeStale:
		a.log.Debug("dropping stale auth result", "mode", r.Mode)
	case auth.OutcomeClosed:
		a.log.Info("logged in")
		a.mode = ModeBrowse
		a.setMessage(MessageSuccess, "logged in")
	case auth.OutcomeAdvanced:
		a.auth.focusAt(0)
	case auth.OutcomeFailed:
		a.log.Warn("auth rejected", "mode", r.Mode, "err", r.Err)
	case auth.OutcomeIgnored:
		a.log.Error("auth call failed", "mode", r.Mode, "err", r.Err)
	}
	return a, nil
}

// handleProfileKey handles keys while the profile picture modal is open.
func (a App) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := &a.profile

	switch {
	case key.Matches(msg, a.keys.Cancel):
		p.Reset()
		p.PathInput.Blur()
		a.mode = ModeBrowse
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		path := strings.TrimSpace(p.PathInput.Value())
		p.Err = p.Editor.Load(expandHome(path))
		if p.Err != nil {
			a.log.Warn("picture rejected", "path", path, "err", p.Err)
		}
		return a, nil

	case key.Matches(msg, a.keys.Save):
		pic, err := p.Editor.Submit()
		if err != nil {
			p.Err = err
			return a, nil
		}
		// No backend endpoint accepts profile pictures; the choice stays local.
		a.log.Info("profile picture selected", "name", pic.Name, "mime", pic.MIME, "bytes", len(pic.Data))
		p.Reset()
		p.PathInput.Blur()
		a.mode = ModeBrowse
		a.setMessage(MessageSuccess, "profile picture set to "+pic.Name)
		return a, nil
	}

	var cmd tea.Cmd
	p.PathInput, cmd = p.PathInput.Update(msg)
	return a, cmd
}

// expandHome resolves a leading ~ to the home directory.
func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
