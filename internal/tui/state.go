package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/mev/internal/auth"
	"github.com/nikbrunner/mev/internal/profile"
	"github.com/nikbrunner/mev/internal/tui/layout"
)

// Mode is the input mode of the App.
type Mode int

const (
	ModeBrowse  Mode = iota // panes have the keyboard
	ModeKeyword             // keyword input in the header
	ModeAuth                // auth modal
	ModeProfile             // profile picture modal
)

// Pane identifies the focused pane in ModeBrowse.
type Pane int

const (
	PaneResults Pane = iota
	PaneFacets
)

// MessageType classifies the message line.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// newInput creates a text input with a static cursor.
func newInput(placeholder string, limit, width int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.Width = width
	input.Cursor.SetMode(cursor.CursorStatic)
	return input
}

type targetKind int

const (
	targetField targetKind = iota
	targetButton
	targetLink
)

// authTarget is a focusable element of the auth modal.
type authTarget struct {
	kind  targetKind
	field auth.Field
	link  auth.Link
}

// AuthState holds the auth modal: the mode machine and one input per field.
type AuthState struct {
	Machine *auth.Machine
	Inputs  [auth.FieldEmailDomain + 1]textinput.Model
	Focus   int // index into targets()
}

// NewAuthState creates a closed auth modal.
func NewAuthState(cfg layout.LayoutConfig) AuthState {
	s := AuthState{Machine: auth.NewMachine()}

	s.Inputs[auth.FieldUsername] = newInput("아이디", cfg.Input.FieldCharLimit, cfg.Input.StandardWidth)
	s.Inputs[auth.FieldEmail] = newInput("이메일", cfg.Input.FieldCharLimit, cfg.Input.DomainWidth)
	s.Inputs[auth.FieldEmailDomain] = newInput("example.com", cfg.Input.FieldCharLimit, cfg.Input.DomainWidth)

	password := newInput("비밀번호", cfg.Input.FieldCharLimit, cfg.Input.StandardWidth)
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	s.Inputs[auth.FieldPassword] = password

	return s
}

// Reset clears every input and focuses the first element.
func (s *AuthState) Reset() {
	for i := range s.Inputs {
		s.Inputs[i].Reset()
	}
	s.focusAt(0)
}

// targets lists the focusable elements of the active screen: its fields,
// the button, then its links.
func (s AuthState) targets() []authTarget {
	screen := s.Machine.Screen()
	out := make([]authTarget, 0, len(screen.Fields)+1+len(screen.Links))
	for _, f := range screen.Fields {
		out = append(out, authTarget{kind: targetField, field: f})
	}
	out = append(out, authTarget{kind: targetButton})
	for _, l := range screen.Links {
		out = append(out, authTarget{kind: targetLink, link: l})
	}
	return out
}

// current returns the focused element.
func (s AuthState) current() authTarget {
	targets := s.targets()
	if s.Focus < 0 || s.Focus >= len(targets) {
		return targets[0]
	}
	return targets[s.Focus]
}

// focusAt moves focus to element i, wrapping around.
func (s *AuthState) focusAt(i int) {
	n := len(s.targets())
	s.Focus = ((i % n) + n) % n

	for f := range s.Inputs {
		s.Inputs[f].Blur()
	}
	if t := s.current(); t.kind == targetField {
		s.Inputs[t.field].Focus()
	}
}

// ProfileState holds the profile picture modal.
type ProfileState struct {
	Editor    *profile.Editor
	PathInput textinput.Model
	Err       error
}

// NewProfileState creates the modal with an editor that accepts pictures up
// to limit bytes.
func NewProfileState(limit int64, cfg layout.LayoutConfig) ProfileState {
	return ProfileState{
		Editor:    profile.NewEditor(limit),
		PathInput: newInput("~/Pictures/me.png", cfg.Input.PathCharLimit, cfg.Input.StandardWidth),
	}
}

// Reset discards the selected picture and clears the input.
func (p *ProfileState) Reset() {
	p.Editor.Reset()
	p.PathInput.Reset()
	p.Err = nil
}
