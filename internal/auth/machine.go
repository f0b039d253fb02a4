package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/nikbrunner/mev/internal/model"
)

// Backend performs the auth calls of the modal.
type Backend interface {
	Login(ctx context.Context, req model.LoginRequest) error
	SendVerificationEmail(ctx context.Context, email string) error
	FindPassword(ctx context.Context, email string) error
	FindID(ctx context.Context, email string) (string, error)
}

// Submission is a validated submit waiting to be executed.
type Submission struct {
	Gen    uint64
	Mode   Mode
	Action Action
	Login  model.LoginRequest
	Email  string
}

// Result is the backend outcome of a Submission.
type Result struct {
	Gen      uint64
	Mode     Mode
	Username string // recovered username, ActionRecoverUsername only
	Err      error
}

// Outcome tells the caller what Resolve did.
type Outcome int

const (
	OutcomeStale    Outcome = iota // result from a closed or changed modal, dropped
	OutcomeClosed                  // success that closes the modal
	OutcomeAdvanced                // success that moved to a confirmation screen
	OutcomeFailed                  // rejected, error message set
	OutcomeIgnored                 // unclassified error, nothing shown
)

// Execute runs s against b. It blocks; callers run it off the UI loop.
func Execute(ctx context.Context, b Backend, s Submission) Result {
	res := Result{Gen: s.Gen, Mode: s.Mode}
	switch s.Action {
	case ActionLogin:
		res.Err = b.Login(ctx, s.Login)
	case ActionSendVerificationEmail:
		res.Err = b.SendVerificationEmail(ctx, s.Email)
	case ActionIssueTemporaryPassword:
		res.Err = b.FindPassword(ctx, s.Email)
	case ActionRecoverUsername:
		res.Username, res.Err = b.FindID(ctx, s.Email)
	default:
		res.Err = fmt.Errorf("mode %s has no backend action", s.Mode)
	}
	return res
}

// Machine is the auth modal state machine. It is not safe for concurrent
// use; all calls come from the UI loop.
type Machine struct {
	open      bool
	mode      Mode
	form      Form
	fieldErrs map[Field]string
	apiErr    string
	pending   bool
	found     string
	gen       uint64 // bumped whenever a pending result must no longer apply

	validate *validator.Validate
}

// NewMachine creates a closed machine in ModeLogin.
func NewMachine() *Machine {
	return &Machine{
		mode:     ModeLogin,
		validate: validator.New(),
	}
}

// IsOpen reports whether the modal is shown.
func (m *Machine) IsOpen() bool { return m.open }

// Mode returns the active mode.
func (m *Machine) Mode() Mode { return m.mode }

// Screen returns the screen of the active mode.
func (m *Machine) Screen() Screen { return ScreenFor(m.mode) }

// Form returns a copy of the inputs.
func (m *Machine) Form() Form { return m.form }

// Pending reports whether a submit is in flight.
func (m *Machine) Pending() bool { return m.pending }

// Error returns the backend error message, if any.
func (m *Machine) Error() string { return m.apiErr }

// FieldError returns the validation message of f, if any.
func (m *Machine) FieldError(f Field) string { return m.fieldErrs[f] }

// FoundUsername returns the username recovered in ModeAfterFindID.
func (m *Machine) FoundUsername() string { return m.found }

// Body returns the text of a confirmation screen.
func (m *Machine) Body() string {
	s := m.Screen()
	if m.mode == ModeAfterFindID {
		return fmt.Sprintf(s.Body, m.found)
	}
	return s.Body
}

// Open shows the modal in ModeLogin with an empty form.
func (m *Machine) Open() {
	m.reset()
	m.open = true
}

// Close hides the modal and clears all state.
func (m *Machine) Close() {
	m.reset()
	m.open = false
}

func (m *Machine) reset() {
	m.mode = ModeLogin
	m.form = Form{}
	m.fieldErrs = nil
	m.apiErr = ""
	m.pending = false
	m.found = ""
	m.gen++
}

// SetField updates an input and clears its validation message.
func (m *Machine) SetField(f Field, v string) {
	m.form.Set(f, v)
	delete(m.fieldErrs, f)
}

// Follow activates a navigation link. It returns false when the active mode
// has no such link.
func (m *Machine) Follow(l Link) bool {
	if !m.open {
		return false
	}
	to, ok := links[m.mode][l]
	if !ok {
		return false
	}
	m.transition(to)
	return true
}

func (m *Machine) transition(to Mode) {
	m.mode = to
	m.apiErr = ""
	m.fieldErrs = nil
	m.pending = false
	m.gen++
}

// Confirm handles the button of a confirmation screen by closing the modal.
// It returns false on form screens.
func (m *Machine) Confirm() bool {
	if !m.open || !m.Screen().Confirm() {
		return false
	}
	m.Close()
	return true
}

// Submit validates the active form. On success it marks the machine pending
// and returns the call to execute. It returns false while a call is in
// flight, on confirmation screens, and when validation fails.
func (m *Machine) Submit() (Submission, bool) {
	s := m.Screen()
	if !m.open || m.pending || s.Confirm() {
		return Submission{}, false
	}

	if errs := m.form.validate(m.validate, s.Fields); errs != nil {
		m.fieldErrs = errs
		return Submission{}, false
	}
	m.fieldErrs = nil
	m.pending = true

	sub := Submission{Gen: m.gen, Mode: m.mode, Action: s.Action}
	if s.Action == ActionLogin {
		sub.Login = model.LoginRequest{UserName: m.form.Username, Password: m.form.Password}
	} else {
		sub.Email = m.form.Address()
	}
	return sub, true
}

// Resolve applies a Result. Results from an earlier generation are dropped.
func (m *Machine) Resolve(r Result) Outcome {
	if !m.open || r.Gen != m.gen || r.Mode != m.mode {
		return OutcomeStale
	}
	m.pending = false

	if r.Err != nil {
		if StatusOf(r.Err) == http.StatusBadRequest {
			m.apiErr = m.Screen().Failure
			return OutcomeFailed
		}
		return OutcomeIgnored
	}

	next, ok := successors[m.mode]
	if !ok {
		m.Close()
		return OutcomeClosed
	}
	if next == ModeAfterFindID {
		m.found = r.Username
	}
	m.transition(next)
	return OutcomeAdvanced
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return 0
}
