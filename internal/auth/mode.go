package auth

// Mode is the active screen of the auth modal.
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignUp
	ModeAfterSignUp
	ModeFindPW
	ModeAfterFindPW
	ModeFindID
	ModeAfterFindID
)

var modeNames = map[Mode]string{
	ModeLogin:       "login",
	ModeSignUp:      "sign-up",
	ModeAfterSignUp: "after-sign-up",
	ModeFindPW:      "find-password",
	ModeAfterFindPW: "after-find-password",
	ModeFindID:      "find-id",
	ModeAfterFindID: "after-find-id",
}

// String returns a stable name used in logs.
func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// Field is a form input.
type Field int

const (
	FieldUsername Field = iota
	FieldPassword
	FieldEmail       // local part
	FieldEmailDomain // part after @
)

// Label returns the input label.
func (f Field) Label() string {
	switch f {
	case FieldUsername:
		return "아이디"
	case FieldPassword:
		return "비밀번호"
	case FieldEmail:
		return "이메일"
	case FieldEmailDomain:
		return "도메인"
	}
	return ""
}

// Secret reports whether the input should be masked.
func (f Field) Secret() bool {
	return f == FieldPassword
}

// Action is the backend call issued by a submit.
type Action int

const (
	ActionNone Action = iota
	ActionLogin
	ActionSendVerificationEmail
	ActionIssueTemporaryPassword
	ActionRecoverUsername
)

// Link is a navigation link shown below a form.
type Link int

const (
	LinkLogin Link = iota
	LinkSignUp
	LinkFindID
	LinkFindPW
)

// Label returns the link text.
func (l Link) Label() string {
	switch l {
	case LinkLogin:
		return "로그인"
	case LinkSignUp:
		return "회원가입"
	case LinkFindID:
		return "아이디 찾기"
	case LinkFindPW:
		return "비밀번호 찾기"
	}
	return ""
}

// Screen describes what a mode shows and does.
type Screen struct {
	Header  string
	Button  string
	Body    string // fixed text of the confirmation screens
	Fields  []Field
	Links   []Link
	Action  Action
	Failure string // shown when the backend rejects the submit with 400
}

// Confirm reports whether the screen is a confirmation that only closes.
func (s Screen) Confirm() bool {
	return s.Action == ActionNone
}

var emailFields = []Field{FieldEmail, FieldEmailDomain}

var screens = map[Mode]Screen{
	ModeLogin: {
		Header:  "로그인",
		Button:  "로그인",
		Fields:  []Field{FieldUsername, FieldPassword},
		Links:   []Link{LinkSignUp, LinkFindID, LinkFindPW},
		Action:  ActionLogin,
		Failure: "아이디 또는 비밀번호가 일치하지 않습니다.",
	},
	ModeSignUp: {
		Header:  "회원가입",
		Button:  "이메일 인증",
		Fields:  emailFields,
		Links:   []Link{LinkLogin},
		Action:  ActionSendVerificationEmail,
		Failure: "이미 존재하는 이메일입니다.",
	},
	ModeAfterSignUp: {
		Header: "인증 링크가 전송되었습니다.",
		Button: "확인",
		Body:   "이메일을 통해 본인인증을 완료해 주시기 바랍니다.",
	},
	ModeFindPW: {
		Header:  "비밀번호 찾기",
		Button:  "비밀번호 찾기",
		Fields:  emailFields,
		Action:  ActionIssueTemporaryPassword,
		Failure: "존재하지 않는 이메일입니다.",
	},
	ModeAfterFindPW: {
		Header: "임시 비밀번호 발급",
		Button: "확인",
		Body:   "해당 이메일로 임시 비밀번호가 발급되었습니다.",
	},
	ModeFindID: {
		Header:  "아이디 찾기",
		Button:  "확인",
		Fields:  emailFields,
		Action:  ActionRecoverUsername,
		Failure: "존재하지 않는 이메일입니다.",
	},
	ModeAfterFindID: {
		Header: "아이디 찾기",
		Button: "확인",
		Body:   "아이디는 %s 입니다.",
	},
}

// ScreenFor returns the screen of m.
func ScreenFor(m Mode) Screen {
	return screens[m]
}

// links is the navigation part of the transition table.
var links = map[Mode]map[Link]Mode{
	ModeLogin: {
		LinkSignUp: ModeSignUp,
		LinkFindID: ModeFindID,
		LinkFindPW: ModeFindPW,
	},
	ModeSignUp: {
		LinkLogin: ModeLogin,
	},
}

// successors is the submit part of the transition table. ModeLogin is
// absent: a successful login closes the modal.
var successors = map[Mode]Mode{
	ModeSignUp: ModeAfterSignUp,
	ModeFindPW: ModeAfterFindPW,
	ModeFindID: ModeAfterFindID,
}
