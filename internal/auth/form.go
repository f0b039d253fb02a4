package auth

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/publicsuffix"
)

const (
	msgRequired      = "필수 입력 항목입니다."
	msgInvalidEmail  = "올바른 이메일 형식이 아닙니다."
	msgInvalidDomain = "올바른 도메인이 아닙니다."
)

// Form holds the modal inputs. Every mode shares one form; a mode only
// reads and validates its own fields.
type Form struct {
	Username    string
	Password    string
	Email       string
	EmailDomain string
}

// Get returns the value of f.
func (fm Form) Get(f Field) string {
	switch f {
	case FieldUsername:
		return fm.Username
	case FieldPassword:
		return fm.Password
	case FieldEmail:
		return fm.Email
	case FieldEmailDomain:
		return fm.EmailDomain
	}
	return ""
}

// Set stores v in f.
func (fm *Form) Set(f Field, v string) {
	switch f {
	case FieldUsername:
		fm.Username = v
	case FieldPassword:
		fm.Password = v
	case FieldEmail:
		fm.Email = v
	case FieldEmailDomain:
		fm.EmailDomain = v
	}
}

// Address joins the split email inputs.
func (fm Form) Address() string {
	return strings.TrimSpace(fm.Email) + "@" + strings.TrimSpace(fm.EmailDomain)
}

// validate checks the fields of one screen and returns a message per
// invalid field, or nil.
func (fm Form) validate(v *validator.Validate, fields []Field) map[Field]string {
	errs := make(map[Field]string)
	email := false

	for _, f := range fields {
		if err := v.Var(strings.TrimSpace(fm.Get(f)), "required"); err != nil {
			errs[f] = msgRequired
		}
		if f == FieldEmail {
			email = true
		}
	}

	if email && len(errs) == 0 {
		domain := strings.ToLower(strings.TrimSpace(fm.EmailDomain))
		if _, err := publicsuffix.EffectiveTLDPlusOne(domain); err != nil {
			errs[FieldEmailDomain] = msgInvalidDomain
		} else if err := v.Var(fm.Address(), "email"); err != nil {
			errs[FieldEmail] = msgInvalidEmail
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
