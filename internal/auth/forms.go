package auth

import (
	"regexp"
	"strings"

	"github.com/gookit/validate"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type LoginForm struct {
	Email    string `json:"email" validate:"required|validEmail"`
	Password string `json:"password" validate:"required"`
}

func (f LoginForm) ValidEmail(val string) bool {
	return emailPattern.MatchString(val)
}

type RegisterForm struct {
	Email           string `json:"email" validate:"required|validEmail"`
	Password        string `json:"password" validate:"required|minLen:6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required|eqField:Password"`
}

func (f RegisterForm) ValidEmail(val string) bool {
	return emailPattern.MatchString(val)
}

// FormErrors maps a json field name to the message shown to the user.
type FormErrors map[string]string

type fieldRule struct {
	field     string
	validator string
	message   string
}

// Rules are listed in reporting priority; only the first failing rule of a
// field is reported.
var loginRules = []fieldRule{
	{"email", "required", "Informe seu e-mail."},
	{"email", "validEmail", "Digite um e-mail valido."},
	{"password", "required", "Informe sua senha."},
}

var registerRules = []fieldRule{
	{"email", "required", "Informe seu e-mail."},
	{"email", "validEmail", "Digite um e-mail valido."},
	{"password", "required", "Informe uma senha."},
	{"password", "minLen", "A senha deve ter no minimo 6 caracteres."},
	{"confirmPassword", "required", "Confirme sua senha."},
	{"confirmPassword", "eqField", "As senhas nao coincidem."},
}

// ValidateLogin trims the email in place and returns nil when the form is valid.
func ValidateLogin(f *LoginForm) FormErrors {
	f.Email = strings.TrimSpace(f.Email)
	return check(validate.Struct(f), loginRules)
}

// ValidateRegister trims the email in place and returns nil when the form is valid.
func ValidateRegister(f *RegisterForm) FormErrors {
	f.Email = strings.TrimSpace(f.Email)
	return check(validate.Struct(f), registerRules)
}

func check(v *validate.Validation, rules []fieldRule) FormErrors {
	v.StopOnError = false
	if v.Validate() {
		return nil
	}

	out := FormErrors{}
	for _, r := range rules {
		if _, done := out[r.field]; done {
			continue
		}
		if failed(v.Errors, r.field, r.validator) {
			out[r.field] = r.message
		}
	}
	if len(out) == 0 {
		// a validator outside the rule table failed
		out["form"] = v.Errors.One()
	}
	return out
}

// failed looks the field up by its json name and by its Go name.
func failed(errs validate.Errors, field, validator string) bool {
	for _, key := range []string{field, strings.ToUpper(field[:1]) + field[1:]} {
		if _, ok := errs.Field(key)[validator]; ok {
			return true
		}
	}
	return false
}
