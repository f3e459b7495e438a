package validation

import (
	"fmt"
	"regexp"
	"strings"
)

type Check string

const (
	CheckEmpty    Check = "empty"
	CheckUsername Check = "username"
	CheckEmail    Check = "email"
	CheckPassword Check = "password"
)

// Field - проверяемое значение вместе со списком видов проверок
type Field struct {
	Value  string
	Checks []Check
}

var (
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

	passwordUpper   = regexp.MustCompile(`[A-Z]`)
	passwordLower   = regexp.MustCompile(`[a-z]`)
	passwordDigit   = regexp.MustCompile(`\d`)
	passwordSpecial = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// Validate прогоняет поля по их проверкам и возвращает ошибки по именам полей.
// Пустая карта означает успех. Для каждого поля фиксируется не больше одной
// ошибки: пустое значение перекрывает остальные проверки.
func Validate(fields map[string]Field) map[string]string {
	errors := make(map[string]string)

	for name, field := range fields {
		if field.has(CheckEmpty) && strings.TrimSpace(field.Value) == "" {
			errors[name] = fmt.Sprintf("%s is empty", name)
			continue
		}

		switch {
		case field.has(CheckUsername):
			if !usernameRegex.MatchString(field.Value) {
				errors[name] = "Username must be alphanumeric (including underscores), 3 to 30 characters long."
			}
		case field.has(CheckEmail):
			if !emailRegex.MatchString(field.Value) {
				errors[name] = "Invalid email format"
			}
		case field.has(CheckPassword):
			if msg := checkPassword(field.Value); msg != "" {
				errors[name] = msg
			}
		case field.has(CheckEmpty):
			// только проверка на пустоту, значение непустое
		default:
			errors[name] = fmt.Sprintf("unknown validation type: %v", field.Checks)
		}
	}

	return errors
}

func (f Field) has(check Check) bool {
	for _, c := range f.Checks {
		if c == check {
			return true
		}
	}
	return false
}

func checkPassword(value string) string {
	switch {
	case len(value) < 8:
		return "Password must be at least 8 characters long."
	case !passwordUpper.MatchString(value):
		return "Password must contain at least one uppercase letter."
	case !passwordLower.MatchString(value):
		return "Password must contain at least one lowercase letter."
	case !passwordDigit.MatchString(value):
		return "Password must contain at least one digit."
	case !passwordSpecial.MatchString(value):
		return `Password must contain at least one special character (!@#$%^&*(),.?":{}|<>).`
	}
	return ""
}
