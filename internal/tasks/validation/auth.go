package validation

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/aussiebroadwan/tasktrack/internal/tasks/domain"
)

const (
	MinPasswordLength = 8

	MsgInvalidEmail    = "Invalid email address. Email must have at least an '@' and '.'"
	MsgInvalidPassword = "Invalid password. Password must have a minimum of 8 characters, at least 1 letter and 1 number"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Credential reads a login or register member as text. Absent, null, false,
// zero and "" all read as empty. Other non-string values read as their JSON
// text, so a number is checked like any other malformed email.
func Credential(raw json.RawMessage) string {
	if s, ok := asString(raw); ok {
		return s
	}
	switch v := strings.TrimSpace(string(raw)); v {
	case "", "null", "false", "0":
		return ""
	default:
		return v
	}
}

// EmailAndPassword checks registration input. Passwords are letters and
// digits only; punctuation is rejected.
func EmailAndPassword(email, password string) error {
	if email == "" || password == "" {
		return domain.InvalidInput(domain.MsgRequiredMissing)
	}
	if !emailPattern.MatchString(email) {
		return domain.InvalidInput(MsgInvalidEmail)
	}
	if !validPassword(password) {
		return domain.InvalidInput(MsgInvalidPassword)
	}
	return nil
}

func validPassword(p string) bool {
	if len(p) < MinPasswordLength {
		return false
	}

	var letter, digit bool
	for i := 0; i < len(p); i++ {
		switch c := p[i]; {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			letter = true
		case c >= '0' && c <= '9':
			digit = true
		default:
			return false
		}
	}
	return letter && digit
}

// NormalizeEmail trims and lower-cases an email so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
