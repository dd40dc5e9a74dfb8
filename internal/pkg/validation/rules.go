package validation

import (
	"regexp"
	"strings"
)

// Validation rule parameters
var (
	// Password min length
	PasswordMinLength = 8

	// Display name min/max length
	DisplayNameMinLength = 2
	DisplayNameMaxLength = 50

	// Username pattern - letters, digits, dots, dashes, underscores
	UsernamePattern = `^[a-zA-Z0-9._\-]{2,30}$`

	numericOnlyPattern = regexp.MustCompile(`^\d+$`)
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Username *regexp.Regexp
}{
	Username: regexp.MustCompile(UsernamePattern),
}

// commonPasswords holds passwords rejected outright. A short list is enough
// to catch the worst offenders; the length and numeric rules cover the rest.
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwerty123":   {},
	"qwertyuiop":  {},
	"letmein123":  {},
	"iloveyou1":   {},
	"admin123":    {},
	"welcome1":    {},
	"sunshine1":   {},
	"football1":   {},
	"changeme1":   {},
}

// ValidatePassword checks a candidate password against the password policy:
// minimum length, not a known common password, not entirely numeric, and not
// too similar to any of the user's own attributes (username, display name).
// It returns one message per violated rule; an empty slice means the
// password is acceptable.
func ValidatePassword(password string, userInputs ...string) []string {
	var messages []string

	if len(password) < PasswordMinLength {
		messages = append(messages, "password must be at least 8 characters long")
	}

	if _, found := commonPasswords[strings.ToLower(password)]; found {
		messages = append(messages, "password is too common")
	}

	if numericOnlyPattern.MatchString(password) {
		messages = append(messages, "password cannot be entirely numeric")
	}

	lowered := strings.ToLower(password)
	for _, input := range userInputs {
		input = strings.ToLower(strings.TrimSpace(input))
		if len(input) < 3 {
			continue
		}
		if strings.Contains(lowered, input) || strings.Contains(input, lowered) {
			messages = append(messages, "password is too similar to your other information")
			break
		}
	}

	return messages
}

// StringValidation validates a string value against length and pattern rules
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Required && v.Value == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && v.Value == "" {
		return true
	}

	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}
