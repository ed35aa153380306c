package password

import "unicode"

const (
	minLength = 6
	maxLength = 16
)

// Policy validates password strength.
type Policy struct{}

// NewPolicy creates a new password policy.
func NewPolicy() *Policy {
	return &Policy{}
}

// Validate reports whether pw is 6-16 runes long and contains at least
// one uppercase letter, one lowercase letter, and one digit.
func (p *Policy) Validate(pw string) bool {
	runes := []rune(pw)
	if len(runes) < minLength || len(runes) > maxLength {
		return false
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}
