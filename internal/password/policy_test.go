package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyValidate(t *testing.T) {
	policy := NewPolicy()

	tests := []struct {
		name string
		pw   string
		want bool
	}{
		{"minimum length boundary", "Abcde1", true},
		{"maximum length boundary", "Aa111111111111aa", true},
		{"typical password", "Secret42", true},
		{"missing uppercase", "abcde1", false},
		{"missing lowercase", "ABCDE1", false},
		{"missing digit", "Abcdef", false},
		{"too short", "Ab1", false},
		{"too long", "Aa1" + strings.Repeat("x", 14), false},
		{"empty", "", false},
		{"symbols only count as filler", "Aa1!@#", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Validate(tt.pw))
		})
	}
}
