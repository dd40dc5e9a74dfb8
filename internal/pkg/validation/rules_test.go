package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		userInputs []string
		wantErrors int
	}{
		{
			name:       "valid password",
			password:   "correct-horse-battery",
			wantErrors: 0,
		},
		{
			name:       "too short",
			password:   "abc12",
			wantErrors: 1,
		},
		{
			name:       "common password",
			password:   "password123",
			wantErrors: 1,
		},
		{
			name:       "entirely numeric",
			password:   "4815162342",
			wantErrors: 1,
		},
		{
			name:       "short and numeric",
			password:   "1234",
			wantErrors: 2,
		},
		{
			name:       "contains username",
			password:   "xx-aylin-xx",
			userInputs: []string{"aylin"},
			wantErrors: 1,
		},
		{
			name:       "password contained in display name",
			password:   "mehmetoz",
			userInputs: []string{"deniz", "mehmetozdemir"},
			wantErrors: 1,
		},
		{
			name:       "similarity check is case-insensitive",
			password:   "MyDisplayName99",
			userInputs: []string{"mydisplayname"},
			wantErrors: 1,
		},
		{
			name:       "short user inputs ignored",
			password:   "ab-included-ok",
			userInputs: []string{"ab"},
			wantErrors: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages := ValidatePassword(tt.password, tt.userInputs...)
			assert.Len(t, messages, tt.wantErrors)
		})
	}
}

func TestStringValidation(t *testing.T) {
	assert.True(t, NewStringValidation("hello").WithMinLength(2).WithMaxLength(10).Validate())
	assert.False(t, NewStringValidation("h").WithMinLength(2).Validate())
	assert.False(t, NewStringValidation("").Validate(), "required by default")
	assert.True(t, NewStringValidation("").WithRequired(false).Validate())
	assert.False(t, NewStringValidation("way too long for the limit").WithMaxLength(5).Validate())
}

func TestUsernamePattern(t *testing.T) {
	valid := []string{"ayse", "m.ozdemir", "user_42", "a-b"}
	invalid := []string{"", "a", "has space", "emoji🦊", "über"}

	for _, u := range valid {
		assert.True(t, CompiledPatterns.Username.MatchString(u), u)
	}
	for _, u := range invalid {
		assert.False(t, CompiledPatterns.Username.MatchString(u), u)
	}
}
