package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"rita@techu.edu", "a.b+c@example.co", "dev@campushire.app"}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{"", "plain", "missing@tld", "@nouser.com", "spaces in@example.com"}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{"+919876543210", "9876543210", "1234567"}
	for _, phone := range valid {
		assert.True(t, IsValidPhone(phone), phone)
	}

	invalid := []string{"", "123456", "+12345678901234567", "98-76-54", "phone"}
	for _, phone := range invalid {
		assert.False(t, IsValidPhone(phone), phone)
	}
}

func TestStringValidation(t *testing.T) {
	assert.False(t, NewStringValidation("").Validate())
	assert.True(t, NewStringValidation("").WithRequired(false).Validate())
	assert.True(t, NewStringValidation("ok").WithMinLength(2).WithMaxLength(5).Validate())
	assert.False(t, NewStringValidation("x").WithMinLength(2).Validate())
	assert.False(t, NewStringValidation("too long value").WithMaxLength(5).Validate())
	assert.True(t, NewStringValidation("9876543210").WithPattern(CompiledPatterns.Phone).Validate())
	assert.False(t, NewStringValidation("nope").WithPattern(CompiledPatterns.Phone).Validate())
}
