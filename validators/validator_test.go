package validators

import (
	"testing"

	"gotest.tools/assert"
)

func TestEmailRegex(t *testing.T) {
	valid := []string{
		"ada@example.com",
		"ada.lovelace@mail.example.org",
		"ada-b@example.io",
	}
	for _, email := range valid {
		assert.Assert(t, EmailRegex.MatchString(email), "expected %q to be valid", email)
	}

	invalid := []string{
		"",
		"not-an-email",
		"@example.com",
		"ada@",
		"ada@example",
	}
	for _, email := range invalid {
		assert.Assert(t, !EmailRegex.MatchString(email), "expected %q to be invalid", email)
	}
}

func TestValidPassword(t *testing.T) {
	valid := []string{"Passw0rd", "aB3deF", "Str0ngSecretValue20x"}
	for _, password := range valid {
		assert.Assert(t, ValidPassword(password), "expected %q to be valid", password)
	}

	invalid := []string{
		"aB3de",                  // too short
		"password",               // no digit, no uppercase
		"PASSWORD1",              // no lowercase
		"passw0rd",               // no uppercase
		"Ab1Ab1Ab1Ab1Ab1Ab1Ab1x", // too long
	}
	for _, password := range invalid {
		assert.Assert(t, !ValidPassword(password), "expected %q to be invalid", password)
	}
}

func TestCustomValidator(t *testing.T) {
	type payload struct {
		Name string `validate:"required"`
	}

	cv := NewValidator()
	assert.NilError(t, cv.Validate(&payload{Name: "ok"}))
	assert.Assert(t, cv.Validate(&payload{}) != nil)
}
