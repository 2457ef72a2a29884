package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		email     string
		password  string
		ip        string
		wantBad   []string
	}{
		{"all valid", "alice_1", "alice@example.com", "Sunny_Day1", "127.0.0.1", nil},
		{"valid ipv6", "alice_1", "alice@example.com", "Sunny_Day1", "::1", nil},
		{"short username", "al", "alice@example.com", "Sunny_Day1", "127.0.0.1", []string{FieldUsername}},
		{"username with spaces", "al ice", "alice@example.com", "Sunny_Day1", "127.0.0.1", []string{FieldUsername}},
		{"bad email", "alice_1", "not-an-email", "Sunny_Day1", "127.0.0.1", []string{FieldEmail}},
		{"weak password", "alice_1", "alice@example.com", "password", "127.0.0.1", []string{FieldPassword}},
		{"short password", "alice_1", "alice@example.com", "Aa1_", "127.0.0.1", []string{FieldPassword}},
		{"password with space", "alice_1", "alice@example.com", "Sunny Day1_", "127.0.0.1", []string{FieldPassword}},
		{"bad ip", "alice_1", "alice@example.com", "Sunny_Day1", "999.0.0.1", []string{FieldIP}},
		{
			"everything wrong",
			"a", "nope", "weak", "nope",
			[]string{FieldEmail, FieldIP, FieldPassword, FieldUsername},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegister(tt.username, tt.email, tt.password, tt.ip)
			if tt.wantBad == nil {
				assert.False(t, errs.HasErrors(), "unexpected errors: %v", errs)
				return
			}
			assert.Equal(t, tt.wantBad, errs.Fields())
		})
	}
}

func TestValidateLoginAcceptsEitherIdentifier(t *testing.T) {
	assert.False(t, ValidateLogin("alice_1", "Sunny_Day1", "127.0.0.1").HasErrors())
	assert.False(t, ValidateLogin("alice@example.com", "Sunny_Day1", "127.0.0.1").HasErrors())
	assert.True(t, ValidateLogin("a!", "Sunny_Day1", "127.0.0.1").HasErrors())
}

func TestValidateImageURL(t *testing.T) {
	assert.False(t, ValidateImageURL("https://cdn.example.com/a.jpg").HasErrors())
	assert.False(t, ValidateImageURL("https://cdn.example.com/a.PNG").HasErrors())
	assert.True(t, ValidateImageURL("https://cdn.example.com/a.pdf").HasErrors())
}

func TestValidationErrorsString(t *testing.T) {
	errs := make(ValidationErrors)
	errs.Add(FieldUsername, "bad")
	errs.Add(FieldEmail, "bad")
	assert.Equal(t, "Invalid fields: EMAIL, USERNAME", errs.String())
}
