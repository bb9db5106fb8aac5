package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	Username string `validate:"required,username"`
	Password string `validate:"required,strongpassword"`
}

func TestStruct_ValidForm(t *testing.T) {
	require.NoError(t, Struct(registerForm{Username: "alice_01", Password: "Passw0rd"}))
}

func TestStruct_UsernameRules(t *testing.T) {
	cases := map[string]bool{
		"ab":                    false, // too short
		"abc":                   true,
		"twenty_chars_exactly_": false, // 21 chars
		"has space":             false,
		"dash-ed":               false,
		"Under_score9":          true,
	}
	for name, ok := range cases {
		err := Struct(registerForm{Username: name, Password: "Passw0rd"})
		if ok {
			assert.NoError(t, err, name)
		} else {
			assert.Error(t, err, name)
		}
	}
}

func TestStrongPassword(t *testing.T) {
	assert.True(t, StrongPassword("Passw0rd"))
	assert.False(t, StrongPassword("Pass0rd"))     // 7 chars
	assert.False(t, StrongPassword("passw0rd"))    // no uppercase
	assert.False(t, StrongPassword("Password"))    // no digit
	assert.False(t, StrongPassword(""))
}
