package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	valid := []string{"capote", "a.b-c_d", "user@host", "plus+name", "UPPER", "1234"}
	for _, u := range valid {
		assert.NoError(t, ValidateUsername(u), u)
	}

	invalid := []string{
		"",
		"me",
		"has space",
		"semi;colon",
		"slash/name",
		strings.Repeat("x", maxUsernameLen+1),
	}
	for _, u := range invalid {
		assert.Error(t, ValidateUsername(u), u)
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("truman@example.com"))
	assert.NoError(t, ValidateEmail("first.last+tag@sub.example.org"))

	invalid := []string{
		"",
		"no-at-sign",
		"double@@example.com",
		strings.Repeat("x", maxEmailLen) + "@example.com",
	}
	for _, e := range invalid {
		assert.Error(t, ValidateEmail(e), e)
	}
}
