package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewConfirmationCode(t *testing.T) {
	a, err := NewConfirmationCode()
	require.NoError(t, err)
	require.Len(t, a, codeBytes*2) // hex doubles the byte count

	b, err := NewConfirmationCode()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestHashAndVerifyCode(t *testing.T) {
	code, err := NewConfirmationCode()
	require.NoError(t, err)

	hash, err := HashCode(code, bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, code, hash)

	require.True(t, VerifyCode(hash, code))
	require.False(t, VerifyCode(hash, "wrong"))
	require.False(t, VerifyCode("not-a-hash", code))
}
