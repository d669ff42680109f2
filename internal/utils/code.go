package utils

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// codeBytes is the entropy of a confirmation code: 20 random bytes, well
// above the 80-bit floor required for an unguessable code.
const codeBytes = 20

// NewConfirmationCode returns a fresh random code as a hex string.
func NewConfirmationCode() (string, error) {
	buf := make([]byte, codeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashCode returns the bcrypt hash of a confirmation code. Only the hash
// is stored in the ledger, so a leaked database row cannot activate an
// account.
func HashCode(code string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(code), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyCode compares a stored hash with a submitted code.
func VerifyCode(hash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
