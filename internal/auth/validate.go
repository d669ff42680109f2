package auth

import (
	"net/mail"
	"regexp"
)

const (
	maxUsernameLen = 150
	maxEmailLen    = 254

	// reservedUsername collides with the /users/me route and is rejected
	// at signup regardless of email.
	reservedUsername = "me"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// ValidateUsername enforces the identity-format rules for usernames.
func ValidateUsername(username string) error {
	if username == "" {
		return validationf("username is required")
	}
	if len(username) > maxUsernameLen {
		return validationf("username must be at most %d characters", maxUsernameLen)
	}
	if !usernamePattern.MatchString(username) {
		return validationf("username may contain only letters, digits and @/./+/-/_")
	}
	if username == reservedUsername {
		return validationf("username %q is not allowed", reservedUsername)
	}
	return nil
}

// ValidateEmail checks the address is syntactically valid and short
// enough for the column.
func ValidateEmail(email string) error {
	if email == "" {
		return validationf("email is required")
	}
	if len(email) > maxEmailLen {
		return validationf("email must be at most %d characters", maxEmailLen)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return validationf("invalid email address")
	}
	return nil
}
