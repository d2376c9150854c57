package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const (
	minUsernameLen = 3
	maxUsernameLen = 30
	minPasswordLen = 6
	maxPasswordLen = 72 // bcrypt input limit
	maxEmailLen    = 100

	maxBudgetNameLen = 255
)

func validateEmail(email string) bool {
	return utf8.RuneCountInString(email) <= maxEmailLen && emailRegexp.MatchString(email)
}

func validateUsername(username string) bool {
	n := utf8.RuneCountInString(username)
	return n >= minUsernameLen && n <= maxUsernameLen && strings.TrimSpace(username) == username
}

func validatePassword(password string) bool {
	return len(password) >= minPasswordLen && len(password) <= maxPasswordLen
}

// validateRegistration returns an ErrInvalidRegistration describing the first invalid field.
func validateRegistration(username, password, email string) error {
	switch {
	case !validateUsername(username):
		return fmt.Errorf("%w: username must be %d-%d characters", ErrInvalidRegistration, minUsernameLen, maxUsernameLen)
	case !validateEmail(email):
		return fmt.Errorf("%w: email must be a valid address of at most %d characters", ErrInvalidRegistration, maxEmailLen)
	case !validatePassword(password):
		return fmt.Errorf("%w: password must be %d-%d characters", ErrInvalidRegistration, minPasswordLen, maxPasswordLen)
	}
	return nil
}
