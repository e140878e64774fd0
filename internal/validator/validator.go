package validator

import (
	"regexp"
	"unicode"
)

var loginRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,32}$`)

func IsValidLogin(login string) bool {
	return loginRe.MatchString(login)
}

// IsValidPassword requires at least 8 characters with a letter and a digit.
func IsValidPassword(password string) bool {
	if len(password) < 8 || len(password) > 72 {
		return false
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	return hasLetter && hasDigit
}
