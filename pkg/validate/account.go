package validate

import (
	"regexp"
	"strings"
	"unicode"
)

const PasswordSymbols = "@$!%*?&"

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9]{3,20}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func IsUsername(s string) bool {
	return usernameRe.MatchString(s)
}

func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsStrongPassword requires at least 8 characters drawn from letters, digits and
// PasswordSymbols, with at least one of each class.
func IsStrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		default:
			return false
		}
	}
	return lower && upper && digit && symbol
}
