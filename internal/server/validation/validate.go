// Package validation implements the syntactic preconditions checked before
// a request reaches the auth service. The checks are deliberately cheap:
// they run before any store lookup or hashing work.
package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// PasswordSymbols is the punctuation set of which at least one character
// must appear in a password.
const PasswordSymbols = `!@#$%^&*(),.?":{}|<>`

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether s has the shape local-part@domain-with-dot.
// No normalization is applied; the address is stored as provided.
func Email(s string) bool {
	return emailRegexp.MatchString(s)
}

// Password reports whether s satisfies the strength policy: at least
// MinPasswordLength characters with at least one lowercase letter, one
// uppercase letter, one digit, and one symbol from PasswordSymbols.
func Password(s string) bool {
	if len(s) < MinPasswordLength {
		return false
	}

	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}

	return lower && upper && digit && symbol
}
