// Package validate holds the request-shape rules shared by the auth and
// collection endpoints: minimum name/title lengths and password composition.
package validate

import (
	"fmt"
	"unicode"
)

// MinNameLen applies to user names, collection titles, and todo titles.
const MinNameLen = 4

// MinPasswordLen is the minimum password length; composition rules below
// apply on top of it.
const MinPasswordLen = 4

// Name checks the minimum length of a user name, collection title, or todo
// title. Length is counted in runes, not bytes.
func Name(field, v string) error {
	if len([]rune(v)) < MinNameLen {
		return fmt.Errorf("%s must be at least %d characters", field, MinNameLen)
	}
	return nil
}

// StrongPassword requires at least one lowercase letter, one uppercase
// letter, one digit, and one symbol, with a minimum total length.
func StrongPassword(v string) error {
	runes := []rune(v)
	if len(runes) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	var lower, upper, digit, symbol bool
	for _, r := range runes {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	if !lower || !upper || !digit || !symbol {
		return fmt.Errorf("password must contain a lowercase letter, an uppercase letter, a digit, and a symbol")
	}
	return nil
}
