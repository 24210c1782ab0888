package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// ValidEmail reports whether the value looks like a usable email address.
func ValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// ValidName reports whether a display-name field is within bounds.
func ValidName(value string) bool {
	return len(value) >= NameMinLength && len(value) <= NameMaxLength
}

// ValidPassword reports whether a password satisfies the minimum policy.
// Character-class rules live in the account service; this is the shared
// length floor.
func ValidPassword(value string) bool {
	return len(value) >= PasswordMinLength
}
