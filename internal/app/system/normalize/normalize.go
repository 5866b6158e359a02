// Package normalize canonicalizes identity-bearing strings before they are
// stored or compared. Emails are the ownership key everywhere, so every
// comparison goes through Email first.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims and collapses interior whitespace in a display name.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
