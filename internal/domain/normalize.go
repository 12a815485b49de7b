package domain

import "strings"

// NormalizeText lowercases text and collapses every run of whitespace,
// tabs and newlines included, into one space. Used to compare venue names
// against known placeholders.
func NormalizeText(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
