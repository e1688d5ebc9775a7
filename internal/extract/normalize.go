package extract

import "strings"

// Normalize trims leading and trailing whitespace and collapses every
// internal run of whitespace to a single space. It is a pure, total
// function: any input yields a result, and normalization is best-effort by
// contract, so callers never need to handle a failure.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
