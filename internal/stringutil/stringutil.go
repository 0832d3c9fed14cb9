// Package stringutil holds small string-presentation helpers used when
// logging long request/response bodies, adapted from the teacher's own
// stringutil package.
package stringutil

import "fmt"

// Shorten collapses s to its first and last k=l/2 characters when s is at
// least l characters long, annotating the omitted length. Used to keep a
// full query-DSL body or cursor value out of a log line while still
// showing enough of it to recognize at a glance.
func Shorten(s string, l int) string {
	if len(s) < l {
		return s
	}
	k := l / 2
	return s[:k] + " [...] " + s[len(s)-k:] + fmt.Sprintf(" [%d]", len(s))
}

// Trim truncates s to l characters, appending ellipsis if anything was cut.
func Trim(s string, l int, ellipsis string) string {
	if len(s) <= l {
		return s
	}
	return s[:l] + ellipsis
}
