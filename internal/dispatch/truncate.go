package dispatch

import "unicode/utf8"

// Excerpt budgets, in characters.
const (
	shortExcerpt  = 80
	mediumExcerpt = 100
	longExcerpt   = 200
)

// truncate keeps at most n characters of s. Invalid UTF-8 bytes count as one
// character each.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
