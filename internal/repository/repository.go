package repository

import (
	"strings"
)

// escapeLike lowercases s and escapes the LIKE wildcards so user input can
// be used as a literal prefix.
func escapeLike(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
