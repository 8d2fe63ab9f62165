// Package wild implements MUSH wildcard matching: case-insensitive
// glob patterns with * and ?, plus the </> order-comparison prefixes
// used by attribute locks.
package wild

import (
	"strconv"
	"strings"
	"unicode"
)

// Match does either an order comparison or a wildcard match. A pattern
// beginning with '>' or '<' compares the rest of the pattern against
// the text, numerically when the operand looks like a number,
// lexicographically otherwise. Anything else is a glob match.
func Match(pattern, text string) bool {
	switch {
	case strings.HasPrefix(pattern, ">"):
		p := pattern[1:]
		if isNumeric(p) {
			return atoi(p) < atoi(text)
		}
		return strings.Compare(p, text) < 0
	case strings.HasPrefix(pattern, "<"):
		p := pattern[1:]
		if isNumeric(p) {
			return atoi(p) > atoi(text)
		}
		return strings.Compare(p, text) > 0
	}
	return Glob(pattern, text)
}

// Glob matches text against a pattern of literals, '?' (any one rune)
// and '*' (any run, possibly empty). Case-insensitive.
func Glob(pattern, text string) bool {
	return globMatch([]rune(pattern), []rune(text))
}

func globMatch(p, t []rune) bool {
	for len(p) > 0 {
		switch p[0] {
		case '?':
			if len(t) == 0 {
				return false
			}
			p, t = p[1:], t[1:]
		case '*':
			// Collapse runs of stars, then try every split point
			for len(p) > 0 && p[0] == '*' {
				p = p[1:]
			}
			if len(p) == 0 {
				return true
			}
			for i := 0; i <= len(t); i++ {
				if globMatch(p, t[i:]) {
					return true
				}
			}
			return false
		default:
			if len(t) == 0 || !runeEq(p[0], t[0]) {
				return false
			}
			p, t = p[1:], t[1:]
		}
	}
	return len(t) == 0
}

func runeEq(a, b rune) bool {
	return unicode.ToLower(a) == unicode.ToLower(b)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	return s[0] >= '0' && s[0] <= '9'
}

// atoi mimics strtol: parse the leading integer, ignore the rest
func atoi(s string) int {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0
	}
	return n
}
