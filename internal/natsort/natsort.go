// Package natsort orders strings with embedded numbers by numeric value,
// so "Section: 2" sorts before "Section: 10".
package natsort

import "strings"

// Compare reports the natural ordering of a and b: negative when a < b,
// zero when equal, positive when a > b.
//
// Each string is split into alternating runs of digits and non-digits.
// Digit runs compare numerically, non-digit runs compare
// case-insensitively, and comparison proceeds run by run left to right.
// When one string is a prefix of the other's run sequence, the shorter
// sorts first.
func Compare(a, b string) int {
	ra, rb := split(a), split(b)

	for i := 0; i < len(ra) && i < len(rb); i++ {
		x, y := ra[i], rb[i]

		if x.numeric && y.numeric {
			if c := compareNumeric(x.text, y.text); c != 0 {
				return c
			}
			continue
		}

		if c := strings.Compare(strings.ToLower(x.text), strings.ToLower(y.text)); c != 0 {
			return c
		}
	}

	return len(ra) - len(rb)
}

// Less reports whether a sorts before b under natural ordering.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

type run struct {
	text    string
	numeric bool
}

// split breaks s into maximal runs of digits and non-digits.
func split(s string) []run {
	var runs []run
	start := 0
	for i := 0; i < len(s); i++ {
		if i > 0 && isDigit(s[i]) != isDigit(s[i-1]) {
			runs = append(runs, run{text: s[start:i], numeric: isDigit(s[i-1])})
			start = i
		}
	}
	if start < len(s) {
		runs = append(runs, run{text: s[start:], numeric: isDigit(s[len(s)-1])})
	}
	return runs
}

// compareNumeric compares two digit runs by value without overflowing on
// long runs: strip leading zeros, then shorter means smaller.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
