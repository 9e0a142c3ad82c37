// Package postprocess simplifies rendered output text.
package postprocess

import (
	"regexp"
	"strings"
)

var (
	numericParens = regexp.MustCompile(`\\left\(([\d.]+)\\right\)`)
	scientific    = regexp.MustCompile(`(\d*\.?\d+)e([-+]?\d*\.?\d+)`)
)

// Simplify removes \left(...\right) around bare numbers and rewrites
// scientific literals as powers of ten:
//
//	\left(2\right)  -> 2
//	1e-20           -> 10^{-20}
//	11e2            -> 11\times10^2
//
// Applying Simplify to its own output returns the output unchanged.
func Simplify(s string) string {
	for {
		next := numericParens.ReplaceAllString(s, "$1")
		if next == s {
			break
		}
		s = next
	}
	return powersOfTen(s)
}

func powersOfTen(s string) string {
	matches := scientific.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		// A literal that directly follows a digit, a period, an exponent
		// marker or a closing brace is the tail of something already
		// rewritten.
		if m[0] > 0 && strings.ContainsRune("0123456789.^}", rune(s[m[0]-1])) {
			continue
		}
		mantissa := s[m[2]:m[3]]
		exponent := s[m[4]:m[5]]
		if len(exponent) > 1 {
			exponent = "{" + exponent + "}"
		}
		b.WriteString(s[last:m[0]])
		if mantissa != "1" {
			b.WriteString(mantissa)
			b.WriteString(`\times`)
		}
		b.WriteString("10^")
		b.WriteString(exponent)
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
