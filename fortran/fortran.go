// Package fortran converts FORTRAN double precision literals to the
// expression syntax understood by the parser.
package fortran

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	zeroExponent = regexp.MustCompile(`(\d*\.?\d+)[dD][-+]?0+\b`)
	anyExponent  = regexp.MustCompile(`(\d*\.?\d+)[dD]([-+]?\d+)`)
)

// ToPython rewrites FORTRAN literals such as 1.0d-2 as 1.0e-2. A zero
// exponent is dropped entirely, so 3.2d0 becomes 3.2. Names that merely
// contain a digit followed by "d", like x1d0, are left alone.
//
//	x=1.0d-2     -> x=1.0e-2
//	a=3.2d0+3d1  -> a=3.2+3e1
func ToPython(s string) string {
	s = replace(zeroExponent, s, func(mantissa, _ string) string {
		return mantissa
	})
	return replace(anyExponent, s, func(mantissa, exponent string) string {
		return mantissa + "e" + exponent
	})
}

func replace(re *regexp.Regexp, s string, repl func(mantissa, exponent string) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		if m[0] > 0 {
			r, _ := utf8.DecodeLastRuneInString(s[:m[0]])
			if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
				continue
			}
		}
		var exponent string
		if len(m) > 4 && m[4] >= 0 {
			exponent = s[m[4]:m[5]]
		}
		b.WriteString(s[last:m[0]])
		b.WriteString(repl(s[m[2]:m[3]], exponent))
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
