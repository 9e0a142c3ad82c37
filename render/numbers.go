package render

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/deepnoodle-ai/texit/ast"
)

type fraction struct {
	numerator   string
	denominator string
}

var fractions = map[float64]fraction{
	0.5:  {"1", "2"},
	0.25: {"1", "4"},
	0.75: {"3", "4"},
}

var numericText = regexp.MustCompile(`^[-+]?((\d+\.?\d*|\.\d+)([eE][-+]?\d+)?|(?i:inf|infinity|nan))$`)

// exponentLike matches text that would continue a number as an exponent.
var exponentLike = regexp.MustCompile(`^[eE][-+]?\d`)

// looksNumeric reports whether rendered text is a plain number.
func looksNumeric(s string) bool {
	return numericText.MatchString(s)
}

// startsWithDigit reports whether s starts with a digit, ignoring a leading
// minus sign.
func startsWithDigit(s string) bool {
	s = strings.TrimPrefix(s, "-")
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func (r *Renderer) number(n *ast.Number) string {
	v := n.Value
	if r.cfg.SimplifyFractions {
		if frac, ok := fractions[math.Abs(v)]; ok {
			sign := ""
			if v < 0 {
				sign = "-"
			}
			return sign + r.f.Division(frac.numerator, frac.denominator)
		}
	}
	if !n.Float {
		return n.Literal
	}
	if math.IsInf(v, 0) {
		if v < 0 {
			return `-\infty`
		}
		return `\infty`
	}
	if r.cfg.SimplifyOutput && n.Scientific() {
		return n.Literal
	}
	if r.cfg.SimplifyInts && v == math.Trunc(v) && math.Abs(v) < 1e16 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return formatFloat(v)
}

// formatFloat writes v the way Python's repr does: the shortest
// round-tripping digits, positional between 1e-4 and 1e16 with at least one
// decimal, exponential outside.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	e := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return e
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

var controlWord = regexp.MustCompile(`\\[a-zA-Z]+$`)

// joinCommand concatenates a and b, separating them with a space when a
// ends in a control word that b would otherwise extend.
func joinCommand(a, b string) string {
	if b != "" && controlWord.MatchString(a) {
		if r := []rune(b)[0]; unicode.IsLetter(r) {
			return a + " " + b
		}
	}
	return a + b
}
