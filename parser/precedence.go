package parser

import "github.com/deepnoodle-ai/texit/token"

// Precedence order for operators, lowest to highest.
const (
	_ int = iota
	LOWEST
	BOOL     // and, or (rejected, but parsed far enough to report)
	NOT      // not x
	COMPARE  // < <= > >= == != in not in is is not
	BITOR    // |
	BITXOR   // ^
	BITAND   // &
	SHIFT    // << >>
	SUM      // + -
	PRODUCT  // * / // %
	PREFIX   // -x +x ~x
	POWER    // **
	CALL     // f(x)
	INDEX    // a[i], a.b
)

// Precedences for each infix token type
var precedences = map[token.Type]int{
	token.AND:         BOOL,
	token.OR:          BOOL,
	token.LT:          COMPARE,
	token.LT_EQUALS:   COMPARE,
	token.GT:          COMPARE,
	token.GT_EQUALS:   COMPARE,
	token.EQ:          COMPARE,
	token.NOT_EQ:      COMPARE,
	token.IN:          COMPARE,
	token.NOT:         COMPARE,
	token.IS:          COMPARE,
	token.PIPE:        BITOR,
	token.CARET:       BITXOR,
	token.AMPERSAND:   BITAND,
	token.LT_LT:       SHIFT,
	token.GT_GT:       SHIFT,
	token.PLUS:        SUM,
	token.MINUS:       SUM,
	token.ASTERISK:    PRODUCT,
	token.SLASH:       PRODUCT,
	token.SLASH_SLASH: PRODUCT,
	token.MOD:         PRODUCT,
	token.POW:         POWER,
	token.LPAREN:      CALL,
	token.LBRACKET:    INDEX,
	token.PERIOD:      INDEX,
}
