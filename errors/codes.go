package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Parse errors
//   - E2xxx: Render errors
//   - E3xxx: Input and configuration errors
type ErrorCode string

const (
	// Parse errors (E1xxx)
	E1001 ErrorCode = "E1001"
	E1002 ErrorCode = "E1002"
	E1003 ErrorCode = "E1003"
	E1004 ErrorCode = "E1004"
	E1005 ErrorCode = "E1005"
	E1006 ErrorCode = "E1006"
	E1007 ErrorCode = "E1007"
	E1008 ErrorCode = "E1008"
	E1009 ErrorCode = "E1009"
	E1010 ErrorCode = "E1010"

	// Render errors (E2xxx)
	E2001 ErrorCode = "E2001"
	E2002 ErrorCode = "E2002"
	E2003 ErrorCode = "E2003"
	E2004 ErrorCode = "E2004"

	// Input and configuration errors (E3xxx)
	E3001 ErrorCode = "E3001"
	E3002 ErrorCode = "E3002"
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unexpected token",
	E1002: "unterminated string literal",
	E1003: "invalid syntax",
	E1004: "missing expression",
	E1005: "invalid assignment target",
	E1006: "expected identifier",
	E1007: "unclosed delimiter",
	E1008: "invalid number literal",
	E1009: "maximum nesting depth exceeded",
	E1010: "unsupported syntax",

	E2001: "inconsistent identifier markers",
	E2002: "unknown comparator",
	E2003: "unsupported node",
	E2004: "maximum nesting depth exceeded",

	E3001: "invalid input encoding",
	E3002: "unsupported output",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "parse"
	case '2':
		return "render"
	case '3':
		return "config"
	default:
		return "unknown"
	}
}
