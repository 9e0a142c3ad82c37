package ast

// Op identifies a binary or unary operator.
type Op int

const (
	OpInvalid Op = iota
	Add
	Sub
	Mult
	Div
	FloorDiv
	Pow
	Mod
	BitOr
	BitXor
	BitAnd
	LShift
	RShift
	Invert
	Not
	UAdd
	USub
)

var opNames = [...]string{
	OpInvalid: "Invalid",
	Add:       "Add",
	Sub:       "Sub",
	Mult:      "Mult",
	Div:       "Div",
	FloorDiv:  "FloorDiv",
	Pow:       "Pow",
	Mod:       "Mod",
	BitOr:     "BitOr",
	BitXor:    "BitXor",
	BitAnd:    "BitAnd",
	LShift:    "LShift",
	RShift:    "RShift",
	Invert:    "Invert",
	Not:       "Not",
	UAdd:      "UAdd",
	USub:      "USub",
}

var opSymbols = [...]string{
	Add:      "+",
	Sub:      "-",
	Mult:     "*",
	Div:      "/",
	FloorDiv: "//",
	Pow:      "**",
	Mod:      "%",
	BitOr:    "|",
	BitXor:   "^",
	BitAnd:   "&",
	LShift:   "<<",
	RShift:   ">>",
	Invert:   "~",
	Not:      "not ",
	UAdd:     "+",
	USub:     "-",
}

// String returns the operator kind name, e.g. "FloorDiv".
func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "Invalid"
	}
	return opNames[op]
}

// Symbol returns the source spelling of the operator, e.g. "//".
func (op Op) Symbol() string {
	if op < 0 || int(op) >= len(opSymbols) {
		return ""
	}
	return opSymbols[op]
}

// IsUnary reports whether op is a prefix operator.
func (op Op) IsUnary() bool {
	switch op {
	case Invert, Not, UAdd, USub:
		return true
	}
	return false
}

// CmpOp identifies a comparison operator.
type CmpOp int

const (
	CmpInvalid CmpOp = iota
	Lt
	LtE
	Gt
	GtE
	Eq
	NotEq
	In
	NotIn
	Is
	IsNot
)

var cmpNames = [...]string{
	CmpInvalid: "Invalid",
	Lt:         "Lt",
	LtE:        "LtE",
	Gt:         "Gt",
	GtE:        "GtE",
	Eq:         "Eq",
	NotEq:      "NotEq",
	In:         "In",
	NotIn:      "NotIn",
	Is:         "Is",
	IsNot:      "IsNot",
}

var cmpSymbols = [...]string{
	Lt:    "<",
	LtE:   "<=",
	Gt:    ">",
	GtE:   ">=",
	Eq:    "==",
	NotEq: "!=",
	In:    "in",
	NotIn: "not in",
	Is:    "is",
	IsNot: "is not",
}

// String returns the comparator kind name, e.g. "LtE".
func (op CmpOp) String() string {
	if op < 0 || int(op) >= len(cmpNames) {
		return "Invalid"
	}
	return cmpNames[op]
}

// Symbol returns the source spelling of the comparator, e.g. "<=".
func (op CmpOp) Symbol() string {
	if op < 0 || int(op) >= len(cmpSymbols) {
		return ""
	}
	return cmpSymbols[op]
}
