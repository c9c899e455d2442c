package expr

import "fmt"

// BinOp identifies a binary operator.
type BinOp int

const (
	OpAdd BinOp = iota // +
	OpSub              // -
	OpMul              // *
	OpDiv              // / (always real)
	OpIntDiv           // // (floor division)
	OpMod              // % (floor modulo)
	OpAnd              // & (logical on bools, bitwise on ints)
	OpOr               // |
	OpXor              // ^
	OpEq               // ==
	OpNe               // !=
	OpLt               // <
	OpGt               // >
	OpLe               // <=
	OpGe               // >=
)

var binOpNames = [...]string{
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpIntDiv: "//",
	OpMod:    "%",
	OpAnd:    "&",
	OpOr:     "|",
	OpXor:    "^",
	OpEq:     "==",
	OpNe:     "!=",
	OpLt:     "<",
	OpGt:     ">",
	OpLe:     "<=",
	OpGe:     ">=",
}

// String returns the operator's symbol.
func (op BinOp) String() string {
	if int(op) < len(binOpNames) {
		return binOpNames[op]
	}
	return fmt.Sprintf("BinOp(%d)", int(op))
}

func (op BinOp) isComparison() bool { return op >= OpEq }

// UnOp identifies a unary operator.
type UnOp int

const (
	OpNeg    UnOp = iota // arithmetic negation
	OpPos                // arithmetic identity
	OpInvert             // ~ (bitwise on ints, logical on bools)
	OpNot                // logical negation
	OpAbs                // absolute value
)

var unOpNames = [...]string{
	OpNeg:    "-",
	OpPos:    "+",
	OpInvert: "~",
	OpNot:    "!",
	OpAbs:    "abs",
}

// String returns the operator's symbol.
func (op UnOp) String() string {
	if int(op) < len(unOpNames) {
		return unOpNames[op]
	}
	return fmt.Sprintf("UnOp(%d)", int(op))
}

// NAryOp identifies a row-wise n-ary operator.
type NAryOp int

const (
	OpRowSum NAryOp = iota
	OpRowCount
	OpRowMin
	OpRowMax
	OpRowMean
)

var naryOpNames = [...]string{
	OpRowSum:   "rowsum",
	OpRowCount: "rowcount",
	OpRowMin:   "rowmin",
	OpRowMax:   "rowmax",
	OpRowMean:  "rowmean",
}

// String returns the function's name.
func (op NAryOp) String() string {
	if int(op) < len(naryOpNames) {
		return naryOpNames[op]
	}
	return fmt.Sprintf("NAryOp(%d)", int(op))
}

// Reducer identifies a reduction function.
type Reducer int

const (
	RCount Reducer = iota
	RSum
	RMean
	RMin
	RMax
	RSd
	RFirst
	RLast
	RMedian
	RNUnique
	RCov
	RCorr
)

var reducerNames = [...]string{
	RCount:   "count",
	RSum:     "sum",
	RMean:    "mean",
	RMin:     "min",
	RMax:     "max",
	RSd:      "sd",
	RFirst:   "first",
	RLast:    "last",
	RMedian:  "median",
	RNUnique: "nunique",
	RCov:     "cov",
	RCorr:    "corr",
}

// String returns the reducer's name.
func (r Reducer) String() string {
	if int(r) < len(reducerNames) {
		return reducerNames[r]
	}
	return fmt.Sprintf("Reducer(%d)", int(r))
}
