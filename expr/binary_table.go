package expr

import (
	"math"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/errf"
)

// The binary operator table maps (operator, lhs family, rhs family) to a
// result-type rule and a kernel. Keying by logical family keeps the table
// linear in the number of families rather than quadratic in storage
// types; the concrete result width is resolved through the promotion
// lattice at lookup time.

type binKernel func(e *Env, lhs, rhs column.Column, out column.SType) (column.Column, error)

type binKey struct {
	op     BinOp
	l1, l2 column.LType
}

type binRule struct {
	result func(st1, st2 column.SType) column.SType
	kernel binKernel
}

var binTable = map[binKey]binRule{}

func registerBin(op BinOp, l1, l2 column.LType, rule binRule) {
	binTable[binKey{op, l1, l2}] = rule
}

// resolveBinary looks up the result type and kernel for an operator and
// a pair of operand storage types.
func resolveBinary(op BinOp, st1, st2 column.SType) (column.SType, binKernel, error) {
	rule, ok := binTable[binKey{op, st1.LType(), st2.LType()}]
	if !ok {
		return column.Void, nil, errf.Type(
			"operator %s is not defined for columns of types %s and %s", op, st1, st2)
	}
	return rule.result(st1, st2), rule.kernel, nil
}

func init() {
	numeric := []column.LType{column.LBool, column.LInt, column.LReal}
	intish := []column.LType{column.LBool, column.LInt}

	// Arithmetic over every pair of numeric families.
	for _, op := range []BinOp{OpAdd, OpSub, OpMul} {
		for _, l1 := range numeric {
			for _, l2 := range numeric {
				registerBin(op, l1, l2, binRule{result: arithResult, kernel: arithKernel(op)})
			}
		}
	}

	// True division always resolves to the widest real type.
	for _, l1 := range numeric {
		for _, l2 := range numeric {
			registerBin(OpDiv, l1, l2, binRule{
				result: func(_, _ column.SType) column.SType { return column.Float64 },
				kernel: divKernel,
			})
		}
	}

	// Floor division and floor modulo.
	for _, op := range []BinOp{OpIntDiv, OpMod} {
		for _, l1 := range numeric {
			for _, l2 := range numeric {
				registerBin(op, l1, l2, binRule{result: arithResult, kernel: arithKernel(op)})
			}
		}
	}

	// Logical on booleans, bitwise on integers.
	for _, op := range []BinOp{OpAnd, OpOr, OpXor} {
		registerBin(op, column.LBool, column.LBool, binRule{
			result: func(_, _ column.SType) column.SType { return column.Bool8 },
			kernel: boolLogicKernel(op),
		})
		for _, l1 := range intish {
			for _, l2 := range intish {
				if l1 == column.LBool && l2 == column.LBool {
					continue
				}
				registerBin(op, l1, l2, binRule{result: arithResult, kernel: bitwiseKernel(op)})
			}
		}
	}

	// Comparisons: numeric cross-family, strings, timestamps.
	for _, op := range []BinOp{OpEq, OpNe, OpLt, OpGt, OpLe, OpGe} {
		for _, l1 := range numeric {
			for _, l2 := range numeric {
				registerBin(op, l1, l2, binRule{result: boolResult, kernel: cmpKernel(op)})
			}
		}
		registerBin(op, column.LString, column.LString, binRule{result: boolResult, kernel: strCmpKernel(op)})
		registerBin(op, column.LDateTime, column.LDateTime, binRule{result: boolResult, kernel: cmpKernel(op)})
	}
}

// arithResult promotes the operand types and bumps small integer results
// to Int32, the engine's narrowest arithmetic width.
func arithResult(st1, st2 column.SType) column.SType {
	r := column.Promote(st1, st2)
	switch {
	case r.LType() == column.LBool:
		return column.Int32
	case r.LType() == column.LInt && r < column.Int32:
		return column.Int32
	default:
		return r
	}
}

func boolResult(_, _ column.SType) column.SType { return column.Bool8 }

// bcast returns an index mapper that pins a length-1 operand to row zero,
// so one kernel serves the equal-length and either-side-broadcast shapes.
func bcast(n int) func(i int) int {
	if n == 1 {
		return func(int) int { return 0 }
	}
	return func(i int) int { return i }
}

func binShape(lhs, rhs column.Column) (int, func(int) int, func(int) int, error) {
	nl, nr := lhs.NRows(), rhs.NRows()
	if nl != nr && nl != 1 && nr != 1 {
		return 0, nil, nil, errf.Value(
			"cannot apply a binary operator to columns of %d and %d rows", nl, nr)
	}
	n := nl
	if nr > n {
		n = nr
	}
	return n, bcast(nl), bcast(nr), nil
}

// isIntClass reports whether the family reads exactly through IntAt.
func isIntClass(l column.LType) bool {
	return l == column.LBool || l == column.LInt || l == column.LDateTime
}

func arithKernel(op BinOp) binKernel {
	return func(e *Env, lhs, rhs column.Column, out column.SType) (column.Column, error) {
		n, li, ri, err := binShape(lhs, rhs)
		if err != nil {
			return column.Column{}, err
		}
		if out.LType() == column.LReal {
			return mapToFloats(e, n, out, func(i int) (float64, bool) {
				a, oka := lhs.FloatAt(li(i))
				b, okb := rhs.FloatAt(ri(i))
				if !oka || !okb {
					return 0, false
				}
				return floatArith(op, a, b)
			})
		}
		return mapToInts(e, n, out, func(i int) (int64, bool) {
			a, oka := lhs.IntAt(li(i))
			b, okb := rhs.IntAt(ri(i))
			if !oka || !okb {
				return 0, false
			}
			return intArith(op, a, b)
		})
	}
}

func divKernel(e *Env, lhs, rhs column.Column, out column.SType) (column.Column, error) {
	n, li, ri, err := binShape(lhs, rhs)
	if err != nil {
		return column.Column{}, err
	}
	return mapToFloats(e, n, out, func(i int) (float64, bool) {
		a, oka := lhs.FloatAt(li(i))
		b, okb := rhs.FloatAt(ri(i))
		if !oka || !okb {
			return 0, false
		}
		if b == 0 {
			return 0, false
		}
		return a / b, true
	})
}

func intArith(op BinOp, a, b int64) (int64, bool) {
	switch op {
	case OpAdd:
		return a + b, true
	case OpSub:
		return a - b, true
	case OpMul:
		return a * b, true
	case OpIntDiv:
		if b == 0 {
			return 0, false
		}
		return floorDiv(a, b), true
	case OpMod:
		if b == 0 {
			return 0, false
		}
		return floorMod(a, b), true
	default:
		panic(errf.Runtime("operator %s has no integer kernel", op))
	}
}

func floatArith(op BinOp, a, b float64) (float64, bool) {
	switch op {
	case OpAdd:
		return a + b, true
	case OpSub:
		return a - b, true
	case OpMul:
		return a * b, true
	case OpIntDiv:
		if b == 0 {
			return 0, false
		}
		return math.Floor(a / b), true
	case OpMod:
		if b == 0 {
			return 0, false
		}
		r := math.Mod(a, b)
		if r != 0 && (r < 0) != (b < 0) {
			r += b
		}
		return r, true
	default:
		panic(errf.Runtime("operator %s has no float kernel", op))
	}
}

// floorDiv rounds the quotient toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// floorMod returns the remainder with the divisor's sign, so that
// floorDiv(a,b)*b + floorMod(a,b) == a.
func floorMod(a, b int64) int64 {
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

func boolLogicKernel(op BinOp) binKernel {
	return func(e *Env, lhs, rhs column.Column, out column.SType) (column.Column, error) {
		n, li, ri, err := binShape(lhs, rhs)
		if err != nil {
			return column.Column{}, err
		}
		return mapToBools(e, n, func(i int) (bool, bool) {
			a, oka := lhs.Bool8At(li(i))
			b, okb := rhs.Bool8At(ri(i))
			switch op {
			case OpAnd:
				// Kleene logic: a definite false wins over NA.
				if oka && !a || okb && !b {
					return false, true
				}
				if !oka || !okb {
					return false, false
				}
				return true, true
			case OpOr:
				if oka && a || okb && b {
					return true, true
				}
				if !oka || !okb {
					return false, false
				}
				return false, true
			default: // OpXor
				if !oka || !okb {
					return false, false
				}
				return a != b, true
			}
		})
	}
}

func bitwiseKernel(op BinOp) binKernel {
	return func(e *Env, lhs, rhs column.Column, out column.SType) (column.Column, error) {
		n, li, ri, err := binShape(lhs, rhs)
		if err != nil {
			return column.Column{}, err
		}
		return mapToInts(e, n, out, func(i int) (int64, bool) {
			a, oka := lhs.IntAt(li(i))
			b, okb := rhs.IntAt(ri(i))
			if !oka || !okb {
				return 0, false
			}
			switch op {
			case OpAnd:
				return a & b, true
			case OpOr:
				return a | b, true
			default:
				return a ^ b, true
			}
		})
	}
}

// cmpKernel compares numeric (and timestamp) values. Equality treats two
// NAs as equal and an NA as unequal to everything else; the relational
// operators treat any comparison involving NA as false. Comparison
// results are therefore always valid booleans, never NA.
func cmpKernel(op BinOp) binKernel {
	return func(e *Env, lhs, rhs column.Column, out column.SType) (column.Column, error) {
		n, li, ri, err := binShape(lhs, rhs)
		if err != nil {
			return column.Column{}, err
		}
		exact := isIntClass(lhs.LType()) && isIntClass(rhs.LType())
		return mapToBools(e, n, func(i int) (bool, bool) {
			if exact {
				a, oka := lhs.IntAt(li(i))
				b, okb := rhs.IntAt(ri(i))
				return cmpOutcome(op, oka, okb, a == b, a < b), true
			}
			a, oka := lhs.FloatAt(li(i))
			b, okb := rhs.FloatAt(ri(i))
			return cmpOutcome(op, oka, okb, a == b, a < b), true
		})
	}
}

func strCmpKernel(op BinOp) binKernel {
	return func(e *Env, lhs, rhs column.Column, out column.SType) (column.Column, error) {
		n, li, ri, err := binShape(lhs, rhs)
		if err != nil {
			return column.Column{}, err
		}
		return mapToBools(e, n, func(i int) (bool, bool) {
			a, oka := lhs.StrAt(li(i))
			b, okb := rhs.StrAt(ri(i))
			return cmpOutcome(op, oka, okb, a == b, a < b), true
		})
	}
}

// cmpOutcome applies the NA rules shared by every comparison class.
func cmpOutcome(op BinOp, oka, okb, eq, lt bool) bool {
	if !oka || !okb {
		switch op {
		case OpEq:
			return !oka && !okb
		case OpNe:
			return oka != okb
		default:
			return false
		}
	}
	switch op {
	case OpEq:
		return eq
	case OpNe:
		return !eq
	case OpLt:
		return lt
	case OpGt:
		return !lt && !eq
	case OpLe:
		return lt || eq
	default: // OpGe
		return !lt
	}
}
