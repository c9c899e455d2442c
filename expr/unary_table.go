package expr

import (
	"math"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/errf"
)

// The unary operator table is the one-key analogue of the binary table.
// Operators with no valid transformation for a family (bitwise invert on
// reals, negation of strings) are simply absent and fail fast with a
// TypeError at resolution time.

type unKernel func(e *Env, c column.Column, out column.SType) (column.Column, error)

type unKey struct {
	op UnOp
	l  column.LType
}

type unRule struct {
	result func(st column.SType) column.SType
	kernel unKernel
}

var unTable = map[unKey]unRule{}

func registerUn(op UnOp, l column.LType, rule unRule) {
	unTable[unKey{op, l}] = rule
}

// resolveUnary looks up the result type and kernel for a unary operator
// applied to a storage type.
func resolveUnary(op UnOp, st column.SType) (column.SType, unKernel, error) {
	rule, ok := unTable[unKey{op, st.LType()}]
	if !ok {
		return column.Void, nil, errf.Type(
			"operator %s is not defined for a column of type %s", op, st)
	}
	return rule.result(st), rule.kernel, nil
}

func init() {
	keepArith := func(st column.SType) column.SType { return arithResult(st, st) }
	keep := func(st column.SType) column.SType { return st }
	toBool := func(column.SType) column.SType { return column.Bool8 }

	for _, l := range []column.LType{column.LBool, column.LInt} {
		registerUn(OpNeg, l, unRule{result: keepArith, kernel: intMapKernel(func(v int64) int64 { return -v })})
		registerUn(OpPos, l, unRule{result: keepArith, kernel: intMapKernel(func(v int64) int64 { return v })})
		registerUn(OpAbs, l, unRule{result: keepArith, kernel: intMapKernel(func(v int64) int64 {
			if v < 0 {
				return -v
			}
			return v
		})})
	}
	registerUn(OpNeg, column.LReal, unRule{result: keep, kernel: floatMapKernel(func(v float64) float64 { return -v })})
	registerUn(OpPos, column.LReal, unRule{result: keep, kernel: floatMapKernel(func(v float64) float64 { return v })})
	registerUn(OpAbs, column.LReal, unRule{result: keep, kernel: floatMapKernel(math.Abs)})

	// Invert is logical on booleans and bitwise on integers. It has no
	// real-typed form.
	registerUn(OpInvert, column.LBool, unRule{result: toBool, kernel: boolNotKernel})
	registerUn(OpInvert, column.LInt, unRule{result: keep, kernel: intMapKernel(func(v int64) int64 { return ^v })})

	registerUn(OpNot, column.LBool, unRule{result: toBool, kernel: boolNotKernel})
}

func intMapKernel(fn func(int64) int64) unKernel {
	return func(e *Env, c column.Column, out column.SType) (column.Column, error) {
		return mapToInts(e, c.NRows(), out, func(i int) (int64, bool) {
			v, ok := c.IntAt(i)
			if !ok {
				return 0, false
			}
			return fn(v), true
		})
	}
}

func floatMapKernel(fn func(float64) float64) unKernel {
	return func(e *Env, c column.Column, out column.SType) (column.Column, error) {
		return mapToFloats(e, c.NRows(), out, func(i int) (float64, bool) {
			v, ok := c.FloatAt(i)
			if !ok {
				return 0, false
			}
			return fn(v), true
		})
	}
}

func boolNotKernel(e *Env, c column.Column, out column.SType) (column.Column, error) {
	return mapToBools(e, c.NRows(), func(i int) (bool, bool) {
		v, ok := c.Bool8At(i)
		if !ok {
			return false, false
		}
		return !v, true
	})
}
