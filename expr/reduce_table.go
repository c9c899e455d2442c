package expr

import (
	"math"
	"sort"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/errf"
	"github.com/vegasq/framecat/frame"
)

// Reducer kernels compute one value per group from a source column and a
// [start, end) row range. The ungrouped case is the same code running
// against the trivial one-group partition. Groups are distributed across
// the worker pool; each group writes its own slot of the pre-sized
// output, so the write phase is lock-free.

type reduceKernel func(e *Env, c column.Column, gb frame.Groupby) (column.Column, error)

// resolveReducer returns the kernel for a one-column reducer applied to
// the given storage type.
func resolveReducer(r Reducer, st column.SType) (reduceKernel, error) {
	l := st.LType()
	switch r {
	case RCount:
		return countKernel, nil
	case RSum:
		switch {
		case l == column.LBool || l == column.LInt:
			return sumIntKernel, nil
		case l == column.LReal:
			return sumFloatKernel, nil
		}
	case RMean:
		if l.IsNumeric() {
			return meanKernel, nil
		}
	case RSd:
		if l.IsNumeric() {
			return sdKernel, nil
		}
	case RMedian:
		if l.IsNumeric() {
			return medianKernel, nil
		}
	case RMin, RMax:
		if l == column.LBool || l == column.LInt || l == column.LDateTime {
			return minMaxIntKernel(r == RMin), nil
		}
		if l == column.LReal {
			return minMaxFloatKernel(r == RMin), nil
		}
	case RFirst, RLast:
		return boundaryKernel(r == RFirst), nil
	case RNUnique:
		switch l {
		case column.LBool, column.LInt, column.LDateTime:
			return nuniqueIntKernel, nil
		case column.LReal:
			return nuniqueFloatKernel, nil
		case column.LString:
			return nuniqueStrKernel, nil
		}
	}
	return nil, errf.Type("reducer %s is not defined for a column of type %s", r, st)
}

func reduceInts(e *Env, gb frame.Groupby, out column.SType, fn func(g int) (int64, bool)) (column.Column, error) {
	ng := gb.NGroups()
	data := make([]int64, ng)
	valid := make([]bool, ng)
	err := e.pool().RunOrdered(ng, func(g int) error {
		data[g], valid[g] = fn(g)
		return nil
	})
	if err != nil {
		return column.Column{}, err
	}
	return column.IntsAs(out, data, compactValid(valid)), nil
}

func reduceFloats(e *Env, gb frame.Groupby, out column.SType, fn func(g int) (float64, bool)) (column.Column, error) {
	ng := gb.NGroups()
	data := make([]float64, ng)
	valid := make([]bool, ng)
	err := e.pool().RunOrdered(ng, func(g int) error {
		data[g], valid[g] = fn(g)
		return nil
	})
	if err != nil {
		return column.Column{}, err
	}
	return column.FloatsAs(out, data, compactValid(valid)), nil
}

func countKernel(e *Env, c column.Column, gb frame.Groupby) (column.Column, error) {
	counter := validCounter(c)
	return reduceInts(e, gb, column.Int64, func(g int) (int64, bool) {
		s, end := gb.Group(g)
		n := int64(0)
		for i := s; i < end; i++ {
			if counter(i) {
				n++
			}
		}
		return n, true
	})
}

// validCounter returns a per-row validity probe for any column class.
func validCounter(c column.Column) func(i int) bool {
	switch c.LType() {
	case column.LVoid:
		return func(int) bool { return false }
	case column.LBool:
		return func(i int) bool { _, ok := c.Bool8At(i); return ok }
	case column.LInt, column.LDateTime:
		return func(i int) bool { _, ok := c.IntAt(i); return ok }
	case column.LReal:
		return func(i int) bool { _, ok := c.FloatAt(i); return ok }
	case column.LString:
		return func(i int) bool { _, ok := c.StrAt(i); return ok }
	default:
		return func(i int) bool { _, ok := c.ObjAt(i); return ok }
	}
}

func sumIntKernel(e *Env, c column.Column, gb frame.Groupby) (column.Column, error) {
	return reduceInts(e, gb, column.Int64, func(g int) (int64, bool) {
		s, end := gb.Group(g)
		total := int64(0)
		for i := s; i < end; i++ {
			if v, ok := c.IntAt(i); ok {
				total += v
			}
		}
		return total, true
	})
}

func sumFloatKernel(e *Env, c column.Column, gb frame.Groupby) (column.Column, error) {
	return reduceFloats(e, gb, column.Float64, func(g int) (float64, bool) {
		s, end := gb.Group(g)
		total := 0.0
		for i := s; i < end; i++ {
			if v, ok := c.FloatAt(i); ok {
				total += v
			}
		}
		return total, true
	})
}

// meanKernel computes the mean with streaming (Welford-style) updates,
// skipping NAs, to avoid catastrophic cancellation on long groups.
func meanKernel(e *Env, c column.Column, gb frame.Groupby) (column.Column, error) {
	return reduceFloats(e, gb, column.Float64, func(g int) (float64, bool) {
		s, end := gb.Group(g)
		n := 0.0
		mean := 0.0
		for i := s; i < end; i++ {
			v, ok := c.FloatAt(i)
			if !ok {
				continue
			}
			n++
			mean += (v - mean) / n
		}
		return mean, n > 0
	})
}

// sdKernel computes the sample standard deviation with Welford's single
// pass. A group with fewer than two valid values has no deviation and
// yields NA.
func sdKernel(e *Env, c column.Column, gb frame.Groupby) (column.Column, error) {
	return reduceFloats(e, gb, column.Float64, func(g int) (float64, bool) {
		s, end := gb.Group(g)
		n := 0.0
		mean := 0.0
		m2 := 0.0
		for i := s; i < end; i++ {
			v, ok := c.FloatAt(i)
			if !ok {
				continue
			}
			n++
			d := v - mean
			mean += d / n
			m2 += d * (v - mean)
		}
		if n < 2 {
			return 0, false
		}
		return math.Sqrt(m2 / (n - 1)), true
	})
}

// medianKernel materializes each group's valid values, sorts them, and
// picks the middle element (or the mean of the two middle elements).
func medianKernel(e *Env, c column.Column, gb frame.Groupby) (column.Column, error) {
	return reduceFloats(e, gb, column.Float64, func(g int) (float64, bool) {
		s, end := gb.Group(g)
		vals := make([]float64, 0, end-s)
		for i := s; i < end; i++ {
			if v, ok := c.FloatAt(i); ok {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			return 0, false
		}
		sort.Float64s(vals)
		mid := len(vals) / 2
		if len(vals)%2 == 1 {
			return vals[mid], true
		}
		return (vals[mid-1] + vals[mid]) / 2, true
	})
}

func minMaxIntKernel(isMin bool) reduceKernel {
	return func(e *Env, c column.Column, gb frame.Groupby) (column.Column, error) {
		return reduceInts(e, gb, c.Stype(), func(g int) (int64, bool) {
			s, end := gb.Group(g)
			var best int64
			seen := false
			for i := s; i < end; i++ {
				v, ok := c.IntAt(i)
				if !ok {
					continue
				}
				if !seen || (isMin && v < best) || (!isMin && v > best) {
					best = v
					seen = true
				}
			}
			return best, seen
		})
	}
}

func minMaxFloatKernel(isMin bool) reduceKernel {
	return func(e *Env, c column.Column, gb frame.Groupby) (column.Column, error) {
		return reduceFloats(e, gb, c.Stype(), func(g int) (float64, bool) {
			s, end := gb.Group(g)
			var best float64
			seen := false
			for i := s; i < end; i++ {
				v, ok := c.FloatAt(i)
				if !ok {
					continue
				}
				if !seen || (isMin && v < best) || (!isMin && v > best) {
					best = v
					seen = true
				}
			}
			return best, seen
		})
	}
}

// boundaryKernel selects each group's first or last row directly, with no
// scan over the group body.
func boundaryKernel(first bool) reduceKernel {
	return func(e *Env, c column.Column, gb frame.Groupby) (column.Column, error) {
		cc := c.Clone()
		out := column.View(cc, gb.NGroups(), func(g int) (int, bool) {
			s, end := gb.Group(g)
			if s == end {
				return 0, false
			}
			if first {
				return s, true
			}
			return end - 1, true
		})
		out.Materialize()
		return out, nil
	}
}

func nuniqueIntKernel(e *Env, c column.Column, gb frame.Groupby) (column.Column, error) {
	return reduceInts(e, gb, column.Int64, func(g int) (int64, bool) {
		s, end := gb.Group(g)
		seen := make(map[int64]struct{})
		for i := s; i < end; i++ {
			if v, ok := c.IntAt(i); ok {
				seen[v] = struct{}{}
			}
		}
		return int64(len(seen)), true
	})
}

func nuniqueFloatKernel(e *Env, c column.Column, gb frame.Groupby) (column.Column, error) {
	return reduceInts(e, gb, column.Int64, func(g int) (int64, bool) {
		s, end := gb.Group(g)
		seen := make(map[uint64]struct{})
		for i := s; i < end; i++ {
			if v, ok := c.FloatAt(i); ok {
				seen[math.Float64bits(v)] = struct{}{}
			}
		}
		return int64(len(seen)), true
	})
}

func nuniqueStrKernel(e *Env, c column.Column, gb frame.Groupby) (column.Column, error) {
	return reduceInts(e, gb, column.Int64, func(g int) (int64, bool) {
		s, end := gb.Group(g)
		seen := make(map[string]struct{})
		for i := s; i < end; i++ {
			if v, ok := c.StrAt(i); ok {
				seen[v] = struct{}{}
			}
		}
		return int64(len(seen)), true
	})
}

// Two-column reducers: covariance and correlation.

type reduce2Kernel func(e *Env, x, y column.Column, gb frame.Groupby) (column.Column, error)

// resolveReducer2 returns the kernel for a two-column reducer.
func resolveReducer2(r Reducer, st1, st2 column.SType) (reduce2Kernel, error) {
	if !st1.LType().IsNumeric() || !st2.LType().IsNumeric() {
		return nil, errf.Type("reducer %s is not defined for columns of types %s and %s", r, st1, st2)
	}
	switch r {
	case RCov:
		return covCorrKernel(false), nil
	case RCorr:
		return covCorrKernel(true), nil
	default:
		return nil, errf.Type("reducer %s does not take two columns", r)
	}
}

// covCorrKernel computes covariance or correlation in a single pass per
// group, tracking the running means, the joint co-moment and each side's
// variance. Rows where either side is NA are skipped entirely. Groups
// with fewer than two paired valid values yield NA, as does a correlation
// whose denominator is exactly zero.
func covCorrKernel(corr bool) reduce2Kernel {
	return func(e *Env, x, y column.Column, gb frame.Groupby) (column.Column, error) {
		return reduceFloats(e, gb, column.Float64, func(g int) (float64, bool) {
			s, end := gb.Group(g)
			n := 0.0
			meanX, meanY := 0.0, 0.0
			co, mx, my := 0.0, 0.0, 0.0
			for i := s; i < end; i++ {
				a, oka := x.FloatAt(i)
				b, okb := y.FloatAt(i)
				if !oka || !okb {
					continue
				}
				n++
				dx := a - meanX
				dy := b - meanY
				meanX += dx / n
				meanY += dy / n
				co += dx * (b - meanY)
				mx += dx * (a - meanX)
				my += dy * (b - meanY)
			}
			if n < 2 {
				return 0, false
			}
			if corr {
				denom := math.Sqrt(mx * my)
				if denom == 0 {
					return 0, false
				}
				return co / denom, true
			}
			return co / (n - 1), true
		})
	}
}
