package expr

import (
	"github.com/vegasq/framecat/column"
)

// Element-wise output builders shared by the operator kernels. The output
// buffers are pre-sized and every worker writes its own disjoint index
// range, so the parallel write phase needs no locking. On error the
// partially filled buffers are discarded, never exposed.

func compactValid(valid []bool) []bool {
	for _, v := range valid {
		if !v {
			return valid
		}
	}
	return nil
}

func mapToInts(e *Env, n int, out column.SType, get func(i int) (int64, bool)) (column.Column, error) {
	data := make([]int64, n)
	valid := make([]bool, n)
	err := e.pool().Run(n, func(s, end int) error {
		for i := s; i < end; i++ {
			data[i], valid[i] = get(i)
		}
		return nil
	})
	if err != nil {
		return column.Column{}, err
	}
	return column.IntsAs(out, data, compactValid(valid)), nil
}

func mapToFloats(e *Env, n int, out column.SType, get func(i int) (float64, bool)) (column.Column, error) {
	data := make([]float64, n)
	valid := make([]bool, n)
	err := e.pool().Run(n, func(s, end int) error {
		for i := s; i < end; i++ {
			data[i], valid[i] = get(i)
		}
		return nil
	})
	if err != nil {
		return column.Column{}, err
	}
	return column.FloatsAs(out, data, compactValid(valid)), nil
}

func mapToBools(e *Env, n int, get func(i int) (bool, bool)) (column.Column, error) {
	data := make([]bool, n)
	valid := make([]bool, n)
	err := e.pool().Run(n, func(s, end int) error {
		for i := s; i < end; i++ {
			data[i], valid[i] = get(i)
		}
		return nil
	})
	if err != nil {
		return column.Column{}, err
	}
	return column.BoolsNA(data, compactValid(valid)), nil
}

func mapToStrs(e *Env, n int, get func(i int) (string, bool)) (column.Column, error) {
	data := make([]string, n)
	valid := make([]bool, n)
	err := e.pool().Run(n, func(s, end int) error {
		for i := s; i < end; i++ {
			data[i], valid[i] = get(i)
		}
		return nil
	})
	if err != nil {
		return column.Column{}, err
	}
	return column.StrsNA(data, compactValid(valid)), nil
}
