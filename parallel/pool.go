// Package parallel provides the engine's work-distribution primitive: a
// fixed-size pool running element-wise loops with static partitioning,
// and ordered loops for grouped work where every worker writes to its own
// disjoint output range.
//
// There is no cooperative scheduling: a call blocks until all iterations
// complete, and the first error raised by any worker is returned.
// Cancellation is cooperative through a process-wide interrupt flag
// checked between chunks.
package parallel

import (
	"runtime"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/vegasq/framecat/errf"
)

// interruptChunk bounds how many iterations run between interrupt checks.
const interruptChunk = 4096

var interrupted atomic.Bool

// Interrupt requests cooperative cancellation of all running and future
// parallel loops.
func Interrupt() { interrupted.Store(true) }

// ClearInterrupt resets the interrupt flag.
func ClearInterrupt() { interrupted.Store(false) }

// Interrupted reports whether an interrupt is pending.
func Interrupted() bool { return interrupted.Load() }

// ErrInterrupted is returned by loops cancelled through Interrupt.
func ErrInterrupted() error { return errf.Value("evaluation interrupted") }

// Pool is a fixed-size worker pool. The zero value is not usable; use
// NewPool.
type Pool struct {
	workers int
	minRows int
}

// NewPool creates a pool with the given worker count; zero or negative
// means one worker per CPU.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{workers: workers, minRows: 4096}
}

// Default is the pool used when the caller does not supply one.
var Default = NewPool(0)

// Workers returns the pool's worker count.
func (p *Pool) Workers() int { return p.workers }

// SetMinRows sets the row count below which Run stays on the calling
// goroutine.
func (p *Pool) SetMinRows(n int) { p.minRows = n }

// Run executes fn over [0, n) split into per-worker ranges. fn is called
// with disjoint [start, end) sub-ranges and may run concurrently; the
// loop blocks until all ranges finish. Small inputs run inline on the
// calling goroutine. The first error cancels the remaining chunks; no
// partial output is exposed by callers on error.
func (p *Pool) Run(n int, fn func(start, end int) error) error {
	if n <= 0 {
		return nil
	}
	if n < p.minRows || p.workers == 1 {
		return runChunked(0, n, fn)
	}

	var g errgroup.Group
	per := (n + p.workers - 1) / p.workers
	for w := 0; w < p.workers; w++ {
		start := w * per
		end := start + per
		if start >= n {
			break
		}
		if end > n {
			end = n
		}
		g.Go(func() error {
			return runChunked(start, end, fn)
		})
	}
	return g.Wait()
}

// runChunked runs fn over [start, end) in interrupt-checked chunks.
func runChunked(start, end int, fn func(s, e int) error) error {
	for s := start; s < end; s += interruptChunk {
		if interrupted.Load() {
			return ErrInterrupted()
		}
		e := s + interruptChunk
		if e > end {
			e = end
		}
		if err := fn(s, e); err != nil {
			return err
		}
	}
	return nil
}

// RunOrdered executes fn once per job in [0, njobs), distributing jobs
// across workers. It is meant for grouped work where job j writes to a
// pre-sized, disjoint output range, so the write phase needs no locking
// even though jobs complete out of order.
func (p *Pool) RunOrdered(njobs int, fn func(job int) error) error {
	if njobs <= 0 {
		return nil
	}
	if njobs == 1 || p.workers == 1 {
		for j := 0; j < njobs; j++ {
			if interrupted.Load() {
				return ErrInterrupted()
			}
			if err := fn(j); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	next := atomic.NewInt64(0)
	workers := p.workers
	if workers > njobs {
		workers = njobs
	}
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				j := int(next.Inc() - 1)
				if j >= njobs {
					return nil
				}
				if interrupted.Load() {
					return ErrInterrupted()
				}
				if err := fn(j); err != nil {
					return err
				}
			}
		})
	}
	return g.Wait()
}
