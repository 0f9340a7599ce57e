// Package cpu implements the vanity search on a pool of goroutines.
package cpu

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/longcipher/suix/internal/log"
	"github.com/longcipher/suix/pkg/generator"
)

// CPUGenerator implements the generator.Searcher interface using CPU-based goroutines.
type CPUGenerator struct {
	attempts  atomic.Uint64 // Atomic counter for total attempts
	startTime atomic.Int64  // Unix nanos of the current run
	endTime   atomic.Int64  // Unix nanos when the last worker exited, 0 while running
	state     atomic.Pointer[searchState]

	randSource func(worker int) io.Reader
}

// Option configures a CPUGenerator.
type Option func(*CPUGenerator)

// WithRandSource sets the random source of each worker. A nil reader, or no
// option at all, selects crypto/rand.
func WithRandSource(fn func(worker int) io.Reader) Option {
	return func(g *CPUGenerator) { g.randSource = fn }
}

// NewCPUGenerator creates a new CPU-based generator.
func NewCPUGenerator(opts ...Option) *CPUGenerator {
	g := &CPUGenerator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns the implementation name.
func (g *CPUGenerator) Name() string {
	return "CPU"
}

// Stats returns the current performance statistics.
func (g *CPUGenerator) Stats() generator.Stats {
	attempts := g.attempts.Load()

	var elapsed float64
	if start := g.startTime.Load(); start != 0 {
		end := g.endTime.Load()
		if end == 0 {
			end = time.Now().UnixNano()
		}
		elapsed = time.Duration(end - start).Seconds()
	}

	var hashRate float64
	if elapsed > 0 {
		hashRate = float64(attempts) / elapsed
	}

	var found int
	if s := g.state.Load(); s != nil {
		found = s.found()
	}

	return generator.Stats{
		Attempts:    attempts,
		Found:       found,
		HashRate:    hashRate,
		ElapsedSecs: elapsed,
	}
}

// Run searches for job.Target matching addresses. It blocks until the target
// is reached, ctx is cancelled or the search fails, and never leaves a worker
// running behind. Matches found before a failure are returned with the error.
func (g *CPUGenerator) Run(ctx context.Context, job *generator.Job) ([]generator.Match, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}

	state := newSearchState(job.Target, &g.attempts)
	matcher := job.Matcher()

	workers := make([]*worker, job.Threads)
	for i := range workers {
		var r io.Reader
		if g.randSource != nil {
			r = g.randSource(i)
		}
		w, err := newWorker(i, job, state, matcher, r)
		if err != nil {
			return nil, &generator.ConfigError{Field: "scheme", Reason: err.Error()}
		}
		workers[i] = w
	}

	g.attempts.Store(0)
	g.endTime.Store(0)
	g.startTime.Store(time.Now().UnixNano())
	g.state.Store(state)

	log.Debug("search started", "threads", job.Threads, "target", job.Target,
		"batch", job.BatchSize, "scheme", job.Scheme, "mnemonic", job.Mnemonic,
		"difficulty", matcher.Difficulty())

	// Cancellation is turned into the stop flag; workers see it at the next batch boundary.
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			state.halt()
		case <-done:
		}
	}()

	var (
		wg     sync.WaitGroup
		failed atomic.Int32
	)
	for _, w := range workers {
		wg.Add(1)
		go func(w *worker) {
			defer wg.Done()
			if !w.run() {
				failed.Add(1)
			}
		}(w)
	}
	wg.Wait()
	g.endTime.Store(time.Now().UnixNano())
	close(done)

	matches := state.matches()
	stats := g.Stats()
	log.Debug("search finished", "found", len(matches), "attempts", stats.Attempts,
		"elapsed", stats.ElapsedSecs, "crashed", failed.Load())

	switch {
	case len(matches) == job.Target:
		return matches, nil
	case state.err != nil:
		return matches, state.err
	case ctx.Err() != nil:
		return matches, generator.ErrCancelled
	default:
		return matches, generator.ErrIncomplete
	}
}

var _ generator.Searcher = (*CPUGenerator)(nil)
