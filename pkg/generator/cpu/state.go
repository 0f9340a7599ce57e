package cpu

import (
	"sync"
	"sync/atomic"

	"github.com/longcipher/suix/pkg/generator"
)

// searchState is shared by the workers of a single run.
// All hot-path fields are atomics, so workers never take a lock.
type searchState struct {
	target   int64
	claimed  atomic.Int64
	slots    []atomic.Pointer[generator.Match]
	stop     atomic.Bool
	attempts *atomic.Uint64

	errOnce sync.Once
	err     error // first fatal error, set before stop is raised
}

func newSearchState(target int, attempts *atomic.Uint64) *searchState {
	return &searchState{
		target:   int64(target),
		slots:    make([]atomic.Pointer[generator.Match], target),
		attempts: attempts,
	}
}

// claim reserves the next free index. It returns false once the target is reached.
func (s *searchState) claim() (int, bool) {
	for {
		n := s.claimed.Load()
		if n >= s.target {
			return 0, false
		}
		if s.claimed.CompareAndSwap(n, n+1) {
			return int(n), true
		}
	}
}

// store publishes a match into its claimed slot and raises the stop flag when
// the last slot was claimed.
func (s *searchState) store(m *generator.Match) {
	s.slots[m.Index].Store(m)
	if int64(m.Index)+1 == s.target {
		s.halt()
	}
}

// halt raises the stop flag. It is never lowered again.
func (s *searchState) halt() {
	s.stop.Store(true)
}

func (s *searchState) stopped() bool {
	return s.stop.Load()
}

// fail records the first fatal error and stops the run.
func (s *searchState) fail(err error) {
	s.errOnce.Do(func() { s.err = err })
	s.halt()
}

func (s *searchState) found() int {
	return int(s.claimed.Load())
}

// matches returns the filled slots in index order. Call it only after every
// worker has exited.
func (s *searchState) matches() []generator.Match {
	out := make([]generator.Match, 0, s.found())
	for i := range s.slots {
		if m := s.slots[i].Load(); m != nil {
			out = append(out, *m)
		}
	}
	return out
}
