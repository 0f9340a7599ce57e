package cpu

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/longcipher/suix/internal/log"
	"github.com/longcipher/suix/pkg/generator"
	"github.com/longcipher/suix/pkg/generator/pattern"
	"github.com/longcipher/suix/pkg/generator/sui"
)

// worker runs the derive -> match -> claim loop for one goroutine.
type worker struct {
	id        int
	state     *searchState
	deriver   *sui.Deriver
	matcher   *pattern.Matcher
	batchSize int
}

func newWorker(id int, job *generator.Job, state *searchState, matcher *pattern.Matcher, r io.Reader) (*worker, error) {
	d, err := sui.NewDeriver(job.Scheme, r, job.Mnemonic)
	if err != nil {
		return nil, err
	}
	return &worker{
		id:        id,
		state:     state,
		deriver:   d,
		matcher:   matcher,
		batchSize: job.BatchSize,
	}, nil
}

// run loops until the stop flag is raised. It reports whether the worker
// exited normally; a recovered panic returns false.
func (w *worker) run() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("worker panicked", "worker", w.id, "panic", r, "stack", string(debug.Stack()))
			ok = false
		}
	}()

	var kp sui.KeyPair
	for !w.state.stopped() {
		err := w.batch(&kp)
		if err != nil {
			w.state.fail(&generator.KeyDerivationError{Err: err})
			log.Debug("worker stopped on derivation error", "worker", w.id, "err", err)
			return true
		}
	}
	log.Trace("worker exiting", "worker", w.id)
	return true
}

// batch derives up to batchSize addresses. Attempts are published once per
// batch, including the partial batch cut short by an error.
func (w *worker) batch(kp *sui.KeyPair) error {
	var done uint64
	defer func() { w.state.attempts.Add(done) }()

	for i := 0; i < w.batchSize; i++ {
		addr, err := w.deriver.Next(kp)
		if err != nil {
			if errors.Is(err, sui.ErrRandomness) {
				return err
			}
			return fmt.Errorf("derive %s key: %w", w.deriver.Scheme(), err)
		}
		done++

		if !w.matcher.Match(addr.Bytes()) {
			continue
		}
		index, ok := w.state.claim()
		if !ok {
			// Target already reached by other workers.
			w.state.halt()
			return nil
		}
		w.state.store(&generator.Match{
			Index:   index,
			Address: addr,
			Key:     kp.Clone(),
		})
		log.Debug("match claimed", "worker", w.id, "index", index, "address", addr.String())
		if w.state.stopped() {
			return nil
		}
	}
	return nil
}
