// Package sink renders search results: to the terminal, to key files and to
// a Sui keystore.
package sink

import (
	"errors"

	"github.com/longcipher/suix/pkg/generator"
)

// Sink consumes matches in index order. target is the number of matches the
// run was asked for, used for "i/n" style reporting.
type Sink interface {
	Put(m generator.Match, target int) error
	Close() error
}

// Multi fans every call out to all of its sinks. A failing sink does not
// prevent the others from receiving the match.
type Multi []Sink

func (ms Multi) Put(m generator.Match, target int) error {
	var errs []error
	for _, s := range ms {
		if err := s.Put(m, target); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (ms Multi) Close() error {
	var errs []error
	for _, s := range ms {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
