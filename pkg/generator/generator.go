// Package generator defines the contract between the vanity search backends
// and their callers: the job description, the records a search produces and
// the errors it can end with.
package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/longcipher/suix/pkg/generator/pattern"
	"github.com/longcipher/suix/pkg/generator/sui"
)

// DefaultBatchSize is the number of addresses a worker derives between two
// looks at the shared stop flag.
const DefaultBatchSize = 10000

// MaxTarget bounds the number of matches of one run. Result slots are
// allocated up front.
const MaxTarget = 1 << 20

var (
	// ErrCancelled is returned when the caller cancelled the run before the
	// target was reached. The matches found so far are returned with it.
	ErrCancelled = errors.New("search cancelled")

	// ErrIncomplete is returned when every worker exited abnormally without
	// the target being reached.
	ErrIncomplete = errors.New("search incomplete: all workers exited")
)

// ConfigError reports an invalid job. It is returned before any worker starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// KeyDerivationError reports a failure of the random source. It aborts the run.
type KeyDerivationError struct {
	Err error
}

func (e *KeyDerivationError) Error() string {
	return "key derivation failed: " + e.Err.Error()
}

func (e *KeyDerivationError) Unwrap() error { return e.Err }

// Job holds the configuration for one vanity search. It is not modified by a run.
type Job struct {
	Prefix    *pattern.Pattern // optional, RolePrefix
	Suffix    *pattern.Pattern // optional, RoleSuffix
	Threads   int              // number of concurrent workers
	Target    int              // number of matches to find
	BatchSize int              // addresses per worker round
	Scheme    sui.Scheme
	Mnemonic  bool // derive every key from a fresh BIP-39 phrase
}

// Validate checks the job and returns a *ConfigError describing the first problem.
func (j *Job) Validate() error {
	switch {
	case j.Threads <= 0:
		return &ConfigError{Field: "threads", Reason: "must be greater than zero"}
	case j.Target <= 0:
		return &ConfigError{Field: "count", Reason: "must be greater than zero"}
	case j.Target > MaxTarget:
		return &ConfigError{Field: "count", Reason: fmt.Sprintf("must not exceed %d", MaxTarget)}
	case j.BatchSize <= 0:
		return &ConfigError{Field: "addresses per round", Reason: "must be greater than zero"}
	case j.Prefix == nil && j.Suffix == nil:
		return &ConfigError{Field: "pattern", Reason: "at least one of prefix or suffix is required"}
	case !j.Scheme.Valid():
		return &ConfigError{Field: "scheme", Reason: fmt.Sprintf("unknown flag 0x%02x", byte(j.Scheme))}
	case j.Mnemonic && !sui.SupportsMnemonic(j.Scheme):
		return &ConfigError{Field: "mnemonic", Reason: "not supported for " + j.Scheme.String()}
	}
	if j.Prefix != nil && j.Prefix.Role() != pattern.RolePrefix {
		return &ConfigError{Field: "prefix", Reason: "pattern compiled as " + j.Prefix.Role().String()}
	}
	if j.Suffix != nil && j.Suffix.Role() != pattern.RoleSuffix {
		return &ConfigError{Field: "suffix", Reason: "pattern compiled as " + j.Suffix.Role().String()}
	}
	return nil
}

// Matcher builds the combined matcher for the job's constraints.
func (j *Job) Matcher() *pattern.Matcher {
	return pattern.NewMatcher(j.Prefix, j.Suffix)
}

// Match is a discovered address together with the key that produces it.
type Match struct {
	Index   int // 0-based claim order
	Address sui.Address
	Key     *sui.KeyPair
}

// Stats holds real-time performance statistics.
type Stats struct {
	Attempts    uint64  // Total number of addresses generated
	Found       int     // Matches claimed so far
	HashRate    float64 // Addresses per second
	ElapsedSecs float64 // Time elapsed since start
}

// Searcher defines the contract for vanity search backends.
type Searcher interface {
	// Run searches until job.Target matches are found, the context is
	// cancelled, or the search fails. Matches are returned in Index order,
	// also alongside a non-nil error.
	Run(ctx context.Context, job *Job) ([]Match, error)

	// Stats returns the current performance statistics.
	// This method is safe to call concurrently from any goroutine.
	Stats() Stats

	// Name returns the implementation name.
	Name() string
}
