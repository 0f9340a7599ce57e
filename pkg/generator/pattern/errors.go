package pattern

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrInvalidHex   = errors.New("invalid hex pattern")
	ErrInvalidRegex = errors.New("invalid regex pattern")
)

// PatternError reports a pattern that could not be compiled.
// Err wraps either ErrInvalidHex or ErrInvalidRegex.
type PatternError struct {
	Pattern string
	Role    Role
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%s pattern %q: %v", e.Role, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

func invalidHex(raw string, role Role, reason string) error {
	return &PatternError{Pattern: raw, Role: role, Err: fmt.Errorf("%w: %s", ErrInvalidHex, reason)}
}

func invalidRegex(raw string, role Role, cause error) error {
	return &PatternError{Pattern: raw, Role: role, Err: fmt.Errorf("%w: %v", ErrInvalidRegex, cause)}
}
