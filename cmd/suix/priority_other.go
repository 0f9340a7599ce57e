//go:build !windows && !linux && !darwin && !freebsd

package main

import "errors"

func setHighPriority() error {
	return errors.New("process priority is not supported on this platform")
}
