//go:build linux || darwin || freebsd

package main

import "syscall"

// niceHigh is the nice value requested by --high-priority. Values below zero
// need CAP_SYS_NICE or root; without them the call fails and the search runs
// at normal priority.
const niceHigh = -10

func setHighPriority() error {
	return syscall.Setpriority(syscall.PRIO_PROCESS, 0, niceHigh)
}
