//go:build windows || plan9 || js || wasip1

/*
© 2025–present remote-shell-go contributors
ISC License
*/

package punix

import "errors"

// Supported is false on platforms without STOP/CONT signal support.
// Per spec.md §9, such platforms must decline managed tasks rather than
// emulate preemption.
const Supported = false

// ErrUnsupported is returned by Stop and Cont on platforms without
// STOP/CONT support.
var ErrUnsupported = errors.New("punix: process suspension not supported on this platform")

func Stop(pid int) (err error) { return ErrUnsupported }

func Cont(pid int) (err error) { return ErrUnsupported }

func Kill(pid int) (err error) {
	return ErrUnsupported
}
