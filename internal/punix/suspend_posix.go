//go:build !windows && !plan9 && !js && !wasip1

/*
© 2025–present remote-shell-go contributors
ISC License
*/

// Package punix provides POSIX process-suspension primitives
// (STOP/CONT/KILL) for the scheduler's preemption mechanism.
package punix

import (
	"github.com/akoQassym/remote-shell-go/internal/perrors"
	"golang.org/x/sys/unix"
)

// Supported is true on platforms with STOP/CONT signal support.
const Supported = true

// Stop suspends the process identified by pid by sending SIGSTOP.
//   - never called with pid == 0; spec.md §4.4 PREEMPT state
func Stop(pid int) (err error) {
	if pid == 0 {
		return
	}
	if err = unix.Kill(pid, unix.SIGSTOP); err != nil {
		err = perrors.ErrorfPF("punix.Stop", "kill SIGSTOP pid %d: %w", pid, err)
	}
	return
}

// Cont resumes a process previously suspended with [Stop] by sending
// SIGCONT.
//   - never called with pid == 0; spec.md §4.4 RESUME state
func Cont(pid int) (err error) {
	if pid == 0 {
		return
	}
	if err = unix.Kill(pid, unix.SIGCONT); err != nil {
		err = perrors.ErrorfPF("punix.Cont", "kill SIGCONT pid %d: %w", pid, err)
	}
	return
}

// Kill terminates the process identified by pid with SIGKILL, used for
// cancellation (spec.md §4.5).
func Kill(pid int) (err error) {
	if pid == 0 {
		return
	}
	if err = unix.Kill(pid, unix.SIGKILL); err != nil {
		err = perrors.ErrorfPF("punix.Kill", "kill SIGKILL pid %d: %w", pid, err)
	}
	return
}
