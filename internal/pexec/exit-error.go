/*
© 2025–present remote-shell-go contributors
ISC License
*/

// Package pexec is the command executor of spec.md §4.2: it runs a
// single command or a pipeline of commands as child process(es),
// wiring redirections and pipes.
package pexec

import (
	"errors"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// TerminatedBySignal is the status code reported for a process
// terminated by signal, matching [os/exec.ExitError.ExitCode].
const TerminatedBySignal = -1

// ExitError returns information on why a process governed by
// [exec.Cmd.Run] or [exec.Cmd.Wait] terminated.
//   - hasStatusCode is false if err is not an [exec.ExitError], ie. the
//     process never started
//   - if statusCode is [TerminatedBySignal], signal identifies the
//     terminating signal
func ExitError(err error) (hasStatusCode bool, statusCode int, signal unix.Signal) {
	var exitErr *exec.ExitError
	if hasStatusCode = errors.As(err, &exitErr); !hasStatusCode {
		return
	}
	if statusCode = exitErr.ExitCode(); statusCode != TerminatedBySignal {
		return
	}
	if waitStatus, ok := exitErr.ProcessState.Sys().(syscall.WaitStatus); ok {
		signal = unix.Signal(waitStatus.Signal())
	}
	return
}
