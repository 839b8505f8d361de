/*
© 2025–present remote-shell-go contributors
ISC License
*/

package pexec

import (
	"context"
	"errors"
	"io"
	"os/exec"

	"github.com/akoQassym/remote-shell-go/internal/shellparse"
)

// ExecSingle runs a single Command, spec.md §4.2 execute_single:
//   - applies input redirection, output redirection, then error
//     redirection, in that order
//   - if a redirection cannot be opened, a diagnostic line is written
//     to whichever of stderr/errorFile has been established so far,
//     and ExecSingle returns that error without starting a process
//   - defaultStdout/defaultStderr receive the child's output when no
//     redirection applies; both must be non-nil
//   - spec.md §7: a non-zero exit by the program itself is not
//     interpreted as a pexec error and is not diagnosed here — its
//     own output already carries whatever it wrote
func ExecSingle(ctx context.Context, cmd shellparse.Command, defaultStdout, defaultStderr io.Writer) (err error) {
	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	var inReader io.Reader
	var outWriter = defaultStdout
	var errWriter = defaultStderr

	if cmd.InputFile != "" {
		var f, e = openInput(cmd.InputFile)
		if e != nil {
			_, _ = io.WriteString(errWriter, redirectionFailure(e))
			return e
		}
		closers = append(closers, f)
		inReader = f
	}

	if cmd.OutputFile != "" {
		var f, e = openOutput(cmd.OutputFile, cmd.AppendOutput)
		if e != nil {
			_, _ = io.WriteString(errWriter, redirectionFailure(e))
			return e
		}
		closers = append(closers, f)
		outWriter = f
	}

	if cmd.ErrorFile != "" {
		var f, e = openErrorFile(cmd.ErrorFile)
		if e != nil {
			_, _ = io.WriteString(errWriter, redirectionFailure(e))
			return e
		}
		closers = append(closers, f)
		errWriter = f
	}

	var execCmd = exec.CommandContext(ctx, cmd.Arguments[0], cmd.Arguments[1:]...)
	execCmd.Stdin = inReader
	execCmd.Stdout = outWriter
	execCmd.Stderr = errWriter

	if err = execCmd.Run(); err != nil && isLaunchFailure(err) {
		_, _ = io.WriteString(errWriter, redirectionFailure(err))
	}
	return
}

// isLaunchFailure reports whether err came from a failed attempt to
// locate/start the program (path-search or exec(2) failure), as
// opposed to the program itself exiting non-zero.
func isLaunchFailure(err error) (is bool) {
	var execErr *exec.Error
	return errors.As(err, &execErr)
}
