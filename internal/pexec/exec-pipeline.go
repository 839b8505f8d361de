/*
© 2025–present remote-shell-go contributors
ISC License
*/

package pexec

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/akoQassym/remote-shell-go/internal/shellparse"
)

// ExecPipeline runs a pipeline of 1..3 Commands connected by pipes,
// spec.md §4.2 execute_pipeline:
//   - the first command's InputFile is applied to the pipeline head
//   - the last command's OutputFile/AppendOutput is applied to the tail
//   - only the tail command honors ErrorFile; every other command's
//     standard error is connected to defaultStderr directly
//     ("inner stderr is inherited")
//   - the pipeline is complete when every child has been reaped
func ExecPipeline(ctx context.Context, cmds []shellparse.Command, defaultStdout, defaultStderr io.Writer) (err error) {
	var n = len(cmds)
	if n == 1 {
		return ExecSingle(ctx, cmds[0], defaultStdout, defaultStderr)
	}

	var fileClosers []io.Closer
	defer func() {
		for _, c := range fileClosers {
			_ = c.Close()
		}
	}()

	var execCmds = make([]*exec.Cmd, n)
	for i, cmd := range cmds {
		execCmds[i] = exec.CommandContext(ctx, cmd.Arguments[0], cmd.Arguments[1:]...)
	}

	// head input redirection
	if head := cmds[0]; head.InputFile != "" {
		var f, e = openInput(head.InputFile)
		if e != nil {
			_, _ = io.WriteString(defaultStderr, redirectionFailure(e))
			return e
		}
		fileClosers = append(fileClosers, f)
		execCmds[0].Stdin = f
	}

	// tail output redirection
	var tailOut io.Writer = defaultStdout
	if tail := cmds[n-1]; tail.OutputFile != "" {
		var f, e = openOutput(tail.OutputFile, tail.AppendOutput)
		if e != nil {
			_, _ = io.WriteString(defaultStderr, redirectionFailure(e))
			return e
		}
		fileClosers = append(fileClosers, f)
		tailOut = f
	}
	execCmds[n-1].Stdout = tailOut

	// tail error redirection; every other command inherits defaultStderr
	for i := 0; i < n; i++ {
		if i == n-1 && cmds[n-1].ErrorFile != "" {
			var f, e = openErrorFile(cmds[n-1].ErrorFile)
			if e != nil {
				_, _ = io.WriteString(defaultStderr, redirectionFailure(e))
				return e
			}
			fileClosers = append(fileClosers, f)
			execCmds[i].Stderr = f
			continue
		}
		execCmds[i].Stderr = defaultStderr
	}

	// wire the n-1 inter-process pipes
	var pipeFiles []*os.File
	for i := 0; i < n-1; i++ {
		var r, w, e = os.Pipe()
		if e != nil {
			_, _ = io.WriteString(defaultStderr, redirectionFailure(e))
			return e
		}
		pipeFiles = append(pipeFiles, r, w)
		execCmds[i].Stdout = w
		execCmds[i+1].Stdin = r
	}
	// the parent's copies of the pipe descriptors must close once every
	// child has started, so that EOF propagates between stages;
	// closing them only after Wait would leave a write-end reference
	// open in the parent and hang the downstream reader
	defer func() {
		for _, f := range pipeFiles {
			_ = f.Close()
		}
	}()

	var started []*exec.Cmd
	for _, ec := range execCmds {
		if e := ec.Start(); e != nil {
			err = e
			break
		}
		started = append(started, ec)
	}
	if err != nil {
		for _, f := range pipeFiles {
			_ = f.Close()
		}
		pipeFiles = nil // already closed; avoid double-close in deferred cleanup
		for _, ec := range started {
			_ = ec.Process.Kill()
			_ = ec.Wait()
		}
		if isLaunchFailure(err) {
			_, _ = io.WriteString(defaultStderr, redirectionFailure(err))
		}
		return
	}

	for _, f := range pipeFiles {
		_ = f.Close()
	}
	pipeFiles = nil // already closed; avoid double-close in deferred cleanup

	for _, ec := range execCmds {
		if e := ec.Wait(); e != nil && isLaunchFailure(e) {
			_, _ = io.WriteString(defaultStderr, redirectionFailure(e))
		}
	}
	return
}
