/*
© 2025–present remote-shell-go contributors
ISC License
*/

// Package session is the per-client receive loop of spec.md §4.5:
// parse, classify as managed task or inline command, enqueue or run,
// and handle disconnect/cancellation. Grounded on
// original_source/phase-4/server.c's handle_client_thread.
package session

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/akoQassym/remote-shell-go/internal/parlog"
	"github.com/akoQassym/remote-shell-go/internal/pexec"
	"github.com/akoQassym/remote-shell-go/internal/pids"
	"github.com/akoQassym/remote-shell-go/internal/punix"
	"github.com/akoQassym/remote-shell-go/internal/queue"
	"github.com/akoQassym/remote-shell-go/internal/shellparse"
	"github.com/akoQassym/remote-shell-go/internal/task"
)

// endSentinel is the literal byte sequence marking the end of a
// response, spec.md §6.
const endSentinel = "__END__"

// exitCommand is the literal client request that closes a session,
// spec.md §6; comparison is case-sensitive.
const exitCommand = "exit"

// Session runs one client's receive loop.
type Session struct {
	conn  net.Conn
	id    pids.ClientID
	queue *queue.Queue
	log   *parlog.LogInstance
	buf   []byte
	cwd   *cwdHandle
}

// cwdHandle coordinates the cd builtin, which spec.md §4.5 makes
// apply to "the server process itself": the underlying process
// working directory is shared by every session, so changes from one
// client are visible to all others, matching a single-server-process
// shell.
type cwdHandle struct{}

func (*cwdHandle) Chdir(dir string) error { return os.Chdir(dir) }

// New returns a Session bound to conn, identified by id.
func New(conn net.Conn, id pids.ClientID, q *queue.Queue, log *parlog.LogInstance, bufferSize int) (s *Session) {
	return &Session{
		conn:  conn,
		id:    id,
		queue: q,
		log:   log,
		buf:   make([]byte, bufferSize),
		cwd:   &cwdHandle{},
	}
}

// Serve runs the receive loop until the client disconnects or sends
// exit, then performs cancellation cleanup.
func (s *Session) Serve() {
	s.log.Log("[%d]<<< client connected", s.id.Uint32())
	defer s.cancel()
	defer func() { _ = s.conn.Close() }()

	for {
		var n, err = s.conn.Read(s.buf)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.log.Log("%s", err.Error())
			}
			s.log.Log("[%d]<<< client disconnected", s.id.Uint32())
			return
		}
		if n == 0 {
			continue
		}

		var line = strings.TrimRight(string(s.buf[:n]), "\r\n")
		if line == exitCommand {
			s.log.Log("[%d]<<< client disconnected", s.id.Uint32())
			return
		}

		if s.handleLine(line) {
			s.log.Log("[%d]<<< client disconnected", s.id.Uint32())
			return
		}
	}
}

// handleLine parses and dispatches one request, spec.md §4.5 steps 3-5.
// It reports whether the request was an exit builtin, ending the
// session.
func (s *Session) handleLine(line string) (shouldExit bool) {
	var pipeline, err = shellparse.ParseLine(line)
	if err != nil {
		s.log.Log("%s", err.Error())
		s.sendEnd()
		return
	}
	if len(pipeline) == 0 || pipeline[0].IsEmpty() {
		s.sendEnd()
		return
	}

	if len(pipeline) == 1 && isManagedProgram(pipeline[0]) {
		if !punix.Supported {
			_, _ = io.WriteString(s.conn, "managed tasks are not supported on this platform\n")
			s.sendEnd()
			return
		}
		s.enqueueManaged(line, pipeline[0])
		return
	}

	if len(pipeline) == 1 {
		if handled, exit := s.runBuiltin(pipeline[0]); handled {
			return exit
		}
	}

	s.runInline(pipeline)
	return
}

// isManagedProgram reports whether cmd names a managed task, spec.md
// §4.5 step 4: a single command whose program begins with "./".
func isManagedProgram(cmd shellparse.Command) (is bool) {
	return strings.HasPrefix(cmd.Arguments[0], "./")
}

// enqueueManaged builds and enqueues a task.Record for a managed
// program, spec.md §3/§4.5.
func (s *Session) enqueueManaged(line string, cmd shellparse.Command) {
	var burst = 1
	if len(cmd.Arguments) > 1 {
		if n, convErr := strconv.Atoi(cmd.Arguments[1]); convErr == nil && n > 0 {
			burst = n
		}
	}

	s.log.Log("(%d)--- created (%d)", s.id.Uint32(), burst)
	var rec = task.NewRecord(s.id, s.conn, line, burst)
	s.queue.Enqueue(rec)
}

// runBuiltin handles cd and exit when they appear as the sole inline
// command, spec.md §4.5 step 5. It reports whether cmd was a builtin
// and, if so, whether the session should now end.
func (s *Session) runBuiltin(cmd shellparse.Command) (handled bool, shouldExit bool) {
	switch cmd.Arguments[0] {
	case "cd":
		handled = true
		if len(cmd.Arguments) < 2 {
			_, _ = io.WriteString(s.conn, "cd: expected argument\n")
		} else if err := s.cwd.Chdir(cmd.Arguments[1]); err != nil {
			_, _ = io.WriteString(s.conn, "cd: "+err.Error()+"\n")
		}
		s.sendEnd()
	case exitCommand:
		handled, shouldExit = true, true
		s.sendEnd()
	}
	return
}

// runInline executes a single command or pipeline synchronously,
// spec.md §4.5 step 4 (otherwise branch) and §4.2.
func (s *Session) runInline(pipeline shellparse.Pipeline) {
	var cmds = []shellparse.Command(pipeline)
	var err error
	if len(cmds) == 1 {
		err = pexec.ExecSingle(context.Background(), cmds[0], s.conn, s.conn)
	} else {
		err = pexec.ExecPipeline(context.Background(), cmds, s.conn, s.conn)
	}
	if err != nil {
		s.log.Log("%s", err.Error())
	}
	s.sendEnd()
}

func (s *Session) sendEnd() {
	_, _ = io.WriteString(s.conn, endSentinel)
}

// cancel is invoked once per session on return from Serve: it removes
// every queued TaskRecord belonging to this client, killing and
// reaping any with a live child, spec.md §4.5 Cancellation.
func (s *Session) cancel() {
	var removed = s.queue.RemoveWhere(func(r *task.Record) bool { return r.ClientID == s.id })
	for _, rec := range removed {
		if rec.ChildHandle == 0 {
			continue
		}
		_ = punix.Kill(rec.ChildHandle)
		if rec.Process != nil {
			var _, waitErr = rec.Process.Wait()
			s.logReapResult(rec, waitErr)
		}
		if rec.CaptureRead != nil {
			_ = rec.CaptureRead.Close()
		}
	}
}

// logReapResult Debug-logs how a cancellation-killed child terminated,
// using pexec.ExitError to distinguish the SIGKILL this path sends from
// a user program that had already exited non-zero on its own.
func (s *Session) logReapResult(rec *task.Record, waitErr error) {
	var hasStatusCode, statusCode, signal = pexec.ExitError(waitErr)
	if !hasStatusCode {
		return
	}
	if statusCode == pexec.TerminatedBySignal {
		s.log.Debug("(%d)--- reaped pid %d: terminated by signal %s", s.id.Uint32(), rec.ChildHandle, signal)
	} else {
		s.log.Debug("(%d)--- reaped pid %d: exit status %d", s.id.Uint32(), rec.ChildHandle, statusCode)
	}
}
