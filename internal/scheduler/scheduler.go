/*
© 2025–present remote-shell-go contributors
ISC License
*/

// Package scheduler is the single worker of spec.md §4.4: it
// repeatedly selects a task from the queue, runs it for a quantum,
// then preempts or retires it, using POSIX STOP/CONT to multiplex
// long-running client programs onto one worker. Grounded on
// original_source/phase-4/scheduler.c's scheduler_thread/execute_task.
package scheduler

import (
	"os"
	"os/exec"
	"time"

	"github.com/akoQassym/remote-shell-go/internal/config"
	"github.com/akoQassym/remote-shell-go/internal/parlog"
	"github.com/akoQassym/remote-shell-go/internal/perrors"
	"github.com/akoQassym/remote-shell-go/internal/pexec"
	"github.com/akoQassym/remote-shell-go/internal/punix"
	"github.com/akoQassym/remote-shell-go/internal/queue"
	"github.com/akoQassym/remote-shell-go/internal/task"
)

// tickInterval is the unit of the burst budget: one wall-clock second
// per decrement of RemainingTime, spec.md §4.4.
const tickInterval = time.Second

// readWindow is how long a tick's non-blocking drain waits for data
// before giving up, leaving the remainder of tickInterval as margin.
const readWindow = 900 * time.Millisecond

// Scheduler runs the RR/SJF dispatch loop over a queue.Queue.
// Exactly one Scheduler runs process-wide.
type Scheduler struct {
	queue *queue.Queue
	log   *parlog.LogInstance
	cfg   config.Config
}

// New returns a Scheduler dispatching over q.
func New(q *queue.Queue, log *parlog.LogInstance, cfg config.Config) (s *Scheduler) {
	return &Scheduler{queue: q, log: log, cfg: cfg}
}

// Run is the scheduler thread: select, run, forever. Callers normally
// invoke it in its own goroutine for the lifetime of the server.
func (s *Scheduler) Run() {
	for {
		var t = s.queue.Select()
		s.run(t)
	}
}

// run executes the SPAWN/RESUME → RUN → PREEMPT/RETIRE state machine
// of spec.md §4.4 for one dispatch of t.
func (s *Scheduler) run(t *task.Record) {
	var quantum time.Duration
	if t.IsFirstRound() {
		quantum = s.cfg.ShortQuantum
	} else {
		quantum = s.cfg.LongQuantum
	}

	if t.ChildHandle == 0 {
		if !s.spawn(t) {
			return // spawn failure already retired the task
		}
	} else {
		s.resume(t)
	}

	var elapsed time.Duration
	var buf = make([]byte, s.cfg.BufferSize)
	for elapsed < quantum && t.RemainingTime > 0 {
		var tickStart = time.Now()
		if !s.drain(t, buf) {
			return // client sink failed; task already cancelled
		}
		t.RemainingTime--
		elapsed += tickInterval
		if sleepFor := tickInterval - time.Since(tickStart); sleepFor > 0 {
			time.Sleep(sleepFor)
		}
	}

	if t.RemainingTime > 0 {
		s.preempt(t)
	} else {
		s.retire(t, buf)
	}
}

// spawn forks "/bin/sh -c" t.CommandLine with stdout+stderr joined
// into a capture pipe, spec.md §4.4 SPAWN. It returns false if the
// spawn itself failed, in which case t has already been retired.
func (s *Scheduler) spawn(t *task.Record) (ok bool) {
	var readEnd, writeEnd, pipeErr = os.Pipe()
	if pipeErr != nil {
		s.log.Log("%s", perrors.ErrorfPF("scheduler.spawn", "pipe: %w", pipeErr))
		s.retireFailed(t)
		return false
	}

	var cmd = exec.Command("/bin/sh", "-c", t.CommandLine)
	cmd.Stdout = writeEnd
	cmd.Stderr = writeEnd

	if err := cmd.Start(); err != nil {
		_ = readEnd.Close()
		_ = writeEnd.Close()
		s.log.Log("%s", perrors.ErrorfPF("scheduler.spawn", "start: %w", err))
		s.retireFailed(t)
		return false
	}
	_ = writeEnd.Close() // parent keeps only the read end

	t.ChildHandle = cmd.Process.Pid
	t.Process = cmd.Process
	t.CaptureRead = readEnd

	s.log.Debug("(%d)--- spawned pid %d", t.ClientID.Uint32(), t.ChildHandle)
	s.log.Log("(%d)--- started (%d)", t.ClientID.Uint32(), t.BurstTime)
	s.log.Log("(%d)--- running (%d)", t.ClientID.Uint32(), t.RemainingTime)
	return true
}

// resume sends CONT to a previously stopped child, spec.md §4.4 RESUME.
func (s *Scheduler) resume(t *task.Record) {
	if err := punix.Cont(t.ChildHandle); err != nil {
		s.log.Log("%s", perrors.ErrorfPF("scheduler.resume", "CONT pid %d: %w", t.ChildHandle, err))
	}
	s.log.Debug("(%d)--- resumed pid %d, round %d", t.ClientID.Uint32(), t.ChildHandle, t.RoundCount)
	s.log.Log("(%d)--- running (%d)", t.ClientID.Uint32(), t.RemainingTime)
}

// drain performs one tick's non-blocking read of t's capture pipe,
// forwarding any bytes to the client sink. A send failure is treated
// as implicit cancellation (spec.md §7, §9 Open Question); drain
// reports false in that case, signalling run to stop early.
func (s *Scheduler) drain(t *task.Record, buf []byte) (ok bool) {
	var deadline = time.Now().Add(readWindow)
	_ = t.CaptureRead.SetReadDeadline(deadline)
	var read int
	for {
		var n, err = t.CaptureRead.Read(buf)
		if n > 0 {
			read += n
			if _, writeErr := t.ClientSink.Write(buf[:n]); writeErr != nil {
				s.log.Debug("(%d)--- tick read %d bytes, client sink write failed: %s", t.ClientID.Uint32(), read, writeErr.Error())
				s.cancelOnSendFailure(t)
				return false
			}
			t.BytesSent += int64(n)
		}
		if err != nil {
			s.log.Debug("(%d)--- tick read %d bytes: %s", t.ClientID.Uint32(), read, err.Error())
			return true // deadline exceeded, EOF, or closed
		}
	}
}

// cancelOnSendFailure kills and reaps t's child immediately; the task
// is not retired normally since the client sink is gone.
func (s *Scheduler) cancelOnSendFailure(t *task.Record) {
	s.log.Debug("(%d)--- cancel pid %d: client sink write failed", t.ClientID.Uint32(), t.ChildHandle)
	_ = punix.Kill(t.ChildHandle)
	if t.Process != nil {
		var _, waitErr = t.Process.Wait()
		s.logReapResult(t, waitErr)
	}
	_ = t.CaptureRead.Close()
	t.ChildHandle = 0
	t.Process = nil
}

// logReapResult Debug-logs how a reaped child terminated, using
// pexec.ExitError to distinguish the SIGKILL this package sends during
// cancellation from a user program that merely returned non-zero.
func (s *Scheduler) logReapResult(t *task.Record, waitErr error) {
	var hasStatusCode, statusCode, signal = pexec.ExitError(waitErr)
	if !hasStatusCode {
		return
	}
	if statusCode == pexec.TerminatedBySignal {
		s.log.Debug("(%d)--- reaped: terminated by signal %s", t.ClientID.Uint32(), signal)
	} else {
		s.log.Debug("(%d)--- reaped: exit status %d", t.ClientID.Uint32(), statusCode)
	}
}

// preempt stops the child, advances the round, and re-enqueues t,
// spec.md §4.4 PREEMPT.
func (s *Scheduler) preempt(t *task.Record) {
	if err := punix.Stop(t.ChildHandle); err != nil {
		s.log.Log("%s", perrors.ErrorfPF("scheduler.preempt", "STOP pid %d: %w", t.ChildHandle, err))
	}
	t.RoundCount++
	s.log.Log("(%d)--- waiting (%d)", t.ClientID.Uint32(), t.RemainingTime)
	s.queue.Enqueue(t)
}

// retire drains remaining output, reports completion, and reaps the
// child, spec.md §4.4 RETIRE.
func (s *Scheduler) retire(t *task.Record, buf []byte) {
	// drain's last tick may have left an expired read deadline on the
	// pipe; clear it so this final drain blocks for real EOF instead of
	// failing immediately on a stale timeout.
	_ = t.CaptureRead.SetReadDeadline(time.Time{})
	for {
		var n, err = t.CaptureRead.Read(buf)
		if n > 0 {
			if _, writeErr := t.ClientSink.Write(buf[:n]); writeErr == nil {
				t.BytesSent += int64(n)
			} else {
				s.log.Debug("(%d)--- retire: client sink write failed: %s", t.ClientID.Uint32(), writeErr.Error())
				_ = punix.Kill(t.ChildHandle)
			}
		}
		if err != nil {
			break
		}
	}

	s.log.Log("[%d]<<< %d bytes sent", t.ClientID.Uint32(), t.BytesSent)
	s.log.Log("(%d)--- ended (0)", t.ClientID.Uint32())
	_, _ = t.ClientSink.Write([]byte("__END__"))

	_ = t.CaptureRead.Close()
	if t.Process != nil {
		var _, waitErr = t.Process.Wait()
		s.logReapResult(t, waitErr)
	}
	t.ChildHandle = 0
	t.Process = nil
}

// retireFailed handles a SPAWN-time failure: the task never ran, but
// the client still needs exactly one __END__, spec.md §8 property 6.
func (s *Scheduler) retireFailed(t *task.Record) {
	s.log.Log("(%d)--- ended (0)", t.ClientID.Uint32())
	_, _ = t.ClientSink.Write([]byte("__END__"))
}
