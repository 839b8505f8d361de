/*
© 2025–present remote-shell-go contributors
ISC License
*/

// Package task defines the value managed by the scheduler, spec.md §3
// TaskRecord, grounded on the Task struct of
// original_source/phase-4/scheduler.h.
package task

import (
	"io"
	"os"

	"github.com/akoQassym/remote-shell-go/internal/pids"
)

// Record is one client-submitted managed program.
//
// Invariants: 0 <= RemainingTime <= BurstTime; ChildHandle != 0 iff a
// child has been spawned and not yet reaped; while a Record sits in
// the queue its child, if any, is OS-stopped; while the scheduler
// services a Record it is not present in the queue.
type Record struct {
	ClientID pids.ClientID
	// ClientSink receives output bytes destined for the client.
	ClientSink io.Writer
	// CommandLine is the original request text, fed verbatim to a
	// shell at spawn time.
	CommandLine string
	// BurstTime is the declared total budget in whole seconds.
	BurstTime int
	// RemainingTime is the budget still owed.
	RemainingTime int
	// RoundCount is the number of quanta already consumed.
	RoundCount int
	// ChildHandle is the OS process id of the running child; 0 means
	// not yet started.
	ChildHandle int
	// CaptureRead is the read end of the pipe receiving the child's
	// combined stdout and stderr.
	CaptureRead *os.File
	// Process is the OS handle backing ChildHandle, kept so that
	// either the scheduler or a session's cancellation path can reap
	// it with Wait.
	Process *os.Process
	// BytesSent is the cumulative byte count forwarded to the client.
	BytesSent int64
}

// NewRecord builds a Record in its queued, not-yet-started state.
func NewRecord(clientID pids.ClientID, sink io.Writer, commandLine string, burstTime int) (r *Record) {
	return &Record{
		ClientID:      clientID,
		ClientSink:    sink,
		CommandLine:   commandLine,
		BurstTime:     burstTime,
		RemainingTime: burstTime,
	}
}

// IsFirstRound reports whether this Record has not yet consumed a
// quantum, spec.md §4.3 selection policy step 1.
func (r *Record) IsFirstRound() (is bool) {
	return r.RoundCount == 0
}
