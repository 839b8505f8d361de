/*
© 2025–present remote-shell-go contributors
ISC License
*/

package queue

import (
	"io"
	"testing"
	"time"

	"github.com/akoQassym/remote-shell-go/internal/pids"
	"github.com/akoQassym/remote-shell-go/internal/task"
)

func newTask(id uint32, remaining int, roundCount int) *task.Record {
	var r = task.NewRecord(pids.NewClientID(id), io.Discard, "", remaining)
	r.RoundCount = roundCount
	r.RemainingTime = remaining
	return r
}

// TestSelectRRBeforeSJF is spec.md §8 Testable property 2.
func TestSelectRRBeforeSJF(t *testing.T) {
	var q = New()
	var later = newTask(1, 2, 1) // not first round
	var first = newTask(2, 10, 0)
	q.Enqueue(later)
	q.Enqueue(first)

	var selected = q.Select()
	if selected.ClientID != first.ClientID {
		t.Fatalf("expected first-round task selected, got client %v", selected.ClientID)
	}
}

// TestSelectSJFTieBreak is spec.md §8 Testable property 3.
func TestSelectSJFTieBreak(t *testing.T) {
	var q = New()
	var a = newTask(1, 5, 1)
	var b = newTask(2, 3, 1)
	var c = newTask(3, 3, 1) // arrives after b, same remaining
	q.Enqueue(a)
	q.Enqueue(b)
	q.Enqueue(c)

	var selected = q.Select()
	if selected.ClientID != b.ClientID {
		t.Fatalf("expected smallest remaining time selected first, got client %v", selected.ClientID)
	}
}

func TestEnqueueSelectFIFOAmongEqual(t *testing.T) {
	var q = New()
	var a = newTask(1, 0, 0)
	var b = newTask(2, 0, 0)
	q.Enqueue(a)
	q.Enqueue(b)

	if got := q.Select(); got.ClientID != a.ClientID {
		t.Errorf("expected a selected first, got %v", got.ClientID)
	}
}

func TestSelectBlocksUntilEnqueue(t *testing.T) {
	var q = New()
	var done = make(chan *task.Record, 1)
	go func() {
		done <- q.Select()
	}()

	select {
	case <-done:
		t.Fatal("Select returned before any Enqueue")
	case <-time.After(50 * time.Millisecond):
	}

	var a = newTask(1, 1, 0)
	q.Enqueue(a)

	select {
	case got := <-done:
		if got.ClientID != a.ClientID {
			t.Errorf("got %v want %v", got.ClientID, a.ClientID)
		}
	case <-time.After(time.Second):
		t.Fatal("Select never returned after Enqueue")
	}
}

func TestRemoveWhere(t *testing.T) {
	var q = New()
	var a = newTask(1, 1, 0)
	var b = newTask(2, 1, 0)
	var c = newTask(1, 1, 0)
	q.Enqueue(a)
	q.Enqueue(b)
	q.Enqueue(c)

	var removed = q.RemoveWhere(func(r *task.Record) bool { return r.ClientID == a.ClientID })
	if len(removed) != 2 {
		t.Fatalf("expected 2 removed, got %d", len(removed))
	}

	var remaining = q.Select()
	if remaining.ClientID != b.ClientID {
		t.Errorf("expected b to remain, got %v", remaining.ClientID)
	}
}
