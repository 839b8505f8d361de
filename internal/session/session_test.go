/*
© 2025–present remote-shell-go contributors
ISC License
*/

package session

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/akoQassym/remote-shell-go/internal/parlog"
	"github.com/akoQassym/remote-shell-go/internal/pids"
	"github.com/akoQassym/remote-shell-go/internal/queue"
	"github.com/akoQassym/remote-shell-go/internal/task"
)

func newTestSession(t *testing.T) (client net.Conn, done chan struct{}, q *queue.Queue) {
	t.Helper()
	var server net.Conn
	client, server = net.Pipe()
	q = queue.New()
	var s = New(server, pids.NewClientID(1), q, parlog.NewLog(nil), 1024)
	done = make(chan struct{})
	go func() {
		s.Serve()
		close(done)
	}()
	return
}

func readUntilEnd(t *testing.T, conn net.Conn) string {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var sb strings.Builder
	var buf [256]byte
	for {
		var n, err = conn.Read(buf[:])
		sb.Write(buf[:n])
		if strings.Contains(sb.String(), endSentinel) || err != nil {
			break
		}
	}
	return sb.String()
}

func TestSessionInlineCommand(t *testing.T) {
	var client, done, _ = newTestSession(t)
	defer func() { <-done }()

	if _, err := client.Write([]byte("echo hi")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var got = readUntilEnd(t, client)
	if !strings.Contains(got, "hi") {
		t.Errorf("expected output to contain hi, got %q", got)
	}
	if !strings.HasSuffix(got, endSentinel) {
		t.Errorf("expected response to end with __END__, got %q", got)
	}

	if _, err := client.Write([]byte("exit")); err != nil {
		t.Fatalf("Write exit: %v", err)
	}
	<-done
}

func TestSessionParseErrorStillFramed(t *testing.T) {
	var client, done, _ = newTestSession(t)
	defer func() { <-done }()

	if _, err := client.Write([]byte("ls | | wc")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var got = readUntilEnd(t, client)
	if got != endSentinel {
		t.Errorf("expected bare __END__, got %q", got)
	}

	_ = client.Close()
}

func TestSessionManagedTaskEnqueues(t *testing.T) {
	var client, done, q = newTestSession(t)
	defer func() {
		_ = client.Close()
		<-done
	}()

	if _, err := client.Write([]byte("./demo 5")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var rec = q.Select()
	if rec.BurstTime != 5 {
		t.Errorf("expected burst time 5, got %d", rec.BurstTime)
	}
	if rec.CommandLine != "./demo 5" {
		t.Errorf("expected command line preserved, got %q", rec.CommandLine)
	}
}

// TestSessionCancellationRemovesQueuedTask is spec.md §8 testable
// property 7: after a session ends, no TaskRecord belonging to that
// client remains in the queue.
func TestSessionCancellationRemovesQueuedTask(t *testing.T) {
	var client, done, q = newTestSession(t)

	if _, err := client.Write([]byte("./demo 5")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	// give the session goroutine a chance to enqueue before disconnecting
	time.Sleep(50 * time.Millisecond)

	_ = client.Close()
	<-done

	var removed = q.RemoveWhere(func(*task.Record) bool { return true })
	if len(removed) != 0 {
		t.Errorf("expected no records left in the queue after cancellation, found %d", len(removed))
	}
}

func TestSessionCdBuiltin(t *testing.T) {
	var client, done, _ = newTestSession(t)
	defer func() {
		_ = client.Close()
		<-done
	}()

	if _, err := client.Write([]byte("cd /tmp")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var got = readUntilEnd(t, client)
	if got != endSentinel {
		t.Errorf("expected bare __END__ for successful cd, got %q", got)
	}
}
