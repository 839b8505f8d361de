/*
© 2025–present remote-shell-go contributors
ISC License
*/

package pnet

import (
	"net"
	"testing"
	"time"

	"github.com/akoQassym/remote-shell-go/internal/parlog"
)

func TestTCPListenerAcceptAndClose(t *testing.T) {
	var listener, err = NewTCPListener(parlog.Default, 0, 5)
	if err != nil {
		t.Fatalf("NewTCPListener: %v", err)
	}

	var addr = listener.Addr().(*net.TCPAddr)

	var accepted = make(chan net.Conn, 1)
	go listener.AcceptConnections(func(conn net.Conn) {
		accepted <- conn
	})

	var conn, dialErr = net.DialTimeout("tcp4", addr.String(), time.Second)
	if dialErr != nil {
		t.Fatalf("Dial: %v", dialErr)
	}
	defer conn.Close()

	select {
	case c := <-accepted:
		defer c.Close()
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for accepted connection")
	}

	if err := listener.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// idempotent
	if err := listener.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	select {
	case <-listener.WaitClosed():
	case <-time.After(time.Second):
		t.Fatal("WaitClosed never closed")
	}
}
