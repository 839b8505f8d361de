/*
© 2025–present remote-shell-go contributors
ISC License
*/

package pnet

import (
	"errors"
	"net"
	"sync"
	"sync/atomic"

	"github.com/akoQassym/remote-shell-go/internal/parlog"
	"github.com/akoQassym/remote-shell-go/internal/perrors"
)

type tcpState uint32

const (
	tcpIdle tcpState = iota
	tcpListening
	tcpAccepting
	tcpClosing
	tcpClosed
)

// TCPListener accepts connections on a bound socket and dispatches
// each to a handler goroutine, spec.md §6.
//   - Close is idempotent, panic-free and awaitable
//   - AcceptConnections blocks until Close is invoked; an Accept error
//     other than the listener having been closed is logged and
//     accepting continues
//   - a panic in a connection handler is recovered and logged
type TCPListener struct {
	net.Listener

	log *parlog.LogInstance

	stateLock sync.Mutex
	state     tcpState

	connWait   sync.WaitGroup
	acceptWait sync.WaitGroup
	closeWait  chan struct{}
	closeErr   error
}

// NewTCPListener binds to all interfaces on port with the given
// accept backlog.
func NewTCPListener(log *parlog.LogInstance, port int, backlog int) (t *TCPListener, err error) {
	var listener net.Listener
	if listener, err = ListenBacklog(port, backlog); err != nil {
		return
	}
	t = &TCPListener{
		Listener:  listener,
		log:       log,
		state:     tcpListening,
		closeWait: make(chan struct{}),
	}
	return
}

// AcceptConnections blocks, handing every accepted connection to
// handler on its own goroutine, until Close is invoked.
func (t *TCPListener) AcceptConnections(handler func(net.Conn)) {
	defer t.close()
	if err := t.setAcceptState(); err != nil {
		t.log.Log("%s", perrors.Short(err))
		return
	}
	defer t.acceptWait.Done()
	defer t.connWait.Wait()

	for {
		var conn, err = t.Accept()
		if err != nil {
			var opErr *net.OpError
			if errors.As(err, &opErr) && errors.Is(opErr.Err, net.ErrClosed) {
				return
			}
			t.log.Log("%s", perrors.ErrorfPF("pnet.AcceptConnections", "Accept: %w", err).Error())
			continue
		}
		t.connWait.Add(1)
		go t.invokeHandler(conn, handler)
	}
}

func (t *TCPListener) invokeHandler(conn net.Conn, handler func(net.Conn)) {
	defer t.connWait.Done()
	defer func() {
		if r := recover(); r != nil {
			t.log.Log("%s", perrors.ErrorfPF("pnet.invokeHandler", "handler panic: %v", r).Error())
		}
	}()
	handler(conn)
}

func (t *TCPListener) setAcceptState() (err error) {
	t.stateLock.Lock()
	defer t.stateLock.Unlock()

	switch t.state {
	case tcpListening:
		t.state = tcpAccepting
		t.acceptWait.Add(1)
	case tcpAccepting:
		err = perrors.ErrorfPF("pnet.setAcceptState", "already accepting")
	case tcpClosing, tcpClosed:
		err = perrors.ErrorfPF("pnet.setAcceptState", "listener closed")
	default:
		err = perrors.ErrorfPF("pnet.setAcceptState", "listener not bound")
	}
	return
}

// WaitClosed returns a channel that closes once Close has completed.
func (t *TCPListener) WaitClosed() (closeWait chan struct{}) {
	return t.closeWait
}

func (t *TCPListener) Close() (err error) {
	return t.close()
}

func (t *TCPListener) close() (err error) {
	if tcpState(atomic.LoadUint32((*uint32)(&t.state))) == tcpClosed {
		return t.closeErr
	}
	t.stateLock.Lock()
	defer t.stateLock.Unlock()
	if t.state == tcpClosed {
		return t.closeErr
	}

	t.state = tcpClosing
	defer close(t.closeWait)
	defer func() { t.state = tcpClosed }()
	defer t.acceptWait.Wait()

	if err = t.Listener.Close(); err != nil {
		t.closeErr = perrors.ErrorfPF("pnet.Close", "Listener.Close: %w", err)
		err = t.closeErr
	}
	return
}
