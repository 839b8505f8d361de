/*
© 2025–present remote-shell-go contributors
ISC License
*/

//go:build !windows && !plan9 && !js && !wasip1

// Package pnet is the TCP transport of spec.md §6: a listening socket
// bound to all interfaces on a configured port, with a configured
// accept backlog, handing accepted connections to a handler goroutine.
package pnet

import (
	"net"
	"os"

	"github.com/akoQassym/remote-shell-go/internal/perrors"
	"golang.org/x/sys/unix"
)

// ListenBacklog binds an IPv4 TCP socket to 0.0.0.0:port with the
// given accept backlog and wraps it as a [net.Listener].
//
// The stdlib [net.ListenTCP] always uses the kernel's maximum backlog
// and offers no way to request a smaller one, so the socket is built
// directly with [golang.org/x/sys/unix] the way punix drives signal
// delivery: socket, bind, listen, then adopt the descriptor via
// [net.FileListener].
func ListenBacklog(port int, backlog int) (listener net.Listener, err error) {
	var fd int
	if fd, err = unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0); err != nil {
		return nil, perrors.ErrorfPF("pnet.ListenBacklog", "socket: %w", err)
	}
	defer func() {
		if err != nil {
			_ = unix.Close(fd)
		}
	}()

	if err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return nil, perrors.ErrorfPF("pnet.ListenBacklog", "setsockopt SO_REUSEADDR: %w", err)
	}

	var sockaddr = &unix.SockaddrInet4{Port: port}
	if err = unix.Bind(fd, sockaddr); err != nil {
		return nil, perrors.ErrorfPF("pnet.ListenBacklog", "bind :%d: %w", port, err)
	}
	if err = unix.Listen(fd, backlog); err != nil {
		return nil, perrors.ErrorfPF("pnet.ListenBacklog", "listen backlog %d: %w", backlog, err)
	}

	var file = os.NewFile(uintptr(fd), "remote-shell-listener")
	defer file.Close() // net.FileListener dups the descriptor

	if listener, err = net.FileListener(file); err != nil {
		return nil, perrors.ErrorfPF("pnet.ListenBacklog", "net.FileListener: %w", err)
	}
	return
}
