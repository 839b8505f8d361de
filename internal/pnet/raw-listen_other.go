/*
© 2025–present remote-shell-go contributors
ISC License
*/

//go:build windows || plan9 || js || wasip1

package pnet

import (
	"net"
	"strconv"

	"github.com/akoQassym/remote-shell-go/internal/perrors"
)

// ListenBacklog falls back to the stdlib default backlog on platforms
// where golang.org/x/sys/unix does not expose raw socket syscalls; the
// requested backlog is not honored.
func ListenBacklog(port int, backlog int) (listener net.Listener, err error) {
	if listener, err = net.Listen("tcp4", ":"+strconv.Itoa(port)); err != nil {
		err = perrors.ErrorfPF("pnet.ListenBacklog", "net.Listen: %w", err)
	}
	return
}
