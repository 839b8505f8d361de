/*
© 2025–present remote-shell-go contributors
ISC License
*/

// Command remoteshelld is the remote shell server of spec.md §6:
// it binds a TCP listener, starts the scheduler, and accepts one
// session per client connection. Grounded on
// original_source/phase-4/server.c's main.
package main

import (
	"net"
	"os"

	"github.com/akoQassym/remote-shell-go/internal/config"
	"github.com/akoQassym/remote-shell-go/internal/parlog"
	"github.com/akoQassym/remote-shell-go/internal/pids"
	"github.com/akoQassym/remote-shell-go/internal/pnet"
	"github.com/akoQassym/remote-shell-go/internal/queue"
	"github.com/akoQassym/remote-shell-go/internal/scheduler"
	"github.com/akoQassym/remote-shell-go/internal/session"
)

func main() {
	var log = parlog.Default

	var cfg, err = config.Load()
	if err != nil {
		log.Log("%s", err.Error())
		os.Exit(1)
	}

	var q = queue.New()
	var sched = scheduler.New(q, log, cfg)
	go sched.Run()

	var listener *pnet.TCPListener
	if listener, err = pnet.NewTCPListener(log, cfg.Port, cfg.Backlog); err != nil {
		log.Log("%s", err.Error())
		os.Exit(1)
	}

	var counter pids.Counter
	log.Log("listening on port %d", cfg.Port)
	listener.AcceptConnections(func(conn net.Conn) {
		var id = counter.Next()
		session.New(conn, id, q, log, cfg.BufferSize).Serve()
	})
}
