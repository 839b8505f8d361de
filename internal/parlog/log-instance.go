/*
© 2025–present remote-shell-go contributors
ISC License
*/

// Package parlog provides logging delegating to [log.Logger.Output],
// modeled on the teacher repository's parlog/plog LogInstance.
package parlog

import (
	"log"
	"os"
	"sync/atomic"
)

// LogInstance provides logging that always prints (Log), and debug
// logging that prints only when enabled (Debug).
type LogInstance struct {
	isDebug uint32 // atomic
	output  func(calldepth int, s string) error
}

// NewLog returns a logger writing to w, or os.Stderr if w is nil.
func NewLog(w *os.File) (lg *LogInstance) {
	var writer *os.File = w
	if writer == nil {
		writer = os.Stderr
	}
	return &LogInstance{output: log.New(writer, "", 0).Output}
}

// Default is the process-wide logger used by the server.
var Default = NewLog(os.Stdout)

// Log always prints format/a, one line per invocation.
func (lg *LogInstance) Log(format string, a ...any) {
	if err := lg.output(0, sprintf(format, a...)); err != nil {
		panic(err)
	}
}

// Debug prints only if SetDebug(true) was called.
func (lg *LogInstance) Debug(format string, a ...any) {
	if atomic.LoadUint32(&lg.isDebug) == 0 {
		return
	}
	if err := lg.output(0, sprintf(format, a...)); err != nil {
		panic(err)
	}
}

// SetDebug enables or disables Debug output.
func (lg *LogInstance) SetDebug(debug bool) {
	var v uint32
	if debug {
		v = 1
	}
	atomic.StoreUint32(&lg.isDebug, v)
}

// IsThisDebug returns whether debug logging is enabled.
func (lg *LogInstance) IsThisDebug() (isDebug bool) {
	return atomic.LoadUint32(&lg.isDebug) != 0
}
