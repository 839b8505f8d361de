/*
© 2025–present remote-shell-go contributors
ISC License
*/

package pids

import "sync/atomic"

// Counter is a thread-safe monotonic generator of [ClientID] values,
// the one process-wide client_counter described in spec.md §3.
//   - the zero value is ready to use
//   - the first id returned by [Counter.Next] is 1, so the zero
//     [ClientID] never refers to a real session
type Counter struct {
	n atomic.Uint32
}

// Next returns the next unused client id. Thread-safe.
func (c *Counter) Next() (id ClientID) { return ClientID(c.n.Add(1)) }
