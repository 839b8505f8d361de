/*
© 2025–present remote-shell-go contributors
ISC License
*/

// Package pids provides a typed client identifier.
package pids

import "strconv"

// ClientID is a unique named type for session identifiers.
//   - ClientID implements [fmt.Stringer]
//   - the zero value is never assigned to a real session
type ClientID uint32

// NewClientID returns a client identifier based on a 32-bit integer.
func NewClientID(u32 uint32) (id ClientID) { return ClientID(u32) }

// IsValid returns whether id was ever assigned, ie. is non-zero.
func (id ClientID) IsValid() (isValid bool) { return id != 0 }

// Uint32 returns id as a 32-bit unsigned integer.
func (id ClientID) Uint32() (u32 uint32) { return uint32(id) }

func (id ClientID) String() (s string) { return strconv.FormatUint(uint64(id), 10) }
