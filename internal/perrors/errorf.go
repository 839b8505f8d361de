/*
© 2025–present remote-shell-go contributors
ISC License
*/

// Package perrors provides lightweight error-wrapping helpers used
// throughout the server.
package perrors

import "fmt"

// Errorf is similar to [fmt.Errorf]. It exists so that call sites read
// uniformly with [ErrorfPF] and so the wrapping behavior can be
// centralized in one place.
func Errorf(format string, a ...any) (err error) {
	return fmt.Errorf(format, a...)
}

// ErrorfPF is similar to [fmt.Errorf] but prepends the message with
// pack, the caller-supplied package/function tag.
//   - pack is typically a literal like "scheduler.run" so that error
//     messages are traceable to their origin without a captured stack
//   - format may contain %w to wrap an underlying error
func ErrorfPF(pack string, format string, a ...any) (err error) {
	return fmt.Errorf(pack+"\x20"+format, a...)
}
