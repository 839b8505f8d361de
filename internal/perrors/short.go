/*
© 2025–present remote-shell-go contributors
ISC License
*/

package perrors

// Short renders err as a single-line string suitable for a log line,
// or the empty string if err is nil.
func Short(err error) (s string) {
	if err == nil {
		return
	}
	return err.Error()
}
