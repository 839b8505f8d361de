/*
© 2025–present remote-shell-go contributors
ISC License
*/

package parlog

import "fmt"

// sprintf is like [fmt.Sprintf] but does not interpret format if a is
// empty, avoiding accidental %-verb interpretation of literal log text.
func sprintf(format string, a ...any) (s string) {
	if len(a) == 0 {
		return format
	}
	return fmt.Sprintf(format, a...)
}
