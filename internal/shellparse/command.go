/*
© 2025–present remote-shell-go contributors
ISC License
*/

// Package shellparse implements the request-line parser described in
// spec.md §4.1: pipeline splitting, per-command tokenization with
// quoting, and redirection-token scanning.
package shellparse

// Command is an ordered sequence of argument strings plus optional
// redirections, spec.md §3.
//   - Arguments is non-empty for a successfully parsed Command
//   - redirection filenames, when present, are non-empty
type Command struct {
	// Arguments[0] is the program; Arguments[1:] are its arguments
	Arguments []string
	// InputFile is the "<" redirection target, or "" if absent
	InputFile string
	// OutputFile is the ">" or ">>" redirection target, or "" if absent
	OutputFile string
	// ErrorFile is the "2>" redirection target, or "" if absent
	ErrorFile string
	// AppendOutput is true if OutputFile was set via ">>"
	AppendOutput bool
}

// IsEmpty returns true for the zero-value Command produced by a parse
// error, per spec.md §4.1: "the resulting Command has an empty argument
// list and the session handler must not execute it".
func (c *Command) IsEmpty() (isEmpty bool) { return len(c.Arguments) == 0 }

// Pipeline is an ordered sequence of 1..3 Commands, spec.md §3.
type Pipeline []Command
