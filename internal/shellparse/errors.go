/*
© 2025–present remote-shell-go contributors
ISC License
*/

package shellparse

import "errors"

// ParseError values are the error kinds enumerated in spec.md §4.1.
var (
	// ErrEmptyPipeSegment: an empty fragment occurred between two "|"
	ErrEmptyPipeSegment = errors.New("empty command between pipes")
	// ErrMissingCommandAfterPipe: a trailing "|" with only whitespace after it
	ErrMissingCommandAfterPipe = errors.New("missing command after pipe")
	// ErrMissingInputFile: "<" with an empty or missing filename
	ErrMissingInputFile = errors.New("missing input file for redirection")
	// ErrMissingOutputFile: ">" or ">>" with an empty or missing filename
	ErrMissingOutputFile = errors.New("missing output file for redirection")
	// ErrMissingErrorFile: "2>" with an empty or missing filename
	ErrMissingErrorFile = errors.New("missing error file for redirection")
	// ErrEmptyArgumentBeforeInputRedirection: "<" encountered before any argument token
	ErrEmptyArgumentBeforeInputRedirection = errors.New("empty argument before input redirection")
)
