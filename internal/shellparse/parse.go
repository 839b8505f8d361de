/*
© 2025–present remote-shell-go contributors
ISC License
*/

package shellparse

import "strings"

// MaxPipelineSegments is the most pipeline segments ParseLine accepts;
// surplus segments are silently dropped, spec.md §4.1.
const MaxPipelineSegments = 3

// ParseLine tokenizes a client request line into a pipeline of
// Commands, spec.md §4.1.
//   - on a parse error, pipeline is nil
func ParseLine(line string) (pipeline Pipeline, err error) {
	if endsWithPipe(line) {
		err = ErrMissingCommandAfterPipe
		return
	}

	var segments = strings.Split(line, "|")
	if len(segments) > 1 {
		for _, seg := range segments {
			if strings.TrimSpace(seg) == "" {
				err = ErrEmptyPipeSegment
				return
			}
		}
	}

	if len(segments) > MaxPipelineSegments {
		segments = segments[:MaxPipelineSegments]
	}

	pipeline = make(Pipeline, 0, len(segments))
	for _, seg := range segments {
		var cmd Command
		if cmd, err = parseCommand(strings.TrimSpace(seg)); err != nil {
			pipeline = nil
			return
		}
		pipeline = append(pipeline, cmd)
	}
	return
}

// endsWithPipe returns true if line, once trailing whitespace is
// removed, ends in "|" — spec.md §4.1's MissingCommandAfterPipe case.
func endsWithPipe(line string) (does bool) {
	var trimmed = strings.TrimRight(line, " \t\r\n")
	return strings.HasSuffix(trimmed, "|")
}

// parseCommand tokenizes a single pipeline fragment and scans it for
// redirection tokens, spec.md §4.1.
//   - an empty fragment yields a zero-value Command and nil error: it
//     is the session handler's responsibility to treat an empty
//     Command as nothing-to-execute
func parseCommand(fragment string) (cmd Command, err error) {
	var tokens = tokenize(fragment)
	var args = make([]string, 0, len(tokens))

	for i := 0; i < len(tokens); i++ {
		var tok = tokens[i]
		var filename string
		var ok bool
		switch tok {
		case "2>":
			if filename, ok = nextFilename(tokens, i); !ok {
				return Command{}, ErrMissingErrorFile
			}
			i++
			cmd.ErrorFile = filename

		case ">>":
			if filename, ok = nextFilename(tokens, i); !ok {
				return Command{}, ErrMissingOutputFile
			}
			i++
			cmd.OutputFile = filename
			cmd.AppendOutput = true

		case ">":
			if filename, ok = nextFilename(tokens, i); !ok {
				return Command{}, ErrMissingOutputFile
			}
			i++
			cmd.OutputFile = filename
			cmd.AppendOutput = false

		case "<":
			if len(args) == 0 {
				return Command{}, ErrEmptyArgumentBeforeInputRedirection
			}
			if filename, ok = nextFilename(tokens, i); !ok {
				return Command{}, ErrMissingInputFile
			}
			i++
			cmd.InputFile = filename

		default:
			args = append(args, tok)
		}
	}

	cmd.Arguments = args
	return cmd, nil
}

// nextFilename returns the token immediately following position i in
// tokens, used as a redirection target.
//   - ok is false if no such token exists, ie. the redirection
//     operator was the last token, or the token is empty
func nextFilename(tokens []string, i int) (filename string, ok bool) {
	if i+1 >= len(tokens) {
		return
	}
	filename = tokens[i+1]
	ok = filename != ""
	return
}
