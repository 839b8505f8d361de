/*
© 2025–present remote-shell-go contributors
ISC License
*/

package shellparse

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// tokenize splits fragment into whitespace-delimited tokens, honoring
// single and double quoting with quote-character stripping, per
// spec.md §4.1.
//   - the primary path is [shellquote.Split], matching the behavior of
//     common shell tokenizers
//   - unlike a real shell, spec.md §4.1 requires that an unterminated
//     quote extend silently to end of string rather than fail the
//     parse; [shellquote.Split] instead returns an error in that case,
//     so on error this falls back to [tokenizeLenient]
func tokenize(fragment string) (tokens []string) {
	var err error
	if tokens, err = shellquote.Split(fragment); err == nil {
		return
	}
	return tokenizeLenient(fragment)
}

// tokenizeLenient implements the fragment-tokenization grammar of
// spec.md §4.1 directly, grounded on
// original_source/phase-4/parser.c's parse_single_argument: a quote
// opens a literal run terminated by the matching quote; the quote
// characters are not emitted; an unterminated quote extends to end of
// string.
func tokenizeLenient(fragment string) (tokens []string) {
	var b strings.Builder
	var inQuotes bool
	var quoteChar byte
	var haveToken bool
	for i := 0; i < len(fragment); i++ {
		c := fragment[i]
		switch {
		case inQuotes:
			if c == quoteChar {
				inQuotes = false
			} else {
				b.WriteByte(c)
			}
		case c == '\'' || c == '"':
			inQuotes = true
			quoteChar = c
			haveToken = true
		case c == ' ' || c == '\t':
			if haveToken {
				tokens = append(tokens, b.String())
				b.Reset()
				haveToken = false
			}
		default:
			b.WriteByte(c)
			haveToken = true
		}
	}
	if haveToken {
		tokens = append(tokens, b.String())
	}
	return
}
