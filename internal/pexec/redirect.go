/*
© 2025–present remote-shell-go contributors
ISC License
*/

package pexec

import (
	"fmt"
	"os"

	"github.com/akoQassym/remote-shell-go/internal/perrors"
)

// openInput opens path for input redirection ("<"), spec.md §4.2.
func openInput(path string) (f *os.File, err error) {
	if f, err = os.Open(path); err != nil {
		err = perrors.ErrorfPF("pexec.openInput", "open %q for reading: %w", path, err)
	}
	return
}

// openOutput opens path for output redirection (">" or ">>"),
// spec.md §4.2.
func openOutput(path string, appendOutput bool) (f *os.File, err error) {
	var flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if appendOutput {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	if f, err = os.OpenFile(path, flags, 0o644); err != nil {
		err = perrors.ErrorfPF("pexec.openOutput", "open %q for writing: %w", path, err)
	}
	return
}

// openErrorFile opens path for error redirection ("2>"), spec.md §4.2:
// create with truncate, never append.
func openErrorFile(path string) (f *os.File, err error) {
	if f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644); err != nil {
		err = perrors.ErrorfPF("pexec.openErrorFile", "open %q for writing: %w", path, err)
	}
	return
}

// redirectionFailure is the diagnostic spec.md §4.2 says a child
// writes to its (possibly redirected) standard error before exiting
// with a failure status when a redirection cannot be opened.
func redirectionFailure(err error) string {
	return fmt.Sprintf("remote-shell: %s\n", err)
}
