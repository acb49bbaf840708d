package shell

import (
	"github.com/fatih/color"
	"github.com/go-errors/errors"
)

// WrapError wraps an internal (syscall-class) error for the sake of a
// stack trace at the top level. go-errors doesn't return nil when asked
// to wrap a non-error, so we guard that here.
func WrapError(err error) error {
	if err == nil {
		return err
	}
	return errors.Wrap(err, 0)
}

var errorColor = color.New(color.FgRed)

// colorizeErrorPrefix highlights the "smash error:" lead-in red when
// stderr is a terminal. color.Color auto-detects non-tty output (the
// pipes the test harness uses) and falls back to a plain string, so the
// exact error text the harness matches on is never touched.
func colorizeErrorPrefix(s string) string {
	return errorColor.Sprint(s)
}
