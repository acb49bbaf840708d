package shell

import (
	"os"

	"golang.org/x/sys/unix"
)

// hasControllingTerminal reports whether fd 0 is a tty. Tests drive
// smash over a piped stdin, so fg must skip the tcsetpgrp dance
// entirely in that case rather than fail.
func hasControllingTerminal() bool {
	_, err := unix.IoctlGetTermios(int(os.Stdin.Fd()), unix.TCGETS)
	return err == nil
}

// setForegroundProcessGroup gives the controlling terminal's foreground
// process group to pgid. A no-op when stdin isn't a tty.
func setForegroundProcessGroup(pgid int) error {
	if !hasControllingTerminal() {
		return nil
	}
	return unix.IoctlSetPointerInt(int(os.Stdin.Fd()), unix.TIOCSPGRP, pgid)
}
