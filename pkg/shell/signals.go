package shell

import (
	"os"
	"os/signal"
	"syscall"
)

// SignalHandler keeps the shell itself immune to job-control signals: it
// ignores SIGINT and SIGTSTP (so Ctrl-C/Ctrl-Z reach the foreground
// child instead, which gets default dispositions after fork) and
// watches for SIGCHLD so the main loop knows when to reap.
type SignalHandler struct {
	chldCh chan os.Signal
}

// InstallSignalHandler ignores SIGINT/SIGTSTP in the current process and
// begins listening for SIGCHLD.
func InstallSignalHandler() *SignalHandler {
	signal.Ignore(syscall.SIGINT, syscall.SIGTSTP)

	chldCh := make(chan os.Signal, 1)
	signal.Notify(chldCh, syscall.SIGCHLD)

	return &SignalHandler{chldCh: chldCh}
}

// ChildExited reports, without blocking, whether a SIGCHLD has arrived
// since it was last drained.
func (h *SignalHandler) ChildExited() bool {
	select {
	case <-h.chldCh:
		return true
	default:
		return false
	}
}

// resetChildSignals and restoreIgnoredSignals bracket a fork/exec so the
// brief window in between leaves SIGINT/SIGTSTP at their default
// disposition - see the comment in runExternal for why this dance is
// needed at all.
func resetChildSignals() {
	signal.Reset(syscall.SIGINT, syscall.SIGTSTP)
}

func restoreIgnoredSignals() {
	signal.Ignore(syscall.SIGINT, syscall.SIGTSTP)
}
