package shell

import (
	"bufio"
	"fmt"
	"io"
	"syscall"
	"time"
)

// Loop is the read-parse-execute cycle driving an interactive session:
// print the prompt, read one line, dispatch its conjuncts, reap
// finished background jobs, repeat until quit or EOF.
type Loop struct {
	State   *State
	Signals *SignalHandler

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewLoop wires a State to the given I/O streams.
func NewLoop(s *State, sig *SignalHandler, stdin io.Reader, stdout, stderr io.Writer) *Loop {
	return &Loop{
		State:   s,
		Signals: sig,
		Stdin:   stdin,
		Stdout:  stdout,
		Stderr:  stderr,
	}
}

// Run drives the loop to completion and returns the process exit status:
// the shell's last_status, which is 0 after quit, quit kill, or EOF (EOF
// is handled as a plain quit). The shutdown sequence does not change it.
func (l *Loop) Run() int {
	scanner := bufio.NewScanner(l.Stdin)
	for {
		fmt.Fprint(l.Stdout, l.State.Prompt)

		if !scanner.Scan() {
			l.State.ExitRequested = true
			l.State.ExitMode = ExitNormal
			l.State.LastStatus = 0
			break
		}

		l.dispatchLine(scanner.Text())

		// Reap unconditionally when there's no signal handler to consult
		// (e.g. tests), otherwise let SIGCHLD drive the opportunistic
		// reap per spec.md §9 rather than polling every dispatch.
		if l.Signals == nil || l.Signals.ChildExited() {
			l.State.Jobs.ReapFinished()
		}

		if l.State.ExitRequested {
			break
		}
	}

	l.shutdown()
	return l.State.LastStatus
}

// dispatchLine parses one input line into conjuncts and executes them
// left to right, stopping at the first non-zero status per the && chain
// semantics.
func (l *Loop) dispatchLine(line string) {
	tokens := Tokenize(line)
	cl, err := Parse(tokens)
	if err != nil {
		fmt.Fprintf(l.Stderr, "%s invalid command\n", colorizeErrorPrefix("smash error:"))
		return
	}
	if len(cl.Conjuncts) == 0 {
		return
	}

	rawConjuncts := SplitConjuncts(line)
	for i, conj := range cl.Conjuncts {
		rawText := ""
		if i < len(rawConjuncts) {
			rawText = rawConjuncts[i]
		}

		status := Execute(l.State, conj, rawText, l.Stdout, l.Stderr)
		if status != 0 {
			break
		}
	}
}

// shutdown runs whatever quit requested: nothing extra for a plain quit,
// or the SIGTERM/grace/SIGKILL sequence over every live job for quit
// kill.
func (l *Loop) shutdown() {
	if l.State.ExitMode == ExitKill {
		l.runKillShutdown()
	}
}

// runKillShutdown walks every still-tracked job, sends SIGTERM, waits up
// to ShutdownGrace for it to exit, and escalates to SIGKILL if it
// hasn't. Output per job is one fixed-format line: the SIGTERM notice, an
// optional SIGKILL notice, then "Done.".
func (l *Loop) runKillShutdown() {
	const pollInterval = 50 * time.Millisecond

	entries := l.State.Jobs.Entries()
	if l.State.Log != nil {
		l.State.Log.Warnf("quit kill: shutting down %d live job(s)", len(entries))
	}

	for _, j := range entries {
		fmt.Fprintf(l.Stdout, "[%d] %s - Sending SIGTERM... ", j.Pid, j.CommandText)
		_ = l.State.Jobs.Signal(j, int(syscall.SIGTERM))

		if !l.waitForExit(j.Pid, l.State.ShutdownGrace, pollInterval) {
			if l.State.Log != nil {
				l.State.Log.Warnf("quit kill: job [%d] pid %d did not exit within grace period, escalating to SIGKILL", j.ID, j.Pid)
			}
			fmt.Fprint(l.Stdout, "Sending SIGKILL... ")
			_ = l.State.Jobs.Signal(j, int(syscall.SIGKILL))
			l.waitForExit(j.Pid, 0, pollInterval)
		}

		if l.State.Log != nil {
			l.State.Log.Debugf("quit kill: job [%d] pid %d terminated", j.ID, j.Pid)
		}
		fmt.Fprint(l.Stdout, "Done.\n")
	}
}

// waitForExit polls (non-blocking wait4) for pid to be reaped within
// grace, returning whether it exited in time. A grace of 0 blocks
// indefinitely, used once SIGKILL has been sent.
func (l *Loop) waitForExit(pid int, grace time.Duration, pollInterval time.Duration) bool {
	if grace <= 0 {
		var status syscall.WaitStatus
		syscall.Wait4(pid, &status, 0, nil)
		return true
	}

	deadline := time.Now().Add(grace)
	for time.Now().Before(deadline) {
		var status syscall.WaitStatus
		reaped, err := syscall.Wait4(pid, &status, syscall.WNOHANG, nil)
		if err == nil && reaped == pid {
			return true
		}
		time.Sleep(pollInterval)
	}
	return false
}
