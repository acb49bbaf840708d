package shell

import (
	"bytes"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLoop(stdin string) (*Loop, *bytes.Buffer, *bytes.Buffer) {
	s := NewDummyState()
	var stdout, stderr bytes.Buffer
	l := NewLoop(s, nil, strings.NewReader(stdin), &stdout, &stderr)
	return l, &stdout, &stderr
}

func TestLoopRunExitsOnEOF(t *testing.T) {
	l, stdout, _ := newTestLoop("")
	status := l.Run()
	assert.Equal(t, 0, status)
	assert.Contains(t, stdout.String(), l.State.Prompt)
}

func TestLoopRunExitsOnQuit(t *testing.T) {
	l, _, _ := newTestLoop("pwd\nquit\n")
	status := l.Run()
	assert.Equal(t, 0, status)
	assert.True(t, l.State.ExitRequested)
}

func TestLoopDispatchLineShortCircuitsOnFailure(t *testing.T) {
	l, _, stderr := newTestLoop("")
	l.dispatchLine("false && pwd")
	assert.Equal(t, 1, l.State.LastStatus)
	assert.Empty(t, stderr.String())
}

func TestLoopDispatchLineInvalidSyntax(t *testing.T) {
	l, _, stderr := newTestLoop("")
	l.dispatchLine("cmd &&")
	assert.Contains(t, stderr.String(), "smash error: invalid command")
}

func TestLoopRunKillShutdownTerminatesJobs(t *testing.T) {
	l, stdout, _ := newTestLoop("")
	l.State.ShutdownGrace = assertEventuallyTimeout

	cmd := spawnSleeper(t)
	job := l.State.Jobs.Add(cmd.Process.Pid, "sleep 5 &")

	l.State.ExitMode = ExitKill
	l.shutdown()

	output := stdout.String()
	assert.Contains(t, output, "Sending SIGTERM...")
	assert.Contains(t, output, "Done.")
	// the job's process has been signalled and reaped
	assert.ErrorIs(t, syscall.Kill(job.Pid, 0), syscall.ESRCH)
}
