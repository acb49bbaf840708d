package shell

import (
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Shared polling bounds for tests that wait on an external process to be
// reaped; background children under test are always short-lived.
const (
	assertEventuallyTimeout = 2 * time.Second
	assertEventuallyTick    = 10 * time.Millisecond
)

// spawnSleeper starts a long-lived background child for tests that need
// a live pid to signal or reap, killing it at test cleanup if it's
// still around.
func spawnSleeper(t *testing.T) *exec.Cmd {
	t.Helper()
	cmd := exec.Command("sleep", "5")
	PrepareBackground(cmd)
	assert.NoError(t, cmd.Start())
	t.Cleanup(func() {
		_ = cmd.Process.Kill()
		_, _ = cmd.Process.Wait()
	})
	return cmd
}
