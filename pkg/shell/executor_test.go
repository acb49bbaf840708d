package shell

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecuteBuiltin(t *testing.T) {
	s := NewDummyState()
	var stdout, stderr bytes.Buffer

	status := Execute(s, Command{Argv: []string{"pwd"}}, "pwd", &stdout, &stderr)
	assert.Equal(t, 0, status)
	assert.Equal(t, s.Cwd+"\n", stdout.String())
	assert.Empty(t, stderr.String())
	assert.Equal(t, 0, s.LastStatus)
}

func TestExecuteBuiltinFailureWritesPrefixedError(t *testing.T) {
	s := NewDummyState()
	var stdout, stderr bytes.Buffer

	status := Execute(s, Command{Argv: []string{"cd", "/does/not/exist"}}, "cd /does/not/exist", &stdout, &stderr)
	assert.Equal(t, 1, status)
	assert.Contains(t, stderr.String(), "smash error: cd:")
	assert.Equal(t, 1, s.LastStatus)
}

func TestExecuteExternalCommand(t *testing.T) {
	s := NewDummyState()
	var stdout, stderr bytes.Buffer

	status := Execute(s, Command{Argv: []string{"true"}}, "true", &stdout, &stderr)
	assert.Equal(t, 0, status)
}

func TestExecuteExternalCommandNonzeroExit(t *testing.T) {
	s := NewDummyState()
	var stdout, stderr bytes.Buffer

	status := Execute(s, Command{Argv: []string{"false"}}, "false", &stdout, &stderr)
	assert.Equal(t, 1, status)
}

func TestExecuteMissingProgram(t *testing.T) {
	s := NewDummyState()
	var stdout, stderr bytes.Buffer

	status := Execute(s, Command{Argv: []string{"no-such-program-exists"}}, "no-such-program-exists", &stdout, &stderr)
	assert.Equal(t, 1, status)
	assert.Contains(t, stderr.String(), "smash error: external: cannot find program")
}

func TestExecuteBackgroundCommandRegistersJob(t *testing.T) {
	s := NewDummyState()
	var stdout, stderr bytes.Buffer

	status := Execute(s, Command{Argv: []string{"sleep", "1"}, Background: true}, "sleep 1 &", &stdout, &stderr)
	assert.Equal(t, 0, status)

	entries := s.Jobs.Entries()
	assert.Len(t, entries, 1)
	assert.Equal(t, "sleep 1 &", entries[0].CommandText)

	_ = s.Jobs.Signal(entries[0], 9)
	assert.Eventually(t, func() bool {
		s.Jobs.ReapFinished()
		_, ok := s.Jobs.Get(entries[0].ID)
		return !ok
	}, assertEventuallyTimeout, assertEventuallyTick)
}

func TestExecuteEmptyArgvIsNoOp(t *testing.T) {
	s := NewDummyState()
	s.LastStatus = 7
	var stdout, stderr bytes.Buffer

	status := Execute(s, Command{Argv: nil}, "", &stdout, &stderr)
	assert.Equal(t, 7, status)
}

func TestExecuteExpandsAlias(t *testing.T) {
	s := NewDummyState()
	s.Aliases.Set("p", "pwd")
	var stdout, stderr bytes.Buffer

	status := Execute(s, Command{Argv: []string{"p"}}, "p", &stdout, &stderr)
	assert.Equal(t, 0, status)
	assert.Equal(t, s.Cwd+"\n", stdout.String())
}
