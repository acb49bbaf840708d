package shell

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// ExitMode distinguishes a plain quit from quit kill.
type ExitMode int

const (
	ExitNormal ExitMode = iota
	ExitKill
)

// State is all of the shell's process-lifetime state: working
// directory, last exit status, the alias and job tables, and the
// pending-shutdown flags quit sets.
type State struct {
	Cwd        string
	Oldpwd     string
	HasOldpwd  bool
	LastStatus int

	Aliases *AliasTable
	Jobs    *JobTable

	ShellPid int

	ExitRequested bool
	ExitMode      ExitMode

	Prompt        string
	ShutdownGrace time.Duration

	Log *logrus.Entry
}

// New builds a fresh shell state: cwd read from the OS, oldpwd unset,
// last_status 0, empty alias and job tables.
func New(log *logrus.Entry, prompt string, shutdownGrace time.Duration) (*State, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, WrapError(err)
	}
	return &State{
		Cwd:           cwd,
		LastStatus:    0,
		Aliases:       NewAliasTable(),
		Jobs:          NewJobTable(log),
		ShellPid:      os.Getpid(),
		Prompt:        prompt,
		ShutdownGrace: shutdownGrace,
		Log:           log,
	}, nil
}
