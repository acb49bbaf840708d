package shell

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// This file exports dummy constructors for use by tests in this package.

// NewDummyLog creates a new dummy Log for testing.
func NewDummyLog() *logrus.Entry {
	log := logrus.New()
	log.Out = io.Discard
	return log.WithField("test", "test")
}

// NewDummyState creates a new State suitable for tests: a real cwd and
// empty alias/job tables, but a throwaway prompt and short shutdown
// grace so tests don't hang.
func NewDummyState() *State {
	s, err := New(NewDummyLog(), "smash-test > ", 50*time.Millisecond)
	if err != nil {
		panic(err)
	}
	return s
}
