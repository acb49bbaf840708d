package shell

import (
	"os/exec"
	"sort"
	"syscall"

	"github.com/jesseduffield/kill"
	"github.com/sirupsen/logrus"
)

// JobState is whether a tracked job is running or has been stopped by a
// signal (e.g. SIGTSTP delivered to its process group).
type JobState int

const (
	JobRunning JobState = iota
	JobStopped
)

// Job is one live background child the shell is tracking.
type Job struct {
	ID          int
	Pid         int
	CommandText string
	State       JobState
}

// JobTable owns the set of live background children. It assigns each new
// job the smallest non-negative id not currently in use, and recycles ids
// as jobs are removed.
type JobTable struct {
	jobs map[int]*Job
	log  *logrus.Entry
}

// NewJobTable returns an empty job table.
func NewJobTable(log *logrus.Entry) *JobTable {
	return &JobTable{jobs: map[int]*Job{}, log: log}
}

// nextID returns the smallest non-negative integer not in use by a live
// job.
func (t *JobTable) nextID() int {
	for id := 0; ; id++ {
		if _, taken := t.jobs[id]; !taken {
			return id
		}
	}
}

// PrepareBackground configures cmd so it can later be killed as a whole
// process group, the same way a shell gives a background child its own
// process group so signals to it don't also hit the shell.
func PrepareBackground(cmd *exec.Cmd) {
	kill.PrepareForChildren(cmd)
}

// Add registers a newly spawned background child and returns its job
// entry, running it under whatever id is currently free.
func (t *JobTable) Add(pid int, commandText string) *Job {
	job := &Job{ID: t.nextID(), Pid: pid, CommandText: commandText, State: JobRunning}
	t.jobs[job.ID] = job
	if t.log != nil {
		t.log.Debugf("job [%d] pid %d spawned: %s", job.ID, pid, commandText)
	}
	return job
}

// Get returns the job with the given id, if still live.
func (t *JobTable) Get(id int) (*Job, bool) {
	j, ok := t.jobs[id]
	return j, ok
}

// Remove drops a job from the table without waiting on it; used when a
// job is foregrounded (fg removes it from the table before waiting on
// it) or after it has already been reaped.
func (t *JobTable) Remove(id int) (*Job, bool) {
	j, ok := t.jobs[id]
	if ok {
		delete(t.jobs, id)
	}
	return j, ok
}

// MaxID returns the largest job id currently live, and false if the
// table is empty.
func (t *JobTable) MaxID() (int, bool) {
	max, found := 0, false
	for id := range t.jobs {
		if !found || id > max {
			max = id
			found = true
		}
	}
	return max, found
}

// Entries returns all live jobs ordered by ascending job id.
func (t *JobTable) Entries() []*Job {
	out := make([]*Job, 0, len(t.jobs))
	for _, j := range t.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out
}

// ReapFinished performs a non-blocking wait over every tracked pid and
// removes jobs whose process has exited or was killed by a signal. It's
// called opportunistically between dispatches and at the entry to the
// jobs builtin, so the table never shows dead entries for long.
func (t *JobTable) ReapFinished() {
	for id, j := range t.jobs {
		var status syscall.WaitStatus
		pid, err := syscall.Wait4(j.Pid, &status, syscall.WNOHANG, nil)
		if err != nil || pid == 0 {
			continue
		}
		if status.Exited() || status.Signaled() {
			delete(t.jobs, id)
			if t.log != nil {
				t.log.Debugf("job [%d] pid %d reaped", id, j.Pid)
			}
		}
	}
}

// Signal sends signum to the job's process group.
func (t *JobTable) Signal(j *Job, signum int) error {
	err := syscall.Kill(-j.Pid, syscall.Signal(signum))
	if t.log != nil {
		if err != nil {
			t.log.Warnf("signal %d to job [%d] pid %d failed: %v", signum, j.ID, j.Pid, err)
		} else {
			t.log.Debugf("signal %d sent to job [%d] pid %d", signum, j.ID, j.Pid)
		}
	}
	return err
}
