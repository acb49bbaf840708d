package shell

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
)

// builtinFunc is the signature every built-in implements: given its
// arguments (argv[0] already stripped) and the command's stdout sink, it
// returns an exit status and, on failure, the canonical message text to
// report (empty string on success). Execute prefixes failures with
// "smash error: <name>: " before writing them to stderr.
type builtinFunc func(s *State, args []string, stdout io.Writer) (int, string)

var builtins = map[string]builtinFunc{
	"showpid": showpidBuiltin,
	"pwd":     pwdBuiltin,
	"cd":      cdBuiltin,
	"jobs":    jobsBuiltin,
	"kill":    killBuiltin,
	"fg":      fgBuiltin,
	"diff":    diffBuiltin,
	"alias":   aliasBuiltin,
	"unalias": unaliasBuiltin,
	"quit":    quitBuiltin,
}

// showpid prints the shell's own pid. It succeeds regardless of any
// extra arguments given.
func showpidBuiltin(s *State, args []string, stdout io.Writer) (int, string) {
	fmt.Fprintf(stdout, "smash pid is %d\n", s.ShellPid)
	return 0, ""
}

// pwd prints the shell's current directory, ignoring extra arguments the
// same way showpid does.
func pwdBuiltin(s *State, args []string, stdout io.Writer) (int, string) {
	fmt.Fprintf(stdout, "%s\n", s.Cwd)
	return 0, ""
}

// cd changes the shell's working directory. "-" means oldpwd; anything
// else is a path. A successful cd always updates oldpwd to the
// directory just left, so "cd -" is its own inverse.
func cdBuiltin(s *State, args []string, stdout io.Writer) (int, string) {
	if len(args) > 1 {
		return 1, "too many arguments"
	}
	if len(args) == 0 {
		return 1, "expected 1 argument"
	}

	target := args[0]
	if target == "-" {
		if !s.HasOldpwd {
			return 1, "old pwd not set"
		}
		target = s.Oldpwd
	}

	info, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return 1, fmt.Sprintf("%s: does not exist", args[0])
		}
		return 1, WrapError(err).Error()
	}
	if !info.IsDir() {
		return 1, fmt.Sprintf("%s: not a directory", args[0])
	}

	if err := os.Chdir(target); err != nil {
		return 1, WrapError(err).Error()
	}
	newCwd, err := os.Getwd()
	if err != nil {
		return 1, WrapError(err).Error()
	}

	s.Oldpwd = s.Cwd
	s.HasOldpwd = true
	s.Cwd = newCwd
	return 0, ""
}

// jobs reaps any finished background children, then lists what remains
// in ascending job id order.
func jobsBuiltin(s *State, args []string, stdout io.Writer) (int, string) {
	s.Jobs.ReapFinished()
	for _, j := range s.Jobs.Entries() {
		fmt.Fprintf(stdout, "[%d] %s : %d\n", j.ID, j.CommandText, j.Pid)
	}
	return 0, ""
}

// kill sends an arbitrary signal number to a tracked job's process
// group.
func killBuiltin(s *State, args []string, stdout io.Writer) (int, string) {
	if len(args) != 2 {
		return 1, "invalid arguments"
	}

	signum, errSig := strconv.Atoi(args[0])
	if errSig != nil || signum < 1 || signum > 64 {
		return 1, "invalid arguments"
	}
	jobID, errJob := strconv.Atoi(args[1])
	if errJob != nil || jobID < 0 {
		return 1, "invalid arguments"
	}

	job, ok := s.Jobs.Get(jobID)
	if !ok {
		return 1, fmt.Sprintf("job id %d does not exist", jobID)
	}

	if err := s.Jobs.Signal(job, signum); err != nil {
		return 1, WrapError(err).Error()
	}
	fmt.Fprintf(stdout, "signal number %d was sent to pid %d\n", signum, job.Pid)
	return 0, ""
}

// fg moves a background job into the foreground and blocks until it
// exits. With no argument it picks the highest job id; its return status
// is the foregrounded child's own exit/signal status, which becomes
// last_status.
func fgBuiltin(s *State, args []string, stdout io.Writer) (int, string) {
	var id int
	switch len(args) {
	case 0:
		maxID, ok := s.Jobs.MaxID()
		if !ok {
			return 1, "jobs list is empty"
		}
		id = maxID
	case 1:
		parsed, err := strconv.Atoi(args[0])
		if err != nil {
			return 1, "invalid arguments"
		}
		id = parsed
	default:
		return 1, "invalid arguments"
	}

	job, ok := s.Jobs.Get(id)
	if !ok {
		return 1, fmt.Sprintf("job id %d does not exist", id)
	}

	fmt.Fprintf(stdout, "%s : %d\n", job.CommandText, job.Pid)
	s.Jobs.Remove(id)
	if s.Log != nil {
		s.Log.Debugf("fg: job [%d] pid %d moved to foreground", job.ID, job.Pid)
	}

	_ = setForegroundProcessGroup(job.Pid)
	status := waitForPid(job.Pid)
	_ = setForegroundProcessGroup(s.ShellPid)
	if s.Log != nil {
		s.Log.Debugf("fg: job [%d] pid %d returned to shell, status %d", job.ID, job.Pid, status)
	}

	return status, ""
}

// diff compares two regular files byte-for-byte.
func diffBuiltin(s *State, args []string, stdout io.Writer) (int, string) {
	if len(args) != 2 {
		return 1, "expected 2 arguments"
	}

	infoA, errA := os.Stat(args[0])
	infoB, errB := os.Stat(args[1])
	if errA != nil || errB != nil {
		return 1, "expected valid paths for files"
	}
	if !infoA.Mode().IsRegular() || !infoB.Mode().IsRegular() {
		return 1, "paths are not files"
	}

	equal, err := filesEqual(args[0], args[1])
	if err != nil {
		return 1, WrapError(err).Error()
	}
	if equal {
		fmt.Fprintln(stdout, "0")
	} else {
		fmt.Fprintln(stdout, "1")
	}
	return 0, ""
}

const diffBlockSize = 64 * 1024

// filesEqual streams both files in fixed-size blocks, short-circuiting
// on the first mismatch or length difference.
func filesEqual(pathA, pathB string) (bool, error) {
	fa, err := os.Open(pathA)
	if err != nil {
		return false, err
	}
	defer fa.Close()
	fb, err := os.Open(pathB)
	if err != nil {
		return false, err
	}
	defer fb.Close()

	bufA := make([]byte, diffBlockSize)
	bufB := make([]byte, diffBlockSize)
	for {
		nA, errA := io.ReadFull(fa, bufA)
		nB, errB := io.ReadFull(fb, bufB)
		if nA != nB || !bytes.Equal(bufA[:nA], bufB[:nB]) {
			return false, nil
		}
		doneA := errA == io.EOF || errA == io.ErrUnexpectedEOF
		doneB := errB == io.EOF || errB == io.ErrUnexpectedEOF
		if doneA != doneB {
			return false, nil
		}
		if doneA {
			return true, nil
		}
		if errA != nil {
			return false, errA
		}
		if errB != nil {
			return false, errB
		}
	}
}

// alias with no arguments lists every alias in insertion order; with one
// argument of the form name='value' it adds or replaces that alias.
func aliasBuiltin(s *State, args []string, stdout io.Writer) (int, string) {
	if len(args) == 0 {
		for _, e := range s.Aliases.Entries() {
			fmt.Fprintln(stdout, FormatAliasLine(e))
		}
		return 0, ""
	}
	if len(args) != 1 {
		return 1, "invalid alias"
	}

	name, replacement, err := ParseAliasDefinition(args[0])
	if err != nil {
		return 1, "invalid alias"
	}
	s.Aliases.Set(name, replacement)
	return 0, ""
}

// unalias removes each named alias in order, stopping at the first name
// that isn't currently defined.
func unaliasBuiltin(s *State, args []string, stdout io.Writer) (int, string) {
	if len(args) == 0 {
		return 1, "invalid arguments"
	}
	for _, name := range args {
		if !s.Aliases.Remove(name) {
			return 1, fmt.Sprintf("%s alias does not exist", name)
		}
	}
	return 0, ""
}

// quit requests shell shutdown. With no arguments it's a plain exit;
// with the single literal argument "kill" it requests the SIGTERM-then-
// SIGKILL shutdown sequence over every live job.
func quitBuiltin(s *State, args []string, stdout io.Writer) (int, string) {
	switch len(args) {
	case 0:
		s.ExitRequested = true
		s.ExitMode = ExitNormal
		return 0, ""
	case 1:
		if args[0] != "kill" {
			return 1, "unexpected arguments"
		}
		s.ExitRequested = true
		s.ExitMode = ExitKill
		return 0, ""
	default:
		return 1, "unexpected arguments"
	}
}
