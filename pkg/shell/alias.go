package shell

import (
	"fmt"
	"regexp"

	"github.com/go-errors/errors"
)

var aliasNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// reservedNames are the built-in command names a user may never shadow
// with an alias.
var reservedNames = map[string]bool{
	"cd":      true,
	"pwd":     true,
	"showpid": true,
	"jobs":    true,
	"kill":    true,
	"fg":      true,
	"diff":    true,
	"alias":   true,
	"unalias": true,
	"quit":    true,
}

// ErrInvalidAlias is reported for malformed alias definitions and
// reserved-name collisions.
var ErrInvalidAlias = errors.New("invalid alias")

// AliasEntry is one name/replacement pair in the alias table.
type AliasEntry struct {
	Name        string
	Replacement string
}

// AliasTable is an ordered name -> replacement mapping. Redefining a name
// replaces its entry in place, preserving its position; iteration always
// yields entries in insertion order.
type AliasTable struct {
	entries []AliasEntry
	index   map[string]int
}

// NewAliasTable returns an empty alias table.
func NewAliasTable() *AliasTable {
	return &AliasTable{index: map[string]int{}}
}

// Set adds or replaces the alias named name. It does not check for
// reserved-name collisions; callers that expose this to user input
// (the alias builtin) must check IsReserved first.
func (t *AliasTable) Set(name, replacement string) {
	if i, ok := t.index[name]; ok {
		t.entries[i].Replacement = replacement
		return
	}
	t.index[name] = len(t.entries)
	t.entries = append(t.entries, AliasEntry{Name: name, Replacement: replacement})
}

// Get returns the replacement for name and whether it exists.
func (t *AliasTable) Get(name string) (string, bool) {
	i, ok := t.index[name]
	if !ok {
		return "", false
	}
	return t.entries[i].Replacement, true
}

// Remove deletes the alias named name, reporting whether it existed.
// Removing shifts later entries down by one slot but preserves their
// relative order.
func (t *AliasTable) Remove(name string) bool {
	i, ok := t.index[name]
	if !ok {
		return false
	}
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	delete(t.index, name)
	for n, idx := range t.index {
		if idx > i {
			t.index[n] = idx - 1
		}
	}
	return true
}

// Entries returns all alias entries in insertion order.
func (t *AliasTable) Entries() []AliasEntry {
	out := make([]AliasEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// IsReserved reports whether name collides with a built-in command name.
func IsReserved(name string) bool {
	return reservedNames[name]
}

// ParseAliasDefinition parses the one-argument form of the alias builtin,
// name=<quoted-string>, where the replacement is wrapped in single
// quotes. It returns ErrInvalidAlias for any malformed form: a missing
// '=', an empty name, an empty replacement, an unquoted replacement, an
// identifier that doesn't match [A-Za-z_][A-Za-z0-9_]*, or a reserved
// name.
func ParseAliasDefinition(arg string) (name, replacement string, err error) {
	eq := -1
	for i, r := range arg {
		if r == '=' {
			eq = i
			break
		}
	}
	if eq < 0 {
		return "", "", ErrInvalidAlias
	}
	name = arg[:eq]
	rest := arg[eq+1:]

	if name == "" || !aliasNameRe.MatchString(name) {
		return "", "", ErrInvalidAlias
	}
	if IsReserved(name) {
		return "", "", ErrInvalidAlias
	}
	if len(rest) < 2 || rest[0] != '\'' || rest[len(rest)-1] != '\'' {
		return "", "", ErrInvalidAlias
	}
	replacement = rest[1 : len(rest)-1]
	if replacement == "" {
		return "", "", ErrInvalidAlias
	}

	return name, replacement, nil
}

// FormatAliasLine renders an alias entry the way the alias builtin with
// zero arguments prints it: name='replacement'.
func FormatAliasLine(e AliasEntry) string {
	return fmt.Sprintf("%s='%s'", e.Name, e.Replacement)
}

// ExpandFirstToken applies non-recursive alias expansion to argv: if
// argv[0] names an alias, its replacement string is re-tokenized and its
// tokens substitute argv[0] in place. The replacement is never itself
// re-expanded.
func ExpandFirstToken(t *AliasTable, argv []string) []string {
	if len(argv) == 0 {
		return argv
	}
	replacement, ok := t.Get(argv[0])
	if !ok {
		return argv
	}
	expanded := Tokenize(replacement)
	out := make([]string, 0, len(expanded)+len(argv)-1)
	out = append(out, expanded...)
	out = append(out, argv[1:]...)
	return out
}
