package shell

import (
	"strings"

	"github.com/go-errors/errors"
)

// ErrInvalidCommand is reported when a token sequence cannot be parsed
// into a well-formed command line (e.g. a leading or trailing "&&").
var ErrInvalidCommand = errors.New("invalid command")

// Command is one simple command within a command line: an argv and
// whether it should run in the background.
type Command struct {
	Argv       []string
	Background bool
}

// CommandLine is a sequence of conjuncts joined by "&&"; it is empty only
// for a line with no tokens.
type CommandLine struct {
	Conjuncts []Command
}

// Parse turns a token stream (as produced by Tokenize) into a CommandLine.
// An empty token stream is a valid no-op and yields a CommandLine with no
// conjuncts. "&&" at either edge, or two "&&" with nothing between them,
// is a parse error.
func Parse(tokens []string) (*CommandLine, error) {
	if len(tokens) == 0 {
		return &CommandLine{}, nil
	}

	background := false
	if tokens[len(tokens)-1] == "&" {
		background = true
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) == 0 {
		return nil, ErrInvalidCommand
	}

	var groups [][]string
	var current []string
	for _, tok := range tokens {
		if tok == "&&" {
			groups = append(groups, current)
			current = nil
			continue
		}
		current = append(current, tok)
	}
	groups = append(groups, current)

	conjuncts := make([]Command, len(groups))
	for i, g := range groups {
		if len(g) == 0 {
			return nil, ErrInvalidCommand
		}
		conjuncts[i] = Command{Argv: g}
	}
	conjuncts[len(conjuncts)-1].Background = background

	return &CommandLine{Conjuncts: conjuncts}, nil
}

// SplitConjuncts returns the raw, pre-expansion text of each conjunct in
// line exactly as the user typed it (whitespace-trimmed), split at the
// same unquoted "&&" boundaries Tokenize recognizes. The final element
// retains any trailing "&" verbatim - this is what the job table stores
// as a job's command_text.
func SplitConjuncts(line string) []string {
	runes := []rune(line)
	n := len(runes)
	inSingle, inDouble := false, false
	var parts []string
	start := 0

	isBoundary := func(i int) bool {
		return i <= 0 || runes[i-1] == ' ' || runes[i-1] == '\t'
	}

	i := 0
	for i < n {
		r := runes[i]
		switch {
		case inSingle:
			if r == '\'' {
				inSingle = false
			}
			i++
		case inDouble:
			if r == '"' {
				inDouble = false
			}
			i++
		case r == '\'':
			inSingle = true
			i++
		case r == '"':
			inDouble = true
			i++
		case r == '&' && i+1 < n && runes[i+1] == '&' && isBoundary(i) &&
			(i+2 >= n || runes[i+2] == ' ' || runes[i+2] == '\t'):
			parts = append(parts, strings.TrimSpace(string(runes[start:i])))
			i += 2
			start = i
		default:
			i++
		}
	}
	parts = append(parts, strings.TrimSpace(string(runes[start:])))
	return parts
}
