package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParse is a function.
func TestParse(t *testing.T) {
	type scenario struct {
		name      string
		tokens    []string
		expected  *CommandLine
		expectErr bool
	}

	scenarios := []scenario{
		{
			"empty tokens is a no-op",
			nil,
			&CommandLine{},
			false,
		},
		{
			"single command",
			[]string{"ls", "-l"},
			&CommandLine{Conjuncts: []Command{{Argv: []string{"ls", "-l"}}}},
			false,
		},
		{
			"backgrounded single command",
			[]string{"sleep", "5", "&"},
			&CommandLine{Conjuncts: []Command{{Argv: []string{"sleep", "5"}, Background: true}}},
			false,
		},
		{
			"two conjuncts",
			[]string{"cmd1", "&&", "cmd2"},
			&CommandLine{Conjuncts: []Command{
				{Argv: []string{"cmd1"}},
				{Argv: []string{"cmd2"}},
			}},
			false,
		},
		{
			"backgrounded second conjunct",
			[]string{"cmd1", "&&", "cmd2", "&"},
			&CommandLine{Conjuncts: []Command{
				{Argv: []string{"cmd1"}},
				{Argv: []string{"cmd2"}, Background: true},
			}},
			false,
		},
		{
			"leading && is invalid",
			[]string{"&&", "cmd"},
			nil,
			true,
		},
		{
			"trailing && is invalid",
			[]string{"cmd", "&&"},
			nil,
			true,
		},
		{
			"adjacent && is invalid",
			[]string{"cmd1", "&&", "&&", "cmd2"},
			nil,
			true,
		},
		{
			"bare background marker is invalid",
			[]string{"&"},
			nil,
			true,
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			got, err := Parse(s.tokens)
			if s.expectErr {
				assert.ErrorIs(t, err, ErrInvalidCommand)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.EqualValues(t, s.expected, got)
		})
	}
}

// TestSplitConjuncts is a function.
func TestSplitConjuncts(t *testing.T) {
	type scenario struct {
		name     string
		line     string
		expected []string
	}

	scenarios := []scenario{
		{
			"single command",
			"ls -l /tmp",
			[]string{"ls -l /tmp"},
		},
		{
			"two conjuncts trims whitespace",
			"cmd1  &&  cmd2",
			[]string{"cmd1", "cmd2"},
		},
		{
			"preserves trailing background marker",
			"sleep 5 &",
			[]string{"sleep 5 &"},
		},
		{
			"quoted && is not a boundary",
			`echo '&&'`,
			[]string{`echo '&&'`},
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			assert.EqualValues(t, s.expected, SplitConjuncts(s.line))
		})
	}
}
