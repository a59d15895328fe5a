package session

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func runes(candidates [][]rune) []string {
	var out []string
	for _, c := range candidates {
		out = append(out, string(c))
	}
	return out
}

func TestCompleter(t *testing.T) {
	cases := map[string]struct {
		line     string
		pos      int
		expected []string
		length   int
	}{
		"builtin": {
			line:     "pri",
			pos:      3,
			expected: []string{"nt(", "nter"},
			length:   3,
		},
		"variable": {
			line:     "len(prin",
			pos:      8,
			expected: []string{"t(", "ter"},
			length:   4,
		},
		"keyword": {
			line:     "x = Tr",
			pos:      6,
			expected: []string{"ue"},
			length:   2,
		},
		"command": {
			line:     ":hist",
			pos:      5,
			expected: []string{"ory"},
			length:   5,
		},
		"command-leading-space": {
			line:     "  :sa",
			pos:      5,
			expected: []string{"ve"},
			length:   3,
		},
		"not-a-command": {
			line:     "{a:sa",
			pos:      5,
			expected: nil,
			length:   2,
		},
		"cursor-mid-line": {
			line:     "le + 1",
			pos:      2,
			expected: []string{"n("},
			length:   2,
		},
		"empty-inserts-tab": {
			line:     "",
			pos:      0,
			expected: []string{"\t"},
			length:   0,
		},
		"after-space-inserts-tab": {
			line:     "x = ",
			pos:      4,
			expected: []string{"\t"},
			length:   0,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			ts := newTestSession(t, afero.NewMemMapFs(), false)
			ts.Interpreter().Namespace().Set("printer", 1)

			actual, length := ts.completer.Do([]rune(tc.line), tc.pos)

			assert.Equal(t, tc.expected, runes(actual))
			assert.Equal(t, tc.length, length)
		})
	}
}

func TestCompleter_pprintOnTerminal(t *testing.T) {
	ts := newTestSession(t, afero.NewMemMapFs(), true)

	actual, length := ts.completer.Do([]rune("pp"), 2)

	assert.Equal(t, []string{"rint("}, runes(actual))
	assert.Equal(t, 2, length)
}
