package eval

import (
	"testing"

	"github.com/josephlewis42/replrc/core/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiteral(t *testing.T) {
	cases := map[string]struct {
		src      string
		expected interface{}
	}{
		"int":          {"12", 12},
		"float":        {"1.5", 1.5},
		"single-quote": {"'it''s'", "it's"},
		"double-quote": {`"tab\there"`, "tab\there"},
		"none":         {"None", nil},
		"true":         {"True", true},
		"list":         {"[1, 'a', None]", []interface{}{1, "a", nil}},
		"nested-none":  {"[None, False]", []interface{}{nil, false}},
		"empty-map":    {"{}", pretty.Map{}},
		"empty-list":   {"[]", []interface{}{}},
		"map-order": {
			"{z: 1, a: {y: [2]}}",
			pretty.Map{
				{Key: "z", Value: 1},
				{Key: "a", Value: pretty.Map{{Key: "y", Value: []interface{}{2}}}},
			},
		},
		"shared-anchor": {
			"{a: &x [1], b: *x}",
			pretty.Map{{Key: "a", Value: []interface{}{1}}, {Key: "b", Value: []interface{}{1}}},
		},
		"apostrophe":    {"[it's, ok]", []interface{}{"it's", "ok"}},
		"duplicate-key": {"{a: 1, b: 2, a: 3}", pretty.Map{{Key: "a", Value: 3}, {Key: "b", Value: 2}}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			actual, err := ParseLiteral(tc.src)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestParseLiteral_bareWord(t *testing.T) {
	_, err := ParseLiteral("undefined")
	assert.EqualError(t, err, "SyntaxError: invalid syntax: undefined")
}

func TestParseLiteral_selfReference(t *testing.T) {
	cases := []string{
		"&a [1, *a]",
		"&m {k: *m}",
		"[&outer [&inner [*outer]]]",
	}

	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			_, err := ParseLiteral(src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "value contains itself")
		})
	}
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("_private1"))
	assert.False(t, IsIdentifier("1abc"))
	assert.False(t, IsIdentifier("a-b"))
}
