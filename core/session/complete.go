package session

import (
	"unicode"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/replrc/core/eval"
)

// Completer expands the name under the cursor against the session's
// namespace and commands.
type Completer struct {
	interp *eval.Interpreter
}

var _ readline.AutoCompleter = (*Completer)(nil)

// Do implements readline.AutoCompleter. It returns the suffixes that
// complete the token ending at pos, along with the token's length.
func (c *Completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	if pos > len(line) {
		pos = len(line)
	}

	start := pos
	for start > 0 && isNameRune(line[start-1]) {
		start--
	}
	// Commands are only recognized at the start of the line.
	if start > 0 && line[start-1] == ':' && isBlank(line[:start-1]) {
		start--
	}

	token := string(line[start:pos])
	if token == "" {
		return [][]rune{[]rune("\t")}, 0
	}

	for _, candidate := range c.interp.Completions(token) {
		newLine = append(newLine, []rune(candidate)[len([]rune(token)):])
	}
	return newLine, len([]rune(token))
}

func isNameRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isBlank(rs []rune) bool {
	for _, r := range rs {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
