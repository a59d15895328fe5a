package pretty

import (
	"reflect"
	"regexp"
	"strings"
)

// state holds the output and the set of containers currently being
// formatted, used to detect recursive values.
type state struct {
	opts    Options
	out     *strings.Builder
	context map[uintptr]bool
}

type printFunc func(s *state, v reflect.Value, indent, allowance, level int)

func (s *state) write(text string) {
	s.out.WriteString(text)
}

// format writes v starting at column indent, leaving allowance columns free
// at the end of the last line for closing brackets.
func (s *state) format(v reflect.Value, indent, allowance, level int) {
	_, isStringer := stringer(v)
	rv, id := resolve(v)
	if !isStringer && id != 0 && s.context[id] {
		s.write(recursion(rv, id))
		return
	}

	rep := s.repr(v, level)
	maxWidth := s.opts.Width - indent - allowance
	if runeLen(rep) > maxWidth && !isStringer {
		if p := dispatch(rv); p != nil {
			if id != 0 {
				s.context[id] = true
			}
			p(s, rv, indent, allowance, level+1)
			if id != 0 {
				delete(s.context, id)
			}
			return
		}
	}
	s.write(rep)
}

// dispatch returns the multi-line printer for v's kind or nil if v is always
// written on one line.
func dispatch(v reflect.Value) printFunc {
	if !v.IsValid() {
		return nil
	}
	if v.Type() == mapType {
		return (*state).printDict
	}

	switch v.Kind() {
	case reflect.String:
		return (*state).printString
	case reflect.Slice, reflect.Array:
		if isBytes(v) {
			return nil
		}
		return (*state).printList
	case reflect.Map:
		return (*state).printDict
	case reflect.Struct:
		if len(structFields(v)) == 0 {
			return nil
		}
		return (*state).printStruct
	}
	return nil
}

func (s *state) printDict(v reflect.Value, indent, allowance, level int) {
	s.write("{")
	if s.opts.Indent > 1 {
		s.write(strings.Repeat(" ", s.opts.Indent-1))
	}
	if v.Len() > 0 {
		s.formatDictItems(mapEntries(v, s.opts.SortKeys), indent, allowance+1, level)
	}
	s.write("}")
}

func (s *state) formatDictItems(items []entry, indent, allowance, level int) {
	indent += s.opts.Indent
	delimnl := ",\n" + strings.Repeat(" ", indent)
	lastIndex := len(items) - 1
	for i, item := range items {
		last := i == lastIndex
		rep := s.repr(item.key, level)
		s.write(rep)
		s.write(": ")
		s.format(item.value, indent+runeLen(rep)+2, allowanceFor(last, allowance), level)
		if !last {
			s.write(delimnl)
		}
	}
}

func (s *state) printList(v reflect.Value, indent, allowance, level int) {
	items := make([]reflect.Value, v.Len())
	for i := range items {
		items[i] = v.Index(i)
	}

	s.write("[")
	s.formatItems(items, indent, allowance+1, level)
	s.write("]")
}

func (s *state) formatItems(items []reflect.Value, indent, allowance, level int) {
	indent += s.opts.Indent
	if s.opts.Indent > 1 {
		s.write(strings.Repeat(" ", s.opts.Indent-1))
	}
	delimnl := ",\n" + strings.Repeat(" ", indent)
	delim := ""
	width := s.opts.Width - indent + 1
	maxWidth := width

	for i, item := range items {
		last := i == len(items)-1
		if last {
			maxWidth -= allowance
			width -= allowance
		}

		if s.opts.Compact {
			rep := s.repr(item, level)
			w := runeLen(rep) + 2
			if width < w {
				width = maxWidth
				if delim != "" {
					delim = delimnl
				}
			}
			if width >= w {
				width -= w
				s.write(delim)
				delim = ", "
				s.write(rep)
				continue
			}
		}

		s.write(delim)
		delim = delimnl
		s.format(item, indent, allowanceFor(last, allowance), level)
	}
}

func (s *state) printStruct(v reflect.Value, indent, allowance, level int) {
	name := structName(v)
	indent += runeLen(name) + 1

	s.write(name + "(")
	fields := structFields(v)
	delimnl := ",\n" + strings.Repeat(" ", indent)
	for i, f := range fields {
		last := i == len(fields)-1
		s.write(f.name)
		s.write("=")
		if _, id := resolve(f.value); id != 0 && s.context[id] {
			s.write("...")
		} else {
			s.format(f.value, indent+runeLen(f.name)+1, allowanceFor(last, allowance), level)
		}
		if !last {
			s.write(delimnl)
		}
	}
	s.write(")")
}

// Alternating runs of non-space and space characters.
var wordRun = regexp.MustCompile(`[^\t\n\v\f\r\x{1c}-\x{1f}\x{85}\p{Z}]*[\t\n\v\f\r\x{1c}-\x{1f}\x{85}\p{Z}]*`)

// printString splits long strings into adjacent literals broken at line
// endings and whitespace. Top level strings are wrapped in parentheses.
func (s *state) printString(v reflect.Value, indent, allowance, level int) {
	text := v.String()
	if text == "" {
		s.write(quote(text))
		return
	}

	if level == 1 {
		indent++
		allowance++
	}

	var chunks []string
	lines := splitLines(text)
	maxWidth := s.opts.Width - indent
	maxWidth1 := maxWidth
	for i, line := range lines {
		rep := quote(line)
		if i == len(lines)-1 {
			maxWidth1 -= allowance
		}
		if runeLen(rep) <= maxWidth1 {
			chunks = append(chunks, rep)
			continue
		}

		var parts []string
		for _, part := range wordRun.FindAllString(line, -1) {
			if part != "" {
				parts = append(parts, part)
			}
		}

		maxWidth2 := maxWidth
		current := ""
		for j, part := range parts {
			candidate := current + part
			if j == len(parts)-1 && i == len(lines)-1 {
				maxWidth2 -= allowance
			}
			if runeLen(quote(candidate)) > maxWidth2 {
				if current != "" {
					chunks = append(chunks, quote(current))
				}
				current = part
			} else {
				current = candidate
			}
		}
		if current != "" {
			chunks = append(chunks, quote(current))
		}
	}

	if len(chunks) == 1 {
		s.write(quote(text))
		return
	}

	if level == 1 {
		s.write("(")
	}
	for i, chunk := range chunks {
		if i > 0 {
			s.write("\n" + strings.Repeat(" ", indent))
		}
		s.write(chunk)
	}
	if level == 1 {
		s.write(")")
	}
}

// splitLines breaks text after each line boundary, keeping the boundary
// characters with the line they end.
func splitLines(text string) []string {
	var lines []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
		case '\n', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		default:
			continue
		}
		lines = append(lines, string(runes[start:i+1]))
		start = i + 1
	}
	if start < len(runes) {
		lines = append(lines, string(runes[start:]))
	}
	return lines
}

func allowanceFor(last bool, allowance int) int {
	if last {
		return allowance
	}
	return 1
}
