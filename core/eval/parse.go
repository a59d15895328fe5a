package eval

import (
	"regexp"
	"strings"

	"github.com/josephlewis42/replrc/core/pretty"
	"gopkg.in/yaml.v3"
)

var (
	identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	assignRegex     = regexp.MustCompile(`(?s)^([A-Za-z_][A-Za-z0-9_]*)\s*=(.*)$`)
	callRegex       = regexp.MustCompile(`(?s)^([A-Za-z_][A-Za-z0-9_]*)\s*\((.*)\)$`)
)

// IsIdentifier reports whether s is a valid name.
func IsIdentifier(s string) bool {
	return identifierRegex.MatchString(s)
}

// scanner tracks quoting and bracket nesting over statement text.
type scanner struct {
	depth int
	quote rune
}

// feed advances over src, calling visit for each rune that sits outside of
// any quotes along with the bracket depth before the rune.
func (s *scanner) feed(src string, visit func(i int, r rune, depth int)) {
	runes := []rune(src)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case s.quote == '"' && r == '\\':
			i++ // skip the escaped rune
		case s.quote != 0:
			if r == s.quote {
				// Single quoted YAML strings escape quotes by doubling them.
				if s.quote == '\'' && i+1 < len(runes) && runes[i+1] == '\'' {
					i++
					continue
				}
				s.quote = 0
			}
		case (r == '\'' || r == '"') && startsScalar(runes, i):
			s.quote = r
		case r == '#' && (i == 0 || strings.ContainsRune(" \t\n", runes[i-1])):
			// Comments run to the end of the line.
			for i+1 < len(runes) && runes[i+1] != '\n' {
				i++
			}
		default:
			if visit != nil {
				visit(i, r, s.depth)
			}
			switch r {
			case '(', '[', '{':
				s.depth++
			case ')', ']', '}':
				s.depth--
			}
		}
	}
}

// startsScalar reports whether the rune at i begins a value rather than
// sitting inside a plain word like it's.
func startsScalar(runes []rune, i int) bool {
	return i == 0 || strings.ContainsRune(" \t\n[{(,:=", runes[i-1])
}

// Incomplete reports whether src needs more lines before it can be run:
// it has open brackets or quotes, or ends with a backslash.
func Incomplete(src string) bool {
	trimmed := strings.TrimSpace(src)
	if strings.HasPrefix(trimmed, ":") {
		return false
	}

	s := &scanner{}
	s.feed(src, nil)
	if s.quote != 0 || s.depth > 0 {
		return true
	}
	return strings.HasSuffix(strings.TrimRight(src, " \t"), `\`)
}

// splitArgs splits a call's argument list on top-level commas.
func splitArgs(src string) []string {
	if strings.TrimSpace(src) == "" {
		return nil
	}

	runes := []rune(src)
	var out []string
	start := 0
	s := &scanner{}
	s.feed(src, func(i int, r rune, depth int) {
		if r == ',' && depth == 0 {
			out = append(out, string(runes[start:i]))
			start = i + 1
		}
	})
	out = append(out, string(runes[start:]))

	// A trailing comma is allowed.
	if len(out) > 1 && strings.TrimSpace(out[len(out)-1]) == "" {
		out = out[:len(out)-1]
	}
	return out
}

// balancedCall reports whether the brackets of args never close below depth 0
// so "f(a)(b)" isn't mistaken for a single call.
func balancedCall(args string) bool {
	ok := true
	s := &scanner{}
	s.feed(args, func(i int, r rune, depth int) {
		if (r == ')' || r == ']' || r == '}') && depth <= 0 {
			ok = false
		}
	})
	return ok && s.depth == 0 && s.quote == 0
}

// splitAssignment splits "name = expr", rejecting comparisons.
func splitAssignment(stmt string) (name, expr string, ok bool) {
	match := assignRegex.FindStringSubmatch(stmt)
	if match == nil || strings.HasPrefix(match[2], "=") {
		return "", "", false
	}
	return match[1], match[2], true
}

// splitCall splits "name(args)".
func splitCall(expr string) (name, args string, ok bool) {
	match := callRegex.FindStringSubmatch(expr)
	if match == nil || !balancedCall(match[2]) {
		return "", "", false
	}
	return match[1], match[2], true
}

// splitKwarg splits "key=value" arguments.
func splitKwarg(arg string) (key, value string, ok bool) {
	return splitAssignment(strings.TrimSpace(arg))
}

// ParseLiteral converts YAML flow text to a value. Mappings keep their order
// as a pretty.Map, and the plain words None, True and False are the null
// and boolean constants.
func ParseLiteral(src string) (interface{}, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		return nil, syntaxError("%v", err)
	}
	if len(doc.Content) == 0 {
		return nil, syntaxError("invalid syntax")
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Style == 0 && root.Tag == "!!str" {
		if _, ok := Keywords[root.Value]; !ok {
			return nil, syntaxError("invalid syntax: %s", root.Value)
		}
	}
	return convertNode(root, make(map[*yaml.Node]bool))
}

// convertNode builds the value for n. expanding holds the anchored nodes
// currently being converted so self-referencing aliases are rejected.
func convertNode(n *yaml.Node, expanding map[*yaml.Node]bool) (interface{}, error) {
	if n.Anchor != "" {
		if expanding[n] {
			return nil, syntaxError("anchor '%s' value contains itself", n.Anchor)
		}
		expanding[n] = true
		defer delete(expanding, n)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return convertNode(n.Content[0], expanding)

	case yaml.AliasNode:
		return convertNode(n.Alias, expanding)

	case yaml.SequenceNode:
		out := make([]interface{}, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := convertNode(child, expanding)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.MappingNode:
		var out pretty.Map
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, err := convertNode(n.Content[i], expanding)
			if err != nil {
				return nil, err
			}
			switch key.(type) {
			case []interface{}, pretty.Map:
				return nil, typeError("unhashable type: '%s'", TypeName(key))
			}

			value, err := convertNode(n.Content[i+1], expanding)
			if err != nil {
				return nil, err
			}
			out = setItem(out, key, value)
		}
		if out == nil {
			out = pretty.Map{}
		}
		return out, nil

	case yaml.ScalarNode:
		if n.Style == 0 {
			if v, ok := Keywords[n.Value]; ok {
				return v, nil
			}
		}
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, syntaxError("%v", err)
		}
		return v, nil
	}

	return nil, syntaxError("unsupported value")
}

// setItem replaces the value of an existing key, keeping its position.
func setItem(m pretty.Map, key, value interface{}) pretty.Map {
	for i := range m {
		if m[i].Key == key {
			m[i].Value = value
			return m
		}
	}
	return append(m, pretty.Item{Key: key, Value: value})
}
