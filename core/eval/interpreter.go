// Package eval runs the statements typed into a session: assignments, name
// lookups, builtin calls and value literals written in YAML flow syntax.
package eval

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/josephlewis42/replrc/core/pretty"
)

// Interpreter evaluates statements against a namespace, buffering lines
// until each statement is complete.
type Interpreter struct {
	ns     *Namespace
	stdout io.Writer
	stderr io.Writer

	commands map[string]*Command
	pending  []string
}

// New creates an interpreter writing results to stdout and command
// diagnostics to stderr.
func New(ns *Namespace, stdout, stderr io.Writer) *Interpreter {
	in := &Interpreter{
		ns:       ns,
		stdout:   stdout,
		stderr:   stderr,
		commands: make(map[string]*Command),
	}
	in.AddCommand(helpCommand(in))
	in.AddCommand(namesCommand(in))
	return in
}

// Namespace returns the names visible to statements.
func (in *Interpreter) Namespace() *Namespace {
	return in.ns
}

// Stdout returns the writer results are echoed to.
func (in *Interpreter) Stdout() io.Writer {
	return in.stdout
}

// Feed adds a line of input. It returns true if the statement is incomplete
// and more lines are needed, otherwise the statement is run.
func (in *Interpreter) Feed(line string) (more bool, err error) {
	in.pending = append(in.pending, line)
	src := strings.Join(in.pending, "\n")
	if Incomplete(src) {
		return true, nil
	}

	in.pending = nil
	return false, in.Exec(src)
}

// Pending reports whether a statement is partially entered.
func (in *Interpreter) Pending() bool {
	return len(in.pending) > 0
}

// Reset discards any partially entered statement.
func (in *Interpreter) Reset() {
	in.pending = nil
}

// Exec runs a complete statement.
func (in *Interpreter) Exec(src string) error {
	stmt := strings.TrimSpace(strings.ReplaceAll(src, "\\\n", " "))
	switch {
	case stmt == "", strings.HasPrefix(stmt, "#"):
		return nil
	case strings.HasPrefix(stmt, ":"):
		return in.runCommand(stmt)
	}

	if name, expr, ok := splitAssignment(stmt); ok {
		if _, isKeyword := Keywords[name]; isKeyword {
			return syntaxError("cannot assign to %s", name)
		}
		v, err := in.Eval(expr)
		if err != nil {
			return err
		}
		in.ns.Set(name, v)
		return nil
	}

	v, err := in.Eval(stmt)
	if err != nil {
		return err
	}
	if v != nil {
		fmt.Fprintln(in.stdout, pretty.Repr(v))
		in.ns.Set("_", v)
	}
	return nil
}

// Eval evaluates an expression: a name, a builtin call or a literal.
func (in *Interpreter) Eval(expr string) (interface{}, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, syntaxError("invalid syntax")
	}

	if IsIdentifier(expr) {
		if v, ok := Keywords[expr]; ok {
			return v, nil
		}
		if v, ok := in.ns.Get(expr); ok {
			return v, nil
		}
		return nil, nameError(expr)
	}

	if name, args, ok := splitCall(expr); ok {
		return in.call(name, args)
	}

	return ParseLiteral(expr)
}

func (in *Interpreter) call(name, argSrc string) (interface{}, error) {
	target, ok := in.ns.Get(name)
	if !ok {
		return nil, nameError(name)
	}
	builtin, ok := target.(*Builtin)
	if !ok {
		return nil, typeError("'%s' object is not callable", TypeName(target))
	}

	call := &Call{
		Name:   name,
		Kwargs: make(map[string]interface{}),
		Stdout: in.stdout,
	}
	for _, arg := range splitArgs(argSrc) {
		if key, valueSrc, isKwarg := splitKwarg(arg); isKwarg {
			if _, dup := call.Kwargs[key]; dup {
				return nil, syntaxError("keyword argument repeated: %s", key)
			}
			v, err := in.Eval(valueSrc)
			if err != nil {
				return nil, err
			}
			call.Kwargs[key] = v
			continue
		}

		if len(call.Kwargs) > 0 {
			return nil, syntaxError("positional argument follows keyword argument")
		}
		v, err := in.Eval(arg)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, v)
	}

	return builtin.Func(call)
}

// Completions returns names a partially typed token could expand to.
// Callable names are suffixed with an opening parenthesis.
func (in *Interpreter) Completions(prefix string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(candidate string) {
		if strings.HasPrefix(candidate, prefix) && !seen[candidate] {
			seen[candidate] = true
			out = append(out, candidate)
		}
	}

	if strings.HasPrefix(prefix, ":") {
		for _, name := range in.CommandNames() {
			add(":" + name)
		}
		sort.Strings(out)
		return out
	}

	for _, name := range []string{"False", "None", "True"} {
		add(name)
	}
	for _, name := range in.ns.Names() {
		if in.ns.Callable(name) {
			add(name + "(")
		} else {
			add(name)
		}
	}
	sort.Strings(out)
	return out
}
