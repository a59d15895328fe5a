package eval

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/josephlewis42/replrc/core/pretty"
)

// Str converts a value to text the way print shows it: strings as is,
// everything else in its literal form.
func Str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return pretty.Repr(v)
}

// TypeName returns the user-facing name of a value's type.
func TypeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "NoneType"
	case *Builtin:
		return "builtin_function_or_method"
	case pretty.Map:
		return "dict"
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool:
		return "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.String:
		return "str"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map:
		return "dict"
	}
	return reflect.TypeOf(v).String()
}

type typeValue string

func (t typeValue) String() string {
	return fmt.Sprintf("<class '%s'>", string(t))
}

func standardBuiltins(ns *Namespace) []*Builtin {
	exit := func(call *Call) (interface{}, error) {
		return nil, ErrExit
	}

	return []*Builtin{
		{
			Name: "print",
			Doc:  "print(value, ..., sep=' ', end='\\n')\n\nPrints the values separated by sep and followed by end.",
			Func: builtinPrint,
		},
		{
			Name: "repr",
			Doc:  "repr(obj)\n\nReturns the literal representation of obj.",
			Func: func(call *Call) (interface{}, error) {
				if err := call.Expect(1, 1); err != nil {
					return nil, err
				}
				return pretty.Repr(call.Args[0]), call.NoKwargs()
			},
		},
		{
			Name: "len",
			Doc:  "len(obj)\n\nReturns the number of items in a container or characters in a string.",
			Func: builtinLen,
		},
		{
			Name: "type",
			Doc:  "type(obj)\n\nReturns the type of obj.",
			Func: func(call *Call) (interface{}, error) {
				if err := call.Expect(1, 1); err != nil {
					return nil, err
				}
				return typeValue(TypeName(call.Args[0])), call.NoKwargs()
			},
		},
		{
			Name: "dir",
			Doc:  "dir()\n\nReturns the sorted list of names in the session.",
			Func: func(call *Call) (interface{}, error) {
				if err := call.Expect(0, 0); err != nil {
					return nil, err
				}
				var out []interface{}
				for _, name := range ns.Names() {
					out = append(out, name)
				}
				return out, call.NoKwargs()
			},
		},
		{
			Name: "help",
			Doc:  "help([obj])\n\nShows help for a builtin, or lists all builtins.",
			Func: func(call *Call) (interface{}, error) {
				if err := call.Expect(0, 1); err != nil {
					return nil, err
				}
				return nil, builtinHelp(ns, call)
			},
		},
		{Name: "exit", Doc: "exit()\n\nEnds the session.", Func: exit},
		{Name: "quit", Doc: "quit()\n\nEnds the session.", Func: exit},
	}
}

func builtinPrint(call *Call) (interface{}, error) {
	sep, end := " ", "\n"
	for name, target := range map[string]*string{"sep": &sep, "end": &end} {
		if v, ok := call.Kwarg(name); ok && v != nil {
			s, isString := v.(string)
			if !isString {
				return nil, typeError("%s must be None or a string, not %s", name, TypeName(v))
			}
			*target = s
		}
	}
	if err := call.NoKwargs(); err != nil {
		return nil, err
	}

	var parts []string
	for _, arg := range call.Args {
		parts = append(parts, Str(arg))
	}
	fmt.Fprint(call.Stdout, strings.Join(parts, sep)+end)
	return nil, nil
}

func builtinLen(call *Call) (interface{}, error) {
	if err := call.Expect(1, 1); err != nil {
		return nil, err
	}
	if err := call.NoKwargs(); err != nil {
		return nil, err
	}

	switch v := call.Args[0].(type) {
	case string:
		return utf8.RuneCountInString(v), nil
	case pretty.Map:
		return len(v), nil
	}

	rv := reflect.ValueOf(call.Args[0])
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), nil
	}
	return nil, typeError("object of type '%s' has no len()", TypeName(call.Args[0]))
}

func builtinHelp(ns *Namespace, call *Call) error {
	w := call.Stdout
	if len(call.Args) == 1 {
		b, ok := call.Args[0].(*Builtin)
		if !ok {
			return typeError("no help available for %s", TypeName(call.Args[0]))
		}
		fmt.Fprintf(w, "Help on built-in function %s:\n\n", b.Name)
		for _, line := range strings.Split(b.Doc, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
		return nil
	}

	var names []string
	for _, name := range ns.Names() {
		if ns.Callable(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Builtins:")
	for _, name := range names {
		v, _ := ns.Get(name)
		summary := strings.SplitN(v.(*Builtin).Doc, "\n", 2)[0]
		fmt.Fprintf(w, "  %-10s %s\n", name, summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Values use YAML flow syntax, e.g. x = {a: [1, 2], b: 'text'}")
	fmt.Fprintln(w, "Type :help for session commands.")
	return nil
}
