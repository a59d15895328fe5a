package session

import (
	"github.com/josephlewis42/replrc/core/eval"
	"github.com/josephlewis42/replrc/core/pretty"
)

const pprintDoc = `pprint(object, stream=None, indent=1, width=80, depth=None, compact=False, sort_dicts=True)

Pretty-prints object, wrapping nested structures to fit within width.
Output always goes to the session, stream only accepts None.`

// pprintBuiltin wraps the pretty printer so it can be called from the
// session. Keyword arguments override the configured defaults.
func pprintBuiltin(defaults pretty.Options) *eval.Builtin {
	return &eval.Builtin{
		Name: "pprint",
		Doc:  pprintDoc,
		Func: func(call *eval.Call) (interface{}, error) {
			if err := call.Expect(1, 2); err != nil {
				return nil, err
			}
			if err := checkStream(call); err != nil {
				return nil, err
			}

			opts := defaults
			for name, target := range map[string]*int{"indent": &opts.Indent, "width": &opts.Width} {
				if v, ok := call.Kwarg(name); ok {
					n, isInt := v.(int)
					if !isInt {
						return nil, eval.TypeError("%s must be an int, not %s", name, eval.TypeName(v))
					}
					*target = n
				}
			}

			if v, ok := call.Kwarg("depth"); ok {
				switch n := v.(type) {
				case nil:
					opts.Depth = 0
				case int:
					if n <= 0 {
						return nil, eval.ValueError("depth must be > 0")
					}
					opts.Depth = n
				default:
					return nil, eval.TypeError("depth must be None or an int, not %s", eval.TypeName(v))
				}
			}

			for name, target := range map[string]*bool{"compact": &opts.Compact, "sort_dicts": &opts.SortKeys} {
				if v, ok := call.Kwarg(name); ok {
					b, isBool := v.(bool)
					if !isBool {
						return nil, eval.TypeError("%s must be a bool, not %s", name, eval.TypeName(v))
					}
					*target = b
				}
			}

			if err := call.NoKwargs(); err != nil {
				return nil, err
			}

			printer, err := pretty.New(opts)
			if err != nil {
				return nil, eval.ValueError("%v", err)
			}
			return nil, printer.Fprint(call.Stdout, call.Args[0])
		},
	}
}

// checkStream accepts the stream argument, positional or keyword, as long as
// it selects the default output.
func checkStream(call *eval.Call) error {
	stream, given := call.Kwarg("stream")
	if len(call.Args) == 2 {
		if given {
			return eval.TypeError("%s() got multiple values for argument 'stream'", call.Name)
		}
		stream, given = call.Args[1], true
	}
	if given && stream != nil {
		return eval.TypeError("stream must be None, not %s", eval.TypeName(stream))
	}
	return nil
}
