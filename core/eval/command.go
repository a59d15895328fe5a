package eval

import (
	"fmt"
	"io"
	"sort"

	shlex "github.com/anmitsu/go-shlex"
	getopt "github.com/pborman/getopt/v2"
)

// Invocation is a single run of a session command.
type Invocation struct {
	Args   []string
	Stdout io.Writer
	Stderr io.Writer
}

// Command is a session command typed as ":name args...".
type Command struct {
	Name  string
	Short string
	Run   func(inv *Invocation) int
}

// AddCommand registers a session command, replacing any with the same name.
func (in *Interpreter) AddCommand(cmd *Command) {
	in.commands[cmd.Name] = cmd
}

// CommandNames returns the registered command names, sorted.
func (in *Interpreter) CommandNames() []string {
	var out []string
	for name := range in.commands {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// CommandError is returned when a session command exits non-zero.
type CommandError struct {
	Name   string
	Status int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf(":%s exited with status %d", e.Name, e.Status)
}

func (in *Interpreter) runCommand(stmt string) error {
	args, err := shlex.Split(stmt[1:], true)
	if err != nil {
		return syntaxError("%v", err)
	}
	if len(args) == 0 {
		return syntaxError("missing command name")
	}

	cmd, ok := in.commands[args[0]]
	if !ok {
		return &Error{Kind: "CommandError", Msg: fmt.Sprintf("unknown command :%s, try :help", args[0])}
	}

	status := cmd.Run(&Invocation{
		Args:   args,
		Stdout: in.stdout,
		Stderr: in.stderr,
	})
	if status != 0 {
		return &CommandError{Name: cmd.Name, Status: status}
	}
	return nil
}

type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a one line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run the command, if flag parsing was succcessful call the callback.
func (s *SimpleCommand) Run(inv *Invocation, callback func() int) int {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	if err := opts.Getopt(inv.Args, nil); err != nil {
		fmt.Fprintf(inv.Stderr, "error: %s\n\n", err)

		s.PrintHelp(inv.Stdout)
		return 1
	}

	if *s.ShowHelp {
		s.PrintHelp(inv.Stdout)
		return 0
	}

	return callback()
}

func helpCommand(in *Interpreter) *Command {
	return &Command{
		Name:  "help",
		Short: "List session commands.",
		Run: func(inv *Invocation) int {
			cmd := &SimpleCommand{
				Use:   ":help",
				Short: "List session commands.",
			}

			return cmd.Run(inv, func() int {
				w := inv.Stdout
				fmt.Fprintln(w, "Session commands:")
				for _, name := range in.CommandNames() {
					fmt.Fprintf(w, "  :%-10s %s\n", name, in.commands[name].Short)
				}
				fmt.Fprintln(w)
				fmt.Fprintln(w, "Call help() for builtins.")
				return 0
			})
		},
	}
}

func namesCommand(in *Interpreter) *Command {
	return &Command{
		Name:  "names",
		Short: "Show the names defined in the session.",
		Run: func(inv *Invocation) int {
			cmd := &SimpleCommand{
				Use:   ":names [-a]",
				Short: "Show the names defined in the session.",
			}
			all := cmd.Flags().BoolLong("all", 'a', "include builtins")

			return cmd.Run(inv, func() int {
				for _, name := range in.ns.Names() {
					if in.ns.Callable(name) && !*all {
						continue
					}
					v, _ := in.ns.Get(name)
					fmt.Fprintf(inv.Stdout, "%s: %s\n", name, TypeName(v))
				}
				return 0
			})
		},
	}
}
