package session

import (
	"fmt"

	"github.com/josephlewis42/replrc/core/eval"
)

func historyCommand(s *Session) *eval.Command {
	return &eval.Command{
		Name:  "history",
		Short: "Show or clear the command history.",
		Run: func(inv *eval.Invocation) int {
			cmd := &eval.SimpleCommand{
				Use:   ":history [-c] [-n N]",
				Short: "Show or clear the command history.",
			}
			count := cmd.Flags().IntLong("lines", 'n', 0, "show only the last N entries")
			clearAll := cmd.Flags().BoolLong("clear", 'c', "clear the history")

			return cmd.Run(inv, func() int {
				if *clearAll {
					s.history.Clear()
					return 0
				}
				if *count < 0 {
					fmt.Fprintln(inv.Stderr, "history: -n must not be negative")
					return 1
				}

				entries := s.history.Entries()
				first := len(entries) - len(s.history.Tail(*count))
				for i := first; i < len(entries); i++ {
					fmt.Fprintf(inv.Stdout, "%5d  %s\n", i+1, entries[i])
				}
				return 0
			})
		},
	}
}

func saveCommand(s *Session) *eval.Command {
	return &eval.Command{
		Name:  "save",
		Short: "Write the history file now.",
		Run: func(inv *eval.Invocation) int {
			cmd := &eval.SimpleCommand{
				Use:   ":save",
				Short: "Write the history file now.",
			}

			return cmd.Run(inv, func() int {
				if err := s.history.Save(); err != nil {
					fmt.Fprintf(inv.Stderr, "save: %s\n", err)
					return 1
				}
				fmt.Fprintf(inv.Stdout, "Saved %d entries to %s\n", s.history.Len(), s.history.Path())
				return 0
			})
		},
	}
}
