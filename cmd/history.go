package cmd

import (
	"fmt"

	"github.com/josephlewis42/replrc/core/history"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (o *rootOptions) loadHistory(log *zap.Logger) (*history.History, error) {
	cfg, err := o.loadConfig(log)
	if err != nil {
		return nil, err
	}
	path, err := cfg.HistoryPath()
	if err != nil {
		return nil, err
	}

	h := history.New(o.fs, path, cfg.HistoryLimit)
	if err := h.Load(); err != nil {
		return nil, err
	}
	return h, nil
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var lines int

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show the session history.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if lines < 0 {
				return fmt.Errorf("--lines must not be negative, got %d", lines)
			}

			h, err := opts.loadHistory(opts.logger(cmd))
			if err != nil {
				return err
			}

			entries := h.Entries()
			first := len(entries) - len(h.Tail(lines))
			for i := first; i < len(entries); i++ {
				fmt.Fprintf(cmd.OutOrStdout(), "%5d  %s\n", i+1, entries[i])
			}
			return nil
		},
	}
	historyCmd.Flags().IntVarP(&lines, "lines", "n", 0, "show only the last N entries, 0 shows all")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Erase the history file.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			log := opts.logger(cmd)

			h, err := opts.loadHistory(log)
			if err != nil {
				return err
			}
			cleared := h.Len()
			h.Clear()
			if err := h.Save(); err != nil {
				return err
			}

			log.Debug("cleared history", zap.String("path", h.Path()))
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d entries from %s\n", cleared, h.Path())
			return nil
		},
	}
	historyCmd.AddCommand(clearCmd)

	return historyCmd
}
