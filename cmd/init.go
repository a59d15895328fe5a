package cmd

import (
	"log"

	"github.com/josephlewis42/replrc/core/config"
	"github.com/spf13/cobra"
)

// newInitCmd writes the default configuration.
func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init [DIR]",
		Short: "Write the default configuration, to the --config directory unless DIR is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			logger := log.New(cmd.ErrOrStderr(), "", 0)

			dir, err := opts.configDir()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				dir = args[0]
			}

			_, err = config.Initialize(opts.fs, dir, logger)
			return err
		},
	}
}
