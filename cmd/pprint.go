package cmd

import (
	"fmt"
	"io"

	"github.com/josephlewis42/replrc/core/eval"
	"github.com/josephlewis42/replrc/core/pretty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newPprintCmd(opts *rootOptions) *cobra.Command {
	formatOpts := pretty.DefaultOptions()

	return configurePprintFlags(&cobra.Command{
		Use:   "pprint [FILE]",
		Short: "Pretty-print a YAML or JSON document, read from stdin if no FILE is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			printer, err := pretty.New(formatOpts)
			if err != nil {
				return err
			}

			name := "<stdin>"
			var data []byte
			if len(args) == 1 {
				name = args[0]
				data, err = afero.ReadFile(opts.fs, name)
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}

			value, err := eval.ParseLiteral(string(data))
			if err != nil {
				return fmt.Errorf("parsing %s: %w", name, err)
			}
			return printer.Fprint(cmd.OutOrStdout(), value)
		},
	}, &formatOpts)
}

func configurePprintFlags(cmd *cobra.Command, opts *pretty.Options) *cobra.Command {
	flags := cmd.Flags()
	flags.IntVar(&opts.Indent, "indent", opts.Indent, "spaces added for each nesting level")
	flags.IntVar(&opts.Width, "width", opts.Width, "maximum line width")
	flags.IntVar(&opts.Depth, "depth", opts.Depth, "levels shown before eliding, 0 shows all")
	flags.BoolVar(&opts.Compact, "compact", opts.Compact, "fit as many sequence items on each line as possible")
	flags.BoolVar(&opts.SortKeys, "sort-keys", opts.SortKeys, "sort mappings by key")
	return cmd
}
