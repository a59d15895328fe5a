package cmd

import (
	"io"
	"os"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/replrc/core/config"
	"github.com/josephlewis42/replrc/core/logger"
	"github.com/josephlewis42/replrc/core/session"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// rootOptions holds the flags and resources shared by every command.
type rootOptions struct {
	cfgPath string
	verbose bool

	fs afero.Fs
	// newReader overrides the session's line editor, nil uses readline.
	newReader func(cfg *readline.Config) (session.LineReader, error)
}

func (o *rootOptions) logger(cmd *cobra.Command) *zap.Logger {
	return logger.New(cmd.ErrOrStderr(), o.verbose)
}

func (o *rootOptions) configDir() (string, error) {
	return homedir.Expand(o.cfgPath)
}

// loadConfig reads the configuration, a missing file means the defaults.
func (o *rootOptions) loadConfig(log *zap.Logger) (*config.Configuration, error) {
	dir, err := o.configDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(o.fs, dir)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded configuration",
		zap.String("dir", dir),
		zap.String("history_file", cfg.HistoryFile))
	return cfg, nil
}

// isTerminal reports whether w is a file connected to a terminal.
func isTerminal(w io.Writer) bool {
	fd, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(fd.Fd()) || isatty.IsCygwinTerminal(fd.Fd())
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	return newRootCmdWithOptions(&rootOptions{fs: fs})
}

func newRootCmdWithOptions(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "replrc",
		Short: "Interactive value shell",
		Long: `An interactive shell for exploring values with tab completion,
persistent history and pretty printing.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			log := opts.logger(cmd)
			defer log.Sync()

			cfg, err := opts.loadConfig(log)
			if err != nil {
				return err
			}

			s, err := session.New(cfg, session.Options{
				Stdin:      cmd.InOrStdin(),
				Stdout:     cmd.OutOrStdout(),
				Stderr:     cmd.ErrOrStderr(),
				IsTerminal: isTerminal(cmd.OutOrStdout()),
				Fs:         opts.fs,
				Logger:     log,
				NewReader:  opts.newReader,
			})
			if err != nil {
				return err
			}

			if cfg.Banner {
				s.PrintBanner()
			}
			runErr := s.Run()
			return multierr.Append(runErr, s.Close())
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgPath, "config", "~/"+config.DefaultDirName, "config directory")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug information to stderr")

	rootCmd.AddCommand(newInitCmd(opts))
	rootCmd.AddCommand(newHistoryCmd(opts))
	rootCmd.AddCommand(newPprintCmd(opts))

	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(newRootCmd(afero.NewOsFs()).Execute())
}
