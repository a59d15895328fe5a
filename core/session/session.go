// Package session runs an interactive read-eval loop with completion,
// persistent history and an optional pretty printer.
package session

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/replrc/core/config"
	"github.com/josephlewis42/replrc/core/eval"
	"github.com/josephlewis42/replrc/core/history"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	// PS1 is the primary prompt.
	PS1 = ">>> "
	// PS2 is shown while a statement needs more lines.
	PS2 = "... "
)

// LineReader reads edited lines from the user, *readline.Instance
// satisfies it.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	SaveHistory(content string) error
	Close() error
}

var _ LineReader = (*readline.Instance)(nil)

// Options holds the process level resources a session runs with.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// IsTerminal is true if Stdout is connected to a terminal.
	IsTerminal bool

	// Fs holds the history file, defaults to the configuration's filesystem.
	Fs afero.Fs

	Logger *zap.Logger

	// NewReader creates the line editor, defaults to readline.NewEx.
	NewReader func(cfg *readline.Config) (LineReader, error)
}

func newReadline(cfg *readline.Config) (LineReader, error) {
	return readline.NewEx(cfg)
}

// Session is a configured interactive loop.
type Session struct {
	cfg    *config.Configuration
	logger *zap.Logger
	stdout io.Writer
	stderr io.Writer

	reader  LineReader
	interp  *eval.Interpreter
	history *history.History
	color   *ColorPrinter
	prompt  string

	features []string
	onExit   []func() error
	closed   bool
}

// New sets up a session: completion, history load, the save-on-exit hook,
// the pprint builtin and the prompt, in that order.
func New(cfg *config.Configuration, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	fs := opts.Fs
	if fs == nil {
		fs = cfg.Fs()
	}
	newReader := opts.NewReader
	if newReader == nil {
		newReader = newReadline
	}

	s := &Session{
		cfg:    cfg,
		logger: logger,
		stdout: opts.Stdout,
		stderr: opts.Stderr,
		color:  NewColorPrinter(cfg.Color, opts.IsTerminal),
	}
	s.interp = eval.New(eval.NewNamespace(), opts.Stdout, opts.Stderr)
	s.interp.AddCommand(historyCommand(s))
	s.interp.AddCommand(saveCommand(s))

	rlConfig := &readline.Config{
		Stdin:  readline.NewCancelableStdin(opts.Stdin),
		Stdout: opts.Stdout,
		Stderr: opts.Stderr,
		FuncIsTerminal: func() bool {
			return opts.IsTerminal
		},
		HistoryLimit: cfg.HistoryLimit,
		Prompt:       PS1,
	}

	// Completion
	if cfg.TabComplete {
		rlConfig.AutoComplete = &Completer{interp: s.interp}
		s.features = append(s.features, "tab completion")
	}

	if err := rlConfig.Init(); err != nil {
		return nil, err
	}
	reader, err := newReader(rlConfig)
	if err != nil {
		return nil, err
	}
	s.reader = reader

	// History
	historyPath, err := cfg.HistoryPath()
	if err != nil {
		reader.Close()
		return nil, fmt.Errorf("resolving history file: %w", err)
	}
	s.history = history.New(fs, historyPath, cfg.HistoryLimit)
	if err := s.history.Load(); err != nil {
		reader.Close()
		return nil, fmt.Errorf("loading history: %w", err)
	}
	for _, entry := range s.history.Entries() {
		if err := reader.SaveHistory(entry); err != nil {
			logger.Warn("couldn't add history entry to line editor", zap.Error(err))
		}
	}
	logger.Debug("loaded history",
		zap.String("path", historyPath),
		zap.Int("entries", s.history.Len()))
	s.features = append(s.features, "history")

	s.OnExit(func() error {
		if err := s.history.Save(); err != nil {
			return fmt.Errorf("saving history: %w", err)
		}
		logger.Debug("saved history", zap.String("path", historyPath))
		return nil
	})

	// Pretty printing
	if opts.IsTerminal && cfg.Pprint.Enabled {
		s.interp.Namespace().Install(pprintBuiltin(cfg.Pprint.Options()))
		s.features = append(s.features, "pprint")
	} else {
		logger.Debug("pprint not installed",
			zap.Bool("terminal", opts.IsTerminal),
			zap.Bool("enabled", cfg.Pprint.Enabled))
	}

	s.setPrompt(PS1)
	return s, nil
}

// Interpreter returns the evaluator backing the session.
func (s *Session) Interpreter() *eval.Interpreter {
	return s.interp
}

// History returns the session's history.
func (s *Session) History() *history.History {
	return s.history
}

// Prompt returns the prompt currently shown.
func (s *Session) Prompt() string {
	return s.prompt
}

// Features lists the enabled session features in setup order.
func (s *Session) Features() []string {
	out := make([]string, len(s.features))
	copy(out, s.features)
	return out
}

func (s *Session) setPrompt(prompt string) {
	s.prompt = prompt
	s.reader.SetPrompt(prompt)
}

// OnExit registers a hook to run when the session is closed. Hooks run in
// reverse registration order.
func (s *Session) OnExit(hook func() error) {
	s.onExit = append(s.onExit, hook)
}

// Close runs the exit hooks and releases the line editor. It's safe to call
// more than once, hooks only run the first time.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	for i := len(s.onExit) - 1; i >= 0; i-- {
		err = multierr.Append(err, s.onExit[i]())
	}
	return multierr.Append(err, s.reader.Close())
}

// PrintBanner writes the list of enabled features.
func (s *Session) PrintBanner() {
	fmt.Fprintln(s.stdout, s.color.Sprintf(ColorBoldGreen, "Interactive session enhanced!"))
	fmt.Fprintf(s.stdout, "Available: %s\n", strings.Join(s.features, ", "))
}

// Run reads and evaluates lines until the input ends or the user exits.
func (s *Session) Run() error {
	for {
		line, err := s.reader.Readline()
		switch {
		case err == io.EOF:
			return nil

		case err == readline.ErrInterrupt:
			// Interrupt drops any partial statement.
			s.interp.Reset()
			fmt.Fprintln(s.stderr, "KeyboardInterrupt")
			s.setPrompt(PS1)
			continue

		case err != nil:
			return err
		}

		s.history.Add(line)

		more, err := s.interp.Feed(line)
		if errors.Is(err, eval.ErrExit) {
			return nil
		}
		if err != nil {
			s.printError(err)
		}

		if more {
			s.setPrompt(PS2)
		} else {
			s.setPrompt(PS1)
		}
	}
}

func (s *Session) printError(err error) {
	var cmdErr *eval.CommandError
	if errors.As(err, &cmdErr) {
		// Commands report their own failures.
		s.logger.Debug("command failed", zap.Error(err))
		return
	}
	fmt.Fprintln(s.stderr, s.color.Sprintf(ColorBoldRed, "%s", err))
}
