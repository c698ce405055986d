// Package shell runs the interactive console loop: read a line, dispatch it
// through the command registry, print the result, record the invocation.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/quillforge/quill/pkg/command"
	"github.com/quillforge/quill/pkg/history"
	"github.com/quillforge/quill/pkg/render"
)

// LineReader supplies input lines. io.EOF ends the session cleanly.
type LineReader interface {
	ReadLine() (string, error)
	Close() error
}

// Logger is the transcript interface the shell writes through.
type Logger interface {
	Command(name string)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Output(text string)
}

// Recorder persists command invocations. may be backed by the sqlite store
// or absent entirely when history is disabled.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) error
}

// Config holds shell dependencies.
type Config struct {
	Reader   LineReader
	Registry *command.Registry
	Log      Logger
	Recorder Recorder // optional, nil disables history recording
	NoColor  bool
}

// Stats summarizes a finished session for the caller.
type Stats struct {
	Session     string
	Commands    int    // commands dispatched, including failed ones
	LastCommand string // dispatch name of the last command, empty if none
	LastError   string // error text of the last command if it failed, empty otherwise
}

// Shell is the interactive console loop.
type Shell struct {
	reader   LineReader
	registry *command.Registry
	log      Logger
	recorder Recorder
	noColor  bool

	session     string
	commands    int
	lastCommand string
	lastErr     error
}

// New creates a shell with a fresh session id.
func New(cfg Config) *Shell {
	return &Shell{
		reader:   cfg.Reader,
		registry: cfg.Registry,
		log:      cfg.Log,
		recorder: cfg.Recorder,
		noColor:  cfg.NoColor,
		session:  uuid.NewString(),
	}
}

// Run reads and dispatches commands until the reader reports io.EOF, a command
// exits the session, or the context is canceled.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.reader.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		name := strings.TrimPrefix(fields[0], "/")
		if len(fields) > 1 {
			s.log.Warn("arguments are not supported, ignoring %q", strings.Join(fields[1:], " "))
		}

		cmd, ok := s.registry.Lookup(name)
		if !ok {
			s.log.Error("unknown command %q, try /help", name)
			continue
		}

		done, dErr := s.dispatch(ctx, cmd)
		if dErr != nil {
			s.log.Error("%s failed: %v", cmd.Name(), dErr)
			continue
		}
		if done {
			return nil
		}
	}
}

// Stats returns the session summary. valid at any point, typically read after Run.
func (s *Shell) Stats() Stats {
	st := Stats{Session: s.session, Commands: s.commands, LastCommand: s.lastCommand}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}

// dispatch runs one command and handles its result. returns done=true when the
// command ends the session.
func (s *Shell) dispatch(ctx context.Context, cmd command.Command) (done bool, err error) {
	s.log.Command(cmd.Name())
	s.commands++
	s.lastCommand = cmd.Name()

	res, err := cmd.Execute(ctx)
	if err != nil {
		s.lastErr = err
		s.record(ctx, cmd.Name(), history.OutcomeError)
		return false, err
	}
	s.lastErr = nil

	outcome := history.OutcomeOK
	if res.Kind == command.KindExit {
		outcome = history.OutcomeExit
	}
	s.record(ctx, cmd.Name(), outcome)

	if res.Message != "" {
		s.log.Output(s.renderMessage(res))
	}

	return res.Kind == command.KindExit, nil
}

// renderMessage renders markdown results for the terminal, falling back to the
// raw message if rendering fails.
func (s *Shell) renderMessage(res command.Result) string {
	if !res.Markdown {
		return res.Message
	}
	rendered, err := render.Markdown(res.Message, s.noColor)
	if err != nil {
		s.log.Warn("markdown rendering failed: %v", err)
		return res.Message
	}
	return rendered
}

// record persists one invocation if a recorder is configured. failures are
// logged and never interrupt the session.
func (s *Shell) record(ctx context.Context, name, outcome string) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, history.Entry{Session: s.session, Command: name, Outcome: outcome}); err != nil {
		s.log.Warn("history not recorded: %v", err)
	}
}
