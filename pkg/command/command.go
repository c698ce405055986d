// Package command provides the console command contract, the registry used for
// dispatch, and the builtin commands.
package command

import "context"

// Kind tells the shell what to do after a command completes.
type Kind int

// result kinds interpreted by the shell loop.
const (
	KindHandled Kind = iota // print the message (if any) and continue the session
	KindExit                // print the message and terminate the session
)

// Result is the outcome of a single command invocation.
// created fresh per invocation and consumed immediately by the shell, never retained.
type Result struct {
	Kind     Kind
	Message  string
	Markdown bool // render Message as markdown before printing
}

// Command is a dispatchable console command. implementations must be stateless:
// the shell may invoke the same descriptor any number of times within a session.
type Command interface {
	// Name returns the unique dispatch name, without leading slash.
	Name() string
	// Description returns the one-line help text.
	Description() string
	// Execute runs the command. on failure it returns the error unchanged
	// and no result.
	Execute(ctx context.Context) (Result, error)
}
