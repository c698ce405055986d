package shell

import (
	"errors"
	"fmt"

	"github.com/chzyer/readline"
)

// Prompt formats the readline prompt. inside a git repository the current
// branch is shown, with an asterisk when the worktree has uncommitted changes.
func Prompt(branch string, dirty bool) string {
	if branch == "" {
		return "quill> "
	}
	if dirty {
		return fmt.Sprintf("quill (%s*)> ", branch)
	}
	return fmt.Sprintf("quill (%s)> ", branch)
}

// Reader adapts chzyer/readline to the LineReader interface, providing line
// editing, tab completion over command names, and seeded history.
type Reader struct {
	rl *readline.Instance
}

// NewReader creates a terminal reader. names feed tab completion, both with
// and without the leading slash. seed pre-populates the history buffer,
// oldest first.
func NewReader(prompt string, names, seed []string) (*Reader, error) {
	items := make([]readline.PrefixCompleterInterface, 0, len(names)*2)
	for _, name := range names {
		items = append(items, readline.PcItem("/"+name), readline.PcItem(name))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    readline.NewPrefixCompleter(items...),
	})
	if err != nil {
		return nil, fmt.Errorf("init readline: %w", err)
	}

	for _, name := range seed {
		_ = rl.SaveHistory("/" + name)
	}

	return &Reader{rl: rl}, nil
}

// ReadLine reads one line. ctrl-c clears the pending line and returns an empty
// string so the session continues, ctrl-d surfaces io.EOF to end it.
func (r *Reader) ReadLine() (string, error) {
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", nil
	}
	return line, err
}

// Close releases the terminal.
func (r *Reader) Close() error {
	return r.rl.Close()
}
