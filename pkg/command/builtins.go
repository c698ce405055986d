package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/quillforge/quill/pkg/history"
)

// Help lists registered commands as a markdown table.
type Help struct {
	reg *Registry
}

// NewHelp creates the help command over the given registry.
func NewHelp(reg *Registry) *Help { return &Help{reg: reg} }

func (h *Help) Name() string        { return "help" }
func (h *Help) Description() string { return "Lists available commands" }

// Execute renders the sorted command table.
func (h *Help) Execute(context.Context) (Result, error) {
	var b strings.Builder
	b.WriteString("# commands\n\n")
	b.WriteString("| command | description |\n|---|---|\n")
	for _, cmd := range h.reg.List() {
		fmt.Fprintf(&b, "| /%s | %s |\n", cmd.Name(), cmd.Description())
	}
	return Result{Kind: KindHandled, Message: b.String(), Markdown: true}, nil
}

// Models shows the resolved model identifier for each role.
type Models struct {
	general, fast, embedding string
}

// NewModels creates the models command with already-resolved identifiers.
func NewModels(general, fast, embedding string) *Models {
	return &Models{general: general, fast: fast, embedding: embedding}
}

func (m *Models) Name() string        { return "models" }
func (m *Models) Description() string { return "Shows resolved model configuration" }

func (m *Models) Execute(context.Context) (Result, error) {
	msg := fmt.Sprintf("model:           %s\nfast model:      %s\nembedding model: %s",
		m.general, m.fast, m.embedding)
	return Result{Kind: KindHandled, Message: msg}, nil
}

// Version prints the build revision.
type Version struct {
	revision string
}

// NewVersion creates the version command.
func NewVersion(revision string) *Version { return &Version{revision: revision} }

func (v *Version) Name() string        { return "version" }
func (v *Version) Description() string { return "Prints the quill version" }

func (v *Version) Execute(context.Context) (Result, error) {
	return Result{Kind: KindHandled, Message: "quill " + v.revision}, nil
}

// Quit ends the session.
type Quit struct{}

func (Quit) Name() string        { return "quit" }
func (Quit) Description() string { return "Exits the console" }

func (Quit) Execute(context.Context) (Result, error) {
	return Result{Kind: KindExit, Message: "bye"}, nil
}

// Recents provides read access to past command invocations.
type Recents interface {
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
}

// historyLimit caps the entries shown by the history command.
const historyLimit = 20

// History shows recent command invocations from the history store.
type History struct {
	store Recents
}

// NewHistory creates the history command over the given store.
func NewHistory(store Recents) *History { return &History{store: store} }

func (h *History) Name() string        { return "history" }
func (h *History) Description() string { return "Shows recent commands" }

func (h *History) Execute(ctx context.Context) (Result, error) {
	if h.store == nil {
		return Result{Kind: KindHandled, Message: "history is disabled"}, nil
	}

	entries, err := h.store.Recent(ctx, historyLimit)
	if err != nil {
		return Result{}, fmt.Errorf("load history: %w", err)
	}
	if len(entries) == 0 {
		return Result{Kind: KindHandled, Message: "no history recorded yet"}, nil
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  /%s (%s)\n", e.CreatedAt.Format(time.DateTime), e.Command, e.Outcome)
	}
	return Result{Kind: KindHandled, Message: strings.TrimRight(b.String(), "\n")}, nil
}

// Custom is a user-defined command loaded from a markdown file with
// frontmatter. invoking it shows the file body.
type Custom struct {
	name, description, body string
}

// NewCustom creates a custom command from loaded file content.
func NewCustom(name, description, body string) *Custom {
	return &Custom{name: name, description: description, body: body}
}

func (c *Custom) Name() string        { return c.name }
func (c *Custom) Description() string { return c.description }

func (c *Custom) Execute(context.Context) (Result, error) {
	return Result{Kind: KindHandled, Message: c.body, Markdown: true}, nil
}
