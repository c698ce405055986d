package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillforge/quill/pkg/history"
)

func TestHelp_Execute(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(stubCmd{name: "beta"}, stubCmd{name: "alpha"})
	reg.MustRegister(NewHelp(reg))

	cmd, ok := reg.Lookup("help")
	require.True(t, ok)

	res, err := cmd.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, KindHandled, res.Kind)
	assert.True(t, res.Markdown)
	assert.Contains(t, res.Message, "| /alpha | stub alpha |")
	assert.Contains(t, res.Message, "| /help | Lists available commands |")
	assert.Less(t, 0, len(res.Message))
}

func TestModels_Execute(t *testing.T) {
	m := NewModels("qwen3-coder-next", "qwen3-coder-next", "text-embedding-v4")
	assert.Equal(t, "models", m.Name())

	res, err := m.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, KindHandled, res.Kind)
	assert.Contains(t, res.Message, "model:           qwen3-coder-next")
	assert.Contains(t, res.Message, "embedding model: text-embedding-v4")
}

func TestVersion_Execute(t *testing.T) {
	v := NewVersion("v1.2.3")
	res, err := v.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Kind: KindHandled, Message: "quill v1.2.3"}, res)
}

func TestQuit_Execute(t *testing.T) {
	res, err := Quit{}.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, KindExit, res.Kind)
	assert.Equal(t, "bye", res.Message)
}

// fakeRecents is an in-memory Recents implementation for history command tests.
type fakeRecents struct {
	entries []history.Entry
	err     error
}

func (f *fakeRecents) Recent(_ context.Context, limit int) ([]history.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.entries) > limit {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func TestHistory_Execute(t *testing.T) {
	t.Run("nil store reports disabled", func(t *testing.T) {
		res, err := NewHistory(nil).Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "history is disabled", res.Message)
	})

	t.Run("empty store", func(t *testing.T) {
		res, err := NewHistory(&fakeRecents{}).Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "no history recorded yet", res.Message)
	})

	t.Run("entries formatted", func(t *testing.T) {
		ts := time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC)
		store := &fakeRecents{entries: []history.Entry{
			{Command: "learn", Outcome: "exit", CreatedAt: ts},
			{Command: "help", Outcome: "ok", CreatedAt: ts.Add(-time.Minute)},
		}}
		res, err := NewHistory(store).Execute(context.Background())
		require.NoError(t, err)
		assert.Contains(t, res.Message, "/learn (exit)")
		assert.Contains(t, res.Message, "/help (ok)")
	})

	t.Run("store failure wrapped", func(t *testing.T) {
		store := &fakeRecents{err: errors.New("db locked")}
		_, err := NewHistory(store).Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load history")
	})
}

func TestCustom_Execute(t *testing.T) {
	c := NewCustom("deploy", "Shows the deploy runbook", "# deploy\n\nrun make deploy")
	assert.Equal(t, "deploy", c.Name())
	assert.Equal(t, "Shows the deploy runbook", c.Description())

	res, err := c.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, KindHandled, res.Kind)
	assert.True(t, res.Markdown)
	assert.Contains(t, res.Message, "run make deploy")
}
