package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCommandFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadCommands_FromGlobal(t *testing.T) {
	globalDir := t.TempDir()
	writeCommandFile(t, globalDir, "deploy.md", "---\nname: deploy\ndescription: Shows the deploy runbook\n---\n\nrun make deploy\n")
	writeCommandFile(t, globalDir, "zz.md", "no frontmatter body\n")

	commands, err := loadCommands("", globalDir)
	require.NoError(t, err)
	require.Len(t, commands, 2)

	assert.Equal(t, "deploy", commands[0].Name)
	assert.Equal(t, "Shows the deploy runbook", commands[0].Description)
	assert.Equal(t, "run make deploy", commands[0].Body)

	// name falls back to file basename when frontmatter is absent
	assert.Equal(t, "zz", commands[1].Name)
	assert.Empty(t, commands[1].Description)
}

func TestLoadCommands_LocalReplacesGlobal(t *testing.T) {
	globalDir := t.TempDir()
	localDir := t.TempDir()
	writeCommandFile(t, globalDir, "global.md", "global body\n")
	writeCommandFile(t, localDir, "local.md", "local body\n")

	commands, err := loadCommands(localDir, globalDir)
	require.NoError(t, err)
	require.Len(t, commands, 1, "local commands replace global entirely")
	assert.Equal(t, "local", commands[0].Name)
}

func TestLoadCommands_MissingDirs(t *testing.T) {
	commands, err := loadCommands(filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, commands)
}

func TestLoadCommands_EmptyBodyRejected(t *testing.T) {
	globalDir := t.TempDir()
	writeCommandFile(t, globalDir, "empty.md", "---\nname: empty\n---\n")

	_, err := loadCommands("", globalDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty body")
}

func TestLoadCommands_SortedByName(t *testing.T) {
	globalDir := t.TempDir()
	writeCommandFile(t, globalDir, "bb.md", "body b\n")
	writeCommandFile(t, globalDir, "aa.md", "body a\n")

	commands, err := loadCommands("", globalDir)
	require.NoError(t, err)
	require.Len(t, commands, 2)
	assert.Equal(t, "aa", commands[0].Name)
	assert.Equal(t, "bb", commands[1].Name)
}

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantName string
		wantDesc string
		wantBody string
	}{
		{
			name:     "full frontmatter",
			content:  "---\nname: x\ndescription: Y\n---\nbody here",
			wantName: "x", wantDesc: "Y", wantBody: "body here",
		},
		{
			name:    "no frontmatter",
			content: "just a body", wantBody: "just a body",
		},
		{
			name:    "unterminated frontmatter treated as body",
			content: "---\nname: x\nbody", wantBody: "---\nname: x\nbody",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fm, body, err := parseFrontmatter(tc.content)
			require.NoError(t, err)
			assert.Equal(t, tc.wantName, fm.Name)
			assert.Equal(t, tc.wantDesc, fm.Description)
			assert.Equal(t, tc.wantBody, body)
		})
	}

	t.Run("invalid yaml", func(t *testing.T) {
		_, _, err := parseFrontmatter("---\nname: [unclosed\n---\nbody")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse frontmatter")
	})
}
