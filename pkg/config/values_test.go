package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesLoader_EmbeddedDefaults(t *testing.T) {
	vl := newValuesLoader(defaultsFS)

	values, err := vl.Load("", "")
	require.NoError(t, err)

	assert.Equal(t, 8577, values.LearnPort)
	assert.True(t, values.LearnPortSet)
	assert.True(t, values.HistoryEnabled)
	assert.Equal(t, 10000, values.NotifyTimeoutMs)
	assert.Empty(t, values.Model, "model overrides stay unset so constants apply")
}

func TestValuesLoader_MergeChain(t *testing.T) {
	dir := t.TempDir()
	globalPath := filepath.Join(dir, "global")
	localPath := filepath.Join(dir, "local")

	require.NoError(t, os.WriteFile(globalPath,
		[]byte("model = global\nlearn_port = 9001\nnotify_channels = telegram\n"), 0o600))
	require.NoError(t, os.WriteFile(localPath,
		[]byte("model = local\nhistory_enabled = false\n"), 0o600))

	values, err := newValuesLoader(defaultsFS).Load(localPath, globalPath)
	require.NoError(t, err)

	assert.Equal(t, "local", values.Model, "local wins")
	assert.Equal(t, 9001, values.LearnPort, "global overrides embedded")
	assert.False(t, values.HistoryEnabled, "explicit local false wins")
	assert.Equal(t, []string{"telegram"}, values.NotifyChannels)
}

func TestValuesLoader_CommentedTemplateFallsBack(t *testing.T) {
	dir := t.TempDir()
	globalPath := filepath.Join(dir, "global")
	require.NoError(t, os.WriteFile(globalPath, []byte("# all commented\n# learn_port = 1\n"), 0o600))

	values, err := newValuesLoader(defaultsFS).Load("", globalPath)
	require.NoError(t, err)
	assert.Equal(t, 8577, values.LearnPort, "commented file falls back to embedded defaults")
}

func TestValuesLoader_MissingFilesIgnored(t *testing.T) {
	values, err := newValuesLoader(defaultsFS).Load("/nonexistent/local", "/nonexistent/global")
	require.NoError(t, err)
	assert.Equal(t, 8577, values.LearnPort)
}

func TestValuesLoader_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{name: "bad port type", content: "learn_port = lots\n", errPart: "invalid learn_port"},
		{name: "port out of range", content: "learn_port = 70000\n", errPart: "invalid learn_port"},
		{name: "bad bool", content: "history_enabled = maybe\n", errPart: "invalid history_enabled"},
		{name: "negative timeout", content: "notify_timeout_ms = -1\n", errPart: "invalid notify_timeout_ms"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))

			_, err := newValuesLoader(defaultsFS).Load(path, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errPart)
		})
	}
}

func TestValuesLoader_ListParsing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path,
		[]byte("notify_channels = telegram, webhook ,\nnotify_webhook_urls = https://a/h1,https://b/h2\n"), 0o600))

	values, err := newValuesLoader(defaultsFS).Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"telegram", "webhook"}, values.NotifyChannels)
	assert.Equal(t, []string{"https://a/h1", "https://b/h2"}, values.NotifyWebhookURLs)
}

func TestValues_MergeFromTracksExplicitZero(t *testing.T) {
	dst := Values{HistoryEnabled: true, HistoryEnabledSet: true, LearnPort: 8577, LearnPortSet: true}
	src := Values{HistoryEnabled: false, HistoryEnabledSet: true}

	dst.mergeFrom(&src)
	assert.False(t, dst.HistoryEnabled)
	assert.Equal(t, 8577, dst.LearnPort, "unset fields don't overwrite")
}
