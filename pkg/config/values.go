package config

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

// Values holds scalar configuration values.
// Fields ending in *Set (e.g., HistoryEnabledSet) track whether that field was
// explicitly set in config. This allows distinguishing explicit false/0 from
// "not set", enabling proper merge behavior where local config can override
// global config with zero values.
type Values struct {
	Model          string // general-purpose model override
	FastModel      string // fast-tier model override
	EmbeddingModel string // embedding model override

	LearnPort    int // learning-platform server port
	LearnPortSet bool

	HistoryEnabled    bool
	HistoryEnabledSet bool

	NotifyChannels      []string // notification channels: telegram, webhook
	NotifyOnExit        bool
	NotifyOnExitSet     bool
	NotifyTimeoutMs     int
	NotifyTimeoutMsSet  bool
	NotifyTelegramToken string
	NotifyTelegramChat  string
	NotifyWebhookURLs   []string
}

// valuesLoader implements config value loading with embedded filesystem fallback.
type valuesLoader struct {
	embedFS embed.FS
}

// newValuesLoader creates a new valuesLoader with the given embedded filesystem.
func newValuesLoader(embedFS embed.FS) *valuesLoader {
	return &valuesLoader{embedFS: embedFS}
}

// Load loads values from config files with fallback chain: local → global → embedded.
// localConfigPath and globalConfigPath are full paths to config files (not directories).
func (vl *valuesLoader) Load(localConfigPath, globalConfigPath string) (Values, error) {
	// start with embedded defaults
	embedded, err := vl.parseValuesFromEmbedded()
	if err != nil {
		return Values{}, fmt.Errorf("parse embedded defaults: %w", err)
	}

	// parse global config if exists
	global, err := vl.parseValuesFromFile(globalConfigPath)
	if err != nil {
		return Values{}, fmt.Errorf("parse global config: %w", err)
	}

	// parse local config if exists
	local, err := vl.parseValuesFromFile(localConfigPath)
	if err != nil {
		return Values{}, fmt.Errorf("parse local config: %w", err)
	}

	// merge: embedded → global → local (local wins)
	result := embedded
	result.mergeFrom(&global)
	result.mergeFrom(&local)

	return result, nil
}

// parseValuesFromFile reads a config file and parses it into Values.
// returns empty Values (not error) if file doesn't exist or contains only
// comments/whitespace. this enables fallback to embedded defaults for files
// that are commented templates.
func (vl *valuesLoader) parseValuesFromFile(path string) (Values, error) {
	if path == "" {
		return Values{}, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is constructed internally
	if err != nil {
		if os.IsNotExist(err) {
			return Values{}, nil
		}
		return Values{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if strings.TrimSpace(stripComments(string(data))) == "" {
		return Values{}, nil
	}

	return vl.parseValuesFromBytes(data)
}

// parseValuesFromEmbedded parses values from the embedded defaults/config file.
func (vl *valuesLoader) parseValuesFromEmbedded() (Values, error) {
	data, err := vl.embedFS.ReadFile("defaults/config")
	if err != nil {
		return Values{}, fmt.Errorf("read embedded defaults: %w", err)
	}
	return vl.parseValuesFromBytes(data)
}

// parseValuesFromBytes parses configuration from a byte slice into Values.
func (vl *valuesLoader) parseValuesFromBytes(data []byte) (Values, error) {
	// ignoreInlineComment: true prevents # from being treated as inline comment marker
	cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data)
	if err != nil {
		return Values{}, fmt.Errorf("parse config: %w", err)
	}

	var values Values
	section := cfg.Section("") // default section (no section header)

	// model overrides
	if key, err := section.GetKey("model"); err == nil {
		values.Model = key.String()
	}
	if key, err := section.GetKey("fast_model"); err == nil {
		values.FastModel = key.String()
	}
	if key, err := section.GetKey("embedding_model"); err == nil {
		values.EmbeddingModel = key.String()
	}

	// learning platform server
	if key, err := section.GetKey("learn_port"); err == nil {
		val, intErr := key.Int()
		if intErr != nil {
			return Values{}, fmt.Errorf("invalid learn_port: %w", intErr)
		}
		if val < 0 || val > 65535 {
			return Values{}, fmt.Errorf("invalid learn_port: must be 0-65535, got %d", val)
		}
		values.LearnPort = val
		values.LearnPortSet = true
	}

	// history
	if key, err := section.GetKey("history_enabled"); err == nil {
		val, boolErr := key.Bool()
		if boolErr != nil {
			return Values{}, fmt.Errorf("invalid history_enabled: %w", boolErr)
		}
		values.HistoryEnabled = val
		values.HistoryEnabledSet = true
	}

	// notifications
	if key, err := section.GetKey("notify_channels"); err == nil {
		values.NotifyChannels = splitList(key.String())
	}
	if key, err := section.GetKey("notify_on_exit"); err == nil {
		val, boolErr := key.Bool()
		if boolErr != nil {
			return Values{}, fmt.Errorf("invalid notify_on_exit: %w", boolErr)
		}
		values.NotifyOnExit = val
		values.NotifyOnExitSet = true
	}
	if key, err := section.GetKey("notify_timeout_ms"); err == nil {
		val, intErr := key.Int()
		if intErr != nil {
			return Values{}, fmt.Errorf("invalid notify_timeout_ms: %w", intErr)
		}
		if val < 0 {
			return Values{}, fmt.Errorf("invalid notify_timeout_ms: must be non-negative, got %d", val)
		}
		values.NotifyTimeoutMs = val
		values.NotifyTimeoutMsSet = true
	}
	if key, err := section.GetKey("notify_telegram_token"); err == nil {
		values.NotifyTelegramToken = key.String()
	}
	if key, err := section.GetKey("notify_telegram_chat"); err == nil {
		values.NotifyTelegramChat = key.String()
	}
	if key, err := section.GetKey("notify_webhook_urls"); err == nil {
		values.NotifyWebhookURLs = splitList(key.String())
	}

	return values, nil
}

// splitList splits a comma-separated config value, dropping empty elements.
func splitList(val string) []string {
	var res []string
	for _, p := range strings.Split(val, ",") {
		if t := strings.TrimSpace(p); t != "" {
			res = append(res, t)
		}
	}
	return res
}

// stripComments removes comment lines (starting with # or ;) from config content.
func stripComments(content string) string {
	var b strings.Builder
	for _, line := range strings.Split(content, "\n") {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "#") || strings.HasPrefix(t, ";") {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// mergeFrom merges non-empty values from src into dst.
func (dst *Values) mergeFrom(src *Values) {
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.FastModel != "" {
		dst.FastModel = src.FastModel
	}
	if src.EmbeddingModel != "" {
		dst.EmbeddingModel = src.EmbeddingModel
	}
	if src.LearnPortSet {
		dst.LearnPort = src.LearnPort
		dst.LearnPortSet = true
	}
	if src.HistoryEnabledSet {
		dst.HistoryEnabled = src.HistoryEnabled
		dst.HistoryEnabledSet = true
	}
	if len(src.NotifyChannels) > 0 {
		dst.NotifyChannels = src.NotifyChannels
	}
	if src.NotifyOnExitSet {
		dst.NotifyOnExit = src.NotifyOnExit
		dst.NotifyOnExitSet = true
	}
	if src.NotifyTimeoutMsSet {
		dst.NotifyTimeoutMs = src.NotifyTimeoutMs
		dst.NotifyTimeoutMsSet = true
	}
	if src.NotifyTelegramToken != "" {
		dst.NotifyTelegramToken = src.NotifyTelegramToken
	}
	if src.NotifyTelegramChat != "" {
		dst.NotifyTelegramChat = src.NotifyTelegramChat
	}
	if len(src.NotifyWebhookURLs) > 0 {
		dst.NotifyWebhookURLs = src.NotifyWebhookURLs
	}
}
