// Package notify sends optional session-end notifications.
package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	ntfy "github.com/go-pkgz/notify"
)

// Params holds configuration for creating a notification Service.
type Params struct {
	Channels      []string // telegram, webhook
	OnExit        bool
	TimeoutMs     int
	TelegramToken string
	TelegramChat  string
	WebhookURLs   []string
}

// Summary holds session data for notifications.
type Summary struct {
	Commands    int    `json:"commands"` // commands dispatched during the session
	LastCommand string `json:"last_command,omitempty"`
	Duration    string `json:"duration"`
	Branch      string `json:"branch,omitempty"`
	Error       string `json:"error,omitempty"` // last command error, if any
}

// logger interface for dependency injection.
type logger interface {
	Warn(format string, args ...any)
}

// channel pairs a notifier with its destination URI.
type channel struct {
	notifier   ntfy.Notifier
	dest       string
	htmlEscape bool // true for channels that use HTML parse mode (e.g., telegram)
}

// Service sends session summaries through configured channels.
type Service struct {
	channels  []channel
	onExit    bool
	timeoutMs int
	hostname  string // resolved once at creation via os.Hostname()
	log       logger
}

// New creates a notification Service from the given Params.
// returns nil, nil if no channels are configured, enabling callers to skip
// nil checks via nil-safe Send. validates required fields per channel.
func New(p Params, log logger) (*Service, error) {
	if len(p.Channels) == 0 {
		return nil, nil //nolint:nilnil // nil,nil signals "no channels configured", Send is nil-safe
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	svc := &Service{
		onExit:    p.OnExit,
		timeoutMs: p.TimeoutMs,
		hostname:  hostname,
		log:       log,
	}
	if svc.timeoutMs <= 0 {
		svc.timeoutMs = 10000
	}

	for _, ch := range p.Channels {
		switch strings.TrimSpace(strings.ToLower(ch)) {
		case "telegram":
			if p.TelegramToken == "" {
				return nil, errors.New("telegram channel: notify_telegram_token is required")
			}
			if p.TelegramChat == "" {
				return nil, errors.New("telegram channel: notify_telegram_chat is required")
			}
			c, cErr := telegramChannelMaker(p)
			if cErr != nil {
				// telegram init makes a live API call to verify the bot token;
				// if the network/API is unavailable, skip the channel instead of
				// blocking startup. redact the token from the error.
				errMsg := strings.ReplaceAll(cErr.Error(), p.TelegramToken, "[REDACTED]")
				log.Warn("telegram channel disabled: %s", errMsg)
				continue
			}
			svc.channels = append(svc.channels, c)
		case "webhook":
			chs, cErr := makeWebhookChannels(p)
			if cErr != nil {
				return nil, fmt.Errorf("webhook channel: %w", cErr)
			}
			svc.channels = append(svc.channels, chs...)
		default:
			return nil, fmt.Errorf("unknown notification channel: %q", ch)
		}
	}

	if len(svc.channels) == 0 {
		log.Warn("all notification channels were disabled due to initialization errors")
	}

	return svc, nil
}

// Send sends a session summary. nil-safe on receiver, errors are logged but
// never returned (best-effort).
func (s *Service) Send(ctx context.Context, sum Summary) {
	if s == nil || !s.onExit {
		return
	}

	msg := s.formatMessage(sum)

	sendCtx, cancel := context.WithTimeout(ctx, time.Duration(s.timeoutMs)*time.Millisecond)
	defer cancel()

	for _, ch := range s.channels {
		text := msg
		if ch.htmlEscape {
			text = html.EscapeString(msg)
		}
		if err := ch.notifier.Send(sendCtx, ch.dest, text); err != nil {
			s.log.Warn("notification failed for %s: %v", ch.notifier, err)
		}
	}
}

// formatMessage creates a plain text notification message from the summary.
func (s *Service) formatMessage(sum Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "quill session ended on %s\n\n", s.hostname)
	fmt.Fprintf(&b, "commands: %d\n", sum.Commands)
	if sum.LastCommand != "" {
		fmt.Fprintf(&b, "last:     /%s\n", sum.LastCommand)
	}
	if sum.Branch != "" {
		fmt.Fprintf(&b, "branch:   %s\n", sum.Branch)
	}
	if sum.Duration != "" {
		fmt.Fprintf(&b, "duration: %s\n", sum.Duration)
	}
	if sum.Error != "" {
		fmt.Fprintf(&b, "error:    %s\n", sum.Error)
	}

	return b.String()
}

// telegramChannelMaker creates a telegram notifier and destination.
// overridden in tests to avoid live API calls.
var telegramChannelMaker = makeTelegramChannel

// makeTelegramChannel creates a telegram notifier and destination.
// caller must validate that TelegramToken and TelegramChat are non-empty.
func makeTelegramChannel(p Params) (channel, error) {
	tg, err := ntfy.NewTelegram(ntfy.TelegramParams{Token: p.TelegramToken})
	if err != nil {
		return channel{}, fmt.Errorf("create telegram notifier: %w", err)
	}

	dest := fmt.Sprintf("telegram:%s?parseMode=HTML", p.TelegramChat)
	return channel{notifier: tg, dest: dest, htmlEscape: true}, nil
}

// makeWebhookChannels creates webhook notifiers for each configured URL.
func makeWebhookChannels(p Params) ([]channel, error) {
	if len(p.WebhookURLs) == 0 {
		return nil, errors.New("notify_webhook_urls is required")
	}

	wh := ntfy.NewWebhook(ntfy.WebhookParams{})
	var channels []channel
	for _, u := range p.WebhookURLs {
		channels = append(channels, channel{notifier: wh, dest: u})
	}
	return channels, nil
}
