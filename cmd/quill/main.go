// Package main provides quill - an interactive agent console.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/quillforge/quill/pkg/browser"
	"github.com/quillforge/quill/pkg/command"
	"github.com/quillforge/quill/pkg/config"
	"github.com/quillforge/quill/pkg/git"
	"github.com/quillforge/quill/pkg/history"
	"github.com/quillforge/quill/pkg/learn"
	"github.com/quillforge/quill/pkg/notify"
	"github.com/quillforge/quill/pkg/shell"
	"github.com/quillforge/quill/pkg/transcript"
)

// opts holds all command-line options.
type opts struct {
	ServeLearn bool `short:"s" long:"serve-learn" description:"serve the learning platform with live reload"`
	Port       int  `short:"p" long:"port" description:"learning platform port, overrides config"`
	NoColor    bool `long:"no-color" description:"disable color output"`
	Version    bool `short:"v" long:"version" description:"print version and exit"`
}

var revision = "unknown"

func main() {
	fmt.Printf("quill %s\n", revision)

	var o opts
	parser := flags.NewParser(&o, flags.Default)
	parser.Usage = "[OPTIONS]"

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if o.Version {
		os.Exit(0)
	}

	// setup context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, o); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o opts) error {
	cfg, err := config.Load("") // empty string uses default location
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	branch, dirty := repoState()

	log, err := transcript.NewLogger(transcript.Config{
		Dir:     filepath.Join(cfg.ConfigDir, "sessions"),
		Branch:  branch,
		NoColor: o.NoColor,
	})
	if err != nil {
		return fmt.Errorf("create transcript logger: %w", err)
	}
	defer log.Close()

	store := openHistory(cfg, log)
	if store != nil {
		defer store.Close()
	}

	notifier, err := notify.New(notify.Params{
		Channels:      cfg.NotifyChannels,
		OnExit:        cfg.NotifyOnExit,
		TimeoutMs:     cfg.NotifyTimeoutMs,
		TelegramToken: cfg.NotifyTelegramToken,
		TelegramChat:  cfg.NotifyTelegramChat,
		WebhookURLs:   cfg.NotifyWebhookURLs,
	}, log)
	if err != nil {
		return fmt.Errorf("setup notifications: %w", err)
	}

	reg, err := buildRegistry(ctx, o, cfg, store, log)
	if err != nil {
		return err
	}

	reader, err := shell.NewReader(shell.Prompt(branch, dirty), reg.Names(), historySeed(ctx, store))
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer reader.Close()

	var recorder shell.Recorder
	if store != nil {
		recorder = store
	}

	sh := shell.New(shell.Config{
		Reader:   reader,
		Registry: reg,
		Log:      log,
		Recorder: recorder,
		NoColor:  o.NoColor,
	})

	log.Info("quill session started, %d commands available, try /help", len(reg.Names()))
	runErr := sh.Run(ctx)

	stats := sh.Stats()
	// session context may already be canceled, notifications get their own
	notifier.Send(context.Background(), notify.Summary{
		Commands:    stats.Commands,
		LastCommand: stats.LastCommand,
		Duration:    log.Elapsed(),
		Branch:      branch,
		Error:       stats.LastError,
	})

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("shell: %w", runErr)
	}

	log.Info("session ended after %s", log.Elapsed())
	return nil
}

// buildRegistry assembles builtin and custom commands. when --serve-learn is
// set it also starts the learning-platform server and points /learn at it.
func buildRegistry(ctx context.Context, o opts, cfg *config.Config, store *history.Store, log *transcript.Logger) (*command.Registry, error) {
	opener := browser.New()
	var learnCmd command.Command = command.NewLearn(opener)

	if o.ServeLearn {
		url, err := startLearnServer(ctx, o, cfg, log)
		if err != nil {
			return nil, err
		}
		if url != "" {
			learnCmd = command.NewLearnURL(opener, url)
		}
	}

	m := cfg.Models()
	reg := command.NewRegistry()
	reg.MustRegister(
		learnCmd,
		command.NewModels(m.General, m.Fast, m.Embedding),
		command.NewVersion(revision),
		command.Quit{},
	)
	reg.MustRegister(command.NewHelp(reg))
	if store != nil {
		reg.MustRegister(command.NewHistory(store))
	}

	for _, cc := range cfg.Commands {
		if err := reg.Register(command.NewCustom(cc.Name, cc.Description, cc.Body)); err != nil {
			log.Warn("skipping custom command: %v", err)
		}
	}

	return reg, nil
}

// startLearnServer runs the learning-platform server and its file watcher in
// the background and returns the server URL once it is listening.
func startLearnServer(ctx context.Context, o opts, cfg *config.Config, log *transcript.Logger) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	dir := command.PlatformDir(cwd)

	port := cfg.LearnPort
	if o.Port != 0 {
		port = o.Port
	}

	hub := learn.NewHub()
	srv := learn.NewServer(learn.ServerConfig{Port: port, Dir: dir}, hub)

	go func() {
		if srvErr := srv.Start(ctx); srvErr != nil {
			log.Warn("learning platform server: %v", srvErr)
		}
	}()
	go func() {
		if wErr := learn.Watch(ctx, dir, hub); wErr != nil {
			log.Warn("learning platform watcher: %v", wErr)
		}
	}()

	url := waitForURL(ctx, srv, 2*time.Second)
	if url == "" {
		log.Warn("learning platform server did not start, /learn opens the local document")
		return "", nil
	}

	log.Info("learning platform: %s", url)
	return url, nil
}

// waitForURL polls the server until it reports its listen address.
func waitForURL(ctx context.Context, srv *learn.Server, timeout time.Duration) string {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if url := srv.URL(); url != "" {
			return url
		}
		select {
		case <-ctx.Done():
			return ""
		case <-time.After(10 * time.Millisecond):
		}
	}
	return srv.URL()
}

// openHistory opens the sqlite history store when enabled. failures disable
// history for the session instead of aborting startup.
func openHistory(cfg *config.Config, log *transcript.Logger) *history.Store {
	if !cfg.HistoryEnabled {
		return nil
	}
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		log.Warn("history disabled: %v", err)
		return nil
	}
	return store
}

// historySeed returns past command names oldest first, for the readline buffer.
func historySeed(ctx context.Context, store *history.Store) []string {
	if store == nil {
		return nil
	}
	names, err := store.Commands(ctx, 50)
	if err != nil {
		return nil
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

// repoState returns the branch and dirty flag of the working directory's
// repository, zero values when not inside one.
func repoState() (branch string, dirty bool) {
	repo, err := git.Open(".")
	if err != nil {
		return "", false
	}
	branch, err = repo.CurrentBranch()
	if err != nil {
		return "", false
	}
	dirty, _ = repo.IsDirty()
	return branch, dirty
}
