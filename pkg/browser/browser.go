// Package browser opens documents and URLs with the OS default handler.
package browser

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Launcher opens targets with the platform open command.
// it satisfies command.Opener.
type Launcher struct {
	// goos overrides runtime.GOOS for tests; empty means the real platform.
	goos string
	// runCmd starts the open command; overridable in tests.
	runCmd func(ctx context.Context, name string, args ...string) error
}

// New creates a Launcher for the current platform.
func New() *Launcher {
	return &Launcher{
		runCmd: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Start()
		},
	}
}

// Open requests the OS open the target (file path or URL) with its default
// application. the request is fire-and-forget: the handler process is started
// but not awaited, matching how desktop open commands behave.
func (l *Launcher) Open(ctx context.Context, target string) error {
	goos := l.goos
	if goos == "" {
		goos = runtime.GOOS
	}

	var name string
	var args []string
	switch goos {
	case "windows":
		name = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", target}
	case "darwin":
		name = "open"
		args = []string{target}
	case "linux":
		name = "xdg-open"
		args = []string{target}
	default:
		return fmt.Errorf("unsupported platform: %s", goos)
	}

	if err := l.runCmd(ctx, name, args...); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	return nil
}
