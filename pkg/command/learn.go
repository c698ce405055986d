package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

//go:generate moq -out mocks/opener.go -pkg mocks -skip-ensure -fmt goimports . Opener

// Opener requests the OS open a document or URL with its default handler.
type Opener interface {
	Open(ctx context.Context, target string) error
}

// learnMessage is the confirmation printed by the shell right before it exits.
const learnMessage = "Opening the learning platform in your browser..."

// platform location, joined onto the working directory.
const (
	learnDir     = "enhancements"
	learnSubdir  = "learning-platform"
	learnDocFile = "index.html"
)

// Learn opens the bundled learning platform in the user's default browser
// and signals the shell to exit. it does not check that the document exists:
// locating and rendering it is the job of the OS open handler.
type Learn struct {
	opener Opener
	url    string // when set, opened instead of the on-disk document
}

// NewLearn creates the learn command opening the local platform document.
func NewLearn(opener Opener) *Learn {
	return &Learn{opener: opener}
}

// NewLearnURL creates the learn command opening the given URL instead of the
// on-disk document. used when the learning-platform server is running.
func NewLearnURL(opener Opener, url string) *Learn {
	return &Learn{opener: opener, url: url}
}

// Name returns the dispatch name.
func (l *Learn) Name() string { return "learn" }

// Description returns the help text.
func (l *Learn) Description() string { return "Opens the interactive learning platform" }

// Execute issues a single OS-level open request and returns an exit result.
// an opener failure propagates unchanged, with no result, retry or fallback.
func (l *Learn) Execute(ctx context.Context) (Result, error) {
	target := l.url
	if target == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return Result{}, fmt.Errorf("resolve working directory: %w", err)
		}
		target = filepath.Join(cwd, learnDir, learnSubdir, learnDocFile)
	}

	if err := l.opener.Open(ctx, target); err != nil {
		return Result{}, err
	}

	return Result{Kind: KindExit, Message: learnMessage}, nil
}

// PlatformPath returns the learning platform document path for the given
// working directory.
func PlatformPath(cwd string) string {
	return filepath.Join(cwd, learnDir, learnSubdir, learnDocFile)
}

// PlatformDir returns the learning platform directory for the given working
// directory. used by the learning-platform server to locate content.
func PlatformDir(cwd string) string {
	return filepath.Join(cwd, learnDir, learnSubdir)
}
