// Package git provides repository information for the console prompt by
// shelling out to the git CLI.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Repo gives read-only access to the repository containing a directory.
type Repo struct {
	root string // absolute path to repository root
}

// Open opens the repository containing path.
// returns an error when path is not inside a git worktree.
func Open(path string) (*Repo, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	cmd := exec.CommandContext(context.Background(), "git", "rev-parse", "--show-toplevel")
	cmd.Dir = absPath
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("open git repository %s: %s", absPath, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("open git repository %s: %w", absPath, err)
	}

	root := strings.TrimSpace(string(out))

	// resolve symlinks for consistent path comparison (macOS /var -> /private/var)
	root, err = filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("eval symlinks: %w", err)
	}

	return &Repo{root: root}, nil
}

// run executes a git command in the repository root and returns trimmed output.
// on failure, returns error with the combined output for diagnostics.
func (r *Repo) run(args ...string) (string, error) {
	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = r.root
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return "", fmt.Errorf("git %s: %s", args[0], msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// Root returns the repository root directory.
func (r *Repo) Root() string {
	return r.root
}

// CurrentBranch returns the checked-out branch name, empty on detached HEAD.
func (r *Repo) CurrentBranch() (string, error) {
	out, err := r.run("branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// IsDirty reports whether the worktree has uncommitted changes.
func (r *Repo) IsDirty() (bool, error) {
	out, err := r.run("status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}
