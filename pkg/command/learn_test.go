package command

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillforge/quill/pkg/command/mocks"
)

// chdir changes the working directory for the test and restores it on
// cleanup; it stands in for testing.T.Chdir, which needs Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLearn_Descriptor(t *testing.T) {
	l := NewLearn(&mocks.OpenerMock{})
	assert.Equal(t, "learn", l.Name())
	assert.Equal(t, "Opens the interactive learning platform", l.Description())
}

func TestLearn_Execute(t *testing.T) {
	chdir(t, t.TempDir())
	cwd, err := os.Getwd()
	require.NoError(t, err)

	opener := &mocks.OpenerMock{
		OpenFunc: func(ctx context.Context, target string) error { return nil },
	}
	l := NewLearn(opener)

	res, err := l.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, KindExit, res.Kind)
	assert.Equal(t, "Opening the learning platform in your browser...", res.Message)
	assert.False(t, res.Markdown)

	calls := opener.OpenCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, filepath.Join(cwd, "enhancements", "learning-platform", "index.html"), calls[0].Target)
}

func TestLearn_ExecuteOpenerFailure(t *testing.T) {
	chdir(t, t.TempDir())

	openErr := errors.New("no handler for html")
	opener := &mocks.OpenerMock{
		OpenFunc: func(ctx context.Context, target string) error { return openErr },
	}
	l := NewLearn(opener)

	res, err := l.Execute(context.Background())
	require.Error(t, err)
	assert.Equal(t, openErr, err, "opener failure must propagate unchanged")
	assert.Equal(t, Result{}, res, "no result on failure")
}

func TestLearn_ExecuteIdempotent(t *testing.T) {
	chdir(t, t.TempDir())

	opener := &mocks.OpenerMock{
		OpenFunc: func(ctx context.Context, target string) error { return nil },
	}
	l := NewLearn(opener)

	first, err := l.Execute(context.Background())
	require.NoError(t, err)
	second, err := l.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second, "no state carries over between invocations")
	require.Len(t, opener.OpenCalls(), 2, "each invocation issues an independent open request")
	assert.Equal(t, opener.OpenCalls()[0].Target, opener.OpenCalls()[1].Target)
}

func TestLearn_ExecuteWithURL(t *testing.T) {
	opener := &mocks.OpenerMock{
		OpenFunc: func(ctx context.Context, target string) error { return nil },
	}
	l := NewLearnURL(opener, "http://localhost:8099")

	res, err := l.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, KindExit, res.Kind)

	calls := opener.OpenCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "http://localhost:8099", calls[0].Target)
}

func TestPlatformPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/home/u/project", "enhancements", "learning-platform", "index.html"),
		PlatformPath("/home/u/project"))
	assert.Equal(t, filepath.Join("/home/u/project", "enhancements", "learning-platform"),
		PlatformDir("/home/u/project"))
}
