package git

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor records invocations and plays back canned responses keyed
// by the joined argument list.
type fakeExecutor struct {
	calls     []string
	responses map[string]string
	failures  map[string]error
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{
		responses: map[string]string{},
		failures:  map[string]error{},
	}
}

func (f *fakeExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	return f.RunDir(ctx, "", cmd, args...)
}

func (f *fakeExecutor) RunDir(_ context.Context, _ string, cmd string, args ...string) ([]byte, error) {
	key := strings.Join(append([]string{cmd}, args...), " ")
	f.calls = append(f.calls, key)
	if err, ok := f.failures[key]; ok {
		return nil, err
	}
	return []byte(f.responses[key]), nil
}

func TestDiff_DefaultUsesHead(t *testing.T) {
	fake := newFakeExecutor()
	fake.responses["git diff HEAD"] = "diff --git a/f b/f\n"

	e := NewExecutor("git", fake)
	out, err := e.Diff(context.Background(), "/repo", DiffOptions{})

	require.NoError(t, err)
	assert.Equal(t, "diff --git a/f b/f\n", out)
	assert.Equal(t, []string{"git diff HEAD"}, fake.calls)
}

func TestDiff_FallsBackWhenNoCommits(t *testing.T) {
	fake := newFakeExecutor()
	fake.failures["git diff HEAD"] = errors.New("ambiguous argument 'HEAD'")
	fake.responses["git diff"] = "diff --git a/f b/f\n"

	e := NewExecutor("git", fake)
	out, err := e.Diff(context.Background(), "/repo", DiffOptions{})

	require.NoError(t, err)
	assert.Equal(t, "diff --git a/f b/f\n", out)
	assert.Equal(t, []string{"git diff HEAD", "git diff"}, fake.calls)
}

func TestDiff_ExplicitRange(t *testing.T) {
	fake := newFakeExecutor()
	fake.responses["git diff main..HEAD"] = "x"

	e := NewExecutor("git", fake)
	out, err := e.Diff(context.Background(), "/repo", DiffOptions{Range: "main..HEAD"})

	require.NoError(t, err)
	assert.Equal(t, "x", out)
	assert.Equal(t, []string{"git diff main..HEAD"}, fake.calls)
}

func TestDiff_RemoteFetchesFirst(t *testing.T) {
	fake := newFakeExecutor()
	fake.responses["git diff origin/main..HEAD"] = "x"

	e := NewExecutor("git", fake)
	_, err := e.Diff(context.Background(), "/repo", DiffOptions{Remote: "origin", Range: "origin/main..HEAD"})

	require.NoError(t, err)
	assert.Equal(t, []string{"git fetch origin", "git diff origin/main..HEAD"}, fake.calls)
}

func TestDiff_RemoteWithoutRangeDiffsAgainstRemote(t *testing.T) {
	fake := newFakeExecutor()
	fake.responses["git diff upstream"] = "x"

	e := NewExecutor("git", fake)
	_, err := e.Diff(context.Background(), "/repo", DiffOptions{Remote: "upstream"})

	require.NoError(t, err)
	assert.Equal(t, []string{"git fetch upstream", "git diff upstream"}, fake.calls)
}

func TestDiff_FetchFailure(t *testing.T) {
	fake := newFakeExecutor()
	fake.failures["git fetch origin"] = errors.New("could not resolve host")

	e := NewExecutor("git", fake)
	_, err := e.Diff(context.Background(), "/repo", DiffOptions{Remote: "origin"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch origin")
}

func TestRepoInfo(t *testing.T) {
	fake := newFakeExecutor()
	fake.responses["git rev-parse --show-toplevel"] = "/home/dev/great-review\n"
	fake.responses["git rev-parse --abbrev-ref HEAD"] = "feat/parser\n"

	e := NewExecutor("git", fake)
	info, err := e.RepoInfo(context.Background(), "/home/dev/great-review")

	require.NoError(t, err)
	assert.Equal(t, "great-review", info.Name)
	assert.Equal(t, "feat/parser", info.Branch)
	assert.Equal(t, "/home/dev/great-review", info.Root)
}

func TestRepoInfo_NotARepo(t *testing.T) {
	fake := newFakeExecutor()
	fake.failures["git rev-parse --show-toplevel"] = errors.New("fatal: not a git repository")

	e := NewExecutor("git", fake)
	_, err := e.RepoInfo(context.Background(), "/tmp")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a git repository")
}

func TestDescribeDiff(t *testing.T) {
	tests := []struct {
		name string
		opts DiffOptions
		want string
	}{
		{"default", DiffOptions{}, "uncommitted changes"},
		{"range", DiffOptions{Range: "v1..v2"}, "v1..v2"},
		{"remote only", DiffOptions{Remote: "origin"}, "vs origin"},
		{"range wins over remote", DiffOptions{Range: "a..b", Remote: "origin"}, "a..b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DescribeDiff(tt.opts))
		})
	}
}
