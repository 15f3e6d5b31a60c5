package git

import (
	"context"
	"fmt"
)

// DiffOptions selects which diff to retrieve. Both fields are opaque
// strings handed through from the CLI.
type DiffOptions struct {
	// Range is a commit range expression (e.g. "main..HEAD"); empty means
	// all uncommitted changes against HEAD.
	Range string
	// Remote, when set, is fetched first so Range can reference its refs;
	// with no Range the diff is taken against the remote's default branch.
	Remote string
}

// Diff retrieves unified diff text for the given options.
//
// With no range the diff covers working tree and staged changes ("diff
// HEAD"), falling back to a plain "diff" for repositories without any
// commits yet.
func (e *Executor) Diff(ctx context.Context, dir string, opts DiffOptions) (string, error) {
	if opts.Remote != "" {
		if _, err := e.exec.RunDir(ctx, dir, e.gitPath, "fetch", opts.Remote); err != nil {
			return "", fmt.Errorf("fetch %s: %w", opts.Remote, err)
		}
	}

	target := opts.Range
	if target == "" && opts.Remote != "" {
		// Bare remote resolves through the remote's HEAD symref.
		target = opts.Remote
	}

	if target != "" {
		out, err := e.exec.RunDir(ctx, dir, e.gitPath, "diff", target)
		if err != nil {
			return "", fmt.Errorf("git diff %s: %w", target, err)
		}
		return string(out), nil
	}

	out, err := e.exec.RunDir(ctx, dir, e.gitPath, "diff", "HEAD")
	if err == nil {
		return string(out), nil
	}

	// Repositories with no commits have no HEAD to diff against.
	out, ferr := e.exec.RunDir(ctx, dir, e.gitPath, "diff")
	if ferr != nil {
		return "", fmt.Errorf("git diff: %w", ferr)
	}
	return string(out), nil
}

// DescribeDiff returns a human-readable description of what the options
// select, for the status line.
func DescribeDiff(opts DiffOptions) string {
	switch {
	case opts.Range != "":
		return opts.Range
	case opts.Remote != "":
		return "vs " + opts.Remote
	default:
		return "uncommitted changes"
	}
}
