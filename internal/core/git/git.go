// Package git obtains diff text and repository metadata via the git
// command-line tool. The core never calls this package; the host resolves
// diff text here and hands plain values to the parser.
package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pmatos/great-review/pkg/executil"
)

// Executor runs git operations using the git binary at gitPath.
type Executor struct {
	gitPath string
	exec    executil.Executor
}

// NewExecutor creates a git executor with the specified git binary path.
func NewExecutor(gitPath string, exec executil.Executor) *Executor {
	return &Executor{gitPath: gitPath, exec: exec}
}

// RepoInfo is informational metadata passed through to the display layer.
type RepoInfo struct {
	Name   string `json:"name"`
	Branch string `json:"branch"`
	Root   string `json:"root"`
}

// FindRoot returns the repository root for the current working directory.
func (e *Executor) FindRoot(ctx context.Context) (string, error) {
	out, err := e.exec.Run(ctx, e.gitPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not inside a git repository: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// RepoInfo returns the repository name, current branch, and root path for
// the given directory.
func (e *Executor) RepoInfo(ctx context.Context, dir string) (RepoInfo, error) {
	rootOut, err := e.exec.RunDir(ctx, dir, e.gitPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return RepoInfo{}, fmt.Errorf("not a git repository: %w", err)
	}
	root := strings.TrimSpace(string(rootOut))

	branchOut, err := e.exec.RunDir(ctx, dir, e.gitPath, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return RepoInfo{}, fmt.Errorf("get current branch: %w", err)
	}

	return RepoInfo{
		Name:   filepath.Base(root),
		Branch: strings.TrimSpace(string(branchOut)),
		Root:   root,
	}, nil
}
