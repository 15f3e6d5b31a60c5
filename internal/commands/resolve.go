package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/pmatos/great-review/internal/core/diff"
	"github.com/pmatos/great-review/internal/core/git"
	"github.com/pmatos/great-review/pkg/executil"
)

// gitExecutor builds the git executor from the loaded config.
func (f *Flags) gitExecutor() *git.Executor {
	return git.NewExecutor(f.Config.GitPath, &executil.RealExecutor{})
}

// resolveDiffText obtains raw diff text: from the reader when stdin mode
// is requested, otherwise from git using the range and remote selection.
// Repo metadata is informational and zero-valued in stdin mode.
func resolveDiffText(ctx context.Context, flags *Flags, rangeArg string, stdin io.Reader, useStdin bool) (string, git.RepoInfo, error) {
	if useStdin {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", git.RepoInfo{}, fmt.Errorf("read diff from stdin: %w", err)
		}
		return string(data), git.RepoInfo{Name: "stdin"}, nil
	}

	gitExec := flags.gitExecutor()

	root, err := gitExec.FindRoot(ctx)
	if err != nil {
		return "", git.RepoInfo{}, err
	}

	info, err := gitExec.RepoInfo(ctx, root)
	if err != nil {
		return "", git.RepoInfo{}, err
	}

	opts := git.DiffOptions{Range: rangeArg, Remote: flags.Remote}
	text, err := gitExec.Diff(ctx, root, opts)
	if err != nil {
		return "", git.RepoInfo{}, err
	}

	log.Debug().
		Str("repo", info.Name).
		Str("selection", git.DescribeDiff(opts)).
		Int("bytes", len(text)).
		Msg("resolved diff text")

	return text, info, nil
}

// parseAndFilter parses diff text and drops files matching the configured
// exclude globs. Filtering happens after parsing so parser addressing is
// never affected by configuration.
func parseAndFilter(flags *Flags, text string) ([]diff.File, error) {
	files, err := diff.Parse(text)
	if err != nil {
		return nil, err
	}

	if len(flags.Config.Exclude) == 0 {
		return files, nil
	}

	kept := files[:0]
	for _, f := range files {
		if flags.Config.Excluded(f.Path) {
			log.Debug().Str("path", f.Path).Msg("excluded by config glob")
			continue
		}
		kept = append(kept, f)
	}
	return kept, nil
}
