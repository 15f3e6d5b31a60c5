package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/pmatos/great-review/internal/core/annotate"
	"github.com/pmatos/great-review/internal/core/git"
	"github.com/pmatos/great-review/internal/tui"
)

// ReviewCmd is the default action: it resolves the requested diff and
// opens the interactive review TUI over it.
type ReviewCmd struct {
	flags *Flags
}

// NewReviewCmd creates the review command.
func NewReviewCmd(flags *Flags) *ReviewCmd {
	return &ReviewCmd{flags: flags}
}

// Flags returns the review flags, registered on the root command because
// review is the default action.
func (cmd *ReviewCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "remote",
			Usage:       "fetch this remote first and diff against its refs",
			Sources:     cli.EnvVars("GREAT_REVIEW_REMOTE"),
			Destination: &cmd.flags.Remote,
		},
	}
}

// Run resolves the diff selection and launches the review TUI.
func (cmd *ReviewCmd) Run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() > 1 {
		return fmt.Errorf("expected at most one range argument, got %d", c.Args().Len())
	}
	rangeArg := c.Args().First()

	text, info, err := resolveDiffText(ctx, cmd.flags, rangeArg, nil, false)
	if err != nil {
		return err
	}

	files, err := parseAndFilter(cmd.flags, text)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		_, _ = fmt.Fprintln(c.Root().Writer, "No changes to review.")
		return nil
	}

	m := tui.New(tui.Options{
		Files:     files,
		Repo:      info,
		Selection: git.DescribeDiff(git.DiffOptions{Range: rangeArg, Remote: cmd.flags.Remote}),
		Store:     annotate.NewStore(),
	})

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("run review TUI: %w", err)
	}

	result, ok := final.(tui.Model)
	if !ok || !result.Finalized() {
		return nil
	}

	// Annotations are transient; if the clipboard is unavailable the
	// synthesized prompt must not be lost with them.
	if copyErr := result.CopyErr(); copyErr != nil {
		_, _ = fmt.Fprintln(c.Root().Writer, result.Prompt())
		_, _ = fmt.Fprintf(c.Root().ErrWriter, "clipboard unavailable (%v); prompt printed above\n", copyErr)
		return nil
	}

	_, _ = fmt.Fprintln(c.Root().Writer, "Review prompt copied to clipboard.")
	return nil
}
