package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/pmatos/great-review/internal/core/annotate"
	"github.com/pmatos/great-review/internal/core/prompt"
)

// PromptCmd synthesizes the review message non-interactively. Without a
// review session there are no annotations, so the output is the
// all-approved summary; it exists to exercise the full pipeline from a
// shell and to sanity-check hunk counts.
type PromptCmd struct {
	flags *Flags
	stdin bool
}

// NewPromptCmd creates a new prompt command.
func NewPromptCmd(flags *Flags) *PromptCmd {
	return &PromptCmd{flags: flags}
}

// Register adds the prompt command to the application.
func (cmd *PromptCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "prompt",
		Usage:     "Print the synthesized review message without opening the TUI",
		ArgsUsage: "[range]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "stdin",
				Usage:       "read unified diff text from stdin instead of invoking git",
				Destination: &cmd.stdin,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *PromptCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() > 1 {
		return fmt.Errorf("expected at most one range argument, got %d", c.Args().Len())
	}

	text, _, err := resolveDiffText(ctx, cmd.flags, c.Args().First(), os.Stdin, cmd.stdin)
	if err != nil {
		return err
	}

	files, err := parseAndFilter(cmd.flags, text)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(c.Root().Writer, prompt.Synthesize(files, annotate.NewStore()))
	return nil
}
