package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// DumpCmd prints the parsed diff model as JSON, mainly for debugging the
// parser and for piping the model into other tooling.
type DumpCmd struct {
	flags *Flags
	stdin bool
}

// NewDumpCmd creates a new dump command.
func NewDumpCmd(flags *Flags) *DumpCmd {
	return &DumpCmd{flags: flags}
}

// Register adds the dump command to the application.
func (cmd *DumpCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "dump",
		Usage:     "Parse the diff and print the structured model as JSON",
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

func (cmd *DumpCmd) run(ctx context.Context, c *cli.Command) error {
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

	out, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return fmt.Errorf("encode diff model: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, string(out))
	return nil
}
