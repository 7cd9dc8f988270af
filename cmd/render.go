package cmd

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/acdenisSK/release-maker/internal/changelog"
	"github.com/acdenisSK/release-maker/internal/output"
)

var (
	//go:embed assets/example.json
	exampleInput string

	//go:embed assets/explanation.txt
	explanation string
)

// RenderCmd returns the render command.
func RenderCmd() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Render a release document into the release message",
		ArgsUsage: "[FILE]",
		Description: "FILE is a release document in JSON. Standard input is read when FILE is absent.\n" +
			"Run with --explain to learn about the layout of the document.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "example",
				Usage: "Print an example release document",
			},
			&cli.BoolFlag{
				Name:  "explain",
				Usage: "Print an explanation of the document layout and the generated message",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
		},
		Action: renderAction,
	}
}

func renderAction(c *cli.Context) error {
	example, explain := c.Bool("example"), c.Bool("explain")
	if example || explain {
		out := c.App.Writer
		if example {
			fmt.Fprint(out, exampleInput)
		}
		if explain {
			if example {
				fmt.Fprintln(out)
			}
			fmt.Fprint(out, explanation)
		}
		return nil
	}

	data, err := readInput(c)
	if err != nil {
		return err
	}

	release, err := changelog.Parse(data)
	if err != nil {
		return err
	}

	return writeRelease(c, release, output.FormatMarkdown)
}

func readInput(c *cli.Context) ([]byte, error) {
	path := c.Args().First()
	if path == "" || path == "-" {
		reader := c.App.Reader
		if reader == nil {
			reader = os.Stdin
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read release document: %w", err)
	}
	return data, nil
}
