package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/wikisynth"
)

// Run executes the render command.
func (c *RenderCmd) Run(deps *Dependencies) error {
	article, err := deps.Parser.Parse(deps.Ctx, c.Title)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikisynth.ErrorMessage(err))
		return err
	}

	out, err := deps.Renderer.Render(article, deps.Suggester.Suggest(article))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikisynth.ErrorMessage(err))
		return err
	}

	if c.Format == "markdown" {
		if out, err = deps.Converter.Convert(out); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wikisynth.ErrorMessage(err))
			return err
		}
	}

	if c.Output == "" {
		_, err = io.WriteString(deps.Stdout, out)
		return err
	}

	if err := os.WriteFile(c.Output, []byte(out), 0o644); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s (%s)\n", c.Output, FormatBytes(len(out)))
	return nil
}
