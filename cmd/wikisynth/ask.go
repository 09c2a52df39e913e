package main

import (
	"fmt"

	"github.com/fwojciec/wikisynth"
	"github.com/fwojciec/wikisynth/gemini"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	article, err := deps.Parser.Parse(deps.Ctx, c.Title)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikisynth.ErrorMessage(err))
		return err
	}

	if deps.TokenCounter != nil {
		prompt := gemini.BuildUserPrompt(article, c.Question)
		if n, err := deps.TokenCounter.CountTokens(deps.Ctx, prompt); err == nil {
			deps.Logger.Debug("ask prompt", "title", article.Title, "tokens", FormatTokens(n))
		}
	}

	answer, err := deps.Asker.Ask(deps.Ctx, article, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikisynth.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
