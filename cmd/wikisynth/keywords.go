package main

import (
	"fmt"

	"github.com/fwojciec/wikisynth"
)

// Run executes the keywords command.
func (c *KeywordsCmd) Run(deps *Dependencies) error {
	article, err := deps.Parser.Parse(deps.Ctx, c.Title)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikisynth.ErrorMessage(err))
		return err
	}

	suggester := *deps.Suggester
	suggester.Limit = c.Limit

	for _, kw := range suggester.Suggest(article) {
		fmt.Fprintln(deps.Stdout, kw)
	}
	return nil
}
