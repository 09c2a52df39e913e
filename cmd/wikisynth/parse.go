package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/wikisynth"
	"github.com/fwojciec/wikisynth/pipeline"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	progress := func(event pipeline.ProgressEvent) {
		if event.Type == pipeline.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", event.Title, wikisynth.ErrorMessage(event.Error))
		}
	}

	results := pipeline.ParseAll(deps.Ctx, deps.Parser, c.Titles, c.Concurrency, progress)

	var articles []*wikisynth.ParsedArticle
	var firstErr error
	for _, r := range results {
		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		articles = append(articles, r.Article)
	}

	switch {
	case c.JSON:
		if err := c.writeJSON(deps, articles); err != nil {
			return err
		}
	case c.Full:
		for i, a := range articles {
			if i > 0 {
				fmt.Fprintln(deps.Stdout)
			}
			fmt.Fprint(deps.Stdout, wikisynth.FormatArticle(a))
		}
	default:
		for i, a := range articles {
			if i > 0 {
				fmt.Fprintln(deps.Stdout)
			}
			writeSummary(deps.Stdout, a)
			if c.Refs {
				for j, ref := range a.References {
					fmt.Fprintf(deps.Stdout, "  %d. %s\n", j+1, ref)
				}
			}
		}
	}

	return firstErr
}

func (c *ParseCmd) writeJSON(deps *Dependencies, articles []*wikisynth.ParsedArticle) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")

	var v any = articles
	if len(c.Titles) == 1 {
		if len(articles) == 0 {
			return nil
		}
		v = articles[0]
	}
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	return nil
}
