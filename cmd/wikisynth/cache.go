package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/wikisynth"
)

// Run executes the cache list command.
func (c *CacheListCmd) Run(deps *Dependencies) error {
	articles, err := deps.Store.FindArticles(deps.Ctx, wikisynth.ArticleFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikisynth.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "Cache is empty.")
		return nil
	}

	rows := make([][]string, 0, len(articles))
	for _, a := range articles {
		rows = append(rows, []string{
			a.Title,
			FormatBytes(len(a.Wikitext)),
			a.FetchedAt.Format(time.DateTime),
			a.ContentHash,
		})
	}
	for _, line := range alignColumns(rows) {
		fmt.Fprintln(deps.Stdout, line)
	}
	return nil
}

// Run executes the cache delete command.
func (c *CacheDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Store.DeleteArticle(deps.Ctx, c.Title); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikisynth.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Removed %q from cache\n", c.Title)
	return nil
}
