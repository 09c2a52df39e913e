package main

import (
	"fmt"

	"github.com/fwojciec/wikisynth/chi"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := chi.NewServer(deps.Parser, deps.Renderer, deps.Suggester, deps.Gatherer)

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", c.Addr)
	if err := server.ListenAndServe(deps.Ctx, c.Addr); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	return nil
}
