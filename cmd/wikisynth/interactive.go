package main

import (
	"bufio"
	"fmt"
	"strings"
	"sync"

	"github.com/fwojciec/wikisynth"
	"github.com/fwojciec/wikisynth/pipeline"
)

const interactiveHelp = `Type an article title to load it. A new title replaces a load in progress.
Commands:
  :keywords          add the current article's keywords as ideas
  :add NAME          add an idea
  :connect A | B     connect two ideas
  :disconnect A | B  disconnect two ideas
  :remove NAME       remove an idea and its connections
  :ideas             list ideas and their connections
  :quit              exit`

// Run executes the interactive command.
func (c *InteractiveCmd) Run(deps *Dependencies) error {
	r := &repl{
		deps:    deps,
		session: pipeline.NewSession(deps.Parser),
		graph:   wikisynth.NewIdeaGraph(),
	}
	return r.run()
}

type repl struct {
	deps    *Dependencies
	session *pipeline.Session
	graph   *wikisynth.IdeaGraph

	pending sync.WaitGroup

	mu      sync.Mutex // guards output and current
	current *wikisynth.ParsedArticle
}

func (r *repl) run() error {
	fmt.Fprintln(r.deps.Stdout, "Enter an article title, or :help.")

	scanner := bufio.NewScanner(r.deps.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ":") {
			r.load(line)
			continue
		}

		// Commands act on the latest article, so let the load settle first.
		r.pending.Wait()
		if quit := r.command(line); quit {
			break
		}
	}
	r.pending.Wait()
	return scanner.Err()
}

// load parses title in the background. A later load supersedes it.
func (r *repl) load(title string) {
	r.pending.Add(1)
	go func() {
		defer r.pending.Done()

		article, err := r.session.Parse(r.deps.Ctx, title)

		r.mu.Lock()
		defer r.mu.Unlock()
		if wikisynth.ErrorCode(err) == wikisynth.ECANCELED {
			return
		}
		if err != nil {
			fmt.Fprintf(r.deps.Stderr, "error: %s\n", wikisynth.ErrorMessage(err))
			return
		}

		r.current = article
		writeSummary(r.deps.Stdout, article)
		if kws := r.deps.Suggester.Suggest(article); len(kws) > 0 {
			fmt.Fprintf(r.deps.Stdout, "  keywords: %s\n", strings.Join(kws, ", "))
		}
	}()
}

func (r *repl) command(line string) (quit bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	var err error
	switch name {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprintln(r.deps.Stdout, interactiveHelp)
	case ":keywords":
		err = r.addKeywords()
	case ":add":
		var node *wikisynth.IdeaNode
		if node, err = r.graph.AddNode(arg, ""); err == nil {
			fmt.Fprintf(r.deps.Stdout, "Added %q\n", node.Name)
		}
	case ":connect", ":disconnect":
		err = r.link(name == ":connect", arg)
	case ":remove":
		var node *wikisynth.IdeaNode
		if node, err = r.lookup(arg); err == nil {
			err = r.graph.RemoveNode(node.ID)
		}
	case ":ideas":
		r.listIdeas()
	default:
		err = wikisynth.Errorf(wikisynth.EINVALID, "unknown command %q, try :help", name)
	}

	if err != nil {
		fmt.Fprintf(r.deps.Stderr, "error: %s\n", wikisynth.ErrorMessage(err))
	}
	return false
}

func (r *repl) addKeywords() error {
	if r.current == nil {
		return wikisynth.Errorf(wikisynth.EINVALID, "no article loaded")
	}
	added := r.graph.AddKeywords(r.deps.Suggester.Suggest(r.current), r.current.Title)
	fmt.Fprintf(r.deps.Stdout, "Added %d ideas from %s\n", len(added), r.current.Title)
	return nil
}

func (r *repl) link(connect bool, arg string) error {
	left, right, ok := strings.Cut(arg, "|")
	if !ok {
		return wikisynth.Errorf(wikisynth.EINVALID, "usage: :connect A | B")
	}
	a, err := r.lookup(left)
	if err != nil {
		return err
	}
	b, err := r.lookup(right)
	if err != nil {
		return err
	}
	if connect {
		return r.graph.Connect(a.ID, b.ID)
	}
	return r.graph.Disconnect(a.ID, b.ID)
}

func (r *repl) lookup(name string) (*wikisynth.IdeaNode, error) {
	node := r.graph.FindNodeByName(name)
	if node == nil {
		return nil, wikisynth.Errorf(wikisynth.ENOTFOUND, "idea %q not found", strings.TrimSpace(name))
	}
	return node, nil
}

func (r *repl) listIdeas() {
	nodes := r.graph.Nodes()
	if len(nodes) == 0 {
		fmt.Fprintln(r.deps.Stdout, "No ideas yet.")
		return
	}
	for _, n := range nodes {
		neighbors, _ := r.graph.Neighbors(n.ID)
		names := make([]string, 0, len(neighbors))
		for _, nb := range neighbors {
			names = append(names, nb.Name)
		}
		line := n.Name
		if n.Group != "" {
			line += " [" + n.Group + "]"
		}
		if len(names) > 0 {
			line += " -> " + strings.Join(names, ", ")
		}
		fmt.Fprintln(r.deps.Stdout, line)
	}
}
