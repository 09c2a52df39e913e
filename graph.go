package wikisynth

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// IdeaNode is a named idea in an IdeaGraph.
type IdeaNode struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group"`
}

// IdeaGraph is a small user-built graph of ideas with symmetric connections.
// It lives in memory only and is not safe for concurrent use.
type IdeaGraph struct {
	nodes map[string]*IdeaNode
	order []string
	edges map[string]map[string]struct{}
}

// NewIdeaGraph returns an empty graph.
func NewIdeaGraph() *IdeaGraph {
	return &IdeaGraph{
		nodes: make(map[string]*IdeaNode),
		edges: make(map[string]map[string]struct{}),
	}
}

// AddNode adds an idea and returns it with a generated ID.
func (g *IdeaGraph) AddNode(name, group string) (*IdeaNode, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Errorf(EINVALID, "idea name required")
	}

	node := &IdeaNode{
		ID:    uuid.New().String(),
		Name:  name,
		Group: strings.TrimSpace(group),
	}
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	g.edges[node.ID] = make(map[string]struct{})
	return node, nil
}

// AddKeywords adds one node per keyword in group, skipping names that are
// already present (case-insensitive). It returns the nodes it created.
func (g *IdeaGraph) AddKeywords(keywords []string, group string) []*IdeaNode {
	var added []*IdeaNode
	for _, kw := range keywords {
		if g.FindNodeByName(kw) != nil {
			continue
		}
		node, err := g.AddNode(kw, group)
		if err != nil {
			continue
		}
		added = append(added, node)
	}
	return added
}

// FindNodeByName returns the first node whose name matches case-insensitively.
func (g *IdeaGraph) FindNodeByName(name string) *IdeaNode {
	name = strings.TrimSpace(name)
	for _, id := range g.order {
		if strings.EqualFold(g.nodes[id].Name, name) {
			return g.nodes[id]
		}
	}
	return nil
}

// Node returns the node with the given ID.
// Returns ENOTFOUND if it does not exist.
func (g *IdeaGraph) Node(id string) (*IdeaNode, error) {
	node, ok := g.nodes[id]
	if !ok {
		return nil, Errorf(ENOTFOUND, "idea %q not found", id)
	}
	return node, nil
}

// Nodes returns all nodes in insertion order.
func (g *IdeaGraph) Nodes() []*IdeaNode {
	nodes := make([]*IdeaNode, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Connect links two distinct nodes in both directions. Connecting an
// already connected pair is a no-op.
func (g *IdeaGraph) Connect(a, b string) error {
	if a == b {
		return Errorf(EINVALID, "cannot connect an idea to itself")
	}
	if _, err := g.Node(a); err != nil {
		return err
	}
	if _, err := g.Node(b); err != nil {
		return err
	}
	g.edges[a][b] = struct{}{}
	g.edges[b][a] = struct{}{}
	return nil
}

// Disconnect removes the link between two nodes in both directions.
func (g *IdeaGraph) Disconnect(a, b string) error {
	if _, err := g.Node(a); err != nil {
		return err
	}
	if _, err := g.Node(b); err != nil {
		return err
	}
	delete(g.edges[a], b)
	delete(g.edges[b], a)
	return nil
}

// Connected reports whether a and b are linked.
func (g *IdeaGraph) Connected(a, b string) bool {
	_, ok := g.edges[a][b]
	return ok
}

// Neighbors returns the nodes linked to id in insertion order.
func (g *IdeaGraph) Neighbors(id string) ([]*IdeaNode, error) {
	if _, err := g.Node(id); err != nil {
		return nil, err
	}
	var nodes []*IdeaNode
	for _, other := range g.order {
		if _, ok := g.edges[id][other]; ok {
			nodes = append(nodes, g.nodes[other])
		}
	}
	return nodes, nil
}

// RemoveNode deletes a node and all of its connections.
func (g *IdeaGraph) RemoveNode(id string) error {
	if _, err := g.Node(id); err != nil {
		return err
	}
	for other := range g.edges[id] {
		delete(g.edges[other], id)
	}
	delete(g.edges, id)
	delete(g.nodes, id)
	g.order = slices.DeleteFunc(g.order, func(s string) bool { return s == id })
	return nil
}
