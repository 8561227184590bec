package domain

import (
	"maps"
	"slices"
	"sync"
)

// Story is a graph of nodes plus the initial values of its variables.
//
// Edge views are memoized and rebuilt lazily after any SetNode or RemoveNode.
// The memo is guarded by a mutex, so concurrent read-only use is safe; mutating
// a Story while another goroutine reads it is not.
type Story struct {
	ID    string
	Title string

	// Variables holds initial values (string, float64 or bool).
	Variables map[string]any

	nodes map[string]Node

	mu       sync.Mutex
	dirty    bool
	edges    []Edge
	outgoing map[string][]Edge
	incoming map[string][]Edge
}

// NewStory creates an empty story.
func NewStory(id string) *Story {
	return &Story{
		ID:        id,
		Variables: make(map[string]any),
		nodes:     make(map[string]Node),
		dirty:     true,
	}
}

// SetNode adds or replaces a node, keyed by its ID.
func (s *Story) SetNode(n Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nodes == nil {
		s.nodes = make(map[string]Node)
	}
	s.nodes[n.NodeID()] = n
	s.dirty = true
}

// RemoveNode deletes a node. Edges pointing at it are left dangling.
func (s *Story) RemoveNode(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nodes[id]; !ok {
		return
	}
	delete(s.nodes, id)
	s.dirty = true
}

// Node returns the node with the given ID.
func (s *Story) Node(id string) (Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[id]
	return n, ok
}

// HasNode reports whether id names a node of the story.
func (s *Story) HasNode(id string) bool {
	_, ok := s.Node(id)
	return ok
}

// Len returns the number of nodes.
func (s *Story) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.nodes)
}

// NodeIDs returns every node ID in ascending order.
func (s *Story) NodeIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.nodes))
}

// Nodes returns every node ordered by ID.
func (s *Story) Nodes() []Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := slices.Sorted(maps.Keys(s.nodes))
	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.nodes[id])
	}
	return out
}

// StartNodes returns the IDs of all passages flagged as start, sorted.
func (s *Story) StartNodes() []string {
	var ids []string
	for _, n := range s.Nodes() {
		if p, ok := n.(*Passage); ok && p.Start {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// StartNode returns the first start passage (by ID) if there is one.
func (s *Story) StartNode() (string, bool) {
	ids := s.StartNodes()
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// Edges returns all derived edges in canonical order.
// The returned slice is a copy and may be modified by the caller.
func (s *Story) Edges() []Edge {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebuildLocked()
	return slices.Clone(s.edges)
}

// Outgoing returns the edges whose source is id, in canonical order.
func (s *Story) Outgoing(id string) []Edge {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebuildLocked()
	return slices.Clone(s.outgoing[id])
}

// Incoming returns the edges whose target is id, in canonical order.
// Targets need not exist, so dangling IDs may have incoming edges too.
func (s *Story) Incoming(id string) []Edge {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebuildLocked()
	return slices.Clone(s.incoming[id])
}

func (s *Story) rebuildLocked() {
	if !s.dirty && s.outgoing != nil {
		return
	}
	var edges []Edge
	for _, n := range s.nodes {
		edges = append(edges, n.Edges()...)
	}
	SortEdges(edges)

	s.edges = edges
	s.outgoing = make(map[string][]Edge)
	s.incoming = make(map[string][]Edge)
	for _, e := range edges {
		s.outgoing[e.Source] = append(s.outgoing[e.Source], e)
		s.incoming[e.Target] = append(s.incoming[e.Target], e)
	}
	s.dirty = false
}

// InitialVariables returns a copy of the story's variable defaults.
func (s *Story) InitialVariables() map[string]any {
	out := make(map[string]any, len(s.Variables))
	maps.Copy(out, s.Variables)
	return out
}
