// Package graph implements the contact graph and its traversal: shortest
// paths, bounded alternative paths, six-degrees verification and network
// analytics. All operations work on an immutable snapshot; callers rebuild
// the graph when the network changes.
package graph

import (
	"fmt"
	"math"

	"github.com/spigell/intromatch/internal/network"
)

// DefaultMaxDegrees bounds every traversal. Six hops is the classic
// "six degrees of separation" horizon.
const DefaultMaxDegrees = 6

type edge struct {
	to       string
	strength float64
	trust    float64
}

// Graph is an undirected weighted contact graph built from a snapshot.
type Graph struct {
	nodes     map[string]struct{}
	adjacency map[string][]edge
}

// New builds a graph from contact ids and connections. Edges referring to
// unknown contacts are skipped.
func New(contactIDs []string, connections []*network.Connection) *Graph {
	g := &Graph{
		nodes:     make(map[string]struct{}, len(contactIDs)),
		adjacency: make(map[string][]edge),
	}

	for _, id := range contactIDs {
		g.nodes[id] = struct{}{}
	}

	for _, conn := range connections {
		if _, ok := g.nodes[conn.From]; !ok {
			continue
		}
		if _, ok := g.nodes[conn.To]; !ok {
			continue
		}
		normalized := conn.Normalized()
		g.adjacency[conn.From] = append(g.adjacency[conn.From], edge{conn.To, normalized.Strength, normalized.Trust})
		g.adjacency[conn.To] = append(g.adjacency[conn.To], edge{conn.From, normalized.Strength, normalized.Trust})
	}

	return g
}

// FromSnapshot builds a graph over every contact in the snapshot.
func FromSnapshot(snap *network.Snapshot) *Graph {
	ids := make([]string, 0, len(snap.Contacts))
	for _, contact := range snap.Contacts {
		ids = append(ids, contact.ID)
	}
	return New(ids, snap.Connections)
}

func (g *Graph) Size() int {
	return len(g.nodes)
}

func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

func (g *Graph) Degree(id string) int {
	return len(g.adjacency[id])
}

func (g *Graph) requireNodes(ids ...string) error {
	for _, id := range ids {
		if !g.Has(id) {
			return fmt.Errorf("%w: %s", network.ErrContactNotFound, id)
		}
	}
	return nil
}

// Path is an ordered walk through the graph including both endpoints.
type Path struct {
	Nodes    []string
	Strength float64 // product of edge strengths along the path
	Trust    float64 // product of edge trust levels along the path
}

// Hops is the number of edges in the path (degrees of separation).
func (p *Path) Hops() int {
	if p == nil || len(p.Nodes) == 0 {
		return 0
	}
	return len(p.Nodes) - 1
}

// AvgStrength is the mean edge strength, 1.0 for a zero-hop path.
func (p *Path) AvgStrength() float64 {
	return avgEdgeWeight(p.Strength, p.Hops())
}

// AvgTrust is the mean edge trust, 1.0 for a zero-hop path.
func (p *Path) AvgTrust() float64 {
	return avgEdgeWeight(p.Trust, p.Hops())
}

// avgEdgeWeight converts a product of per-edge weights into a geometric mean.
func avgEdgeWeight(product float64, hops int) float64 {
	if hops == 0 {
		return 1
	}
	if product <= 0 {
		return 0
	}
	return math.Pow(product, 1/float64(hops))
}
