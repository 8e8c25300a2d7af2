package graph

import (
	"fmt"
	"sort"

	"github.com/spigell/intromatch/internal/cache"
)

// Traversal runs path-finding over a graph snapshot with an optional TTL
// cache in front of pair lookups. A nil cache disables caching.
type Traversal struct {
	graph *Graph
	cache *cache.Cache
}

func NewTraversal(g *Graph, c *cache.Cache) *Traversal {
	return &Traversal{graph: g, cache: c}
}

func (t *Traversal) Graph() *Graph {
	return t.graph
}

// ShortestPath returns the minimum-hop path between src and dst, breaking
// ties by maximizing cumulative strength. It returns (nil, nil) when dst is
// unreachable and an error only when either contact is unknown.
func (t *Traversal) ShortestPath(src, dst string) (*Path, error) {
	if err := t.graph.requireNodes(src, dst); err != nil {
		return nil, err
	}

	key := t.cacheKey("shortest", src, dst)
	if cached, ok := t.cacheGet(key); ok {
		path, _ := cached.(*Path)
		return path, nil
	}

	path := t.shortestPath(src, dst, DefaultMaxDegrees)
	t.cacheSet(key, path)
	return path, nil
}

// state tracks the best-known walk to a node during BFS.
type state struct {
	strength float64
	trust    float64
	prev     string
}

// shortestPath runs a level-synchronized BFS so that strength tie-breaking
// at depth d+1 only reads finalized depth-d values.
func (t *Traversal) shortestPath(src, dst string, maxDepth int) *Path {
	if src == dst {
		return &Path{Nodes: []string{src}, Strength: 1, Trust: 1}
	}

	best := map[string]state{src: {strength: 1, trust: 1}}
	level := []string{src}

	for depth := 0; depth < maxDepth && len(level) > 0; depth++ {
		next := make(map[string]state)
		for _, node := range level {
			cur := best[node]
			for _, e := range t.graph.adjacency[node] {
				if _, seen := best[e.to]; seen {
					continue
				}
				candidate := state{
					strength: cur.strength * e.strength,
					trust:    cur.trust * e.trust,
					prev:     node,
				}
				if existing, ok := next[e.to]; !ok || candidate.strength > existing.strength {
					next[e.to] = candidate
				}
			}
		}

		order := make([]string, 0, len(next))
		for node := range next {
			order = append(order, node)
		}
		sort.Strings(order)

		for _, node := range order {
			best[node] = next[node]
		}

		if final, ok := best[dst]; ok {
			return assemblePath(src, dst, best, final)
		}
		level = order
	}

	return nil
}

func assemblePath(src, dst string, best map[string]state, final state) *Path {
	nodes := []string{dst}
	for cur := dst; cur != src; {
		cur = best[cur].prev
		nodes = append(nodes, cur)
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return &Path{Nodes: nodes, Strength: final.strength, Trust: final.trust}
}

// AlternativePaths returns up to k distinct simple paths between src and dst
// bounded by maxDepth, ranked by a blend of length, strength and trust.
func (t *Traversal) AlternativePaths(src, dst string, k, maxDepth int) ([]*Path, error) {
	if err := t.graph.requireNodes(src, dst); err != nil {
		return nil, err
	}
	if maxDepth <= 0 || maxDepth > DefaultMaxDegrees {
		maxDepth = DefaultMaxDegrees
	}
	if k <= 0 {
		return nil, nil
	}

	const explorationCap = 64

	var found []*Path
	visited := map[string]bool{src: true}
	walk := []string{src}

	var dfs func(node string, strength, trust float64)
	dfs = func(node string, strength, trust float64) {
		if len(found) >= explorationCap {
			return
		}
		if node == dst {
			nodes := make([]string, len(walk))
			copy(nodes, walk)
			found = append(found, &Path{Nodes: nodes, Strength: strength, Trust: trust})
			return
		}
		if len(walk)-1 >= maxDepth {
			return
		}
		for _, e := range t.graph.adjacency[node] {
			if visited[e.to] {
				continue
			}
			visited[e.to] = true
			walk = append(walk, e.to)
			dfs(e.to, strength*e.strength, trust*e.trust)
			walk = walk[:len(walk)-1]
			visited[e.to] = false
		}
	}
	dfs(src, 1, 1)

	sort.SliceStable(found, func(i, j int) bool {
		return pathScore(found[i], maxDepth) > pathScore(found[j], maxDepth)
	})

	if len(found) > k {
		found = found[:k]
	}
	return found, nil
}

// pathScore ranks alternative paths: shorter, stronger, more trusted first.
func pathScore(p *Path, maxDepth int) float64 {
	lengthScore := 1 - float64(p.Hops()-1)/float64(maxDepth)
	return 0.4*lengthScore + 0.3*p.AvgStrength() + 0.3*p.AvgTrust()
}

// PathsWithinDegrees returns the shortest path to every contact reachable
// from src within maxDegrees hops. The src itself is not included.
func (t *Traversal) PathsWithinDegrees(src string, maxDegrees int) (map[string]*Path, error) {
	if err := t.graph.requireNodes(src); err != nil {
		return nil, err
	}
	if maxDegrees <= 0 {
		maxDegrees = DefaultMaxDegrees
	}

	key := t.cacheKey(fmt.Sprintf("reach:%d", maxDegrees), src)
	if cached, ok := t.cacheGet(key); ok {
		if paths, ok := cached.(map[string]*Path); ok {
			return paths, nil
		}
	}

	best := map[string]state{src: {strength: 1, trust: 1}}
	level := []string{src}

	for depth := 0; depth < maxDegrees && len(level) > 0; depth++ {
		next := make(map[string]state)
		for _, node := range level {
			cur := best[node]
			for _, e := range t.graph.adjacency[node] {
				if _, seen := best[e.to]; seen {
					continue
				}
				candidate := state{
					strength: cur.strength * e.strength,
					trust:    cur.trust * e.trust,
					prev:     node,
				}
				if existing, ok := next[e.to]; !ok || candidate.strength > existing.strength {
					next[e.to] = candidate
				}
			}
		}

		level = level[:0]
		for node, st := range next {
			best[node] = st
			level = append(level, node)
		}
		sort.Strings(level)
	}

	paths := make(map[string]*Path, len(best)-1)
	for node, st := range best {
		if node == src {
			continue
		}
		paths[node] = assemblePath(src, node, best, st)
	}

	t.cacheSet(key, paths)
	return paths, nil
}

func (t *Traversal) cacheKey(op string, ids ...string) uint64 {
	if t.cache == nil {
		return 0
	}
	return t.cache.Key(op, ids...)
}

func (t *Traversal) cacheGet(key uint64) (any, bool) {
	if t.cache == nil {
		return nil, false
	}
	return t.cache.Get(key)
}

func (t *Traversal) cacheSet(key uint64, value any) {
	if t.cache == nil {
		return
	}
	t.cache.Set(key, value)
}
