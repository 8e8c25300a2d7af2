package graph

import (
	"sort"
)

// UnreachableDegrees marks contacts with no path within the traversal bound.
const UnreachableDegrees = -1

// SixDegreesResult reports whether two contacts are connected within six
// degrees of separation and how.
type SixDegreesResult struct {
	Connected bool
	Degrees   int
	Path      *Path
	Insight   string
}

// VerifySixDegrees checks the six-degrees hypothesis for a pair of contacts.
func (t *Traversal) VerifySixDegrees(a, b string) (*SixDegreesResult, error) {
	path, err := t.ShortestPath(a, b)
	if err != nil {
		return nil, err
	}

	if path == nil {
		// The bounded search cannot tell "far apart" from "different
		// clusters": probe past the bound before declaring the pair
		// disconnected.
		if distant := t.shortestPath(a, b, t.graph.Size()); distant != nil {
			return &SixDegreesResult{
				Connected: false,
				Degrees:   distant.Hops(),
				Path:      distant,
				Insight:   "beyond the six-degrees range",
			}, nil
		}
		return &SixDegreesResult{
			Connected: false,
			Degrees:   UnreachableDegrees,
			Insight:   "no path found: the contacts live in separate clusters of the network",
		}, nil
	}

	degrees := path.Hops()
	result := &SixDegreesResult{
		Connected: true,
		Degrees:   degrees,
		Path:      path,
	}

	switch {
	case degrees == 0:
		result.Insight = "same contact"
	case degrees == 1:
		result.Insight = "direct connection: no introduction needed"
	case degrees == 2:
		result.Insight = "one introduction away through a shared contact"
	case degrees == 3:
		result.Insight = "close network proximity: reachable through a short chain"
	default:
		result.Insight = "six degrees of separation demonstrated"
	}

	return result, nil
}

// Connector is a contact recurring across alternative paths.
type Connector struct {
	ID    string
	Count int
}

// ConnectorNodes returns intermediate contacts that appear on more than one
// of the provided paths, ranked by how often they recur.
func ConnectorNodes(paths []*Path) []Connector {
	counts := make(map[string]int)
	for _, path := range paths {
		if path == nil || len(path.Nodes) < 3 {
			continue
		}
		for _, node := range path.Nodes[1 : len(path.Nodes)-1] {
			counts[node]++
		}
	}

	connectors := make([]Connector, 0, len(counts))
	for id, count := range counts {
		if count > 1 {
			connectors = append(connectors, Connector{ID: id, Count: count})
		}
	}

	sort.Slice(connectors, func(i, j int) bool {
		if connectors[i].Count != connectors[j].Count {
			return connectors[i].Count > connectors[j].Count
		}
		return connectors[i].ID < connectors[j].ID
	})

	return connectors
}
