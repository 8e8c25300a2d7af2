package graph

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ReachabilityReport summarizes how much of the network a contact can reach
// within the six-degrees bound.
type ReachabilityReport struct {
	ContactID        string
	Reachable        int
	NetworkSize      int
	PercentOfNetwork float64
	AverageDegree    float64
	StrongTies       int // reachable within 2 hops
	WeakTies         int // reachable in 3 to 6 hops
}

// AnalyzeReachability computes the reachability report for a contact.
func (t *Traversal) AnalyzeReachability(id string) (*ReachabilityReport, error) {
	paths, err := t.PathsWithinDegrees(id, DefaultMaxDegrees)
	if err != nil {
		return nil, err
	}

	report := &ReachabilityReport{
		ContactID:   id,
		Reachable:   len(paths),
		NetworkSize: t.graph.Size(),
	}

	if report.NetworkSize > 1 {
		report.PercentOfNetwork = 100 * float64(report.Reachable) / float64(report.NetworkSize-1)
	}

	if len(paths) == 0 {
		return report, nil
	}

	degrees := make([]float64, 0, len(paths))
	for _, path := range paths {
		hops := path.Hops()
		degrees = append(degrees, float64(hops))
		if hops <= 2 {
			report.StrongTies++
		} else {
			report.WeakTies++
		}
	}
	report.AverageDegree = stat.Mean(degrees, nil)

	return report, nil
}

// SuperConnector is a contact ranked by its ability to bridge the network.
type SuperConnector struct {
	ID             string
	Score          float64
	Direct         int
	ThreeHopReach  float64 // share of the network reachable within 3 hops
	InfluenceScore float64
}

// SuperConnectors ranks the topN contacts by
// 0.3*direct + 0.4*threeHopReach + 0.3*influence, where influence blends
// normalized connection count with average edge strength and trust.
// This is a batch analytics path; run it off the request path.
func (t *Traversal) SuperConnectors(topN int) ([]SuperConnector, error) {
	if topN <= 0 {
		return nil, nil
	}

	maxDegree := 0
	for id := range t.graph.nodes {
		if d := t.graph.Degree(id); d > maxDegree {
			maxDegree = d
		}
	}
	if maxDegree == 0 {
		return nil, nil
	}

	networkSize := t.graph.Size()
	connectors := make([]SuperConnector, 0, networkSize)

	for id := range t.graph.nodes {
		direct := t.graph.Degree(id)
		if direct == 0 {
			continue
		}

		paths, err := t.PathsWithinDegrees(id, 3)
		if err != nil {
			return nil, err
		}
		threeHop := 0.0
		if networkSize > 1 {
			threeHop = float64(len(paths)) / float64(networkSize-1)
		}

		strengths := make([]float64, 0, direct)
		trusts := make([]float64, 0, direct)
		for _, e := range t.graph.adjacency[id] {
			strengths = append(strengths, e.strength)
			trusts = append(trusts, e.trust)
		}

		influence := 0.4*float64(direct)/float64(maxDegree) +
			0.3*stat.Mean(strengths, nil) +
			0.3*stat.Mean(trusts, nil)

		connectors = append(connectors, SuperConnector{
			ID:             id,
			Score:          0.3*float64(direct)/float64(maxDegree) + 0.4*threeHop + 0.3*influence,
			Direct:         direct,
			ThreeHopReach:  threeHop,
			InfluenceScore: influence,
		})
	}

	sort.Slice(connectors, func(i, j int) bool {
		if connectors[i].Score != connectors[j].Score {
			return connectors[i].Score > connectors[j].Score
		}
		return connectors[i].ID < connectors[j].ID
	})

	if len(connectors) > topN {
		connectors = connectors[:topN]
	}
	return connectors, nil
}
