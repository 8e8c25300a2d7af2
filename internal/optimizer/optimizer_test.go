package optimizer

import (
	"strings"
	"testing"
)

type candidate struct {
	name     string
	quality  float64
	cost     float64
	industry string
}

func maximize(name string, weight float64, eval func(candidate) float64) Objective[candidate] {
	return Objective[candidate]{Name: name, Weight: weight, Evaluate: eval}
}

func qualityObjective() Objective[candidate] {
	return maximize("quality", 1, func(c candidate) float64 { return c.quality })
}

func costObjective() Objective[candidate] {
	return Objective[candidate]{
		Name:     "cost",
		Weight:   1,
		Minimize: true,
		Evaluate: func(c candidate) float64 { return c.cost },
	}
}

func TestNewValidatesConfiguration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		objectives []Objective[candidate]
		config     Config
	}{
		{name: "no objectives", objectives: nil},
		{
			name: "duplicate names",
			objectives: []Objective[candidate]{
				qualityObjective(),
				qualityObjective(),
			},
		},
		{
			name: "non-positive weight",
			objectives: []Objective[candidate]{
				maximize("quality", 0, func(c candidate) float64 { return c.quality }),
			},
		},
		{
			name:       "missing evaluator",
			objectives: []Objective[candidate]{{Name: "quality", Weight: 1}},
		},
		{
			name:       "diversity without dimensions",
			objectives: []Objective[candidate]{qualityObjective()},
			config:     Config{DiversityWeight: 0.1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := New(tt.objectives, nil, nil, tt.config, nil); err == nil {
				t.Fatal("expected a configuration error")
			}
		})
	}
}

func TestRankOrdersByWeightedOverall(t *testing.T) {
	t.Parallel()

	opt, err := New([]Objective[candidate]{qualityObjective()}, nil, nil, Config{}, nil)
	if err != nil {
		t.Fatalf("building optimizer: %v", err)
	}

	ranked := opt.Rank([]candidate{
		{name: "mid", quality: 0.5},
		{name: "best", quality: 0.9},
		{name: "worst", quality: 0.1},
	})

	if len(ranked) != 3 {
		t.Fatalf("expected 3 ranked candidates, got %d", len(ranked))
	}
	for i, want := range []string{"best", "mid", "worst"} {
		if ranked[i].Candidate.name != want {
			t.Fatalf("position %d = %q, want %q", i, ranked[i].Candidate.name, want)
		}
	}
}

func TestRankRespectsMinimizeDirection(t *testing.T) {
	t.Parallel()

	opt, err := New([]Objective[candidate]{costObjective()}, nil, nil, Config{}, nil)
	if err != nil {
		t.Fatalf("building optimizer: %v", err)
	}

	ranked := opt.Rank([]candidate{
		{name: "expensive", cost: 0.8},
		{name: "cheap", cost: 0.2},
	})

	if ranked[0].Candidate.name != "cheap" {
		t.Fatalf("lower cost must rank first, got %q", ranked[0].Candidate.name)
	}
	if !ranked[0].ParetoOptimal || ranked[1].ParetoOptimal {
		t.Fatal("the cheaper candidate dominates the expensive one")
	}
}

func TestRankMarksParetoFrontier(t *testing.T) {
	t.Parallel()

	opt, err := New(
		[]Objective[candidate]{
			qualityObjective(),
			maximize("speed", 1, func(c candidate) float64 { return c.cost }),
		},
		nil, nil, Config{}, nil,
	)
	if err != nil {
		t.Fatalf("building optimizer: %v", err)
	}

	ranked := opt.Rank([]candidate{
		{name: "quality-extreme", quality: 1, cost: 0},
		{name: "speed-extreme", quality: 0, cost: 1},
		{name: "balanced", quality: 0.5, cost: 0.5},
		{name: "dominated", quality: 0.4, cost: 0.4},
	})

	optimal := make(map[string]bool, len(ranked))
	for _, entry := range ranked {
		optimal[entry.Candidate.name] = entry.ParetoOptimal
	}

	for _, name := range []string{"quality-extreme", "speed-extreme", "balanced"} {
		if !optimal[name] {
			t.Fatalf("%s sits on the frontier", name)
		}
	}
	if optimal["dominated"] {
		t.Fatal("a candidate worse on every axis is not Pareto-optimal")
	}
}

func TestRankParetoOnlyFilters(t *testing.T) {
	t.Parallel()

	opt, err := New(
		[]Objective[candidate]{
			qualityObjective(),
			maximize("speed", 1, func(c candidate) float64 { return c.cost }),
		},
		nil, nil, Config{ParetoOnly: true}, nil,
	)
	if err != nil {
		t.Fatalf("building optimizer: %v", err)
	}

	ranked := opt.Rank([]candidate{
		{name: "frontier", quality: 1, cost: 1},
		{name: "dominated", quality: 0.5, cost: 0.5},
	})

	if len(ranked) != 1 || ranked[0].Candidate.name != "frontier" {
		t.Fatalf("expected only the frontier candidate, got %v", ranked)
	}
}

func TestHardConstraintsDropCandidates(t *testing.T) {
	t.Parallel()

	hard := []HardConstraint[candidate]{{
		Name:  "min_quality",
		Check: func(c candidate) bool { return c.quality >= 0.5 },
	}}

	opt, err := New([]Objective[candidate]{qualityObjective()}, hard, nil, Config{}, nil)
	if err != nil {
		t.Fatalf("building optimizer: %v", err)
	}

	ranked := opt.Rank([]candidate{
		{name: "keep", quality: 0.7},
		{name: "drop", quality: 0.3},
	})

	if len(ranked) != 1 || ranked[0].Candidate.name != "keep" {
		t.Fatalf("hard constraints must drop candidates outright, got %v", ranked)
	}
}

func TestSoftConstraintsPenalize(t *testing.T) {
	t.Parallel()

	soft := []SoftConstraint[candidate]{{
		Name:         "prefer_cheap",
		Satisfaction: func(c candidate) float64 { return 1 - c.cost },
	}}

	opt, err := New([]Objective[candidate]{qualityObjective()}, nil, soft, Config{}, nil)
	if err != nil {
		t.Fatalf("building optimizer: %v", err)
	}

	ranked := opt.Rank([]candidate{{name: "pricey", quality: 1, cost: 0.5}})

	if ranked[0].Overall != 0.5 {
		t.Fatalf("a 0.5 satisfaction must halve the score, got %v", ranked[0].Overall)
	}
	if len(ranked[0].UnmetSoft) != 1 || ranked[0].UnmetSoft[0] != "prefer_cheap" {
		t.Fatalf("partially met constraints must be reported, got %v", ranked[0].UnmetSoft)
	}
}

func TestTradeOffsNameStrongAndWeakObjectives(t *testing.T) {
	t.Parallel()

	opt, err := New(
		[]Objective[candidate]{
			qualityObjective(),
			maximize("speed", 1, func(c candidate) float64 { return c.cost }),
		},
		nil, nil, Config{}, nil,
	)
	if err != nil {
		t.Fatalf("building optimizer: %v", err)
	}

	ranked := opt.Rank([]candidate{{name: "lopsided", quality: 0.9, cost: 0.1}})

	if len(ranked[0].TradeOffs) != 1 {
		t.Fatalf("expected one trade-off line, got %v", ranked[0].TradeOffs)
	}
	if !strings.Contains(ranked[0].TradeOffs[0], "strong on quality") ||
		!strings.Contains(ranked[0].TradeOffs[0], "weaker on speed") {
		t.Fatalf("unexpected trade-off wording: %q", ranked[0].TradeOffs[0])
	}
}

func TestDiversityRerankLiftsFreshDimensions(t *testing.T) {
	t.Parallel()

	opt, err := New(
		[]Objective[candidate]{qualityObjective()},
		nil, nil,
		Config{DiversityWeight: 0.05, DiversityDimensions: []string{"industry"}},
		func(c candidate, dimension string) string {
			if dimension == "industry" {
				return c.industry
			}
			return ""
		},
	)
	if err != nil {
		t.Fatalf("building optimizer: %v", err)
	}

	ranked := opt.Rank([]candidate{
		{name: "tech-1", quality: 0.90, industry: "tech"},
		{name: "tech-2", quality: 0.89, industry: "tech"},
		{name: "bio", quality: 0.88, industry: "bio"},
	})

	if ranked[0].Candidate.name != "tech-1" {
		t.Fatalf("the top candidate stays on top, got %q", ranked[0].Candidate.name)
	}
	if ranked[1].Candidate.name != "bio" {
		t.Fatalf("a fresh industry must jump the duplicate, got %q", ranked[1].Candidate.name)
	}
}

func TestMaxResultsTruncates(t *testing.T) {
	t.Parallel()

	opt, err := New([]Objective[candidate]{qualityObjective()}, nil, nil, Config{MaxResults: 1}, nil)
	if err != nil {
		t.Fatalf("building optimizer: %v", err)
	}

	ranked := opt.Rank([]candidate{
		{name: "a", quality: 0.9},
		{name: "b", quality: 0.8},
	})

	if len(ranked) != 1 || ranked[0].Candidate.name != "a" {
		t.Fatalf("expected only the best candidate, got %v", ranked)
	}
}
