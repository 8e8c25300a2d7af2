// Package optimizer ranks candidates across weighted objectives with hard
// and soft constraints, Pareto-dominance marking and optional diversity
// re-ranking.
package optimizer

import (
	"fmt"
	"sort"
)

// Objective scores one axis for a candidate. Scores are in [0,1]. When
// Minimize is set, lower raw scores are better and the weighted overall uses
// the normalized complement.
type Objective[T any] struct {
	Name     string
	Weight   float64
	Minimize bool
	Evaluate func(T) float64
}

// HardConstraint drops candidates outright.
type HardConstraint[T any] struct {
	Name  string
	Check func(T) bool
}

// SoftConstraint scales every objective score by a satisfaction in [0,1].
type SoftConstraint[T any] struct {
	Name         string
	Satisfaction func(T) float64
}

// Config tunes the ranking pipeline.
type Config struct {
	MaxResults int
	ParetoOnly bool
	// DiversityWeight > 0 enables the diversity re-rank over DiversityDimensions.
	DiversityWeight     float64
	DiversityDimensions []string
}

// Ranked is one candidate with its evaluation attached.
type Ranked[T any] struct {
	Candidate       T
	ObjectiveScores map[string]float64 // post-penalty raw scores
	Overall         float64
	ParetoOptimal   bool
	TradeOffs       []string
	UnmetSoft       []string
}

// Optimizer runs the multi-criteria ranking pipeline.
type Optimizer[T any] struct {
	objectives []Objective[T]
	hard       []HardConstraint[T]
	soft       []SoftConstraint[T]
	config     Config
	// DimensionOf extracts a diversity dimension value from a candidate.
	dimensionOf func(T, string) string
}

// New validates the configuration up front: objectives must be present, have
// unique names and positive weights.
func New[T any](
	objectives []Objective[T],
	hard []HardConstraint[T],
	soft []SoftConstraint[T],
	config Config,
	dimensionOf func(T, string) string,
) (*Optimizer[T], error) {
	if len(objectives) == 0 {
		return nil, fmt.Errorf("at least one objective is required")
	}

	seen := make(map[string]struct{}, len(objectives))
	for _, objective := range objectives {
		if objective.Name == "" {
			return nil, fmt.Errorf("objective name must not be empty")
		}
		if _, ok := seen[objective.Name]; ok {
			return nil, fmt.Errorf("duplicate objective: %s", objective.Name)
		}
		seen[objective.Name] = struct{}{}
		if objective.Weight <= 0 {
			return nil, fmt.Errorf("objective %s: weight must be positive", objective.Name)
		}
		if objective.Evaluate == nil {
			return nil, fmt.Errorf("objective %s: evaluator is required", objective.Name)
		}
	}

	if config.DiversityWeight > 0 && (len(config.DiversityDimensions) == 0 || dimensionOf == nil) {
		return nil, fmt.Errorf("diversity re-ranking requires dimensions and an extractor")
	}

	return &Optimizer[T]{
		objectives:  objectives,
		hard:        hard,
		soft:        soft,
		config:      config,
		dimensionOf: dimensionOf,
	}, nil
}

// Rank runs the full pipeline and returns candidates best-first.
func (o *Optimizer[T]) Rank(candidates []T) []*Ranked[T] {
	ranked := make([]*Ranked[T], 0, len(candidates))

	for _, candidate := range candidates {
		if !o.passesHard(candidate) {
			continue
		}

		entry := &Ranked[T]{
			Candidate:       candidate,
			ObjectiveScores: make(map[string]float64, len(o.objectives)),
		}

		penalty, unmet := o.softPenalty(candidate)
		entry.UnmetSoft = unmet

		totalWeight := 0.0
		for _, objective := range o.objectives {
			score := clamp01(objective.Evaluate(candidate)) * penalty
			entry.ObjectiveScores[objective.Name] = score

			normalized := score
			if objective.Minimize {
				normalized = 1 - score
			}
			entry.Overall += normalized * objective.Weight
			totalWeight += objective.Weight
		}
		entry.Overall /= totalWeight

		ranked = append(ranked, entry)
	}

	o.markPareto(ranked)
	for _, entry := range ranked {
		entry.TradeOffs = o.tradeOffs(entry)
	}

	if o.config.DiversityWeight > 0 {
		o.diversityRerank(ranked)
	} else {
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Overall > ranked[j].Overall
		})
	}

	if o.config.ParetoOnly {
		filtered := ranked[:0]
		for _, entry := range ranked {
			if entry.ParetoOptimal {
				filtered = append(filtered, entry)
			}
		}
		ranked = filtered
	}

	if o.config.MaxResults > 0 && len(ranked) > o.config.MaxResults {
		ranked = ranked[:o.config.MaxResults]
	}
	return ranked
}

func (o *Optimizer[T]) passesHard(candidate T) bool {
	for _, constraint := range o.hard {
		if !constraint.Check(candidate) {
			return false
		}
	}
	return true
}

// softPenalty multiplies satisfactions together and reports constraints
// satisfied below 1.
func (o *Optimizer[T]) softPenalty(candidate T) (float64, []string) {
	penalty := 1.0
	var unmet []string
	for _, constraint := range o.soft {
		satisfaction := clamp01(constraint.Satisfaction(candidate))
		penalty *= satisfaction
		if satisfaction < 1 {
			unmet = append(unmet, constraint.Name)
		}
	}
	return penalty, unmet
}

// markPareto flags candidates not dominated by any other. A dominates B iff
// A is no worse than B on every objective and strictly better on at least
// one, respecting each objective's direction.
func (o *Optimizer[T]) markPareto(ranked []*Ranked[T]) {
	for _, entry := range ranked {
		entry.ParetoOptimal = true
		for _, other := range ranked {
			if other == entry {
				continue
			}
			if o.dominates(other, entry) {
				entry.ParetoOptimal = false
				break
			}
		}
	}
}

func (o *Optimizer[T]) dominates(a, b *Ranked[T]) bool {
	strictlyBetter := false
	for _, objective := range o.objectives {
		scoreA := a.ObjectiveScores[objective.Name]
		scoreB := b.ObjectiveScores[objective.Name]
		if objective.Minimize {
			scoreA, scoreB = -scoreA, -scoreB
		}
		if scoreA < scoreB {
			return false
		}
		if scoreA > scoreB {
			strictlyBetter = true
		}
	}
	return strictlyBetter
}

// tradeOffs names the strongest and weakest objective for the candidate.
func (o *Optimizer[T]) tradeOffs(entry *Ranked[T]) []string {
	if len(o.objectives) < 2 {
		return nil
	}

	normalized := func(objective Objective[T]) float64 {
		score := entry.ObjectiveScores[objective.Name]
		if objective.Minimize {
			return 1 - score
		}
		return score
	}

	best, worst := o.objectives[0], o.objectives[0]
	for _, objective := range o.objectives[1:] {
		if normalized(objective) > normalized(best) {
			best = objective
		}
		if normalized(objective) < normalized(worst) {
			worst = objective
		}
	}

	if best.Name == worst.Name {
		return nil
	}
	return []string{fmt.Sprintf("strong on %s, weaker on %s", best.Name, worst.Name)}
}

// diversityRerank scans in score-descending order and rewards candidates
// introducing unseen dimension values.
func (o *Optimizer[T]) diversityRerank(ranked []*Ranked[T]) {
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Overall > ranked[j].Overall
	})

	seen := make(map[string]map[string]struct{}, len(o.config.DiversityDimensions))
	for _, dimension := range o.config.DiversityDimensions {
		seen[dimension] = make(map[string]struct{})
	}

	for _, entry := range ranked {
		fresh := 0
		for _, dimension := range o.config.DiversityDimensions {
			value := o.dimensionOf(entry.Candidate, dimension)
			if value == "" {
				continue
			}
			if _, ok := seen[dimension][value]; !ok {
				fresh++
				seen[dimension][value] = struct{}{}
			}
		}
		if fresh > 0 {
			bonus := o.config.DiversityWeight * float64(fresh) / float64(len(o.config.DiversityDimensions))
			entry.Overall += bonus
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Overall > ranked[j].Overall
	})
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
