package value

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/spigell/intromatch/internal/needs"
	"github.com/spigell/intromatch/internal/network"
	"github.com/spigell/intromatch/internal/tiers"
)

// thresholdByGap maps tier gap to the minimum gatekeeper score. Gaps beyond
// the table take the final entry.
var thresholdByGap = []float64{40, 55, 65, 75, 82, 88, 92, 95}

// RequiredThreshold is non-decreasing in tier gap for a fixed target tier.
// Floors for the most senior targets are raised, and established seekers
// get a small discount.
func RequiredThreshold(seeker, target tiers.Tier) float64 {
	gap := tiers.Gap(seeker, target)
	if gap >= len(thresholdByGap) {
		gap = len(thresholdByGap) - 1
	}
	threshold := thresholdByGap[gap]

	switch {
	case target == tiers.Luminary && threshold < 90:
		threshold = 90
	case (target == tiers.CLevel || target == tiers.FounderCEO) && threshold < 80:
		threshold = 80
	}

	if seeker >= tiers.Senior {
		threshold -= 5
	}
	return threshold
}

// Dimension is one scored axis of a gatekeeper validation.
type Dimension struct {
	Name   string
	Score  float64
	Weight float64
}

// Validation is the outcome of the gatekeeper check. The gate is never
// silently bypassed: Passed is false whenever Score < RequiredThreshold.
type Validation struct {
	Dimensions        []Dimension
	Score             float64
	RequiredThreshold float64
	Passed            bool
	Recommendation    string
	Warnings          []string
}

// Gatekeeper validates that a seeker's value proposition justifies access to
// a more senior target.
type Gatekeeper struct {
	assessor *Assessor
	logger   *zap.Logger
}

func NewGatekeeper(assessor *Assessor, logger *zap.Logger) *Gatekeeper {
	return &Gatekeeper{assessor: assessor, logger: logger}
}

// Validate runs the gatekeeper check for an already-assessed proposition.
func (g *Gatekeeper) Validate(ctx context.Context, seeker, target *network.Contact, seekerTier, targetTier *tiers.Profile, prop *Proposition) *Validation {
	gap := tiers.Gap(seekerTier.Tier, targetTier.Tier)
	weights := dimensionWeights(gap)

	relevance, _ := g.assessor.needsAlignment(ctx, seeker, target)
	reverse, _ := g.assessor.needsAlignment(ctx, target, seeker)

	dimensions := []Dimension{
		{Name: "strength", Score: prop.Strength, Weight: weights.strength},
		{Name: "specificity", Score: prop.Specificity, Weight: weights.specificity},
		{Name: "relevance", Score: relevance, Weight: weights.relevance},
		{Name: "professionalism", Score: professionalismScore(seeker, seekerTier), Weight: weights.professionalism},
		{Name: "mutual_benefit", Score: reverse, Weight: weights.mutualBenefit},
		{Name: "verification", Score: prop.Verifiability, Weight: weights.verification},
	}

	score := 0.0
	for _, d := range dimensions {
		score += d.Score * d.Weight
	}

	validation := &Validation{
		Dimensions:        dimensions,
		Score:             score,
		RequiredThreshold: RequiredThreshold(seekerTier.Tier, targetTier.Tier),
	}
	validation.Passed = score >= validation.RequiredThreshold

	if validation.Passed {
		validation.Recommendation = "proceed"
	} else {
		validation.Recommendation = failureRecommendation(gap)
		validation.Warnings = weakestDimensions(dimensions)
		if g.logger != nil {
			g.logger.Debug("gatekeeper rejected introduction",
				zap.String("seeker_id", seeker.ID),
				zap.String("target_id", target.ID),
				zap.Float64("score", score),
				zap.Float64("required", validation.RequiredThreshold),
				zap.Strings("weakest_dimensions", validation.Warnings),
			)
		}
	}

	return validation
}

type weightSet struct {
	strength, specificity, relevance, professionalism, mutualBenefit, verification float64
}

// dimensionWeights interpolates between a balanced profile at small gaps and
// a strength/relevance/verification-heavy profile at large gaps. The
// professionalism weight reaches zero at gap >= 4.
func dimensionWeights(gap int) weightSet {
	t := float64(gap) / 4
	if t > 1 {
		t = 1
	}

	low := weightSet{0.20, 0.15, 0.20, 0.15, 0.15, 0.15}
	high := weightSet{0.30, 0.10, 0.30, 0, 0.10, 0.20}

	return weightSet{
		strength:        lerp(low.strength, high.strength, t),
		specificity:     lerp(low.specificity, high.specificity, t),
		relevance:       lerp(low.relevance, high.relevance, t),
		professionalism: lerp(low.professionalism, high.professionalism, t),
		mutualBenefit:   lerp(low.mutualBenefit, high.mutualBenefit, t),
		verification:    lerp(low.verification, high.verification, t),
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func professionalismScore(contact *network.Contact, profile *tiers.Profile) float64 {
	score := 30.0
	if contact.Title != "" {
		score += 20
	}
	if len(needs.Tokenize(contact.Bio)) >= 10 {
		score += 20
	}
	if profile.Verified {
		score += 20
	}
	if len(contact.Offerings) > 0 {
		score += 10
	}
	return clampScore(score)
}

func failureRecommendation(gap int) string {
	switch {
	case gap <= 1:
		return "borderline: strengthen the value proposition before requesting an introduction"
	case gap <= 3:
		return "not recommended: the value offered does not justify this tier gap"
	default:
		return "rejected: build intermediate connections before approaching this contact"
	}
}

// weakestDimensions names the 2-3 lowest-scoring dimensions that carry weight.
func weakestDimensions(dimensions []Dimension) []string {
	weighted := make([]Dimension, 0, len(dimensions))
	for _, d := range dimensions {
		if d.Weight > 0 {
			weighted = append(weighted, d)
		}
	}
	sort.Slice(weighted, func(i, j int) bool {
		return weighted[i].Score < weighted[j].Score
	})

	limit := 3
	if len(weighted) < limit {
		limit = len(weighted)
	}

	names := make([]string, 0, limit)
	for _, d := range weighted[:limit] {
		names = append(names, d.Name)
	}
	return names
}
