// Package mutual checks that a proposed introduction benefits both sides.
// An introduction that only serves the seeker burns the introducer's social
// capital, so both parties must independently clear the benefit floor.
package mutual

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/intromatch/internal/needs"
	"github.com/spigell/intromatch/internal/network"
	"github.com/spigell/intromatch/internal/tiers"
	"github.com/spigell/intromatch/internal/value"
)

// Benefit blend weights per direction.
const (
	weightNeedsSatisfaction = 0.4
	weightValueExchange     = 0.3
	weightNetworkValue      = 0.15
	weightExpertiseValue    = 0.15

	balanceWarningRatio = 0.6
	contextualBonusMax  = 25

	// categoryMatchScore credits a need/offering pair that shares a value
	// category even when the wording has no literal token overlap, e.g. a
	// "fundraising" need against a "Funding/Investment" offering.
	categoryMatchScore = 0.5
)

var prestigeCompanies = map[string]struct{}{
	"google": {}, "apple": {}, "microsoft": {}, "amazon": {}, "meta": {},
	"openai": {}, "mckinsey": {}, "goldman sachs": {}, "sequoia": {}, "y combinator": {},
}

// Validation is the outcome of the bidirectional benefit check. Scores are
// in [0,100] and MutualityScore is always min(SeekerBenefit, TargetBenefit).
type Validation struct {
	SeekerBenefit    float64
	TargetBenefit    float64
	MutualityScore   float64
	BalanceRatio     float64
	ImbalanceWarning bool
}

// PassesValidation requires the mutuality score and both individual benefits
// to clear the floor.
func (v *Validation) PassesValidation(floor float64) bool {
	return v.MutualityScore >= floor && v.SeekerBenefit >= floor && v.TargetBenefit >= floor
}

// Validator computes per-direction benefit scores.
type Validator struct {
	scorer needs.Scorer
	logger *zap.Logger
}

func NewValidator(scorer needs.Scorer, logger *zap.Logger) *Validator {
	if scorer == nil {
		scorer = needs.OverlapScorer{}
	}
	return &Validator{scorer: scorer, logger: logger}
}

// Validate scores the benefit of connecting seeker and target in both
// directions over the provided tier profiles and needs analyses.
func (v *Validator) Validate(
	ctx context.Context,
	seeker, target *network.Contact,
	seekerTier, targetTier *tiers.Profile,
	seekerNeeds, targetNeeds *needs.Analysis,
) *Validation {
	seekerBenefit := v.directionalBenefit(ctx, seeker, target, seekerTier, targetTier)
	targetBenefit := v.directionalBenefit(ctx, target, seeker, targetTier, seekerTier)

	seekerBenefit += v.contextualBonus(ctx, seeker, target, seekerNeeds)
	targetBenefit += v.contextualBonus(ctx, target, seeker, targetNeeds)

	seekerBenefit = clamp(seekerBenefit)
	targetBenefit = clamp(targetBenefit)

	result := &Validation{
		SeekerBenefit:  seekerBenefit,
		TargetBenefit:  targetBenefit,
		MutualityScore: min(seekerBenefit, targetBenefit),
	}

	if maxBenefit := max(seekerBenefit, targetBenefit); maxBenefit > 0 {
		result.BalanceRatio = result.MutualityScore / maxBenefit
		result.ImbalanceWarning = result.BalanceRatio < balanceWarningRatio
	}

	if result.ImbalanceWarning && v.logger != nil {
		v.logger.Debug("imbalanced introduction",
			zap.String("seeker_id", seeker.ID),
			zap.String("target_id", target.ID),
			zap.Float64("balance_ratio", result.BalanceRatio),
		)
	}

	return result
}

// directionalBenefit scores what `who` gains from being introduced to `other`.
func (v *Validator) directionalBenefit(ctx context.Context, who, other *network.Contact, whoTier, otherTier *tiers.Profile) float64 {
	return weightNeedsSatisfaction*v.needsSatisfaction(ctx, who, other) +
		weightValueExchange*v.valueExchange(ctx, who, other) +
		weightNetworkValue*networkValue(whoTier, otherTier, other) +
		weightExpertiseValue*expertiseValue(who, other, otherTier)
}

// needsSatisfaction is the mean similarity of matched needs scaled by the
// fraction of needs covered.
func (v *Validator) needsSatisfaction(ctx context.Context, who, other *network.Contact) float64 {
	if len(who.Needs) == 0 || len(other.Offerings) == 0 {
		return 0
	}

	matched := 0
	total := 0.0
	for _, need := range who.Needs {
		best := 0.0
		for _, offering := range other.Offerings {
			if sim := v.matchScore(ctx, need, offering); sim > best {
				best = sim
			}
		}
		if best >= needs.MatchThreshold {
			matched++
			total += best
		}
	}

	if matched == 0 {
		return 0
	}

	mean := total / float64(matched)
	coverage := float64(matched) / float64(len(who.Needs))
	return 100 * mean * coverage
}

// valueExchange is a softer, unthresholded view of how much the counterpart
// has to offer at all.
func (v *Validator) valueExchange(ctx context.Context, who, other *network.Contact) float64 {
	if len(other.Offerings) == 0 {
		return 0
	}

	reference := who.Needs
	if len(reference) == 0 {
		reference = []string{who.Bio}
	}

	total := 0.0
	for _, text := range reference {
		best := 0.0
		for _, offering := range other.Offerings {
			if sim := v.matchScore(ctx, text, offering); sim > best {
				best = sim
			}
		}
		total += best
	}

	breadth := float64(len(other.Offerings))
	if breadth > 4 {
		breadth = 4
	}
	return clamp(100*total/float64(len(reference)) + 5*breadth)
}

// networkValue rewards upward introductions (capped) and prestige employers.
func networkValue(whoTier, otherTier *tiers.Profile, other *network.Contact) float64 {
	score := 20.0

	if upward := int(otherTier.Tier) - int(whoTier.Tier); upward > 0 {
		bonus := 15.0 * float64(upward)
		if bonus > 45 {
			bonus = 45
		}
		score += bonus
	}

	if signals, err := other.Signals(); err == nil {
		if _, ok := prestigeCompanies[strings.ToLower(strings.TrimSpace(signals.Company))]; ok {
			score += 20
		}
	}

	return clamp(score)
}

// expertiseValue rewards skills the counterpart has and `who` lacks, plus
// seniority signals.
func expertiseValue(who, other *network.Contact, otherTier *tiers.Profile) float64 {
	whoSkills := make(map[string]struct{}, len(who.Skills))
	for _, skill := range who.Skills {
		whoSkills[strings.ToLower(skill)] = struct{}{}
	}

	unique := 0
	for _, skill := range other.Skills {
		if _, ok := whoSkills[strings.ToLower(skill)]; !ok {
			unique++
		}
	}

	score := 10.0 * float64(unique)
	if score > 60 {
		score = 60
	}
	if otherTier.Tier >= tiers.Senior {
		score += 25
	}
	if otherTier.Verified {
		score += 15
	}
	return clamp(score)
}

// contextualBonus applies when the counterpart's skills or offerings address
// `who`'s CRITICAL-importance or CRITICAL-urgency needs.
func (v *Validator) contextualBonus(ctx context.Context, who, other *network.Contact, analysis *needs.Analysis) float64 {
	if analysis == nil || !analysis.HasCriticalNeed() {
		return 0
	}

	counterpart := append(append([]string{}, other.Skills...), other.Offerings...)
	for _, need := range who.Needs {
		for _, item := range counterpart {
			if v.matchScore(ctx, need, item) >= needs.MatchThreshold {
				return contextualBonusMax
			}
		}
	}
	return 0
}

// matchScore is similarity with a floor for pairs that classify into the
// same value category. The taxonomy bridges vocabulary gaps the literal
// token overlap cannot.
func (v *Validator) matchScore(ctx context.Context, need, offering string) float64 {
	score := v.similarity(ctx, need, offering)
	if score >= categoryMatchScore {
		return score
	}

	needCategory, ok := value.CategoryOf(need)
	if !ok {
		return score
	}
	if offeringCategory, ok := value.CategoryOf(offering); ok && offeringCategory == needCategory {
		return categoryMatchScore
	}
	return score
}

func (v *Validator) similarity(ctx context.Context, a, b string) float64 {
	sim, err := v.scorer.Similarity(ctx, a, b)
	if err != nil {
		if v.logger != nil {
			v.logger.Debug("similarity scorer failed, falling back to token overlap", zap.Error(err))
		}
		return needs.Jaccard(a, b)
	}
	return sim
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
