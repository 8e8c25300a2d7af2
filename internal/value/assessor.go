package value

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/intromatch/internal/needs"
	"github.com/spigell/intromatch/internal/network"
	"github.com/spigell/intromatch/internal/tiers"
)

const strengthBase = 40

var (
	quantifiedClaims = regexp.MustCompile(`(?i)(\d+%|\$\d+|\d+x|\d+ (customers|users|employees|deals))`)
	uniquenessWords  = regexp.MustCompile(`(?i)\b(proprietary|patented|exclusive|rare|unique|one of the few|first of its kind)\b`)
	urgencyWords     = regexp.MustCompile(`(?i)\b(now|currently|this quarter|window|limited|closing)\b`)
)

// Assessor scores value propositions. The similarity scorer defaults to
// token overlap; an embedding scorer is wired only through explicit config.
type Assessor struct {
	scorer needs.Scorer
	logger *zap.Logger
}

func NewAssessor(scorer needs.Scorer, logger *zap.Logger) *Assessor {
	if scorer == nil {
		scorer = needs.OverlapScorer{}
	}
	return &Assessor{scorer: scorer, logger: logger}
}

// Assess scores what the seeker offers the target, adjusted for the tier
// relationship between them.
func (a *Assessor) Assess(ctx context.Context, seeker, target *network.Contact, seekerTier, targetTier *tiers.Profile) *Proposition {
	offer := offerText(seeker)
	category := classifyCategory(ctx, a, offer, seeker, target)

	alignment, addressed := a.needsAlignment(ctx, seeker, target)

	signals, err := seeker.Signals()
	if err != nil {
		if a.logger != nil {
			a.logger.Warn("metadata decoding failed during value assessment",
				zap.String("contact_id", seeker.ID),
				zap.Error(err),
			)
		}
		signals = &network.ProfileSignals{}
	}

	prop := &Proposition{
		Category:       category,
		NeedsAddressed: addressed,
	}

	prop.Specificity = specificityScore(offer)
	prop.Verifiability, prop.Evidence = verifiabilityScore(offer, signals)
	prop.Uniqueness = uniquenessScore(offer, seeker.Skills)
	prop.Timeliness = timelinessScore(offer, alignment)

	gap := tiers.Gap(seekerTier.Tier, targetTier.Tier)
	strength := strengthBase + categoryWeight[category] + 0.3*alignment
	strength *= tierFactor(gap, category)
	strength += 0.1 * (prop.Specificity - 50)
	strength += 0.1 * (prop.Verifiability - 50)

	prop.Strength = clampScore(strength)
	return prop
}

func offerText(contact *network.Contact) string {
	if len(contact.Offerings) > 0 {
		return strings.Join(contact.Offerings, ". ")
	}
	return contact.Bio
}

// classifyCategory runs the keyword cascade over the offer text and falls
// back to the highest-overlap offering/need pair.
func classifyCategory(ctx context.Context, a *Assessor, offer string, seeker, target *network.Contact) Category {
	if category, ok := CategoryOf(offer); ok {
		return category
	}

	bestCategory := KnowledgeExchange
	bestSim := 0.0
	for _, offering := range seeker.Offerings {
		for _, need := range target.Needs {
			sim := a.similarity(ctx, offering, need)
			if sim <= bestSim {
				continue
			}
			bestSim = sim
			if category, ok := CategoryOf(need); ok {
				bestCategory = category
			}
		}
	}
	return bestCategory
}

// needsAlignment is the mean similarity of matched offering/need pairs scaled
// by need coverage, in [0,100], plus the list of needs addressed.
func (a *Assessor) needsAlignment(ctx context.Context, seeker, target *network.Contact) (float64, []string) {
	if len(target.Needs) == 0 || len(seeker.Offerings) == 0 {
		return 0, nil
	}

	var addressed []string
	total := 0.0
	for _, need := range target.Needs {
		best := 0.0
		for _, offering := range seeker.Offerings {
			if sim := a.similarity(ctx, offering, need); sim > best {
				best = sim
			}
		}
		if best >= needs.MatchThreshold {
			addressed = append(addressed, need)
			total += best
		}
	}

	if len(addressed) == 0 {
		return 0, nil
	}

	mean := total / float64(len(addressed))
	coverage := float64(len(addressed)) / float64(len(target.Needs))
	return 100 * mean * coverage, addressed
}

func (a *Assessor) similarity(ctx context.Context, x, y string) float64 {
	sim, err := a.scorer.Similarity(ctx, x, y)
	if err != nil {
		if a.logger != nil {
			a.logger.Debug("similarity scorer failed, falling back to token overlap", zap.Error(err))
		}
		return needs.Jaccard(x, y)
	}
	return sim
}

// tierFactor decays strength as the upward gap grows, unless the category is
// high-value enough to justify the reach.
func tierFactor(gap int, category Category) float64 {
	if gap <= 1 {
		return 1.0
	}
	if _, ok := highValueCategories[category]; ok {
		return 1.0
	}
	factor := 1.0 - 0.1*float64(gap-1)
	if factor < 0.6 {
		factor = 0.6
	}
	return factor
}

func specificityScore(offer string) float64 {
	words := len(strings.Fields(offer))
	score := 30.0
	if words > 5 {
		score += 20
	}
	if words > 15 {
		score += 15
	}
	score += 15 * float64(len(quantifiedClaims.FindAllString(offer, -1)))
	return clampScore(score)
}

func verifiabilityScore(offer string, signals *network.ProfileSignals) (float64, []string) {
	score := 10.0
	var evidence []string
	if signals.LinkedIn != "" {
		score += 30
		evidence = append(evidence, "linked external profile")
	}
	if strings.Contains(signals.Email, "@") && !strings.HasSuffix(strings.ToLower(signals.Email), "gmail.com") {
		score += 25
		evidence = append(evidence, "corporate email")
	}
	if quantifiedClaims.MatchString(offer) {
		score += 20
		evidence = append(evidence, "quantified claims")
	}
	if signals.Website != "" {
		score += 15
		evidence = append(evidence, "personal website")
	}
	return clampScore(score), evidence
}

func uniquenessScore(offer string, skills []string) float64 {
	score := 20.0
	score += 15 * float64(len(uniquenessWords.FindAllString(offer, -1)))
	if len(skills) > 5 {
		score += 10
	}
	return clampScore(score)
}

func timelinessScore(offer string, alignment float64) float64 {
	score := 30.0
	if urgencyWords.MatchString(offer) {
		score += 30
	}
	// relevance to the target's current stated needs
	score += 0.4 * alignment
	return clampScore(score)
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
