// Package strategy composes weighted scoring strategies for a request and
// evaluates candidates against them. The catalogue is built at runtime from
// relevance flags; every strategy is a pure (seeker,candidate) -> [0,1]
// function with a declared confidence.
package strategy

import (
	"strings"

	"github.com/spigell/intromatch/internal/needs"
	"github.com/spigell/intromatch/internal/network"
	"github.com/spigell/intromatch/internal/tiers"
)

// Subject is one side of a strategy evaluation: the contact plus everything
// already computed about it.
type Subject struct {
	Contact     *network.Contact
	Tier        *tiers.Profile
	Needs       *needs.Analysis
	Connections int
}

// Strategy scores a single dimension of fit.
type Strategy interface {
	Name() string
	BaseWeight() float64
	Dimensions() []string
	Confidence() float64
	Score(seeker, candidate *Subject) float64
}

type strategyFunc struct {
	name       string
	weight     float64
	dimensions []string
	confidence float64
	score      func(seeker, candidate *Subject) float64
}

func (s *strategyFunc) Name() string                { return s.name }
func (s *strategyFunc) BaseWeight() float64         { return s.weight }
func (s *strategyFunc) Dimensions() []string        { return s.dimensions }
func (s *strategyFunc) Confidence() float64         { return s.confidence }
func (s *strategyFunc) Score(a, b *Subject) float64 { return s.score(a, b) }

// bestOverlap is the best token overlap between any pair from two text sets.
func bestOverlap(a, b []string) float64 {
	best := 0.0
	for _, x := range a {
		for _, y := range b {
			if sim := needs.Jaccard(x, y); sim > best {
				best = sim
			}
		}
	}
	return best
}

// meanCoverage mirrors needs-satisfaction: mean best match per item in a,
// scaled by the matched fraction.
func meanCoverage(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	matched := 0
	total := 0.0
	for _, x := range a {
		best := 0.0
		for _, y := range b {
			if sim := needs.Jaccard(x, y); sim > best {
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
	return (total / float64(matched)) * (float64(matched) / float64(len(a)))
}

func needsBased() Strategy {
	return &strategyFunc{
		name:       "needs_based",
		weight:     0.40,
		dimensions: []string{"needs", "offerings"},
		confidence: 0.9,
		score: func(seeker, candidate *Subject) float64 {
			return meanCoverage(seeker.Contact.Needs, candidate.Contact.Offerings)
		},
	}
}

func skillsMatch() Strategy {
	return &strategyFunc{
		name:       "skills",
		weight:     0.15,
		dimensions: []string{"skills"},
		confidence: 0.8,
		score: func(seeker, candidate *Subject) float64 {
			reference := seeker.Contact.Needs
			if seeker.Needs != nil && len(seeker.Needs.Keywords) > 0 {
				reference = append(append([]string{}, reference...), strings.Join(seeker.Needs.Keywords, " "))
			}
			return meanCoverage(reference, candidate.Contact.Skills)
		},
	}
}

func industryAlignment() Strategy {
	return &strategyFunc{
		name:       "industry_alignment",
		weight:     0.10,
		dimensions: []string{"industry"},
		confidence: 0.9,
		score: func(seeker, candidate *Subject) float64 {
			a := strings.ToLower(strings.TrimSpace(seeker.Contact.Industry))
			b := strings.ToLower(strings.TrimSpace(candidate.Contact.Industry))
			switch {
			case a == "" || b == "":
				return 0.5 // neutral when unknown
			case a == b:
				return 1
			case sharedDomain(seeker.Needs, candidate.Needs):
				return 0.5
			default:
				return 0
			}
		},
	}
}

func sharedDomain(a, b *needs.Analysis) bool {
	if a == nil || b == nil {
		return false
	}
	domains := make(map[string]struct{}, len(a.Domains))
	for _, d := range a.Domains {
		domains[d] = struct{}{}
	}
	for _, d := range b.Domains {
		if _, ok := domains[d]; ok {
			return true
		}
	}
	return false
}

func experienceMatch() Strategy {
	return &strategyFunc{
		name:       "experience",
		weight:     0.10,
		dimensions: []string{"tier", "experience"},
		confidence: 0.8,
		score: func(seeker, candidate *Subject) float64 {
			if seeker.Needs == nil || len(seeker.Needs.PreferredHelperTiers) == 0 {
				return 0.5
			}
			for _, preferred := range seeker.Needs.PreferredHelperTiers {
				if candidate.Tier.Tier == preferred {
					return 1
				}
			}
			// one tier off a preferred level still helps somewhat
			for _, preferred := range seeker.Needs.PreferredHelperTiers {
				if tiers.Gap(candidate.Tier.Tier, preferred) == 1 {
					return 0.6
				}
			}
			return 0.2
		},
	}
}

func geographicMatch() Strategy {
	return &strategyFunc{
		name:       "geographic",
		weight:     0.05,
		dimensions: []string{"location"},
		confidence: 0.7,
		score: func(seeker, candidate *Subject) float64 {
			a := strings.ToLower(strings.TrimSpace(seeker.Contact.Location))
			b := strings.ToLower(strings.TrimSpace(candidate.Contact.Location))
			switch {
			case a == "" || b == "":
				return 0.5
			case a == b:
				return 1
			case strings.Contains(a, b) || strings.Contains(b, a):
				return 0.7
			default:
				return 0.2
			}
		},
	}
}

func networkAccess() Strategy {
	return &strategyFunc{
		name:       "network_access",
		weight:     0.10,
		dimensions: []string{"connections"},
		confidence: 0.7,
		score: func(_, candidate *Subject) float64 {
			// 50 direct connections is treated as a full score
			score := float64(candidate.Connections) / 50
			if score > 1 {
				score = 1
			}
			return score
		},
	}
}

func qualitySignals() Strategy {
	return &strategyFunc{
		name:       "quality",
		weight:     0.05,
		dimensions: []string{"tier", "verification"},
		confidence: 0.8,
		score: func(_, candidate *Subject) float64 {
			score := candidate.Tier.Score / 100
			if candidate.Tier.Verified {
				score += 0.2
			}
			if score > 1 {
				score = 1
			}
			return score
		},
	}
}

func resourceAvailability() Strategy {
	return &strategyFunc{
		name:       "resource_availability",
		weight:     0.10,
		dimensions: []string{"resources", "offerings"},
		confidence: 0.6,
		score: func(seeker, candidate *Subject) float64 {
			if seeker.Needs == nil || len(seeker.Needs.ResourceRequirements) == 0 {
				return 0.5
			}
			offer := strings.ToLower(strings.Join(candidate.Contact.Offerings, " "))
			matched := 0
			for _, resource := range seeker.Needs.ResourceRequirements {
				if resourceOffered(resource, offer) {
					matched++
				}
			}
			return float64(matched) / float64(len(seeker.Needs.ResourceRequirements))
		},
	}
}

func resourceOffered(resource, offer string) bool {
	markers := map[string][]string{
		"money":     {"funding", "investment", "capital", "grant"},
		"time":      {"mentoring", "advisory", "hands-on", "availability"},
		"expertise": {"expertise", "experience", "consulting", "advice", "advisory"},
		"network":   {"introduction", "network", "connections", "referral"},
	}
	for _, marker := range markers[resource] {
		if strings.Contains(offer, marker) {
			return true
		}
	}
	return false
}

func expertiseComplementarity() Strategy {
	return &strategyFunc{
		name:       "expertise_complementarity",
		weight:     0.10,
		dimensions: []string{"skills"},
		confidence: 0.7,
		score: func(seeker, candidate *Subject) float64 {
			if len(candidate.Contact.Skills) == 0 {
				return 0
			}
			seen := make(map[string]struct{}, len(seeker.Contact.Skills))
			for _, skill := range seeker.Contact.Skills {
				seen[strings.ToLower(skill)] = struct{}{}
			}
			unique := 0
			for _, skill := range candidate.Contact.Skills {
				if _, ok := seen[strings.ToLower(skill)]; !ok {
					unique++
				}
			}
			return float64(unique) / float64(len(candidate.Contact.Skills))
		},
	}
}

func overallComplementarity() Strategy {
	return &strategyFunc{
		name:       "overall_complementarity",
		weight:     0.05,
		dimensions: []string{"needs", "offerings", "skills"},
		confidence: 0.6,
		score: func(seeker, candidate *Subject) float64 {
			forward := meanCoverage(seeker.Contact.Needs, candidate.Contact.Offerings)
			backward := meanCoverage(candidate.Contact.Needs, seeker.Contact.Offerings)
			return (forward + backward) / 2
		},
	}
}

func commercialFit() Strategy {
	return &strategyFunc{
		name:       "commercial_fit",
		weight:     0.05,
		dimensions: []string{"industry", "offerings"},
		confidence: 0.5,
		score: func(seeker, candidate *Subject) float64 {
			score := 0.0
			if strings.EqualFold(seeker.Contact.Industry, candidate.Contact.Industry) {
				score += 0.5
			}
			offer := strings.ToLower(strings.Join(candidate.Contact.Offerings, " "))
			for _, marker := range []string{"sales", "customers", "revenue", "deals", "distribution"} {
				if strings.Contains(offer, marker) {
					score += 0.5
					break
				}
			}
			return score
		},
	}
}

func personalityFit() Strategy {
	return &strategyFunc{
		name:       "personality_fit",
		weight:     0.05,
		dimensions: []string{"bio"},
		confidence: 0.3,
		score: func(seeker, candidate *Subject) float64 {
			// bio overlap is a crude proxy until better signals exist
			return bestOverlap([]string{seeker.Contact.Bio}, []string{candidate.Contact.Bio})
		},
	}
}
