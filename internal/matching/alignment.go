package matching

import (
	"strings"

	"github.com/spigell/intromatch/internal/needs"
	"github.com/spigell/intromatch/internal/strategy"
	"github.com/spigell/intromatch/internal/tiers"
)

// Contextual alignment sub-score weights.
const (
	alignNeeds    = 0.30
	alignUrgency  = 0.15
	alignScope    = 0.15
	alignResource = 0.15
	alignTiming   = 0.10
	alignDomain   = 0.15
)

// contextualAlignment blends how well the candidate's profile fits the
// structured view of the seeker's need. Returns [0,100].
func contextualAlignment(seekerAnalysis *needs.Analysis, candidate *strategy.Subject) float64 {
	offerings := candidate.Contact.Offerings

	needsSub := 0.0
	if len(seekerAnalysis.Keywords) > 0 && len(offerings) > 0 {
		keywordText := strings.Join(seekerAnalysis.Keywords, " ")
		best := 0.0
		for _, offering := range offerings {
			if sim := needs.Jaccard(keywordText, offering); sim > best {
				best = sim
			}
		}
		needsSub = 100 * best
	}

	urgencySub := 50.0
	if seekerAnalysis.Urgency >= needs.High {
		// urgent needs favor candidates signalling availability
		offer := strings.ToLower(strings.Join(offerings, " "))
		if strings.Contains(offer, "hands-on") || strings.Contains(offer, "available") || strings.Contains(offer, "now") {
			urgencySub = 100
		} else {
			urgencySub = 40
		}
	}

	scopeSub := 30.0
	for _, preferred := range seekerAnalysis.PreferredHelperTiers {
		if candidate.Tier.Tier == preferred {
			scopeSub = 100
			break
		}
		if tiers.Gap(candidate.Tier.Tier, preferred) == 1 && scopeSub < 60 {
			scopeSub = 60
		}
	}

	resourceSub := 50.0
	if len(seekerAnalysis.ResourceRequirements) > 0 {
		offer := strings.ToLower(strings.Join(offerings, " "))
		matched := 0
		for _, resource := range seekerAnalysis.ResourceRequirements {
			if resourceMentioned(resource, offer) {
				matched++
			}
		}
		resourceSub = 100 * float64(matched) / float64(len(seekerAnalysis.ResourceRequirements))
	}

	timingSub := 50.0
	if seekerAnalysis.TimeHorizon == needs.Immediate && candidate.Connections > 0 {
		timingSub = 70
	}

	domainSub := 0.0
	if candidate.Needs != nil && len(seekerAnalysis.Domains) > 0 {
		shared := 0
		candidateDomains := make(map[string]struct{}, len(candidate.Needs.Domains))
		for _, domain := range candidate.Needs.Domains {
			candidateDomains[domain] = struct{}{}
		}
		for _, domain := range seekerAnalysis.Domains {
			if _, ok := candidateDomains[domain]; ok {
				shared++
			}
		}
		domainSub = 100 * float64(shared) / float64(len(seekerAnalysis.Domains))
	}

	return alignNeeds*needsSub +
		alignUrgency*urgencySub +
		alignScope*scopeSub +
		alignResource*resourceSub +
		alignTiming*timingSub +
		alignDomain*domainSub
}

func resourceMentioned(resource, offer string) bool {
	markers := map[string][]string{
		"money":     {"funding", "investment", "capital", "grant"},
		"time":      {"mentoring", "advisory", "hands-on"},
		"expertise": {"expertise", "experience", "consulting", "advice"},
		"network":   {"introduction", "network", "connections", "referral"},
	}
	for _, marker := range markers[resource] {
		if strings.Contains(offer, marker) {
			return true
		}
	}
	return false
}
