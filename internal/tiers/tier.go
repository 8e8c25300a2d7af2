// Package tiers classifies contacts into an ordinal seniority tier from
// profile signals. Classification is deterministic: a score bucket plus
// title-keyword overrides that always win over the score.
package tiers

import "fmt"

// Tier is an ordinal seniority level. Ordering matters: gap computations and
// gatekeeper thresholds rely on the ordinal distance between tiers.
type Tier int

const (
	Entry Tier = iota
	Junior
	MidLevel
	Senior
	Executive
	CLevel
	FounderCEO
	Luminary
)

var tierNames = map[Tier]string{
	Entry:      "ENTRY",
	Junior:     "JUNIOR",
	MidLevel:   "MID_LEVEL",
	Senior:     "SENIOR",
	Executive:  "EXECUTIVE",
	CLevel:     "C_LEVEL",
	FounderCEO: "FOUNDER_CEO",
	Luminary:   "LUMINARY",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TIER(%d)", int(t))
}

// ParseTier resolves a tier name as used in configuration files.
func ParseTier(name string) (Tier, error) {
	for tier, tierName := range tierNames {
		if tierName == name {
			return tier, nil
		}
	}
	return Entry, fmt.Errorf("unknown tier: %q", name)
}

// Gap is the absolute ordinal distance between two tiers. Symmetric, zero
// only for equal tiers.
func Gap(a, b Tier) int {
	diff := int(a) - int(b)
	if diff < 0 {
		diff = -diff
	}
	return diff
}

// Profile is the result of classifying a contact.
type Profile struct {
	ContactID string
	Tier      Tier
	Score     float64 // composite score in [0,100]
	Evidence  []string
	Verified  bool
}

// IsAppropriateDirectContact reports whether the seeker may approach the
// target without gatekeeper validation: the target is at or below the
// seeker's tier, or the upward gap stays within maxGap.
func IsAppropriateDirectContact(seeker, target Tier, maxGap int) bool {
	if target <= seeker {
		return true
	}
	return Gap(seeker, target) <= maxGap
}
