// Package matching orchestrates the whole engine: tier classification, needs
// analysis, gatekeeper and bidirectional validation, graph reachability,
// strategy scoring and multi-criteria ranking into one ranked match list.
package matching

import (
	"github.com/spigell/intromatch/internal/graph"
	"github.com/spigell/intromatch/internal/mutual"
	"github.com/spigell/intromatch/internal/needs"
	"github.com/spigell/intromatch/internal/network"
	"github.com/spigell/intromatch/internal/strategy"
	"github.com/spigell/intromatch/internal/tiers"
	"github.com/spigell/intromatch/internal/value"
)

// Priority buckets a match score for human consumption.
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
)

// Overall score blend. The shares must sum to 1.
const (
	shareMutualNeeds   = 0.45
	shareValueExchange = 0.25
	shareBalance       = 0.15
	shareAlignment     = 0.10
	shareCloseness     = 0.05
)

// EnhancedMatch is the ephemeral output of the orchestrator for a single
// candidate that cleared every gate.
type EnhancedMatch struct {
	Candidate      *network.Contact
	CandidateTier  *tiers.Profile
	CandidateNeeds *needs.Analysis
	TierGap        int

	Proposition   *value.Proposition
	Gatekeeper    *value.Validation // nil when validation was not required
	Bidirectional *mutual.Validation
	Path          *graph.Path
	Strategy      *strategy.Composite

	ContextualAlignment float64
	NetworkCloseness    float64
	OverallScore        float64
	Priority            Priority
	Reasons             []string

	ParetoOptimal bool
	TradeOffs     []string
}

// priorityFor buckets the overall score; a critical seeker need escalates
// strong matches to CRITICAL.
func priorityFor(score float64, seekerNeeds *needs.Analysis) Priority {
	switch {
	case score >= 80 && seekerNeeds.HasCriticalNeed():
		return PriorityCritical
	case score >= 70:
		return PriorityHigh
	case score >= 55:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
