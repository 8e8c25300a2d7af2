// Package needs turns free-form request text into a structured needs
// analysis: urgency, importance, complexity, scope, time horizon, resource
// requirements, keywords, domains and preferred helper tiers.
package needs

import (
	"github.com/spigell/intromatch/internal/tiers"
)

// Urgency and Importance share the same 4-level scale.
type Level int

const (
	Low Level = iota
	Medium
	High
	Critical
)

func (l Level) String() string {
	switch l {
	case Critical:
		return "CRITICAL"
	case High:
		return "HIGH"
	case Medium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

type Complexity int

const (
	Simple Complexity = iota
	Moderate
	Complex
	HighlyComplex
)

func (c Complexity) String() string {
	switch c {
	case HighlyComplex:
		return "HIGHLY_COMPLEX"
	case Complex:
		return "COMPLEX"
	case Moderate:
		return "MODERATE"
	default:
		return "SIMPLE"
	}
}

type Scope int

const (
	Tactical Scope = iota
	Operational
	Strategic
	Transformational
)

func (s Scope) String() string {
	switch s {
	case Transformational:
		return "TRANSFORMATIONAL"
	case Strategic:
		return "STRATEGIC"
	case Operational:
		return "OPERATIONAL"
	default:
		return "TACTICAL"
	}
}

type TimeHorizon int

const (
	Immediate TimeHorizon = iota
	ShortTerm
	MediumTerm
	LongTerm
)

func (h TimeHorizon) String() string {
	switch h {
	case LongTerm:
		return "LONG_TERM"
	case MediumTerm:
		return "MEDIUM_TERM"
	case ShortTerm:
		return "SHORT_TERM"
	default:
		return "IMMEDIATE"
	}
}

// Analysis is the structured view of a single request text.
type Analysis struct {
	ContactID            string
	Urgency              Level
	Importance           Level
	Complexity           Complexity
	Scope                Scope
	TimeHorizon          TimeHorizon
	ResourceRequirements []string
	Keywords             []string
	Domains              []string
	PreferredHelperTiers []tiers.Tier
}

// HasCriticalNeed reports whether the request is critical on either axis.
func (a *Analysis) HasCriticalNeed() bool {
	return a.Urgency == Critical || a.Importance == Critical
}
