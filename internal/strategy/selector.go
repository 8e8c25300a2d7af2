package strategy

import (
	"regexp"
	"sort"
	"strings"
)

// Intent is the classified goal of a request.
type Intent string

const (
	ResourceAcquisition Intent = "resource_acquisition"
	KnowledgeSeeking    Intent = "knowledge_seeking"
	Collaboration       Intent = "collaboration"
	Transaction         Intent = "transaction"
	Networking          Intent = "networking"
	General             Intent = "general"
)

// intentRules is an ordered first-match cascade; General is the fallback.
var intentRules = []struct {
	pattern *regexp.Regexp
	intent  Intent
}{
	{regexp.MustCompile(`(?i)\b(funding|investment|capital|raise|budget|resources|grant)\b`), ResourceAcquisition},
	{regexp.MustCompile(`(?i)\b(learn|advice|mentor|guidance|understand|how to|knowledge)\b`), KnowledgeSeeking},
	{regexp.MustCompile(`(?i)\b(collaborate|partner|co-found|joint|together|team up)\b`), Collaboration},
	{regexp.MustCompile(`(?i)\b(buy|sell|hire|contract|deal|purchase|vendor)\b`), Transaction},
	{regexp.MustCompile(`(?i)\b(meet|introduction|connect|network|expand my network)\b`), Networking},
}

// Flags mark which scoring dimensions the request makes relevant.
type Flags struct {
	Technical  bool
	Industry   bool
	Experience bool
	Geographic bool
	Network    bool
	Quality    bool
}

var (
	technicalFlagWords = regexp.MustCompile(`(?i)\b(technical|engineering|software|architecture|code|ai|data)\b`)
	qualityFlagWords   = regexp.MustCompile(`(?i)\b(best|top|leading|expert|world-class|proven)\b`)
	geoFlagWords       = regexp.MustCompile(`(?i)\b(local|nearby|in my city|on-site|region)\b`)
)

// intentMultipliers adapt base weights to the classified intent.
var intentMultipliers = map[Intent]map[string]float64{
	ResourceAcquisition: {"resource_availability": 1.5, "needs_based": 1.2, "network_access": 1.1},
	KnowledgeSeeking:    {"skills": 1.4, "expertise_complementarity": 1.4, "experience": 1.3},
	Collaboration:       {"overall_complementarity": 1.5, "expertise_complementarity": 1.3, "industry_alignment": 1.2},
	Transaction:         {"commercial_fit": 1.6, "industry_alignment": 1.3},
	Networking:          {"network_access": 1.6, "quality": 1.3},
	General:             {},
}

// Plan is the runtime-built strategy catalogue for one request.
type Plan struct {
	Intent     Intent
	Flags      Flags
	strategies []weighted
}

type weighted struct {
	strategy Strategy
	weight   float64
}

// Selector builds evaluation plans from request text and the seeker profile.
type Selector struct{}

func NewSelector() *Selector {
	return &Selector{}
}

// Select classifies the request and assembles the applicable strategies with
// adaptive weights. The Needs-Based strategy is always included.
func (s *Selector) Select(text string, seeker *Subject) *Plan {
	intent := classifyIntent(text)
	flags := deriveFlags(text, seeker)

	catalogue := []Strategy{needsBased()}

	if flags.Technical {
		catalogue = append(catalogue, skillsMatch(), expertiseComplementarity())
	}
	if flags.Industry {
		catalogue = append(catalogue, industryAlignment(), commercialFit())
	}
	if flags.Experience {
		catalogue = append(catalogue, experienceMatch())
	}
	if flags.Geographic {
		catalogue = append(catalogue, geographicMatch())
	}
	if flags.Network {
		catalogue = append(catalogue, networkAccess())
	}
	if flags.Quality {
		catalogue = append(catalogue, qualitySignals())
	}
	if intent == ResourceAcquisition || hasResourceNeeds(seeker) {
		catalogue = append(catalogue, resourceAvailability())
	}
	if intent == Collaboration {
		catalogue = append(catalogue, overallComplementarity(), personalityFit())
	}

	multipliers := intentMultipliers[intent]
	plan := &Plan{Intent: intent, Flags: flags}
	for _, strat := range catalogue {
		weight := strat.BaseWeight()
		if m, ok := multipliers[strat.Name()]; ok {
			weight *= m
		}
		plan.strategies = append(plan.strategies, weighted{strategy: strat, weight: weight})
	}

	return plan
}

func classifyIntent(text string) Intent {
	for _, rule := range intentRules {
		if rule.pattern.MatchString(text) {
			return rule.intent
		}
	}
	return General
}

func deriveFlags(text string, seeker *Subject) Flags {
	flags := Flags{
		Technical:  technicalFlagWords.MatchString(text) || len(seeker.Contact.Skills) > 0,
		Industry:   seeker.Contact.Industry != "",
		Geographic: geoFlagWords.MatchString(text),
		Quality:    qualityFlagWords.MatchString(text),
	}

	if seeker.Needs != nil {
		flags.Experience = len(seeker.Needs.PreferredHelperTiers) > 0
		for _, resource := range seeker.Needs.ResourceRequirements {
			if resource == "network" {
				flags.Network = true
			}
		}
	}
	if classifyIntent(text) == Networking {
		flags.Network = true
	}

	return flags
}

func hasResourceNeeds(seeker *Subject) bool {
	return seeker.Needs != nil && len(seeker.Needs.ResourceRequirements) > 0
}

// Contribution explains how much one strategy added to the final score.
type Contribution struct {
	Name  string
	Score float64
	Value float64 // weighted contribution
}

// Composite is the outcome of evaluating one candidate against the plan.
type Composite struct {
	Score      float64 // weighted mean over applied weight, [0,1]
	Confidence float64
	TopDrivers []Contribution
}

// Evaluate scores a candidate. Strategies whose data is entirely missing on
// the candidate side lower the data-availability part of the confidence but
// still contribute their neutral scores.
func (p *Plan) Evaluate(seeker, candidate *Subject) *Composite {
	if len(p.strategies) == 0 {
		return &Composite{}
	}

	totalWeight := 0.0
	totalScore := 0.0
	confidences := make([]float64, 0, len(p.strategies))
	contributions := make([]Contribution, 0, len(p.strategies))

	for _, w := range p.strategies {
		score := w.strategy.Score(seeker, candidate)
		totalWeight += w.weight
		totalScore += score * w.weight
		confidences = append(confidences, w.strategy.Confidence())
		contributions = append(contributions, Contribution{
			Name:  w.strategy.Name(),
			Score: score,
			Value: score * w.weight,
		})
	}

	sort.SliceStable(contributions, func(i, j int) bool {
		return contributions[i].Value > contributions[j].Value
	})
	if len(contributions) > 3 {
		contributions = contributions[:3]
	}

	meanConfidence := 0.0
	for _, c := range confidences {
		meanConfidence += c
	}
	meanConfidence /= float64(len(confidences))

	return &Composite{
		Score:      totalScore / totalWeight,
		Confidence: 0.6*dataCompleteness(seeker, candidate) + 0.4*meanConfidence,
		TopDrivers: contributions,
	}
}

// dataCompleteness is a 10-point checklist over both profiles.
func dataCompleteness(seeker, candidate *Subject) float64 {
	points := 0
	checks := []bool{
		len(seeker.Contact.Needs) > 0,
		len(seeker.Contact.Skills) > 0,
		seeker.Contact.Industry != "",
		seeker.Contact.Location != "",
		strings.TrimSpace(seeker.Contact.Bio) != "",
		len(candidate.Contact.Offerings) > 0,
		len(candidate.Contact.Skills) > 0,
		candidate.Contact.Industry != "",
		candidate.Contact.Title != "",
		candidate.Connections > 0,
	}
	for _, ok := range checks {
		if ok {
			points++
		}
	}
	return float64(points) / float64(len(checks))
}
