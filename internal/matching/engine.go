package matching

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/intromatch/internal/graph"
	"github.com/spigell/intromatch/internal/mutual"
	"github.com/spigell/intromatch/internal/needs"
	"github.com/spigell/intromatch/internal/network"
	"github.com/spigell/intromatch/internal/optimizer"
	"github.com/spigell/intromatch/internal/strategy"
	"github.com/spigell/intromatch/internal/tiers"
	"github.com/spigell/intromatch/internal/value"
)

// Config tunes the orchestrator. Zero values take documented defaults.
type Config struct {
	MaxResults   int
	MaxHops      int     // path bound, default 6
	MaxDirectGap int     // upward tier gap allowed without gatekeeper, default 2
	BenefitFloor float64 // bidirectional floor in [0,100], default 40
	ScoreFloor   float64 // overall score floor in [0,100], default 40
	WorkerLimit  int     // parallel candidate evaluations, default 8

	// Diversity re-ranking; zero weight disables it.
	DiversityWeight     float64
	DiversityDimensions []string
	ParetoOnly          bool
}

func (c *Config) withDefaults() (Config, error) {
	out := *c
	if out.MaxResults <= 0 {
		out.MaxResults = 10
	}
	if out.MaxHops <= 0 {
		out.MaxHops = graph.DefaultMaxDegrees
	}
	if out.MaxDirectGap <= 0 {
		out.MaxDirectGap = 2
	}
	if out.BenefitFloor == 0 {
		out.BenefitFloor = 40
	}
	if out.ScoreFloor == 0 {
		out.ScoreFloor = 40
	}
	if out.WorkerLimit <= 0 {
		out.WorkerLimit = 8
	}

	if out.BenefitFloor < 0 || out.BenefitFloor > 100 {
		return out, fmt.Errorf("benefit floor must be in [0,100], got %v", out.BenefitFloor)
	}
	if out.ScoreFloor < 0 || out.ScoreFloor > 100 {
		return out, fmt.Errorf("score floor must be in [0,100], got %v", out.ScoreFloor)
	}
	if out.DiversityWeight < 0 {
		return out, fmt.Errorf("diversity weight must not be negative")
	}
	if out.DiversityWeight > 0 && len(out.DiversityDimensions) == 0 {
		out.DiversityDimensions = []string{"industry", "location"}
	}
	return out, nil
}

// Deps aggregates the collaborators the engine composes.
type Deps struct {
	Contacts    network.ContactRepository
	Connections network.ConnectionRepository
	Traversal   *graph.Traversal
	Classifier  *tiers.Classifier
	Analyzer    *needs.Analyzer
	Assessor    *value.Assessor
	Gatekeeper  *value.Gatekeeper
	Validator   *mutual.Validator
	Selector    *strategy.Selector
	Logger      *zap.Logger
}

// Engine is the matching orchestrator.
type Engine struct {
	deps   Deps
	config Config
}

// NewEngine validates configuration and dependencies up front.
func NewEngine(deps Deps, config Config) (*Engine, error) {
	if deps.Contacts == nil || deps.Connections == nil {
		return nil, fmt.Errorf("contact and connection repositories are required")
	}
	if deps.Traversal == nil {
		return nil, fmt.Errorf("graph traversal is required")
	}
	if deps.Classifier == nil || deps.Analyzer == nil || deps.Assessor == nil ||
		deps.Gatekeeper == nil || deps.Validator == nil || deps.Selector == nil {
		return nil, fmt.Errorf("all scoring collaborators are required")
	}

	validated, err := config.withDefaults()
	if err != nil {
		return nil, fmt.Errorf("matching config: %w", err)
	}

	return &Engine{deps: deps, config: validated}, nil
}

// gateStats counts candidates dropped per gate for a single run.
type gateStats struct {
	mu         sync.Mutex
	gatekeeper int
	benefit    int
	reach      int
	floor      int
	failed     int
}

// FindMatches ranks introduction candidates for the seeker. Per-candidate
// failures are logged and skip only that candidate.
func (e *Engine) FindMatches(ctx context.Context, seekerID string, maxResults int) ([]*EnhancedMatch, error) {
	if maxResults <= 0 {
		maxResults = e.config.MaxResults
	}

	seeker, err := e.deps.Contacts.GetContact(ctx, seekerID)
	if err != nil {
		return nil, fmt.Errorf("fetching seeker: %w", err)
	}

	candidates, err := e.deps.Contacts.ListCandidates(ctx, seekerID, 0)
	if err != nil {
		return nil, fmt.Errorf("listing candidates: %w", err)
	}

	seekerSubject, err := e.subject(ctx, seeker)
	if err != nil {
		return nil, err
	}

	requestText := seeker.SearchText()
	plan := e.deps.Selector.Select(requestText, seekerSubject)

	matches := make([]*EnhancedMatch, candidates.Len())
	stats := &gateStats{}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.config.WorkerLimit)

	for idx, candidate := range candidates.Items {
		group.Go(func() error {
			match, err := e.evaluateCandidate(groupCtx, seekerSubject, candidate, plan, stats)
			if err != nil {
				stats.mu.Lock()
				stats.failed++
				stats.mu.Unlock()
				if e.deps.Logger != nil {
					e.deps.Logger.Warn("candidate evaluation failed",
						zap.String("candidate_id", candidate.ID),
						zap.Error(err),
					)
				}
				return nil // never abort the batch for one candidate
			}
			matches[idx] = match
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	accepted := make([]*EnhancedMatch, 0, len(matches))
	for _, match := range matches {
		if match != nil {
			accepted = append(accepted, match)
		}
	}

	if e.deps.Logger != nil {
		e.deps.Logger.Info("matching run completed",
			zap.String("seeker_id", seekerID),
			zap.Int("initial", candidates.Len()),
			zap.Int("dropped_gatekeeper", stats.gatekeeper),
			zap.Int("dropped_benefit", stats.benefit),
			zap.Int("dropped_unreachable", stats.reach),
			zap.Int("dropped_score_floor", stats.floor),
			zap.Int("failed", stats.failed),
			zap.Int("left", len(accepted)),
		)
	}

	return e.rank(accepted, maxResults)
}

// subject assembles the strategy view of a contact.
func (e *Engine) subject(ctx context.Context, contact *network.Contact) (*strategy.Subject, error) {
	connections, err := e.deps.Connections.CountConnections(ctx, contact.ID)
	if err != nil {
		return nil, fmt.Errorf("counting connections for %s: %w", contact.ID, err)
	}
	return &strategy.Subject{
		Contact:     contact,
		Tier:        e.deps.Classifier.Classify(contact),
		Needs:       e.deps.Analyzer.Analyze(contact.SearchText(), contact),
		Connections: connections,
	}, nil
}

// evaluateCandidate runs every gate for one candidate. A nil match with nil
// error means a normal rejection.
func (e *Engine) evaluateCandidate(
	ctx context.Context,
	seeker *strategy.Subject,
	contact *network.Contact,
	plan *strategy.Plan,
	stats *gateStats,
) (*EnhancedMatch, error) {
	candidate, err := e.subject(ctx, contact)
	if err != nil {
		return nil, err
	}

	gap := tiers.Gap(seeker.Tier.Tier, candidate.Tier.Tier)
	prop := e.deps.Assessor.Assess(ctx, seeker.Contact, contact, seeker.Tier, candidate.Tier)

	match := &EnhancedMatch{
		Candidate:      contact,
		CandidateTier:  candidate.Tier,
		CandidateNeeds: candidate.Needs,
		TierGap:        gap,
		Proposition:    prop,
	}

	if e.gatekeeperRequired(seeker.Tier.Tier, candidate.Tier.Tier, gap) {
		validation := e.deps.Gatekeeper.Validate(ctx, seeker.Contact, contact, seeker.Tier, candidate.Tier, prop)
		match.Gatekeeper = validation
		if !validation.Passed {
			stats.bump(&stats.gatekeeper)
			return nil, nil
		}
	}

	bidirectional := e.deps.Validator.Validate(ctx, seeker.Contact, contact, seeker.Tier, candidate.Tier, seeker.Needs, candidate.Needs)
	match.Bidirectional = bidirectional
	if !bidirectional.PassesValidation(e.config.BenefitFloor) {
		stats.bump(&stats.benefit)
		return nil, nil
	}

	path, err := e.deps.Traversal.ShortestPath(seeker.Contact.ID, contact.ID)
	if err != nil {
		return nil, err
	}
	if path == nil || path.Hops() > e.config.MaxHops {
		stats.bump(&stats.reach)
		return nil, nil
	}
	match.Path = path
	match.NetworkCloseness = closenessScore(path.Hops(), e.config.MaxHops)

	match.Strategy = plan.Evaluate(seeker, candidate)
	match.ContextualAlignment = contextualAlignment(seeker.Needs, candidate)

	match.OverallScore = shareMutualNeeds*bidirectional.MutualityScore +
		shareValueExchange*prop.Strength +
		shareBalance*100*bidirectional.BalanceRatio +
		shareAlignment*match.ContextualAlignment +
		shareCloseness*match.NetworkCloseness

	if match.OverallScore < e.config.ScoreFloor {
		stats.bump(&stats.floor)
		return nil, nil
	}

	match.Priority = priorityFor(match.OverallScore, seeker.Needs)
	match.Reasons = buildReasons(match)

	return match, nil
}

func (s *gateStats) bump(counter *int) {
	s.mu.Lock()
	*counter++
	s.mu.Unlock()
}

// gatekeeperRequired follows the access policy: large upward gaps and very
// senior targets always go through the gate.
func (e *Engine) gatekeeperRequired(seeker, target tiers.Tier, gap int) bool {
	if target <= seeker {
		return false
	}
	return gap > e.config.MaxDirectGap || target >= tiers.Executive
}

func closenessScore(hops, maxHops int) float64 {
	if hops <= 1 {
		return 100
	}
	return 100 * (1 - float64(hops-1)/float64(maxHops))
}

func buildReasons(match *EnhancedMatch) []string {
	var reasons []string

	if len(match.Proposition.NeedsAddressed) > 0 {
		reasons = append(reasons, fmt.Sprintf("addresses needs: %v", match.Proposition.NeedsAddressed))
	}
	if match.Strategy != nil {
		for _, driver := range match.Strategy.TopDrivers {
			reasons = append(reasons, fmt.Sprintf("strong %s fit (%.2f)", driver.Name, driver.Score))
		}
	}
	if match.Path != nil {
		reasons = append(reasons, fmt.Sprintf("reachable in %d hop(s)", match.Path.Hops()))
	}
	if match.Bidirectional != nil && match.Bidirectional.ImbalanceWarning {
		reasons = append(reasons, "warning: benefits are imbalanced between the parties")
	}

	return reasons
}

// rank finishes the run through the multi-criteria optimizer: Pareto marking,
// optional diversity re-rank, sort and truncate.
func (e *Engine) rank(matches []*EnhancedMatch, maxResults int) ([]*EnhancedMatch, error) {
	if len(matches) == 0 {
		return matches, nil
	}

	objectives := []optimizer.Objective[*EnhancedMatch]{
		{Name: "mutual_needs", Weight: shareMutualNeeds, Evaluate: func(m *EnhancedMatch) float64 {
			return m.Bidirectional.MutualityScore / 100
		}},
		{Name: "value_exchange", Weight: shareValueExchange, Evaluate: func(m *EnhancedMatch) float64 {
			return m.Proposition.Strength / 100
		}},
		{Name: "balance", Weight: shareBalance, Evaluate: func(m *EnhancedMatch) float64 {
			return m.Bidirectional.BalanceRatio
		}},
		{Name: "alignment", Weight: shareAlignment, Evaluate: func(m *EnhancedMatch) float64 {
			return m.ContextualAlignment / 100
		}},
		{Name: "closeness", Weight: shareCloseness, Evaluate: func(m *EnhancedMatch) float64 {
			return m.NetworkCloseness / 100
		}},
	}

	soft := []optimizer.SoftConstraint[*EnhancedMatch]{
		{Name: "balanced_benefits", Satisfaction: func(m *EnhancedMatch) float64 {
			if m.Bidirectional.ImbalanceWarning {
				return 0.9
			}
			return 1
		}},
	}

	opt, err := optimizer.New(objectives, nil, soft, optimizer.Config{
		MaxResults:          maxResults,
		ParetoOnly:          e.config.ParetoOnly,
		DiversityWeight:     e.config.DiversityWeight,
		DiversityDimensions: e.config.DiversityDimensions,
	}, matchDimension)
	if err != nil {
		return nil, fmt.Errorf("building optimizer: %w", err)
	}

	ranked := opt.Rank(matches)
	out := make([]*EnhancedMatch, 0, len(ranked))
	for _, entry := range ranked {
		entry.Candidate.ParetoOptimal = entry.ParetoOptimal
		entry.Candidate.TradeOffs = entry.TradeOffs
		out = append(out, entry.Candidate)
	}
	return out, nil
}

// matchDimension extracts diversity dimensions from a match.
func matchDimension(m *EnhancedMatch, dimension string) string {
	switch dimension {
	case "industry":
		return m.Candidate.Industry
	case "location":
		return m.Candidate.Location
	case "experience":
		return m.CandidateTier.Tier.String()
	case "company_size":
		if signals, err := m.Candidate.Signals(); err == nil {
			return signals.CompanySize
		}
		return ""
	default:
		return ""
	}
}

// VerifySixDegrees checks graph connectivity between two contacts after
// confirming both exist.
func (e *Engine) VerifySixDegrees(ctx context.Context, a, b string) (*graph.SixDegreesResult, error) {
	if _, err := e.deps.Contacts.GetContact(ctx, a); err != nil {
		return nil, err
	}
	if _, err := e.deps.Contacts.GetContact(ctx, b); err != nil {
		return nil, err
	}
	return e.deps.Traversal.VerifySixDegrees(a, b)
}

// AlternativePaths searches for up to k distinct paths between two existing
// contacts within the configured hop bound.
func (e *Engine) AlternativePaths(ctx context.Context, a, b string, k int) ([]*graph.Path, error) {
	if _, err := e.deps.Contacts.GetContact(ctx, a); err != nil {
		return nil, err
	}
	if _, err := e.deps.Contacts.GetContact(ctx, b); err != nil {
		return nil, err
	}
	return e.deps.Traversal.AlternativePaths(a, b, k, e.config.MaxHops)
}

// SuperConnectors exposes the batch connector analytics.
func (e *Engine) SuperConnectors(topN int) ([]graph.SuperConnector, error) {
	return e.deps.Traversal.SuperConnectors(topN)
}

// AnalyzeReachability exposes the per-contact reachability report.
func (e *Engine) AnalyzeReachability(ctx context.Context, id string) (*graph.ReachabilityReport, error) {
	if _, err := e.deps.Contacts.GetContact(ctx, id); err != nil {
		return nil, err
	}
	return e.deps.Traversal.AnalyzeReachability(id)
}
