package tiers

import (
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/spigell/intromatch/internal/network"
)

// Composite score weights. They must sum to 1.
const (
	weightCareerYears    = 0.15
	weightSeniority      = 0.25
	weightInfluence      = 0.20
	weightAchievement    = 0.20
	weightAuthority      = 0.10
	weightOrgLevel       = 0.10
	careerYearsReference = 20.0
)

const (
	defaultCacheSize = 4096
	defaultCacheTTL  = 15 * time.Minute
)

// Title overrides beat score buckets. Order matters: the first matching rule
// wins, later rules are fallbacks.
var titleOverrides = []struct {
	pattern *regexp.Regexp
	tier    Tier
}{
	{regexp.MustCompile(`(?i)\b(luminary|world[- ]renowned|nobel laureate|industry icon)\b`), Luminary},
	{regexp.MustCompile(`(?i)\b(founder|co-founder|ceo|chief executive)\b`), FounderCEO},
	{regexp.MustCompile(`(?i)\b(cto|cfo|coo|cmo|ciso|cio|cpo|chief \w+ officer)\b`), CLevel},
}

// seniorityKeywords map title keywords to a 1-10 seniority level. Evaluated
// top-down, first match wins.
var seniorityKeywords = []struct {
	pattern *regexp.Regexp
	level   float64
}{
	{regexp.MustCompile(`(?i)\b(chief|cxo|president)\b`), 10},
	{regexp.MustCompile(`(?i)\b(evp|svp|executive vice president|senior vice president)\b`), 9},
	{regexp.MustCompile(`(?i)\b(vp|vice president|partner)\b`), 8},
	{regexp.MustCompile(`(?i)\b(head of|director)\b`), 7},
	{regexp.MustCompile(`(?i)\b(principal|staff)\b`), 6},
	{regexp.MustCompile(`(?i)\bsenior\b`), 5},
	{regexp.MustCompile(`(?i)\b(lead|manager)\b`), 4},
	{regexp.MustCompile(`(?i)\b(engineer|analyst|specialist|consultant)\b`), 3},
	{regexp.MustCompile(`(?i)\b(junior|associate)\b`), 2},
	{regexp.MustCompile(`(?i)\b(intern|trainee|student)\b`), 1},
}

var authorityKeywords = regexp.MustCompile(`(?i)\b(thought leader|keynote|board member|advisor|author|award-winning|recognized expert)\b`)

var prestigeCompanies = map[string]struct{}{
	"google": {}, "apple": {}, "microsoft": {}, "amazon": {}, "meta": {},
	"openai": {}, "mckinsey": {}, "goldman sachs": {}, "sequoia": {}, "y combinator": {},
}

var eliteEducation = regexp.MustCompile(`(?i)\b(harvard|stanford|mit|oxford|cambridge|phd|mba)\b`)

// scoreBuckets map the composite score to a tier, checked top-down.
var scoreBuckets = []struct {
	min  float64
	tier Tier
}{
	{93, Luminary},
	{85, FounderCEO},
	{75, CLevel},
	{65, Executive},
	{50, Senior},
	{35, MidLevel},
	{20, Junior},
	{0, Entry},
}

// Classifier computes tier profiles with a short-TTL LRU in front.
type Classifier struct {
	logger *zap.Logger
	cache  *expirable.LRU[string, *Profile]
}

// NewClassifier creates a Classifier. ttl <= 0 uses the default.
func NewClassifier(logger *zap.Logger, ttl time.Duration) *Classifier {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Classifier{
		logger: logger,
		cache:  expirable.NewLRU[string, *Profile](defaultCacheSize, nil, ttl),
	}
}

// Classify derives a tier profile for the contact. Malformed metadata is
// logged and degraded to neutral defaults, never an error.
func (c *Classifier) Classify(contact *network.Contact) *Profile {
	if cached, ok := c.cache.Get(contact.ID); ok {
		return cached
	}

	signals, err := contact.Signals()
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("metadata decoding failed, classifying with neutral defaults",
				zap.String("contact_id", contact.ID),
				zap.Error(err),
			)
		}
		signals = &network.ProfileSignals{}
	}

	score := c.compositeScore(contact, signals)
	evidence := collectEvidence(signals)

	profile := &Profile{
		ContactID: contact.ID,
		Tier:      classifyTier(contact.Title, score),
		Score:     score,
		Evidence:  evidence,
		Verified:  len(evidence) >= 2,
	}

	c.cache.Add(contact.ID, profile)
	return profile
}

func classifyTier(title string, score float64) Tier {
	for _, override := range titleOverrides {
		if override.pattern.MatchString(title) {
			return override.tier
		}
	}
	for _, bucket := range scoreBuckets {
		if score >= bucket.min {
			return bucket.tier
		}
	}
	return Entry
}

func (c *Classifier) compositeScore(contact *network.Contact, signals *network.ProfileSignals) float64 {
	years := signals.CareerYears / careerYearsReference
	if years > 1 {
		years = 1
	}

	seniority := seniorityLevel(contact.Title) / 10

	score := 100 * (weightCareerYears*years +
		weightSeniority*seniority +
		weightInfluence*influenceScore(signals) +
		weightAchievement*achievementScore(signals) +
		weightAuthority*authorityScore(contact.Bio) +
		weightOrgLevel*seniority)

	if score > 100 {
		score = 100
	}
	return score
}

func seniorityLevel(title string) float64 {
	for _, kw := range seniorityKeywords {
		if kw.pattern.MatchString(title) {
			return kw.level
		}
	}
	return 1
}

func influenceScore(s *network.ProfileSignals) float64 {
	parts := []float64{
		capRatio(float64(s.Followers), 10000),
		capRatio(float64(s.Publications), 20),
		capRatio(float64(s.Talks), 20),
		capRatio(float64(s.Awards), 5),
		capRatio(float64(s.MediaMentions), 10),
	}
	total := 0.0
	for _, p := range parts {
		total += p
	}
	return total / float64(len(parts))
}

func achievementScore(s *network.ProfileSignals) float64 {
	score := 0.0
	if _, ok := prestigeCompanies[strings.ToLower(strings.TrimSpace(s.Company))]; ok {
		score += 0.4
	}
	if eliteEducation.MatchString(s.Education) {
		score += 0.3
	}
	score += capRatio(float64(s.Exits), 2) * 0.3
	return score
}

func authorityScore(bio string) float64 {
	matches := authorityKeywords.FindAllString(bio, -1)
	return capRatio(float64(len(matches)), 3)
}

func collectEvidence(s *network.ProfileSignals) []string {
	var evidence []string
	if s.LinkedIn != "" {
		evidence = append(evidence, "linkedin profile")
	}
	if strings.Contains(s.Email, "@") && !isFreeMailDomain(s.Email) {
		evidence = append(evidence, "corporate email")
	}
	if s.Website != "" {
		evidence = append(evidence, "personal website")
	}
	if s.Publications > 0 {
		evidence = append(evidence, "publications")
	}
	if s.Followers >= 1000 {
		evidence = append(evidence, "audience reach")
	}
	return evidence
}

func isFreeMailDomain(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return true
	}
	switch strings.ToLower(email[at+1:]) {
	case "gmail.com", "yahoo.com", "outlook.com", "hotmail.com", "mail.ru":
		return true
	}
	return false
}

func capRatio(value, reference float64) float64 {
	if reference <= 0 || value <= 0 {
		return 0
	}
	ratio := value / reference
	if ratio > 1 {
		return 1
	}
	return ratio
}
