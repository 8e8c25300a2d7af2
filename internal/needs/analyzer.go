package needs

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"sort"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/spigell/intromatch/internal/network"
	"github.com/spigell/intromatch/internal/tiers"
)

const (
	maxKeywords      = 10
	defaultCacheSize = 4096
	defaultCacheTTL  = 10 * time.Minute
)

// Cascades are ordered highest-priority-first; the first match wins and
// later rules are intentional fallbacks.
var urgencyRules = []struct {
	pattern *regexp.Regexp
	level   Level
}{
	{regexp.MustCompile(`(?i)\b(urgent|immediately|asap|emergency|critical deadline|right now)\b`), Critical},
	{regexp.MustCompile(`(?i)\b(soon|quickly|this week|pressing|time-sensitive)\b`), High},
	{regexp.MustCompile(`(?i)\b(this month|upcoming|in the near future|shortly)\b`), Medium},
}

var importanceRules = []struct {
	pattern *regexp.Regexp
	level   Level
}{
	{regexp.MustCompile(`(?i)\b(critical|make or break|existential|survival|must have|vital)\b`), Critical},
	{regexp.MustCompile(`(?i)\b(important|key|major|significant|strategic priority)\b`), High},
	{regexp.MustCompile(`(?i)\b(useful|helpful|would like|beneficial)\b`), Medium},
}

var (
	technicalWords  = regexp.MustCompile(`(?i)\b(architecture|infrastructure|algorithm|integration|migration|machine learning|scalability|compliance|security)\b`)
	multiDimWords   = regexp.MustCompile(`(?i)\b(cross-functional|multiple teams|several|end-to-end|organization-wide|multi)\b`)
	expertiseWords  = regexp.MustCompile(`(?i)\b(expert|specialist|deep experience|seasoned|advanced|niche)\b`)
	simplicityWords = regexp.MustCompile(`(?i)\b(simple|quick|straightforward|basic|small|minor)\b`)
)

var scopeRules = []struct {
	pattern *regexp.Regexp
	scope   Scope
}{
	{regexp.MustCompile(`(?i)\b(transform|reinvent|pivot|new market|company-wide change|disrupt)\b`), Transformational},
	{regexp.MustCompile(`(?i)\b(strategy|strategic|roadmap|long-term plan|positioning|expansion)\b`), Strategic},
	{regexp.MustCompile(`(?i)\b(process|operations|workflow|team|hiring|scaling)\b`), Operational},
}

var horizonRules = []struct {
	pattern *regexp.Regexp
	horizon TimeHorizon
}{
	{regexp.MustCompile(`(?i)\b(today|now|immediately|this week|asap)\b`), Immediate},
	{regexp.MustCompile(`(?i)\b(this month|next month|this quarter|weeks)\b`), ShortTerm},
	{regexp.MustCompile(`(?i)\b(this year|quarters|six months|months)\b`), MediumTerm},
	{regexp.MustCompile(`(?i)\b(next year|years|long term|eventually)\b`), LongTerm},
}

var resourceRules = []struct {
	pattern  *regexp.Regexp
	resource string
}{
	{regexp.MustCompile(`(?i)\b(funding|investment|capital|budget|money|raise)\b`), "money"},
	{regexp.MustCompile(`(?i)\b(time|bandwidth|hours|availability)\b`), "time"},
	{regexp.MustCompile(`(?i)\b(expertise|experience|knowledge|skills|advice|guidance)\b`), "expertise"},
	{regexp.MustCompile(`(?i)\b(introduction|connection|network|referral|intro)\b`), "network"},
}

// domainKeywords is the fixed multi-label classification table.
var domainKeywords = map[string]*regexp.Regexp{
	"technology":    regexp.MustCompile(`(?i)\b(software|ai|data|cloud|engineering|tech|platform|api)\b`),
	"finance":       regexp.MustCompile(`(?i)\b(funding|investment|venture|capital|finance|banking|fundraising)\b`),
	"healthcare":    regexp.MustCompile(`(?i)\b(health|medical|clinical|pharma|biotech|patient)\b`),
	"marketing":     regexp.MustCompile(`(?i)\b(marketing|brand|growth|acquisition|seo|content)\b`),
	"sales":         regexp.MustCompile(`(?i)\b(sales|pipeline|deals|customers|revenue|b2b)\b`),
	"legal":         regexp.MustCompile(`(?i)\b(legal|contract|compliance|regulation|ip|patent)\b`),
	"education":     regexp.MustCompile(`(?i)\b(education|teaching|course|training|university|learning)\b`),
	"manufacturing": regexp.MustCompile(`(?i)\b(manufacturing|supply chain|hardware|factory|logistics)\b`),
	"media":         regexp.MustCompile(`(?i)\b(media|press|pr|journalism|podcast|audience)\b`),
}

// Analyzer maps free text to a structured needs analysis, memoized with a
// short-TTL LRU since analyses are recomputed per request over slow-changing
// profiles.
type Analyzer struct {
	cache *expirable.LRU[string, *Analysis]
}

func NewAnalyzer(ttl time.Duration) *Analyzer {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Analyzer{
		cache: expirable.NewLRU[string, *Analysis](defaultCacheSize, nil, ttl),
	}
}

// Analyze builds the needs analysis for the given request text on behalf of
// the contact. Pure text heuristics, no I/O.
func (a *Analyzer) Analyze(text string, contact *network.Contact) *Analysis {
	key := cacheKey(contact.ID, text)
	if cached, ok := a.cache.Get(key); ok {
		return cached
	}

	analysis := &Analysis{
		ContactID:            contact.ID,
		Urgency:              matchLevel(urgencyRules, text, Low),
		Importance:           matchLevel(importanceRules, text, Low),
		Complexity:           complexityOf(text),
		Scope:                scopeOf(text),
		TimeHorizon:          horizonOf(text),
		ResourceRequirements: resourcesOf(text),
		Keywords:             topKeywords(text),
		Domains:              domainsOf(text),
	}
	analysis.PreferredHelperTiers = preferredTiers(analysis)

	a.cache.Add(key, analysis)
	return analysis
}

func cacheKey(contactID, text string) string {
	h := fnv.New64a()
	h.Write([]byte(text))
	return fmt.Sprintf("%s:%x", contactID, h.Sum64())
}

func matchLevel(rules []struct {
	pattern *regexp.Regexp
	level   Level
}, text string, fallback Level,
) Level {
	for _, rule := range rules {
		if rule.pattern.MatchString(text) {
			return rule.level
		}
	}
	return fallback
}

// complexityOf adds technical, multi-dimensional and expertise signals and
// subtracts simplicity signals, then buckets the result.
func complexityOf(text string) Complexity {
	score := len(technicalWords.FindAllString(text, -1)) +
		len(multiDimWords.FindAllString(text, -1)) +
		len(expertiseWords.FindAllString(text, -1)) -
		len(simplicityWords.FindAllString(text, -1))

	switch {
	case score >= 4:
		return HighlyComplex
	case score >= 2:
		return Complex
	case score >= 1:
		return Moderate
	default:
		return Simple
	}
}

func scopeOf(text string) Scope {
	for _, rule := range scopeRules {
		if rule.pattern.MatchString(text) {
			return rule.scope
		}
	}
	return Tactical
}

func horizonOf(text string) TimeHorizon {
	for _, rule := range horizonRules {
		if rule.pattern.MatchString(text) {
			return rule.horizon
		}
	}
	return ShortTerm
}

func resourcesOf(text string) []string {
	var resources []string
	for _, rule := range resourceRules {
		if rule.pattern.MatchString(text) {
			resources = append(resources, rule.resource)
		}
	}
	return resources
}

func topKeywords(text string) []string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, token := range Tokenize(text) {
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}

func domainsOf(text string) []string {
	var domains []string
	for domain, pattern := range domainKeywords {
		if pattern.MatchString(text) {
			domains = append(domains, domain)
		}
	}
	sort.Strings(domains)
	return domains
}

// preferredTiers derives which seniority levels are best placed to help.
func preferredTiers(a *Analysis) []tiers.Tier {
	switch {
	case a.Scope == Transformational || a.Importance == Critical:
		return []tiers.Tier{tiers.CLevel, tiers.FounderCEO, tiers.Luminary}
	case a.Scope == Strategic || a.Complexity == HighlyComplex:
		return []tiers.Tier{tiers.Executive, tiers.CLevel}
	case a.Complexity == Complex:
		return []tiers.Tier{tiers.Senior, tiers.Executive}
	default:
		return []tiers.Tier{tiers.MidLevel, tiers.Senior}
	}
}
