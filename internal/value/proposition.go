// Package value scores what a seeker offers a target and gates access to
// senior contacts behind proportionally stronger value justification.
package value

import "regexp"

// Category is the 8-way classification of a value proposition.
type Category string

const (
	FundingInvestment        Category = "funding_investment"
	ExpertiseAdvice          Category = "expertise_advice"
	BusinessDevelopment      Category = "business_development"
	TalentRecruiting         Category = "talent_recruiting"
	PartnershipCollaboration Category = "partnership_collaboration"
	MarketAccess             Category = "market_access"
	MediaVisibility          Category = "media_visibility"
	KnowledgeExchange        Category = "knowledge_exchange"
)

// categoryRules is an ordered keyword cascade; the first match wins. The
// fallback when nothing matches is the highest-overlap offering/need pair.
var categoryRules = []struct {
	pattern  *regexp.Regexp
	category Category
}{
	{regexp.MustCompile(`(?i)\b(funding|fundraising|investment|investor|capital|raise|term sheet)\b`), FundingInvestment},
	{regexp.MustCompile(`(?i)\b(advice|mentoring|mentorship|guidance|coaching|consulting)\b`), ExpertiseAdvice},
	{regexp.MustCompile(`(?i)\b(business development|biz dev|sales channel|distribution|clients|customers)\b`), BusinessDevelopment},
	{regexp.MustCompile(`(?i)\b(hiring|recruiting|talent|candidates|headhunting)\b`), TalentRecruiting},
	{regexp.MustCompile(`(?i)\b(partnership|collaboration|joint venture|co-develop|alliance)\b`), PartnershipCollaboration},
	{regexp.MustCompile(`(?i)\b(market access|market entry|expansion|new market|go-to-market)\b`), MarketAccess},
	{regexp.MustCompile(`(?i)\b(media|press|pr|visibility|publicity|podcast|interview)\b`), MediaVisibility},
	{regexp.MustCompile(`(?i)\b(knowledge|research|insights|learnings|best practices|exchange)\b`), KnowledgeExchange},
}

// categoryWeight is the bonus a category adds to the strength score.
var categoryWeight = map[Category]float64{
	FundingInvestment:        20,
	MarketAccess:             18,
	BusinessDevelopment:      15,
	MediaVisibility:          14,
	PartnershipCollaboration: 12,
	TalentRecruiting:         12,
	ExpertiseAdvice:          10,
	KnowledgeExchange:        8,
}

// highValueCategories keep their full strength even across large tier gaps.
var highValueCategories = map[Category]struct{}{
	FundingInvestment: {},
	MarketAccess:      {},
	MediaVisibility:   {},
}

// CategoryOf runs the keyword cascade over free text. The boolean reports
// whether any rule matched; false comes with the KnowledgeExchange fallback.
func CategoryOf(text string) (Category, bool) {
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(text) {
			return rule.category, true
		}
	}
	return KnowledgeExchange, false
}

// Proposition is a scored description of what the seeker offers the target.
// All scores are in [0,100].
type Proposition struct {
	Category       Category
	Strength       float64
	Specificity    float64
	Verifiability  float64
	Uniqueness     float64
	Timeliness     float64
	NeedsAddressed []string
	Evidence       []string
}
