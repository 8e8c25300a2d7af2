package needs

import (
	"context"
	"strings"
)

// MatchThreshold is the minimum similarity for two texts to count as a match.
const MatchThreshold = 0.3

// Scorer computes similarity between two short texts in [0,1].
//
// The default implementation is literal token overlap. Swapping in an
// embedding-backed scorer changes observable scores, so it only happens
// through an explicit configuration choice in cmd.
type Scorer interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// OverlapScorer scores by Jaccard overlap of lowercase token sets with
// stopwords removed.
type OverlapScorer struct{}

func (OverlapScorer) Similarity(_ context.Context, a, b string) (float64, error) {
	return Jaccard(a, b), nil
}

// Jaccard computes token-set overlap between two texts.
func Jaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "have": {}, "i": {}, "in": {},
	"is": {}, "it": {}, "my": {}, "need": {}, "of": {}, "on": {}, "or": {},
	"our": {}, "that": {}, "the": {}, "to": {}, "we": {}, "with": {}, "help": {},
	"looking": {}, "want": {}, "some": {}, "this": {},
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range Tokenize(text) {
		set[token] = struct{}{}
	}
	return set
}

// Tokenize lowercases the text and returns non-stopword tokens.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(field) < 2 {
			continue
		}
		if _, ok := stopwords[field]; ok {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}
