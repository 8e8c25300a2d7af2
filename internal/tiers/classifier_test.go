package tiers

import (
	"testing"

	"github.com/spigell/intromatch/internal/network"
)

func TestClassifyTierTitleOverrides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		score float64
		want  Tier
	}{
		{title: "Founder & CEO", score: 10, want: FounderCEO},
		{title: "Co-Founder", score: 0, want: FounderCEO},
		{title: "CTO", score: 0, want: CLevel},
		{title: "Chief Revenue Officer", score: 0, want: CLevel},
		{title: "World-Renowned AI Researcher", score: 0, want: Luminary},
		{title: "Nobel Laureate, Founder", score: 0, want: Luminary},
	}

	for _, tt := range tests {
		if got := classifyTier(tt.title, tt.score); got != tt.want {
			t.Fatalf("classifyTier(%q, %v) = %s, want %s", tt.title, tt.score, got, tt.want)
		}
	}
}

func TestClassifyTierScoreBuckets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  Tier
	}{
		{score: 95, want: Luminary},
		{score: 93, want: Luminary},
		{score: 90, want: FounderCEO},
		{score: 80, want: CLevel},
		{score: 70, want: Executive},
		{score: 55, want: Senior},
		{score: 40, want: MidLevel},
		{score: 25, want: Junior},
		{score: 5, want: Entry},
	}

	for _, tt := range tests {
		if got := classifyTier("", tt.score); got != tt.want {
			t.Fatalf("classifyTier(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestClassifyProducesEvidence(t *testing.T) {
	t.Parallel()

	classifier := NewClassifier(nil, 0)
	contact := &network.Contact{
		ID:    "c1",
		Title: "Senior Engineer",
		Metadata: map[string]any{
			"linkedin":     "https://linkedin.com/in/c1",
			"publications": 3,
			"email":        "c1@gmail.com",
		},
	}

	profile := classifier.Classify(contact)
	if profile.ContactID != "c1" {
		t.Fatalf("unexpected contact id: %q", profile.ContactID)
	}
	if len(profile.Evidence) != 2 {
		t.Fatalf("expected linkedin and publications as evidence, got %v", profile.Evidence)
	}
	if !profile.Verified {
		t.Fatal("two pieces of evidence must verify the profile")
	}
	if profile.Score < 0 || profile.Score > 100 {
		t.Fatalf("score out of range: %v", profile.Score)
	}
}

func TestClassifyIsCached(t *testing.T) {
	t.Parallel()

	classifier := NewClassifier(nil, 0)
	contact := &network.Contact{ID: "c1", Title: "Engineer"}

	first := classifier.Classify(contact)
	second := classifier.Classify(contact)
	if first != second {
		t.Fatal("repeated classification must hit the cache")
	}
}

func TestClassifyDegradesBadMetadata(t *testing.T) {
	t.Parallel()

	classifier := NewClassifier(nil, 0)
	contact := &network.Contact{
		ID:    "broken",
		Title: "Engineer",
		Metadata: map[string]any{
			"followers": map[string]any{"unexpected": "shape"},
		},
	}

	profile := classifier.Classify(contact)
	if profile == nil {
		t.Fatal("malformed metadata must degrade to neutral defaults, not fail")
	}
	if profile.Tier < Entry || profile.Tier > Luminary {
		t.Fatalf("unexpected tier: %v", profile.Tier)
	}
}

func TestCompositeScoreRespectsSignals(t *testing.T) {
	t.Parallel()

	classifier := NewClassifier(nil, 0)

	junior := classifier.Classify(&network.Contact{ID: "junior", Title: "Junior Analyst"})
	executive := classifier.Classify(&network.Contact{
		ID:    "exec",
		Title: "Executive Vice President",
		Bio:   "Keynote speaker, board member and recognized expert in fintech.",
		Metadata: map[string]any{
			"career_years": 22,
			"followers":    50000,
			"publications": 12,
			"company":      "Google",
			"education":    "Stanford MBA",
		},
	})

	if junior.Score >= executive.Score {
		t.Fatalf("rich executive signals must outscore a junior profile: %v vs %v",
			executive.Score, junior.Score)
	}
	if executive.Tier <= junior.Tier {
		t.Fatalf("expected a higher tier for the executive, got %s vs %s",
			executive.Tier, junior.Tier)
	}
}
