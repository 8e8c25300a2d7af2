package value

import (
	"context"
	"slices"
	"testing"

	"github.com/spigell/intromatch/internal/network"
	"github.com/spigell/intromatch/internal/tiers"
)

func TestClassifyCategoryKeywordCascade(t *testing.T) {
	t.Parallel()

	assessor := NewAssessor(nil, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		offer string
		want  Category
	}{
		{name: "fundraising", offer: "I can help with fundraising and investor introductions", want: FundingInvestment},
		{name: "mentoring", offer: "mentoring early-stage founders", want: ExpertiseAdvice},
		{name: "market entry", offer: "market entry support for the DACH region", want: MarketAccess},
		{name: "press", offer: "press coverage and podcast placements", want: MediaVisibility},
		{name: "no keyword falls back", offer: "miscellaneous things", want: KnowledgeExchange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := classifyCategory(ctx, assessor, tt.offer, &network.Contact{}, &network.Contact{})
			if got != tt.want {
				t.Fatalf("classifyCategory(%q) = %s, want %s", tt.offer, got, tt.want)
			}
		})
	}
}

func TestTierFactor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		gap      int
		category Category
		want     float64
	}{
		{name: "small gap keeps full strength", gap: 1, category: ExpertiseAdvice, want: 1.0},
		{name: "gap of three decays", gap: 3, category: ExpertiseAdvice, want: 0.8},
		{name: "decay bottoms out", gap: 7, category: ExpertiseAdvice, want: 0.6},
		{name: "high-value category resists decay", gap: 5, category: FundingInvestment, want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tierFactor(tt.gap, tt.category); got != tt.want {
				t.Fatalf("tierFactor(%d, %s) = %v, want %v", tt.gap, tt.category, got, tt.want)
			}
		})
	}
}

func TestAssessScoresAlignedProposition(t *testing.T) {
	t.Parallel()

	assessor := NewAssessor(nil, nil)

	seeker := &network.Contact{
		ID:        "seeker",
		Offerings: []string{"seed funding for b2b startups, $2M deployed"},
		Metadata:  map[string]any{"linkedin": "https://linkedin.com/in/seeker"},
	}
	target := &network.Contact{
		ID:    "target",
		Needs: []string{"seed funding for b2b startups"},
	}

	seekerTier := &tiers.Profile{ContactID: "seeker", Tier: tiers.Senior}
	targetTier := &tiers.Profile{ContactID: "target", Tier: tiers.Senior}

	prop := assessor.Assess(context.Background(), seeker, target, seekerTier, targetTier)

	if prop.Category != FundingInvestment {
		t.Fatalf("category = %s, want %s", prop.Category, FundingInvestment)
	}
	if !slices.Contains(prop.NeedsAddressed, "seed funding for b2b startups") {
		t.Fatalf("the aligned need must be addressed, got %v", prop.NeedsAddressed)
	}
	if prop.Strength < 60 || prop.Strength > 100 {
		t.Fatalf("strength out of the expected band: %v", prop.Strength)
	}
	if !slices.Contains(prop.Evidence, "linked external profile") {
		t.Fatalf("expected linkedin evidence, got %v", prop.Evidence)
	}
	if !slices.Contains(prop.Evidence, "quantified claims") {
		t.Fatalf("a dollar figure is a quantified claim, got %v", prop.Evidence)
	}
}

func TestAssessWithoutOverlap(t *testing.T) {
	t.Parallel()

	assessor := NewAssessor(nil, nil)

	seeker := &network.Contact{ID: "seeker", Offerings: []string{"vintage car restoration"}}
	target := &network.Contact{ID: "target", Needs: []string{"kubernetes migration"}}

	prop := assessor.Assess(
		context.Background(),
		seeker, target,
		&tiers.Profile{Tier: tiers.MidLevel},
		&tiers.Profile{Tier: tiers.MidLevel},
	)

	if len(prop.NeedsAddressed) != 0 {
		t.Fatalf("disjoint texts address nothing, got %v", prop.NeedsAddressed)
	}
	if prop.Strength < 0 || prop.Strength > 100 {
		t.Fatalf("strength out of range: %v", prop.Strength)
	}
}

func TestNeedsAlignmentScalesWithCoverage(t *testing.T) {
	t.Parallel()

	assessor := NewAssessor(nil, nil)
	ctx := context.Background()

	seeker := &network.Contact{Offerings: []string{"seed funding investment"}}
	fullMatch := &network.Contact{Needs: []string{"seed funding investment"}}
	halfMatch := &network.Contact{Needs: []string{"seed funding investment", "industrial design"}}

	full, addressed := assessor.needsAlignment(ctx, seeker, fullMatch)
	if full != 100 {
		t.Fatalf("perfect single-need alignment = %v, want 100", full)
	}
	if len(addressed) != 1 {
		t.Fatalf("expected 1 addressed need, got %v", addressed)
	}

	half, _ := assessor.needsAlignment(ctx, seeker, halfMatch)
	if half != 50 {
		t.Fatalf("half coverage halves the alignment: %v, want 50", half)
	}

	none, addressed := assessor.needsAlignment(ctx, seeker, &network.Contact{})
	if none != 0 || addressed != nil {
		t.Fatalf("no needs means no alignment, got %v, %v", none, addressed)
	}
}
