package value

import (
	"context"
	"strings"
	"testing"

	"github.com/spigell/intromatch/internal/network"
	"github.com/spigell/intromatch/internal/tiers"
)

func TestRequiredThresholdIsNonDecreasingInGap(t *testing.T) {
	t.Parallel()

	for target := tiers.Entry; target <= tiers.Luminary; target++ {
		previous := 0.0
		for seeker := target; seeker >= tiers.Entry; seeker-- {
			threshold := RequiredThreshold(seeker, target)
			if threshold < previous {
				t.Fatalf("threshold decreased for target %s: seeker %s got %v after %v",
					target, seeker, threshold, previous)
			}
			previous = threshold
		}
	}
}

func TestRequiredThresholdFloorsAndDiscounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		seeker, target tiers.Tier
		want           float64
	}{
		{name: "junior to luminary", seeker: tiers.Junior, target: tiers.Luminary, want: 92},
		{name: "entry to luminary", seeker: tiers.Entry, target: tiers.Luminary, want: 95},
		{name: "luminary floor", seeker: tiers.Executive, target: tiers.Luminary, want: 85},
		{name: "c-level floor", seeker: tiers.MidLevel, target: tiers.CLevel, want: 80},
		{name: "senior seeker discount", seeker: tiers.Senior, target: tiers.Executive, want: 50},
		{name: "small gap", seeker: tiers.MidLevel, target: tiers.Senior, want: 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := RequiredThreshold(tt.seeker, tt.target); got != tt.want {
				t.Fatalf("RequiredThreshold(%s, %s) = %v, want %v", tt.seeker, tt.target, got, tt.want)
			}
		})
	}
}

func TestGatekeeperPassesStrongProposition(t *testing.T) {
	t.Parallel()

	assessor := NewAssessor(nil, nil)
	gatekeeper := NewGatekeeper(assessor, nil)

	seeker := &network.Contact{
		ID:        "seeker",
		Title:     "Head of Growth",
		Bio:       "Operator with ten years scaling marketplaces across three continents and two exits",
		Needs:     []string{"sales pipeline coaching"},
		Offerings: []string{"growth marketing strategy"},
	}
	target := &network.Contact{
		ID:        "target",
		Needs:     []string{"growth marketing strategy"},
		Offerings: []string{"sales pipeline coaching"},
	}

	seekerTier := &tiers.Profile{ContactID: "seeker", Tier: tiers.Senior, Verified: true}
	targetTier := &tiers.Profile{ContactID: "target", Tier: tiers.Executive}

	prop := &Proposition{Strength: 90, Specificity: 80, Verifiability: 90}

	validation := gatekeeper.Validate(context.Background(), seeker, target, seekerTier, targetTier, prop)

	if validation.RequiredThreshold != 50 {
		t.Fatalf("required threshold = %v, want 50", validation.RequiredThreshold)
	}
	if !validation.Passed {
		t.Fatalf("a strong, fully aligned proposition must pass: score %v", validation.Score)
	}
	if validation.Recommendation != "proceed" {
		t.Fatalf("unexpected recommendation: %q", validation.Recommendation)
	}
	if len(validation.Warnings) != 0 {
		t.Fatalf("passing validations carry no warnings, got %v", validation.Warnings)
	}
	if len(validation.Dimensions) != 6 {
		t.Fatalf("expected 6 scored dimensions, got %d", len(validation.Dimensions))
	}
}

func TestGatekeeperRejectsWeakProposition(t *testing.T) {
	t.Parallel()

	assessor := NewAssessor(nil, nil)
	gatekeeper := NewGatekeeper(assessor, nil)

	seeker := &network.Contact{ID: "seeker"}
	target := &network.Contact{ID: "target"}
	seekerTier := &tiers.Profile{ContactID: "seeker", Tier: tiers.Entry}
	targetTier := &tiers.Profile{ContactID: "target", Tier: tiers.Luminary}

	validation := gatekeeper.Validate(context.Background(), seeker, target, seekerTier, targetTier, &Proposition{})

	if validation.Passed {
		t.Fatal("an empty proposition must never reach a luminary")
	}
	if !strings.HasPrefix(validation.Recommendation, "rejected") {
		t.Fatalf("a gap of 7 warrants a rejection, got %q", validation.Recommendation)
	}
	if len(validation.Warnings) == 0 {
		t.Fatal("failed validations must name the weakest dimensions")
	}
	if len(validation.Warnings) > 3 {
		t.Fatalf("at most 3 weakest dimensions, got %v", validation.Warnings)
	}
}

func TestDimensionWeightsSumToOne(t *testing.T) {
	t.Parallel()

	for gap := 0; gap <= 7; gap++ {
		w := dimensionWeights(gap)
		sum := w.strength + w.specificity + w.relevance + w.professionalism + w.mutualBenefit + w.verification
		if sum < 0.999 || sum > 1.001 {
			t.Fatalf("weights for gap %d sum to %v", gap, sum)
		}
	}
}
