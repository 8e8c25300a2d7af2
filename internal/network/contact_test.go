package network

import "testing"

func testContacts() *Contacts {
	return &Contacts{Items: []*Contact{
		{ID: "c1", Name: "Ada", Title: "CTO", Industry: "technology", Offerings: []string{"architecture reviews"}},
		{ID: "c2", Name: "Ben", Title: "Partner", Industry: "finance"},
		{ID: "c3", Name: "Cleo", Title: "Founder"},
	}}
}

func TestContactsFindByID(t *testing.T) {
	t.Parallel()

	contacts := testContacts()

	if got := contacts.FindByID("c2"); got == nil || got.Name != "Ben" {
		t.Fatalf("expected to find Ben, got %v", got)
	}

	if got := contacts.FindByID("missing"); got != nil {
		t.Fatalf("expected nil for unknown id, got %v", got)
	}
}

func TestContactsExclude(t *testing.T) {
	t.Parallel()

	contacts := testContacts()

	excluded := contacts.Exclude(ContactIndustryField, []string{"finance"})
	if len(excluded) != 1 || excluded[0] != "c2" {
		t.Fatalf("expected to exclude c2, got %v", excluded)
	}
	if contacts.Len() != 2 {
		t.Fatalf("expected 2 contacts left, got %d", contacts.Len())
	}
	if contacts.FindByID("c2") != nil {
		t.Fatal("c2 should be removed")
	}
}

func TestContactsReportByIndustry(t *testing.T) {
	t.Parallel()

	report := testContacts().ReportByIndustry()

	if len(report["technology"]) != 1 {
		t.Fatalf("expected 1 technology contact, got %d", len(report["technology"]))
	}
	if len(report["unknown"]) != 1 {
		t.Fatalf("expected contact without industry under 'unknown', got %v", report)
	}
	if report["technology"][0]["offerings"] != "architecture reviews" {
		t.Fatalf("unexpected offerings summary: %v", report["technology"][0])
	}
}

func TestSearchTextFallsBackToBio(t *testing.T) {
	t.Parallel()

	withNeeds := &Contact{Needs: []string{"seed funding", "go engineers"}, Bio: "ignored"}
	if got := withNeeds.SearchText(); got != "seed funding. go engineers" {
		t.Fatalf("unexpected search text: %q", got)
	}

	bioOnly := &Contact{Bio: "building a fintech startup"}
	if got := bioOnly.SearchText(); got != "building a fintech startup" {
		t.Fatalf("expected bio fallback, got %q", got)
	}
}

func TestConnectionNormalized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		in             Connection
		strength, trust float64
	}{
		{name: "zero values take defaults", in: Connection{From: "a", To: "b"}, strength: DefaultStrength, trust: DefaultTrust},
		{name: "valid values kept", in: Connection{Strength: 0.8, Trust: 0.3}, strength: 0.8, trust: 0.3},
		{name: "values above one clamped", in: Connection{Strength: 1.5, Trust: 2}, strength: 1, trust: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.in.Normalized()
			if got.Strength != tt.strength || got.Trust != tt.trust {
				t.Fatalf("Normalized() = %v/%v, want %v/%v", got.Strength, got.Trust, tt.strength, tt.trust)
			}
		})
	}
}

func TestSignalsWeaklyTyped(t *testing.T) {
	t.Parallel()

	contact := &Contact{
		ID: "c1",
		Metadata: map[string]any{
			"followers":    "1500",
			"career_years": 12,
			"company":      "sequoia",
			"linkedin":     "https://linkedin.com/in/ada",
		},
	}

	signals, err := contact.Signals()
	if err != nil {
		t.Fatalf("decoding signals: %v", err)
	}

	if signals.Followers != 1500 {
		t.Fatalf("expected followers 1500, got %d", signals.Followers)
	}
	if signals.CareerYears != 12 {
		t.Fatalf("expected career years 12, got %v", signals.CareerYears)
	}
	if signals.Company != "sequoia" {
		t.Fatalf("unexpected company: %q", signals.Company)
	}
}

func TestSignalsEmptyMetadata(t *testing.T) {
	t.Parallel()

	signals, err := (&Contact{ID: "c1"}).Signals()
	if err != nil {
		t.Fatalf("empty metadata must not fail: %v", err)
	}
	if *signals != (ProfileSignals{}) {
		t.Fatalf("expected zero signals, got %+v", signals)
	}
}
