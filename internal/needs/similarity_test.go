package needs

import (
	"context"
	"reflect"
	"testing"
)

func TestJaccard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical texts", a: "seed funding investment", b: "seed funding investment", want: 1},
		{name: "disjoint texts", a: "growth marketing", b: "kubernetes migration", want: 0},
		{name: "empty text", a: "", b: "anything", want: 0},
		{name: "stopwords only", a: "the and with", b: "for to of", want: 0},
		{name: "partial overlap", a: "seed funding", b: "funding round", want: 1.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Jaccard(tt.a, tt.b); got != tt.want {
				t.Fatalf("Jaccard(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if Jaccard(tt.a, tt.b) != Jaccard(tt.b, tt.a) {
				t.Fatal("jaccard must be symmetric")
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	got := Tokenize("We are looking for a Series-A investor, ASAP!")
	want := []string{"series", "investor", "asap"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
}

func TestOverlapScorer(t *testing.T) {
	t.Parallel()

	sim, err := OverlapScorer{}.Similarity(context.Background(), "venture capital", "venture capital")
	if err != nil {
		t.Fatalf("overlap scorer: %v", err)
	}
	if sim != 1 {
		t.Fatalf("expected similarity 1, got %v", sim)
	}
	if sim < MatchThreshold {
		t.Fatal("identical texts must clear the match threshold")
	}
}
