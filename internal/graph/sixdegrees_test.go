package graph

import (
	"strings"
	"testing"

	"github.com/spigell/intromatch/internal/network"
)

func TestVerifySixDegrees(t *testing.T) {
	t.Parallel()

	traversal := testTraversal()

	tests := []struct {
		name      string
		from, to  string
		connected bool
		degrees   int
		insight   string
	}{
		{name: "same contact", from: "a", to: "a", connected: true, degrees: 0, insight: "same contact"},
		{name: "direct connection", from: "a", to: "b", connected: true, degrees: 1, insight: "direct connection"},
		{name: "one introduction away", from: "a", to: "c", connected: true, degrees: 2, insight: "one introduction away"},
		{name: "close proximity", from: "a", to: "e", connected: true, degrees: 3, insight: "close network proximity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := traversal.VerifySixDegrees(tt.from, tt.to)
			if err != nil {
				t.Fatalf("verify six degrees: %v", err)
			}
			if result.Connected != tt.connected {
				t.Fatalf("connected = %v, want %v", result.Connected, tt.connected)
			}
			if result.Degrees != tt.degrees {
				t.Fatalf("degrees = %d, want %d", result.Degrees, tt.degrees)
			}
			if !strings.Contains(result.Insight, tt.insight) {
				t.Fatalf("insight %q does not mention %q", result.Insight, tt.insight)
			}
			if result.Path == nil {
				t.Fatal("connected contacts must come with a path")
			}
		})
	}
}

func TestVerifySixDegreesSeparateClusters(t *testing.T) {
	t.Parallel()

	result, err := testTraversal().VerifySixDegrees("a", "x")
	if err != nil {
		t.Fatalf("verify six degrees: %v", err)
	}

	if result.Connected {
		t.Fatal("contacts in separate clusters must not be connected")
	}
	if result.Degrees != UnreachableDegrees {
		t.Fatalf("degrees = %d, want %d", result.Degrees, UnreachableDegrees)
	}
	if result.Path != nil {
		t.Fatal("unreachable contacts must not have a path")
	}
	if !strings.Contains(result.Insight, "separate clusters") {
		t.Fatalf("insight must mention separate clusters, got %q", result.Insight)
	}
}

func TestVerifySixDegreesBeyondRange(t *testing.T) {
	t.Parallel()

	// A single chain of 7 hops: connected, but past the six-degrees bound.
	connections := []*network.Connection{
		{From: "n0", To: "n1", Strength: 0.5, Trust: 0.5},
		{From: "n1", To: "n2", Strength: 0.5, Trust: 0.5},
		{From: "n2", To: "n3", Strength: 0.5, Trust: 0.5},
		{From: "n3", To: "n4", Strength: 0.5, Trust: 0.5},
		{From: "n4", To: "n5", Strength: 0.5, Trust: 0.5},
		{From: "n5", To: "n6", Strength: 0.5, Trust: 0.5},
		{From: "n6", To: "n7", Strength: 0.5, Trust: 0.5},
	}
	g := New([]string{"n0", "n1", "n2", "n3", "n4", "n5", "n6", "n7"}, connections)
	traversal := NewTraversal(g, nil)

	result, err := traversal.VerifySixDegrees("n0", "n7")
	if err != nil {
		t.Fatalf("verify six degrees: %v", err)
	}

	if result.Connected {
		t.Fatal("seven hops exceed the six-degrees bound")
	}
	if result.Degrees != 7 {
		t.Fatalf("degrees = %d, want 7", result.Degrees)
	}
	if result.Path == nil || result.Path.Hops() != 7 {
		t.Fatalf("a distant pair still comes with its path, got %+v", result.Path)
	}
	if !strings.Contains(result.Insight, "beyond the six-degrees range") {
		t.Fatalf("insight must mention the range, got %q", result.Insight)
	}
}

func TestConnectorNodes(t *testing.T) {
	t.Parallel()

	paths := []*Path{
		{Nodes: []string{"a", "hub", "c"}},
		{Nodes: []string{"a", "hub", "d", "c"}},
		{Nodes: []string{"a", "side", "c"}},
		nil,
		{Nodes: []string{"a", "c"}}, // no intermediates
	}

	connectors := ConnectorNodes(paths)
	if len(connectors) != 1 {
		t.Fatalf("expected only the recurring hub, got %v", connectors)
	}
	if connectors[0].ID != "hub" || connectors[0].Count != 2 {
		t.Fatalf("unexpected connector: %+v", connectors[0])
	}
}
