package leiden

import (
	"math"
	"reflect"
	"testing"
)

func TestBuildGraphAggregation(t *testing.T) {
	edges := []Edge{
		{From: "a", To: "b", Weight: 1},
		{From: "b", To: "c", Weight: 2},
		{From: "a", To: "b", Weight: 1},
	}

	g := BuildGraph(edges)

	if g.NumNodes() != 3 {
		t.Fatalf("expected 3 nodes, got %d", g.NumNodes())
	}
	if w := g.EdgeWeight("a", "b"); w != 2 {
		t.Errorf("adjacency[a][b] = %f, want 2", w)
	}
	if w := g.EdgeWeight("b", "a"); w != 2 {
		t.Errorf("adjacency[b][a] = %f, want 2", w)
	}
	if w := g.EdgeWeight("b", "c"); w != 2 {
		t.Errorf("adjacency[b][c] = %f, want 2", w)
	}
	if w := g.EdgeWeight("c", "b"); w != 2 {
		t.Errorf("adjacency[c][b] = %f, want 2", w)
	}
	if g.TotalWeight != 4 {
		t.Errorf("totalWeight = %f, want 4 (duplicates each contribute)", g.TotalWeight)
	}
}

func TestBuildGraphEmpty(t *testing.T) {
	g := BuildGraph(nil)

	if g.NumNodes() != 0 {
		t.Errorf("expected empty node set, got %d nodes", g.NumNodes())
	}
	if g.TotalWeight != 0 {
		t.Errorf("totalWeight = %f, want 0", g.TotalWeight)
	}
}

func TestBuildGraphSelfLoop(t *testing.T) {
	g := BuildGraph([]Edge{{From: "a", To: "a", Weight: 1}})

	if g.NumNodes() != 1 {
		t.Fatalf("expected 1 node, got %d", g.NumNodes())
	}
	if w := g.EdgeWeight("a", "a"); w != 1 {
		t.Errorf("adjacency[a][a] = %f, want 1", w)
	}
	// Self-loops count double toward the weighted degree.
	if d := g.Degree("a"); d != 2 {
		t.Errorf("degree(a) = %f, want 2", d)
	}
	if g.TotalWeight != 1 {
		t.Errorf("totalWeight = %f, want 1", g.TotalWeight)
	}
}

func TestBuildGraphUndirected(t *testing.T) {
	// (a,b,w) and (b,a,w) denote the same relationship and aggregate.
	g := BuildGraph([]Edge{
		{From: "a", To: "b", Weight: 3},
		{From: "b", To: "a", Weight: 2},
	})

	if w := g.EdgeWeight("a", "b"); w != 5 {
		t.Errorf("adjacency[a][b] = %f, want 5", w)
	}
	if w := g.EdgeWeight("b", "a"); w != 5 {
		t.Errorf("adjacency[b][a] = %f, want 5", w)
	}
	if g.TotalWeight != 5 {
		t.Errorf("totalWeight = %f, want 5", g.TotalWeight)
	}
}

func TestBuildGraphIdempotent(t *testing.T) {
	edges := []Edge{
		{From: "a", To: "b", Weight: 1},
		{From: "b", To: "c", Weight: 2},
		{From: "c", To: "c", Weight: 0.5},
	}

	g1 := BuildGraph(edges)
	g2 := BuildGraph(edges)

	if !reflect.DeepEqual(g1.Nodes, g2.Nodes) {
		t.Error("node sets differ between identical builds")
	}
	if !reflect.DeepEqual(g1.Adjacency, g2.Adjacency) {
		t.Error("adjacency differs between identical builds")
	}
	if g1.TotalWeight != g2.TotalWeight {
		t.Errorf("totalWeight differs: %f vs %f", g1.TotalWeight, g2.TotalWeight)
	}
}

func TestGraphValidate(t *testing.T) {
	ok := BuildGraph([]Edge{{From: "a", To: "b", Weight: 1}})
	if err := ok.Validate(); err != nil {
		t.Errorf("valid graph rejected: %v", err)
	}

	negative := BuildGraph([]Edge{{From: "a", To: "b", Weight: -1}})
	if err := negative.Validate(); err == nil {
		t.Error("negative weight accepted")
	}

	nan := BuildGraph([]Edge{{From: "a", To: "b", Weight: math.NaN()}})
	if err := nan.Validate(); err == nil {
		t.Error("NaN weight accepted")
	}

	asymmetric := NewGraph()
	asymmetric.AddNode("a")
	asymmetric.AddNode("b")
	asymmetric.Adjacency["a"]["b"] = 1
	if err := asymmetric.Validate(); err == nil {
		t.Error("asymmetric adjacency accepted")
	}
}

func TestNormalize(t *testing.T) {
	g := BuildGraph([]Edge{
		{From: "b", To: "a", Weight: 2},
		{From: "a", To: "c", Weight: 1},
		{From: "c", To: "c", Weight: 3},
	})

	dense, ids := g.normalize()

	if !reflect.DeepEqual(ids, []string{"a", "b", "c"}) {
		t.Fatalf("index table = %v, want sorted [a b c]", ids)
	}
	if dense.numNodes != 3 {
		t.Fatalf("numNodes = %d, want 3", dense.numNodes)
	}
	if dense.totalWeight != g.TotalWeight {
		t.Errorf("dense totalWeight = %f, want %f", dense.totalWeight, g.TotalWeight)
	}

	// a=0, b=1, c=2. Degrees: self-loop on c counts double.
	wantDegrees := []float64{3, 2, 7}
	if !reflect.DeepEqual(dense.degrees, wantDegrees) {
		t.Errorf("degrees = %v, want %v", dense.degrees, wantDegrees)
	}
	if loop := dense.selfLoop(2); loop != 3 {
		t.Errorf("selfLoop(c) = %f, want 3", loop)
	}
}
