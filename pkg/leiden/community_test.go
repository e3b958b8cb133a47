package leiden

import (
	"math"
	"testing"
)

func TestCommunityAccumulators(t *testing.T) {
	// Triangle 0-1-2 plus a self-loop on 2.
	g := newDenseGraph(3)
	g.addEdge(0, 1, 1)
	g.addEdge(1, 2, 1)
	g.addEdge(0, 2, 1)
	g.addEdge(2, 2, 0.5)

	comm := newCommunity(g)

	if comm.weights[2] != 3 {
		t.Errorf("weights[2] = %f, want 3 (self-loop counts double)", comm.weights[2])
	}
	if comm.internal[2] != 1 {
		t.Errorf("internal[2] = %f, want 1 (twice the self-loop)", comm.internal[2])
	}

	// Move node 0 into node 1's community and verify the bookkeeping.
	kin := comm.edgeWeightTo(g, 0, 1)
	if kin != 1 {
		t.Fatalf("edgeWeightTo(0, comm 1) = %f, want 1", kin)
	}
	comm.remove(g, 0, 0, comm.edgeWeightTo(g, 0, 0))
	comm.insert(g, 0, 1, kin)

	if comm.sizes[0] != 0 || comm.sizes[1] != 2 {
		t.Errorf("sizes = [%d %d], want [0 2]", comm.sizes[0], comm.sizes[1])
	}
	if comm.weights[1] != 4 {
		t.Errorf("weights[1] = %f, want 4", comm.weights[1])
	}
	if comm.internal[1] != 2 {
		t.Errorf("internal[1] = %f, want 2", comm.internal[1])
	}

	// Moving back restores the singleton state.
	comm.remove(g, 0, 1, comm.edgeWeightTo(g, 0, 1))
	comm.insert(g, 0, 0, comm.edgeWeightTo(g, 0, 0))

	if comm.sizes[0] != 1 || comm.weights[0] != 2 || comm.internal[0] != 0 {
		t.Errorf("restore failed: size=%d weights=%f internal=%f",
			comm.sizes[0], comm.weights[0], comm.internal[0])
	}
}

func TestModularityMatchesDirectEvaluation(t *testing.T) {
	g := newDenseGraph(4)
	g.addEdge(0, 1, 2)
	g.addEdge(2, 3, 2)
	g.addEdge(1, 2, 1)

	comm := newCommunity(g)
	// Pair up {0,1} and {2,3} through the accumulator path.
	comm.remove(g, 1, 1, comm.edgeWeightTo(g, 1, 1))
	comm.insert(g, 1, 0, comm.edgeWeightTo(g, 1, 0))
	comm.remove(g, 3, 3, comm.edgeWeightTo(g, 3, 3))
	comm.insert(g, 3, 2, comm.edgeWeightTo(g, 3, 2))

	got := comm.modularity(g, 1.0)
	want := partitionModularity(g, []int{0, 0, 2, 2}, 1.0)

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("accumulator modularity %f != direct evaluation %f", got, want)
	}
}

func TestModularityEmptyMass(t *testing.T) {
	g := newDenseGraph(2)
	comm := newCommunity(g)

	if q := comm.modularity(g, 1.0); q != 0 {
		t.Errorf("modularity on zero-mass graph = %f, want 0", q)
	}
	if gain := modularityGain(g, comm, 0, 1, 0, 1.0); gain != 0 {
		t.Errorf("gain on zero-mass graph = %f, want 0", gain)
	}
}
