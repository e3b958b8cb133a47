package leiden

import "sort"

// aggregateGraph collapses each refined community into a single super-node.
// A super-edge carries the summed weight of all edges crossing between two
// communities; a super-node self-loop carries the summed internal weight of
// its community, self-loops included. Total weight is conserved.
//
// refined must hold dense community ids 0..numRefined-1. The returned
// membership slice maps each super-node to its member nodes at this level.
func aggregateGraph(g *denseGraph, refined []int, numRefined int) (*denseGraph, [][]int) {
	membership := make([][]int, numRefined)
	for node := 0; node < g.numNodes; node++ {
		c := refined[node]
		membership[c] = append(membership[c], node)
	}

	// Each non-loop edge is visited from both endpoints, so weights
	// accumulate doubled and are halved on insertion. Self-loops are
	// visited once and pre-doubled to match.
	superEdges := make(map[[2]int]float64)
	for node := 0; node < g.numNodes; node++ {
		superI := refined[node]
		for i, neighbor := range g.adjacency[node] {
			superJ := refined[neighbor]

			var edge [2]int
			if superI <= superJ {
				edge = [2]int{superI, superJ}
			} else {
				edge = [2]int{superJ, superI}
			}

			if neighbor == node {
				superEdges[edge] += 2 * g.weights[node][i]
			} else {
				superEdges[edge] += g.weights[node][i]
			}
		}
	}

	// Insert in sorted key order so the super-graph's adjacency layout is
	// identical across runs.
	keys := make([][2]int, 0, len(superEdges))
	for edge := range superEdges {
		keys = append(keys, edge)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})

	superGraph := newDenseGraph(numRefined)
	for _, edge := range keys {
		if w := superEdges[edge]; w > 0 {
			superGraph.addEdge(edge[0], edge[1], w/2)
		}
	}

	return superGraph, membership
}
