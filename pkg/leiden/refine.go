package leiden

// refinePartition re-splits each local-moving community into connected
// components, so every community handed to aggregation induces a connected
// subgraph. Local moving alone can merge two nodes into a community that is
// not internally reachable; this pass is what corrects that.
//
// Returns the refined assignment with component ids renumbered to dense
// integers (0..numRefined-1), and the refined community count. The scan runs
// in node index order, so refined ids are deterministic.
func refinePartition(g *denseGraph, comm *community) ([]int, int) {
	n := g.numNodes
	refined := make([]int, n)
	for i := range refined {
		refined[i] = -1
	}

	nextComm := 0
	queue := make([]int, 0, n)

	for start := 0; start < n; start++ {
		if refined[start] != -1 {
			continue
		}

		origComm := comm.nodeToCommunity[start]

		// BFS over the subgraph induced by the original community.
		queue = append(queue[:0], start)
		refined[start] = nextComm

		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]

			for _, neighbor := range g.adjacency[node] {
				if neighbor == node {
					continue
				}
				if comm.nodeToCommunity[neighbor] != origComm {
					continue
				}
				if refined[neighbor] != -1 {
					continue
				}
				refined[neighbor] = nextComm
				queue = append(queue, neighbor)
			}
		}

		nextComm++
	}

	return refined, nextComm
}
