package leiden

// community tracks the partition state for one level: per-node assignments
// plus the per-community accumulators the modularity math needs.
//
// Conventions: weights[c] is the summed weighted degree of the members of c
// (self-loops counted double, as in denseGraph.degrees). internal[c] is twice
// the summed weight of edges with both endpoints in c, self-loops included.
type community struct {
	nodeToCommunity []int
	weights         []float64
	internal        []float64
	sizes           []int
	numCommunities  int
}

// newCommunity initializes each node in its own singleton community.
func newCommunity(g *denseGraph) *community {
	n := g.numNodes
	comm := &community{
		nodeToCommunity: make([]int, n),
		weights:         make([]float64, n),
		internal:        make([]float64, n),
		sizes:           make([]int, n),
		numCommunities:  n,
	}

	for i := 0; i < n; i++ {
		comm.nodeToCommunity[i] = i
		comm.weights[i] = g.degrees[i]
		comm.internal[i] = 2 * g.selfLoop(i)
		comm.sizes[i] = 1
	}

	return comm
}

// edgeWeightTo sums the edge weight from node to members of target,
// excluding any self-loop on the node itself.
func (c *community) edgeWeightTo(g *denseGraph, node, target int) float64 {
	weight := 0.0
	for i, neighbor := range g.adjacency[node] {
		if neighbor != node && c.nodeToCommunity[neighbor] == target {
			weight += g.weights[node][i]
		}
	}
	return weight
}

// remove takes a node out of its community, leaving it unassigned. kin must
// be the node's edge weight into that community (edgeWeightTo).
func (c *community) remove(g *denseGraph, node, comm int, kin float64) {
	c.weights[comm] -= g.degrees[node]
	c.internal[comm] -= 2*kin + 2*g.selfLoop(node)
	c.sizes[comm]--
	c.nodeToCommunity[node] = -1
}

// insert places an unassigned node into a community. kin must be the node's
// edge weight into that community.
func (c *community) insert(g *denseGraph, node, comm int, kin float64) {
	c.weights[comm] += g.degrees[node]
	c.internal[comm] += 2*kin + 2*g.selfLoop(node)
	c.sizes[comm]++
	c.nodeToCommunity[node] = comm
}

// modularity computes the quality of the current partition under the
// resolution parameter: Q = sum_c [ in_c/2m - gamma*(tot_c/2m)^2 ].
func (c *community) modularity(g *denseGraph, resolution float64) float64 {
	if g.totalWeight == 0 {
		return 0.0
	}

	q := 0.0
	m2 := 2.0 * g.totalWeight

	for i := 0; i < c.numCommunities; i++ {
		if c.sizes[i] == 0 {
			continue
		}
		q += c.internal[i]/m2 - resolution*(c.weights[i]/m2)*(c.weights[i]/m2)
	}

	return q
}

// modularityGain scores inserting a (removed) node into a community. Only
// relative order across candidates matters, so the shared 1/2m factor is
// dropped: gain = kin - gamma * k_i * tot_c / 2m.
func modularityGain(g *denseGraph, c *community, node, target int, kin, resolution float64) float64 {
	m2 := 2.0 * g.totalWeight
	if m2 == 0 {
		return 0.0
	}
	return kin - resolution*g.degrees[node]*c.weights[target]/m2
}
