package leiden

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// localMove performs the local moving phase on one level: repeated
// PRNG-shuffled passes over all nodes, greedily relocating each node to the
// neighboring community with the greatest positive modularity gain, until a
// pass produces no moves or the iteration cap is reached.
//
// Ties on gain break toward the lower community id, which keeps the outcome
// independent of candidate enumeration order.
func localMove(g *denseGraph, comm *community, cfg *Config, rng *rand.Rand, logger zerolog.Logger) (bool, int) {
	improvement := false
	totalMoves := 0
	resolution := cfg.Resolution()
	minGain := cfg.MinModularityGain()

	nodes := make([]int, g.numNodes)
	for i := range nodes {
		nodes[i] = i
	}

	// Scratch buffers reused across nodes: weight into each candidate
	// community plus the candidate list in first-seen order.
	commWeight := make(map[int]float64)
	candidates := make([]int, 0, 16)

	for iteration := 0; iteration < cfg.MaxIterations(); iteration++ {
		iterationMoves := 0

		rng.Shuffle(len(nodes), func(i, j int) { nodes[i], nodes[j] = nodes[j], nodes[i] })

		for _, node := range nodes {
			oldComm := comm.nodeToCommunity[node]

			// Accumulate edge weight into each neighboring community.
			clear(commWeight)
			candidates = candidates[:0]
			for i, neighbor := range g.adjacency[node] {
				if neighbor == node {
					continue
				}
				nComm := comm.nodeToCommunity[neighbor]
				if _, seen := commWeight[nComm]; !seen {
					candidates = append(candidates, nComm)
				}
				commWeight[nComm] += g.weights[node][i]
			}
			if _, seen := commWeight[oldComm]; !seen {
				candidates = append(candidates, oldComm)
			}

			// Evaluate candidates against the node taken out of its
			// current community, so stay and move score symmetrically.
			comm.remove(g, node, oldComm, commWeight[oldComm])

			bestComm := oldComm
			bestGain := modularityGain(g, comm, node, oldComm, commWeight[oldComm], resolution)
			stayGain := bestGain

			for _, target := range candidates {
				if target == oldComm {
					continue
				}
				gain := modularityGain(g, comm, node, target, commWeight[target], resolution)
				if gain > bestGain || (gain == bestGain && target < bestComm) {
					bestComm = target
					bestGain = gain
				}
			}

			// Require a strictly positive improvement over staying put.
			if bestComm != oldComm && bestGain-stayGain <= minGain {
				bestComm = oldComm
			}

			comm.insert(g, node, bestComm, commWeight[bestComm])

			if bestComm != oldComm {
				iterationMoves++
				improvement = true
			}
		}

		totalMoves += iterationMoves

		if cfg.EnableProgress() && iteration%10 == 0 {
			logger.Info().
				Int("iteration", iteration+1).
				Int("moves", iterationMoves).
				Float64("modularity", comm.modularity(g, resolution)).
				Msg("Local moving progress")
		}

		if iterationMoves == 0 {
			logger.Debug().Int("iteration", iteration+1).Msg("Converged: no moves")
			break
		}
	}

	return improvement, totalMoves
}
