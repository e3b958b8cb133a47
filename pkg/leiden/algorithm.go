package leiden

import (
	"fmt"
	"time"
)

// Result contains the complete output of one detection run.
type Result struct {
	Levels           []LevelInfo    `json:"levels"`
	FinalCommunities map[string]int `json:"final_communities"`
	Modularity       float64        `json:"modularity"`
	NumLevels        int            `json:"num_levels"`
	Statistics       Statistics     `json:"statistics"`
}

// LevelInfo describes one [local moving, refinement, aggregation] pass.
type LevelInfo struct {
	Level          int     `json:"level"`
	NumNodes       int     `json:"num_nodes"`
	NumCommunities int     `json:"num_communities"`
	NumMoves       int     `json:"num_moves"`
	Modularity     float64 `json:"modularity"`
	RuntimeMS      int64   `json:"runtime_ms"`
}

// Statistics contains run-wide execution metrics.
type Statistics struct {
	TotalMoves int   `json:"total_moves"`
	RuntimeMS  int64 `json:"runtime_ms"`
}

// Run executes the full multi-level Leiden algorithm on a canonical graph:
// local moving to a level-local optimum, refinement into connected
// sub-communities, aggregation into a coarser graph, repeated until a pass
// yields no improvement, the graph collapses to a single super-node, or the
// level cap is reached. The per-level partitions are then composed into a
// flat assignment over the original node identifiers.
//
// Community ids are dense non-negative integers local to this run; they
// carry no meaning across runs or seeds.
func Run(graph *Graph, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	startTime := time.Now()
	logger := cfg.CreateLogger()

	if err := graph.Validate(); err != nil {
		return nil, fmt.Errorf("invalid graph: %w", err)
	}

	result := &Result{
		Levels:           make([]LevelInfo, 0),
		FinalCommunities: make(map[string]int),
	}

	if graph.NumNodes() == 0 {
		return result, nil
	}

	dense, ids := graph.normalize()
	rng := newRNG(cfg.RandomSeed())
	resolution := cfg.Resolution()

	logger.Info().
		Int("nodes", dense.numNodes).
		Float64("total_weight", dense.totalWeight).
		Float64("resolution", resolution).
		Msg("Starting Leiden algorithm")

	// Refined assignments per level, finest first. Super-node ids at level
	// k+1 are exactly the refined community ids of level k, so composing
	// through this stack maps an original node to its final community.
	levels := make([][]int, 0, cfg.MaxLevels())
	current := dense

	for level := 0; level < cfg.MaxLevels(); level++ {
		levelStart := time.Now()

		comm := newCommunity(current)
		improvement, moves := localMove(current, comm, cfg, rng, logger)

		if !improvement {
			logger.Info().Int("level", level).Msg("No improvement, stopping")
			break
		}

		refined, numRefined := refinePartition(current, comm)

		levelInfo := LevelInfo{
			Level:          level,
			NumNodes:       current.numNodes,
			NumCommunities: numRefined,
			NumMoves:       moves,
			Modularity:     comm.modularity(current, resolution),
			RuntimeMS:      time.Since(levelStart).Milliseconds(),
		}
		result.Levels = append(result.Levels, levelInfo)
		result.Statistics.TotalMoves += moves
		levels = append(levels, refined)

		if numRefined == 1 {
			logger.Info().Int("level", level).Msg("Single community remaining, stopping")
			break
		}
		if numRefined >= current.numNodes {
			logger.Info().Int("level", level).Msg("No compression achieved, stopping")
			break
		}

		superGraph, _ := aggregateGraph(current, refined, numRefined)

		logger.Debug().
			Int("level", level).
			Int("nodes", current.numNodes).
			Int("super_nodes", superGraph.numNodes).
			Msg("Graph aggregation completed")

		current = superGraph
	}

	// Expand the hierarchy back to the original node set.
	final := make([]int, dense.numNodes)
	for i := range final {
		c := i
		for _, assignment := range levels {
			c = assignment[c]
		}
		final[i] = c
	}
	for i, id := range ids {
		result.FinalCommunities[id] = final[i]
	}

	result.NumLevels = len(result.Levels)
	result.Modularity = partitionModularity(dense, final, resolution)
	result.Statistics.RuntimeMS = time.Since(startTime).Milliseconds()

	logger.Info().
		Int("levels", result.NumLevels).
		Float64("final_modularity", result.Modularity).
		Int64("runtime_ms", result.Statistics.RuntimeMS).
		Msg("Leiden algorithm completed")

	return result, nil
}

// partitionModularity evaluates an assignment over a graph directly from the
// edge list, independent of any community accumulators.
func partitionModularity(g *denseGraph, assignment []int, resolution float64) float64 {
	if g.totalWeight == 0 {
		return 0.0
	}

	in := make(map[int]float64)
	tot := make(map[int]float64)

	for node := 0; node < g.numNodes; node++ {
		c := assignment[node]
		tot[c] += g.degrees[node]
		for i, neighbor := range g.adjacency[node] {
			if assignment[neighbor] != c {
				continue
			}
			if neighbor == node {
				in[c] += 2 * g.weights[node][i]
			} else {
				in[c] += g.weights[node][i]
			}
		}
	}

	q := 0.0
	m2 := 2.0 * g.totalWeight
	for c, t := range tot {
		q += in[c]/m2 - resolution*(t/m2)*(t/m2)
	}
	return q
}
