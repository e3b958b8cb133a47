// Package ranking scores nodes by weighted PageRank so callers can surface
// representative entities per detected community.
package ranking

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/ofisk/community-detection-service/pkg/leiden"
)

// NodeScore pairs a node identifier with its PageRank score.
type NodeScore struct {
	NodeID string  `json:"nodeId"`
	Score  float64 `json:"score"`
}

// Calculator computes PageRank scores over the canonical graph.
type Calculator struct {
	dampingFactor float64
	tolerance     float64
}

// NewCalculator creates a calculator with the standard damping factor.
func NewCalculator() *Calculator {
	return &Calculator{
		dampingFactor: 0.85,
		tolerance:     1e-6,
	}
}

// WithDampingFactor sets the damping factor (default: 0.85).
func (c *Calculator) WithDampingFactor(factor float64) *Calculator {
	c.dampingFactor = factor
	return c
}

// WithTolerance sets the convergence tolerance (default: 1e-6).
func (c *Calculator) WithTolerance(tolerance float64) *Calculator {
	c.tolerance = tolerance
	return c
}

// Scores computes a PageRank score per node. The undirected graph is mapped
// onto a gonum weighted directed graph with an edge in each direction;
// self-loops are skipped because gonum's simple graphs reject them.
func (c *Calculator) Scores(g *leiden.Graph) (map[string]float64, error) {
	if g.NumNodes() == 0 {
		return nil, fmt.Errorf("graph has no nodes")
	}

	ids := g.NodeList()
	index := make(map[string]int64, len(ids))
	for i, id := range ids {
		index[id] = int64(i)
	}

	directed := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	for _, id := range ids {
		directed.AddNode(simple.Node(index[id]))
	}
	for _, from := range ids {
		for to, w := range g.Adjacency[from] {
			if to == from {
				continue
			}
			directed.SetWeightedEdge(simple.WeightedEdge{
				F: simple.Node(index[from]),
				T: simple.Node(index[to]),
				W: w,
			})
		}
	}

	raw := network.PageRank(directed, c.dampingFactor, c.tolerance)
	if len(raw) == 0 {
		return nil, fmt.Errorf("pagerank computation returned no scores")
	}

	scores := make(map[string]float64, len(ids))
	for i, id := range ids {
		scores[id] = raw[int64(i)]
	}
	return scores, nil
}

// Representatives groups the partition by community and orders each group by
// descending PageRank score, node id ascending on equal scores. topK bounds
// each group; zero or negative keeps every member.
func (c *Calculator) Representatives(g *leiden.Graph, partition map[string]int, topK int) (map[int][]NodeScore, error) {
	scores, err := c.Scores(g)
	if err != nil {
		return nil, err
	}

	grouped := make(map[int][]NodeScore)
	for nodeID, communityID := range partition {
		grouped[communityID] = append(grouped[communityID], NodeScore{
			NodeID: nodeID,
			Score:  scores[nodeID],
		})
	}

	for communityID, members := range grouped {
		sort.Slice(members, func(i, j int) bool {
			if members[i].Score != members[j].Score {
				return members[i].Score > members[j].Score
			}
			return members[i].NodeID < members[j].NodeID
		})
		if topK > 0 && len(members) > topK {
			members = members[:topK]
		}
		grouped[communityID] = members
	}

	return grouped, nil
}
