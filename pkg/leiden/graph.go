package leiden

import (
	"fmt"
	"math"
	"sort"
)

// Edge is a weighted undirected relationship between two entities.
// (from, to, w) and (to, from, w) describe the same edge.
type Edge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

// Graph is the canonical representation the engine operates on: a node set,
// a symmetric aggregated adjacency structure, and the total edge-weight mass
// of the raw input. Duplicate edges between the same unordered pair are
// summed during construction; self-loops appear once under adjacency[a][a].
type Graph struct {
	Nodes       map[string]bool               `json:"-"`
	Adjacency   map[string]map[string]float64 `json:"-"`
	TotalWeight float64                       `json:"total_weight"`
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes:     make(map[string]bool),
		Adjacency: make(map[string]map[string]float64),
	}
}

// BuildGraph converts a raw edge list into a canonical Graph. Duplicate
// unordered pairs aggregate by summing weights, and TotalWeight accumulates
// every individual input edge's weight, so duplicates each contribute their
// own weight to the total mass. An empty edge list yields an empty graph.
func BuildGraph(edges []Edge) *Graph {
	g := NewGraph()
	for _, e := range edges {
		g.AddEdge(e.From, e.To, e.Weight)
	}
	return g
}

// AddNode registers a node without any incident edges.
func (g *Graph) AddNode(id string) {
	if !g.Nodes[id] {
		g.Nodes[id] = true
		g.Adjacency[id] = make(map[string]float64)
	}
}

// AddEdge adds an undirected weighted edge, accumulating onto any existing
// weight between the same pair. Self-loops are stored once.
func (g *Graph) AddEdge(from, to string, weight float64) {
	g.AddNode(from)
	g.AddNode(to)

	g.Adjacency[from][to] += weight
	if from != to {
		g.Adjacency[to][from] += weight
	}

	g.TotalWeight += weight
}

// NumNodes returns the size of the node set.
func (g *Graph) NumNodes() int {
	return len(g.Nodes)
}

// EdgeWeight returns the aggregated weight between two nodes, zero if absent.
func (g *Graph) EdgeWeight(from, to string) float64 {
	return g.Adjacency[from][to]
}

// Degree returns the weighted degree of a node. Self-loops count double,
// matching the convention the modularity computation expects.
func (g *Graph) Degree(id string) float64 {
	d := 0.0
	for neighbor, w := range g.Adjacency[id] {
		if neighbor == id {
			d += 2 * w
		} else {
			d += w
		}
	}
	return d
}

// NodeList returns the node identifiers in sorted order. Every structure
// derived from the graph indexes nodes through this ordering so repeated
// runs see an identical layout.
func (g *Graph) NodeList() []string {
	nodes := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)
	return nodes
}

// Validate checks adjacency symmetry and weight sanity.
func (g *Graph) Validate() error {
	for from, neighbors := range g.Adjacency {
		for to, w := range neighbors {
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return fmt.Errorf("non-finite weight %f on edge %s-%s", w, from, to)
			}
			if w < 0 {
				return fmt.Errorf("negative weight %f on edge %s-%s", w, from, to)
			}
			if from != to {
				back, ok := g.Adjacency[to][from]
				if !ok || math.Abs(back-w) > 1e-9 {
					return fmt.Errorf("graph is not symmetric: edge %s-%s", from, to)
				}
			}
		}
	}
	return nil
}

// denseGraph is the array-backed working representation used inside the
// algorithm. Node identifiers are mapped to dense integer indices once at
// the boundary; every aggregation level produces a fresh denseGraph.
type denseGraph struct {
	numNodes    int
	adjacency   [][]int
	weights     [][]float64
	degrees     []float64
	totalWeight float64
}

func newDenseGraph(numNodes int) *denseGraph {
	return &denseGraph{
		numNodes:  numNodes,
		adjacency: make([][]int, numNodes),
		weights:   make([][]float64, numNodes),
		degrees:   make([]float64, numNodes),
	}
}

// addEdge inserts an undirected edge. Self-loops are stored once in the
// adjacency list but count double toward the degree.
func (g *denseGraph) addEdge(u, v int, weight float64) {
	g.adjacency[u] = append(g.adjacency[u], v)
	g.weights[u] = append(g.weights[u], weight)
	g.degrees[u] += weight

	if u != v {
		g.adjacency[v] = append(g.adjacency[v], u)
		g.weights[v] = append(g.weights[v], weight)
		g.degrees[v] += weight
	} else {
		g.degrees[u] += weight
	}

	g.totalWeight += weight
}

func (g *denseGraph) selfLoop(u int) float64 {
	for i, neighbor := range g.adjacency[u] {
		if neighbor == u {
			return g.weights[u][i]
		}
	}
	return 0
}

// normalize maps the canonical graph onto dense integer indices. The
// returned slice is the index-to-identifier table; identifiers are assigned
// indices in sorted order so the mapping is stable across runs.
func (g *Graph) normalize() (*denseGraph, []string) {
	ids := g.NodeList()
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	dense := newDenseGraph(len(ids))
	for _, from := range ids {
		u := index[from]
		neighbors := make([]string, 0, len(g.Adjacency[from]))
		for to := range g.Adjacency[from] {
			neighbors = append(neighbors, to)
		}
		sort.Strings(neighbors)
		for _, to := range neighbors {
			v := index[to]
			// Each undirected pair is added once; self-loops qualify.
			if u <= v {
				dense.addEdge(u, v, g.Adjacency[from][to])
			}
		}
	}
	return dense, ids
}
