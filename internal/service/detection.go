package service

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/ofisk/community-detection-service/pkg/leiden"
	"github.com/ofisk/community-detection-service/pkg/ranking"
)

// DetectionService runs community detection on caller-supplied edge lists.
// The engine itself treats malformed weights as undefined behavior, so this
// boundary validates them before any algorithmic work begins.
type DetectionService struct {
	calculator *ranking.Calculator
}

// NewDetectionService creates a new detection service.
func NewDetectionService() *DetectionService {
	return &DetectionService{
		calculator: ranking.NewCalculator(),
	}
}

// ValidateEdges rejects non-finite or negative weights and empty node ids.
func ValidateEdges(edges []leiden.Edge) error {
	for i, e := range edges {
		if e.From == "" || e.To == "" {
			return fmt.Errorf("edge %d: empty node identifier", i)
		}
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return fmt.Errorf("edge %d (%s-%s): non-finite weight", i, e.From, e.To)
		}
		if e.Weight < 0 {
			return fmt.Errorf("edge %d (%s-%s): negative weight %f", i, e.From, e.To, e.Weight)
		}
	}
	return nil
}

// Detect validates the request, runs the algorithm, and optionally ranks
// representative nodes per community.
func (s *DetectionService) Detect(req DetectionRequest) (*DetectionResult, error) {
	if err := ValidateEdges(req.Edges); err != nil {
		return nil, fmt.Errorf("invalid edges: %w", err)
	}

	cfg := leiden.NewConfig()
	if req.Options.Resolution != nil {
		cfg.Set("algorithm.resolution", *req.Options.Resolution)
	}
	if req.Options.RandomSeed != nil {
		cfg.Set("algorithm.random_seed", *req.Options.RandomSeed)
	}

	graph := leiden.BuildGraph(req.Edges)

	result, err := leiden.Run(graph, cfg)
	if err != nil {
		return nil, err
	}

	assignments := make([]leiden.Assignment, 0, len(result.FinalCommunities))
	distinct := make(map[int]bool)
	for nodeID, communityID := range result.FinalCommunities {
		assignments = append(assignments, leiden.Assignment{NodeID: nodeID, CommunityID: communityID})
		distinct[communityID] = true
	}

	out := &DetectionResult{
		Assignments:    assignments,
		NumCommunities: len(distinct),
		NumLevels:      result.NumLevels,
		Modularity:     result.Modularity,
	}

	if req.Options.Representatives > 0 && graph.NumNodes() > 0 {
		reps, err := s.calculator.Representatives(graph, result.FinalCommunities, req.Options.Representatives)
		if err != nil {
			log.Warn().Err(err).Msg("Representative ranking failed, returning partition only")
		} else {
			out.Representatives = reps
		}
	}

	return out, nil
}
