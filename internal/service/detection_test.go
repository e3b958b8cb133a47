package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofisk/community-detection-service/pkg/leiden"
)

func seed(v int64) *int64 { return &v }

func barbellEdges() []leiden.Edge {
	return []leiden.Edge{
		{From: "a", To: "b", Weight: 5},
		{From: "b", To: "c", Weight: 5},
		{From: "a", To: "c", Weight: 5},
		{From: "x", To: "y", Weight: 5},
		{From: "y", To: "z", Weight: 5},
		{From: "x", To: "z", Weight: 5},
		{From: "c", To: "x", Weight: 1},
	}
}

func TestDetect(t *testing.T) {
	svc := NewDetectionService()

	result, err := svc.Detect(DetectionRequest{
		Edges:   barbellEdges(),
		Options: DetectionOptions{RandomSeed: seed(42)},
	})
	require.NoError(t, err)

	assert.Len(t, result.Assignments, 6)
	assert.Equal(t, 2, result.NumCommunities)
	assert.Greater(t, result.Modularity, 0.0)
	assert.Nil(t, result.Representatives)
}

func TestDetectWithRepresentatives(t *testing.T) {
	svc := NewDetectionService()

	result, err := svc.Detect(DetectionRequest{
		Edges: barbellEdges(),
		Options: DetectionOptions{
			RandomSeed:      seed(42),
			Representatives: 2,
		},
	})
	require.NoError(t, err)

	require.Len(t, result.Representatives, 2)
	for _, members := range result.Representatives {
		assert.LessOrEqual(t, len(members), 2)
		assert.NotEmpty(t, members)
	}
}

func TestDetectEmptyEdges(t *testing.T) {
	svc := NewDetectionService()

	result, err := svc.Detect(DetectionRequest{})
	require.NoError(t, err)

	assert.Empty(t, result.Assignments)
	assert.Equal(t, 0, result.NumCommunities)
}

func TestDetectRejectsMalformedEdges(t *testing.T) {
	svc := NewDetectionService()

	tests := []struct {
		name string
		edge leiden.Edge
	}{
		{"negative weight", leiden.Edge{From: "a", To: "b", Weight: -1}},
		{"NaN weight", leiden.Edge{From: "a", To: "b", Weight: math.NaN()}},
		{"infinite weight", leiden.Edge{From: "a", To: "b", Weight: math.Inf(1)}},
		{"empty node id", leiden.Edge{From: "", To: "b", Weight: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Detect(DetectionRequest{Edges: []leiden.Edge{tt.edge}})
			assert.Error(t, err)
		})
	}
}

func TestDetectAppliesResolution(t *testing.T) {
	svc := NewDetectionService()
	resolution := 100.0

	result, err := svc.Detect(DetectionRequest{
		Edges: barbellEdges(),
		Options: DetectionOptions{
			RandomSeed: seed(42),
			Resolution: &resolution,
		},
	})
	require.NoError(t, err)

	// At an extreme resolution every node stays a singleton.
	assert.Equal(t, 6, result.NumCommunities)
}
