package service

import (
	"time"

	"github.com/ofisk/community-detection-service/pkg/leiden"
	"github.com/ofisk/community-detection-service/pkg/ranking"
)

// DetectionOptions is the caller-facing configuration surface.
type DetectionOptions struct {
	Resolution      *float64 `json:"resolution,omitempty"`
	RandomSeed      *int64   `json:"randomSeed,omitempty"`
	Representatives int      `json:"representatives,omitempty"` // top-K per community, 0 disables ranking
}

// DetectionRequest carries an edge list plus optional tuning.
type DetectionRequest struct {
	Edges   []leiden.Edge    `json:"edges"`
	Options DetectionOptions `json:"options"`
}

// DetectionResult is the flattened outcome returned to callers.
type DetectionResult struct {
	Assignments     []leiden.Assignment         `json:"assignments"`
	NumCommunities  int                         `json:"num_communities"`
	NumLevels       int                         `json:"num_levels"`
	Modularity      float64                     `json:"modularity"`
	Representatives map[int][]ranking.NodeScore `json:"representatives,omitempty"`
}

// JobStatus enumerates the lifecycle states of an async detection job.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Job tracks one background detection run.
type Job struct {
	ID        string           `json:"id"`
	Status    JobStatus        `json:"status"`
	Request   DetectionRequest `json:"-"`
	Result    *DetectionResult `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
