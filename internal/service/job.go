package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// JobService handles background detection jobs: bounded concurrency, status
// tracking, and TTL-based cleanup of finished results.
type JobService struct {
	detection       *DetectionService
	jobs            map[string]*Job
	workers         chan struct{}
	mutex           sync.RWMutex
	resultTTL       time.Duration
	cleanupInterval time.Duration
	stop            chan struct{}
}

// NewJobService creates a job service with the given worker slot count.
func NewJobService(detection *DetectionService, maxWorkers int, resultTTL, cleanupInterval time.Duration) *JobService {
	if maxWorkers <= 0 {
		maxWorkers = 4
	}
	s := &JobService{
		detection:       detection,
		jobs:            make(map[string]*Job),
		workers:         make(chan struct{}, maxWorkers),
		resultTTL:       resultTTL,
		cleanupInterval: cleanupInterval,
		stop:            make(chan struct{}),
	}

	go s.cleanupLoop()

	return s
}

// Submit validates the request, queues a new job, and starts processing in
// the background.
func (s *JobService) Submit(req DetectionRequest) (*Job, error) {
	if err := ValidateEdges(req.Edges); err != nil {
		return nil, fmt.Errorf("invalid edges: %w", err)
	}

	now := time.Now()
	job := &Job{
		ID:        uuid.New().String(),
		Status:    JobStatusQueued,
		Request:   req,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mutex.Lock()
	s.jobs[job.ID] = job
	s.mutex.Unlock()

	log.Info().
		Str("job_id", job.ID).
		Int("edges", len(req.Edges)).
		Msg("Job submitted")

	go s.processJob(job.ID)

	return job, nil
}

// Get retrieves a snapshot of a job by ID.
func (s *JobService) Get(jobID string) (*Job, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}
	snapshot := *job
	return &snapshot, nil
}

// Cancel marks a queued job as cancelled. Running jobs complete; the engine
// has no mid-computation cancellation point.
func (s *JobService) Cancel(jobID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}
	if job.Status != JobStatusQueued {
		return fmt.Errorf("job %s is %s, only queued jobs can be cancelled", jobID, job.Status)
	}

	job.Status = JobStatusCancelled
	job.UpdatedAt = time.Now()
	return nil
}

// Close stops the cleanup loop.
func (s *JobService) Close() {
	close(s.stop)
}

func (s *JobService) processJob(jobID string) {
	s.workers <- struct{}{}
	defer func() { <-s.workers }()

	s.mutex.Lock()
	job, exists := s.jobs[jobID]
	if !exists || job.Status != JobStatusQueued {
		s.mutex.Unlock()
		return
	}
	job.Status = JobStatusRunning
	job.UpdatedAt = time.Now()
	req := job.Request
	s.mutex.Unlock()

	result, err := s.detection.Detect(req)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	job.UpdatedAt = time.Now()
	if err != nil {
		job.Status = JobStatusFailed
		job.Error = err.Error()
		log.Error().Str("job_id", jobID).Err(err).Msg("Job failed")
		return
	}
	job.Status = JobStatusCompleted
	job.Result = result
	log.Info().
		Str("job_id", jobID).
		Int("communities", result.NumCommunities).
		Float64("modularity", result.Modularity).
		Msg("Job completed")
}

func (s *JobService) cleanupLoop() {
	interval := s.cleanupInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *JobService) cleanup() {
	cutoff := time.Now().Add(-s.resultTTL)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for id, job := range s.jobs {
		done := job.Status == JobStatusCompleted || job.Status == JobStatusFailed || job.Status == JobStatusCancelled
		if done && job.UpdatedAt.Before(cutoff) {
			delete(s.jobs, id)
			log.Debug().Str("job_id", id).Msg("Job expired")
		}
	}
}
