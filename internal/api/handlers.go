package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/ofisk/community-detection-service/internal/service"
)

// Handlers contains HTTP request handlers.
type Handlers struct {
	detectionService *service.DetectionService
	jobService       *service.JobService
}

// NewHandlers creates new API handlers.
func NewHandlers(detectionService *service.DetectionService, jobService *service.JobService) *Handlers {
	return &Handlers{
		detectionService: detectionService,
		jobService:       jobService,
	}
}

// Detect runs community detection synchronously.
func (h *Handlers) Detect(w http.ResponseWriter, r *http.Request) {
	var req service.DetectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.detectionService.Detect(req)
	if err != nil {
		log.Error().Err(err).Msg("Detection failed")
		WriteErrorResponse(w, http.StatusBadRequest, "Detection failed", err)
		return
	}

	log.Info().
		Int("nodes", len(result.Assignments)).
		Int("communities", result.NumCommunities).
		Float64("modularity", result.Modularity).
		Msg("Detection completed")

	WriteSuccessResponse(w, "Detection completed", result)
}

// SubmitJob queues an asynchronous detection job.
func (h *Handlers) SubmitJob(w http.ResponseWriter, r *http.Request) {
	var req service.DetectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	job, err := h.jobService.Submit(req)
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Job submission failed", err)
		return
	}

	WriteSuccessResponse(w, "Job submitted", job)
}

// GetJob retrieves an async job with its result when completed.
func (h *Handlers) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]

	job, err := h.jobService.Get(jobID)
	if err != nil {
		WriteErrorResponse(w, http.StatusNotFound, "Job not found", err)
		return
	}

	WriteSuccessResponse(w, "Job retrieved", job)
}

// CancelJob cancels a queued job.
func (h *Handlers) CancelJob(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]

	if err := h.jobService.Cancel(jobID); err != nil {
		WriteErrorResponse(w, http.StatusConflict, "Job cancellation failed", err)
		return
	}

	WriteSuccessResponse(w, "Job cancelled", nil)
}

// HealthCheck reports service liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteSuccessResponse(w, "Service healthy", map[string]string{"status": "ok"})
}
