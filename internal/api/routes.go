package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes wires the REST endpoints onto the router.
func SetupRoutes(router *mux.Router, handlers *Handlers) {
	api := router.PathPrefix("/api/v1").Subrouter()

	// Synchronous detection
	api.HandleFunc("/detect", handlers.Detect).Methods("POST")

	// Asynchronous job endpoints
	jobs := api.PathPrefix("/jobs").Subrouter()
	jobs.HandleFunc("", handlers.SubmitJob).Methods("POST")
	jobs.HandleFunc("/{jobId}", handlers.GetJob).Methods("GET")
	jobs.HandleFunc("/{jobId}", handlers.CancelJob).Methods("DELETE")

	// Health check endpoint
	api.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
}
