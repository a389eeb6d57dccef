package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-insight-engine/internal/analysis"
	"go-insight-engine/internal/model"
	"go-insight-engine/internal/store"
	"go-insight-engine/pkg/utils"
)

// Server-level fallbacks for jobs that leave workers/timeout unset,
// wired from the config at startup.
var (
	defaultWorkers int
	defaultTimeout string
)

// SetDefaults installs the configured engine defaults.
func SetDefaults(workers int, timeout string) {
	defaultWorkers = workers
	defaultTimeout = timeout
}

// CreateAnalysis creates a new analysis job
// @Summary Create a new analysis
// @Description Create and start a new analysis job with the provided dataset and operations
// @Tags analyses
// @Accept json
// @Produce json
// @Param analysis body model.AnalysisJobSpec true "Analysis configuration"
// @Success 200 {object} map[string]interface{} "Analysis created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /analyses [post]
func CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var spec model.AnalysisJobSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if len(spec.Operations) == 0 {
		http.Error(w, "At least one operation is required", http.StatusBadRequest)
		return
	}
	if len(spec.Dataset.Rows) == 0 {
		http.Error(w, "Dataset rows are required", http.StatusBadRequest)
		return
	}

	if spec.Workers <= 0 {
		spec.Workers = defaultWorkers
	}
	if spec.Timeout == "" {
		spec.Timeout = defaultTimeout
	}

	jobID := uuid.New().String()

	if err := store.SaveJob(jobID, spec); err != nil {
		http.Error(w, "Failed to save job", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), utils.ParseDuration(spec.Timeout))
	go func() {
		defer cancel()
		if err := analysis.Run(ctx, jobID, spec); err != nil {
			store.SaveJobError(jobID, err)
		}
	}()

	resp := map[string]interface{}{
		"message":   "Analysis created successfully!",
		"jobID":     jobID,
		"status":    model.StatusPending,
		"createdAt": time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ListAnalyses retrieves all analysis jobs
// @Summary List all analyses
// @Description Get a list of all analysis jobs with their current status
// @Tags analyses
// @Accept json
// @Produce json
// @Success 200 {array} map[string]interface{} "List of analyses"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /analyses [get]
func ListAnalyses(w http.ResponseWriter, r *http.Request) {
	jobs, err := store.ListJobs()
	if err != nil {
		http.Error(w, "Failed to fetch analyses", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jobs)
}

// GetAnalysis retrieves a specific analysis job
// @Summary Get analysis
// @Description Retrieve details of a specific analysis job
// @Tags analyses
// @Accept json
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} map[string]interface{} "Analysis details"
// @Failure 400 {object} map[string]interface{} "Invalid analysis ID"
// @Failure 404 {object} map[string]interface{} "Analysis not found"
// @Router /analyses/{id} [get]
func GetAnalysis(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(r.URL.Path, "")
	if !ok {
		http.Error(w, "Job ID is required", http.StatusBadRequest)
		return
	}

	job, err := store.GetJob(jobID)
	if err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

// GetAnalysisResults retrieves the stored results of an analysis
// @Summary Get analysis results
// @Description Retrieve every operation result produced by an analysis job
// @Tags analyses
// @Accept json
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} map[string]interface{} "Analysis results"
// @Failure 400 {object} map[string]interface{} "Invalid analysis ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /analyses/{id}/results [get]
func GetAnalysisResults(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(r.URL.Path, "/results")
	if !ok {
		http.Error(w, "Job ID is required", http.StatusBadRequest)
		return
	}

	results, err := store.GetResults(jobID)
	if err != nil {
		http.Error(w, "Failed to retrieve results", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"job_id":  jobID,
		"results": results,
		"count":   len(results),
	})
}

// GetAnalysisErrors retrieves errors for an analysis
// @Summary Get analysis errors
// @Description Retrieve all errors that occurred during analysis execution
// @Tags analyses
// @Accept json
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} map[string]interface{} "Analysis errors"
// @Failure 400 {object} map[string]interface{} "Invalid analysis ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /analyses/{id}/errors [get]
func GetAnalysisErrors(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(r.URL.Path, "/errors")
	if !ok {
		http.Error(w, "Job ID is required", http.StatusBadRequest)
		return
	}

	errors, err := store.GetJobErrors(jobID)
	if err != nil {
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"job_id": jobID,
		"errors": errors,
		"count":  len(errors),
	})
}

// DeleteAnalysis deletes an analysis job and its stored data
// @Summary Delete analysis
// @Description Delete an analysis job along with its results and errors
// @Tags analyses
// @Accept json
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} map[string]interface{} "Analysis deleted"
// @Failure 400 {object} map[string]interface{} "Invalid analysis ID"
// @Failure 404 {object} map[string]interface{} "Analysis not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /analyses/{id} [delete]
func DeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(r.URL.Path, "")
	if !ok {
		http.Error(w, "Job ID is required", http.StatusBadRequest)
		return
	}

	if _, err := store.GetJob(jobID); err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	if err := store.DeleteJob(jobID); err != nil {
		http.Error(w, "Failed to delete job", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Analysis deleted successfully",
		"job_id":  jobID,
	})
}

// jobIDFromPath pulls the job ID out of /api/v1/analyses/{id}{suffix}.
func jobIDFromPath(path, suffix string) (string, bool) {
	prefix := "/api/v1/analyses/"
	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		return "", false
	}
	jobID := path[len(prefix) : len(path)-len(suffix)]
	if jobID == "" || strings.Contains(jobID, "/") {
		return "", false
	}
	return jobID, true
}
