package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/senior-job-match/internal/dtos"
	"github.com/justsurfingit/senior-job-match/internal/models"
	"github.com/justsurfingit/senior-job-match/internal/services"
)

type JobHandler struct {
	JobService *services.JobService
	Log        *slog.Logger
}

func NewJobHandler(j *services.JobService, log *slog.Logger) *JobHandler {
	return &JobHandler{JobService: j, Log: log}
}

// CreateJob is POST /jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if !bindJSON(c, h.Log, &req) {
		return
	}
	job, err := h.JobService.CreateJob(c.Request.Context(), actorOf(c), &req)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// ListJobs is GET /jobs?category=
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.JobService.ListOpen(c.Request.Context(), c.Query("category"))
	respondList(c, h.Log, jobs, err)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := pathID(c, h.Log, "id")
	if !ok {
		return
	}
	job, err := h.JobService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListEmployerJobs is GET /employers/:id/jobs, open and closed.
func (h *JobHandler) ListEmployerJobs(c *gin.Context) {
	id, ok := pathID(c, h.Log, "id")
	if !ok {
		return
	}
	jobs, err := h.JobService.ListByEmployer(c.Request.Context(), id)
	respondList(c, h.Log, jobs, err)
}

// SetStatus is PATCH /jobs/:id/status
func (h *JobHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c, h.Log, "id")
	if !ok {
		return
	}
	var req dtos.JobStatusRequest
	if !bindJSON(c, h.Log, &req) {
		return
	}
	job, err := h.JobService.SetStatus(c.Request.Context(), actorOf(c), id, models.JobStatus(req.Status))
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Toggle is POST /jobs/:id/toggle
func (h *JobHandler) Toggle(c *gin.Context) {
	id, ok := pathID(c, h.Log, "id")
	if !ok {
		return
	}
	job, err := h.JobService.Toggle(c.Request.Context(), actorOf(c), id)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// UpdateCategory is PATCH /jobs/:id/category
func (h *JobHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, h.Log, "id")
	if !ok {
		return
	}
	var req dtos.JobCategoryRequest
	if !bindJSON(c, h.Log, &req) {
		return
	}
	job, err := h.JobService.UpdateCategory(c.Request.Context(), actorOf(c), id, req.JobType)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, job)
}
