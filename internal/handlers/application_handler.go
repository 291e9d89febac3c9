package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/justsurfingit/senior-job-match/internal/dtos"
	"github.com/justsurfingit/senior-job-match/internal/export"
	"github.com/justsurfingit/senior-job-match/internal/models"
	"github.com/justsurfingit/senior-job-match/internal/services"
	"github.com/justsurfingit/senior-job-match/internal/session"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
	MatcherService     *services.MatcherService
	ExportService      *export.Service
	Log                *slog.Logger
}

func NewApplicationHandler(a *services.ApplicationService, m *services.MatcherService, e *export.Service, log *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{ApplicationService: a, MatcherService: m, ExportService: e, Log: log}
}

// Apply is POST /jobs/:id/applications
func (h *ApplicationHandler) Apply(c *gin.Context) {
	h.create(c, h.ApplicationService.Apply)
}

// Recommend is POST /jobs/:id/recommendations
func (h *ApplicationHandler) Recommend(c *gin.Context) {
	h.create(c, h.ApplicationService.Recommend)
}

type createFunc func(ctx context.Context, actor session.Actor, jobID, workerID uuid.UUID) (*models.Application, error)

func (h *ApplicationHandler) create(c *gin.Context, fn createFunc) {
	jobID, ok := pathID(c, h.Log, "id")
	if !ok {
		return
	}
	var req dtos.ApplyRequest
	if !bindJSON(c, h.Log, &req) {
		return
	}
	workerID, err := uuid.Parse(req.WorkerID)
	if err != nil {
		respondError(c, h.Log, bindingError(err))
		return
	}
	app, err := fn(c.Request.Context(), actorOf(c), jobID, workerID)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// SetStatus is PATCH /applications/:id/status
func (h *ApplicationHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c, h.Log, "id")
	if !ok {
		return
	}
	var req dtos.ApplicationStatusRequest
	if !bindJSON(c, h.Log, &req) {
		return
	}
	app, err := h.ApplicationService.SetStatus(c.Request.Context(), actorOf(c), id, models.ApplicationStatus(req.Status))
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// ListJobApplications is GET /jobs/:id/applications
func (h *ApplicationHandler) ListJobApplications(c *gin.Context) {
	id, ok := pathID(c, h.Log, "id")
	if !ok {
		return
	}
	apps, err := h.ApplicationService.ListByJob(c.Request.Context(), actorOf(c), id)
	respondList(c, h.Log, apps, err)
}

// ListWorkerApplications is GET /workers/:id/applications
func (h *ApplicationHandler) ListWorkerApplications(c *gin.Context) {
	id, ok := pathID(c, h.Log, "id")
	if !ok {
		return
	}
	apps, err := h.ApplicationService.ListByWorker(c.Request.Context(), actorOf(c), id)
	respondList(c, h.Log, apps, err)
}

// Matches is GET /jobs/:id/matches?exclude_existing=true
func (h *ApplicationHandler) Matches(c *gin.Context) {
	id, ok := pathID(c, h.Log, "id")
	if !ok {
		return
	}
	opts := services.MatchOptions{ExcludeExisting: c.Query("exclude_existing") == "true"}
	workers, err := h.MatcherService.MatchForJob(c.Request.Context(), id, opts)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": workers})
}

// Export is GET /jobs/:id/applications/export
func (h *ApplicationHandler) Export(c *gin.Context) {
	id, ok := pathID(c, h.Log, "id")
	if !ok {
		return
	}
	data, err := h.ExportService.ApplicationsXLSX(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="applications-%s.xlsx"`, id))
	c.Data(http.StatusOK, xlsxContentType, data)
}
