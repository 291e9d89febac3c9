package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/senior-job-match/internal/dtos"
	"github.com/justsurfingit/senior-job-match/internal/services"
)

type WorkerHandler struct {
	WorkerService *services.WorkerService
	Log           *slog.Logger
}

func NewWorkerHandler(w *services.WorkerService, log *slog.Logger) *WorkerHandler {
	return &WorkerHandler{WorkerService: w, Log: log}
}

// Register is POST /workers. The response id doubles as the worker's login.
func (h *WorkerHandler) Register(c *gin.Context) {
	var req dtos.WorkerRegistrationRequest
	if !bindJSON(c, h.Log, &req) {
		return
	}
	worker, err := h.WorkerService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, worker)
}

func (h *WorkerHandler) GetWorker(c *gin.Context) {
	id, ok := pathID(c, h.Log, "id")
	if !ok {
		return
	}
	worker, err := h.WorkerService.Profile(c.Request.Context(), actorOf(c), id)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, worker)
}

func (h *WorkerHandler) ListWorkers(c *gin.Context) {
	workers, err := h.WorkerService.ListActive(c.Request.Context())
	respondList(c, h.Log, workers, err)
}
