package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/senior-job-match/internal/bizno"
	"github.com/justsurfingit/senior-job-match/internal/dtos"
	"github.com/justsurfingit/senior-job-match/internal/models"
	"github.com/justsurfingit/senior-job-match/internal/services"
)

type EmployerHandler struct {
	EmployerService *services.EmployerService
	Log             *slog.Logger
}

func NewEmployerHandler(e *services.EmployerService, log *slog.Logger) *EmployerHandler {
	return &EmployerHandler{EmployerService: e, Log: log}
}

// Signup is POST /employers
func (h *EmployerHandler) Signup(c *gin.Context) {
	var req dtos.EmployerSignupRequest
	if !bindJSON(c, h.Log, &req) {
		return
	}
	employer, err := h.EmployerService.Signup(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, employer)
}

// VerifyBusinessNumber is POST /employers/verify, the form's "인증" button.
func (h *EmployerHandler) VerifyBusinessNumber(c *gin.Context) {
	var req dtos.BusinessNumberRequest
	if !bindJSON(c, h.Log, &req) {
		return
	}
	if err := h.EmployerService.VerifyBusinessNumber(c.Request.Context(), req.BusinessNumber); err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":           true,
		"business_number": bizno.Format(req.BusinessNumber),
	})
}

func (h *EmployerHandler) GetEmployer(c *gin.Context) {
	id, ok := pathID(c, h.Log, "id")
	if !ok {
		return
	}
	employer, err := h.EmployerService.Profile(c.Request.Context(), actorOf(c), id)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, employer)
}

// ListEmployers is GET /employers?status=
func (h *EmployerHandler) ListEmployers(c *gin.Context) {
	employers, err := h.EmployerService.List(c.Request.Context(), actorOf(c), c.Query("status"))
	respondList(c, h.Log, employers, err)
}

// SetApproval is PATCH /employers/:id/approval
func (h *EmployerHandler) SetApproval(c *gin.Context) {
	id, ok := pathID(c, h.Log, "id")
	if !ok {
		return
	}
	var req dtos.EmployerApprovalRequest
	if !bindJSON(c, h.Log, &req) {
		return
	}
	employer, err := h.EmployerService.SetApproval(c.Request.Context(), actorOf(c), id, models.EmployerStatus(req.Status))
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, employer)
}
