package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/senior-job-match/internal/dtos"
	"github.com/justsurfingit/senior-job-match/internal/notify"
	"github.com/justsurfingit/senior-job-match/internal/services"
)

type NotificationHandler struct {
	NotificationService *services.NotificationService
	Log                 *slog.Logger
}

func NewNotificationHandler(n *services.NotificationService, log *slog.Logger) *NotificationHandler {
	return &NotificationHandler{NotificationService: n, Log: log}
}

// Broadcast is POST /notifications/broadcast
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var req dtos.BroadcastRequest
	if !bindJSON(c, h.Log, &req) {
		return
	}
	records, err := h.NotificationService.Broadcast(c.Request.Context(), actorOf(c), &req)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"staged": len(records), "data": records})
}

// Recent is GET /notifications?limit=
func (h *NotificationHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	records, err := h.NotificationService.Recent(c.Request.Context(), limit)
	respondList(c, h.Log, records, err)
}

// Dispatch is POST /notifications/dispatch
func (h *NotificationHandler) Dispatch(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	report, err := h.NotificationService.Dispatch(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func Templates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": notify.Templates()})
}
