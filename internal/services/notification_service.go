package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/justsurfingit/senior-job-match/internal/common"
	"github.com/justsurfingit/senior-job-match/internal/dtos"
	"github.com/justsurfingit/senior-job-match/internal/models"
	"github.com/justsurfingit/senior-job-match/internal/notify"
	"github.com/justsurfingit/senior-job-match/internal/repository"
	"github.com/justsurfingit/senior-job-match/internal/session"
)

const defaultRecentNotifications = 20

type NotificationService struct {
	Store  *repository.Store
	Sender notify.Sender
	Log    *slog.Logger
	now    clock
}

func NewNotificationService(store *repository.Store, sender notify.Sender, log *slog.Logger) *NotificationService {
	return &NotificationService{Store: store, Sender: sender, Log: log, now: utcNow}
}

// Broadcast stages one pending message per selected worker.
func (s *NotificationService) Broadcast(ctx context.Context, actor session.Actor, req *dtos.BroadcastRequest) ([]models.KakaoNotification, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if len(req.WorkerIDs) == 0 {
		return nil, common.NewValidationError("no recipients", map[string]string{"worker_ids": "select at least one worker"})
	}
	if _, known := notify.Lookup(req.TemplateCode); !known {
		return nil, common.NewValidationError("unknown template", map[string]string{"template_code": "unknown template"})
	}
	message, ok := notify.Render(req.TemplateCode, req.Message)
	if !ok {
		return nil, common.NewValidationError("no message", map[string]string{"message": "message is required for this template"})
	}

	ids := make([]uuid.UUID, 0, len(req.WorkerIDs))
	seen := make(map[uuid.UUID]bool, len(req.WorkerIDs))
	for _, raw := range req.WorkerIDs {
		id, err := parseID(raw, "worker_ids")
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	var jobID *uuid.UUID
	if req.JobID != "" {
		id, err := parseID(req.JobID, "job_id")
		if err != nil {
			return nil, err
		}
		if _, err := s.Store.Jobs.GetByID(ctx, id); err != nil {
			return nil, err
		}
		jobID = &id
	}

	workers, err := s.Store.Workers.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	phones := make(map[uuid.UUID]string, len(workers))
	for _, w := range workers {
		phones[w.ID] = w.Phone
	}

	now := s.now()
	records := make([]models.KakaoNotification, 0, len(ids))
	for _, id := range ids {
		phone, ok := phones[id]
		if !ok {
			return nil, common.NewError(common.CodeNotFound, "worker "+id.String()+" not found", nil)
		}
		records = append(records, models.KakaoNotification{
			WorkerID:     id,
			JobID:        jobID,
			TemplateCode: req.TemplateCode,
			Message:      message,
			Phone:        phone,
			Status:       models.NotificationPending,
			SentAt:       now,
		})
	}
	if err := s.Store.Notifications.CreateBatch(ctx, records); err != nil {
		return nil, err
	}
	s.Log.Info("notifications staged", "count", len(records), "template", req.TemplateCode, "admin_id", actor.ID)
	return records, nil
}

// Recent returns the latest staged notifications; limit <= 0 means 20.
func (s *NotificationService) Recent(ctx context.Context, limit int) ([]models.KakaoNotification, error) {
	if limit <= 0 {
		limit = defaultRecentNotifications
	}
	return s.Store.Notifications.ListRecent(ctx, limit)
}

type DispatchReport struct {
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Pending int `json:"pending"`
}

// Dispatch offers pending notifications to the Sender and records what it
// reports. A send error marks the record failed; a pending result only stamps
// the attempt so the next cycle offers rows not yet seen.
func (s *NotificationService) Dispatch(ctx context.Context, limit int) (DispatchReport, error) {
	var report DispatchReport
	pending, err := s.Store.Notifications.ListPending(ctx, limit)
	if err != nil {
		return report, err
	}
	for _, record := range pending {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		result, sendErr := s.Sender.Send(ctx, record)
		status := result.Status
		if sendErr != nil {
			s.Log.Warn("notification delivery failed", "notification_id", record.ID, "error", sendErr)
			status = models.NotificationFailed
		}
		switch status {
		case models.NotificationSent:
			report.Sent++
		case models.NotificationFailed:
			report.Failed++
		default:
			report.Pending++
			if err := s.Store.Notifications.MarkAttempted(ctx, record.ID, s.now()); err != nil {
				return report, err
			}
			continue
		}
		if err := s.Store.Notifications.UpdateStatus(ctx, record.ID, status, s.now()); err != nil {
			return report, err
		}
	}
	return report, nil
}
