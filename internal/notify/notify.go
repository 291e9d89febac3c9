// Package notify is the boundary to the outbound messaging provider
// (KakaoTalk 알림톡). Delivery itself happens outside this module.
package notify

import (
	"context"
	"log/slog"

	"github.com/justsurfingit/senior-job-match/internal/models"
)

// DeliveryResult is what a provider reports for one message.
type DeliveryResult struct {
	Status models.NotificationStatus
	Detail string
}

// Sender hands one staged record to a provider.
type Sender interface {
	Send(ctx context.Context, record models.KakaoNotification) (DeliveryResult, error)
}

// LogSender logs the message and reports it as still pending, since no
// provider is connected.
type LogSender struct {
	Log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{Log: log}
}

func (s *LogSender) Send(_ context.Context, record models.KakaoNotification) (DeliveryResult, error) {
	s.Log.Info("notification staged without provider",
		"notification_id", record.ID,
		"worker_id", record.WorkerID,
		"template", record.TemplateCode,
	)
	return DeliveryResult{Status: models.NotificationPending, Detail: "no provider configured"}, nil
}
