package services

import (
	"context"
	"log/slog"
	"time"
)

// DispatchWatcher periodically hands pending notifications to the sender.
type DispatchWatcher struct {
	Notifications *NotificationService
	Interval      time.Duration
	BatchSize     int
	Log           *slog.Logger
}

func NewDispatchWatcher(n *NotificationService, interval time.Duration, batch int, log *slog.Logger) *DispatchWatcher {
	return &DispatchWatcher{Notifications: n, Interval: interval, BatchSize: batch, Log: log}
}

// Start runs a cycle immediately and then every Interval until ctx is done.
// The returned channel closes once the loop has exited.
func (w *DispatchWatcher) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	if w.Interval <= 0 {
		w.Log.Info("notification dispatch watcher disabled")
		close(done)
		return done
	}

	go func() {
		defer close(done)
		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()

		w.RunOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.RunOnce(ctx)
			}
		}
	}()
	return done
}

// RunOnce performs one dispatch cycle bounded by the interval.
func (w *DispatchWatcher) RunOnce(ctx context.Context) {
	timeout := w.Interval
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	report, err := w.Notifications.Dispatch(ctx, w.BatchSize)
	if err != nil {
		w.Log.Warn("dispatch cycle failed", "error", err)
		return
	}
	if report.Sent+report.Failed > 0 {
		w.Log.Info("dispatch cycle", "sent", report.Sent, "failed", report.Failed, "pending", report.Pending)
	}
}
