package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/justsurfingit/senior-job-match/internal/common"
	"github.com/justsurfingit/senior-job-match/internal/models"
)

func TestMemoryApplicationsUniquePair(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	jobID, workerID := uuid.New(), uuid.New()

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.Applications.Create(ctx, &models.Application{
				JobID:    jobID,
				WorkerID: workerID,
				Status:   models.ApplicationPending,
			})
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		switch {
		case err == nil:
			created++
		case common.Is(err, common.CodeDuplicateApplication):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if created != 1 {
		t.Fatalf("created %d applications, want 1", created)
	}
	items, _ := store.Applications.ListByJob(ctx, jobID)
	if len(items) != 1 {
		t.Fatalf("stored %d applications, want 1", len(items))
	}
}

func TestMemoryApplicationsUpdateStatusComparesCurrent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	app := &models.Application{JobID: uuid.New(), WorkerID: uuid.New(), Status: models.ApplicationPending}
	if err := store.Applications.Create(ctx, app); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := store.Applications.UpdateStatus(ctx, app.ID, models.ApplicationPending, models.ApplicationHired, time.Now()); err != nil {
		t.Fatalf("hire: %v", err)
	}
	_, err := store.Applications.UpdateStatus(ctx, app.ID, models.ApplicationPending, models.ApplicationRejected, time.Now())
	if !common.Is(err, common.CodeInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	got, _ := store.Applications.GetByID(ctx, app.ID)
	if got.Status != models.ApplicationHired {
		t.Fatalf("status = %s, want hired", got.Status)
	}
}

func TestMemoryWorkersListActiveKeepsCreationOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	names := []string{"김영수", "이순자", "박철호"}
	for _, name := range names {
		if err := store.Workers.Create(ctx, &models.Worker{Name: name, Phone: "010"}); err != nil {
			t.Fatalf("create worker: %v", err)
		}
	}
	_ = store.Workers.Create(ctx, &models.Worker{Name: "휴면", Phone: "010", Status: models.WorkerInactive})

	active, err := store.Workers.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != len(names) {
		t.Fatalf("got %d active workers, want %d", len(active), len(names))
	}
	for i, w := range active {
		if w.Name != names[i] {
			t.Errorf("active[%d] = %s, want %s", i, w.Name, names[i])
		}
	}
}

func TestMemoryJobsListOpenFiltersCategory(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	employerID := uuid.New()
	_ = store.Jobs.Create(ctx, &models.Job{EmployerID: employerID, Title: "아파트 경비", JobType: "경비", Status: models.JobOpen})
	_ = store.Jobs.Create(ctx, &models.Job{EmployerID: employerID, Title: "건물 청소", JobType: "청소", Status: models.JobOpen})
	closed := &models.Job{EmployerID: employerID, Title: "주차 안내", JobType: "주차관리", Status: models.JobClosed}
	_ = store.Jobs.Create(ctx, closed)

	all, _ := store.Jobs.ListOpen(ctx, "")
	if len(all) != 2 {
		t.Fatalf("open jobs = %d, want 2", len(all))
	}
	if all[0].Title != "건물 청소" {
		t.Errorf("expected newest first, got %s", all[0].Title)
	}
	guard, _ := store.Jobs.ListOpen(ctx, "경비")
	if len(guard) != 1 || guard[0].JobType != "경비" {
		t.Fatalf("category filter returned %+v", guard)
	}

	if _, err := store.Jobs.UpdateStatus(ctx, closed.ID, models.JobOpen); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	all, _ = store.Jobs.ListOpen(ctx, "")
	if len(all) != 3 {
		t.Fatalf("open jobs after reopen = %d, want 3", len(all))
	}
}

func TestMemoryNotFound(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	if _, err := store.Jobs.GetByID(ctx, uuid.New()); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := store.Applications.UpdateStatus(ctx, uuid.New(), models.ApplicationPending, models.ApplicationHired, time.Now()); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Notifications.UpdateStatus(ctx, uuid.New(), models.NotificationSent, time.Now()); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryNotificationsRecentAndPending(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	records := []models.KakaoNotification{
		{WorkerID: uuid.New(), TemplateCode: "new_job", Message: "a", Status: models.NotificationPending, SentAt: base},
		{WorkerID: uuid.New(), TemplateCode: "new_job", Message: "b", Status: models.NotificationPending, SentAt: base.Add(time.Minute)},
		{WorkerID: uuid.New(), TemplateCode: "new_job", Message: "c", Status: models.NotificationSent, SentAt: base.Add(2 * time.Minute)},
	}
	if err := store.Notifications.CreateBatch(ctx, records); err != nil {
		t.Fatalf("create batch: %v", err)
	}

	recent, _ := store.Notifications.ListRecent(ctx, 2)
	if len(recent) != 2 || recent[0].Message != "c" || recent[1].Message != "b" {
		t.Fatalf("recent = %+v", recent)
	}
	pending, _ := store.Notifications.ListPending(ctx, 10)
	if len(pending) != 2 || pending[0].Message != "a" {
		t.Fatalf("pending = %+v", pending)
	}
}

func TestMemoryNotificationsPendingRotatesAttempts(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	records := []models.KakaoNotification{
		{WorkerID: uuid.New(), TemplateCode: "new_job", Message: "a", Status: models.NotificationPending, SentAt: base},
		{WorkerID: uuid.New(), TemplateCode: "new_job", Message: "b", Status: models.NotificationPending, SentAt: base.Add(time.Minute)},
	}
	if err := store.Notifications.CreateBatch(ctx, records); err != nil {
		t.Fatalf("create batch: %v", err)
	}

	first, _ := store.Notifications.ListPending(ctx, 1)
	if len(first) != 1 || first[0].Message != "a" {
		t.Fatalf("first = %+v", first)
	}
	if err := store.Notifications.MarkAttempted(ctx, first[0].ID, base.Add(time.Hour)); err != nil {
		t.Fatalf("mark: %v", err)
	}
	next, _ := store.Notifications.ListPending(ctx, 1)
	if len(next) != 1 || next[0].Message != "b" {
		t.Fatalf("next = %+v", next)
	}
	if err := store.Notifications.MarkAttempted(ctx, uuid.New(), base); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
