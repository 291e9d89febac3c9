// Package repository is the persistent store client. Every collection is
// reached through an interface so services run against Postgres (gorm) in
// production and against the in-memory store in tests.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/justsurfingit/senior-job-match/internal/models"
)

type WorkerRepository interface {
	Create(ctx context.Context, w *models.Worker) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Worker, error)
	// GetByIDs returns the workers that exist; missing ids are skipped.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Worker, error)
	// ListActive returns active workers in creation order.
	ListActive(ctx context.Context) ([]models.Worker, error)
}

type EmployerRepository interface {
	Create(ctx context.Context, e *models.Employer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Employer, error)
	// List returns employers newest first; an empty status lists all.
	List(ctx context.Context, status models.EmployerStatus) ([]models.Employer, error)
	UpdateApproval(ctx context.Context, id uuid.UUID, status models.EmployerStatus, approvedAt *time.Time) (*models.Employer, error)
}

type JobRepository interface {
	Create(ctx context.Context, j *models.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	// ListOpen returns open jobs newest first; an empty category lists all.
	ListOpen(ctx context.Context, category string) ([]models.Job, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]models.Job, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) (*models.Job, error)
	UpdateJobType(ctx context.Context, id uuid.UUID, jobType string) (*models.Job, error)
}

type ApplicationRepository interface {
	// Create fails with CodeDuplicateApplication when the (job, worker) pair exists.
	Create(ctx context.Context, a *models.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error)
	ListByWorker(ctx context.Context, workerID uuid.UUID) ([]models.Application, error)
	// UpdateStatus moves the application from one status to another. It fails
	// with CodeInvalidTransition when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.ApplicationStatus, updatedAt time.Time) (*models.Application, error)
}

type NotificationRepository interface {
	CreateBatch(ctx context.Context, records []models.KakaoNotification) error
	ListRecent(ctx context.Context, limit int) ([]models.KakaoNotification, error)
	// ListPending returns pending rows never offered first, then the ones
	// offered longest ago.
	ListPending(ctx context.Context, limit int) ([]models.KakaoNotification, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, at time.Time) error
	// MarkAttempted records that a pending row was offered to the sender.
	MarkAttempted(ctx context.Context, id uuid.UUID, at time.Time) error
}

// Store groups the repositories of one backing database.
type Store struct {
	Workers       WorkerRepository
	Employers     EmployerRepository
	Jobs          JobRepository
	Applications  ApplicationRepository
	Notifications NotificationRepository
}
