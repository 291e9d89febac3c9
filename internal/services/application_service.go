package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/justsurfingit/senior-job-match/internal/common"
	"github.com/justsurfingit/senior-job-match/internal/models"
	"github.com/justsurfingit/senior-job-match/internal/repository"
	"github.com/justsurfingit/senior-job-match/internal/session"
)

type ApplicationService struct {
	Store *repository.Store
	Log   *slog.Logger
	now   clock
}

func NewApplicationService(store *repository.Store, log *slog.Logger) *ApplicationService {
	return &ApplicationService{Store: store, Log: log, now: utcNow}
}

// Apply records a worker's own application with status pending.
func (s *ApplicationService) Apply(ctx context.Context, actor session.Actor, jobID, workerID uuid.UUID) (*models.Application, error) {
	if err := requireSelfOrAdmin(actor, session.RoleWorker, workerID); err != nil {
		return nil, err
	}
	return s.create(ctx, jobID, workerID, models.ApplicationPending)
}

// Recommend is the administrator placing a worker on a job; status recommended.
func (s *ApplicationService) Recommend(ctx context.Context, actor session.Actor, jobID, workerID uuid.UUID) (*models.Application, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.create(ctx, jobID, workerID, models.ApplicationRecommended)
}

func (s *ApplicationService) create(ctx context.Context, jobID, workerID uuid.UUID, status models.ApplicationStatus) (*models.Application, error) {
	job, err := s.Store.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobOpen {
		return nil, common.NewError(common.CodeValidation, "job is not open", nil)
	}
	if _, err := s.Store.Workers.GetByID(ctx, workerID); err != nil {
		return nil, err
	}

	now := s.now()
	app := &models.Application{
		JobID:     jobID,
		WorkerID:  workerID,
		Status:    status,
		AppliedAt: now,
		UpdatedAt: now,
	}
	// The unique index decides concurrent attempts; no pre-check is made.
	if err := s.Store.Applications.Create(ctx, app); err != nil {
		if common.Is(err, common.CodeDuplicateApplication) {
			s.Log.Info("duplicate application ignored", "job_id", jobID, "worker_id", workerID)
		}
		return nil, err
	}
	s.Log.Info("application created", "application_id", app.ID, "job_id", jobID, "worker_id", workerID, "status", status)
	return app, nil
}

// SetStatus moves an application along pending -> recommended -> hired|rejected.
// Repeating the current status is a no-op; any other disallowed edge fails
// with CodeInvalidTransition.
func (s *ApplicationService) SetStatus(ctx context.Context, actor session.Actor, applicationID uuid.UUID, next models.ApplicationStatus) (*models.Application, error) {
	next = models.ApplicationStatus(strings.ToLower(strings.TrimSpace(string(next))))
	if !next.Valid() {
		return nil, common.NewValidationError("invalid application status", map[string]string{"status": "status must be pending, recommended, hired, or rejected"})
	}

	app, err := s.Store.Applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeJobOwner(ctx, actor, app.JobID); err != nil {
		return nil, err
	}
	if app.Status == next {
		return app, nil
	}
	if !app.Status.CanTransitionTo(next) {
		return nil, common.NewError(common.CodeInvalidTransition, fmt.Sprintf("cannot move application from %s to %s", app.Status, next), nil)
	}

	// The store re-checks the status read above, so a concurrent writer loses
	// with CodeInvalidTransition instead of overwriting a final status.
	updated, err := s.Store.Applications.UpdateStatus(ctx, applicationID, app.Status, next, s.now())
	if err != nil {
		return nil, err
	}
	s.Log.Info("application status changed", "application_id", applicationID, "from", app.Status, "to", next)
	return updated, nil
}

func (s *ApplicationService) Get(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	return s.Store.Applications.GetByID(ctx, id)
}

// ListByJob shows a job's applicants to its employer or an administrator.
func (s *ApplicationService) ListByJob(ctx context.Context, actor session.Actor, jobID uuid.UUID) ([]models.Application, error) {
	if err := s.authorizeJobOwner(ctx, actor, jobID); err != nil {
		return nil, err
	}
	return s.Store.Applications.ListByJob(ctx, jobID)
}

// ListByWorker shows a worker's own applications, newest first.
func (s *ApplicationService) ListByWorker(ctx context.Context, actor session.Actor, workerID uuid.UUID) ([]models.Application, error) {
	if err := requireSelfOrAdmin(actor, session.RoleWorker, workerID); err != nil {
		return nil, err
	}
	return s.Store.Applications.ListByWorker(ctx, workerID)
}

func (s *ApplicationService) authorizeJobOwner(ctx context.Context, actor session.Actor, jobID uuid.UUID) error {
	if actor.IsAdmin() {
		return nil
	}
	job, err := s.Store.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	return requireSelfOrAdmin(actor, session.RoleEmployer, job.EmployerID)
}
