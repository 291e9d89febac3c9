package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/justsurfingit/senior-job-match/internal/common"
	"github.com/justsurfingit/senior-job-match/internal/dtos"
	"github.com/justsurfingit/senior-job-match/internal/models"
	"github.com/justsurfingit/senior-job-match/internal/repository"
	"github.com/justsurfingit/senior-job-match/internal/session"
)

const minBirthYear = 1900

type WorkerService struct {
	Store *repository.Store
	Log   *slog.Logger
	now   clock
}

func NewWorkerService(store *repository.Store, log *slog.Logger) *WorkerService {
	return &WorkerService{Store: store, Log: log, now: utcNow}
}

// Register creates an active worker profile. The returned id is what the
// client keeps as its login.
func (s *WorkerService) Register(ctx context.Context, req *dtos.WorkerRegistrationRequest) (*models.Worker, error) {
	fields := map[string]string{}
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if name == "" {
		fields["name"] = "name is required"
	}
	if phone == "" {
		fields["phone"] = "phone is required"
	}
	if req.BirthYear != nil {
		if y := *req.BirthYear; y < minBirthYear || y > s.now().Year() {
			fields["birth_year"] = "birth year is out of range"
		}
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid worker", fields)
	}

	worker := &models.Worker{
		Name:           name,
		Phone:          phone,
		Address:        strings.TrimSpace(req.Address),
		BirthYear:      req.BirthYear,
		JobTypes:       trimAll(req.JobTypes),
		AvailableTimes: trimAll(req.AvailableTimes),
		Status:         models.WorkerActive,
	}
	if err := s.Store.Workers.Create(ctx, worker); err != nil {
		return nil, err
	}
	s.Log.Info("worker registered", "worker_id", worker.ID, "job_types", []string(worker.JobTypes))
	return worker, nil
}

func (s *WorkerService) Get(ctx context.Context, id uuid.UUID) (*models.Worker, error) {
	return s.Store.Workers.GetByID(ctx, id)
}

// Profile returns a worker to the worker themself or an administrator.
func (s *WorkerService) Profile(ctx context.Context, actor session.Actor, id uuid.UUID) (*models.Worker, error) {
	if err := requireSelfOrAdmin(actor, session.RoleWorker, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// ListActive returns active workers in registration order.
func (s *WorkerService) ListActive(ctx context.Context) ([]models.Worker, error) {
	return s.Store.Workers.ListActive(ctx)
}
