package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/justsurfingit/senior-job-match/internal/common"
	"github.com/justsurfingit/senior-job-match/internal/models"
	"github.com/justsurfingit/senior-job-match/internal/repository"
)

type MatcherService struct {
	Store *repository.Store
	Log   *slog.Logger
}

func NewMatcherService(store *repository.Store, log *slog.Logger) *MatcherService {
	return &MatcherService{Store: store, Log: log}
}

// MatchWorkers returns the workers whose desired job types contain the job's
// category, in the order given. A job without a category matches nobody.
func MatchWorkers(job models.Job, workers []models.Worker) []models.Worker {
	matched := make([]models.Worker, 0)
	if job.JobType == "" {
		return matched
	}
	for _, w := range workers {
		if w.WantsCategory(job.JobType) {
			matched = append(matched, w)
		}
	}
	return matched
}

type MatchOptions struct {
	// ExcludeExisting drops workers who already applied or were recommended.
	ExcludeExisting bool
}

// MatchForJob runs MatchWorkers for an open job against all active workers.
func (s *MatcherService) MatchForJob(ctx context.Context, jobID uuid.UUID, opts MatchOptions) ([]models.Worker, error) {
	job, err := s.Store.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobOpen {
		return nil, common.NewError(common.CodeValidation, "job is not open", nil)
	}

	workers, err := s.Store.Workers.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	matched := MatchWorkers(*job, workers)

	if opts.ExcludeExisting && len(matched) > 0 {
		existing, err := s.Store.Applications.ListByJob(ctx, jobID)
		if err != nil {
			return nil, err
		}
		taken := make(map[uuid.UUID]bool, len(existing))
		for _, a := range existing {
			taken[a.WorkerID] = true
		}
		kept := matched[:0]
		for _, w := range matched {
			if !taken[w.ID] {
				kept = append(kept, w)
			}
		}
		matched = kept
	}

	s.Log.Debug("matched workers", "job_id", jobID, "category", job.JobType, "count", len(matched))
	return matched, nil
}
