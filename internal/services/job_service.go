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

type JobService struct {
	Store *repository.Store
	Log   *slog.Logger
	// RequireApproval blocks posting until the employer is approved.
	RequireApproval bool
}

func NewJobService(store *repository.Store, requireApproval bool, log *slog.Logger) *JobService {
	return &JobService{Store: store, RequireApproval: requireApproval, Log: log}
}

func (s *JobService) CreateJob(ctx context.Context, actor session.Actor, req *dtos.JobCreationRequest) (*models.Job, error) {
	employerID, err := parseID(req.EmployerID, "employer_id")
	if err != nil {
		return nil, err
	}
	if err := requireSelfOrAdmin(actor, session.RoleEmployer, employerID); err != nil {
		return nil, err
	}

	fields := map[string]string{}
	jobType := strings.TrimSpace(req.JobType)
	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "title is required"
	}
	if jobType == "" {
		fields["job_type"] = "job type is required"
	} else if !models.IsKnownCategory(jobType) {
		fields["job_type"] = "unknown job type"
	}
	if strings.TrimSpace(req.Address) == "" {
		fields["address"] = "address is required"
	}
	if req.HourlyWage != nil && *req.HourlyWage < 0 {
		fields["hourly_wage"] = "hourly wage must not be negative"
	}
	if req.Headcount < 0 {
		fields["headcount"] = "headcount must not be negative"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid job", fields)
	}

	employer, err := s.Store.Employers.GetByID(ctx, employerID)
	if err != nil {
		return nil, err
	}
	if s.RequireApproval && employer.Status != models.EmployerApproved {
		return nil, common.NewError(common.CodeForbidden, "employer is not approved yet", nil)
	}

	headcount := req.Headcount
	if headcount == 0 {
		headcount = 1
	}
	job := &models.Job{
		EmployerID:  employer.ID,
		Title:       strings.TrimSpace(req.Title),
		JobType:     jobType,
		Address:     strings.TrimSpace(req.Address),
		HourlyWage:  req.HourlyWage,
		WorkHours:   strings.TrimSpace(req.WorkHours),
		WorkDays:    strings.TrimSpace(req.WorkDays),
		Description: strings.TrimSpace(req.Description),
		Headcount:   headcount,
		Status:      models.JobOpen,
	}
	if err := s.Store.Jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	s.Log.Info("job posted", "job_id", job.ID, "employer_id", employer.ID, "job_type", job.JobType)
	return job, nil
}

func (s *JobService) Get(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return s.Store.Jobs.GetByID(ctx, id)
}

// ListOpen lists open jobs, optionally in one category. "", "all" and "전체" mean every category.
func (s *JobService) ListOpen(ctx context.Context, category string) ([]models.Job, error) {
	category = strings.TrimSpace(category)
	if models.IsAllCategories(category) {
		category = ""
	} else if !models.IsKnownCategory(category) {
		return nil, common.NewValidationError("unknown category", map[string]string{"category": "unknown job type"})
	}
	return s.Store.Jobs.ListOpen(ctx, category)
}

func (s *JobService) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]models.Job, error) {
	return s.Store.Jobs.ListByEmployer(ctx, employerID)
}

// SetStatus opens or closes a job. Only the owning employer or an administrator may do so.
func (s *JobService) SetStatus(ctx context.Context, actor session.Actor, jobID uuid.UUID, status models.JobStatus) (*models.Job, error) {
	if status != models.JobOpen && status != models.JobClosed {
		return nil, common.NewValidationError("invalid job status", map[string]string{"status": "status must be open or closed"})
	}
	if _, err := s.ownedJob(ctx, actor, jobID); err != nil {
		return nil, err
	}
	updated, err := s.Store.Jobs.UpdateStatus(ctx, jobID, status)
	if err != nil {
		return nil, err
	}
	s.Log.Info("job status changed", "job_id", jobID, "status", status)
	return updated, nil
}

// Toggle flips an open job to closed and back.
func (s *JobService) Toggle(ctx context.Context, actor session.Actor, jobID uuid.UUID) (*models.Job, error) {
	job, err := s.ownedJob(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}
	next := models.JobClosed
	if job.Status != models.JobOpen {
		next = models.JobOpen
	}
	return s.SetStatus(ctx, actor, jobID, next)
}

// UpdateCategory changes the job's category; matching follows the new value.
func (s *JobService) UpdateCategory(ctx context.Context, actor session.Actor, jobID uuid.UUID, category string) (*models.Job, error) {
	category = strings.TrimSpace(category)
	if !models.IsKnownCategory(category) {
		return nil, common.NewValidationError("unknown category", map[string]string{"job_type": "unknown job type"})
	}
	if _, err := s.ownedJob(ctx, actor, jobID); err != nil {
		return nil, err
	}
	return s.Store.Jobs.UpdateJobType(ctx, jobID, category)
}

func (s *JobService) ownedJob(ctx context.Context, actor session.Actor, jobID uuid.UUID) (*models.Job, error) {
	job, err := s.Store.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := requireSelfOrAdmin(actor, session.RoleEmployer, job.EmployerID); err != nil {
		return nil, err
	}
	return job, nil
}
