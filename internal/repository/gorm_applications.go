package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/justsurfingit/senior-job-match/internal/common"
	"github.com/justsurfingit/senior-job-match/internal/models"
)

type gormApplications struct {
	db *gorm.DB
}

// Create relies on idx_applications_job_worker; the losing side of a
// concurrent insert gets CodeDuplicateApplication.
func (r *gormApplications) Create(ctx context.Context, a *models.Application) error {
	ensureID(&a.ID)
	err := r.db.WithContext(ctx).Omit("Job", "Worker").Create(a).Error
	if err != nil && isUniqueViolation(err) {
		return common.NewError(common.CodeDuplicateApplication, "already applied or recommended", err)
	}
	return storeError(err, "application")
}

func (r *gormApplications) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var a models.Application
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, storeError(err, "application")
	}
	return &a, nil
}

func (r *gormApplications) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error) {
	var items []models.Application
	err := r.db.WithContext(ctx).
		Preload("Worker").
		Where("job_id = ?", jobID).
		Order("applied_at desc").
		Find(&items).Error
	return items, storeError(err, "applications")
}

func (r *gormApplications) ListByWorker(ctx context.Context, workerID uuid.UUID) ([]models.Application, error) {
	var items []models.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("Job.Employer").
		Where("worker_id = ?", workerID).
		Order("applied_at desc").
		Find(&items).Error
	return items, storeError(err, "applications")
}

func (r *gormApplications) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.ApplicationStatus, updatedAt time.Time) (*models.Application, error) {
	res := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": updatedAt,
		})
	if res.Error != nil {
		return nil, storeError(res.Error, "application")
	}
	if res.RowsAffected == 0 {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, staleTransition(current.Status, to)
	}
	return r.GetByID(ctx, id)
}
