package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/justsurfingit/senior-job-match/internal/common"
	"github.com/justsurfingit/senior-job-match/internal/models"
)

const pgUniqueViolation = "23505"

// NewGormStore wires every repository to the same gorm handle.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Workers:       &gormWorkers{db: db},
		Employers:     &gormEmployers{db: db},
		Jobs:          &gormJobs{db: db},
		Applications:  &gormApplications{db: db},
		Notifications: &gormNotifications{db: db},
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// storeError maps a gorm error onto the application taxonomy.
func storeError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.NewError(common.CodeNotFound, what+" not found", err)
	}
	return common.NewError(common.CodeStoreUnavailable, "failed to access "+what, err)
}

// staleTransition reports an application whose status changed under a writer.
func staleTransition(current, to models.ApplicationStatus) error {
	return common.NewError(common.CodeInvalidTransition, fmt.Sprintf("cannot move application from %s to %s", current, to), nil)
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

type gormWorkers struct {
	db *gorm.DB
}

func (r *gormWorkers) Create(ctx context.Context, w *models.Worker) error {
	ensureID(&w.ID)
	return storeError(r.db.WithContext(ctx).Create(w).Error, "worker")
}

func (r *gormWorkers) GetByID(ctx context.Context, id uuid.UUID) (*models.Worker, error) {
	var w models.Worker
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		return nil, storeError(err, "worker")
	}
	return &w, nil
}

func (r *gormWorkers) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Worker, error) {
	var workers []models.Worker
	if len(ids) == 0 {
		return workers, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("created_at asc").Find(&workers).Error
	return workers, storeError(err, "workers")
}

func (r *gormWorkers) ListActive(ctx context.Context) ([]models.Worker, error) {
	var workers []models.Worker
	err := r.db.WithContext(ctx).
		Where("status = ?", models.WorkerActive).
		Order("created_at asc").
		Find(&workers).Error
	return workers, storeError(err, "workers")
}

type gormEmployers struct {
	db *gorm.DB
}

func (r *gormEmployers) Create(ctx context.Context, e *models.Employer) error {
	ensureID(&e.ID)
	return storeError(r.db.WithContext(ctx).Create(e).Error, "employer")
}

func (r *gormEmployers) GetByID(ctx context.Context, id uuid.UUID) (*models.Employer, error) {
	var e models.Employer
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, storeError(err, "employer")
	}
	return &e, nil
}

func (r *gormEmployers) List(ctx context.Context, status models.EmployerStatus) ([]models.Employer, error) {
	var employers []models.Employer
	q := r.db.WithContext(ctx).Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return employers, storeError(q.Find(&employers).Error, "employers")
}

func (r *gormEmployers) UpdateApproval(ctx context.Context, id uuid.UUID, status models.EmployerStatus, approvedAt *time.Time) (*models.Employer, error) {
	// A map is used so a nil approved_at is written as NULL.
	res := r.db.WithContext(ctx).Model(&models.Employer{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      status,
		"approved_at": approvedAt,
	})
	if res.Error != nil {
		return nil, storeError(res.Error, "employer")
	}
	if res.RowsAffected == 0 {
		return nil, common.NewError(common.CodeNotFound, "employer not found", nil)
	}
	return r.GetByID(ctx, id)
}

type gormJobs struct {
	db *gorm.DB
}

func (r *gormJobs) Create(ctx context.Context, j *models.Job) error {
	ensureID(&j.ID)
	return storeError(r.db.WithContext(ctx).Omit("Employer").Create(j).Error, "job")
}

func (r *gormJobs) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var j models.Job
	if err := r.db.WithContext(ctx).Preload("Employer").First(&j, "id = ?", id).Error; err != nil {
		return nil, storeError(err, "job")
	}
	return &j, nil
}

func (r *gormJobs) ListOpen(ctx context.Context, category string) ([]models.Job, error) {
	var jobs []models.Job
	q := r.db.WithContext(ctx).
		Preload("Employer").
		Where("status = ?", models.JobOpen).
		Order("created_at desc")
	if category != "" {
		q = q.Where("job_type = ?", category)
	}
	return jobs, storeError(q.Find(&jobs).Error, "jobs")
}

func (r *gormJobs) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("created_at desc").
		Find(&jobs).Error
	return jobs, storeError(err, "jobs")
}

func (r *gormJobs) UpdateStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) (*models.Job, error) {
	return r.update(ctx, id, "status", status)
}

func (r *gormJobs) UpdateJobType(ctx context.Context, id uuid.UUID, jobType string) (*models.Job, error) {
	return r.update(ctx, id, "job_type", jobType)
}

func (r *gormJobs) update(ctx context.Context, id uuid.UUID, column string, value interface{}) (*models.Job, error) {
	res := r.db.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return nil, storeError(res.Error, "job")
	}
	if res.RowsAffected == 0 {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	return r.GetByID(ctx, id)
}

type gormNotifications struct {
	db *gorm.DB
}

func (r *gormNotifications) CreateBatch(ctx context.Context, records []models.KakaoNotification) error {
	if len(records) == 0 {
		return nil
	}
	for i := range records {
		ensureID(&records[i].ID)
	}
	return storeError(r.db.WithContext(ctx).Create(&records).Error, "notifications")
}

func (r *gormNotifications) ListRecent(ctx context.Context, limit int) ([]models.KakaoNotification, error) {
	var items []models.KakaoNotification
	err := r.db.WithContext(ctx).Order("sent_at desc").Limit(limit).Find(&items).Error
	return items, storeError(err, "notifications")
}

func (r *gormNotifications) ListPending(ctx context.Context, limit int) ([]models.KakaoNotification, error) {
	var items []models.KakaoNotification
	err := r.db.WithContext(ctx).
		Where("status = ?", models.NotificationPending).
		Order("attempted_at asc nulls first").
		Order("sent_at asc").
		Limit(limit).
		Find(&items).Error
	return items, storeError(err, "notifications")
}

func (r *gormNotifications) UpdateStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.KakaoNotification{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":  status,
		"sent_at": at,
	})
	if res.Error != nil {
		return storeError(res.Error, "notification")
	}
	if res.RowsAffected == 0 {
		return common.NewError(common.CodeNotFound, "notification not found", nil)
	}
	return nil
}

func (r *gormNotifications) MarkAttempted(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.KakaoNotification{}).Where("id = ?", id).Update("attempted_at", at)
	if res.Error != nil {
		return storeError(res.Error, "notification")
	}
	if res.RowsAffected == 0 {
		return common.NewError(common.CodeNotFound, "notification not found", nil)
	}
	return nil
}
