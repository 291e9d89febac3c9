package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type WorkerStatus string

const (
	WorkerActive   WorkerStatus = "active"
	WorkerInactive WorkerStatus = "inactive"
)

type EmployerStatus string

const (
	EmployerPending  EmployerStatus = "pending"
	EmployerApproved EmployerStatus = "approved"
	EmployerRejected EmployerStatus = "rejected"
)

type JobStatus string

const (
	JobOpen   JobStatus = "open"
	JobClosed JobStatus = "closed"
)

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// Worker is a senior job-seeker profile.
type Worker struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name      string `gorm:"not null" json:"name"`
	Phone     string `gorm:"not null" json:"phone"`
	Address   string `json:"address"`
	BirthYear *int   `json:"birth_year,omitempty"`

	// Desired job categories and time slots; Postgres text[] columns.
	JobTypes       pq.StringArray `gorm:"type:text[]" json:"job_types"`
	AvailableTimes pq.StringArray `gorm:"type:text[]" json:"available_times"`

	Status WorkerStatus `gorm:"not null;default:'active';index" json:"status"`
}

// WantsCategory reports whether category is one of the worker's desired job types.
func (w Worker) WantsCategory(category string) bool {
	if category == "" {
		return false
	}
	for _, t := range w.JobTypes {
		if t == category {
			return true
		}
	}
	return false
}

// Employer is a company account that posts jobs.
type Employer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CompanyName     string `gorm:"not null" json:"company_name"`
	CEOName         string `json:"ceo_name"`
	ContactName     string `gorm:"not null" json:"contact_name"`
	Phone           string `gorm:"not null" json:"phone"`
	Email           string `json:"email"`
	BusinessNumber  string `gorm:"size:10;not null" json:"business_number"`
	BusinessAddress string `json:"business_address"`

	Verified   bool           `gorm:"not null;default:false" json:"verified"`
	Status     EmployerStatus `gorm:"not null;default:'pending';index" json:"status"`
	ApprovedAt *time.Time     `json:"approved_at"`
}

// Job is a single work listing owned by an employer.
type Job struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	EmployerID uuid.UUID `gorm:"type:uuid;not null;index" json:"employer_id"`
	// Preloaded for listings only.
	Employer *Employer `gorm:"foreignKey:EmployerID" json:"employer,omitempty"`

	Title       string    `gorm:"not null" json:"title"`
	JobType     string    `gorm:"not null;index" json:"job_type"`
	Address     string    `json:"address"`
	HourlyWage  *int      `json:"hourly_wage"`
	WorkHours   string    `json:"work_hours"`
	WorkDays    string    `json:"work_days"`
	Description string    `gorm:"type:text" json:"description"`
	Headcount   int       `gorm:"not null;default:1" json:"headcount"`
	Status      JobStatus `gorm:"not null;default:'open';index" json:"status"`
}

// Application links one worker to one job. (job_id, worker_id) is unique.
type Application struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	JobID     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_worker" json:"job_id"`
	WorkerID  uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_worker;index" json:"worker_id"`
	Status    ApplicationStatus `gorm:"not null;default:'pending'" json:"status"`
	AppliedAt time.Time         `gorm:"not null" json:"applied_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	Job    *Job    `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Worker *Worker `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
}

// KakaoNotification is a staged outbound message to a worker.
type KakaoNotification struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	WorkerID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"worker_id"`
	JobID        *uuid.UUID         `gorm:"type:uuid" json:"job_id"`
	TemplateCode string             `gorm:"not null" json:"template_code"`
	Message      string             `gorm:"type:text;not null" json:"message"`
	Phone        string             `json:"phone"`
	Status       NotificationStatus `gorm:"not null;default:'pending';index" json:"status"`
	SentAt       time.Time          `gorm:"index" json:"sent_at"`
	AttemptedAt  *time.Time         `gorm:"index" json:"attempted_at,omitempty"`
}

func (KakaoNotification) TableName() string {
	return "kakao_notifications"
}
