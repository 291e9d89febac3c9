package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/justsurfingit/senior-job-match/internal/common"
	"github.com/justsurfingit/senior-job-match/internal/models"
)

// memoryDB holds every collection behind one lock, in insertion order.
type memoryDB struct {
	mu            sync.RWMutex
	now           func() time.Time
	workers       []models.Worker
	employers     []models.Employer
	jobs          []models.Job
	applications  []models.Application
	notifications []models.KakaoNotification
}

// NewMemoryStore returns a Store kept in process memory. It enforces the same
// (job, worker) uniqueness as the Postgres schema.
func NewMemoryStore() *Store {
	m := &memoryDB{now: func() time.Time { return time.Now().UTC() }}
	return &Store{
		Workers:       memoryWorkers{m},
		Employers:     memoryEmployers{m},
		Jobs:          memoryJobs{m},
		Applications:  memoryApplications{m},
		Notifications: memoryNotifications{m},
	}
}

func notFound(what string) error {
	return common.NewError(common.CodeNotFound, what+" not found", nil)
}

type memoryWorkers struct{ m *memoryDB }

func (r memoryWorkers) Create(_ context.Context, w *models.Worker) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	ensureID(&w.ID)
	now := r.m.now()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now
	if w.Status == "" {
		w.Status = models.WorkerActive
	}
	r.m.workers = append(r.m.workers, *w)
	return nil
}

func (r memoryWorkers) GetByID(_ context.Context, id uuid.UUID) (*models.Worker, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, w := range r.m.workers {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, notFound("worker")
}

func (r memoryWorkers) GetByIDs(_ context.Context, ids []uuid.UUID) ([]models.Worker, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.Worker
	for _, w := range r.m.workers {
		if want[w.ID] {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r memoryWorkers) ListActive(_ context.Context) ([]models.Worker, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var out []models.Worker
	for _, w := range r.m.workers {
		if w.Status == models.WorkerActive {
			out = append(out, w)
		}
	}
	return out, nil
}

type memoryEmployers struct{ m *memoryDB }

func (r memoryEmployers) Create(_ context.Context, e *models.Employer) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	ensureID(&e.ID)
	now := r.m.now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	if e.Status == "" {
		e.Status = models.EmployerPending
	}
	r.m.employers = append(r.m.employers, *e)
	return nil
}

func (r memoryEmployers) GetByID(_ context.Context, id uuid.UUID) (*models.Employer, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, e := range r.m.employers {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, notFound("employer")
}

func (r memoryEmployers) List(_ context.Context, status models.EmployerStatus) ([]models.Employer, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var out []models.Employer
	for i := len(r.m.employers) - 1; i >= 0; i-- {
		e := r.m.employers[i]
		if status == "" || e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r memoryEmployers) UpdateApproval(_ context.Context, id uuid.UUID, status models.EmployerStatus, approvedAt *time.Time) (*models.Employer, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.employers {
		if r.m.employers[i].ID == id {
			r.m.employers[i].Status = status
			r.m.employers[i].ApprovedAt = approvedAt
			r.m.employers[i].UpdatedAt = r.m.now()
			e := r.m.employers[i]
			return &e, nil
		}
	}
	return nil, notFound("employer")
}

type memoryJobs struct{ m *memoryDB }

func (r memoryJobs) Create(_ context.Context, j *models.Job) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	ensureID(&j.ID)
	now := r.m.now()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = now
	}
	j.UpdatedAt = now
	stored := *j
	stored.Employer = nil
	r.m.jobs = append(r.m.jobs, stored)
	return nil
}

func (r memoryJobs) GetByID(_ context.Context, id uuid.UUID) (*models.Job, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, j := range r.m.jobs {
		if j.ID == id {
			return &j, nil
		}
	}
	return nil, notFound("job")
}

func (r memoryJobs) ListOpen(_ context.Context, category string) ([]models.Job, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var out []models.Job
	for i := len(r.m.jobs) - 1; i >= 0; i-- {
		j := r.m.jobs[i]
		if j.Status != models.JobOpen {
			continue
		}
		if category != "" && j.JobType != category {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (r memoryJobs) ListByEmployer(_ context.Context, employerID uuid.UUID) ([]models.Job, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var out []models.Job
	for i := len(r.m.jobs) - 1; i >= 0; i-- {
		if r.m.jobs[i].EmployerID == employerID {
			out = append(out, r.m.jobs[i])
		}
	}
	return out, nil
}

func (r memoryJobs) UpdateStatus(_ context.Context, id uuid.UUID, status models.JobStatus) (*models.Job, error) {
	return r.update(id, func(j *models.Job) { j.Status = status })
}

func (r memoryJobs) UpdateJobType(_ context.Context, id uuid.UUID, jobType string) (*models.Job, error) {
	return r.update(id, func(j *models.Job) { j.JobType = jobType })
}

func (r memoryJobs) update(id uuid.UUID, apply func(*models.Job)) (*models.Job, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.jobs {
		if r.m.jobs[i].ID == id {
			apply(&r.m.jobs[i])
			r.m.jobs[i].UpdatedAt = r.m.now()
			j := r.m.jobs[i]
			return &j, nil
		}
	}
	return nil, notFound("job")
}

type memoryApplications struct{ m *memoryDB }

func (r memoryApplications) Create(_ context.Context, a *models.Application) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.applications {
		if existing.JobID == a.JobID && existing.WorkerID == a.WorkerID {
			return common.NewError(common.CodeDuplicateApplication, "already applied or recommended", nil)
		}
	}
	ensureID(&a.ID)
	now := r.m.now()
	if a.AppliedAt.IsZero() {
		a.AppliedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.AppliedAt
	}
	stored := *a
	stored.Job, stored.Worker = nil, nil
	r.m.applications = append(r.m.applications, stored)
	return nil
}

func (r memoryApplications) GetByID(_ context.Context, id uuid.UUID) (*models.Application, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, a := range r.m.applications {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, notFound("application")
}

func (r memoryApplications) ListByJob(_ context.Context, jobID uuid.UUID) ([]models.Application, error) {
	return r.list(func(a models.Application) bool { return a.JobID == jobID }), nil
}

func (r memoryApplications) ListByWorker(_ context.Context, workerID uuid.UUID) ([]models.Application, error) {
	return r.list(func(a models.Application) bool { return a.WorkerID == workerID }), nil
}

// list returns matches newest first by applied_at, insertion order breaking ties.
func (r memoryApplications) list(keep func(models.Application) bool) []models.Application {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var out []models.Application
	for i := len(r.m.applications) - 1; i >= 0; i-- {
		if keep(r.m.applications[i]) {
			out = append(out, r.m.applications[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AppliedAt.After(out[j].AppliedAt) })
	return out
}

func (r memoryApplications) UpdateStatus(_ context.Context, id uuid.UUID, from, to models.ApplicationStatus, updatedAt time.Time) (*models.Application, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.applications {
		if r.m.applications[i].ID != id {
			continue
		}
		if r.m.applications[i].Status != from {
			return nil, staleTransition(r.m.applications[i].Status, to)
		}
		r.m.applications[i].Status = to
		r.m.applications[i].UpdatedAt = updatedAt
		a := r.m.applications[i]
		return &a, nil
	}
	return nil, notFound("application")
}

type memoryNotifications struct{ m *memoryDB }

func (r memoryNotifications) CreateBatch(_ context.Context, records []models.KakaoNotification) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	now := r.m.now()
	for i := range records {
		ensureID(&records[i].ID)
		if records[i].SentAt.IsZero() {
			records[i].SentAt = now
		}
	}
	r.m.notifications = append(r.m.notifications, records...)
	return nil
}

func (r memoryNotifications) ListRecent(_ context.Context, limit int) ([]models.KakaoNotification, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var out []models.KakaoNotification
	for i := len(r.m.notifications) - 1; i >= 0; i-- {
		out = append(out, r.m.notifications[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SentAt.After(out[j].SentAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memoryNotifications) ListPending(_ context.Context, limit int) ([]models.KakaoNotification, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var out []models.KakaoNotification
	for _, n := range r.m.notifications {
		if n.Status == models.NotificationPending {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].AttemptedAt, out[j].AttemptedAt
		switch {
		case a == nil && b == nil:
			return out[i].SentAt.Before(out[j].SentAt)
		case a == nil || b == nil:
			return a == nil
		case !a.Equal(*b):
			return a.Before(*b)
		}
		return out[i].SentAt.Before(out[j].SentAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memoryNotifications) UpdateStatus(_ context.Context, id uuid.UUID, status models.NotificationStatus, at time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.notifications {
		if r.m.notifications[i].ID == id {
			r.m.notifications[i].Status = status
			r.m.notifications[i].SentAt = at
			return nil
		}
	}
	return notFound("notification")
}

func (r memoryNotifications) MarkAttempted(_ context.Context, id uuid.UUID, at time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.notifications {
		if r.m.notifications[i].ID == id {
			r.m.notifications[i].AttemptedAt = &at
			return nil
		}
	}
	return notFound("notification")
}
