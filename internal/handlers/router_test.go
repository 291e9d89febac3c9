package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/justsurfingit/senior-job-match/internal/common"
	"github.com/justsurfingit/senior-job-match/internal/export"
	"github.com/justsurfingit/senior-job-match/internal/logging"
	"github.com/justsurfingit/senior-job-match/internal/middleware"
	"github.com/justsurfingit/senior-job-match/internal/models"
	"github.com/justsurfingit/senior-job-match/internal/notify"
	"github.com/justsurfingit/senior-job-match/internal/repository"
	"github.com/justsurfingit/senior-job-match/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	store  *repository.Store
	admin  uuid.UUID
}

func newTestServer(t *testing.T, store *repository.Store, limiter middleware.Limiter, perMinute int) *testServer {
	t.Helper()
	log := logging.Discard()
	matcher := services.NewMatcherService(store, log)
	h := Handlers{
		Workers:       NewWorkerHandler(services.NewWorkerService(store, log), log),
		Employers:     NewEmployerHandler(services.NewEmployerService(store, nil, log), log),
		Jobs:          NewJobHandler(services.NewJobService(store, false, log), log),
		Applications:  NewApplicationHandler(services.NewApplicationService(store, log), matcher, export.NewService(store, log), log),
		Notifications: NewNotificationHandler(services.NewNotificationService(store, notify.NewLogSender(log), log), log),
	}
	return &testServer{
		t:      t,
		router: NewRouter(h, RouterOptions{Limiter: limiter, RateLimitPerMin: perMinute, Log: log}),
		store:  store,
		admin:  uuid.New(),
	}
}

// call sends a request as (role, id) and decodes a JSON object response.
func (s *testServer) call(method, path, role string, id uuid.UUID, body any) (int, map[string]any) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set(middleware.HeaderActorRole, role)
		req.Header.Set(middleware.HeaderActorID, id.String())
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Header().Get("Content-Type") != xlsxContentType && w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			s.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code, out
}

func (s *testServer) mustCreate(path, role string, id uuid.UUID, body any) uuid.UUID {
	s.t.Helper()
	status, out := s.call(http.MethodPost, path, role, id, body)
	if status != http.StatusCreated {
		s.t.Fatalf("POST %s: status %d, body %v", path, status, out)
	}
	created, err := uuid.Parse(out["id"].(string))
	if err != nil {
		s.t.Fatalf("POST %s: id %v", path, out["id"])
	}
	return created
}

func (s *testServer) seed() (worker, employer, job uuid.UUID) {
	worker = s.mustCreate("/api/v1/workers", "", uuid.Nil, map[string]any{
		"name": "김영수", "phone": "010-1234-5678", "job_types": []string{"경비/보안"},
	})
	employer = s.mustCreate("/api/v1/employers", "", uuid.Nil, map[string]any{
		"business_number": "123-45-67891", "company_name": "행복상사", "contact_name": "홍길동", "phone": "02-123-4567",
	})
	job = s.mustCreate("/api/v1/jobs", "employer", employer, map[string]any{
		"employer_id": employer, "title": "아파트 경비", "job_type": "경비/보안", "address": "서울시 노원구",
	})
	return worker, employer, job
}

func TestHealthAndCategories(t *testing.T) {
	s := newTestServer(t, repository.NewMemoryStore(), nil, 0)
	if status, out := s.call(http.MethodGet, "/api/v1/health", "", uuid.Nil, nil); status != http.StatusOK || out["status"] != "ok" {
		t.Fatalf("health: %d %v", status, out)
	}
	status, out := s.call(http.MethodGet, "/api/v1/categories", "", uuid.Nil, nil)
	if status != http.StatusOK || len(out["data"].([]any)) != len(models.Categories) {
		t.Fatalf("categories: %d %v", status, out)
	}
}

func TestEmployerSignupBusinessNumber(t *testing.T) {
	s := newTestServer(t, repository.NewMemoryStore(), nil, 0)
	body := func(number string) map[string]any {
		return map[string]any{"business_number": number, "company_name": "행복상사", "contact_name": "홍길동", "phone": "02-123-4567"}
	}

	tests := []struct {
		name   string
		number string
		status int
		code   common.Code
	}{
		{"valid", "123-45-67891", http.StatusCreated, ""},
		{"checksum mismatch", "123-45-67890", http.StatusUnprocessableEntity, common.CodeChecksumMismatch},
		{"too short", "123-45-678", http.StatusBadRequest, common.CodeInvalidLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, out := s.call(http.MethodPost, "/api/v1/employers", "", uuid.Nil, body(tt.number))
			if status != tt.status {
				t.Fatalf("status = %d, want %d (%v)", status, tt.status, out)
			}
			if tt.code != "" && out["code"] != string(tt.code) {
				t.Fatalf("code = %v, want %s", out["code"], tt.code)
			}
		})
	}

	status, out := s.call(http.MethodPost, "/api/v1/employers/verify", "", uuid.Nil, map[string]any{"business_number": "1234567891"})
	if status != http.StatusOK || out["business_number"] != "123-45-67891" {
		t.Fatalf("verify: %d %v", status, out)
	}
}

func TestBindingErrors(t *testing.T) {
	s := newTestServer(t, repository.NewMemoryStore(), nil, 0)

	status, out := s.call(http.MethodPost, "/api/v1/workers", "", uuid.Nil, map[string]any{"phone": "010"})
	if status != http.StatusBadRequest || out["code"] != string(common.CodeValidation) {
		t.Fatalf("missing name: %d %v", status, out)
	}
	fields, _ := out["fields"].(map[string]any)
	if fields["name"] != "is required" {
		t.Fatalf("fields = %v", out["fields"])
	}

	status, out = s.call(http.MethodPost, "/api/v1/workers", "", uuid.Nil, "{not json")
	if status != http.StatusBadRequest {
		t.Fatalf("bad json: %d %v", status, out)
	}

	status, _ = s.call(http.MethodGet, "/api/v1/jobs/not-a-uuid", "", uuid.Nil, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("bad path id: %d", status)
	}
}

func TestApplyLifecycle(t *testing.T) {
	s := newTestServer(t, repository.NewMemoryStore(), nil, 0)
	worker, employer, job := s.seed()
	applyPath := "/api/v1/jobs/" + job.String() + "/applications"

	appID := s.mustCreate(applyPath, "worker", worker, map[string]any{"worker_id": worker})

	status, out := s.call(http.MethodPost, applyPath, "worker", worker, map[string]any{"worker_id": worker})
	if status != http.StatusConflict || out["code"] != string(common.CodeDuplicateApplication) {
		t.Fatalf("second apply: %d %v", status, out)
	}

	statusPath := "/api/v1/applications/" + appID.String() + "/status"
	if status, out := s.call(http.MethodPatch, statusPath, "worker", worker, map[string]any{"status": "hired"}); status != http.StatusForbidden {
		t.Fatalf("worker set status: %d %v", status, out)
	}
	if status, out := s.call(http.MethodPatch, statusPath, "employer", employer, map[string]any{"status": "hired"}); status != http.StatusOK || out["status"] != "hired" {
		t.Fatalf("hire: %d %v", status, out)
	}
	status, out = s.call(http.MethodPatch, statusPath, "employer", employer, map[string]any{"status": "rejected"})
	if status != http.StatusConflict || out["code"] != string(common.CodeInvalidTransition) {
		t.Fatalf("hired to rejected: %d %v", status, out)
	}

	status, out = s.call(http.MethodGet, "/api/v1/workers/"+worker.String()+"/applications", "worker", worker, nil)
	items, _ := out["data"].([]any)
	if status != http.StatusOK || len(items) != 1 || items[0].(map[string]any)["status"] != "hired" {
		t.Fatalf("worker applications: %d %v", status, out)
	}
}

func TestAdminOnlyRoutes(t *testing.T) {
	s := newTestServer(t, repository.NewMemoryStore(), nil, 0)
	worker, employer, job := s.seed()

	if status, _ := s.call(http.MethodGet, "/api/v1/jobs/"+job.String()+"/matches", "", uuid.Nil, nil); status != http.StatusUnauthorized {
		t.Fatalf("anonymous matches: %d", status)
	}
	if status, _ := s.call(http.MethodGet, "/api/v1/jobs/"+job.String()+"/matches", "employer", employer, nil); status != http.StatusForbidden {
		t.Fatalf("employer matches: %d", status)
	}
	status, out := s.call(http.MethodGet, "/api/v1/jobs/"+job.String()+"/matches", "admin", s.admin, nil)
	matches, _ := out["data"].([]any)
	if status != http.StatusOK || len(matches) != 1 || matches[0].(map[string]any)["id"] != worker.String() {
		t.Fatalf("admin matches: %d %v", status, out)
	}

	if status, out := s.call(http.MethodPatch, "/api/v1/employers/"+employer.String()+"/approval", "admin", s.admin, map[string]any{"status": "approved"}); status != http.StatusOK || out["approved_at"] == nil {
		t.Fatalf("approve: %d %v", status, out)
	}

	status, out = s.call(http.MethodPost, "/api/v1/notifications/broadcast", "admin", s.admin, map[string]any{
		"worker_ids": []uuid.UUID{worker}, "job_id": job, "template_code": "new_job",
	})
	if status != http.StatusCreated || out["staged"] != float64(1) {
		t.Fatalf("broadcast: %d %v", status, out)
	}
	status, out = s.call(http.MethodGet, "/api/v1/notifications", "admin", s.admin, nil)
	if records, _ := out["data"].([]any); status != http.StatusOK || len(records) != 1 {
		t.Fatalf("recent: %d %v", status, out)
	}
}

func TestProfileReadsNeedOwnerOrAdmin(t *testing.T) {
	s := newTestServer(t, repository.NewMemoryStore(), nil, 0)
	worker, employer, _ := s.seed()

	tests := []struct {
		name   string
		path   string
		role   string
		id     uuid.UUID
		status int
	}{
		{"anonymous worker", "/api/v1/workers/" + worker.String(), "", uuid.Nil, http.StatusUnauthorized},
		{"other worker", "/api/v1/workers/" + worker.String(), "worker", uuid.New(), http.StatusForbidden},
		{"worker self", "/api/v1/workers/" + worker.String(), "worker", worker, http.StatusOK},
		{"admin worker", "/api/v1/workers/" + worker.String(), "admin", s.admin, http.StatusOK},
		{"anonymous employer", "/api/v1/employers/" + employer.String(), "", uuid.Nil, http.StatusUnauthorized},
		{"worker reads employer", "/api/v1/employers/" + employer.String(), "worker", worker, http.StatusForbidden},
		{"employer self", "/api/v1/employers/" + employer.String(), "employer", employer, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status, out := s.call(http.MethodGet, tt.path, tt.role, tt.id, nil); status != tt.status {
				t.Fatalf("status = %d, want %d: %v", status, tt.status, out)
			}
		})
	}
}

func TestExportApplications(t *testing.T) {
	s := newTestServer(t, repository.NewMemoryStore(), nil, 0)
	worker, _, job := s.seed()
	s.mustCreate("/api/v1/jobs/"+job.String()+"/recommendations", "admin", s.admin, map[string]any{"worker_id": worker})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+job.String()+"/applications/export", nil)
	req.Header.Set(middleware.HeaderActorRole, "admin")
	req.Header.Set(middleware.HeaderActorID, s.admin.String())
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != xlsxContentType || w.Body.Len() == 0 {
		t.Fatalf("export: %d %q", w.Code, w.Header().Get("Content-Type"))
	}
}

// downJobs fails every listing as if the database were unreachable.
type downJobs struct {
	repository.JobRepository
}

func (downJobs) ListOpen(context.Context, string) ([]models.Job, error) {
	return nil, common.NewError(common.CodeStoreUnavailable, "query jobs", context.DeadlineExceeded)
}

func TestListDegradesToEmpty(t *testing.T) {
	store := repository.NewMemoryStore()
	store.Jobs = downJobs{store.Jobs}
	s := newTestServer(t, store, nil, 0)

	status, out := s.call(http.MethodGet, "/api/v1/jobs?"+url.Values{"category": {"전체"}}.Encode(), "", uuid.Nil, nil)
	items, ok := out["data"].([]any)
	if status != http.StatusOK || !ok || len(items) != 0 {
		t.Fatalf("degraded list: %d %v", status, out)
	}

	status, out = s.call(http.MethodGet, "/api/v1/jobs?"+url.Values{"category": {"요리사"}}.Encode(), "", uuid.Nil, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("unknown category: %d %v", status, out)
	}
}

func TestWriteRateLimited(t *testing.T) {
	s := newTestServer(t, repository.NewMemoryStore(), middleware.NewRateLimiter(), 1)

	body := map[string]any{"name": "김영수", "phone": "010"}
	if status, out := s.call(http.MethodPost, "/api/v1/workers", "", uuid.Nil, body); status != http.StatusCreated {
		t.Fatalf("first: %d %v", status, out)
	}
	status, out := s.call(http.MethodPost, "/api/v1/workers", "", uuid.Nil, body)
	if status != http.StatusTooManyRequests || out["code"] != string(common.CodeRateLimited) {
		t.Fatalf("second: %d %v", status, out)
	}
	// Reads are not throttled.
	if status, _ := s.call(http.MethodGet, "/api/v1/health", "", uuid.Nil, nil); status != http.StatusOK {
		t.Fatalf("health: %d", status)
	}
}
