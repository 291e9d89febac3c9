package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/justsurfingit/senior-job-match/internal/common"
	"github.com/justsurfingit/senior-job-match/internal/dtos"
	"github.com/justsurfingit/senior-job-match/internal/models"
	"github.com/justsurfingit/senior-job-match/internal/session"
)

func TestRegisterWorker(t *testing.T) {
	f := newFixture(t)
	f.workers.now = fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	year := 1955

	w, err := f.workers.Register(context.Background(), &dtos.WorkerRegistrationRequest{
		Name:           " 김영수 ",
		Phone:          "010-1111-2222",
		BirthYear:      &year,
		JobTypes:       []string{"경비/보안", " 경비/보안", ""},
		AvailableTimes: []string{"오전"},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if w.Name != "김영수" || w.Status != models.WorkerActive || len(w.JobTypes) != 1 {
		t.Fatalf("unexpected worker: %+v", w)
	}

	got, err := f.workers.Get(context.Background(), w.ID)
	if err != nil || got.ID != w.ID {
		t.Fatalf("get: %+v %v", got, err)
	}
	_, err = f.workers.Get(context.Background(), uuid.New())
	wantCode(t, err, common.CodeNotFound)
}

func TestWorkerProfileSelfOrAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.worker(t, "박복순", "청소/미화")

	if got, err := f.workers.Profile(ctx, session.Worker(w.ID), w.ID); err != nil || got.ID != w.ID {
		t.Fatalf("self: %+v %v", got, err)
	}
	if _, err := f.workers.Profile(ctx, f.admin, w.ID); err != nil {
		t.Fatalf("admin: %v", err)
	}
	_, err := f.workers.Profile(ctx, session.Worker(uuid.New()), w.ID)
	wantCode(t, err, common.CodeForbidden)
	_, err = f.workers.Profile(ctx, session.Actor{}, w.ID)
	wantCode(t, err, common.CodeUnauthorized)
}

func TestRegisterWorkerValidation(t *testing.T) {
	f := newFixture(t)
	f.workers.now = fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	future, ancient := 2030, 1850

	tests := []struct {
		name string
		req  dtos.WorkerRegistrationRequest
	}{
		{"missing name", dtos.WorkerRegistrationRequest{Phone: "010"}},
		{"missing phone", dtos.WorkerRegistrationRequest{Name: "김영수"}},
		{"future birth year", dtos.WorkerRegistrationRequest{Name: "김영수", Phone: "010", BirthYear: &future}},
		{"ancient birth year", dtos.WorkerRegistrationRequest{Name: "김영수", Phone: "010", BirthYear: &ancient}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.workers.Register(context.Background(), &req)
			wantCode(t, err, common.CodeValidation)
		})
	}
}
