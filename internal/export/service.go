// Package export renders job rosters as spreadsheets for the admin screens.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/justsurfingit/senior-job-match/internal/models"
	"github.com/justsurfingit/senior-job-match/internal/repository"
)

const ApplicationsSheet = "Applications"

// ApplicationHeaders is the header row of the applications sheet.
var ApplicationHeaders = []string{"이름", "연락처", "주소", "희망 직종", "상태", "지원일", "변경일"}

type Service struct {
	Store *repository.Store
	Log   *slog.Logger
}

func NewService(store *repository.Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{Store: store, Log: log}
}

// ApplicationsXLSX returns a workbook listing every application for the job,
// newest first, with the applicant's contact details.
func (s *Service) ApplicationsXLSX(ctx context.Context, jobID uuid.UUID) ([]byte, error) {
	start := time.Now()

	job, err := s.Store.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	apps, err := s.Store.Applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), ApplicationsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range ApplicationHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(ApplicationsSheet, cell, h)
	}

	for i, a := range apps {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(ApplicationsSheet, cell, v)
		}
		w := workerOf(ctx, s.Store, a)
		write(1, w.Name)
		write(2, w.Phone)
		write(3, w.Address)
		write(4, strings.Join(w.JobTypes, ", "))
		write(5, string(a.Status))
		write(6, a.AppliedAt.Format("2006-01-02 15:04"))
		write(7, a.UpdatedAt.Format("2006-01-02 15:04"))
	}

	_ = f.SetColWidth(ApplicationsSheet, "A", "B", 16)
	_ = f.SetColWidth(ApplicationsSheet, "C", "D", 32)
	_ = f.SetColWidth(ApplicationsSheet, "E", "E", 12)
	_ = f.SetColWidth(ApplicationsSheet, "F", "G", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	s.Log.Info("applications exported",
		"job_id", jobID,
		"title", job.Title,
		"rows", len(apps),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// workerOf uses the preloaded worker when the store provided one.
func workerOf(ctx context.Context, store *repository.Store, a models.Application) models.Worker {
	if a.Worker != nil {
		return *a.Worker
	}
	w, err := store.Workers.GetByID(ctx, a.WorkerID)
	if err != nil {
		return models.Worker{Name: a.WorkerID.String()}
	}
	return *w
}
