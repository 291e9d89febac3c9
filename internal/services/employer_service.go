package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/justsurfingit/senior-job-match/internal/bizno"
	"github.com/justsurfingit/senior-job-match/internal/common"
	"github.com/justsurfingit/senior-job-match/internal/dtos"
	"github.com/justsurfingit/senior-job-match/internal/models"
	"github.com/justsurfingit/senior-job-match/internal/repository"
	"github.com/justsurfingit/senior-job-match/internal/session"
)

type EmployerService struct {
	Store *repository.Store
	Log   *slog.Logger
	// Registry is optional; without it only the checksum is verified.
	Registry bizno.Registry
	now      clock
}

func NewEmployerService(store *repository.Store, registry bizno.Registry, log *slog.Logger) *EmployerService {
	return &EmployerService{Store: store, Registry: registry, Log: log, now: utcNow}
}

// VerifyBusinessNumber checks the checksum and, when configured, the registry.
func (s *EmployerService) VerifyBusinessNumber(ctx context.Context, number string) error {
	if err := bizno.Verify(number); err != nil {
		return err
	}
	if s.Registry == nil {
		return nil
	}
	active, err := s.Registry.Lookup(ctx, bizno.Normalize(number))
	if err != nil {
		return common.NewError(common.CodeStoreUnavailable, "business registry lookup failed", err)
	}
	if !active {
		return common.NewError(common.CodeValidation, "business is not registered as active", nil)
	}
	return nil
}

// Signup creates a pending employer once the business number verifies.
func (s *EmployerService) Signup(ctx context.Context, req *dtos.EmployerSignupRequest) (*models.Employer, error) {
	fields := map[string]string{}
	if strings.TrimSpace(req.CompanyName) == "" {
		fields["company_name"] = "company name is required"
	}
	if strings.TrimSpace(req.ContactName) == "" {
		fields["contact_name"] = "contact name is required"
	}
	if strings.TrimSpace(req.Phone) == "" {
		fields["phone"] = "phone is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid employer", fields)
	}
	if err := s.VerifyBusinessNumber(ctx, req.BusinessNumber); err != nil {
		s.Log.Info("employer signup blocked", "reason", common.CodeOf(err))
		return nil, err
	}

	employer := &models.Employer{
		CompanyName:     strings.TrimSpace(req.CompanyName),
		CEOName:         strings.TrimSpace(req.CEOName),
		ContactName:     strings.TrimSpace(req.ContactName),
		Phone:           strings.TrimSpace(req.Phone),
		Email:           strings.TrimSpace(req.Email),
		BusinessNumber:  bizno.Normalize(req.BusinessNumber),
		BusinessAddress: strings.TrimSpace(req.BusinessAddress),
		Verified:        true,
		Status:          models.EmployerPending,
	}
	if err := s.Store.Employers.Create(ctx, employer); err != nil {
		return nil, err
	}
	s.Log.Info("employer signed up", "employer_id", employer.ID, "business_number", bizno.Format(employer.BusinessNumber))
	return employer, nil
}

// SetApproval is the administrator's moderation action. Any state may be
// reached from any other; approved_at tracks the latest approval only.
func (s *EmployerService) SetApproval(ctx context.Context, actor session.Actor, employerID uuid.UUID, status models.EmployerStatus) (*models.Employer, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	switch status {
	case models.EmployerPending, models.EmployerApproved, models.EmployerRejected:
	default:
		return nil, common.NewValidationError("invalid employer status", map[string]string{"status": "status must be pending, approved, or rejected"})
	}

	var approvedAt *time.Time
	if status == models.EmployerApproved {
		t := s.now()
		approvedAt = &t
	}
	updated, err := s.Store.Employers.UpdateApproval(ctx, employerID, status, approvedAt)
	if err != nil {
		return nil, err
	}
	s.Log.Info("employer approval changed", "employer_id", employerID, "status", status, "admin_id", actor.ID)
	return updated, nil
}

func (s *EmployerService) Get(ctx context.Context, id uuid.UUID) (*models.Employer, error) {
	return s.Store.Employers.GetByID(ctx, id)
}

// Profile returns an employer, with its business details, to the employer or an administrator.
func (s *EmployerService) Profile(ctx context.Context, actor session.Actor, id uuid.UUID) (*models.Employer, error) {
	if err := requireSelfOrAdmin(actor, session.RoleEmployer, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// List filters by approval status; "" and "all" list everyone.
func (s *EmployerService) List(ctx context.Context, actor session.Actor, status string) ([]models.Employer, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	filter := models.EmployerStatus(strings.ToLower(strings.TrimSpace(status)))
	switch filter {
	case "all":
		filter = ""
	case "", models.EmployerPending, models.EmployerApproved, models.EmployerRejected:
	default:
		return nil, common.NewValidationError("invalid employer status", map[string]string{"status": "status must be pending, approved, rejected, or all"})
	}
	return s.Store.Employers.List(ctx, filter)
}
