package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"time-clock/internal/config"
	"time-clock/internal/models"
	"time-clock/internal/repository"

	"github.com/sirupsen/logrus"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)

type CompanyService struct {
	companyRepo repository.CompanyRepository
	logger      *logrus.Logger
}

func NewCompanyService(companyRepo repository.CompanyRepository) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		logger:      config.NewLogger(),
	}
}

// Create registers a tenant. The slug is the company id users log in with.
func (s *CompanyService) Create(ctx context.Context, name, slug, status string) (*models.Company, error) {
	name = strings.TrimSpace(name)
	slug = strings.ToLower(strings.TrimSpace(slug))
	if name == "" {
		return nil, validationErr("Company name is required")
	}
	if !slugPattern.MatchString(slug) {
		return nil, validationErr("Company id must be lowercase letters, digits or dashes")
	}
	if status == "" {
		status = models.CompanyStatusTrial
	}
	if !models.IsValidCompanyStatus(status) {
		return nil, validationErr("Invalid company status %q", status)
	}

	company := &models.Company{Name: name, Slug: slug, Status: status}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictErr("Company already exists")
		}
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) SetStatus(ctx context.Context, slug, status string) error {
	if !models.IsValidCompanyStatus(status) {
		return validationErr("Invalid company status %q", status)
	}

	err := s.companyRepo.UpdateStatus(ctx, strings.ToLower(strings.TrimSpace(slug)), status)
	if errors.Is(err, repository.ErrNotFound) {
		return notFoundErr("Company not found")
	}
	return err
}

// CheckAccess blocks suspended companies. Companies without a record are
// allowed so tenants created before company records existed keep working.
func (s *CompanyService) CheckAccess(ctx context.Context, companyID string) error {
	if companyID == "" {
		return validationErr("Missing companyId in session")
	}

	company, err := s.companyRepo.GetBySlug(ctx, companyID)
	if err != nil {
		return err
	}
	if company != nil && company.IsSuspended() {
		s.logger.WithField("company_id", companyID).Warn("Suspended company request blocked")
		return forbiddenErr(SuspendedMessage)
	}
	return nil
}

type CompanySettingsService struct {
	settingsRepo repository.CompanySettingsRepository
	logger       *logrus.Logger
}

func NewCompanySettingsService(settingsRepo repository.CompanySettingsRepository) *CompanySettingsService {
	return &CompanySettingsService{
		settingsRepo: settingsRepo,
		logger:       config.NewLogger(),
	}
}

// CompanyName falls back to the default name when nothing is stored.
func (s *CompanySettingsService) CompanyName(ctx context.Context, companyID string) (string, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return "", validationErr("companyId is required")
	}

	settings, err := s.settingsRepo.Get(ctx, companyID)
	if err != nil {
		return "", err
	}
	if settings == nil || settings.CompanyName == "" {
		return models.DefaultCompanyName, nil
	}
	return settings.CompanyName, nil
}

func (s *CompanySettingsService) Update(ctx context.Context, actor Actor, companyName string) (string, error) {
	if !actor.IsManager() {
		return "", forbiddenErr("Manager access required")
	}

	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return "", validationErr("Company name is required")
	}

	settings, err := s.settingsRepo.Upsert(ctx, actor.CompanyID, companyName)
	if err != nil {
		return "", err
	}
	return settings.CompanyName, nil
}
