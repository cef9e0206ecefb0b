package repository

import (
	"context"
	"errors"

	"time-clock/internal/config"
	"time-clock/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetBySlug(ctx context.Context, slug string) (*models.Company, error)
	UpdateStatus(ctx context.Context, slug, status string) error
}

type CompanySettingsRepository interface {
	Get(ctx context.Context, companyID string) (*models.CompanySettings, error)
	Upsert(ctx context.Context, companyID, companyName string) (*models.CompanySettings, error)
}

type GormCompanyRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormCompanyRepository(db *gorm.DB) (*GormCompanyRepository, error) {
	logger := config.NewLogger()

	if err := db.AutoMigrate(&models.Company{}, &models.CompanySettings{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate company tables")
		return nil, err
	}

	return &GormCompanyRepository{db: db, logger: logger}, nil
}

func (r *GormCompanyRepository) Create(ctx context.Context, company *models.Company) error {
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		r.logger.WithError(err).Error("Failed to create company")
		return translate(err)
	}

	r.logger.WithFields(logrus.Fields{
		"slug":   company.Slug,
		"status": company.Status,
	}).Info("Company created")
	return nil
}

func (r *GormCompanyRepository) GetBySlug(ctx context.Context, slug string) (*models.Company, error) {
	var company models.Company
	result := r.db.WithContext(ctx).Where("slug = ?", slug).First(&company)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get company")
		return nil, result.Error
	}

	return &company, nil
}

func (r *GormCompanyRepository) UpdateStatus(ctx context.Context, slug, status string) error {
	result := r.db.WithContext(ctx).Model(&models.Company{}).Where("slug = ?", slug).Update("status", status)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update company status")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.logger.WithFields(logrus.Fields{
		"slug":   slug,
		"status": status,
	}).Info("Company status updated")
	return nil
}

// GormCompanySettingsRepository shares the company tables' migration.
type GormCompanySettingsRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormCompanySettingsRepository(db *gorm.DB) (*GormCompanySettingsRepository, error) {
	logger := config.NewLogger()

	if err := db.AutoMigrate(&models.CompanySettings{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate company_settings table")
		return nil, err
	}

	return &GormCompanySettingsRepository{db: db, logger: logger}, nil
}

func (r *GormCompanySettingsRepository) Get(ctx context.Context, companyID string) (*models.CompanySettings, error) {
	var settings models.CompanySettings
	result := r.db.WithContext(ctx).Where("company_id = ?", companyID).First(&settings)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &settings, nil
}

func (r *GormCompanySettingsRepository) Upsert(ctx context.Context, companyID, companyName string) (*models.CompanySettings, error) {
	settings := models.CompanySettings{CompanyID: companyID, CompanyName: companyName}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"company_name", "updated_at"}),
	}).Create(&settings).Error
	if err != nil {
		r.logger.WithError(err).Error("Failed to upsert company settings")
		return nil, err
	}

	r.logger.WithField("company_id", companyID).Info("Company settings updated")
	return r.Get(ctx, companyID)
}
