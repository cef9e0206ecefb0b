package repository

import (
	"context"
	"errors"

	"time-clock/internal/config"
	"time-clock/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	Update(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, companyID, id string) (*models.Employee, error)
	GetActiveByID(ctx context.Context, companyID, id string) (*models.Employee, error)
	GetByIDs(ctx context.Context, companyID string, ids []string) ([]models.Employee, error)
	GetByTelegramChatID(ctx context.Context, chatID int64) (*models.Employee, error)
	List(ctx context.Context, companyID, status string) ([]models.Employee, error)
	Deactivate(ctx context.Context, companyID, id string) error
	SetTelegramChatID(ctx context.Context, companyID, id string, chatID *int64) error
}

type GormEmployeeRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormEmployeeRepository(db *gorm.DB) (*GormEmployeeRepository, error) {
	logger := config.NewLogger()

	if err := db.AutoMigrate(&models.Employee{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate employees table")
		return nil, err
	}

	logger.Info("Employee repository initialized")

	return &GormEmployeeRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormEmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	r.logger.WithFields(logrus.Fields{
		"company_id":      employee.CompanyID,
		"employee_number": employee.EmployeeNumber,
	}).Info("Creating employee")

	if err := r.db.WithContext(ctx).Create(employee).Error; err != nil {
		r.logger.WithError(err).Error("Failed to create employee")
		return translate(err)
	}

	r.logger.WithField("id", employee.ID).Info("Employee created successfully")
	return nil
}

func (r *GormEmployeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	r.logger.WithFields(logrus.Fields{
		"company_id": employee.CompanyID,
		"id":         employee.ID,
	}).Info("Updating employee")

	result := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("company_id = ? AND id = ?", employee.CompanyID, employee.ID).
		Select("name", "employee_number", "email", "phone", "active", "updated_at").
		Updates(employee)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update employee")
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *GormEmployeeRepository) GetByID(ctx context.Context, companyID, id string) (*models.Employee, error) {
	return r.first(r.db.WithContext(ctx).Where("company_id = ? AND id = ?", companyID, id))
}

func (r *GormEmployeeRepository) GetActiveByID(ctx context.Context, companyID, id string) (*models.Employee, error) {
	return r.first(r.db.WithContext(ctx).Where("company_id = ? AND id = ? AND active = ?", companyID, id, true))
}

func (r *GormEmployeeRepository) GetByTelegramChatID(ctx context.Context, chatID int64) (*models.Employee, error) {
	return r.first(r.db.WithContext(ctx).Where("telegram_chat_id = ? AND active = ?", chatID, true))
}

func (r *GormEmployeeRepository) first(query *gorm.DB) (*models.Employee, error) {
	var employee models.Employee
	result := query.First(&employee)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get employee")
		return nil, result.Error
	}

	return &employee, nil
}

func (r *GormEmployeeRepository) GetByIDs(ctx context.Context, companyID string, ids []string) ([]models.Employee, error) {
	var employees []models.Employee
	if len(ids) == 0 {
		return employees, nil
	}

	if err := r.db.WithContext(ctx).Where("company_id = ? AND id IN ?", companyID, ids).Find(&employees).Error; err != nil {
		r.logger.WithError(err).Error("Failed to get employees by IDs")
		return nil, err
	}

	return employees, nil
}

func (r *GormEmployeeRepository) List(ctx context.Context, companyID, status string) ([]models.Employee, error) {
	var employees []models.Employee

	query := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	switch status {
	case models.EmployeeStatusActive:
		query = query.Where("active = ?", true)
	case models.EmployeeStatusInactive:
		query = query.Where("active = ?", false)
	}

	if err := query.Order("name ASC").Find(&employees).Error; err != nil {
		r.logger.WithError(err).Error("Failed to list employees")
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"company_id": companyID,
		"status":     status,
		"count":      len(employees),
	}).Debug("Retrieved employees")

	return employees, nil
}

func (r *GormEmployeeRepository) Deactivate(ctx context.Context, companyID, id string) error {
	r.logger.WithFields(logrus.Fields{
		"company_id": companyID,
		"id":         id,
	}).Info("Deactivating employee")

	result := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Update("active", false)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to deactivate employee")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *GormEmployeeRepository) SetTelegramChatID(ctx context.Context, companyID, id string, chatID *int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Update("telegram_chat_id", chatID)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to link telegram chat")
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.logger.WithFields(logrus.Fields{
		"id":      id,
		"chat_id": chatID,
	}).Info("Telegram chat linked")
	return nil
}
