package repository

import (
	"context"
	"errors"
	"time"

	"time-clock/internal/config"
	"time-clock/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PunchFilter narrows a punch query; zero values mean "no filter".
type PunchFilter struct {
	EmployeeID string
	From       time.Time // inclusive
	To         time.Time // exclusive
	Limit      int
	Newest     bool
}

type PunchRepository interface {
	Create(ctx context.Context, punch *models.Punch) error
	CreateGated(ctx context.Context, punch *models.Punch, dayStart, dayEnd time.Time, check func(today []models.Punch) error) error
	GetByID(ctx context.Context, companyID, id string) (*models.Punch, error)
	FindToday(ctx context.Context, companyID, employeeID string, dayStart, dayEnd time.Time) ([]models.Punch, error)
	Find(ctx context.Context, companyID string, filter PunchFilter) ([]models.Punch, error)
	Delete(ctx context.Context, companyID, id string) error
}

type GormPunchRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormPunchRepository(db *gorm.DB) (*GormPunchRepository, error) {
	logger := config.NewLogger()

	// Автомиграция
	if err := db.AutoMigrate(&models.Punch{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate punches table")
		return nil, err
	}

	logger.Info("Punch repository initialized")

	return &GormPunchRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormPunchRepository) Create(ctx context.Context, punch *models.Punch) error {
	return r.create(r.db.WithContext(ctx), punch)
}

func (r *GormPunchRepository) create(tx *gorm.DB, punch *models.Punch) error {
	if !punch.IsValid() {
		r.logger.WithFields(logrus.Fields{
			"company_id":  punch.CompanyID,
			"employee_id": punch.EmployeeID,
			"punch_type":  punch.PunchType,
		}).Warn("Invalid punch data")
		return errors.New("invalid punch data")
	}

	if err := tx.Create(punch).Error; err != nil {
		r.logger.WithError(err).Error("Failed to create punch")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"id":          punch.ID,
		"company_id":  punch.CompanyID,
		"employee_id": punch.EmployeeID,
		"punch_type":  punch.PunchType,
		"punch_time":  punch.PunchTime.Format(time.RFC3339),
	}).Info("Punch created successfully")

	return nil
}

// CreateGated reads the employee's punches for the day, runs check on them and
// inserts only if check passes, all inside one transaction.
func (r *GormPunchRepository) CreateGated(ctx context.Context, punch *models.Punch, dayStart, dayEnd time.Time, check func(today []models.Punch) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var today []models.Punch
		err := tx.Where("company_id = ? AND employee_id = ? AND punch_time >= ? AND punch_time < ?",
			punch.CompanyID, punch.EmployeeID, dayStart.UTC(), dayEnd.UTC()).
			Order("punch_time ASC").
			Find(&today).Error
		if err != nil {
			r.logger.WithError(err).Error("Failed to read today's punches")
			return err
		}

		if err := check(today); err != nil {
			r.logger.WithFields(logrus.Fields{
				"employee_id": punch.EmployeeID,
				"punch_type":  punch.PunchType,
				"reason":      err.Error(),
			}).Info("Punch rejected")
			return err
		}

		return r.create(tx, punch)
	})
}

func (r *GormPunchRepository) GetByID(ctx context.Context, companyID, id string) (*models.Punch, error) {
	var punch models.Punch
	result := r.db.WithContext(ctx).Where("company_id = ? AND id = ?", companyID, id).First(&punch)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Punch not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get punch by ID")
		return nil, result.Error
	}

	return &punch, nil
}

func (r *GormPunchRepository) FindToday(ctx context.Context, companyID, employeeID string, dayStart, dayEnd time.Time) ([]models.Punch, error) {
	return r.Find(ctx, companyID, PunchFilter{
		EmployeeID: employeeID,
		From:       dayStart,
		To:         dayEnd,
	})
}

func (r *GormPunchRepository) Find(ctx context.Context, companyID string, filter PunchFilter) ([]models.Punch, error) {
	var punches []models.Punch

	query := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if filter.EmployeeID != "" {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if !filter.From.IsZero() {
		query = query.Where("punch_time >= ?", filter.From.UTC())
	}
	if !filter.To.IsZero() {
		query = query.Where("punch_time < ?", filter.To.UTC())
	}
	if filter.Newest {
		query = query.Order("punch_time DESC")
	} else {
		query = query.Order("employee_id ASC").Order("punch_time ASC")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&punches).Error; err != nil {
		r.logger.WithError(err).Error("Failed to find punches")
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"company_id":  companyID,
		"employee_id": filter.EmployeeID,
		"count":       len(punches),
	}).Debug("Retrieved punches")

	return punches, nil
}

func (r *GormPunchRepository) Delete(ctx context.Context, companyID, id string) error {
	r.logger.WithFields(logrus.Fields{
		"company_id": companyID,
		"id":         id,
	}).Info("Deleting punch")

	result := r.db.WithContext(ctx).Where("company_id = ? AND id = ?", companyID, id).Delete(&models.Punch{})
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete punch")
		return result.Error
	}

	if result.RowsAffected == 0 {
		r.logger.WithField("id", id).Warn("Punch not found for deletion")
		return ErrNotFound
	}

	r.logger.WithField("id", id).Info("Punch deleted successfully")
	return nil
}
