package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"time-clock/internal/config"
	"time-clock/internal/database"
	"time-clock/internal/repository"
	"time-clock/internal/service"
)

// app holds everything the subcommands share.
type app struct {
	cfg *config.Config
	db  *gorm.DB

	punchRepo    *repository.GormPunchRepository
	employeeRepo *repository.GormEmployeeRepository
	userRepo     *repository.GormUserRepository
	companyRepo  *repository.GormCompanyRepository
	settingsRepo *repository.GormCompanySettingsRepository

	auth      *service.AuthService
	punches   *service.PunchService
	reports   *service.ReportService
	employees *service.EmployeeService
	companies *service.CompanyService
	settings  *service.CompanySettingsService
	seed      *service.SeedService
}

func newApp(cfg *config.Config) (*app, error) {
	logrus.WithFields(logrus.Fields{
		"driver":   cfg.DBDriver,
		"timezone": cfg.Location.String(),
	}).Info("Connecting to database...")

	db, err := database.Open(cfg.DBDriver, cfg.DatabaseURL, config.NewLogger())
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	a := &app{cfg: cfg, db: db}
	if err := a.initRepositories(); err != nil {
		_ = database.Close(db)
		return nil, err
	}

	a.auth = service.NewAuthService(a.userRepo, a.employeeRepo, cfg.JWTSecret, cfg.JWTTTL)
	a.punches = service.NewPunchService(a.punchRepo, a.employeeRepo, cfg.Location)
	a.reports = service.NewReportService(a.punchRepo, a.employeeRepo, cfg.Location)
	a.employees = service.NewEmployeeService(a.employeeRepo, a.userRepo)
	a.companies = service.NewCompanyService(a.companyRepo)
	a.settings = service.NewCompanySettingsService(a.settingsRepo)
	a.seed = service.NewSeedService(a.userRepo)

	return a, nil
}

func (a *app) initRepositories() error {
	var err error
	if a.companyRepo, err = repository.NewGormCompanyRepository(a.db); err != nil {
		return fmt.Errorf("company repository: %w", err)
	}
	if a.settingsRepo, err = repository.NewGormCompanySettingsRepository(a.db); err != nil {
		return fmt.Errorf("company settings repository: %w", err)
	}
	if a.employeeRepo, err = repository.NewGormEmployeeRepository(a.db); err != nil {
		return fmt.Errorf("employee repository: %w", err)
	}
	if a.userRepo, err = repository.NewGormUserRepository(a.db); err != nil {
		return fmt.Errorf("user repository: %w", err)
	}
	if a.punchRepo, err = repository.NewGormPunchRepository(a.db); err != nil {
		return fmt.Errorf("punch repository: %w", err)
	}
	return nil
}

func (a *app) Close() {
	if err := database.Close(a.db); err != nil {
		logrus.WithError(err).Warn("Error closing database")
	}
}
