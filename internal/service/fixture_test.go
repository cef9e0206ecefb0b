package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"time-clock/internal/config"
	"time-clock/internal/database"
	"time-clock/internal/models"
	"time-clock/internal/repository"
)

var testLoc = time.FixedZone("CST", -6*60*60)

type fixture struct {
	punches   *repository.GormPunchRepository
	employees *repository.GormEmployeeRepository
	users     *repository.GormUserRepository
	companies *repository.GormCompanyRepository
	settings  *repository.GormCompanySettingsRepository

	punchSvc    *PunchService
	reportSvc   *ReportService
	authSvc     *AuthService
	employeeSvc *EmployeeService
	companySvc  *CompanyService
	settingsSvc *CompanySettingsService
	seedSvc     *SeedService

	manager Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.Open(database.DriverSQLite, filepath.Join(t.TempDir(), "test.db"), config.NewLogger())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	f := &fixture{}
	if f.punches, err = repository.NewGormPunchRepository(db); err != nil {
		t.Fatal(err)
	}
	if f.employees, err = repository.NewGormEmployeeRepository(db); err != nil {
		t.Fatal(err)
	}
	if f.users, err = repository.NewGormUserRepository(db); err != nil {
		t.Fatal(err)
	}
	if f.companies, err = repository.NewGormCompanyRepository(db); err != nil {
		t.Fatal(err)
	}
	if f.settings, err = repository.NewGormCompanySettingsRepository(db); err != nil {
		t.Fatal(err)
	}

	f.punchSvc = NewPunchService(f.punches, f.employees, testLoc)
	f.reportSvc = NewReportService(f.punches, f.employees, testLoc)
	f.authSvc = NewAuthService(f.users, f.employees, "test-secret", time.Hour)
	f.employeeSvc = NewEmployeeService(f.employees, f.users)
	f.companySvc = NewCompanyService(f.companies)
	f.settingsSvc = NewCompanySettingsService(f.settings)
	f.seedSvc = NewSeedService(f.users)

	f.manager = Actor{UserID: "mgr-1", Username: "boss", Role: models.RoleManager, CompanyID: "acme"}
	return f
}

// hire creates an employee through the service and returns it with its actor.
func (f *fixture) hire(t *testing.T, name, number string) (Actor, *CreatedEmployee) {
	t.Helper()
	created, err := f.employeeSvc.Create(context.Background(), f.manager, EmployeeInput{Name: name, EmployeeNumber: number})
	if err != nil {
		t.Fatalf("create employee %s: %v", name, err)
	}
	user, err := f.users.GetEmployeeUser(context.Background(), "acme", created.ID)
	if err != nil || user == nil {
		t.Fatalf("employee user for %s: %+v, %v", name, user, err)
	}
	return Actor{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         models.RoleEmployee,
		CompanyID:    "acme",
		EmployeeID:   created.ID,
		EmployeeName: name,
	}, created
}

// freeze pins the punch service clock.
func (f *fixture) freeze(ts time.Time) {
	f.punchSvc.now = func() time.Time { return ts }
}
