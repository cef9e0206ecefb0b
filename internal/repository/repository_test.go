package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"time-clock/internal/config"
	"time-clock/internal/database"
	"time-clock/internal/models"

	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, filepath.Join(t.TempDir(), "test.db"), config.NewLogger())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newPunchRepo(t *testing.T) *GormPunchRepository {
	t.Helper()
	repo, err := NewGormPunchRepository(openTestDB(t))
	if err != nil {
		t.Fatalf("NewGormPunchRepository: %v", err)
	}
	return repo
}

func mustCreatePunch(t *testing.T, repo *GormPunchRepository, company, employee string, typ models.PunchType, ts time.Time) *models.Punch {
	t.Helper()
	p := &models.Punch{
		CompanyID:    company,
		EmployeeID:   employee,
		EmployeeName: "Ann",
		PunchType:    typ,
		PunchTime:    ts,
	}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return p
}

func TestPunchFindIsScopedToCompany(t *testing.T) {
	repo := newPunchRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	mustCreatePunch(t, repo, "acme", "e1", models.PunchClockIn, base)
	other := mustCreatePunch(t, repo, "globex", "e1", models.PunchClockIn, base)

	got, err := repo.Find(ctx, "acme", PunchFilter{})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != 1 || got[0].CompanyID != "acme" {
		t.Fatalf("got %+v, want only acme punch", got)
	}

	p, err := repo.GetByID(ctx, "acme", other.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil for other company's punch, got %+v", p)
	}

	if err := repo.Delete(ctx, "acme", other.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-company delete: got %v, want ErrNotFound", err)
	}
}

func TestPunchFindFilters(t *testing.T) {
	repo := newPunchRepo(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	mustCreatePunch(t, repo, "acme", "e1", models.PunchClockIn, day.Add(9*time.Hour))
	mustCreatePunch(t, repo, "acme", "e1", models.PunchClockOut, day.Add(17*time.Hour))
	mustCreatePunch(t, repo, "acme", "e2", models.PunchClockIn, day.Add(10*time.Hour))
	mustCreatePunch(t, repo, "acme", "e1", models.PunchClockIn, day.Add(33*time.Hour))

	got, err := repo.Find(ctx, "acme", PunchFilter{EmployeeID: "e1", From: day, To: day.Add(24 * time.Hour)})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d punches, want 2", len(got))
	}
	if got[0].PunchType != models.PunchClockIn || got[1].PunchType != models.PunchClockOut {
		t.Fatalf("unexpected order: %s, %s", got[0].PunchType, got[1].PunchType)
	}

	newest, err := repo.Find(ctx, "acme", PunchFilter{Newest: true, Limit: 2})
	if err != nil {
		t.Fatalf("Find newest: %v", err)
	}
	if len(newest) != 2 {
		t.Fatalf("got %d punches, want 2", len(newest))
	}
	if !newest[0].PunchTime.After(newest[1].PunchTime) {
		t.Fatalf("expected newest first, got %v then %v", newest[0].PunchTime, newest[1].PunchTime)
	}
	if !newest[0].PunchTime.Equal(day.Add(33 * time.Hour)) {
		t.Fatalf("newest punch = %v", newest[0].PunchTime)
	}
}

func TestPunchTimeRoundTripsAcrossZones(t *testing.T) {
	repo := newPunchRepo(t)
	ctx := context.Background()
	cst := time.FixedZone("CST", -6*60*60)
	local := time.Date(2026, 3, 2, 23, 30, 0, 0, cst)

	p := mustCreatePunch(t, repo, "acme", "e1", models.PunchClockIn, local)

	dayStart := time.Date(2026, 3, 2, 0, 0, 0, 0, cst)
	got, err := repo.FindToday(ctx, "acme", "e1", dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("FindToday: %v", err)
	}
	if len(got) != 1 || got[0].ID != p.ID {
		t.Fatalf("got %+v, want the 23:30 CST punch", got)
	}
	if !got[0].PunchTime.Equal(local) {
		t.Fatalf("punch time %v != %v", got[0].PunchTime, local)
	}
}

func TestCreateGatedRejects(t *testing.T) {
	repo := newPunchRepo(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	mustCreatePunch(t, repo, "acme", "e1", models.PunchClockIn, day.Add(9*time.Hour))

	denied := errors.New("denied")
	var seen int
	err := repo.CreateGated(ctx, &models.Punch{
		CompanyID:  "acme",
		EmployeeID: "e1",
		PunchType:  models.PunchClockIn,
		PunchTime:  day.Add(10 * time.Hour),
	}, day, day.Add(24*time.Hour), func(today []models.Punch) error {
		seen = len(today)
		return denied
	})
	if !errors.Is(err, denied) {
		t.Fatalf("got %v, want check error", err)
	}
	if seen != 1 {
		t.Fatalf("check saw %d punches, want 1", seen)
	}

	all, err := repo.Find(ctx, "acme", PunchFilter{})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("rejected punch was stored: %d punches", len(all))
	}

	err = repo.CreateGated(ctx, &models.Punch{
		CompanyID:  "acme",
		EmployeeID: "e1",
		PunchType:  models.PunchLunchOut,
		PunchTime:  day.Add(12 * time.Hour),
	}, day, day.Add(24*time.Hour), func([]models.Punch) error { return nil })
	if err != nil {
		t.Fatalf("CreateGated allowed: %v", err)
	}
}

func TestCreateRejectsInvalidPunch(t *testing.T) {
	repo := newPunchRepo(t)
	err := repo.Create(context.Background(), &models.Punch{CompanyID: "acme", EmployeeID: "e1", PunchType: "nap", PunchTime: time.Now()})
	if err == nil {
		t.Fatal("expected error for unknown punch type")
	}
}

func TestEmployeeRepository(t *testing.T) {
	db := openTestDB(t)
	repo, err := NewGormEmployeeRepository(db)
	if err != nil {
		t.Fatalf("NewGormEmployeeRepository: %v", err)
	}
	ctx := context.Background()

	ann := &models.Employee{CompanyID: "acme", Name: "Ann", EmployeeNumber: "100", Active: true}
	bob := &models.Employee{CompanyID: "acme", Name: "Bob", EmployeeNumber: "101", Active: true}
	for _, e := range []*models.Employee{ann, bob} {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	dup := &models.Employee{CompanyID: "acme", Name: "Dup", EmployeeNumber: "100", Active: true}
	if err := repo.Create(ctx, dup); err == nil {
		t.Fatal("expected unique violation for duplicate employee number")
	}
	same := &models.Employee{CompanyID: "globex", Name: "Other", EmployeeNumber: "100", Active: true}
	if err := repo.Create(ctx, same); err != nil {
		t.Fatalf("same number in another company: %v", err)
	}

	if err := repo.Deactivate(ctx, "acme", bob.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if err := repo.Deactivate(ctx, "globex", bob.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-company deactivate: got %v", err)
	}

	active, err := repo.List(ctx, "acme", models.EmployeeStatusActive)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(active) != 1 || active[0].ID != ann.ID {
		t.Fatalf("active = %+v", active)
	}
	inactive, _ := repo.List(ctx, "acme", models.EmployeeStatusInactive)
	if len(inactive) != 1 || inactive[0].ID != bob.ID {
		t.Fatalf("inactive = %+v", inactive)
	}
	all, _ := repo.List(ctx, "acme", models.EmployeeStatusAll)
	if len(all) != 2 {
		t.Fatalf("all = %d, want 2", len(all))
	}

	if got, _ := repo.GetActiveByID(ctx, "acme", bob.ID); got != nil {
		t.Fatalf("inactive employee returned as active: %+v", got)
	}

	chat := int64(4242)
	if err := repo.SetTelegramChatID(ctx, "acme", ann.ID, &chat); err != nil {
		t.Fatalf("SetTelegramChatID: %v", err)
	}
	linked, err := repo.GetByTelegramChatID(ctx, chat)
	if err != nil || linked == nil || linked.ID != ann.ID {
		t.Fatalf("GetByTelegramChatID = %+v, %v", linked, err)
	}

	ann.Name = "Ann Lee"
	ann.Active = false
	if err := repo.Update(ctx, ann); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := repo.GetByID(ctx, "acme", ann.ID)
	if got.Name != "Ann Lee" || got.Active {
		t.Fatalf("update not applied: %+v", got)
	}

	byIDs, err := repo.GetByIDs(ctx, "acme", []string{ann.ID, bob.ID, same.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(byIDs) != 2 {
		t.Fatalf("GetByIDs returned %d, want 2", len(byIDs))
	}
}

func TestUserRepository(t *testing.T) {
	repo, err := NewGormUserRepository(openTestDB(t))
	if err != nil {
		t.Fatalf("NewGormUserRepository: %v", err)
	}
	ctx := context.Background()
	empID := "emp-1"

	manager := &models.User{CompanyID: "acme", Username: "boss", PasswordHash: "x", Role: models.RoleManager}
	worker := &models.User{CompanyID: "acme", Username: "100", PasswordHash: "x", Role: models.RoleEmployee, EmployeeID: &empID}
	for _, u := range []*models.User{manager, worker} {
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	if got, _ := repo.GetManager(ctx, "acme", "boss"); got == nil || got.ID != manager.ID {
		t.Fatalf("GetManager = %+v", got)
	}
	if got, _ := repo.GetManager(ctx, "acme", "100"); got != nil {
		t.Fatalf("employee returned as manager: %+v", got)
	}
	if got, _ := repo.GetManager(ctx, "globex", "boss"); got != nil {
		t.Fatalf("manager leaked across companies: %+v", got)
	}

	if err := repo.UpdateUsernameForEmployee(ctx, "acme", empID, "200"); err != nil {
		t.Fatalf("UpdateUsernameForEmployee: %v", err)
	}
	got, _ := repo.GetEmployeeUser(ctx, "acme", empID)
	if got == nil || got.Username != "200" {
		t.Fatalf("username not renamed: %+v", got)
	}

	if err := repo.UpdatePasswordForEmployee(ctx, "acme", "missing", "y"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	exists, err := repo.ExistsByUsernameOrEmail(ctx, "acme", "boss", "")
	if err != nil || !exists {
		t.Fatalf("ExistsByUsernameOrEmail = %v, %v", exists, err)
	}
}

func TestCompanyRepositories(t *testing.T) {
	db := openTestDB(t)
	companies, err := NewGormCompanyRepository(db)
	if err != nil {
		t.Fatalf("NewGormCompanyRepository: %v", err)
	}
	settings, err := NewGormCompanySettingsRepository(db)
	if err != nil {
		t.Fatalf("NewGormCompanySettingsRepository: %v", err)
	}
	ctx := context.Background()

	if err := companies.Create(ctx, &models.Company{Name: "Acme", Slug: "acme", Status: models.CompanyStatusTrial}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := companies.UpdateStatus(ctx, "acme", models.CompanyStatusSuspended); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	c, _ := companies.GetBySlug(ctx, "acme")
	if c == nil || !c.IsSuspended() {
		t.Fatalf("company = %+v", c)
	}
	if err := companies.UpdateStatus(ctx, "nope", models.CompanyStatusActive); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	if s, _ := settings.Get(ctx, "acme"); s != nil {
		t.Fatalf("expected no settings yet, got %+v", s)
	}
	if _, err := settings.Upsert(ctx, "acme", "Acme Corp"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	s, err := settings.Upsert(ctx, "acme", "Acme Inc")
	if err != nil {
		t.Fatalf("Upsert again: %v", err)
	}
	if s.CompanyName != "Acme Inc" {
		t.Fatalf("company name = %q", s.CompanyName)
	}
}
