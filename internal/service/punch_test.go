package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"time-clock/internal/models"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 3, day, hour, minute, 0, 0, testLoc)
}

func TestEmployeePunchGoesThroughGate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ann, _ := f.hire(t, "Ann", "100")

	f.freeze(at(2, 8, 55))
	_, err := f.punchSvc.Punch(ctx, ann, PunchRequest{PunchType: "lunch_out"})
	var gate *GateError
	if !errors.As(err, &gate) || gate.Reason != "You must clock in first" {
		t.Fatalf("lunch_out before clock in: got %v", err)
	}

	f.freeze(at(2, 9, 0))
	p, err := f.punchSvc.Punch(ctx, ann, PunchRequest{PunchType: "clock_in", EmployeeID: "someone-else"})
	if err != nil {
		t.Fatalf("clock in: %v", err)
	}
	if p.EmployeeID != ann.EmployeeID || p.EmployeeName != "Ann" {
		t.Fatalf("employee punched for someone else: %+v", p)
	}
	if !p.PunchTime.Equal(at(2, 9, 0)) {
		t.Fatalf("punch time = %v, want server time", p.PunchTime)
	}
	if p.CreatedBy == nil || *p.CreatedBy != ann.UserID {
		t.Fatalf("created_by = %v", p.CreatedBy)
	}

	f.freeze(at(2, 9, 5))
	_, err = f.punchSvc.Punch(ctx, ann, PunchRequest{PunchType: "clock_in"})
	if !errors.As(err, &gate) || gate.Reason != "Clock in already recorded today" {
		t.Fatalf("second clock in: got %v", err)
	}

	_, err = f.punchSvc.Punch(ctx, ann, PunchRequest{PunchType: "lunch_in"})
	if !errors.As(err, &gate) || gate.Reason != "You must go to lunch first" {
		t.Fatalf("lunch_in before lunch_out: got %v", err)
	}

	for _, step := range []struct {
		typ string
		ts  time.Time
	}{
		{"lunch_out", at(2, 12, 0)},
		{"lunch_in", at(2, 12, 30)},
		{"clock_out", at(2, 17, 0)},
	} {
		f.freeze(step.ts)
		if _, err := f.punchSvc.Punch(ctx, ann, PunchRequest{PunchType: step.typ}); err != nil {
			t.Fatalf("%s: %v", step.typ, err)
		}
	}

	// a new local day starts a new cycle
	f.freeze(at(3, 9, 0))
	if _, err := f.punchSvc.Punch(ctx, ann, PunchRequest{PunchType: "clock_in"}); err != nil {
		t.Fatalf("next day clock in: %v", err)
	}
}

func TestPunchValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ann, _ := f.hire(t, "Ann", "100")

	_, err := f.punchSvc.Punch(ctx, ann, PunchRequest{PunchType: "nap"})
	if !errors.Is(err, ErrValidation) || err.Error() != "Invalid punch type" {
		t.Fatalf("got %v, want invalid punch type", err)
	}

	_, err = f.punchSvc.Punch(ctx, f.manager, PunchRequest{PunchType: "clock_in"})
	if !errors.Is(err, ErrValidation) || err.Error() != "Employee ID required" {
		t.Fatalf("manager without employee: got %v", err)
	}

	_, err = f.punchSvc.Punch(ctx, f.manager, PunchRequest{PunchType: "clock_in", EmployeeID: "missing"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown employee: got %v", err)
	}

	if err := f.employeeSvc.Deactivate(ctx, f.manager, ann.EmployeeID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	_, err = f.punchSvc.Punch(ctx, ann, PunchRequest{PunchType: "clock_in"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("inactive employee punch: got %v", err)
	}
}

func TestManagerManualPunchBypassesGate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ann, _ := f.hire(t, "Ann", "100")

	f.freeze(at(2, 18, 0))
	backdated := at(2, 9, 0)
	first, err := f.punchSvc.Punch(ctx, f.manager, PunchRequest{PunchType: "clock_in", EmployeeID: ann.EmployeeID, PunchTime: &backdated})
	if err != nil {
		t.Fatalf("manual punch: %v", err)
	}
	if !first.PunchTime.Equal(backdated) {
		t.Fatalf("manual punch time = %v, want %v", first.PunchTime, backdated)
	}

	corrected := at(2, 9, 5)
	if _, err := f.punchSvc.Punch(ctx, f.manager, PunchRequest{PunchType: "clock_in", EmployeeID: ann.EmployeeID, PunchTime: &corrected}); err != nil {
		t.Fatalf("duplicate manual clock in should be accepted: %v", err)
	}

	notes := "  forgot badge  "
	p, err := f.punchSvc.Punch(ctx, f.manager, PunchRequest{PunchType: "clock_out", EmployeeID: ann.EmployeeID, Notes: &notes})
	if err != nil {
		t.Fatalf("manual clock out: %v", err)
	}
	if p.Notes == nil || *p.Notes != "forgot badge" {
		t.Fatalf("notes = %v", p.Notes)
	}
	if !p.PunchTime.Equal(at(2, 18, 0)) {
		t.Fatalf("punch without time should use now, got %v", p.PunchTime)
	}

	report, err := f.reportSvc.Weekly(ctx, f.manager, ReportQuery{StartDate: "2026-03-02", EndDate: "2026-03-08"})
	if err != nil {
		t.Fatalf("Weekly: %v", err)
	}
	if len(report.Rows) != 1 {
		t.Fatalf("rows = %d", len(report.Rows))
	}
	// last clock_in (09:05) wins
	if got := report.Rows[0].TotalHours; got != 8.92 {
		t.Fatalf("total = %v, want 8.92", got)
	}
}

func TestListPunches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ann, _ := f.hire(t, "Ann", "100")
	bob, _ := f.hire(t, "Bob", "101")

	for _, a := range []Actor{ann, bob} {
		f.freeze(at(2, 9, 0))
		if _, err := f.punchSvc.Punch(ctx, a, PunchRequest{PunchType: "clock_in"}); err != nil {
			t.Fatal(err)
		}
		f.freeze(at(3, 9, 0))
		if _, err := f.punchSvc.Punch(ctx, a, PunchRequest{PunchType: "clock_in"}); err != nil {
			t.Fatal(err)
		}
	}

	own, err := f.punchSvc.List(ctx, ann, PunchQuery{EmployeeID: bob.EmployeeID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(own) != 2 {
		t.Fatalf("employee saw %d punches, want own 2", len(own))
	}
	for _, p := range own {
		if p.EmployeeID != ann.EmployeeID {
			t.Fatalf("employee saw someone else's punch: %+v", p)
		}
	}
	if !own[0].PunchTime.After(own[1].PunchTime) {
		t.Fatal("expected newest first")
	}

	all, err := f.punchSvc.List(ctx, f.manager, PunchQuery{StartDate: "2026-03-03", EndDate: "2026-03-03"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("manager saw %d punches on 03-03, want 2", len(all))
	}

	if _, err := f.punchSvc.List(ctx, f.manager, PunchQuery{StartDate: "03/03/2026"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad date: got %v", err)
	}
}

func TestDeletePunch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ann, _ := f.hire(t, "Ann", "100")

	f.freeze(at(2, 9, 0))
	p, err := f.punchSvc.Punch(ctx, ann, PunchRequest{PunchType: "clock_in"})
	if err != nil {
		t.Fatal(err)
	}

	if err := f.punchSvc.Delete(ctx, ann, p.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("employee delete: got %v", err)
	}
	if err := f.punchSvc.Delete(ctx, f.manager, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := f.punchSvc.Delete(ctx, f.manager, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: got %v", err)
	}

	// deleting frees the slot for a re-punch
	if _, err := f.punchSvc.Punch(ctx, ann, PunchRequest{PunchType: "clock_in"}); err != nil {
		t.Fatalf("re-punch after delete: %v", err)
	}
}

func TestTodayActions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ann, _ := f.hire(t, "Ann", "100")

	f.freeze(at(2, 9, 0))
	if _, err := f.punchSvc.Punch(ctx, ann, PunchRequest{PunchType: "clock_in"}); err != nil {
		t.Fatal(err)
	}

	actions, err := f.punchSvc.TodayActions(ctx, "acme", ann.EmployeeID)
	if err != nil {
		t.Fatalf("TodayActions: %v", err)
	}
	want := map[models.PunchType]bool{
		models.PunchClockIn:  false,
		models.PunchLunchOut: true,
		models.PunchLunchIn:  false,
		models.PunchClockOut: true,
	}
	if len(actions) != len(want) {
		t.Fatalf("got %d actions", len(actions))
	}
	for _, a := range actions {
		if a.Enabled != want[a.Type] {
			t.Errorf("%s enabled = %v, want %v (%s)", a.Type, a.Enabled, want[a.Type], a.Reason)
		}
	}
}
