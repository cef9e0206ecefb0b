package service

import (
	"context"
	"errors"
	"testing"
)

func TestWeeklyReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ann, _ := f.hire(t, "Ann", "100")
	bob, _ := f.hire(t, "Bob", "101")

	day := []struct {
		typ    string
		hour   int
		minute int
	}{
		{"clock_in", 9, 0},
		{"lunch_out", 12, 0},
		{"lunch_in", 12, 30},
		{"clock_out", 17, 0},
	}
	for _, a := range []Actor{ann, bob} {
		for _, d := range []int{2, 3} {
			for _, p := range day {
				f.freeze(at(d, p.hour, p.minute))
				if _, err := f.punchSvc.Punch(ctx, a, PunchRequest{PunchType: p.typ}); err != nil {
					t.Fatalf("%s %s: %v", a.EmployeeName, p.typ, err)
				}
			}
		}
	}
	// outside the range
	f.freeze(at(9, 9, 0))
	if _, err := f.punchSvc.Punch(ctx, ann, PunchRequest{PunchType: "clock_in"}); err != nil {
		t.Fatal(err)
	}

	report, err := f.reportSvc.Weekly(ctx, f.manager, ReportQuery{StartDate: "2026-03-02", EndDate: "2026-03-08"})
	if err != nil {
		t.Fatalf("Weekly: %v", err)
	}
	if len(report.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(report.Rows))
	}
	if report.Rows[0].EmployeeName != "Ann" || report.Rows[1].EmployeeName != "Bob" {
		t.Fatalf("row order: %s, %s", report.Rows[0].EmployeeName, report.Rows[1].EmployeeName)
	}
	for _, row := range report.Rows {
		if row.TotalHours != 15 {
			t.Errorf("%s total = %v, want 15", row.EmployeeName, row.TotalHours)
		}
		if len(row.Days) != 2 {
			t.Errorf("%s days = %d, want 2", row.EmployeeName, len(row.Days))
		}
		if row.EmployeeNumber == nil {
			t.Errorf("%s has no employee number", row.EmployeeName)
		}
	}
	if got := *report.Rows[1].EmployeeNumber; got != "101" {
		t.Fatalf("Bob number = %q", got)
	}
	if got := report.End.Format("2006-01-02"); got != "2026-03-08" {
		t.Fatalf("report end = %s", got)
	}

	own, err := f.reportSvc.Weekly(ctx, bob, ReportQuery{StartDate: "2026-03-02", EndDate: "2026-03-08", EmployeeID: ann.EmployeeID})
	if err != nil {
		t.Fatalf("Weekly as employee: %v", err)
	}
	if len(own.Rows) != 1 || own.Rows[0].EmployeeID != bob.EmployeeID {
		t.Fatalf("employee report should only contain themself, got %+v", own.Rows)
	}

	filtered, err := f.reportSvc.Weekly(ctx, f.manager, ReportQuery{StartDate: "2026-03-02", EndDate: "2026-03-02", EmployeeID: ann.EmployeeID})
	if err != nil {
		t.Fatalf("Weekly filtered: %v", err)
	}
	if len(filtered.Rows) != 1 || filtered.Rows[0].TotalHours != 7.5 {
		t.Fatalf("filtered = %+v", filtered.Rows)
	}
}

func TestWeeklyReportValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []ReportQuery{
		{StartDate: "2026-03-02"},
		{EndDate: "2026-03-02"},
		{StartDate: "2026-03-09", EndDate: "2026-03-02"},
		{StartDate: "2026-02-30", EndDate: "2026-03-02"},
	}
	for _, q := range cases {
		if _, err := f.reportSvc.Weekly(ctx, f.manager, q); !errors.Is(err, ErrValidation) {
			t.Errorf("%+v: got %v, want validation error", q, err)
		}
	}

	empty, err := f.reportSvc.Weekly(ctx, f.manager, ReportQuery{StartDate: "2026-03-02", EndDate: "2026-03-02"})
	if err != nil {
		t.Fatalf("empty range: %v", err)
	}
	if len(empty.Rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(empty.Rows))
	}
}
