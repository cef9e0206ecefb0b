package export

import (
	"bytes"
	"fmt"
	"time"

	"time-clock/internal/timesheet"

	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Summary"
	PunchesSheet = "Punches"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WeeklyWorkbook lays a computed report out as two sheets: hours per employee
// and day, and the raw punches behind them.
func WeeklyWorkbook(rows []timesheet.EmployeeReport, start, end time.Time, loc *time.Location) (*excelize.File, error) {
	if loc == nil {
		loc = time.Local
	}
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(PunchesSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	dates := timesheet.Dates(start, end, loc)
	if err := writeSummary(f, rows, dates, bold); err != nil {
		return nil, err
	}
	if err := writePunches(f, rows, loc, bold); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSummary(f *excelize.File, rows []timesheet.EmployeeReport, dates []string, bold int) error {
	header := []any{"Employee", "Number"}
	for _, d := range dates {
		header = append(header, d)
	}
	header = append(header, "Total")

	if err := f.SetSheetRow(SummarySheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", last, bold); err != nil {
		return err
	}

	for i, row := range rows {
		number := ""
		if row.EmployeeNumber != nil {
			number = *row.EmployeeNumber
		}

		values := []any{row.EmployeeName, number}
		for _, d := range dates {
			hours := 0.0
			if day, ok := row.Days[d]; ok {
				hours = day.Hours
			}
			values = append(values, hours)
		}
		values = append(values, row.TotalHours)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &values); err != nil {
			return err
		}
	}

	return f.SetColWidth(SummarySheet, "A", "A", 28)
}

func writePunches(f *excelize.File, rows []timesheet.EmployeeReport, loc *time.Location, bold int) error {
	header := []any{"Employee", "Date", "Type", "Time", "Notes"}
	if err := f.SetSheetRow(PunchesSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(PunchesSheet, "A1", "E1", bold); err != nil {
		return err
	}

	r := 2
	for _, row := range rows {
		for _, day := range row.SortedDays() {
			for _, p := range day.Punches {
				notes := ""
				if p.Notes != nil {
					notes = *p.Notes
				}
				values := []any{row.EmployeeName, day.Date, p.Type.Label(), p.Time.In(loc).Format("15:04"), notes}
				if err := f.SetSheetRow(PunchesSheet, fmt.Sprintf("A%d", r), &values); err != nil {
					return err
				}
				r++
			}
		}
	}

	return f.SetColWidth(PunchesSheet, "A", "A", 28)
}

// WeeklyWorkbookBytes renders the workbook to xlsx bytes.
func WeeklyWorkbookBytes(rows []timesheet.EmployeeReport, start, end time.Time, loc *time.Location) ([]byte, error) {
	f, err := WeeklyWorkbook(rows, start, end, loc)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename is the download name for a report range.
func Filename(start, end time.Time) string {
	return fmt.Sprintf("timesheet_%s_%s.xlsx", start.Format(timesheet.DateLayout), end.Format(timesheet.DateLayout))
}
