package timesheet

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"time-clock/internal/models"
)

const defaultEmployeeName = "Employee"

// EmployeeInfo is what the report needs from the employee record.
type EmployeeInfo struct {
	ID     string
	Name   string
	Number *string
}

type PunchEntry struct {
	ID    string           `json:"-"`
	Type  models.PunchType `json:"type"`
	Time  time.Time        `json:"time"`
	Notes *string          `json:"notes"`
}

// DayBucket holds one employee's punches for one local date.
type DayBucket struct {
	Date    string       `json:"date"`
	Punches []PunchEntry `json:"punches"`
	Hours   float64      `json:"hours"`
}

type EmployeeReport struct {
	EmployeeID     string                `json:"employee_id"`
	EmployeeName   string                `json:"employee_name"`
	EmployeeNumber *string               `json:"employee_number"`
	Days           map[string]*DayBucket `json:"days"`
	TotalHours     float64               `json:"total_hours"`
}

// SortedDays returns the buckets in ascending date order.
func (r *EmployeeReport) SortedDays() []*DayBucket {
	days := make([]*DayBucket, 0, len(r.Days))
	for _, d := range r.Days {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// Aggregator computes worked hours per employee per local day.
// Location decides where midnight falls; nil means the process zone.
type Aggregator struct {
	Location *time.Location
}

func NewAggregator(loc *time.Location) *Aggregator {
	return &Aggregator{Location: loc}
}

// Compute groups punches by employee and local date and returns one row per
// employee ordered by display name. Incomplete or inverted days count as zero
// hours; nothing here fails.
func (a *Aggregator) Compute(punches []models.Punch, employees map[string]EmployeeInfo) []EmployeeReport {
	byEmployee := make(map[string][]models.Punch)
	for _, p := range punches {
		byEmployee[p.EmployeeID] = append(byEmployee[p.EmployeeID], p)
	}

	rows := make([]EmployeeReport, 0, len(byEmployee))
	for employeeID, group := range byEmployee {
		rows = append(rows, a.employeeRow(employeeID, group, employees[employeeID]))
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].EmployeeName != rows[j].EmployeeName {
			return rows[i].EmployeeName < rows[j].EmployeeName
		}
		return rows[i].EmployeeID < rows[j].EmployeeID
	})
	return rows
}

func (a *Aggregator) employeeRow(employeeID string, group []models.Punch, info EmployeeInfo) EmployeeReport {
	sortPunches(group)

	row := EmployeeReport{
		EmployeeID:     employeeID,
		EmployeeName:   displayName(info, group),
		EmployeeNumber: info.Number,
		Days:           make(map[string]*DayBucket),
	}

	byDay := make(map[string][]models.Punch)
	for _, p := range group {
		key := LocalDay(p.PunchTime, a.Location)
		byDay[key] = append(byDay[key], p)
	}

	total := decimal.Zero
	for date, dayPunches := range byDay {
		hours := dayHours(dayPunches)
		bucket := &DayBucket{
			Date:    date,
			Punches: make([]PunchEntry, 0, len(dayPunches)),
			Hours:   hours.InexactFloat64(),
		}
		for _, p := range dayPunches {
			bucket.Punches = append(bucket.Punches, PunchEntry{
				ID:    p.ID,
				Type:  p.PunchType,
				Time:  p.PunchTime,
				Notes: p.Notes,
			})
		}
		row.Days[date] = bucket
		total = total.Add(hours)
	}
	// days are rounded first, the sum is rounded again on its own
	row.TotalHours = total.Round(2).InexactFloat64()

	return row
}

// DayHours computes worked hours for punches that already belong to one day.
func DayHours(punches []models.Punch) float64 {
	cp := make([]models.Punch, len(punches))
	copy(cp, punches)
	sortPunches(cp)
	return dayHours(cp).InexactFloat64()
}

// dayHours expects punches sorted by time. Later punches of a type replace
// earlier ones.
func dayHours(punches []models.Punch) decimal.Decimal {
	last := make(map[models.PunchType]time.Time, 4)
	for _, p := range punches {
		last[p.PunchType] = p.PunchTime
	}

	clockIn, okIn := last[models.PunchClockIn]
	clockOut, okOut := last[models.PunchClockOut]
	if !okIn || !okOut || !clockOut.After(clockIn) {
		return decimal.Zero
	}

	worked := clockOut.Sub(clockIn)
	lunchOut, okLunchOut := last[models.PunchLunchOut]
	lunchIn, okLunchIn := last[models.PunchLunchIn]
	if okLunchOut && okLunchIn && lunchIn.After(lunchOut) {
		worked -= lunchIn.Sub(lunchOut)
	}
	if worked < 0 {
		worked = 0
	}

	return decimal.NewFromFloat(worked.Hours()).Round(2)
}

func sortPunches(punches []models.Punch) {
	sort.SliceStable(punches, func(i, j int) bool {
		if !punches[i].PunchTime.Equal(punches[j].PunchTime) {
			return punches[i].PunchTime.Before(punches[j].PunchTime)
		}
		return punches[i].ID < punches[j].ID
	})
}

func displayName(info EmployeeInfo, sorted []models.Punch) string {
	if info.Name != "" {
		return info.Name
	}
	for _, p := range sorted {
		if p.EmployeeName != "" {
			return p.EmployeeName
		}
	}
	return defaultEmployeeName
}
