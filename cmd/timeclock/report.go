package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"time-clock/internal/config"
	"time-clock/internal/export"
	"time-clock/internal/models"
	"time-clock/internal/service"
	"time-clock/internal/timesheet"
)

func newReportCommand() *cobra.Command {
	var (
		companyID  string
		startDate  string
		endDate    string
		employeeID string
		xlsxPath   string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print worked hours for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(config.Get())
			if err != nil {
				return err
			}
			defer a.Close()

			actor := service.Actor{Username: "cli", Role: models.RoleSuperAdmin, CompanyID: companyID}
			report, err := a.reports.Weekly(context.Background(), actor, service.ReportQuery{
				StartDate:  startDate,
				EndDate:    endDate,
				EmployeeID: employeeID,
			})
			if err != nil {
				return err
			}

			if xlsxPath != "" {
				f, err := export.WeeklyWorkbook(report.Rows, report.Start, report.End, a.reports.Location())
				if err != nil {
					return err
				}
				defer f.Close()
				if err := f.SaveAs(xlsxPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", xlsxPath)
				return nil
			}

			return printReport(cmd, report, a.reports.Location())
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "", "Company id")
	cmd.Flags().StringVar(&startDate, "start", "", "First day, YYYY-MM-DD")
	cmd.Flags().StringVar(&endDate, "end", "", "Last day, YYYY-MM-DD")
	cmd.Flags().StringVar(&employeeID, "employee", "", "Only this employee")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write an Excel workbook instead of printing")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func printReport(cmd *cobra.Command, report *service.WeeklyReport, loc *time.Location) error {
	dates := timesheet.Dates(report.Start, report.End, loc)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "Employee\tNumber")
	for _, d := range dates {
		fmt.Fprintf(w, "\t%s", d)
	}
	fmt.Fprintln(w, "\tTotal")

	for _, row := range report.Rows {
		number := ""
		if row.EmployeeNumber != nil {
			number = *row.EmployeeNumber
		}
		fmt.Fprintf(w, "%s\t%s", row.EmployeeName, number)
		for _, d := range dates {
			hours := 0.0
			if day, ok := row.Days[d]; ok {
				hours = day.Hours
			}
			fmt.Fprintf(w, "\t%.2f", hours)
		}
		fmt.Fprintf(w, "\t%.2f\n", row.TotalHours)
	}
	return w.Flush()
}
