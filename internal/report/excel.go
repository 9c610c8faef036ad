// internal/report/excel.go
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Spreadsheet builders for the admin console exports. Pure projection: the
// caller supplies already-filtered rows, nothing here re-checks a rule.

const (
	attendanceHeaderFill = "667EEA"
	leaveHeaderFill      = "764BA2"
)

type AttendanceRow struct {
	Name     string
	Email    string
	Mode     string
	ClockIn  *time.Time
	ClockOut *time.Time
	Location string
}

type LeaveRow struct {
	Name   string
	Email  string
	Date   time.Time
	Type   string
	Reason string
}

// BuildAttendanceExport renders presence rows into the Attendance sheet.
func BuildAttendanceExport(rows []AttendanceRow) (*excelize.File, error) {
	const sheet = "Attendance"
	f, err := newSheet(sheet,
		[]string{"Employee", "Email", "Mode", "Clock In", "Clock Out", "Location"},
		[]float64{25, 30, 10, 20, 20, 30},
		attendanceHeaderFill,
	)
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		values := []any{
			row.Name,
			row.Email,
			strings.ToUpper(row.Mode),
			stamp(row.ClockIn),
			stamp(row.ClockOut),
			orNA(row.Location),
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// BuildLeaveExport renders leave rows into the Leaves sheet.
func BuildLeaveExport(rows []LeaveRow) (*excelize.File, error) {
	const sheet = "Leaves"
	f, err := newSheet(sheet,
		[]string{"Employee", "Email", "Date", "Leave Type", "Reason"},
		[]float64{25, 30, 15, 15, 40},
		leaveHeaderFill,
	)
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		reason := row.Reason
		if reason == "" {
			reason = "Not specified"
		}
		values := []any{
			row.Name,
			row.Email,
			row.Date.Format("2006-01-02"),
			row.Type,
			reason,
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// BuildDTRReport renders the daily time record: one row per presence entry
// with the worked hours when the day is closed.
func BuildDTRReport(rows []AttendanceRow) (*excelize.File, error) {
	const sheet = "DTR"
	f, err := newSheet(sheet,
		[]string{"Employee", "Email", "Date", "Mode", "Clock In", "Clock Out", "Hours"},
		[]float64{25, 30, 15, 10, 20, 20, 10},
		attendanceHeaderFill,
	)
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		var date, in, out, hours string
		if row.ClockIn != nil {
			date = row.ClockIn.Format("2006-01-02")
			in = row.ClockIn.Format("15:04:05")
		}
		if row.ClockOut != nil {
			out = row.ClockOut.Format("15:04:05")
		}
		if row.ClockIn != nil && row.ClockOut != nil {
			hours = fmt.Sprintf("%.2f", row.ClockOut.Sub(*row.ClockIn).Hours())
		}
		values := []any{row.Name, row.Email, date, row.Mode, in, out, hours}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func newSheet(name string, headers []string, widths []float64, fill string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			return nil, err
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(name, col, col, widths[i]); err != nil {
			return nil, err
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
	})
	if err != nil {
		return nil, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(name, "A1", lastCol+"1", style); err != nil {
		return nil, err
	}
	return f, nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func stamp(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2006-01-02 15:04:05")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
