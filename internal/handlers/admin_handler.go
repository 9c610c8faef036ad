// internal/handlers/admin_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/00jmdc-SysEng/Attendance/internal/ledger"
	"github.com/00jmdc-SysEng/Attendance/internal/models"
	"github.com/00jmdc-SysEng/Attendance/internal/report"
)

type AdminHandler struct {
	DB     *gorm.DB
	Ledger *ledger.Service
	Store  ledger.Store
}

func NewAdminHandler(db *gorm.DB, svc *ledger.Service, store ledger.Store) *AdminHandler {
	return &AdminHandler{DB: db, Ledger: svc, Store: store}
}

// =========================
// EMPLOYEES
// =========================

type employeeSummary struct {
	ID          uint      `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	TotalDays   int       `json:"total_days"`
	TotalLeaves int       `json:"total_leaves"`
}

func (h *AdminHandler) ListEmployees(c *gin.Context) {
	var users []models.User
	if err := h.DB.Where("is_admin = ?", false).Order("full_name asc").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}

	records, err := h.Ledger.Query(c.Request.Context(), ledger.Filter{})
	if err != nil {
		ledgerError(c, err)
		return
	}

	days := make(map[string]int)
	leaves := make(map[string]int)
	for i := range records {
		switch records[i].Kind {
		case ledger.KindPresence:
			days[records[i].EmployeeID]++
		case ledger.KindLeave:
			leaves[records[i].EmployeeID]++
		}
	}

	out := make([]employeeSummary, 0, len(users))
	for i := range users {
		u := &users[i]
		out = append(out, employeeSummary{
			ID:          u.ID,
			FullName:    u.FullName,
			Email:       u.Email,
			CreatedAt:   u.CreatedAt,
			TotalDays:   days[u.EmployeeID()],
			TotalLeaves: leaves[u.EmployeeID()],
		})
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "employees": out})
}

type UpdateEmployeeReq struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

func (h *AdminHandler) UpdateEmployee(c *gin.Context) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee id"})
		return
	}

	var req UpdateEmployeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	var u models.User
	if err := h.DB.First(&u, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}

	u.FullName = strings.TrimSpace(req.FullName)
	u.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := h.DB.Save(&u).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "employee": u})
}

// DeleteEmployee removes the user and their ledger rows. Record deletion is
// an administrative action outside the core service, so it goes straight to
// the store.
func (h *AdminHandler) DeleteEmployee(c *gin.Context) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee id"})
		return
	}

	var u models.User
	if err := h.DB.First(&u, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}

	if err := h.Store.DeleteByEmployee(c.Request.Context(), u.EmployeeID()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if err := h.DB.Delete(&u).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "success": true})
}

// =========================
// OVERVIEW
// =========================

func (h *AdminHandler) Overview(c *gin.Context) {
	today := ledger.DayKey(h.Ledger.Now())

	var totalEmployees int64
	if err := h.DB.Model(&models.User{}).Where("is_admin = ?", false).Count(&totalEmployees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}

	records, err := h.Ledger.Query(c.Request.Context(), ledger.Filter{From: today, To: today})
	if err != nil {
		ledgerError(c, err)
		return
	}

	names, err := h.userNames(records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}

	var present, remote, onLeave int
	rows := make([]gin.H, 0, len(records))
	for i := range records {
		rec := &records[i]
		row := gin.H{
			"full_name": names[rec.EmployeeID],
			"day":       rec.Day,
		}
		switch rec.Kind {
		case ledger.KindPresence:
			if rec.Presence.Mode == ledger.ModeOnsite {
				present++
			} else {
				remote++
			}
			row["mode"] = rec.Presence.Mode
			row["clock_in"] = rec.Presence.ClockIn
			row["clock_out"] = rec.Presence.ClockOut
		case ledger.KindLeave:
			onLeave++
			row["leave_type"] = rec.Leave.Type
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"total_employees":  totalEmployees,
		"present_today":    present,
		"remote_today":     remote,
		"on_leave_today":   onLeave,
		"today_attendance": rows,
	})
}

// =========================
// LISTINGS
// =========================

func (h *AdminHandler) AttendanceLogs(c *gin.Context) {
	f := ledger.Filter{
		Kind:  ledger.KindPresence,
		From:  strings.TrimSpace(c.Query("date_from")),
		To:    strings.TrimSpace(c.Query("date_to")),
		Limit: 500,
	}
	if v := strings.TrimSpace(c.Query("employee_id")); v != "" && v != "all" {
		f.EmployeeID = v
	}
	if v := strings.TrimSpace(c.Query("mode")); v != "" && v != "all" {
		f.Mode = ledger.Mode(v)
	}

	records, err := h.Ledger.Query(c.Request.Context(), f)
	if err != nil {
		ledgerError(c, err)
		return
	}

	names, err := h.userNames(records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}

	logs := make([]gin.H, 0, len(records))
	for i := range records {
		rec := &records[i]
		logs = append(logs, gin.H{
			"id":        rec.ID,
			"full_name": names[rec.EmployeeID],
			"day":       rec.Day,
			"mode":      rec.Presence.Mode,
			"clock_in":  rec.Presence.ClockIn,
			"clock_out": rec.Presence.ClockOut,
			"location":  rec.Presence.Location,
		})
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "logs": logs})
}

func (h *AdminHandler) Leaves(c *gin.Context) {
	f := ledger.Filter{
		Kind:  ledger.KindLeave,
		Limit: 200,
	}
	if v := strings.TrimSpace(c.Query("employee_id")); v != "" && v != "all" {
		f.EmployeeID = v
	}
	if v := strings.TrimSpace(c.Query("leave_type")); v != "" && v != "all" {
		f.LeaveType = ledger.LeaveType(v)
	}
	if err := h.applyPeriod(&f, c.Query("period")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, err := h.Ledger.Query(c.Request.Context(), f)
	if err != nil {
		ledgerError(c, err)
		return
	}

	names, err := h.userNames(records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}

	leaves := make([]gin.H, 0, len(records))
	for i := range records {
		rec := &records[i]
		leaves = append(leaves, gin.H{
			"id":           rec.ID,
			"full_name":    names[rec.EmployeeID],
			"day":          rec.Day,
			"leave_type":   rec.Leave.Type,
			"leave_reason": rec.Leave.Reason,
			"created_at":   rec.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "leaves": leaves})
}

// applyPeriod translates the period shorthand into a From bound: today,
// this-week (Monday start) or this-month.
func (h *AdminHandler) applyPeriod(f *ledger.Filter, period string) error {
	now := h.Ledger.Now()
	switch strings.TrimSpace(period) {
	case "":
	case "today":
		f.From = ledger.DayKey(now)
		f.To = f.From
	case "this-week":
		offset := (int(now.Weekday()) + 6) % 7
		f.From = ledger.DayKey(now.AddDate(0, 0, -offset))
	case "this-month":
		f.From = ledger.DayKey(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()))
	default:
		return fmt.Errorf("invalid period %q", period)
	}
	return nil
}

// =========================
// EXPORTS
// =========================

func (h *AdminHandler) ExportAttendance(c *gin.Context) {
	f := h.exportFilter(c)
	f.Kind = ledger.KindPresence

	rows, err := h.attendanceRows(c, f)
	if err != nil {
		ledgerError(c, err)
		return
	}

	file, err := report.BuildAttendanceExport(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	h.sendWorkbook(c, file, "Attendance_Export.xlsx")
}

func (h *AdminHandler) ExportLeaves(c *gin.Context) {
	var req struct {
		Filters struct {
			EmployeeID string `json:"employee_id"`
			LeaveType  string `json:"leave_type"`
			Period     string `json:"period"`
		} `json:"filters"`
	}
	_ = c.ShouldBindJSON(&req)

	f := ledger.Filter{Kind: ledger.KindLeave}
	if v := req.Filters.EmployeeID; v != "" && v != "all" {
		f.EmployeeID = v
	}
	if v := req.Filters.LeaveType; v != "" && v != "all" {
		f.LeaveType = ledger.LeaveType(v)
	}
	if err := h.applyPeriod(&f, req.Filters.Period); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, err := h.Ledger.Query(c.Request.Context(), f)
	if err != nil {
		ledgerError(c, err)
		return
	}

	users, err := h.userIndex(records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}

	rows := make([]report.LeaveRow, 0, len(records))
	for i := range records {
		rec := &records[i]
		u := users[rec.EmployeeID]
		rows = append(rows, report.LeaveRow{
			Name:   u.FullName,
			Email:  u.Email,
			Date:   rec.CreatedAt,
			Type:   string(rec.Leave.Type),
			Reason: rec.Leave.Reason,
		})
	}

	file, err := report.BuildLeaveExport(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	h.sendWorkbook(c, file, "Leave_Export.xlsx")
}

func (h *AdminHandler) DTRReport(c *gin.Context) {
	f := h.exportFilter(c)
	f.Kind = ledger.KindPresence

	rows, err := h.attendanceRows(c, f)
	if err != nil {
		ledgerError(c, err)
		return
	}

	file, err := report.BuildDTRReport(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	h.sendWorkbook(c, file, "DTR_Report.xlsx")
}

func (h *AdminHandler) exportFilter(c *gin.Context) ledger.Filter {
	var req struct {
		Filters struct {
			EmployeeID string `json:"employee_id"`
			DateFrom   string `json:"date_from"`
			DateTo     string `json:"date_to"`
			Mode       string `json:"mode"`
		} `json:"filters"`
	}
	_ = c.ShouldBindJSON(&req)

	f := ledger.Filter{
		From: req.Filters.DateFrom,
		To:   req.Filters.DateTo,
	}
	if v := req.Filters.EmployeeID; v != "" && v != "all" {
		f.EmployeeID = v
	}
	if v := req.Filters.Mode; v != "" && v != "all" {
		f.Mode = ledger.Mode(v)
	}
	return f
}

func (h *AdminHandler) attendanceRows(c *gin.Context, f ledger.Filter) ([]report.AttendanceRow, error) {
	records, err := h.Ledger.Query(c.Request.Context(), f)
	if err != nil {
		return nil, err
	}

	users, err := h.userIndex(records)
	if err != nil {
		return nil, err
	}

	rows := make([]report.AttendanceRow, 0, len(records))
	for i := range records {
		rec := &records[i]
		u := users[rec.EmployeeID]
		in := rec.Presence.ClockIn
		var location string
		if rec.Presence.Location != nil {
			location = fmt.Sprintf("%g, %g", rec.Presence.Location.Lat, rec.Presence.Location.Lng)
		}
		rows = append(rows, report.AttendanceRow{
			Name:     u.FullName,
			Email:    u.Email,
			Mode:     string(rec.Presence.Mode),
			ClockIn:  &in,
			ClockOut: rec.Presence.ClockOut,
			Location: location,
		})
	}
	return rows, nil
}

func (h *AdminHandler) sendWorkbook(c *gin.Context, file *excelize.File, filename string) {
	buf, err := file.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// userIndex loads the users referenced by records, keyed by employee id.
func (h *AdminHandler) userIndex(records []ledger.Record) (map[string]models.User, error) {
	ids := make([]uint, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i := range records {
		eid := records[i].EmployeeID
		if seen[eid] {
			continue
		}
		seen[eid] = true
		if n, err := strconv.ParseUint(eid, 10, 64); err == nil {
			ids = append(ids, uint(n))
		}
	}

	index := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return index, nil
	}

	var users []models.User
	if err := h.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		index[users[i].EmployeeID()] = users[i]
	}
	return index, nil
}

func (h *AdminHandler) userNames(records []ledger.Record) (map[string]string, error) {
	index, err := h.userIndex(records)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(index))
	for eid, u := range index {
		names[eid] = u.FullName
	}
	return names, nil
}
