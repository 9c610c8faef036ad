// internal/handlers/attendance_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/00jmdc-SysEng/Attendance/internal/ledger"
)

type AttendanceHandler struct {
	Ledger *ledger.Service
}

func NewAttendanceHandler(svc *ledger.Service) *AttendanceHandler {
	return &AttendanceHandler{Ledger: svc}
}

// employeeID pulls the caller identity set by the auth middleware. The body
// never carries a user id; the token is the session context.
func employeeID(c *gin.Context) string {
	return strconv.FormatUint(uint64(c.GetUint("user_id")), 10)
}

type ClockInReq struct {
	Mode     string           `json:"mode" binding:"required"`
	Photo    string           `json:"photo"`
	Location *ledger.Location `json:"location"`
}

func (h *AttendanceHandler) ClockIn(c *gin.Context) {
	var req ClockInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	id, err := h.Ledger.ClockIn(c.Request.Context(), ledger.ClockInInput{
		EmployeeID: employeeID(c),
		Mode:       ledger.Mode(req.Mode),
		Photo:      req.Photo,
		Location:   req.Location,
	})
	if err != nil {
		ledgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "ok", "record_id": id})
}

func (h *AttendanceHandler) ClockOut(c *gin.Context) {
	if err := h.Ledger.ClockOut(c.Request.Context(), employeeID(c)); err != nil {
		ledgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "success": true})
}

type FileLeaveReq struct {
	LeaveType string `json:"leave_type" binding:"required"`
	Reason    string `json:"reason"`
}

func (h *AttendanceHandler) FileLeave(c *gin.Context) {
	var req FileLeaveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	id, err := h.Ledger.FileLeave(c.Request.Context(), ledger.FileLeaveInput{
		EmployeeID: employeeID(c),
		Type:       ledger.LeaveType(req.LeaveType),
		Reason:     req.Reason,
	})
	if err != nil {
		ledgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "ok", "record_id": id})
}

// MyLogs returns the caller's records, newest first.
func (h *AttendanceHandler) MyLogs(c *gin.Context) {
	records, err := h.Ledger.Query(c.Request.Context(), ledger.Filter{
		EmployeeID: employeeID(c),
		Limit:      100,
	})
	if err != nil {
		ledgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "logs": records})
}

// Calendar maps each day of the month to its attendance status. Days absent
// from the map carry no record.
func (h *AttendanceHandler) Calendar(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	calendar, err := h.Ledger.Calendar(c.Request.Context(), employeeID(c), year, month)
	if err != nil {
		ledgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"calendar": calendar})
}

// ServerTime echoes the trusted clock so clients never trust their own.
func (h *AttendanceHandler) ServerTime(c *gin.Context) {
	now := h.Ledger.Now()
	c.JSON(http.StatusOK, gin.H{
		"now": now.Format(time.RFC3339),
		"day": ledger.DayKey(now),
	})
}
