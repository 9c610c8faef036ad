// internal/models/attendance.go
package models

import "time"

// AttendanceLog is the flat attendance_logs row the gorm store maps to and
// from the ledger's tagged record. The composite unique index closes the
// check-then-act race: a duplicate (employee, day, kind) insert fails at the
// database even when two requests pass the service's precondition read.
type AttendanceLog struct {
	ID         string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	EmployeeID string `gorm:"index;not null;uniqueIndex:idx_employee_day_kind" json:"employee_id"`
	Day        string `gorm:"type:varchar(10);not null;uniqueIndex:idx_employee_day_kind" json:"day"`
	Kind       string `gorm:"type:varchar(10);not null;uniqueIndex:idx_employee_day_kind" json:"kind"`

	Mode     *string    `gorm:"type:varchar(10)" json:"mode,omitempty"`
	ClockIn  *time.Time `gorm:"index" json:"clock_in,omitempty"`
	ClockOut *time.Time `json:"clock_out,omitempty"`
	Photo    *string    `gorm:"type:text" json:"photo,omitempty"`
	Location *string    `gorm:"type:text" json:"location,omitempty"`

	LeaveType   *string `gorm:"type:varchar(20)" json:"leave_type,omitempty"`
	LeaveReason *string `gorm:"type:text" json:"leave_reason,omitempty"`

	CreatedAt time.Time `gorm:"index;not null" json:"created_at"`
}

func (AttendanceLog) TableName() string { return "attendance_logs" }
