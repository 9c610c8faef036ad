// internal/ledger/record.go
package ledger

import "time"

type Kind string

const (
	KindPresence Kind = "presence"
	KindLeave    Kind = "leave"
)

type Mode string

const (
	ModeOnsite Mode = "onsite"
	ModeRemote Mode = "remote"
)

func (m Mode) Valid() bool {
	return m == ModeOnsite || m == ModeRemote
}

type LeaveType string

const (
	LeaveSick      LeaveType = "sick"
	LeaveVacation  LeaveType = "vacation"
	LeaveEmergency LeaveType = "emergency"
	LeaveOfficial  LeaveType = "official"
)

func (lt LeaveType) Valid() bool {
	switch lt {
	case LeaveSick, LeaveVacation, LeaveEmergency, LeaveOfficial:
		return true
	}
	return false
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Presence is the worked-attendance variant of a record. ClockOut stays nil
// until the employee clocks out; it is set at most once.
type Presence struct {
	Mode     Mode       `json:"mode"`
	ClockIn  time.Time  `json:"clock_in"`
	ClockOut *time.Time `json:"clock_out,omitempty"`
	Photo    string     `json:"photo,omitempty"`
	Location *Location  `json:"location,omitempty"`
}

// Leave is the filed-absence variant of a record.
type Leave struct {
	Type   LeaveType `json:"leave_type"`
	Reason string    `json:"reason,omitempty"`
}

// Record is one ledger entry for a single (employee, day). Exactly one of
// Presence or Leave is non-nil, selected by Kind.
type Record struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Day        string    `json:"day"`
	Kind       Kind      `json:"kind"`
	Presence   *Presence `json:"presence,omitempty"`
	Leave      *Leave    `json:"leave,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// DayKey is the server-clock calendar date used for per-day uniqueness.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Open reports whether the record is a presence entry with no clock-out yet.
func (r *Record) Open() bool {
	return r.Kind == KindPresence && r.Presence != nil && r.Presence.ClockOut == nil
}
