// internal/ledger/status.go
package ledger

import (
	"context"
	"fmt"
	"time"
)

const (
	StatusPresent    = "present"
	StatusIncomplete = "incomplete"
	StatusAbsent     = "absent"
)

// DayStatus is the calendar projection of one day's record.
type DayStatus struct {
	Status   string     `json:"status"`
	Mode     Mode       `json:"mode,omitempty"`
	ClockIn  *time.Time `json:"clock_in,omitempty"`
	ClockOut *time.Time `json:"clock_out,omitempty"`
}

// StatusOf maps a record to its calendar status. A nil record is an absent
// day.
func StatusOf(rec *Record) string {
	switch {
	case rec == nil:
		return StatusAbsent
	case rec.Kind == KindLeave:
		return "leave-" + string(rec.Leave.Type)
	case rec.Open():
		return StatusIncomplete
	default:
		return StatusPresent
	}
}

// Calendar returns the month's records keyed by day. Days with no record are
// omitted; clients render those as absent.
func (s *Service) Calendar(ctx context.Context, employeeID string, year, month int) (map[string]DayStatus, error) {
	if employeeID == "" {
		return nil, &ValidationError{Msg: "employee id required"}
	}
	if month < 1 || month > 12 {
		return nil, &ValidationError{Msg: fmt.Sprintf("invalid month %d", month)}
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)

	records, err := s.store.Query(ctx, Filter{
		EmployeeID: employeeID,
		From:       DayKey(first),
		To:         DayKey(last),
	})
	if err != nil {
		return nil, fmt.Errorf("load month %04d-%02d: %w", year, month, err)
	}

	calendar := make(map[string]DayStatus, len(records))
	for i := range records {
		rec := &records[i]
		ds := DayStatus{Status: StatusOf(rec)}
		if rec.Kind == KindPresence {
			ds.Mode = rec.Presence.Mode
			in := rec.Presence.ClockIn
			ds.ClockIn = &in
			ds.ClockOut = rec.Presence.ClockOut
		}
		calendar[rec.Day] = ds
	}
	return calendar, nil
}
