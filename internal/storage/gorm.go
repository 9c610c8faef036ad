// internal/storage/gorm.go
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/00jmdc-SysEng/Attendance/internal/ledger"
	"github.com/00jmdc-SysEng/Attendance/internal/models"
)

// GormStore persists ledger records in the attendance_logs table. Requires
// the DB to be opened with TranslateError so duplicate-key violations map to
// gorm.ErrDuplicatedKey regardless of driver.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Insert(ctx context.Context, rec *ledger.Record) (string, error) {
	row, err := toRow(rec)
	if err != nil {
		return "", err
	}
	row.ID = uuid.NewString()

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the check-then-act race; the unique index caught it.
			if rec.Kind == ledger.KindLeave {
				return "", ledger.ErrLeaveFiled
			}
			return "", ledger.ErrAlreadyClockedIn
		}
		return "", fmt.Errorf("insert attendance log: %w", err)
	}
	return row.ID, nil
}

func (s *GormStore) SetClockOut(ctx context.Context, id string, t time.Time) error {
	res := s.db.WithContext(ctx).
		Model(&models.AttendanceLog{}).
		Where("id = ? AND clock_out IS NULL", id).
		Update("clock_out", t)
	if res.Error != nil {
		return fmt.Errorf("set clock-out: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ledger.ErrNoOpenSession
	}
	return nil
}

func (s *GormStore) FindDay(ctx context.Context, employeeID, day string) ([]ledger.Record, error) {
	var rows []models.AttendanceLog
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND day = ?", employeeID, day).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find day %s: %w", day, err)
	}
	return fromRows(rows)
}

func (s *GormStore) Query(ctx context.Context, f ledger.Filter) ([]ledger.Record, error) {
	q := s.db.WithContext(ctx).Model(&models.AttendanceLog{})

	if f.EmployeeID != "" {
		q = q.Where("employee_id = ?", f.EmployeeID)
	}
	if f.Kind != "" {
		q = q.Where("kind = ?", string(f.Kind))
	}
	if f.Mode != "" {
		q = q.Where("mode = ?", string(f.Mode))
	}
	if f.LeaveType != "" {
		q = q.Where("leave_type = ?", string(f.LeaveType))
	}
	if f.From != "" {
		q = q.Where("day >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("day <= ?", f.To)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var rows []models.AttendanceLog
	if err := q.Order("COALESCE(clock_in, created_at) DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query attendance logs: %w", err)
	}
	return fromRows(rows)
}

func (s *GormStore) DeleteByEmployee(ctx context.Context, employeeID string) error {
	err := s.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&models.AttendanceLog{}).Error
	if err != nil {
		return fmt.Errorf("delete attendance logs: %w", err)
	}
	return nil
}

func toRow(rec *ledger.Record) (*models.AttendanceLog, error) {
	row := &models.AttendanceLog{
		EmployeeID: rec.EmployeeID,
		Day:        rec.Day,
		Kind:       string(rec.Kind),
		CreatedAt:  rec.CreatedAt,
	}

	switch rec.Kind {
	case ledger.KindPresence:
		mode := string(rec.Presence.Mode)
		row.Mode = &mode
		in := rec.Presence.ClockIn
		row.ClockIn = &in
		row.ClockOut = rec.Presence.ClockOut
		if rec.Presence.Photo != "" {
			photo := rec.Presence.Photo
			row.Photo = &photo
		}
		if rec.Presence.Location != nil {
			raw, err := json.Marshal(rec.Presence.Location)
			if err != nil {
				return nil, fmt.Errorf("encode location: %w", err)
			}
			loc := string(raw)
			row.Location = &loc
		}
	case ledger.KindLeave:
		lt := string(rec.Leave.Type)
		row.LeaveType = &lt
		if rec.Leave.Reason != "" {
			reason := rec.Leave.Reason
			row.LeaveReason = &reason
		}
	default:
		return nil, fmt.Errorf("unknown record kind %q", rec.Kind)
	}
	return row, nil
}

func fromRow(row *models.AttendanceLog) (ledger.Record, error) {
	rec := ledger.Record{
		ID:         row.ID,
		EmployeeID: row.EmployeeID,
		Day:        row.Day,
		Kind:       ledger.Kind(row.Kind),
		CreatedAt:  row.CreatedAt,
	}

	switch rec.Kind {
	case ledger.KindPresence:
		p := &ledger.Presence{ClockOut: row.ClockOut}
		if row.Mode != nil {
			p.Mode = ledger.Mode(*row.Mode)
		}
		if row.ClockIn != nil {
			p.ClockIn = *row.ClockIn
		}
		if row.Photo != nil {
			p.Photo = *row.Photo
		}
		if row.Location != nil {
			var loc ledger.Location
			if err := json.Unmarshal([]byte(*row.Location), &loc); err == nil {
				p.Location = &loc
			}
		}
		rec.Presence = p
	case ledger.KindLeave:
		l := &ledger.Leave{}
		if row.LeaveType != nil {
			l.Type = ledger.LeaveType(*row.LeaveType)
		}
		if row.LeaveReason != nil {
			l.Reason = *row.LeaveReason
		}
		rec.Leave = l
	default:
		return rec, fmt.Errorf("unknown record kind %q in row %s", row.Kind, row.ID)
	}
	return rec, nil
}

func fromRows(rows []models.AttendanceLog) ([]ledger.Record, error) {
	out := make([]ledger.Record, 0, len(rows))
	for i := range rows {
		rec, err := fromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
