// internal/ledger/service.go
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Service enforces the per-day attendance rules: one presence or one leave
// per (employee, day), never both, and clock-out closes the day for good.
// "Today" always comes from the injected server clock, never from callers.
type Service struct {
	store Store
	now   func() time.Time
	log   *slog.Logger
}

func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, now: time.Now, log: log}
}

// WithClock overrides the server clock. Tests use this to pin "today".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type ClockInInput struct {
	EmployeeID string
	Mode       Mode
	Photo      string
	Location   *Location
}

func (s *Service) ClockIn(ctx context.Context, in ClockInInput) (string, error) {
	if in.EmployeeID == "" {
		return "", &ValidationError{Msg: "employee id required"}
	}
	if !in.Mode.Valid() {
		return "", &ValidationError{Msg: fmt.Sprintf("invalid mode %q", in.Mode)}
	}

	now := s.now()
	today := DayKey(now)

	existing, err := s.store.FindDay(ctx, in.EmployeeID, today)
	if err != nil {
		return "", fmt.Errorf("load records for %s: %w", today, err)
	}
	for i := range existing {
		switch existing[i].Kind {
		case KindLeave:
			return "", ErrLeaveFiled
		case KindPresence:
			return "", ErrAlreadyClockedIn
		}
	}

	rec := &Record{
		EmployeeID: in.EmployeeID,
		Day:        today,
		Kind:       KindPresence,
		Presence: &Presence{
			Mode:     in.Mode,
			ClockIn:  now,
			Photo:    in.Photo,
			Location: in.Location,
		},
		CreatedAt: now,
	}

	id, err := s.store.Insert(ctx, rec)
	if err != nil {
		return "", err
	}
	s.log.Info("clock-in", "employee", in.EmployeeID, "mode", in.Mode, "record", id)
	return id, nil
}

func (s *Service) ClockOut(ctx context.Context, employeeID string) error {
	if employeeID == "" {
		return &ValidationError{Msg: "employee id required"}
	}

	now := s.now()
	today := DayKey(now)

	records, err := s.store.FindDay(ctx, employeeID, today)
	if err != nil {
		return fmt.Errorf("load records for %s: %w", today, err)
	}

	var open *Record
	for i := range records {
		if records[i].Open() {
			open = &records[i]
			break
		}
	}
	if open == nil {
		return ErrNoOpenSession
	}

	if err := s.store.SetClockOut(ctx, open.ID, now); err != nil {
		return err
	}
	s.log.Info("clock-out", "employee", employeeID, "record", open.ID)
	return nil
}

type FileLeaveInput struct {
	EmployeeID string
	Type       LeaveType
	Reason     string
}

func (s *Service) FileLeave(ctx context.Context, in FileLeaveInput) (string, error) {
	if in.EmployeeID == "" {
		return "", &ValidationError{Msg: "employee id required"}
	}
	if !in.Type.Valid() {
		return "", &ValidationError{Msg: fmt.Sprintf("invalid leave type %q", in.Type)}
	}

	now := s.now()
	today := DayKey(now)

	existing, err := s.store.FindDay(ctx, in.EmployeeID, today)
	if err != nil {
		return "", fmt.Errorf("load records for %s: %w", today, err)
	}
	for i := range existing {
		switch existing[i].Kind {
		case KindPresence:
			return "", ErrAlreadyClockedIn
		case KindLeave:
			return "", ErrLeaveFiled
		}
	}

	rec := &Record{
		EmployeeID: in.EmployeeID,
		Day:        today,
		Kind:       KindLeave,
		Leave: &Leave{
			Type:   in.Type,
			Reason: in.Reason,
		},
		CreatedAt: now,
	}

	id, err := s.store.Insert(ctx, rec)
	if err != nil {
		return "", err
	}
	s.log.Info("leave filed", "employee", in.EmployeeID, "type", in.Type, "record", id)
	return id, nil
}

// DailyStatus returns the record for (employee, day), or nil when the day is
// empty. Day is a "2006-01-02" key.
func (s *Service) DailyStatus(ctx context.Context, employeeID, day string) (*Record, error) {
	if employeeID == "" {
		return nil, &ValidationError{Msg: "employee id required"}
	}
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return nil, &ValidationError{Msg: fmt.Sprintf("invalid day %q", day)}
	}

	records, err := s.store.FindDay(ctx, employeeID, day)
	if err != nil {
		return nil, fmt.Errorf("load records for %s: %w", day, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// Query is a pure projection over stored records, newest first.
func (s *Service) Query(ctx context.Context, f Filter) ([]Record, error) {
	if f.From != "" {
		if _, err := time.Parse("2006-01-02", f.From); err != nil {
			return nil, &ValidationError{Msg: fmt.Sprintf("invalid date_from %q", f.From)}
		}
	}
	if f.To != "" {
		if _, err := time.Parse("2006-01-02", f.To); err != nil {
			return nil, &ValidationError{Msg: fmt.Sprintf("invalid date_to %q", f.To)}
		}
	}
	if f.Mode != "" && !f.Mode.Valid() {
		return nil, &ValidationError{Msg: fmt.Sprintf("invalid mode %q", f.Mode)}
	}
	if f.LeaveType != "" && !f.LeaveType.Valid() {
		return nil, &ValidationError{Msg: fmt.Sprintf("invalid leave type %q", f.LeaveType)}
	}
	return s.store.Query(ctx, f)
}

// Now exposes the trusted server clock for collaborators that echo it.
func (s *Service) Now() time.Time { return s.now() }
