// internal/storage/memory.go
package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/00jmdc-SysEng/Attendance/internal/ledger"
)

// MemoryStore keeps ledger records in process memory. It backs the test
// suite and the STORE_DRIVER=memory dev mode, and enforces the same
// (employee, day, kind) uniqueness the SQL store gets from its index.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]ledger.Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]ledger.Record)}
}

func (m *MemoryStore) Insert(_ context.Context, rec *ledger.Record) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.records {
		if existing.EmployeeID == rec.EmployeeID && existing.Day == rec.Day && existing.Kind == rec.Kind {
			if rec.Kind == ledger.KindLeave {
				return "", ledger.ErrLeaveFiled
			}
			return "", ledger.ErrAlreadyClockedIn
		}
	}

	stored := *rec
	stored.ID = uuid.NewString()
	stored.Presence = clonePresence(rec.Presence)
	stored.Leave = cloneLeave(rec.Leave)
	m.records[stored.ID] = stored
	return stored.ID, nil
}

func (m *MemoryStore) SetClockOut(_ context.Context, id string, t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok || !rec.Open() {
		return ledger.ErrNoOpenSession
	}
	out := t
	rec.Presence.ClockOut = &out
	m.records[id] = rec
	return nil
}

func (m *MemoryStore) FindDay(_ context.Context, employeeID, day string) ([]ledger.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []ledger.Record
	for _, rec := range m.records {
		if rec.EmployeeID == employeeID && rec.Day == day {
			out = append(out, cloneRecord(rec))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *MemoryStore) Query(_ context.Context, f ledger.Filter) ([]ledger.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []ledger.Record
	for _, rec := range m.records {
		if !matches(rec, f) {
			continue
		}
		out = append(out, cloneRecord(rec))
	}
	sortNewestFirst(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *MemoryStore) DeleteByEmployee(_ context.Context, employeeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, rec := range m.records {
		if rec.EmployeeID == employeeID {
			delete(m.records, id)
		}
	}
	return nil
}

func matches(rec ledger.Record, f ledger.Filter) bool {
	if f.EmployeeID != "" && rec.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Kind != "" && rec.Kind != f.Kind {
		return false
	}
	if f.Mode != "" && (rec.Kind != ledger.KindPresence || rec.Presence.Mode != f.Mode) {
		return false
	}
	if f.LeaveType != "" && (rec.Kind != ledger.KindLeave || rec.Leave.Type != f.LeaveType) {
		return false
	}
	if f.From != "" && rec.Day < f.From {
		return false
	}
	if f.To != "" && rec.Day > f.To {
		return false
	}
	return true
}

// sortKey orders presence rows by clock-in and leave rows by creation time,
// matching the SQL store's COALESCE(clock_in, created_at).
func sortKey(rec *ledger.Record) time.Time {
	if rec.Kind == ledger.KindPresence {
		return rec.Presence.ClockIn
	}
	return rec.CreatedAt
}

func sortNewestFirst(records []ledger.Record) {
	sort.Slice(records, func(i, j int) bool {
		return sortKey(&records[i]).After(sortKey(&records[j]))
	})
}

func cloneRecord(rec ledger.Record) ledger.Record {
	rec.Presence = clonePresence(rec.Presence)
	rec.Leave = cloneLeave(rec.Leave)
	return rec
}

func clonePresence(p *ledger.Presence) *ledger.Presence {
	if p == nil {
		return nil
	}
	cp := *p
	if p.ClockOut != nil {
		out := *p.ClockOut
		cp.ClockOut = &out
	}
	if p.Location != nil {
		loc := *p.Location
		cp.Location = &loc
	}
	return &cp
}

func cloneLeave(l *ledger.Leave) *ledger.Leave {
	if l == nil {
		return nil
	}
	cl := *l
	return &cl
}
