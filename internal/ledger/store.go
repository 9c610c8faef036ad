// internal/ledger/store.go
package ledger

import (
	"context"
	"time"
)

// Filter narrows a Query. Zero values mean "no constraint". From and To are
// inclusive day keys ("2006-01-02").
type Filter struct {
	EmployeeID string
	Kind       Kind
	Mode       Mode
	LeaveType  LeaveType
	From       string
	To         string
	Limit      int
}

// Store is the persistence contract the service runs against. Insert must
// reject a row that would break the (employee, day, kind) uniqueness the
// service checked for, so a lost check-then-act race still surfaces as a
// conflict. SetClockOut only transitions clock_out from absent to a value;
// a second call finds nothing to update.
type Store interface {
	Insert(ctx context.Context, rec *Record) (string, error)
	SetClockOut(ctx context.Context, id string, t time.Time) error
	FindDay(ctx context.Context, employeeID, day string) ([]Record, error)
	Query(ctx context.Context, f Filter) ([]Record, error)
	DeleteByEmployee(ctx context.Context, employeeID string) error
}
