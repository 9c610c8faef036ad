package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/00jmdc-SysEng/Attendance/internal/ledger"
	"github.com/00jmdc-SysEng/Attendance/internal/logging"
	"github.com/00jmdc-SysEng/Attendance/internal/storage"
)

func newService(t *testing.T, now time.Time) (*ledger.Service, *clock) {
	t.Helper()
	clk := &clock{now: now}
	svc := ledger.NewService(storage.NewMemoryStore(), logging.New("test")).WithClock(clk.Now)
	return svc, clk
}

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time          { return c.now }
func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

var day1 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

func TestClockInCreatesOpenPresence(t *testing.T) {
	svc, _ := newService(t, day1)
	ctx := context.Background()

	id, err := svc.ClockIn(ctx, ledger.ClockInInput{
		EmployeeID: "7",
		Mode:       ledger.ModeOnsite,
		Location:   &ledger.Location{Lat: 14.6, Lng: 121.0},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	rec, err := svc.DailyStatus(ctx, "7", ledger.DayKey(day1))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, ledger.KindPresence, rec.Kind)
	assert.True(t, rec.Open())
	assert.Equal(t, day1, rec.Presence.ClockIn)
	assert.Equal(t, ledger.StatusIncomplete, ledger.StatusOf(rec))
}

func TestClockInTwiceSameDayConflicts(t *testing.T) {
	svc, _ := newService(t, day1)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, ledger.ClockInInput{EmployeeID: "7", Mode: ledger.ModeOnsite})
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, ledger.ClockInInput{EmployeeID: "7", Mode: ledger.ModeRemote})
	var conflict *ledger.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "already clocked in today", conflict.Msg)

	// Ledger still holds exactly one presence record.
	records, err := svc.Query(ctx, ledger.Filter{EmployeeID: "7"})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestClockInAfterClockOutStillConflicts(t *testing.T) {
	svc, clk := newService(t, day1)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, ledger.ClockInInput{EmployeeID: "7", Mode: ledger.ModeOnsite})
	require.NoError(t, err)

	clk.Advance(8 * time.Hour)
	require.NoError(t, svc.ClockOut(ctx, "7"))

	// No second shift: the day is closed.
	_, err = svc.ClockIn(ctx, ledger.ClockInInput{EmployeeID: "7", Mode: ledger.ModeOnsite})
	var conflict *ledger.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestClockOutSetsTimestampOnce(t *testing.T) {
	svc, clk := newService(t, day1)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, ledger.ClockInInput{EmployeeID: "7", Mode: ledger.ModeOnsite})
	require.NoError(t, err)

	clk.Advance(8 * time.Hour)
	out := clk.Now()
	require.NoError(t, svc.ClockOut(ctx, "7"))

	rec, err := svc.DailyStatus(ctx, "7", ledger.DayKey(day1))
	require.NoError(t, err)
	require.NotNil(t, rec.Presence.ClockOut)
	assert.Equal(t, day1, rec.Presence.ClockIn)
	assert.Equal(t, out, *rec.Presence.ClockOut)
	assert.Equal(t, ledger.StatusPresent, ledger.StatusOf(rec))

	// Second clock-out finds no open session.
	err = svc.ClockOut(ctx, "7")
	var notFound *ledger.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestClockOutWithoutClockIn(t *testing.T) {
	svc, _ := newService(t, day1)

	err := svc.ClockOut(context.Background(), "7")
	var notFound *ledger.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "no active clock-in found", notFound.Msg)
}

func TestFileLeaveThenClockInConflicts(t *testing.T) {
	svc, _ := newService(t, day1)
	ctx := context.Background()

	_, err := svc.FileLeave(ctx, ledger.FileLeaveInput{EmployeeID: "7", Type: ledger.LeaveSick, Reason: "flu"})
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, ledger.ClockInInput{EmployeeID: "7", Mode: ledger.ModeOnsite})
	var conflict *ledger.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "leave already filed today", conflict.Msg)
}

func TestClockInThenFileLeaveConflicts(t *testing.T) {
	svc, _ := newService(t, day1)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, ledger.ClockInInput{EmployeeID: "7", Mode: ledger.ModeRemote})
	require.NoError(t, err)

	_, err = svc.FileLeave(ctx, ledger.FileLeaveInput{EmployeeID: "7", Type: ledger.LeaveVacation})
	var conflict *ledger.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "already clocked in today", conflict.Msg)
}

func TestFileLeaveTwiceConflicts(t *testing.T) {
	svc, _ := newService(t, day1)
	ctx := context.Background()

	_, err := svc.FileLeave(ctx, ledger.FileLeaveInput{EmployeeID: "7", Type: ledger.LeaveOfficial})
	require.NoError(t, err)

	_, err = svc.FileLeave(ctx, ledger.FileLeaveInput{EmployeeID: "7", Type: ledger.LeaveEmergency})
	var conflict *ledger.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "leave already filed today", conflict.Msg)
}

func TestFileLeaveRecordsTypeAndReason(t *testing.T) {
	svc, _ := newService(t, day1)
	ctx := context.Background()

	_, err := svc.FileLeave(ctx, ledger.FileLeaveInput{EmployeeID: "7", Type: ledger.LeaveSick, Reason: "flu"})
	require.NoError(t, err)

	rec, err := svc.DailyStatus(ctx, "7", ledger.DayKey(day1))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, ledger.KindLeave, rec.Kind)
	assert.Equal(t, ledger.LeaveSick, rec.Leave.Type)
	assert.Equal(t, "flu", rec.Leave.Reason)
	assert.Equal(t, "leave-sick", ledger.StatusOf(rec))
}

func TestFileLeaveInvalidType(t *testing.T) {
	svc, _ := newService(t, day1)
	ctx := context.Background()

	_, err := svc.FileLeave(ctx, ledger.FileLeaveInput{EmployeeID: "7", Type: "holiday"})
	var validation *ledger.ValidationError
	require.ErrorAs(t, err, &validation)

	// No record was created.
	rec, err := svc.DailyStatus(ctx, "7", ledger.DayKey(day1))
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestClockInInvalidMode(t *testing.T) {
	svc, _ := newService(t, day1)

	_, err := svc.ClockIn(context.Background(), ledger.ClockInInput{EmployeeID: "7", Mode: "hybrid"})
	var validation *ledger.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestDailyStatusEmptyDay(t *testing.T) {
	svc, _ := newService(t, day1)

	rec, err := svc.DailyStatus(context.Background(), "7", "2025-03-01")
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, ledger.StatusAbsent, ledger.StatusOf(rec))
}

func TestNextDayStartsEmpty(t *testing.T) {
	svc, clk := newService(t, day1)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, ledger.ClockInInput{EmployeeID: "7", Mode: ledger.ModeOnsite})
	require.NoError(t, err)

	clk.Advance(24 * time.Hour)
	_, err = svc.ClockIn(ctx, ledger.ClockInInput{EmployeeID: "7", Mode: ledger.ModeOnsite})
	require.NoError(t, err)
}

func TestEmployeesAreIndependent(t *testing.T) {
	svc, _ := newService(t, day1)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, ledger.ClockInInput{EmployeeID: "7", Mode: ledger.ModeOnsite})
	require.NoError(t, err)
	_, err = svc.FileLeave(ctx, ledger.FileLeaveInput{EmployeeID: "8", Type: ledger.LeaveSick})
	require.NoError(t, err)

	err = svc.ClockOut(ctx, "8")
	var notFound *ledger.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestQueryFilters(t *testing.T) {
	svc, clk := newService(t, day1)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, ledger.ClockInInput{EmployeeID: "7", Mode: ledger.ModeOnsite})
	require.NoError(t, err)
	_, err = svc.FileLeave(ctx, ledger.FileLeaveInput{EmployeeID: "8", Type: ledger.LeaveSick})
	require.NoError(t, err)

	clk.Advance(24 * time.Hour)
	_, err = svc.ClockIn(ctx, ledger.ClockInInput{EmployeeID: "7", Mode: ledger.ModeRemote})
	require.NoError(t, err)

	remote, err := svc.Query(ctx, ledger.Filter{Mode: ledger.ModeRemote})
	require.NoError(t, err)
	require.Len(t, remote, 1)
	assert.Equal(t, ledger.ModeRemote, remote[0].Presence.Mode)

	leaves, err := svc.Query(ctx, ledger.Filter{Kind: ledger.KindLeave})
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, "8", leaves[0].EmployeeID)

	// Newest first for the same employee.
	mine, err := svc.Query(ctx, ledger.Filter{EmployeeID: "7"})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, ledger.ModeRemote, mine[0].Presence.Mode)
	assert.Equal(t, ledger.ModeOnsite, mine[1].Presence.Mode)

	// Day-range bound.
	firstDay, err := svc.Query(ctx, ledger.Filter{From: ledger.DayKey(day1), To: ledger.DayKey(day1)})
	require.NoError(t, err)
	assert.Len(t, firstDay, 2)
}

func TestQueryInvalidRange(t *testing.T) {
	svc, _ := newService(t, day1)

	_, err := svc.Query(context.Background(), ledger.Filter{From: "10-03-2025"})
	var validation *ledger.ValidationError
	require.ErrorAs(t, err, &validation)
}
