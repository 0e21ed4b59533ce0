package timeledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/salonops/timecore-backend-go/internal/domain/timeledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testStaffID     = "0191b2c3-0000-7000-8000-0000000000aa"
	standardMinutes = 540
)

// fakeLedgerRepo mirrors the repository's conditional-update contracts: each
// guarded mutation re-checks stored state before applying, the way the SQL
// statements do.
type fakeLedgerRepo struct {
	entries map[string]timeledger.Entry
	exits   map[string]timeledger.ExitInterval
	nextID  int

	// Hooks interleave a concurrent write between the service's read and
	// the guarded mutation.
	beforeFinalize func()
	beforeAddExit  func()
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		entries: make(map[string]timeledger.Entry),
		exits:   make(map[string]timeledger.ExitInterval),
	}
}

func (f *fakeLedgerRepo) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeLedgerRepo) withExits(e timeledger.Entry) timeledger.Entry {
	e.Exits = nil
	for _, x := range f.exits {
		if x.EntryID == e.ID {
			e.Exits = append(e.Exits, x)
		}
	}
	return e
}

func (f *fakeLedgerRepo) Create(_ context.Context, entry timeledger.Entry) (timeledger.Entry, error) {
	for _, e := range f.entries {
		if e.StaffID == entry.StaffID && e.Date.Equal(entry.Date) {
			return timeledger.Entry{}, timeledger.ErrAlreadyCheckedIn
		}
	}
	entry.ID = f.newID("entry")
	f.entries[entry.ID] = entry
	return entry, nil
}

func (f *fakeLedgerRepo) GetByID(_ context.Context, id string) (timeledger.Entry, error) {
	e, ok := f.entries[id]
	if !ok {
		return timeledger.Entry{}, timeledger.ErrEntryNotFound
	}
	return f.withExits(e), nil
}

func (f *fakeLedgerRepo) GetByStaffAndDate(_ context.Context, staffID string, date time.Time) (*timeledger.Entry, error) {
	for _, e := range f.entries {
		if e.StaffID == staffID && e.Date.Equal(date) {
			found := f.withExits(e)
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeLedgerRepo) SetCheckIn(_ context.Context, id string, checkIn time.Time) (timeledger.Entry, error) {
	e, ok := f.entries[id]
	if !ok {
		return timeledger.Entry{}, timeledger.ErrEntryNotFound
	}
	if e.CheckIn != nil {
		return timeledger.Entry{}, timeledger.ErrAlreadyCheckedIn
	}
	e.CheckIn = &checkIn
	e.Status = timeledger.StatusPresent
	f.entries[id] = e
	return f.withExits(e), nil
}

func (f *fakeLedgerRepo) FinalizeCheckOut(_ context.Context, entry timeledger.Entry) (timeledger.Entry, error) {
	if f.beforeFinalize != nil {
		f.beforeFinalize()
	}
	stored, ok := f.entries[entry.ID]
	if !ok {
		return timeledger.Entry{}, timeledger.ErrEntryNotFound
	}
	if stored.CheckIn == nil {
		return timeledger.Entry{}, timeledger.ErrNotCheckedIn
	}
	if stored.CheckOut != nil {
		return timeledger.Entry{}, timeledger.ErrAlreadyCheckedOut
	}
	storedExits := 0
	for _, x := range f.exits {
		if x.EntryID != entry.ID {
			continue
		}
		if x.EndTime == nil {
			return timeledger.Entry{}, timeledger.ErrExitStillOpen
		}
		storedExits++
	}
	if storedExits != len(entry.Exits) {
		return timeledger.Entry{}, timeledger.ErrEntryModified
	}
	stored.CheckOut = entry.CheckOut
	stored.TotalWorkedMinutes = entry.TotalWorkedMinutes
	stored.OvertimeMinutes = entry.OvertimeMinutes
	stored.StandardMinutes = entry.StandardMinutes
	stored.IsComplete = entry.IsComplete
	stored.Status = entry.Status
	f.entries[entry.ID] = stored
	return f.withExits(stored), nil
}

func (f *fakeLedgerRepo) List(_ context.Context, filter timeledger.EntryFilter) ([]timeledger.Entry, int64, error) {
	var out []timeledger.Entry
	for _, e := range f.entries {
		if filter.StaffID != nil && e.StaffID != *filter.StaffID {
			continue
		}
		out = append(out, f.withExits(e))
	}
	return out, int64(len(out)), nil
}

func (f *fakeLedgerRepo) SumOvertimeMinutes(_ context.Context, staffID string, month, year int) (int, error) {
	total := 0
	for _, e := range f.entries {
		if e.StaffID != staffID || e.CheckOut == nil {
			continue
		}
		if int(e.Date.Month()) == month && e.Date.Year() == year {
			total += e.OvertimeMinutes
		}
	}
	return total, nil
}

func (f *fakeLedgerRepo) AddExit(_ context.Context, exit timeledger.ExitInterval) (timeledger.ExitInterval, error) {
	if f.beforeAddExit != nil {
		f.beforeAddExit()
	}
	parent, ok := f.entries[exit.EntryID]
	if !ok {
		return timeledger.ExitInterval{}, timeledger.ErrEntryNotFound
	}
	if parent.CheckOut != nil {
		return timeledger.ExitInterval{}, timeledger.ErrAlreadyCheckedOut
	}
	if parent.CheckIn == nil {
		return timeledger.ExitInterval{}, timeledger.ErrNotCheckedIn
	}
	for _, x := range f.exits {
		if x.EntryID == exit.EntryID && x.EndTime == nil {
			return timeledger.ExitInterval{}, timeledger.ErrExitAlreadyOpen
		}
	}
	f.exits[exit.ID] = exit
	return exit, nil
}

func (f *fakeLedgerRepo) GetExitByID(_ context.Context, id string) (timeledger.ExitInterval, error) {
	x, ok := f.exits[id]
	if !ok {
		return timeledger.ExitInterval{}, timeledger.ErrExitNotFound
	}
	return x, nil
}

func (f *fakeLedgerRepo) CloseExit(_ context.Context, id string, endTime time.Time, durationMinutes int) (timeledger.ExitInterval, error) {
	x, ok := f.exits[id]
	if !ok {
		return timeledger.ExitInterval{}, timeledger.ErrExitNotFound
	}
	if x.EndTime != nil {
		return timeledger.ExitInterval{}, timeledger.ErrExitAlreadyClosed
	}
	x.EndTime = &endTime
	x.DurationMinutes = durationMinutes
	f.exits[id] = x
	return x, nil
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 6, 10, hour, minute, 0, 0, time.UTC)
}

func newTestService() (timeledger.Service, *fakeLedgerRepo) {
	repo := newFakeLedgerRepo()
	return NewTimeLedgerService(repo, standardMinutes), repo
}

func mustCheckIn(t *testing.T, svc timeledger.Service, now time.Time) timeledger.EntryResponse {
	t.Helper()
	resp, err := svc.CheckIn(context.Background(), timeledger.CheckInRequest{StaffID: testStaffID}, now)
	require.NoError(t, err)
	return resp
}

func TestCheckIn_CreatesEntry(t *testing.T) {
	svc, _ := newTestService()

	resp := mustCheckIn(t, svc, at(9, 0))

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, testStaffID, resp.StaffID)
	assert.Equal(t, "2024-06-10", resp.Date)
	require.NotNil(t, resp.CheckIn)
	assert.Equal(t, "2024-06-10T09:00:00Z", *resp.CheckIn)
	assert.Nil(t, resp.CheckOut)
	assert.Equal(t, string(timeledger.StatusPresent), resp.Status)
}

func TestCheckIn_SameDayTwice(t *testing.T) {
	svc, _ := newTestService()

	mustCheckIn(t, svc, at(9, 0))

	_, err := svc.CheckIn(context.Background(), timeledger.CheckInRequest{StaffID: testStaffID}, at(9, 5))
	assert.ErrorIs(t, err, timeledger.ErrAlreadyCheckedIn)
}

func TestCheckIn_FillsPlaceholder(t *testing.T) {
	svc, repo := newTestService()

	// Pre-created day without a check-in, e.g. a scheduled leave row.
	repo.entries["entry-leave"] = timeledger.Entry{
		ID:      "entry-leave",
		StaffID: testStaffID,
		Date:    time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Status:  timeledger.StatusAbsent,
	}

	resp := mustCheckIn(t, svc, at(9, 0))

	assert.Equal(t, "entry-leave", resp.ID)
	require.NotNil(t, resp.CheckIn)
	assert.Equal(t, string(timeledger.StatusPresent), resp.Status)
}

func TestCheckIn_NextDayStartsFresh(t *testing.T) {
	svc, _ := newTestService()

	first := mustCheckIn(t, svc, at(9, 0))
	second := mustCheckIn(t, svc, at(9, 0).AddDate(0, 0, 1))

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "2024-06-11", second.Date)
}

func TestCheckIn_RejectsBadStaffID(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CheckIn(context.Background(), timeledger.CheckInRequest{StaffID: "not-a-uuid"}, at(9, 0))
	assert.Error(t, err)
}

func TestCheckOut_FinalizesTotals(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	entry := mustCheckIn(t, svc, at(9, 0))

	exit, err := svc.StartExit(ctx, timeledger.StartExitRequest{EntryID: entry.ID, Reason: "lunch"}, at(13, 0))
	require.NoError(t, err)
	_, err = svc.EndExit(ctx, exit.ID, at(13, 30))
	require.NoError(t, err)

	resp, err := svc.CheckOut(ctx, entry.ID, at(19, 0))
	require.NoError(t, err)

	assert.Equal(t, 570, resp.TotalWorkedMinutes)
	assert.Equal(t, 30, resp.OvertimeMinutes)
	assert.Equal(t, standardMinutes, resp.StandardMinutes)
	assert.True(t, resp.IsComplete)
	assert.Equal(t, string(timeledger.StatusPresent), resp.Status)
	require.NotNil(t, resp.CheckOut)
	assert.Equal(t, "2024-06-10T19:00:00Z", *resp.CheckOut)
	require.Len(t, resp.Exits, 1)
	assert.Equal(t, 30, resp.Exits[0].DurationMinutes)
}

func TestCheckOut_ShortDayIncomplete(t *testing.T) {
	svc, _ := newTestService()

	entry := mustCheckIn(t, svc, at(9, 0))

	resp, err := svc.CheckOut(context.Background(), entry.ID, at(14, 0))
	require.NoError(t, err)

	assert.Equal(t, 300, resp.TotalWorkedMinutes)
	assert.Equal(t, 0, resp.OvertimeMinutes)
	assert.False(t, resp.IsComplete)
	assert.Equal(t, string(timeledger.StatusIncomplete), resp.Status)
}

func TestCheckOut_Guards(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	entry := mustCheckIn(t, svc, at(9, 0))

	t.Run("with open exit", func(t *testing.T) {
		_, err := svc.StartExit(ctx, timeledger.StartExitRequest{EntryID: entry.ID, Reason: "bank"}, at(11, 0))
		require.NoError(t, err)

		_, err = svc.CheckOut(ctx, entry.ID, at(18, 0))
		assert.ErrorIs(t, err, timeledger.ErrExitStillOpen)
	})

	t.Run("not after check-in", func(t *testing.T) {
		other := mustCheckIn(t, svc, at(9, 0).AddDate(0, 0, 1))
		_, err := svc.CheckOut(ctx, other.ID, at(9, 0).AddDate(0, 0, 1))
		assert.ErrorIs(t, err, timeledger.ErrCheckOutNotAfterCheckIn)
	})

	t.Run("twice", func(t *testing.T) {
		other := mustCheckIn(t, svc, at(9, 0).AddDate(0, 0, 2))
		_, err := svc.CheckOut(ctx, other.ID, at(18, 0).AddDate(0, 0, 2))
		require.NoError(t, err)

		_, err = svc.CheckOut(ctx, other.ID, at(19, 0).AddDate(0, 0, 2))
		assert.ErrorIs(t, err, timeledger.ErrAlreadyCheckedOut)
	})

	t.Run("missing entry", func(t *testing.T) {
		_, err := svc.CheckOut(ctx, "entry-999", at(18, 0))
		assert.ErrorIs(t, err, timeledger.ErrEntryNotFound)
	})
}

func TestCheckOut_ExitAddedDuringCheckOut(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	entry := mustCheckIn(t, svc, at(9, 0))

	// An exit cycle lands between the check-out's read and its write, so
	// the totals it computed no longer cover the stored exit set.
	repo.beforeFinalize = func() {
		repo.beforeFinalize = nil
		end := at(13, 30)
		repo.exits["exit-race"] = timeledger.ExitInterval{
			ID:              "exit-race",
			EntryID:         entry.ID,
			StartTime:       at(13, 0),
			EndTime:         &end,
			DurationMinutes: 30,
			Reason:          "lunch",
		}
	}

	_, err := svc.CheckOut(ctx, entry.ID, at(19, 0))
	assert.ErrorIs(t, err, timeledger.ErrEntryModified)

	// A retry re-reads the entry and lands totals that account for the exit.
	resp, err := svc.CheckOut(ctx, entry.ID, at(19, 0))
	require.NoError(t, err)
	assert.Equal(t, 570, resp.TotalWorkedMinutes)
	assert.Equal(t, 30, resp.OvertimeMinutes)
	require.Len(t, resp.Exits, 1)
}

func TestExitLifecycle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	entry := mustCheckIn(t, svc, at(9, 0))

	exit, err := svc.StartExit(ctx, timeledger.StartExitRequest{EntryID: entry.ID, Reason: "supply run"}, at(11, 0))
	require.NoError(t, err)
	assert.NotEmpty(t, exit.ID)
	assert.Equal(t, entry.ID, exit.EntryID)
	assert.Equal(t, "supply run", exit.Reason)
	assert.Nil(t, exit.EndTime)
	assert.Equal(t, 0, exit.DurationMinutes)

	// Only one exit may be open at a time.
	_, err = svc.StartExit(ctx, timeledger.StartExitRequest{EntryID: entry.ID, Reason: "bank"}, at(11, 10))
	assert.ErrorIs(t, err, timeledger.ErrExitAlreadyOpen)

	closed, err := svc.EndExit(ctx, exit.ID, at(11, 45))
	require.NoError(t, err)
	require.NotNil(t, closed.EndTime)
	assert.Equal(t, 45, closed.DurationMinutes)

	_, err = svc.EndExit(ctx, exit.ID, at(12, 0))
	assert.ErrorIs(t, err, timeledger.ErrExitAlreadyClosed)

	// A closed exit frees the slot for the next one.
	_, err = svc.StartExit(ctx, timeledger.StartExitRequest{EntryID: entry.ID, Reason: "bank"}, at(15, 0))
	require.NoError(t, err)
}

func TestStartExit_Guards(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	entry := mustCheckIn(t, svc, at(9, 0))

	_, err := svc.StartExit(ctx, timeledger.StartExitRequest{EntryID: entry.ID, Reason: ""}, at(11, 0))
	assert.Error(t, err, "blank reason must be rejected")

	_, err = svc.StartExit(ctx, timeledger.StartExitRequest{EntryID: "entry-999", Reason: "bank"}, at(11, 0))
	assert.ErrorIs(t, err, timeledger.ErrEntryNotFound)

	_, err = svc.CheckOut(ctx, entry.ID, at(18, 0))
	require.NoError(t, err)
	_, err = svc.StartExit(ctx, timeledger.StartExitRequest{EntryID: entry.ID, Reason: "bank"}, at(18, 30))
	assert.ErrorIs(t, err, timeledger.ErrAlreadyCheckedOut)
}

func TestStartExit_EntryFinalizedDuringStart(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	entry := mustCheckIn(t, svc, at(9, 0))

	// The day is checked out between the start-exit's read and its write.
	repo.beforeAddExit = func() {
		stored := repo.entries[entry.ID]
		out := at(18, 0)
		stored.CheckOut = &out
		repo.entries[entry.ID] = stored
	}

	_, err := svc.StartExit(ctx, timeledger.StartExitRequest{EntryID: entry.ID, Reason: "bank"}, at(18, 5))
	assert.ErrorIs(t, err, timeledger.ErrAlreadyCheckedOut)
	assert.Empty(t, repo.exits, "exit attached to a finalized day")
}

func TestEndExit_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.EndExit(context.Background(), "exit-999", at(12, 0))
	assert.ErrorIs(t, err, timeledger.ErrExitNotFound)
}

func TestGetEntry_LiveEstimate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	entry := mustCheckIn(t, svc, at(9, 0))

	resp, err := svc.GetEntry(ctx, entry.ID, at(15, 0))
	require.NoError(t, err)
	require.NotNil(t, resp.Live)
	assert.Equal(t, 360, resp.Live.WorkedMinutes)
	assert.Equal(t, 0, resp.Live.OvertimeMinutes)
	assert.False(t, resp.Live.IsComplete)
	// Persisted totals stay untouched until check-out.
	assert.Equal(t, 0, resp.TotalWorkedMinutes)

	// An open exit stops the live clock at its start.
	exit, err := svc.StartExit(ctx, timeledger.StartExitRequest{EntryID: entry.ID, Reason: "bank"}, at(15, 30))
	require.NoError(t, err)
	resp, err = svc.GetEntry(ctx, entry.ID, at(16, 0))
	require.NoError(t, err)
	require.NotNil(t, resp.Live)
	assert.Equal(t, 390, resp.Live.WorkedMinutes)

	_, err = svc.EndExit(ctx, exit.ID, at(16, 0))
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, entry.ID, at(19, 0))
	require.NoError(t, err)

	resp, err = svc.GetEntry(ctx, entry.ID, at(20, 0))
	require.NoError(t, err)
	assert.Nil(t, resp.Live, "finalized entry carries no live estimate")
	assert.Equal(t, 570, resp.TotalWorkedMinutes)
}

func TestListEntries_Defaults(t *testing.T) {
	svc, _ := newTestService()

	mustCheckIn(t, svc, at(9, 0))

	staffID := testStaffID
	resp, err := svc.ListEntries(context.Background(), timeledger.EntryFilter{StaffID: &staffID})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.TotalCount)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
	assert.Equal(t, 1, resp.TotalPages)
	require.Len(t, resp.Entries, 1)
}

func TestListEntries_RejectsBadFilter(t *testing.T) {
	svc, _ := newTestService()

	bad := "10-06-2024"
	_, err := svc.ListEntries(context.Background(), timeledger.EntryFilter{Date: &bad})
	assert.Error(t, err)
}

func TestOvertimeTotal(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	finalized := func(id string, date time.Time, overtime int) {
		out := date.Add(18 * time.Hour)
		repo.entries[id] = timeledger.Entry{
			ID:              id,
			StaffID:         testStaffID,
			Date:            date,
			CheckOut:        &out,
			OvertimeMinutes: overtime,
		}
	}
	finalized("entry-a", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), 30)
	finalized("entry-b", time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), 45)
	finalized("entry-c", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), 60)

	resp, err := svc.OvertimeTotal(ctx, testStaffID, 6, 2024)
	require.NoError(t, err)

	assert.Equal(t, 6, resp.Month)
	assert.Equal(t, 2024, resp.Year)
	assert.True(t, resp.TotalOtHours.Equal(decimal.RequireFromString("1.25")), "got %s", resp.TotalOtHours)
}

func TestOvertimeTotal_Empty(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.OvertimeTotal(context.Background(), testStaffID, 6, 2024)
	require.NoError(t, err)
	assert.True(t, resp.TotalOtHours.IsZero())
}
