package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/salonops/timecore-backend-go/internal/domain/timeledger"
	"github.com/salonops/timecore-backend-go/internal/pkg/database"
)

const uniqueViolation = "23505"

type timeLedgerRepository struct {
	db *database.DB
}

func NewTimeLedgerRepository(db *database.DB) timeledger.Repository {
	return &timeLedgerRepository{db: db}
}

const entryColumns = `
	e.id, e.staff_id, e.date, e.check_in, e.check_out,
	e.total_worked_minutes, e.overtime_minutes, e.standard_minutes,
	e.is_complete, e.status, e.created_at, e.updated_at,
	s.full_name AS staff_name`

func scanEntry(row pgx.Row) (timeledger.Entry, error) {
	var e timeledger.Entry
	err := row.Scan(
		&e.ID, &e.StaffID, &e.Date, &e.CheckIn, &e.CheckOut,
		&e.TotalWorkedMinutes, &e.OvertimeMinutes, &e.StandardMinutes,
		&e.IsComplete, &e.Status, &e.CreatedAt, &e.UpdatedAt,
		&e.StaffName,
	)
	return e, err
}

// Create implements timeledger.Repository.
func (r *timeLedgerRepository) Create(ctx context.Context, entry timeledger.Entry) (timeledger.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (
			staff_id, date, check_in, status
		) VALUES (
			$1, $2, $3, $4
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.StaffID,
		entry.Date,
		entry.CheckIn,
		entry.Status,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return timeledger.Entry{}, timeledger.ErrAlreadyCheckedIn
		}
		return timeledger.Entry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return entry, nil
}

// GetByID implements timeledger.Repository.
func (r *timeLedgerRepository) GetByID(ctx context.Context, id string) (timeledger.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + entryColumns + `
		FROM time_entries e
		LEFT JOIN staff s ON s.id = e.staff_id
		WHERE e.id = $1
	`

	entry, err := scanEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeledger.Entry{}, timeledger.ErrEntryNotFound
		}
		return timeledger.Entry{}, fmt.Errorf("failed to get time entry by ID: %w", err)
	}

	exits, err := r.exitsForEntries(ctx, q, []string{entry.ID})
	if err != nil {
		return timeledger.Entry{}, err
	}
	entry.Exits = exits[entry.ID]

	return entry, nil
}

// GetByStaffAndDate implements timeledger.Repository.
func (r *timeLedgerRepository) GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) (*timeledger.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + entryColumns + `
		FROM time_entries e
		LEFT JOIN staff s ON s.id = e.staff_id
		WHERE e.staff_id = $1
		  AND e.date = $2
		LIMIT 1
	`

	entry, err := scanEntry(q.QueryRow(ctx, query, staffID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No entry for the day yet
		}
		return nil, fmt.Errorf("failed to get time entry by staff and date: %w", err)
	}

	exits, err := r.exitsForEntries(ctx, q, []string{entry.ID})
	if err != nil {
		return nil, err
	}
	entry.Exits = exits[entry.ID]

	return &entry, nil
}

// SetCheckIn implements timeledger.Repository. Guarded on check_in IS NULL:
// a zero-row result is classified by re-reading the entry.
func (r *timeLedgerRepository) SetCheckIn(ctx context.Context, id string, checkIn time.Time) (timeledger.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET check_in = $2, status = $3, updated_at = NOW()
		WHERE id = $1
		  AND check_in IS NULL
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, checkIn, timeledger.StatusPresent).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return timeledger.Entry{}, getErr
			}
			return timeledger.Entry{}, timeledger.ErrAlreadyCheckedIn
		}
		return timeledger.Entry{}, fmt.Errorf("failed to set check-in: %w", err)
	}

	return r.GetByID(ctx, id)
}

// FinalizeCheckOut implements timeledger.Repository. The guard re-checks the
// entry state in the statement itself so concurrent check-outs cannot both
// succeed, and pins the exit set to the one the totals were computed from:
// an exit added since the caller's read makes the update a no-op. A zero-row
// result is classified by re-reading.
func (r *timeLedgerRepository) FinalizeCheckOut(ctx context.Context, entry timeledger.Entry) (timeledger.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET check_out = $2,
		    total_worked_minutes = $3,
		    overtime_minutes = $4,
		    standard_minutes = $5,
		    is_complete = $6,
		    status = $7,
		    updated_at = NOW()
		WHERE id = $1
		  AND check_in IS NOT NULL
		  AND check_out IS NULL
		  AND NOT EXISTS (
			SELECT 1 FROM exit_intervals x
			WHERE x.entry_id = time_entries.id AND x.end_time IS NULL
		  )
		  AND (
			SELECT COUNT(*) FROM exit_intervals x
			WHERE x.entry_id = time_entries.id
		  ) = $8
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.CheckOut,
		entry.TotalWorkedMinutes,
		entry.OvertimeMinutes,
		entry.StandardMinutes,
		entry.IsComplete,
		entry.Status,
		len(entry.Exits),
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			current, getErr := r.GetByID(ctx, entry.ID)
			if getErr != nil {
				return timeledger.Entry{}, getErr
			}
			switch {
			case current.CheckIn == nil:
				return timeledger.Entry{}, timeledger.ErrNotCheckedIn
			case current.CheckOut != nil:
				return timeledger.Entry{}, timeledger.ErrAlreadyCheckedOut
			case current.OpenExit() != nil:
				return timeledger.Entry{}, timeledger.ErrExitStillOpen
			default:
				return timeledger.Entry{}, timeledger.ErrEntryModified
			}
		}
		return timeledger.Entry{}, fmt.Errorf("failed to finalize check-out: %w", err)
	}

	return r.GetByID(ctx, entry.ID)
}

// List implements timeledger.Repository.
func (r *timeLedgerRepository) List(ctx context.Context, filter timeledger.EntryFilter) ([]timeledger.Entry, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.StaffID != nil && *filter.StaffID != "" {
		baseWhere += fmt.Sprintf(" AND e.staff_id = $%d", argIdx)
		args = append(args, *filter.StaffID)
		argIdx++
	}
	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND e.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND e.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND e.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND e.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	// Count total
	countQuery := "SELECT COUNT(*) FROM time_entries e WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time entries: %w", err)
	}

	// Build ORDER BY
	orderByField := "e.date"
	switch filter.SortBy {
	case "staff_name":
		orderByField = "s.full_name"
	case "check_in":
		orderByField = "e.check_in"
	case "check_out":
		orderByField = "e.check_out"
	case "status":
		orderByField = "e.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+entryColumns+`
		FROM time_entries e
		LEFT JOIN staff s ON s.id = e.staff_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	var entries []timeledger.Entry
	var ids []string
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, entry)
		ids = append(ids, entry.ID)
	}

	if len(ids) > 0 {
		exits, err := r.exitsForEntries(ctx, q, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range entries {
			entries[i].Exits = exits[entries[i].ID]
		}
	}

	return entries, total, nil
}

// SumOvertimeMinutes implements timeledger.Repository. Only finalized days
// contribute; an in-progress day has no overtime yet.
func (r *timeLedgerRepository) SumOvertimeMinutes(ctx context.Context, staffID string, month, year int) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(overtime_minutes), 0)
		FROM time_entries
		WHERE staff_id = $1
		  AND check_out IS NOT NULL
		  AND EXTRACT(MONTH FROM date) = $2
		  AND EXTRACT(YEAR FROM date) = $3
	`

	var total int
	if err := q.QueryRow(ctx, query, staffID, month, year).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum overtime minutes: %w", err)
	}

	return total, nil
}

// AddExit implements timeledger.Repository. The INSERT ... SELECT guard
// checks the parent entry is still checked in and not finalized in the same
// statement, so an exit cannot land on an entry a concurrent check-out just
// closed; the partial unique index on (entry_id) WHERE end_time IS NULL
// enforces the single-open-exit invariant. A zero-row result is classified
// by re-reading the entry.
func (r *timeLedgerRepository) AddExit(ctx context.Context, exit timeledger.ExitInterval) (timeledger.ExitInterval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO exit_intervals (
			id, entry_id, start_time, reason
		)
		SELECT $1, $2, $3, $4
		WHERE EXISTS (
			SELECT 1 FROM time_entries e
			WHERE e.id = $2
			  AND e.check_in IS NOT NULL
			  AND e.check_out IS NULL
		)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		exit.ID,
		exit.EntryID,
		exit.StartTime,
		exit.Reason,
	).Scan(&exit.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return timeledger.ExitInterval{}, timeledger.ErrExitAlreadyOpen
		}
		if errors.Is(err, pgx.ErrNoRows) {
			current, getErr := r.GetByID(ctx, exit.EntryID)
			if getErr != nil {
				return timeledger.ExitInterval{}, getErr
			}
			if current.CheckOut != nil {
				return timeledger.ExitInterval{}, timeledger.ErrAlreadyCheckedOut
			}
			return timeledger.ExitInterval{}, timeledger.ErrNotCheckedIn
		}
		return timeledger.ExitInterval{}, fmt.Errorf("failed to add exit interval: %w", err)
	}

	return exit, nil
}

// GetExitByID implements timeledger.Repository.
func (r *timeLedgerRepository) GetExitByID(ctx context.Context, id string) (timeledger.ExitInterval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, entry_id, start_time, end_time, reason, duration_minutes, created_at
		FROM exit_intervals
		WHERE id = $1
	`

	var x timeledger.ExitInterval
	err := q.QueryRow(ctx, query, id).Scan(
		&x.ID, &x.EntryID, &x.StartTime, &x.EndTime, &x.Reason, &x.DurationMinutes, &x.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeledger.ExitInterval{}, timeledger.ErrExitNotFound
		}
		return timeledger.ExitInterval{}, fmt.Errorf("failed to get exit interval by ID: %w", err)
	}

	return x, nil
}

// CloseExit implements timeledger.Repository. Guarded on end_time IS NULL.
func (r *timeLedgerRepository) CloseExit(ctx context.Context, id string, endTime time.Time, durationMinutes int) (timeledger.ExitInterval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE exit_intervals
		SET end_time = $2, duration_minutes = $3
		WHERE id = $1
		  AND end_time IS NULL
		RETURNING id, entry_id, start_time, end_time, reason, duration_minutes, created_at
	`

	var x timeledger.ExitInterval
	err := q.QueryRow(ctx, query, id, endTime, durationMinutes).Scan(
		&x.ID, &x.EntryID, &x.StartTime, &x.EndTime, &x.Reason, &x.DurationMinutes, &x.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetExitByID(ctx, id); getErr != nil {
				return timeledger.ExitInterval{}, getErr
			}
			return timeledger.ExitInterval{}, timeledger.ErrExitAlreadyClosed
		}
		return timeledger.ExitInterval{}, fmt.Errorf("failed to close exit interval: %w", err)
	}

	return x, nil
}

// exitsForEntries loads the exits for a set of entries in one query, keyed by
// entry ID, in recorded order.
func (r *timeLedgerRepository) exitsForEntries(ctx context.Context, q database.Querier, entryIDs []string) (map[string][]timeledger.ExitInterval, error) {
	query := `
		SELECT id, entry_id, start_time, end_time, reason, duration_minutes, created_at
		FROM exit_intervals
		WHERE entry_id = ANY($1)
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query exit intervals: %w", err)
	}
	defer rows.Close()

	exits := make(map[string][]timeledger.ExitInterval)
	for rows.Next() {
		var x timeledger.ExitInterval
		err := rows.Scan(&x.ID, &x.EntryID, &x.StartTime, &x.EndTime, &x.Reason, &x.DurationMinutes, &x.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exit interval: %w", err)
		}
		exits[x.EntryID] = append(exits[x.EntryID], x)
	}

	return exits, nil
}
