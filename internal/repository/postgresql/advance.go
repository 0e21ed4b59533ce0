package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/salonops/timecore-backend-go/internal/domain/advance"
	"github.com/salonops/timecore-backend-go/internal/pkg/database"
)

type advanceRepository struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.Repository {
	return &advanceRepository{db: db}
}

const advanceColumns = `
	id, staff_id, amount, reason, status,
	settled_at, settled_period_month, settled_period_year,
	created_at, updated_at`

func scanAdvances(rows pgx.Rows) ([]advance.Advance, error) {
	defer rows.Close()

	var advances []advance.Advance
	for rows.Next() {
		var a advance.Advance
		err := rows.Scan(
			&a.ID, &a.StaffID, &a.Amount, &a.Reason, &a.Status,
			&a.SettledAt, &a.SettledPeriodMonth, &a.SettledPeriodYear,
			&a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		advances = append(advances, a)
	}

	return advances, nil
}

// ListApprovedUnsettled implements advance.Repository.
func (r *advanceRepository) ListApprovedUnsettled(ctx context.Context, staffID string) ([]advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + advanceColumns + `
		FROM advances
		WHERE staff_id = $1
		  AND status = $2
		  AND settled_at IS NULL
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, staffID, advance.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to query outstanding advances: %w", err)
	}

	return scanAdvances(rows)
}

// MarkSettled implements advance.Repository.
func (r *advanceRepository) MarkSettled(ctx context.Context, ids []string, month, year int, settledAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE advances
		SET settled_at = $2,
		    settled_period_month = $3,
		    settled_period_year = $4,
		    updated_at = NOW()
		WHERE id = ANY($1)
	`

	if _, err := q.Exec(ctx, query, ids, settledAt, month, year); err != nil {
		return fmt.Errorf("failed to mark advances settled: %w", err)
	}

	return nil
}

// ReleaseSettlementsForPeriod implements advance.Repository.
func (r *advanceRepository) ReleaseSettlementsForPeriod(ctx context.Context, staffID string, month, year int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE advances
		SET settled_at = NULL,
		    settled_period_month = NULL,
		    settled_period_year = NULL,
		    updated_at = NOW()
		WHERE staff_id = $1
		  AND settled_period_month = $2
		  AND settled_period_year = $3
	`

	if _, err := q.Exec(ctx, query, staffID, month, year); err != nil {
		return fmt.Errorf("failed to release advance settlements: %w", err)
	}

	return nil
}

// ListByStaff implements advance.Repository.
func (r *advanceRepository) ListByStaff(ctx context.Context, staffID string) ([]advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + advanceColumns + `
		FROM advances
		WHERE staff_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to query advances: %w", err)
	}

	return scanAdvances(rows)
}
