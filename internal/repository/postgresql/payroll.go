package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/salonops/timecore-backend-go/internal/domain/payroll"
	"github.com/salonops/timecore-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

const recordColumns = `
	p.id, p.staff_id, p.period_month, p.period_year,
	p.base_salary, p.overtime_hours, p.overtime_amount,
	p.extra_days, p.extra_day_pay,
	p.food_deduction, p.recurring_deduction, p.advance_deducted,
	p.total_earnings, p.total_deductions, p.net_salary,
	p.is_paid, p.paid_date, p.created_at, p.updated_at,
	s.full_name AS staff_name`

func scanRecord(row pgx.Row) (payroll.Record, error) {
	var r payroll.Record
	err := row.Scan(
		&r.ID, &r.StaffID, &r.PeriodMonth, &r.PeriodYear,
		&r.BaseSalary, &r.OvertimeHours, &r.OvertimeAmount,
		&r.ExtraDays, &r.ExtraDayPay,
		&r.FoodDeduction, &r.RecurringDeduction, &r.AdvanceDeducted,
		&r.TotalEarnings, &r.TotalDeductions, &r.NetSalary,
		&r.IsPaid, &r.PaidDate, &r.CreatedAt, &r.UpdatedAt,
		&r.StaffName,
	)
	return r, err
}

// Upsert implements payroll.Repository. The conflict target is the
// (staff_id, period_month, period_year) unique key; a re-run fully
// overwrites the prior computation and resets the payment flag. The DO
// UPDATE is guarded on is_paid = FALSE so a record paid between the
// service's pre-check and this statement stays frozen; a zero-row result
// is classified by re-reading, same pattern as MarkPaid.
func (p *payrollRepository) Upsert(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO payroll_records (
			staff_id, period_month, period_year,
			base_salary, overtime_hours, overtime_amount,
			extra_days, extra_day_pay,
			food_deduction, recurring_deduction, advance_deducted,
			total_earnings, total_deductions, net_salary
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
		ON CONFLICT (staff_id, period_month, period_year) DO UPDATE SET
			base_salary = EXCLUDED.base_salary,
			overtime_hours = EXCLUDED.overtime_hours,
			overtime_amount = EXCLUDED.overtime_amount,
			extra_days = EXCLUDED.extra_days,
			extra_day_pay = EXCLUDED.extra_day_pay,
			food_deduction = EXCLUDED.food_deduction,
			recurring_deduction = EXCLUDED.recurring_deduction,
			advance_deducted = EXCLUDED.advance_deducted,
			total_earnings = EXCLUDED.total_earnings,
			total_deductions = EXCLUDED.total_deductions,
			net_salary = EXCLUDED.net_salary,
			is_paid = FALSE,
			paid_date = NULL,
			updated_at = NOW()
		WHERE payroll_records.is_paid = FALSE
		RETURNING id, is_paid, paid_date, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.StaffID,
		record.PeriodMonth,
		record.PeriodYear,
		record.BaseSalary,
		record.OvertimeHours,
		record.OvertimeAmount,
		record.ExtraDays,
		record.ExtraDayPay,
		record.FoodDeduction,
		record.RecurringDeduction,
		record.AdvanceDeducted,
		record.TotalEarnings,
		record.TotalDeductions,
		record.NetSalary,
	).Scan(&record.ID, &record.IsPaid, &record.PaidDate, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, getErr := p.GetByStaffPeriod(ctx, record.StaffID, record.PeriodMonth, record.PeriodYear)
			if getErr != nil {
				return payroll.Record{}, getErr
			}
			if existing.IsPaid {
				return payroll.Record{}, payroll.ErrPayrollAlreadyPaid
			}
		}
		return payroll.Record{}, fmt.Errorf("failed to upsert payroll record: %w", err)
	}

	return record, nil
}

// GetByID implements payroll.Repository.
func (p *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + recordColumns + `
		FROM payroll_records p
		LEFT JOIN staff s ON s.id = p.staff_id
		WHERE p.id = $1
	`

	record, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Record{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record by ID: %w", err)
	}

	return record, nil
}

// GetByStaffPeriod implements payroll.Repository.
func (p *payrollRepository) GetByStaffPeriod(ctx context.Context, staffID string, month, year int) (payroll.Record, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + recordColumns + `
		FROM payroll_records p
		LEFT JOIN staff s ON s.id = p.staff_id
		WHERE p.staff_id = $1
		  AND p.period_month = $2
		  AND p.period_year = $3
	`

	record, err := scanRecord(q.QueryRow(ctx, query, staffID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Record{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record by staff and period: %w", err)
	}

	return record, nil
}

// List implements payroll.Repository.
func (p *payrollRepository) List(ctx context.Context, filter payroll.RecordFilter) ([]payroll.Record, int64, error) {
	q := GetQuerier(ctx, p.db)

	// Build WHERE clause
	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.StaffID != nil && *filter.StaffID != "" {
		baseWhere += fmt.Sprintf(" AND p.staff_id = $%d", argIdx)
		args = append(args, *filter.StaffID)
		argIdx++
	}
	if filter.PeriodMonth != nil {
		baseWhere += fmt.Sprintf(" AND p.period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		baseWhere += fmt.Sprintf(" AND p.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.IsPaid != nil {
		baseWhere += fmt.Sprintf(" AND p.is_paid = $%d", argIdx)
		args = append(args, *filter.IsPaid)
		argIdx++
	}

	// Count total
	countQuery := "SELECT COUNT(*) FROM payroll_records p WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+recordColumns+`
		FROM payroll_records p
		LEFT JOIN staff s ON s.id = p.staff_id
		WHERE %s
		ORDER BY p.period_year DESC, p.period_month DESC, s.full_name ASC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, record)
	}

	return records, total, nil
}

// MarkPaid implements payroll.Repository. Guarded on is_paid = FALSE; a
// zero-row result is classified by re-reading the record.
func (p *payrollRepository) MarkPaid(ctx context.Context, id string, paidDate time.Time) (payroll.Record, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payroll_records
		SET is_paid = TRUE, paid_date = $2, updated_at = NOW()
		WHERE id = $1
		  AND is_paid = FALSE
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, paidDate).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := p.GetByID(ctx, id); getErr != nil {
				return payroll.Record{}, getErr
			}
			return payroll.Record{}, payroll.ErrPayrollAlreadyPaid
		}
		return payroll.Record{}, fmt.Errorf("failed to mark payroll record paid: %w", err)
	}

	return p.GetByID(ctx, id)
}

// Delete implements payroll.Repository. Paid records are frozen.
func (p *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, p.db)

	query := `DELETE FROM payroll_records WHERE id = $1 AND is_paid = FALSE`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		if _, getErr := p.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return payroll.ErrCannotDeletePaidRecord
	}

	return nil
}
