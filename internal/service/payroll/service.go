package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonops/timecore-backend-go/internal/domain/advance"
	"github.com/salonops/timecore-backend-go/internal/domain/payroll"
	"github.com/salonops/timecore-backend-go/internal/domain/staff"
	"github.com/salonops/timecore-backend-go/internal/pkg/database"
)

type PayrollServiceImpl struct {
	tx          database.TxManager
	payrollRepo payroll.Repository
	staffRepo   staff.Repository
	advanceRepo advance.Repository
}

func NewPayrollService(
	tx database.TxManager,
	payrollRepo payroll.Repository,
	staffRepo staff.Repository,
	advanceRepo advance.Repository,
) payroll.Service {
	return &PayrollServiceImpl{
		tx:          tx,
		payrollRepo: payrollRepo,
		staffRepo:   staffRepo,
		advanceRepo: advanceRepo,
	}
}

// ProcessPayroll implements payroll.Service. Re-running an unpaid period
// fully overwrites the prior computation; a paid period is frozen and the
// run is rejected. Advance settlement happens in the same transaction as
// the upsert, so an advance is deducted exactly once and a re-run of the
// same unpaid period stays idempotent.
func (s *PayrollServiceImpl) ProcessPayroll(ctx context.Context, req payroll.ProcessPayrollRequest, now time.Time) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	month, err := payroll.ParseMonthName(req.Month)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	var record payroll.Record
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// A paid period is frozen; checked inside the transaction so the
		// settlement release below never runs against one. The guarded
		// upsert re-checks this at write time.
		existing, err := s.payrollRepo.GetByStaffPeriod(ctx, req.StaffID, int(month), req.Year)
		if err != nil && !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return fmt.Errorf("failed to check existing payroll record: %w", err)
		}
		if err == nil && existing.IsPaid {
			return payroll.ErrPayrollAlreadyPaid
		}

		// A previous run of this unpaid period may have consumed advances;
		// release them so the recomputation sees the same outstanding balance.
		if err := s.advanceRepo.ReleaseSettlementsForPeriod(ctx, req.StaffID, int(month), req.Year); err != nil {
			return fmt.Errorf("failed to release prior advance settlements: %w", err)
		}

		advances, err := s.advanceRepo.ListApprovedUnsettled(ctx, req.StaffID)
		if err != nil {
			return fmt.Errorf("failed to list outstanding advances: %w", err)
		}

		inputs := Inputs{
			BaseSalary:          member.BaseSalary,
			OvertimeRatePerHour: member.OvertimeRatePerHour,
			OtHours:             req.OtHours,
			ExtraDays:           req.ExtraDays,
			FoodDeduction:       req.FoodDeduction,
			RecurringDeduction:  req.RecurringDeduction,
		}
		advanceIDs := make([]string, 0, len(advances))
		for _, a := range advances {
			inputs.AdvanceDeducted = inputs.AdvanceDeducted.Add(a.Amount)
			advanceIDs = append(advanceIDs, a.ID)
		}

		breakdown := Compute(inputs)

		record = payroll.Record{
			StaffID:            req.StaffID,
			PeriodMonth:        int(month),
			PeriodYear:         req.Year,
			BaseSalary:         member.BaseSalary,
			OvertimeHours:      req.OtHours,
			OvertimeAmount:     breakdown.OvertimeAmount,
			ExtraDays:          req.ExtraDays,
			ExtraDayPay:        breakdown.ExtraDayPay,
			FoodDeduction:      req.FoodDeduction,
			RecurringDeduction: req.RecurringDeduction,
			AdvanceDeducted:    inputs.AdvanceDeducted,
			TotalEarnings:      breakdown.TotalEarnings,
			TotalDeductions:    breakdown.TotalDeductions,
			NetSalary:          breakdown.NetSalary,
			IsPaid:             false,
			PaidDate:           nil,
		}

		record, err = s.payrollRepo.Upsert(ctx, record)
		if err != nil {
			return err
		}

		if len(advanceIDs) > 0 {
			if err := s.advanceRepo.MarkSettled(ctx, advanceIDs, int(month), req.Year, now); err != nil {
				return fmt.Errorf("failed to settle advances: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	record.StaffName = &member.FullName
	return mapToRecordResponse(record), nil
}

// GetRecord implements payroll.Service.
func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(record), nil
}

// ListRecords implements payroll.Service.
func (s *PayrollServiceImpl) ListRecords(ctx context.Context, filter payroll.RecordFilter) (payroll.ListRecordsResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	records, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListRecordsResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	responses := make([]payroll.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, mapToRecordResponse(r))
	}

	return payroll.ListRecordsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Records:    responses,
	}, nil
}

// MarkPaid implements payroll.Service. One-way transition: no unpay exists.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, req payroll.MarkPaidRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	paidDate, err := time.Parse("2006-01-02", req.PaidDate)
	if err != nil {
		return payroll.RecordResponse{}, fmt.Errorf("invalid paid date: %w", err)
	}

	record, err := s.payrollRepo.MarkPaid(ctx, req.ID, paidDate)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	return mapToRecordResponse(record), nil
}

// DeleteRecord implements payroll.Service. Paid records cannot be deleted.
func (s *PayrollServiceImpl) DeleteRecord(ctx context.Context, id string) error {
	return s.payrollRepo.Delete(ctx, id)
}

func mapToRecordResponse(r payroll.Record) payroll.RecordResponse {
	var paidDateStr *string
	if r.PaidDate != nil {
		str := r.PaidDate.Format("2006-01-02")
		paidDateStr = &str
	}

	return payroll.RecordResponse{
		ID:                 r.ID,
		StaffID:            r.StaffID,
		StaffName:          r.StaffName,
		PeriodMonth:        r.PeriodMonth,
		PeriodYear:         r.PeriodYear,
		BaseSalary:         r.BaseSalary,
		OvertimeHours:      r.OvertimeHours,
		OvertimeAmount:     r.OvertimeAmount,
		ExtraDays:          r.ExtraDays,
		ExtraDayPay:        r.ExtraDayPay,
		FoodDeduction:      r.FoodDeduction,
		RecurringDeduction: r.RecurringDeduction,
		AdvanceDeducted:    r.AdvanceDeducted,
		TotalEarnings:      r.TotalEarnings,
		TotalDeductions:    r.TotalDeductions,
		NetSalary:          r.NetSalary,
		IsPaid:             r.IsPaid,
		PaidDate:           paidDateStr,
	}
}
