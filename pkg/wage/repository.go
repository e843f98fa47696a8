package wage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// Upsert inserts the breakdown for its shift or, when a row already
	// exists, overwrites every field. Recalculation is therefore safe to
	// repeat and leaves exactly one row per shift.
	Upsert(ctx context.Context, breakdown Breakdown) error
	// GetByShiftId returns ErrCalculationNotFound when no breakdown has
	// been stored for the shift.
	GetByShiftId(ctx context.Context, shiftId int) (Breakdown, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Upsert(ctx context.Context, breakdown Breakdown) error {
	query := `INSERT INTO wage_calculation (
                    uid,
                    shift_id,
                    company_id,
                    driver_id,
                    regular_minutes,
                    night_minutes,
                    weekend_minutes,
                    bank_holiday_minutes,
                    overtime_minutes,
                    regular_pay,
                    night_pay,
                    weekend_pay,
                    bank_holiday_pay,
                    overtime_pay,
                    total_pay,
                    calculated_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT (shift_id) DO UPDATE SET
				    uid = excluded.uid,
				    company_id = excluded.company_id,
				    driver_id = excluded.driver_id,
				    regular_minutes = excluded.regular_minutes,
				    night_minutes = excluded.night_minutes,
				    weekend_minutes = excluded.weekend_minutes,
				    bank_holiday_minutes = excluded.bank_holiday_minutes,
				    overtime_minutes = excluded.overtime_minutes,
				    regular_pay = excluded.regular_pay,
				    night_pay = excluded.night_pay,
				    weekend_pay = excluded.weekend_pay,
				    bank_holiday_pay = excluded.bank_holiday_pay,
				    overtime_pay = excluded.overtime_pay,
				    total_pay = excluded.total_pay,
				    calculated_at = excluded.calculated_at`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		breakdown.Uid.String(),
		breakdown.ShiftId,
		breakdown.CompanyId,
		breakdown.DriverId,
		breakdown.Minutes.Regular,
		breakdown.Minutes.Night,
		breakdown.Minutes.Weekend,
		breakdown.Minutes.BankHoliday,
		breakdown.OvertimeMinutes,
		breakdown.RegularPay.Round(2).String(),
		breakdown.NightPay.Round(2).String(),
		breakdown.WeekendPay.Round(2).String(),
		breakdown.BankHolidayPay.Round(2).String(),
		breakdown.OvertimePay.Round(2).String(),
		breakdown.TotalPay.Round(2).String(),
		breakdown.CalculatedAt.UnixMilli(),
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) GetByShiftId(ctx context.Context, shiftId int) (Breakdown, error) {
	query := `SELECT uid, shift_id, company_id, driver_id,
	                 regular_minutes, night_minutes, weekend_minutes, bank_holiday_minutes, overtime_minutes,
	                 regular_pay, night_pay, weekend_pay, bank_holiday_pay, overtime_pay, total_pay,
	                 calculated_at
	          FROM wage_calculation
	          WHERE shift_id = ?`

	row := r.db.QueryRowContext(ctx, query, shiftId)

	var breakdown Breakdown
	var uid string
	var regularPay, nightPay, weekendPay, bankHolidayPay, overtimePay, totalPay string
	var calculatedAtMillis int64

	err := row.Scan(
		&uid,
		&breakdown.ShiftId,
		&breakdown.CompanyId,
		&breakdown.DriverId,
		&breakdown.Minutes.Regular,
		&breakdown.Minutes.Night,
		&breakdown.Minutes.Weekend,
		&breakdown.Minutes.BankHoliday,
		&breakdown.OvertimeMinutes,
		&regularPay,
		&nightPay,
		&weekendPay,
		&bankHolidayPay,
		&overtimePay,
		&totalPay,
		&calculatedAtMillis,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Breakdown{}, ErrCalculationNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not query wage calculation: %w", err)
		log.Error(err)
		return Breakdown{}, err
	}

	if breakdown.Uid, err = uuid.Parse(uid); err != nil {
		return Breakdown{}, fmt.Errorf("could not parse calculation uid: %w", err)
	}
	if breakdown.RegularPay, err = decimal.NewFromString(regularPay); err != nil {
		return Breakdown{}, fmt.Errorf("could not parse regular pay: %w", err)
	}
	if breakdown.NightPay, err = decimal.NewFromString(nightPay); err != nil {
		return Breakdown{}, fmt.Errorf("could not parse night pay: %w", err)
	}
	if breakdown.WeekendPay, err = decimal.NewFromString(weekendPay); err != nil {
		return Breakdown{}, fmt.Errorf("could not parse weekend pay: %w", err)
	}
	if breakdown.BankHolidayPay, err = decimal.NewFromString(bankHolidayPay); err != nil {
		return Breakdown{}, fmt.Errorf("could not parse bank holiday pay: %w", err)
	}
	if breakdown.OvertimePay, err = decimal.NewFromString(overtimePay); err != nil {
		return Breakdown{}, fmt.Errorf("could not parse overtime pay: %w", err)
	}
	if breakdown.TotalPay, err = decimal.NewFromString(totalPay); err != nil {
		return Breakdown{}, fmt.Errorf("could not parse total pay: %w", err)
	}
	breakdown.CalculatedAt = time.UnixMilli(calculatedAtMillis)

	return breakdown, nil
}
