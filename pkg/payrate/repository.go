package payrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrNoActivePolicy = errors.New("no active pay rate policy configured")

type PayRateRepo interface {
	// FindActive returns the active policy scoped to (companyId, driverId).
	// driverId == nil matches the company default (driver_id IS NULL).
	// Returns ErrNoActivePolicy when no such policy exists.
	FindActive(ctx context.Context, companyId int, driverId *int) (PayRatePolicy, error)
	Store(ctx context.Context, policy PayRatePolicy) (int, error)
}

type PayRateRepoImpl struct {
	db *sql.DB
}

func NewPayRateRepo(db *sql.DB) *PayRateRepoImpl {
	return &PayRateRepoImpl{db: db}
}

const policyColumns = `id, company_id, driver_id, base_rate, night_rate, weekend_rate, bank_holiday_rate,
	       overtime_multiplier, night_start_hour, night_end_hour, daily_overtime_threshold, active, start_date, end_date`

func (r *PayRateRepoImpl) FindActive(ctx context.Context, companyId int, driverId *int) (PayRatePolicy, error) {
	driverClause := "driver_id IS NULL"
	args := []interface{}{companyId}
	if driverId != nil {
		driverClause = "driver_id = ?"
		args = append(args, *driverId)
	}
	query := fmt.Sprintf(`SELECT %s FROM pay_rate WHERE company_id = ? AND %s AND active = 1 ORDER BY id DESC LIMIT 1`,
		policyColumns, driverClause)

	row := r.db.QueryRowContext(ctx, query, args...)
	policy, err := scanPolicy(row)
	if errors.Is(err, sql.ErrNoRows) {
		return PayRatePolicy{}, ErrNoActivePolicy
	}
	if err != nil {
		err := fmt.Errorf("could not query pay rate policy: %w", err)
		log.Error(err)
		return PayRatePolicy{}, err
	}
	return policy, nil
}

func (r *PayRateRepoImpl) Store(ctx context.Context, policy PayRatePolicy) (int, error) {
	query := `INSERT INTO pay_rate (
                    company_id,
                    driver_id,
                    base_rate,
                    night_rate,
                    weekend_rate,
                    bank_holiday_rate,
                    overtime_multiplier,
                    night_start_hour,
                    night_end_hour,
                    daily_overtime_threshold,
                    active,
                    start_date,
                    end_date
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	var driverIdParam interface{}
	if policy.DriverId != nil {
		driverIdParam = *policy.DriverId
	}
	var startDateParam, endDateParam interface{}
	if !policy.StartDate.IsZero() {
		startDateParam = policy.StartDate.Format("2006-01-02")
	}
	if !policy.EndDate.IsZero() {
		endDateParam = policy.EndDate.Format("2006-01-02")
	}
	active := 0
	if policy.Active {
		active = 1
	}

	result, err := stmt.ExecContext(ctx,
		policy.CompanyId,
		driverIdParam,
		policy.BaseRate.String(),
		policy.NightRate.String(),
		policy.WeekendRate.String(),
		policy.BankHolidayRate.String(),
		policy.OvertimeMultiplier.String(),
		policy.NightStartHour,
		policy.NightEndHour,
		policy.DailyOvertimeThreshold,
		active,
		startDateParam,
		endDateParam,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return 0, err
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}

	return int(lastInsertID), nil
}

func scanPolicy(row *sql.Row) (PayRatePolicy, error) {
	var policy PayRatePolicy
	var driverId sql.NullInt64
	var baseRate, nightRate, weekendRate, bankHolidayRate, overtimeMultiplier string
	var active int
	var startDate, endDate sql.NullString

	if err := row.Scan(
		&policy.ID,
		&policy.CompanyId,
		&driverId,
		&baseRate,
		&nightRate,
		&weekendRate,
		&bankHolidayRate,
		&overtimeMultiplier,
		&policy.NightStartHour,
		&policy.NightEndHour,
		&policy.DailyOvertimeThreshold,
		&active,
		&startDate,
		&endDate,
	); err != nil {
		return PayRatePolicy{}, err
	}

	if driverId.Valid {
		id := int(driverId.Int64)
		policy.DriverId = &id
	}
	policy.Active = active == 1

	var err error
	if policy.BaseRate, err = decimal.NewFromString(baseRate); err != nil {
		return PayRatePolicy{}, fmt.Errorf("could not parse base rate: %w", err)
	}
	if policy.NightRate, err = decimal.NewFromString(nightRate); err != nil {
		return PayRatePolicy{}, fmt.Errorf("could not parse night rate: %w", err)
	}
	if policy.WeekendRate, err = decimal.NewFromString(weekendRate); err != nil {
		return PayRatePolicy{}, fmt.Errorf("could not parse weekend rate: %w", err)
	}
	if policy.BankHolidayRate, err = decimal.NewFromString(bankHolidayRate); err != nil {
		return PayRatePolicy{}, fmt.Errorf("could not parse bank holiday rate: %w", err)
	}
	if policy.OvertimeMultiplier, err = decimal.NewFromString(overtimeMultiplier); err != nil {
		return PayRatePolicy{}, fmt.Errorf("could not parse overtime multiplier: %w", err)
	}

	if startDate.Valid {
		parsed, err := time.Parse("2006-01-02", startDate.String)
		if err != nil {
			return PayRatePolicy{}, fmt.Errorf("could not parse start date: %w", err)
		}
		policy.StartDate = parsed
	}
	if endDate.Valid {
		parsed, err := time.Parse("2006-01-02", endDate.String)
		if err != nil {
			return PayRatePolicy{}, fmt.Errorf("could not parse end date: %w", err)
		}
		policy.EndDate = parsed
	}

	return policy, nil
}
