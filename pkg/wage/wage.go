package wage

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidShift        = errors.New("shift departure must be after arrival")
	ErrCalculationNotFound = errors.New("wage calculation not found")
)

// CalculationInput identifies a clocked shift to price. Arrival and
// departure are absolute instants coming from the clock-in/clock-out
// collaborator.
type CalculationInput struct {
	ShiftId   int
	CompanyId int
	DriverId  int
	Arrival   time.Time
	Departure time.Time
}

// MinuteBuckets is the strict partition of a shift's minutes into pay
// categories: every elapsed minute lands in exactly one bucket.
type MinuteBuckets struct {
	Regular     int
	Night       int
	Weekend     int
	BankHoliday int
}

func (b MinuteBuckets) Total() int {
	return b.Regular + b.Night + b.Weekend + b.BankHoliday
}

// Breakdown is the persisted wage calculation for a single shift.
//
// OvertimeMinutes is not part of the minute partition: overtime is an
// uplift layered on top of whatever category those minutes also fell
// into, so they are paid twice (category rate plus the overtime rate).
// That mirrors the established payroll contract.
type Breakdown struct {
	Uid       uuid.UUID
	ShiftId   int
	CompanyId int
	DriverId  int

	Minutes         MinuteBuckets
	OvertimeMinutes int

	RegularPay     decimal.Decimal
	NightPay       decimal.Decimal
	WeekendPay     decimal.Decimal
	BankHolidayPay decimal.Decimal
	OvertimePay    decimal.Decimal
	TotalPay       decimal.Decimal

	CalculatedAt time.Time
}
