package payrate

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayRatePolicy defines the hourly rates and thresholds used to price a
// driver's shift. A policy is scoped to a company and optionally to a
// single driver; DriverId == nil marks the company-wide default.
//
// At most one active policy is expected per (company, driver) pair and
// per (company, nil) pair at any time.
type PayRatePolicy struct {
	ID        int
	CompanyId int
	DriverId  *int

	BaseRate        decimal.Decimal
	NightRate       decimal.Decimal
	WeekendRate     decimal.Decimal
	BankHolidayRate decimal.Decimal

	// OvertimeMultiplier is applied to BaseRate for overtime minutes.
	OvertimeMultiplier decimal.Decimal

	// NightStartHour and NightEndHour delimit the night window in civil
	// hours [start, end). The window may wrap past midnight (22-6).
	NightStartHour int
	NightEndHour   int

	// DailyOvertimeThreshold is the number of net worked minutes per day
	// beyond which minutes count as overtime.
	DailyOvertimeThreshold int

	Active    bool
	StartDate time.Time
	EndDate   time.Time
}

// IsNightHour reports whether the given civil hour (0-23) falls inside
// the policy's night window, supporting windows that wrap past midnight.
func (p PayRatePolicy) IsNightHour(hour int) bool {
	if p.NightStartHour == p.NightEndHour {
		return false
	}
	if p.NightStartHour < p.NightEndHour {
		return hour >= p.NightStartHour && hour < p.NightEndHour
	}
	return hour >= p.NightStartHour || hour < p.NightEndHour
}
