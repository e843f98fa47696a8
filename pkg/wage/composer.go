package wage

import (
	"github.com/fleetwage/fleetwage/pkg/payrate"
	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

// composePay converts minute counts into currency amounts:
// pay = (minutes / 60) * rate per category, and overtime at the base
// rate times the policy multiplier. Amounts stay unrounded here;
// rounding to two decimal places happens only at persistence and in
// the DTO mapping.
func composePay(buckets MinuteBuckets, overtime int, policy payrate.PayRatePolicy) (regular, night, weekend, bankHoliday, overtimePay, total decimal.Decimal) {
	regular = hourlyPay(buckets.Regular, policy.BaseRate)
	night = hourlyPay(buckets.Night, policy.NightRate)
	weekend = hourlyPay(buckets.Weekend, policy.WeekendRate)
	bankHoliday = hourlyPay(buckets.BankHoliday, policy.BankHolidayRate)
	overtimePay = hourlyPay(overtime, policy.BaseRate.Mul(policy.OvertimeMultiplier))
	total = regular.Add(night).Add(weekend).Add(bankHoliday).Add(overtimePay)
	return
}

func hourlyPay(minutes int, hourlyRate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(minutesPerHour).Mul(hourlyRate)
}
