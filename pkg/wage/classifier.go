package wage

import (
	"context"
	"time"

	"github.com/fleetwage/fleetwage/pkg/payrate"
)

const dateLayout = "2006-01-02"

// classifyMinutes assigns every elapsed minute of [arrival, departure)
// to exactly one pay category, by strict priority:
//
//	bank holiday > night > weekend > regular
//
// A holiday date claims all of its minutes regardless of hour or
// weekday; the night window wins over the weekend. The priority order
// is policy, not an optimization for the driver: the resolver warns
// when the configured rates contradict it.
//
// The oracle is consulted once per civil date touched by the shift.
func classifyMinutes(ctx context.Context, oracle HolidayOracle, companyId int,
	policy payrate.PayRatePolicy, arrival, departure time.Time, loc *time.Location) (MinuteBuckets, error) {

	holidayByDate := map[string]bool{}
	for _, seg := range splitIntoCivilDays(arrival, departure, loc) {
		date := seg.start.In(loc)
		key := date.Format(dateLayout)
		if _, seen := holidayByDate[key]; seen {
			continue
		}
		isHoliday, err := oracle.IsHoliday(ctx, companyId, date)
		if err != nil {
			return MinuteBuckets{}, err
		}
		holidayByDate[key] = isHoliday
	}

	var buckets MinuteBuckets
	totalMinutes := int(departure.Sub(arrival) / time.Minute)
	for m := 0; m < totalMinutes; m++ {
		local := arrival.Add(time.Duration(m) * time.Minute).In(loc)
		weekday := local.Weekday()

		switch {
		case holidayByDate[local.Format(dateLayout)]:
			buckets.BankHoliday++
		case policy.IsNightHour(local.Hour()):
			buckets.Night++
		case weekday == time.Saturday || weekday == time.Sunday:
			buckets.Weekend++
		default:
			buckets.Regular++
		}
	}

	return buckets, nil
}
