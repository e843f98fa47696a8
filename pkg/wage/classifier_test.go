package wage

import (
	"context"
	"testing"
	"time"

	"github.com/fleetwage/fleetwage/pkg/payrate"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() payrate.PayRatePolicy {
	return payrate.PayRatePolicy{
		CompanyId:              1,
		BaseRate:               decimal.NewFromFloat(12.50),
		NightRate:              decimal.NewFromFloat(15.00),
		WeekendRate:            decimal.NewFromFloat(14.00),
		BankHolidayRate:        decimal.NewFromFloat(25.00),
		OvertimeMultiplier:     decimal.NewFromFloat(1.5),
		NightStartHour:         22,
		NightEndHour:           6,
		DailyOvertimeThreshold: 480,
		Active:                 true,
	}
}

func TestClassifyMinutes_RegularWeekday(t *testing.T) {
	oracle := newHolidayOracleStub()
	// Monday
	arrival := time.Date(2025, time.June, 2, 8, 0, 0, 0, london)
	departure := time.Date(2025, time.June, 2, 16, 0, 0, 0, london)

	buckets, err := classifyMinutes(context.Background(), oracle, 1, testPolicy(), arrival, departure, london)

	require.NoError(t, err)
	assert.Equal(t, MinuteBuckets{Regular: 480}, buckets)
}

func TestClassifyMinutes_Weekend(t *testing.T) {
	oracle := newHolidayOracleStub()
	// Saturday
	arrival := time.Date(2025, time.June, 7, 6, 0, 0, 0, london)
	departure := time.Date(2025, time.June, 7, 18, 0, 0, 0, london)

	buckets, err := classifyMinutes(context.Background(), oracle, 1, testPolicy(), arrival, departure, london)

	require.NoError(t, err)
	assert.Equal(t, MinuteBuckets{Weekend: 720}, buckets)
}

func TestClassifyMinutes_NightWraparound(t *testing.T) {
	oracle := newHolidayOracleStub()
	// Entirely inside the 22-6 window, crossing midnight.
	arrival := time.Date(2025, time.June, 2, 23, 0, 0, 0, london)
	departure := time.Date(2025, time.June, 3, 1, 0, 0, 0, london)

	buckets, err := classifyMinutes(context.Background(), oracle, 1, testPolicy(), arrival, departure, london)

	require.NoError(t, err)
	assert.Equal(t, MinuteBuckets{Night: 120}, buckets)
}

func TestClassifyMinutes_HolidayDominatesHourAndWeekday(t *testing.T) {
	// A Saturday that is also a bank holiday, worked into the night
	// window: every minute is still a bank-holiday minute.
	oracle := newHolidayOracleStub("2025-12-27")
	arrival := time.Date(2025, time.December, 27, 20, 0, 0, 0, london)
	departure := time.Date(2025, time.December, 27, 23, 59, 0, 0, london)

	buckets, err := classifyMinutes(context.Background(), oracle, 1, testPolicy(), arrival, departure, london)

	require.NoError(t, err)
	assert.Equal(t, MinuteBuckets{BankHoliday: 239}, buckets)
}

func TestClassifyMinutes_NightBeatsWeekend(t *testing.T) {
	oracle := newHolidayOracleStub()
	// Saturday evening into Sunday morning: night window wins where they overlap.
	arrival := time.Date(2025, time.June, 7, 20, 0, 0, 0, london)
	departure := time.Date(2025, time.June, 8, 4, 0, 0, 0, london)

	buckets, err := classifyMinutes(context.Background(), oracle, 1, testPolicy(), arrival, departure, london)

	require.NoError(t, err)
	assert.Equal(t, MinuteBuckets{Weekend: 120, Night: 360}, buckets)
}

func TestClassifyMinutes_MixedShiftAcrossHolidayMidnight(t *testing.T) {
	// Friday 22:30 into a holiday Saturday: night minutes before
	// midnight, bank-holiday minutes after.
	oracle := newHolidayOracleStub("2025-12-27")
	arrival := time.Date(2025, time.December, 26, 22, 30, 0, 0, london)
	departure := time.Date(2025, time.December, 27, 2, 0, 0, 0, london)

	buckets, err := classifyMinutes(context.Background(), oracle, 1, testPolicy(), arrival, departure, london)

	require.NoError(t, err)
	assert.Equal(t, MinuteBuckets{Night: 90, BankHoliday: 120}, buckets)
}

func TestClassifyMinutes_PartitionInvariant(t *testing.T) {
	oracle := newHolidayOracleStub("2025-12-25")
	tests := []struct {
		name      string
		arrival   time.Time
		departure time.Time
	}{
		{
			name:      "multi-day span over a holiday",
			arrival:   time.Date(2025, time.December, 24, 18, 0, 0, 0, london),
			departure: time.Date(2025, time.December, 26, 9, 30, 0, 0, london),
		},
		{
			name:      "odd seconds near midnight",
			arrival:   time.Date(2025, time.June, 2, 23, 59, 30, 0, london),
			departure: time.Date(2025, time.June, 3, 1, 14, 45, 0, london),
		},
		{
			name:      "DST spring-forward day",
			arrival:   time.Date(2025, time.March, 29, 20, 0, 0, 0, london),
			departure: time.Date(2025, time.March, 30, 4, 0, 0, 0, london),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buckets, err := classifyMinutes(context.Background(), oracle, 1, testPolicy(), tt.arrival, tt.departure, london)
			require.NoError(t, err)
			elapsedMinutes := int(tt.departure.Sub(tt.arrival) / time.Minute)
			assert.Equal(t, elapsedMinutes, buckets.Total())
		})
	}
}

func TestClassifyMinutes_OneOracleQueryPerDate(t *testing.T) {
	oracle := newHolidayOracleStub()
	arrival := time.Date(2025, time.June, 2, 23, 0, 0, 0, london)
	departure := time.Date(2025, time.June, 4, 1, 0, 0, 0, london)

	_, err := classifyMinutes(context.Background(), oracle, 1, testPolicy(), arrival, departure, london)

	require.NoError(t, err)
	// Three civil dates touched, three queries - not one per minute.
	assert.Equal(t, 3, oracle.queries)
}
