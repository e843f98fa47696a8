package wage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fleetwage/fleetwage/internal/event_bus"
	"github.com/fleetwage/fleetwage/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var calculationTestNow = time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

func setupService(oracle *holidayOracleStub) (*ServiceImpl, *StubWageRepo, *rateResolverStub) {
	repo := NewStubWageRepo()
	resolver := &rateResolverStub{policy: testPolicy()}
	clock := &utils.MockClock{FixedNow: calculationTestNow}
	service := NewService(repo, resolver, oracle, london, event_bus.NewEventBus(), clock)
	return service, repo, resolver
}

func TestServiceImpl_Calculate_RegularWeekdayShift(t *testing.T) {
	// Scenario: Monday 08:00-16:00, no holiday, night window 22-6.
	service, _, _ := setupService(newHolidayOracleStub())

	breakdown, err := service.Calculate(context.Background(), CalculationInput{
		ShiftId:   100,
		CompanyId: 1,
		DriverId:  7,
		Arrival:   time.Date(2025, time.June, 2, 8, 0, 0, 0, london),
		Departure: time.Date(2025, time.June, 2, 16, 0, 0, 0, london),
	})

	require.NoError(t, err)
	assert.Equal(t, MinuteBuckets{Regular: 480}, breakdown.Minutes)
	// 480 total -> net 450 after the break deduction -> below the 480 threshold.
	assert.Equal(t, 0, breakdown.OvertimeMinutes)
	assert.Equal(t, "100.00", breakdown.RegularPay.StringFixed(2))
	assert.Equal(t, "0.00", breakdown.OvertimePay.StringFixed(2))
	assert.Equal(t, "100.00", breakdown.TotalPay.StringFixed(2))
	assert.Equal(t, calculationTestNow, breakdown.CalculatedAt)
}

func TestServiceImpl_Calculate_LongSaturdayShift(t *testing.T) {
	// Scenario: Saturday 06:00-18:00, no holiday, no night overlap.
	service, _, _ := setupService(newHolidayOracleStub())

	breakdown, err := service.Calculate(context.Background(), CalculationInput{
		ShiftId:   101,
		CompanyId: 1,
		DriverId:  7,
		Arrival:   time.Date(2025, time.June, 7, 6, 0, 0, 0, london),
		Departure: time.Date(2025, time.June, 7, 18, 0, 0, 0, london),
	})

	require.NoError(t, err)
	assert.Equal(t, MinuteBuckets{Weekend: 720}, breakdown.Minutes)
	// 720 total -> net 690 -> 210 over the 480 threshold.
	assert.Equal(t, 210, breakdown.OvertimeMinutes)
	assert.Equal(t, "168.00", breakdown.WeekendPay.StringFixed(2))
	// Overtime at base 12.50 * 1.5 on top of the weekend rate.
	assert.Equal(t, "65.63", breakdown.OvertimePay.StringFixed(2))
	assert.Equal(t, "233.63", breakdown.TotalPay.StringFixed(2))
}

func TestServiceImpl_Calculate_BankHolidayShift(t *testing.T) {
	// Scenario: a shift wholly on a bank holiday claims every minute.
	service, _, _ := setupService(newHolidayOracleStub("2025-12-25"))

	breakdown, err := service.Calculate(context.Background(), CalculationInput{
		ShiftId:   102,
		CompanyId: 1,
		DriverId:  7,
		Arrival:   time.Date(2025, time.December, 25, 9, 0, 0, 0, london),
		Departure: time.Date(2025, time.December, 25, 14, 0, 0, 0, london),
	})

	require.NoError(t, err)
	assert.Equal(t, MinuteBuckets{BankHoliday: 300}, breakdown.Minutes)
	assert.Equal(t, 300, breakdown.Minutes.Total())
	assert.Equal(t, "125.00", breakdown.BankHolidayPay.StringFixed(2))
	assert.Equal(t, "125.00", breakdown.TotalPay.StringFixed(2))
}

func TestServiceImpl_Calculate_IsIdempotent(t *testing.T) {
	service, repo, _ := setupService(newHolidayOracleStub())
	input := CalculationInput{
		ShiftId:   103,
		CompanyId: 1,
		DriverId:  7,
		Arrival:   time.Date(2025, time.June, 2, 8, 0, 0, 0, london),
		Departure: time.Date(2025, time.June, 2, 16, 0, 0, 0, london),
	}

	first, err := service.Calculate(context.Background(), input)
	require.NoError(t, err)
	second, err := service.Calculate(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.StoredCount())
	assert.Equal(t, first.Minutes, second.Minutes)
	assert.Equal(t, first.OvertimeMinutes, second.OvertimeMinutes)
	assert.True(t, first.TotalPay.Equal(second.TotalPay))

	stored, err := service.GetCalculation(context.Background(), input.ShiftId)
	require.NoError(t, err)
	assert.Equal(t, second.Uid, stored.Uid)
}

func TestServiceImpl_Calculate_RejectsMalformedShift(t *testing.T) {
	service, repo, _ := setupService(newHolidayOracleStub())
	arrival := time.Date(2025, time.June, 2, 16, 0, 0, 0, london)

	_, err := service.Calculate(context.Background(), CalculationInput{
		ShiftId:   104,
		CompanyId: 1,
		DriverId:  7,
		Arrival:   arrival,
		Departure: arrival, // departure must be strictly after arrival
	})

	assert.True(t, errors.Is(err, ErrInvalidShift))
	assert.Equal(t, 0, repo.StoredCount())
}

func TestServiceImpl_Calculate_NoPolicyIsFatal(t *testing.T) {
	service, repo, resolver := setupService(newHolidayOracleStub())
	resolver.err = fmt.Errorf("no rate configured")

	_, err := service.Calculate(context.Background(), CalculationInput{
		ShiftId:   105,
		CompanyId: 1,
		DriverId:  7,
		Arrival:   time.Date(2025, time.June, 2, 8, 0, 0, 0, london),
		Departure: time.Date(2025, time.June, 2, 16, 0, 0, 0, london),
	})

	require.Error(t, err)
	assert.Equal(t, 0, repo.StoredCount())
}

func TestServiceImpl_Calculate_PersistenceFailurePropagates(t *testing.T) {
	service, repo, _ := setupService(newHolidayOracleStub())
	repo.SetUpsertError(fmt.Errorf("disk full"))

	_, err := service.Calculate(context.Background(), CalculationInput{
		ShiftId:   106,
		CompanyId: 1,
		DriverId:  7,
		Arrival:   time.Date(2025, time.June, 2, 8, 0, 0, 0, london),
		Departure: time.Date(2025, time.June, 2, 16, 0, 0, 0, london),
	})

	require.Error(t, err)

	_, err = service.GetCalculation(context.Background(), 106)
	assert.True(t, errors.Is(err, ErrCalculationNotFound))
}

func TestServiceImpl_Calculate_PublishesEvent(t *testing.T) {
	repo := NewStubWageRepo()
	resolver := &rateResolverStub{policy: testPolicy()}
	bus := event_bus.NewEventBus()
	clock := &utils.MockClock{FixedNow: calculationTestNow}
	service := NewService(repo, resolver, newHolidayOracleStub(), london, bus, clock)

	var received []event_bus.WageCalculated
	unsubscribe := event_bus.SubscribeTyped[event_bus.WageCalculated](bus, event_bus.EventWageCalculated,
		func(e event_bus.EventT[event_bus.WageCalculated]) error {
			received = append(received, e.Data)
			return nil
		})
	defer unsubscribe()

	_, err := service.Calculate(context.Background(), CalculationInput{
		ShiftId:   107,
		CompanyId: 1,
		DriverId:  7,
		Arrival:   time.Date(2025, time.June, 2, 8, 0, 0, 0, london),
		Departure: time.Date(2025, time.June, 2, 16, 0, 0, 0, london),
	})

	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, 107, received[0].ShiftId)
	assert.Equal(t, "100.00", received[0].TotalPay)
}

func TestServiceImpl_GetCalculation_NotFound(t *testing.T) {
	service, _, _ := setupService(newHolidayOracleStub())

	_, err := service.GetCalculation(context.Background(), 999)

	assert.True(t, errors.Is(err, ErrCalculationNotFound))
}
