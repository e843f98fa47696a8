package wage

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetwage/fleetwage/internal/event_bus"
	"github.com/fleetwage/fleetwage/internal/utils"
	"github.com/fleetwage/fleetwage/pkg/payrate"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RateResolver selects the pay rate policy applicable to a driver.
type RateResolver interface {
	Resolve(ctx context.Context, companyId int, driverId int) (payrate.PayRatePolicy, error)
}

// HolidayOracle answers whether a calendar date is a bank holiday for a
// company.
type HolidayOracle interface {
	IsHoliday(ctx context.Context, companyId int, date time.Time) (bool, error)
}

type Service interface {
	// Calculate prices the given shift and persists the breakdown. The
	// result for a shift is overwritten on recalculation, never versioned.
	Calculate(ctx context.Context, input CalculationInput) (Breakdown, error)
	// GetCalculation returns the stored breakdown for a shift, or
	// ErrCalculationNotFound.
	GetCalculation(ctx context.Context, shiftId int) (Breakdown, error)
}

type ServiceImpl struct {
	repo     Repository
	resolver RateResolver
	oracle   HolidayOracle
	location *time.Location
	bus      *event_bus.EventBus
	clock    utils.Clock
}

func NewService(repo Repository, resolver RateResolver, oracle HolidayOracle,
	location *time.Location, bus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		repo:     repo,
		resolver: resolver,
		oracle:   oracle,
		location: location,
		bus:      bus,
		clock:    clock,
	}
}

func (s *ServiceImpl) Calculate(ctx context.Context, input CalculationInput) (Breakdown, error) {
	if !input.Departure.After(input.Arrival) {
		return Breakdown{}, fmt.Errorf("shift %d (%s - %s): %w",
			input.ShiftId, input.Arrival, input.Departure, ErrInvalidShift)
	}

	policy, err := s.resolver.Resolve(ctx, input.CompanyId, input.DriverId)
	if err != nil {
		return Breakdown{}, err
	}

	buckets, err := classifyMinutes(ctx, s.oracle, input.CompanyId, policy, input.Arrival, input.Departure, s.location)
	if err != nil {
		return Breakdown{}, fmt.Errorf("failed to classify shift minutes: %w", err)
	}

	totalMinutes := int(input.Departure.Sub(input.Arrival) / time.Minute)
	overtime := overtimeMinutes(totalMinutes, policy.DailyOvertimeThreshold)

	breakdown := Breakdown{
		Uid:             uuid.New(),
		ShiftId:         input.ShiftId,
		CompanyId:       input.CompanyId,
		DriverId:        input.DriverId,
		Minutes:         buckets,
		OvertimeMinutes: overtime,
		CalculatedAt:    s.clock.Now(),
	}
	breakdown.RegularPay, breakdown.NightPay, breakdown.WeekendPay,
		breakdown.BankHolidayPay, breakdown.OvertimePay, breakdown.TotalPay = composePay(buckets, overtime, policy)

	if err := s.repo.Upsert(ctx, breakdown); err != nil {
		return Breakdown{}, fmt.Errorf("failed to store wage calculation: %w", err)
	}

	s.publishCalculated(ctx, input, breakdown)

	return breakdown, nil
}

func (s *ServiceImpl) GetCalculation(ctx context.Context, shiftId int) (Breakdown, error) {
	return s.repo.GetByShiftId(ctx, shiftId)
}

// publishCalculated notifies subscribers about a stored calculation.
// Subscriber failures are logged only; the calculation already succeeded.
func (s *ServiceImpl) publishCalculated(ctx context.Context, input CalculationInput, breakdown Breakdown) {
	if s.bus == nil {
		return
	}
	event := event_bus.NewEvent(ctx, event_bus.EventWageCalculated, event_bus.WageCalculated{
		ShiftId:         breakdown.ShiftId,
		CompanyId:       breakdown.CompanyId,
		DriverId:        breakdown.DriverId,
		Arrival:         input.Arrival,
		Departure:       input.Departure,
		OvertimeMinutes: breakdown.OvertimeMinutes,
		TotalPay:        breakdown.TotalPay.Round(2).String(),
	})
	if err := s.bus.Publish(event); err != nil {
		log.Errorf("failed to publish %s event for shift %d: %v", event_bus.EventWageCalculated, breakdown.ShiftId, err)
	}
}
