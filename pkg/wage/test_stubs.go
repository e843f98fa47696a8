package wage

import (
	"context"
	"time"

	"github.com/fleetwage/fleetwage/pkg/payrate"
)

type rateResolverStub struct {
	policy payrate.PayRatePolicy
	err    error
}

func (s *rateResolverStub) Resolve(ctx context.Context, companyId int, driverId int) (payrate.PayRatePolicy, error) {
	if s.err != nil {
		return payrate.PayRatePolicy{}, s.err
	}
	return s.policy, nil
}

type holidayOracleStub struct {
	// holidayDates contains "2006-01-02" formatted dates that count as
	// bank holidays for every company.
	holidayDates map[string]bool
	queries      int
	err          error
}

func newHolidayOracleStub(dates ...string) *holidayOracleStub {
	holidayDates := map[string]bool{}
	for _, date := range dates {
		holidayDates[date] = true
	}
	return &holidayOracleStub{holidayDates: holidayDates}
}

func (s *holidayOracleStub) IsHoliday(ctx context.Context, companyId int, date time.Time) (bool, error) {
	s.queries++
	if s.err != nil {
		return false, s.err
	}
	return s.holidayDates[date.Format(dateLayout)], nil
}
