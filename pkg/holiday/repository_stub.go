package holiday

import (
	"context"
	"time"
)

type StubRepository struct {
	nextId    int
	holidays  []BankHoliday
	storeErr  error
	existsErr error
}

func NewStubRepository() *StubRepository {
	return &StubRepository{}
}

func (s *StubRepository) ExistsOnDate(ctx context.Context, companyId int, date time.Time) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	day := date.Format(dateLayout)
	for _, holiday := range s.holidays {
		if holiday.CompanyId == companyId && holiday.Date.Format(dateLayout) == day {
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepository) Store(ctx context.Context, companyId int, holiday BankHoliday) (int, error) {
	if s.storeErr != nil {
		return 0, s.storeErr
	}
	s.nextId++
	holiday.ID = s.nextId
	holiday.CompanyId = companyId
	s.holidays = append(s.holidays, holiday)
	return holiday.ID, nil
}

func (s *StubRepository) GetByYear(ctx context.Context, companyId int, year int) ([]BankHoliday, error) {
	holidays := make([]BankHoliday, 0, len(s.holidays))
	for _, holiday := range s.holidays {
		if holiday.CompanyId == companyId && holiday.Date.Year() == year {
			holidays = append(holidays, holiday)
		}
	}
	return holidays, nil
}

func (s *StubRepository) StoredCount() int {
	return len(s.holidays)
}

func (s *StubRepository) Cleanup() {
	s.holidays = nil
	s.nextId = 0
	s.storeErr = nil
	s.existsErr = nil
}
