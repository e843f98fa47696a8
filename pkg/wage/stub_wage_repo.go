package wage

import (
	"context"
)

type StubWageRepo struct {
	data      map[int]Breakdown
	upsertErr error
}

func NewStubWageRepo() *StubWageRepo {
	return &StubWageRepo{data: map[int]Breakdown{}}
}

func (s *StubWageRepo) Upsert(ctx context.Context, breakdown Breakdown) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.data[breakdown.ShiftId] = breakdown
	return nil
}

func (s *StubWageRepo) GetByShiftId(ctx context.Context, shiftId int) (Breakdown, error) {
	breakdown, ok := s.data[shiftId]
	if !ok {
		return Breakdown{}, ErrCalculationNotFound
	}
	return breakdown, nil
}

func (s *StubWageRepo) StoredCount() int {
	return len(s.data)
}

func (s *StubWageRepo) SetUpsertError(err error) {
	s.upsertErr = err
}

func (s *StubWageRepo) Cleanup() {
	s.data = map[int]Breakdown{}
	s.upsertErr = nil
}
