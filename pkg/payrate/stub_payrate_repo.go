package payrate

import (
	"context"
)

type StubPayRateRepo struct {
	nextId   int
	policies []PayRatePolicy
}

func NewStubPayRateRepo() *StubPayRateRepo {
	return &StubPayRateRepo{}
}

func (s *StubPayRateRepo) FindActive(ctx context.Context, companyId int, driverId *int) (PayRatePolicy, error) {
	for _, policy := range s.policies {
		if !policy.Active || policy.CompanyId != companyId {
			continue
		}
		if driverId == nil && policy.DriverId == nil {
			return policy, nil
		}
		if driverId != nil && policy.DriverId != nil && *policy.DriverId == *driverId {
			return policy, nil
		}
	}
	return PayRatePolicy{}, ErrNoActivePolicy
}

func (s *StubPayRateRepo) Store(ctx context.Context, policy PayRatePolicy) (int, error) {
	s.nextId++
	policy.ID = s.nextId
	s.policies = append(s.policies, policy)
	return policy.ID, nil
}

func (s *StubPayRateRepo) Cleanup() {
	s.policies = nil
	s.nextId = 0
}
