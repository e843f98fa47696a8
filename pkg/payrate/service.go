package payrate

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Resolver interface {
	// Resolve returns the pay rate policy applicable to the given driver:
	// the active driver-specific policy when one exists, otherwise the
	// active company default. Returns ErrNoActivePolicy when neither is
	// configured.
	Resolve(ctx context.Context, companyId int, driverId int) (PayRatePolicy, error)
}

type ResolverImpl struct {
	repo PayRateRepo
}

func NewResolver(repo PayRateRepo) *ResolverImpl {
	return &ResolverImpl{repo: repo}
}

func (r *ResolverImpl) Resolve(ctx context.Context, companyId int, driverId int) (PayRatePolicy, error) {
	policy, err := r.repo.FindActive(ctx, companyId, &driverId)
	if errors.Is(err, ErrNoActivePolicy) {
		log.Debugf("no driver-specific pay rate for driver %d, falling back to company %d default", driverId, companyId)
		policy, err = r.repo.FindActive(ctx, companyId, nil)
	}
	if err != nil {
		if errors.Is(err, ErrNoActivePolicy) {
			return PayRatePolicy{}, fmt.Errorf("company %d, driver %d: %w", companyId, driverId, ErrNoActivePolicy)
		}
		return PayRatePolicy{}, fmt.Errorf("failed to resolve pay rate policy: %w", err)
	}

	// Classification puts night above weekend, so a night rate below the
	// weekend rate pays less than the priority order suggests. Surface it
	// instead of reordering.
	if policy.NightRate.LessThan(policy.WeekendRate) {
		log.Warnf("pay rate policy %d has nightRate (%s) lower than weekendRate (%s); night minutes on weekends are paid at the night rate",
			policy.ID, policy.NightRate, policy.WeekendRate)
	}

	return policy, nil
}
