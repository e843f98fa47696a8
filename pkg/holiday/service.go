package holiday

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

type Oracle interface {
	// IsHoliday reports whether the given calendar date is a bank holiday
	// for the company. The answer always comes from locally stored rows;
	// an expired cache triggers a best-effort feed refresh beforehand.
	IsHoliday(ctx context.Context, companyId int, date time.Time) (bool, error)
}

type OracleImpl struct {
	repo   Repository
	client Client
	cache  *FeedCache
}

func NewOracle(repo Repository, client Client, cache *FeedCache) *OracleImpl {
	return &OracleImpl{repo: repo, client: client, cache: cache}
}

func (o *OracleImpl) IsHoliday(ctx context.Context, companyId int, date time.Time) (bool, error) {
	o.refreshIfExpired(ctx, companyId, date.Year())
	return o.repo.ExistsOnDate(ctx, companyId, date)
}

// refreshIfExpired fetches the public feed and imports holidays that are
// not yet stored for the company. A fetch failure is logged and ignored:
// the read path falls back to whatever rows already exist, so the feed
// being down must never fail a wage calculation.
func (o *OracleImpl) refreshIfExpired(ctx context.Context, companyId int, year int) {
	if !o.cache.Expired() {
		return
	}

	events, err := o.client.FetchYear(ctx, year)
	if err != nil {
		log.Warnf("holiday feed refresh failed, using stored holidays only: %v", err)
		return
	}

	imported := 0
	for _, event := range events {
		// Uniqueness is by date range, not a key, so check before writing.
		exists, err := o.repo.ExistsOnDate(ctx, companyId, event.Date)
		if err != nil {
			log.Errorf("failed to check stored holiday for %s: %v", event.Date.Format(dateLayout), err)
			continue
		}
		if exists {
			continue
		}
		if _, err := o.repo.Store(ctx, companyId, BankHoliday{Name: event.Title, Date: event.Date}); err != nil {
			log.Errorf("failed to store holiday %q: %v", event.Title, err)
			continue
		}
		imported++
	}
	if imported > 0 {
		log.Infof("imported %d bank holidays for company %d, year %d", imported, companyId, year)
	}

	o.cache.MarkRefreshed()
}
