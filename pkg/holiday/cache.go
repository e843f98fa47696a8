package holiday

import (
	"time"

	"github.com/fleetwage/fleetwage/internal/utils"
)

// FeedCache tracks when the holiday feed was last fetched successfully.
// It is injected into the oracle instead of living as package-global
// state so the TTL can be controlled and the cache cleared in tests.
//
// The cache is deliberately unsynchronized: concurrent callers may race
// to refresh, which at worst causes duplicate fetches. The subsequent
// inserts are existence-checked, so duplicates cost work, not
// correctness.
type FeedCache struct {
	ttl         time.Duration
	clock       utils.Clock
	lastRefresh time.Time
}

func NewFeedCache(ttl time.Duration, clock utils.Clock) *FeedCache {
	return &FeedCache{ttl: ttl, clock: clock}
}

// Expired reports whether the last successful refresh is older than the
// TTL (or never happened).
func (c *FeedCache) Expired() bool {
	if c.lastRefresh.IsZero() {
		return true
	}
	return c.clock.Now().Sub(c.lastRefresh) > c.ttl
}

// MarkRefreshed records a successful feed refresh at the current time.
func (c *FeedCache) MarkRefreshed() {
	c.lastRefresh = c.clock.Now()
}

// Invalidate forces the next Expired() call to report true.
func (c *FeedCache) Invalidate() {
	c.lastRefresh = time.Time{}
}

func (c *FeedCache) TTL() time.Duration {
	return c.ttl
}
