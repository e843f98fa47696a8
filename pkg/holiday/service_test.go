package holiday

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fleetwage/fleetwage/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serviceTestNow = time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)

func setupOracle() (*OracleImpl, *StubRepository, *StubClient, *utils.MockClock) {
	repo := NewStubRepository()
	client := NewStubClient()
	clock := &utils.MockClock{FixedNow: serviceTestNow}
	cache := NewFeedCache(24*time.Hour, clock)
	return NewOracle(repo, client, cache), repo, client, clock
}

func TestOracleImpl_IsHoliday_ImportsFeedOnFirstQuery(t *testing.T) {
	oracle, repo, client, _ := setupOracle()
	ctx := context.Background()

	christmas := time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC)
	client.SetEvents([]FeedEvent{
		{Title: "Christmas Day", Date: christmas},
		{Title: "Boxing Day", Date: christmas.AddDate(0, 0, 1)},
	})

	isHoliday, err := oracle.IsHoliday(ctx, 1, christmas)

	require.NoError(t, err)
	assert.True(t, isHoliday)
	assert.Equal(t, 2, repo.StoredCount())
	assert.Equal(t, 1, client.FetchCalls())
}

func TestOracleImpl_IsHoliday_DoesNotRefetchWithinTTL(t *testing.T) {
	oracle, _, client, _ := setupOracle()
	ctx := context.Background()

	date := time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC)
	client.SetEvents([]FeedEvent{{Title: "Christmas Day", Date: date}})

	_, err := oracle.IsHoliday(ctx, 1, date)
	require.NoError(t, err)
	_, err = oracle.IsHoliday(ctx, 1, date)
	require.NoError(t, err)

	assert.Equal(t, 1, client.FetchCalls())
}

func TestOracleImpl_IsHoliday_RefetchesAfterTTL(t *testing.T) {
	oracle, _, client, clock := setupOracle()
	ctx := context.Background()

	date := time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC)
	client.SetEvents([]FeedEvent{{Title: "Christmas Day", Date: date}})

	_, err := oracle.IsHoliday(ctx, 1, date)
	require.NoError(t, err)

	clock.SetNow(serviceTestNow.Add(25 * time.Hour))
	_, err = oracle.IsHoliday(ctx, 1, date)
	require.NoError(t, err)

	assert.Equal(t, 2, client.FetchCalls())
}

func TestOracleImpl_IsHoliday_ImportIsIdempotent(t *testing.T) {
	oracle, repo, client, clock := setupOracle()
	ctx := context.Background()

	date := time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC)
	client.SetEvents([]FeedEvent{{Title: "Christmas Day", Date: date}})

	_, err := oracle.IsHoliday(ctx, 1, date)
	require.NoError(t, err)

	// Force a second refresh; the already-stored holiday must not be duplicated.
	clock.SetNow(serviceTestNow.Add(48 * time.Hour))
	_, err = oracle.IsHoliday(ctx, 1, date)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.StoredCount())
}

func TestOracleImpl_IsHoliday_FeedFailureFallsBackToStoredRows(t *testing.T) {
	oracle, repo, client, _ := setupOracle()
	ctx := context.Background()

	date := time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC)
	_, err := repo.Store(ctx, 1, BankHoliday{Name: "Christmas Day", Date: date})
	require.NoError(t, err)
	client.SetError(fmt.Errorf("connection refused"))

	isHoliday, err := oracle.IsHoliday(ctx, 1, date)

	require.NoError(t, err)
	assert.True(t, isHoliday)
}

func TestOracleImpl_IsHoliday_FeedFailureDoesNotMarkCacheRefreshed(t *testing.T) {
	oracle, _, client, _ := setupOracle()
	ctx := context.Background()

	date := time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC)
	client.SetError(fmt.Errorf("connection refused"))

	_, err := oracle.IsHoliday(ctx, 1, date)
	require.NoError(t, err)

	// The failed refresh left the cache expired, so the next query tries again.
	client.SetError(nil)
	client.SetEvents([]FeedEvent{{Title: "Christmas Day", Date: date}})
	isHoliday, err := oracle.IsHoliday(ctx, 1, date)

	require.NoError(t, err)
	assert.True(t, isHoliday)
	assert.Equal(t, 2, client.FetchCalls())
}

func TestOracleImpl_IsHoliday_NonHolidayDate(t *testing.T) {
	oracle, _, client, _ := setupOracle()
	ctx := context.Background()

	client.SetEvents([]FeedEvent{{Title: "Christmas Day", Date: time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC)}})

	isHoliday, err := oracle.IsHoliday(ctx, 1, time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.False(t, isHoliday)
}
