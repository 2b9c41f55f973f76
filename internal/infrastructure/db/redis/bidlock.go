package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const lockTTL = 5 * time.Second

// BidLock serialises bid placement per auction with a Redis SET NX lock.
// Key format: bidlock:<auction_id>
type BidLock struct {
	client *redis.Client
}

// NewBidLock creates a BidLock wrapping the given Redis client.
func NewBidLock(client *redis.Client) *BidLock {
	return &BidLock{client: client}
}

// Acquire attempts to take the per-auction lock. It reports false without
// error when another placement already holds it. The TTL guards against a
// crashed holder leaving the auction locked.
func (l *BidLock) Acquire(ctx context.Context, auctionID string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(auctionID), "1", lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("bid lock acquire: %w", err)
	}
	return ok, nil
}

// Release frees the lock. Releasing a lock that already expired is harmless.
func (l *BidLock) Release(ctx context.Context, auctionID string) error {
	return l.client.Del(ctx, l.key(auctionID)).Err()
}

func (l *BidLock) key(auctionID string) string {
	return fmt.Sprintf("bidlock:%s", auctionID)
}
