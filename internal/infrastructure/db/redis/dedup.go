package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hotelhub/hotel-api/internal/api/metrics"
)

const dedupTTL = time.Hour

// DedupChecker remembers processed booking status changes.
// Key format: dedup:booking:<booking_id>:<status>:<unix_nano>
type DedupChecker struct {
	client *redis.Client
}

func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this exact change has already been recorded.
func (d *DedupChecker) IsDuplicate(ctx context.Context, bookingID, status string, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, dedupKey(bookingID, status, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	if n > 0 {
		metrics.EventsDedupTotal.WithLabelValues("hit").Inc()
		return true, nil
	}
	metrics.EventsDedupTotal.WithLabelValues("miss").Inc()
	return false, nil
}

// Mark records the change; the key expires after dedupTTL.
func (d *DedupChecker) Mark(ctx context.Context, bookingID, status string, ts time.Time) error {
	return d.client.Set(ctx, dedupKey(bookingID, status, ts), "1", dedupTTL).Err()
}

func dedupKey(bookingID, status string, ts time.Time) string {
	return fmt.Sprintf("dedup:booking:%s:%s:%d", bookingID, status, ts.UnixNano())
}
