package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const limitWindow = 24 * time.Hour

// SubmissionLimiter counts report submissions per user per rolling day.
// Key format: reports:limit:<user_id>
type SubmissionLimiter struct {
	client *redis.Client
	limit  int64
}

func NewSubmissionLimiter(client *redis.Client, limit int) *SubmissionLimiter {
	return &SubmissionLimiter{client: client, limit: int64(limit)}
}

// Allow increments the user's counter and reports whether the submission
// fits the daily limit. The TTL starts with the first submission in the
// window.
func (l *SubmissionLimiter) Allow(ctx context.Context, userID string) (bool, int64, error) {
	key := fmt.Sprintf("reports:limit:%s", userID)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, limitWindow).Err(); err != nil {
			return false, 0, fmt.Errorf("rate limit expire: %w", err)
		}
	}

	if count > l.limit {
		ttl, err := l.client.TTL(ctx, key).Result()
		if err != nil {
			ttl = limitWindow
		}
		return false, int64(ttl.Seconds()), nil
	}
	return true, 0, nil
}
