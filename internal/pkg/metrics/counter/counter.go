package counter

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/ManuelReschke/LeadPay/app/models"
)

const paymentOutcomesKey = "payments:counters:outcome"

// OutcomeCounter keeps one Redis hash field per payment outcome.
type OutcomeCounter struct {
	rdb *redis.Client
	key string
}

// NewOutcomeCounter creates a counter on the given client.
func NewOutcomeCounter(rdb *redis.Client) *OutcomeCounter {
	return &OutcomeCounter{rdb: rdb, key: paymentOutcomesKey}
}

// RecordOutcome increments the counter for outcome.
func (c *OutcomeCounter) RecordOutcome(ctx context.Context, outcome string) error {
	return c.rdb.HIncrBy(ctx, c.key, outcome, 1).Err()
}

// Snapshot returns the current count of every known outcome, zero-filled.
func (c *OutcomeCounter) Snapshot(ctx context.Context) (map[string]int64, error) {
	data, err := c.rdb.HGetAll(ctx, c.key).Result()
	if err != nil {
		return nil, err
	}
	return parseCounts(data), nil
}

func parseCounts(data map[string]string) map[string]int64 {
	out := make(map[string]int64, len(models.PaymentOutcomes))
	for _, outcome := range models.PaymentOutcomes {
		out[outcome] = 0
	}
	for k, v := range data {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		out[k] = n
	}
	return out
}
