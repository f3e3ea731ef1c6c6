package notify

import (
	"context"
	"fmt"

	"backoffice/internal/app/model"

	"github.com/go-redis/redis/v8"
)

// Channel names the pub/sub channel carrying change notifications for one
// transaction direction. Messages have no payload diff; any message means
// "re-fetch".
func Channel(d model.Direction) string {
	if d == model.DirectionWithdrawal {
		return "backoffice.withdrawals"
	}
	return "backoffice.deposits"
}

// RedisPublisher fans out change notifications after settlement writes.
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

// Publish a change notification for the direction's resource.
func (p *RedisPublisher) Publish(ctx context.Context, d model.Direction) error {
	if err := p.rdb.Publish(ctx, Channel(d), "changed").Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}

	return nil
}
