// internal/app/system/notify/redispush.go
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dalemusser/freighthub/internal/domain/models"
)

// RedisPush publishes notifications to per-user Redis channels. The web
// portal subscribes to the same channels and forwards messages to any open
// sessions of the user.
type RedisPush struct {
	rdb    *goredis.Client
	prefix string
}

// NewRedisPush connects to Redis at addr and verifies the connection.
// Published channels are named prefix + userID.
func NewRedisPush(addr, prefix string) (*RedisPush, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisPush{rdb: rdb, prefix: prefix}, nil
}

// Push publishes n to the user's channel.
func (p *RedisPush) Push(ctx context.Context, userID string, n models.Notification) error {
	if p == nil || p.rdb == nil {
		return fmt.Errorf("redis push not initialized")
	}
	raw, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, p.prefix+userID, raw).Err()
}

// Ping reports connection health for readiness checks.
func (p *RedisPush) Ping(ctx context.Context) error {
	if p == nil || p.rdb == nil {
		return fmt.Errorf("redis push not initialized")
	}
	return p.rdb.Ping(ctx).Err()
}

// Close releases the underlying client.
func (p *RedisPush) Close() error {
	if p == nil || p.rdb == nil {
		return nil
	}
	return p.rdb.Close()
}
