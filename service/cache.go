// file: service/cache.go

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ICacheClient defines the contract for a cache client.
// This abstraction decouples the services from a concrete Redis
// implementation, enabling easier testing and future flexibility.
type ICacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// historyCacheKey is the Redis key under which an account's transaction
// history is cached. The engine deletes it after every successful mutation.
func historyCacheKey(accountID string) string {
	return fmt.Sprintf("txns:%s", accountID)
}
