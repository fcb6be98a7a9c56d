package utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

var redisClient *redis.Client

func SetRedis(client *redis.Client) {
	redisClient = client
}

func GetRedis() *redis.Client {
	return redisClient
}

var ctx = context.Background()

func RedisCtx() context.Context {
	return ctx
}

// CacheGetJSON reads a cached value into dest. Returns false on miss,
// unreachable Redis or a stale/corrupt entry.
func CacheGetJSON(key string, dest interface{}) bool {
	rdb := GetRedis()
	if rdb == nil {
		return false
	}
	raw, err := rdb.Get(ctx, key).Bytes()
	if err != nil || len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// CacheSetJSON stores a value under key with the given TTL. Failures are
// ignored: the cache is an optimization, never a source of truth.
func CacheSetJSON(key string, value interface{}, ttl time.Duration) {
	rdb := GetRedis()
	if rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = rdb.Set(ctx, key, raw, ttl).Err()
}

// CacheDel removes keys, ignoring errors and missing Redis.
func CacheDel(keys ...string) {
	rdb := GetRedis()
	if rdb == nil || len(keys) == 0 {
		return
	}
	_ = rdb.Del(ctx, keys...).Err()
}
