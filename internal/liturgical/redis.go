package liturgical

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/julianstephens/ruleoflife/internal/constants"
	"github.com/julianstephens/ruleoflife/internal/models"
)

// RedisCache keeps liturgical days in one Redis hash per year, keyed by
// date, expiring after a TTL.
type RedisCache struct {
	rdb    goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisCache connects to the Redis server at url (redis://...) and checks
// that it answers.
func NewRedisCache(ctx context.Context, url string) (*RedisCache, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second

	rdb := goredis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisCacheFromClient(rdb), nil
}

func NewRedisCacheFromClient(rdb goredis.UniversalClient) *RedisCache {
	return &RedisCache{
		rdb:    rdb,
		prefix: constants.LiturgicalCachePrefix,
		ttl:    constants.LiturgicalCacheTTL,
	}
}

func (c *RedisCache) key(date string) string {
	// date is YYYY-MM-DD; the hash is per year.
	if len(date) < 4 {
		return c.prefix + date
	}
	return c.prefix + date[:4]
}

func (c *RedisCache) GetLiturgicalDay(ctx context.Context, date string) (*models.LiturgicalDay, error) {
	raw, err := c.rdb.HGet(ctx, c.key(date), date).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var day models.LiturgicalDay
	if err := json.Unmarshal(raw, &day); err != nil {
		return nil, fmt.Errorf("decode cached day %s: %w", date, err)
	}
	return &day, nil
}

func (c *RedisCache) PutLiturgicalDays(ctx context.Context, days []models.LiturgicalDay) error {
	if len(days) == 0 {
		return nil
	}
	fields := make(map[string][]interface{})
	for _, d := range days {
		raw, err := json.Marshal(d)
		if err != nil {
			return err
		}
		k := c.key(d.Date)
		fields[k] = append(fields[k], d.Date, raw)
	}

	_, err := c.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for k, values := range fields {
			pipe.HSet(ctx, k, values...)
			pipe.Expire(ctx, k, c.ttl)
		}
		return nil
	})
	return err
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
