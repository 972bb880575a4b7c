package ratelimit

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

var incrementScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// RedisStore shares windows across instances. Each increment is one atomic
// script call.
type RedisStore struct {
	client    redis.Scripter
	keyPrefix string
	now       func() time.Time
}

func NewRedisStore(client redis.Scripter, keyPrefix string) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		now:       time.Now,
	}
}

func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (Window, error) {
	if s.client == nil {
		return Window{}, crerr.New("redis client is not configured")
	}

	now := s.now()
	values, err := incrementScript.Run(ctx, s.client, []string{s.keyPrefix + key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return Window{}, crerr.Wrapf(err, "increment rate counter key=%s", key)
	}
	if len(values) != 2 {
		return Window{}, crerr.Newf("unexpected rate counter reply length %d", len(values))
	}

	return Window{
		Count:   int(values[0]),
		ResetAt: now.Add(time.Duration(values[1]) * time.Millisecond),
	}, nil
}
