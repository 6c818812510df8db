package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis writes counters into Redis hashes:
//
//	<prefix>:total            outcome -> count, never expires
//	<prefix>:day:<YYYYMMDD>   outcome -> count, expires after ttl
//	<prefix>:lang             <language>:<outcome> -> count
type Redis struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOption configures a Redis recorder.
type RedisOption func(*Redis)

// WithPrefix sets the key namespace. Surrounding colons are trimmed.
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		if p := strings.Trim(prefix, ":"); p != "" {
			r.prefix = p
		}
	}
}

// WithTTL sets the expiry of daily buckets. Zero keeps them forever.
func WithTTL(d time.Duration) RedisOption {
	return func(r *Redis) { r.ttl = d }
}

// NewRedis creates a recorder on rdb with a 30 day TTL for daily buckets.
func NewRedis(rdb *redis.Client, opts ...RedisOption) *Redis {
	r := &Redis{
		rdb:    rdb,
		prefix: "quoter:metrics",
		ttl:    30 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record implements Recorder.
func (r *Redis) Record(ctx context.Context, ev Event) error {
	if r == nil || r.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	field := string(ev.Outcome)

	pipe := r.rdb.Pipeline()
	pipe.HIncrBy(ctx, r.totalKey(), field, 1)

	dayKey := r.dayKey(at)
	pipe.HIncrBy(ctx, dayKey, field, 1)
	if r.ttl > 0 {
		pipe.Expire(ctx, dayKey, r.ttl)
	}

	if lang := strings.TrimSpace(ev.Language); lang != "" {
		pipe.HIncrBy(ctx, r.languageKey(), lang+":"+field, 1)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record quote metrics: %w", err)
	}
	return nil
}

// Totals returns the cumulative counters per outcome.
func (r *Redis) Totals(ctx context.Context) (map[Outcome]int64, error) {
	raw, err := r.rdb.HGetAll(ctx, r.totalKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("read quote metrics: %w", err)
	}

	out := make(map[Outcome]int64, len(raw))
	for k, v := range raw {
		var n int64
		if _, err := fmt.Sscan(v, &n); err != nil {
			return nil, fmt.Errorf("parse counter %s=%q: %w", k, v, err)
		}
		out[Outcome(k)] = n
	}
	return out, nil
}

func (r *Redis) totalKey() string    { return r.prefix + ":total" }
func (r *Redis) languageKey() string { return r.prefix + ":lang" }

func (r *Redis) dayKey(at time.Time) string {
	return fmt.Sprintf("%s:day:%s", r.prefix, at.UTC().Format("20060102"))
}
