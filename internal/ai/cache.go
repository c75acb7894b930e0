package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
	"github.com/SscSPs/negotiation_tracker/internal/middleware"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "negotiation_tracker:ai:"

// CachedAssistant memoizes successful replies in Redis. Cache failures are
// logged and bypassed; they never fail a call.
type CachedAssistant struct {
	next   Assistant
	client redis.UniversalClient
	ttl    time.Duration
}

var _ Assistant = (*CachedAssistant)(nil)

// NewCachedAssistant wraps next with a cache whose entries expire after ttl.
func NewCachedAssistant(next Assistant, client redis.UniversalClient, ttl time.Duration) *CachedAssistant {
	return &CachedAssistant{next: next, client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

func (c *CachedAssistant) Polish(ctx context.Context, text string) (string, error) {
	return c.cached(ctx, cacheKey("polish", "", text), func() (string, error) {
		return c.next.Polish(ctx, text)
	})
}

func (c *CachedAssistant) SuggestNextAction(ctx context.Context, description string, status domain.Status) (string, error) {
	return c.cached(ctx, cacheKey("suggest", status.String(), description), func() (string, error) {
		return c.next.SuggestNextAction(ctx, description, status)
	})
}

func (c *CachedAssistant) cached(ctx context.Context, key string, call func() (string, error)) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hit, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		logger.Debug("AI cache hit", slog.String("key", key))
		return hit, nil
	case !errors.Is(err, redis.Nil):
		logger.Warn("AI cache read failed", slog.String("error", err.Error()))
	}

	out, err := call()
	if err != nil || out == "" {
		return out, err
	}
	if err := c.client.Set(ctx, key, out, c.ttl).Err(); err != nil {
		logger.Warn("AI cache write failed", slog.String("error", err.Error()))
	}
	return out, nil
}

func cacheKey(op, status, input string) string {
	h := sha256.New()
	h.Write([]byte(op))
	h.Write([]byte{0})
	h.Write([]byte(status))
	h.Write([]byte{0})
	h.Write([]byte(input))
	return cacheKeyPrefix + op + ":" + hex.EncodeToString(h.Sum(nil))
}
