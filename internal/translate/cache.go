package translate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	log "log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrMiss = errors.New("cache miss")

// Store is the key/value backend of a Cached translator.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Cached remembers successful translations. Store failures only cost a cache
// hit; they never fail the translation.
type Cached struct {
	next  Translator
	store Store
	ttl   time.Duration
}

func NewCached(next Translator, store Store, ttl time.Duration) *Cached {
	return &Cached{next: next, store: store, ttl: ttl}
}

func (c *Cached) Translate(ctx context.Context, text, from, to string) (string, error) {
	key := cacheKey(text, from, to)

	if v, err := c.store.Get(ctx, key); err == nil {
		return v, nil
	} else if !errors.Is(err, ErrMiss) {
		log.Warn("Translation cache read failed", "err", err)
	}

	out, err := c.next.Translate(ctx, text, from, to)
	if err != nil {
		return "", err
	}
	if err := c.store.Set(ctx, key, out, c.ttl); err != nil {
		log.Warn("Translation cache write failed", "err", err)
	}
	return out, nil
}

func cacheKey(text, from, to string) string {
	sum := sha256.Sum256([]byte(text))
	return "tutor:tr:" + from + ":" + to + ":" + hex.EncodeToString(sum[:])
}

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return v, err
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}
