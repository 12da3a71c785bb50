package translate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	data    map[string]string
	getErr  error
	setErr  error
	lastTTL time.Duration
}

func (m *memStore) Get(_ context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return "", ErrMiss
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.lastTTL = ttl
	return nil
}

type countingTranslator struct {
	calls int
	out   string
	err   error
}

func (c *countingTranslator) Translate(context.Context, string, string, string) (string, error) {
	c.calls++
	return c.out, c.err
}

func TestCached_HitAfterMiss(t *testing.T) {
	store := &memStore{data: map[string]string{}}
	next := &countingTranslator{out: "నమస్కారం"}
	c := NewCached(next, store, time.Hour)

	for range 3 {
		out, err := c.Translate(context.Background(), "hello", "en", "te")
		require.NoError(t, err)
		assert.Equal(t, "నమస్కారం", out)
	}
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, time.Hour, store.lastTTL)
}

func TestCached_KeyIncludesDirection(t *testing.T) {
	assert.NotEqual(t, cacheKey("a", "en", "te"), cacheKey("a", "te", "en"))
	assert.NotEqual(t, cacheKey("a", "en", "te"), cacheKey("b", "en", "te"))
}

func TestCached_ErrorsNotCached(t *testing.T) {
	store := &memStore{data: map[string]string{}}
	next := &countingTranslator{err: errors.New("down")}
	c := NewCached(next, store, time.Hour)

	_, err := c.Translate(context.Background(), "hello", "en", "te")
	assert.Error(t, err)
	assert.Empty(t, store.data)
}

func TestCached_StoreFailureFallsThrough(t *testing.T) {
	store := &memStore{data: map[string]string{}, getErr: errors.New("conn refused"), setErr: errors.New("conn refused")}
	next := &countingTranslator{out: "hi"}
	c := NewCached(next, store, time.Hour)

	out, err := c.Translate(context.Background(), "hello", "en", "te")
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
}
