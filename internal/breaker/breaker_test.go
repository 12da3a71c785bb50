package breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_PassesThrough(t *testing.T) {
	cb := New("test", DefaultSettings)

	out, err := Do(cb, func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	boom := errors.New("boom")
	_, err = Do(cb, func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, Open(err))
}

func TestDo_OpensAfterConsecutiveFailures(t *testing.T) {
	cb := New("test", Settings{Failures: 2, Cooldown: time.Minute})
	fail := func() (int, error) { return 0, errors.New("down") }

	_, _ = Do(cb, fail)
	_, _ = Do(cb, fail)

	called := false
	_, err := Do(cb, func() (int, error) {
		called = true
		return 1, nil
	})
	assert.True(t, Open(err))
	assert.False(t, called)
}
