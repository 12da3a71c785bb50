// Package breaker builds the circuit breakers that keep one failing remote
// service from stalling every request.
package breaker

import (
	"errors"
	log "log/slog"
	"time"

	"github.com/sony/gobreaker"
)

type Settings struct {
	// Consecutive failures before the breaker opens.
	Failures uint32
	// How long the breaker stays open before letting a probe through.
	Cooldown time.Duration
}

var DefaultSettings = Settings{Failures: 5, Cooldown: 30 * time.Second}

func New(name string, s Settings) *gobreaker.CircuitBreaker {
	if s.Failures == 0 {
		s.Failures = DefaultSettings.Failures
	}
	if s.Cooldown <= 0 {
		s.Cooldown = DefaultSettings.Cooldown
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     s.Cooldown,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= s.Failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// Open reports whether err came from a breaker refusing the call.
func Open(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// Do runs fn through cb and returns its typed result.
func Do[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	out, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out.(T), nil
}
