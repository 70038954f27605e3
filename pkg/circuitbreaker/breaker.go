// Package circuitbreaker guards calls to a flaky dependency and fails fast
// while the dependency is known to be down.
package circuitbreaker

import (
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// ErrOpen is returned instead of calling the dependency while the breaker is
// open or half-open with its probe budget spent.
var ErrOpen = errors.New("circuit breaker is open")

type Settings struct {
	Name string
	// ConsecutiveFailures trips the breaker. Defaults to 5.
	ConsecutiveFailures uint32
	// Timeout is how long the breaker stays open before probing. Defaults to 30s.
	Timeout time.Duration
	// HalfOpenRequests is the number of probes allowed while half-open. Defaults to 1.
	HalfOpenRequests uint32
	// IsSuccessful classifies an error returned by the dependency. Errors it
	// accepts do not count as failures. Defaults to err == nil.
	IsSuccessful func(err error) bool
}

type Breaker struct {
	cb *gobreaker.CircuitBreaker[any]
}

func New(s Settings, logger *zap.Logger) *Breaker {
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = 5
	}
	if s.Timeout == 0 {
		s.Timeout = 30 * time.Second
	}
	if s.HalfOpenRequests == 0 {
		s.HalfOpenRequests = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	threshold := s.ConsecutiveFailures
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.HalfOpenRequests,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: s.IsSuccessful,
	})
	return &Breaker{cb: cb}
}

// State reports the breaker state as "closed", "half-open" or "open".
func (b *Breaker) State() string {
	return b.cb.State().String()
}

// Do runs fn through the breaker. Rejected calls return ErrOpen.
func Do[T any](b *Breaker, fn func() (T, error)) (T, error) {
	var zero T
	v, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return zero, ErrOpen
	}
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	return v.(T), nil
}

// Run is Do for calls that return only an error.
func Run(b *Breaker, fn func() error) error {
	_, err := Do(b, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}
