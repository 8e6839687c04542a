// Package resilience configures the circuit breakers that guard calls to
// remote speech services.
package resilience

import (
	"log"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerConfig holds tuning knobs for a circuit breaker
type BreakerConfig struct {
	Name string

	// MaxFailures is the number of consecutive failures before the breaker opens
	MaxFailures uint32

	// ResetTimeout is how long the breaker stays open before probing again
	ResetTimeout time.Duration
}

// DefaultBreakerConfig returns the defaults used for speech services
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:         name,
		MaxFailures:  3,
		ResetTimeout: 30 * time.Second,
	}
}

// NewBreaker creates a gobreaker circuit breaker from cfg
func NewBreaker(cfg BreakerConfig) *gobreaker.CircuitBreaker {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 3
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = 30 * time.Second
	}
	maxFailures := cfg.MaxFailures

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.ResetTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})
}

// IsOpen reports whether err was returned because the breaker rejected the call
func IsOpen(err error) bool {
	return err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests
}
