package resilience

import (
	"errors"
	"time"

	"github.com/riskibarqy/lft-board/internal/platform/logging"
)

// CircuitBreakerConfig tunes one breaker. Zero numeric fields take the
// defaults below.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

const (
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 15 * time.Second
	defaultHalfOpenMaxReq   = 2
)

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: defaultFailureThreshold,
		OpenTimeout:      defaultOpenTimeout,
		HalfOpenMaxReq:   defaultHalfOpenMaxReq,
	}
}

// Validate rejects explicitly negative settings. Zero values are allowed and
// resolved by withDefaults.
func (c CircuitBreakerConfig) Validate() error {
	var errs []error
	if c.FailureThreshold < 0 {
		errs = append(errs, errors.New("failure threshold must be >= 1"))
	}
	if c.OpenTimeout < 0 {
		errs = append(errs, errors.New("open timeout must be positive"))
	}
	if c.HalfOpenMaxReq < 0 {
		errs = append(errs, errors.New("half-open probe count must be >= 1"))
	}
	return errors.Join(errs...)
}

func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = defaultFailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaultOpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = defaultHalfOpenMaxReq
	}
	return c
}

// LogStateChanges reports breaker transitions for dependency. Opening is a
// warning, anything else is informational.
func LogStateChanges(logger *logging.Logger, dependency string) StateListener {
	return func(from, to CircuitState) {
		if to == CircuitStateOpen {
			logger.Warn("circuit breaker opened", "dependency", dependency, "from", string(from))
			return
		}
		logger.Info("circuit breaker state changed", "dependency", dependency, "from", string(from), "to", string(to))
	}
}
