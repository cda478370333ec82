// Package config describes the small amount of process-level configuration
// the front-end needs, following the validated/defaulted struct style of
// go.viam.com/rdk/config rather than free-floating flags or environment
// variables.
package config

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// TransportQueueDepth is the bounded queue depth the upstream transport is
// expected to enforce ahead of ingress (spec.md §4.1); the front-end itself
// keeps its queues unbounded and relies on this as documentation of the
// expected backpressure point, not an enforced limit.
const TransportQueueDepth = 2000

// Config holds the parameters the front-end needs beyond what the back-end
// estimator already owns (gravity, td): the logger name and any deployment
// overrides of the transport queue-depth hint.
type Config struct {
	// LoggerName tags the logger constructed for this front-end instance.
	LoggerName string `json:"logger_name"`
	// TransportQueueDepth documents the expected upstream bound; purely
	// informational, never enforced by the queues themselves.
	TransportQueueDepth int `json:"transport_queue_depth"`
}

// Validate fills in defaults and rejects nonsensical values, matching the
// validate-then-default pattern of go.viam.com/rdk/config.Component. Field
// checks accumulate through multierr rather than returning on the first
// failure, so a caller fixing a bad config sees every problem at once
// instead of one per Validate call.
func (c *Config) Validate() error {
	if c.LoggerName == "" {
		c.LoggerName = "vio-frontend"
	}
	if c.TransportQueueDepth == 0 {
		c.TransportQueueDepth = TransportQueueDepth
	}

	var errs error
	if c.TransportQueueDepth < 0 {
		errs = multierr.Append(errs, errors.Errorf("transport_queue_depth must be non-negative, got %d", c.TransportQueueDepth))
	}
	return errs
}
