package natsconfig

import (
	"time"

	"github.com/nspcc-dev/infovault/cmd/infovault/config"
	"github.com/spf13/cast"
)

const (
	subsection = "nats"

	// EndpointDefault is a default NATS server endpoint.
	EndpointDefault = "nats://localhost:4222"

	// SubjectDefault is a default subject envelopes are received from.
	SubjectDefault = "infovault"

	// WorkersDefault is a default size of the envelope worker pool.
	WorkersDefault = 16

	// TimeoutDefault is a default timeout of the connection to NATS server.
	TimeoutDefault = 5 * time.Second
)

// Enabled returns the value of "enabled" config parameter
// from "nats" section.
//
// Returns false if the value is missing or invalid.
func Enabled(c *config.Config) bool {
	return config.BoolSafe(c.Sub(subsection), "enabled")
}

// Endpoint returns the value of "endpoint" config parameter
// from "nats" section.
//
// Returns EndpointDefault if the value is not set.
func Endpoint(c *config.Config) string {
	v := config.StringSafe(c.Sub(subsection), "endpoint")
	if v != "" {
		return v
	}

	return EndpointDefault
}

// Subject returns the value of "subject" config parameter
// from "nats" section.
//
// Returns SubjectDefault if the value is not set.
func Subject(c *config.Config) string {
	v := config.StringSafe(c.Sub(subsection), "subject")
	if v != "" {
		return v
	}

	return SubjectDefault
}

// Queue returns the value of "queue" config parameter
// from "nats" section.
//
// Returns empty string if the value is not set, so the subscription
// is not a queue one.
func Queue(c *config.Config) string {
	return config.StringSafe(c.Sub(subsection), "queue")
}

// Workers returns the value of "workers" config parameter
// from "nats" section. Zero means envelopes are handled
// in the subscription routine.
//
// Returns WorkersDefault if the value is missing or invalid.
func Workers(c *config.Config) int {
	v := c.Sub(subsection).Value("workers")
	if v == nil {
		return WorkersDefault
	}

	n, err := cast.ToUint64E(v)
	if err != nil {
		return WorkersDefault
	}

	return int(n)
}

// Timeout returns the value of "timeout" config parameter
// from "nats" section.
//
// Returns TimeoutDefault if the value is not positive duration.
func Timeout(c *config.Config) time.Duration {
	v := config.DurationSafe(c.Sub(subsection), "timeout")
	if v > 0 {
		return v
	}

	return TimeoutDefault
}
