package deadletterconfig

import (
	"time"

	"github.com/nspcc-dev/infovault/cmd/infovault/config"
)

const (
	subsection = "dead_letter"

	// TimeoutDefault is a default timeout of the database lock acquisition.
	TimeoutDefault = time.Second
)

// Path returns the value of "path" config parameter from "dead_letter"
// section.
//
// Returns empty string if the value is missing, dead letters are only
// logged then.
func Path(c *config.Config) string {
	return config.StringSafe(c.Sub(subsection), "path")
}

// Timeout returns the value of "timeout" config parameter
// from "dead_letter" section.
//
// Returns TimeoutDefault if the value is not positive duration.
func Timeout(c *config.Config) time.Duration {
	v := config.DurationSafe(c.Sub(subsection), "timeout")
	if v > 0 {
		return v
	}

	return TimeoutDefault
}
