package deadletter

import (
	"time"

	"go.uber.org/zap"
)

type cfg struct {
	log     *zap.Logger
	timeout time.Duration
	noSync  bool
}

// Option allows setting optional parameters of the Storage.
type Option func(*cfg)

func defaultCfg() *cfg {
	return &cfg{
		log:     zap.L(),
		timeout: time.Second,
	}
}

// WithLogger returns an option to specify logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l
	}
}

// WithTimeout returns an option to specify timeout of the database
// file lock acquisition.
func WithTimeout(d time.Duration) Option {
	return func(c *cfg) {
		c.timeout = d
	}
}

// WithNoSync returns an option to skip fsync after each commit.
func WithNoSync(noSync bool) Option {
	return func(c *cfg) {
		c.noSync = noSync
	}
}
