package vault

import (
	"io/fs"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nspcc-dev/infovault/pkg/vault/compression"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Vault represents directory-backed record storage.
//
// For correct operation Vault must be created via New and initialized
// with Init.
type Vault struct {
	*cfg

	status *atomic.Uint32

	internal string
	external string

	cache *lru.Cache[cacheKey, []byte]
}

// Option represents Vault's constructor option.
type Option func(*cfg)

type cfg struct {
	log *zap.Logger

	baseLocation string
	name         string
	externalPath string

	perm   fs.FileMode
	noSync bool

	compress *compression.Config

	cacheSize int

	metrics MetricRegister
}

const (
	defaultPerm = 0o640
	// owner write bit, it is added to files and directories that
	// need to be written.
	writeBit = 0o200
)

func defaultCfg() *cfg {
	return &cfg{
		log:      zap.L(),
		perm:     defaultPerm,
		compress: new(compression.Config),
	}
}

// New creates a new Vault instance. Storage roots are not touched until
// Init is called.
func New(opts ...Option) *Vault {
	c := defaultCfg()

	for i := range opts {
		opts[i](c)
	}

	return &Vault{
		cfg:    c,
		status: atomic.NewUint32(uint32(StatusStopped)),
	}
}

// WithLogger returns option to set Vault's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l
	}
}

// WithBaseLocation returns option to set the directory the internal
// storage root is created in. Option is required.
func WithBaseLocation(p string) Option {
	return func(c *cfg) {
		c.baseLocation = p
	}
}

// WithName returns option to set the name of the internal storage root
// inside the base location. Option is required.
func WithName(name string) Option {
	return func(c *cfg) {
		c.name = name
	}
}

// WithExternalPath returns option to set the external storage root.
func WithExternalPath(p string) Option {
	return func(c *cfg) {
		c.externalPath = p
	}
}

// WithPermissions returns option to set permission bits of the created
// files. Directories get the same bits plus the executable ones for the
// owner and the group.
func WithPermissions(perm fs.FileMode) Option {
	return func(c *cfg) {
		if perm != 0 {
			c.perm = perm
		}
	}
}

// WithNoSync returns option to disable O_SYNC flag on record writes.
func WithNoSync(noSync bool) Option {
	return func(c *cfg) {
		c.noSync = noSync
	}
}

// WithCompression returns option to enable zstd compression of stored
// records. Loads return the original bytes regardless of this setting
// for the records saved with it.
func WithCompression(enabled bool) Option {
	return func(c *cfg) {
		c.compress.Enabled = enabled
	}
}

// WithCacheSize returns option to set the number of loaded records kept
// in memory. Zero disables caching.
func WithCacheSize(sz int) Option {
	return func(c *cfg) {
		c.cacheSize = sz
	}
}

// WithMetrics returns option to set operation metrics register.
func WithMetrics(m MetricRegister) Option {
	return func(c *cfg) {
		c.metrics = m
	}
}
