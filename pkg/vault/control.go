package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// Init prepares storage roots: creates the base location and the internal
// root inside it if they are missing and makes them writable. External root
// is used only if it exists, otherwise a warning is logged and the vault
// works without it.
//
// Init is idempotent. Returns ErrConfiguration if the roots can not be prepared.
func (v *Vault) Init() error {
	if v.Status() == StatusClosed {
		return ErrNotReady
	}

	if v.baseLocation == "" {
		return fmt.Errorf("%w: base location must be provided", ErrConfiguration)
	}

	if v.name == "" {
		return fmt.Errorf("%w: name must be provided", ErrConfiguration)
	}

	if err := validateName("name", v.name); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	base, err := filepath.Abs(v.baseLocation)
	if err != nil {
		return fmt.Errorf("%w: resolve base location: %w", ErrConfiguration, err)
	}

	if err = prepareDir(base, v.perm); err != nil {
		return fmt.Errorf("%w: unable to build base location: %w", ErrConfiguration, err)
	}

	internal := filepath.Join(base, v.name)

	if err = prepareDir(internal, v.perm); err != nil {
		return fmt.Errorf("%w: unable to build internal storage: %w", ErrConfiguration, err)
	}

	v.internal = internal
	v.external = v.resolveExternal()

	if v.Status() == StatusReady {
		return nil
	}

	if err = v.compress.Init(); err != nil {
		return fmt.Errorf("%w: init compression: %w", ErrConfiguration, err)
	}

	if v.cacheSize > 0 {
		v.cache, err = lru.New[cacheKey, []byte](v.cacheSize)
		if err != nil {
			return fmt.Errorf("%w: init cache: %w", ErrConfiguration, err)
		}
	}

	v.status.Store(uint32(StatusReady))

	v.log.Info("vault initialized",
		zap.String("internal", v.internal),
		zap.String("external", v.external),
		zap.Bool("compression", v.compress.Enabled),
		zap.Int("cache_size", v.cacheSize))

	return nil
}

func (v *Vault) resolveExternal() string {
	if v.externalPath == "" {
		return ""
	}

	p, err := filepath.Abs(v.externalPath)
	if err != nil {
		v.log.Warn("can't resolve external storage path, external storage is disabled",
			zap.String("path", v.externalPath),
			zap.Error(err))
		return ""
	}

	fi, err := os.Stat(p)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		v.log.Warn("external storage path doesn't exist, external storage is disabled",
			zap.String("path", p))
		return ""
	case err != nil:
		v.log.Warn("can't access external storage path, external storage is disabled",
			zap.String("path", p),
			zap.Error(err))
		return ""
	case !fi.IsDir():
		v.log.Warn("external storage path is not a directory, external storage is disabled",
			zap.String("path", p))
		return ""
	}

	if err = ensureWritable(p); err != nil {
		v.log.Warn("external storage is not writable",
			zap.String("path", p),
			zap.Error(err))
	}

	return p
}

// Close releases cache and compression resources. Stored records are not
// affected. Any operation after Close returns ErrNotReady.
func (v *Vault) Close() error {
	if !v.status.CompareAndSwap(uint32(StatusReady), uint32(StatusClosed)) {
		v.status.Store(uint32(StatusClosed))
		return nil
	}

	if v.cache != nil {
		v.cache.Purge()
	}

	return v.compress.Close()
}
