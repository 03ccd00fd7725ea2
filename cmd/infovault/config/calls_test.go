package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/infovault/cmd/infovault/config"
	"github.com/nspcc-dev/infovault/cmd/infovault/config/internal"
	configtest "github.com/nspcc-dev/infovault/cmd/infovault/config/test"
	"github.com/stretchr/testify/require"
)

func TestConfigCommon(t *testing.T) {
	configtest.ForEachFileType("test/config", func(c *config.Config) {
		val := c.Value("value")
		require.NotNil(t, val)

		val = c.Value("non-existent value")
		require.Nil(t, val)

		sub := c.Sub("section")
		require.NotNil(t, sub)

		const nonExistentSub = "non-existent sub-section"

		val = c.Sub(nonExistentSub).Value("value")
		require.Nil(t, val)
	})
}

func TestConfigEnv(t *testing.T) {
	const (
		name    = "name"
		section = "section"
		value   = "some value"
	)

	err := os.Setenv(internal.Env(section, name), value)
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Unsetenv(internal.Env(section, name)) })

	c := configtest.EmptyConfig()

	require.Equal(t, value, c.Sub(section).Value(name))
}

func TestConfig_SubValue(t *testing.T) {
	configtest.ForEachFileType("test/config", func(c *config.Config) {
		c = c.
			Sub("section").
			Sub("sub").
			Sub("sub")

		// get subsection 1
		sub := c.Sub("sub1")

		// get subsection 2
		c.Sub("sub2")

		// sub should not be corrupted
		require.Equal(t, "val1", sub.Value("key"))
	})
}

func TestRead(t *testing.T) {
	t.Run("malformed", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(p, []byte("vault: [unclosed"), 0o600))

		_, err := config.Read(config.Prm{}, config.WithConfigFile(p))
		require.Error(t, err)

		require.Panics(t, func() { config.New(config.Prm{}, config.WithConfigFile(p)) })
	})

	t.Run("missing", func(t *testing.T) {
		_, err := config.Read(config.Prm{}, config.WithConfigFile(filepath.Join(t.TempDir(), "none.yaml")))
		require.Error(t, err)
	})

	t.Run("no file", func(t *testing.T) {
		c, err := config.Read(config.Prm{})
		require.NoError(t, err)
		require.Nil(t, c.Value("value"))
	})
}
