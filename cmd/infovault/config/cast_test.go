package config_test

import (
	"io/fs"
	"testing"
	"time"

	"github.com/nspcc-dev/infovault/cmd/infovault/config"
	configtest "github.com/nspcc-dev/infovault/cmd/infovault/config/test"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	configtest.ForEachFileType("test/config", func(c *config.Config) {
		c = c.Sub("string")

		val := config.String(c, "correct")
		require.Equal(t, "some string", val)

		require.Panics(t, func() {
			config.String(c, "incorrect")
		})

		val = config.StringSafe(c, "incorrect")
		require.Empty(t, val)
	})
}

func TestDuration(t *testing.T) {
	configtest.ForEachFileType("test/config", func(c *config.Config) {
		c = c.Sub("duration")

		val := config.Duration(c, "correct")
		require.Equal(t, 15*time.Minute, val)

		require.Panics(t, func() {
			config.Duration(c, "incorrect")
		})

		val = config.DurationSafe(c, "incorrect")
		require.Equal(t, time.Duration(0), val)
	})
}

func TestBool(t *testing.T) {
	configtest.ForEachFileType("test/config", func(c *config.Config) {
		c = c.Sub("bool")

		require.True(t, config.Bool(c, "correct"))
		require.True(t, config.Bool(c, "correct_string"))

		require.Panics(t, func() {
			config.Bool(c, "incorrect")
		})

		require.False(t, config.BoolSafe(c, "incorrect"))
	})
}

func TestNumbers(t *testing.T) {
	configtest.ForEachFileType("test/config", func(c *config.Config) {
		c = c.Sub("int")

		require.Equal(t, int64(10), config.Int(c, "correct"))
		require.Equal(t, int64(10), config.Int(c, "correct_string"))
		require.Equal(t, int64(-10), config.Int(c, "negative"))
		require.Equal(t, uint64(10), config.Uint(c, "correct"))

		require.Panics(t, func() {
			config.Int(c, "incorrect")
		})
		require.Panics(t, func() {
			config.Uint(c, "negative")
		})

		require.Zero(t, config.IntSafe(c, "incorrect"))
		require.Zero(t, config.UintSafe(c, "negative"))
	})
}

func TestFileMode(t *testing.T) {
	configtest.ForEachFileType("test/config", func(c *config.Config) {
		c = c.Sub("mode")

		require.Equal(t, fs.FileMode(0o750), config.FileMode(c, "octal_string"))
		require.Equal(t, fs.FileMode(0o640), config.FileMode(c, "prefixed_string"))
		require.Equal(t, fs.FileMode(0o644), config.FileMode(c, "number"))
		require.Zero(t, config.FileMode(c, "incorrect"))
		require.Zero(t, config.FileMode(c, "missing"))
	})
}
