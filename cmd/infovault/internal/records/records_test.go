package records

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nspcc-dev/infovault/cmd/infovault/internal/common"
	"github.com/nspcc-dev/infovault/cmd/internal/cmderr"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T) string {
	dir := t.TempDir()

	data, err := yaml.Marshal(map[string]any{
		"logger": map[string]any{"level": "error"},
		"vault": map[string]any{
			"base_location": filepath.Join(dir, "base"),
			"name":          "contacts",
			"no_sync":       true,
			"compression":   true,
		},
	})
	require.NoError(t, err)

	p := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(p, data, 0o600))

	return p
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	buf := bytes.NewBuffer(nil)

	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	cmd.SilenceUsage = true

	err := cmd.Execute()

	return buf.String(), err
}

func TestRecords(t *testing.T) {
	cfg := writeConfig(t)

	for _, kv := range [][2]string{
		{"bob", `{"name":"Bob"}`},
		{"alice", `{"name":"Alice"}`},
	} {
		out, err := run(t, newPutCmd(), "-c", cfg, "--label", "Person", "--key", kv[0], "--data", kv[1])
		require.NoError(t, err)
		require.Contains(t, out, "Person/"+kv[0])
	}

	out, err := run(t, newGetCmd(), "-c", cfg, "--label", "Person", "--key", "alice")
	require.NoError(t, err)
	require.Equal(t, `{"name":"Alice"}`, out)

	out, err = run(t, newRangeCmd(), "-c", cfg, "--label", "Person", "--start", "2", "--count", "1")
	require.NoError(t, err)
	require.Equal(t, "{\"name\":\"Bob\"}\n", out)

	out, err = run(t, newRangeCmd(), "-c", cfg, "--label", "Person")
	require.NoError(t, err)
	require.Equal(t, "{\"name\":\"Alice\"}\n{\"name\":\"Bob\"}\n", out)

	out, err = run(t, newListCmd(), "-c", cfg, "--label", "Person")
	require.NoError(t, err)
	require.Less(t, strings.Index(out, "alice"), strings.Index(out, "bob"))

	out, err = run(t, newLabelsCmd(), "-c", cfg)
	require.NoError(t, err)
	require.Contains(t, out, "Person")

	_, err = run(t, newDeleteCmd(), "-c", cfg, "--label", "Person", "--key", "alice")
	require.NoError(t, err)

	_, err = run(t, newGetCmd(), "-c", cfg, "--label", "Person", "--key", "alice")
	require.ErrorContains(t, err, "not found")

	var exitErr cmderr.ExitErr
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, notFoundExitCode, exitErr.Code)

	t.Run("delete missing", func(t *testing.T) {
		_, err := run(t, newDeleteCmd(), "-c", cfg, "--label", "Person", "--key", "alice")
		require.NoError(t, err)
	})
}

func TestPut(t *testing.T) {
	cfg := writeConfig(t)

	t.Run("file", func(t *testing.T) {
		payload := bytes.Repeat([]byte("infovault"), 1024)

		src := filepath.Join(t.TempDir(), "payload")
		require.NoError(t, os.WriteFile(src, payload, 0o600))

		for _, progress := range []string{"--no-progress=true", "--no-progress=false"} {
			_, err := run(t, newPutCmd(), "-c", cfg, "--key", "file", "--file", src, progress)
			require.NoError(t, err)

			dst := filepath.Join(t.TempDir(), "out")
			_, err = run(t, newGetCmd(), "-c", cfg, "--key", "file", "--out", dst)
			require.NoError(t, err)

			res, err := os.ReadFile(dst)
			require.NoError(t, err)
			require.Equal(t, payload, res)
		}
	})

	t.Run("stdin", func(t *testing.T) {
		cmd := newPutCmd()
		buf := bytes.NewBuffer(nil)
		cmd.SetOut(buf)
		cmd.SetIn(strings.NewReader("from stdin"))
		cmd.SetArgs([]string{"-c", cfg, "--key", "stdin"})
		require.NoError(t, cmd.Execute())

		out, err := run(t, newGetCmd(), "-c", cfg, "--key", "stdin")
		require.NoError(t, err)
		require.Equal(t, "from stdin", out)
	})

	t.Run("no auto create", func(t *testing.T) {
		_, err := run(t, newPutCmd(), "-c", cfg, "--label", "Missing", "--key", "k", "--data", "x", "--auto-create=false")
		require.ErrorContains(t, err, "not found")
	})

	t.Run("key required", func(t *testing.T) {
		_, err := run(t, newPutCmd(), "-c", cfg, "--data", "x")
		require.Error(t, err)
	})

	t.Run("data and file", func(t *testing.T) {
		_, err := run(t, newPutCmd(), "-c", cfg, "--key", "k", "--data", "x", "--file", "y")
		require.Error(t, err)
	})

	t.Run("external unavailable", func(t *testing.T) {
		_, err := run(t, newPutCmd(), "-c", cfg, "--key", "k", "--data", "x", "--external")
		require.ErrorContains(t, err, "storage unavailable")
	})
}

func TestMissingConfig(t *testing.T) {
	_, err := run(t, newGetCmd(), "-c", filepath.Join(t.TempDir(), "missing.yaml"), "--key", "k")
	require.ErrorContains(t, err, "invalid config file")
}

func TestCommands(t *testing.T) {
	names := make(map[string]struct{})
	for _, cmd := range Commands() {
		require.NotNil(t, cmd.Flags().Lookup(common.ConfigFlag), cmd.Name())
		names[cmd.Name()] = struct{}{}
	}

	require.Len(t, names, 6)
}
