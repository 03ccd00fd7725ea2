package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	vaultsvc "github.com/nspcc-dev/infovault/pkg/services/vault"
	"github.com/nspcc-dev/infovault/pkg/services/vault/deadletter"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDeadLetters(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "dead.db")

	s, err := deadletter.Open(dbPath)
	require.NoError(t, err)

	e := vaultsvc.NewEnvelope("RENAME", vaultsvc.Single(nil))
	s.DeadLetter(e)
	require.NoError(t, s.Close())

	data, err := yaml.Marshal(map[string]any{
		"dead_letter": map[string]any{"path": dbPath},
	})
	require.NoError(t, err)

	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, data, 0o600))

	run := func(args ...string) string {
		cmd := newDeadLettersCmd()
		buf := bytes.NewBuffer(nil)
		cmd.SetOut(buf)
		cmd.SetArgs(args)
		require.NoError(t, cmd.Execute())
		return buf.String()
	}

	out := run("-c", cfg)
	require.Contains(t, out, e.ID.String())
	require.Contains(t, out, "RENAME")

	out = run("-c", cfg, "--purge")
	require.Contains(t, out, "1 dead letters removed")

	out = run("-c", cfg)
	require.NotContains(t, out, e.ID.String())
}
