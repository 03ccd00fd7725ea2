package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nspcc-dev/infovault/cmd/infovault/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"
)

func freeAddress(t *testing.T) string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func testConfig(t *testing.T, values map[string]any) *config.Config {
	data, err := yaml.Marshal(values)
	require.NoError(t, err)

	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, data, 0o600))

	return config.New(config.Prm{}, config.WithConfigFile(p))
}

func TestRunService(t *testing.T) {
	addr := freeAddress(t)
	base := t.TempDir()

	c := testConfig(t, map[string]any{
		"vault": map[string]any{
			"base_location": base,
			"name":          "contacts",
		},
		"prometheus": map[string]any{
			"enabled":          true,
			"address":          addr,
			"shutdown_timeout": "1s",
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- runService(ctx, c, zaptest.NewLogger(t), prometheus.NewRegistry())
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		return err == nil && strings.Contains(string(body), "infovault_dispatcher_status 2")
	}, 5*time.Second, 50*time.Millisecond)

	require.DirExists(t, filepath.Join(base, "contacts"))

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service was not stopped")
	}
}

func TestRunService_InvalidVault(t *testing.T) {
	c := testConfig(t, map[string]any{
		"vault": map[string]any{
			"base_location": t.TempDir(),
		},
	})

	err := runService(context.Background(), c, zaptest.NewLogger(t), prometheus.NewRegistry())
	require.ErrorContains(t, err, "could not init vault")
}

func TestVersion(t *testing.T) {
	buf := new(strings.Builder)
	command.SetOut(buf)
	command.SetArgs([]string{"--version"})
	t.Cleanup(func() { command.SetOut(os.Stdout) })

	require.NoError(t, command.Execute())
	require.Contains(t, buf.String(), "InfoVault")
}
