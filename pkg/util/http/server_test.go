package httputil

import (
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestServer(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	srv := New(HTTPSrvPrm{
		Address: addr,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "ok")
		}),
	}, WithShutdownTimeout(time.Second))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve() }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr)
		if err != nil {
			return false
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		return err == nil && string(body) == "ok"
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, srv.Shutdown())
	require.NoError(t, <-errCh)
}

func TestNew_InvalidPrm(t *testing.T) {
	require.Panics(t, func() {
		New(HTTPSrvPrm{Handler: http.NotFoundHandler()})
	})
	require.Panics(t, func() {
		New(HTTPSrvPrm{Address: "localhost:0"})
	})
	require.Panics(t, func() {
		New(HTTPSrvPrm{Address: "localhost:0", Handler: http.NotFoundHandler()}, WithShutdownTimeout(0))
	})
}
