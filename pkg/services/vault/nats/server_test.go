package nats

import (
	"context"
	"encoding/json"
	"testing"

	vaultsvc "github.com/nspcc-dev/infovault/pkg/services/vault"
	"github.com/nspcc-dev/infovault/pkg/util"
	"github.com/nspcc-dev/infovault/pkg/vault"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestServer(t *testing.T, oo ...Option) *Server {
	v := vault.New(
		vault.WithLogger(zaptest.NewLogger(t)),
		vault.WithBaseLocation(t.TempDir()),
		vault.WithName("contacts"),
		vault.WithNoSync(true),
	)
	require.NoError(t, v.Init())
	t.Cleanup(func() { _ = v.Close() })

	d := vaultsvc.New(v, vaultsvc.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, d.Start())

	return New(d, append([]Option{WithLogger(zaptest.NewLogger(t))}, oo...)...)
}

func decodeReply(t *testing.T, data []byte) *vaultsvc.Envelope {
	var e vaultsvc.Envelope
	require.NoError(t, json.Unmarshal(data, &e))
	return &e
}

func TestServer_Process(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res := decodeReply(t, s.process(ctx, []byte(`{
		"id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"operation":"SAVE",
		"requests":[
			{"location":"Person","content":{"name":"alice","data":"QWxpY2U="},"auto_create":true},
			{"location":"Person","content":{"name":"bob","data":"Qm9i"}}
		]
	}`)))
	require.Empty(t, res.Errors)
	require.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", res.ID.String())

	res = decodeReply(t, s.process(ctx, []byte(`{
		"operation":"LOAD",
		"request":{"location":"Person","content":{"name":"bob"}}
	}`)))
	require.Empty(t, res.Errors)
	require.Equal(t, []byte("Bob"), res.Payload.Request().Content.Data)

	res = decodeReply(t, s.process(ctx, []byte(`{
		"operation":"LOAD",
		"request":{"location":"Person","content":{"name":"carol"}}
	}`)))
	require.Len(t, res.Errors, 1)
	require.Equal(t, vaultsvc.CodeNotFound, res.Errors[0].Code)
}

func TestServer_ProcessMalformed(t *testing.T) {
	s := newTestServer(t)

	for _, data := range []string{
		`not a json`,
		`{"operation":"SAVE","request":{},"requests":[]}`,
		`{"id":"123","operation":"LOAD"}`,
	} {
		res := decodeReply(t, s.process(context.Background(), []byte(data)))
		require.Len(t, res.Errors, 1, data)
		require.Equal(t, vaultsvc.CodeMalformedEnvelope, res.Errors[0].Code)
	}
}

func TestServer_Submit(t *testing.T) {
	pool, err := util.NewWorkerPool(2, false)
	require.NoError(t, err)

	s := newTestServer(t, WithWorkerPool(pool))

	done := make(chan []byte, 1)
	s.submit([]byte(`{"operation":"DELETE","request":{"content":{"name":"alice"}}}`), func(resp []byte) {
		done <- resp
	})

	res := decodeReply(t, <-done)
	require.Empty(t, res.Errors)

	t.Run("released pool", func(t *testing.T) {
		s.Close()

		var resp []byte
		s.submit([]byte(`{"operation":"DELETE","request":{"content":{"name":"alice"}}}`), func(b []byte) {
			resp = b
		})

		res := decodeReply(t, resp)
		require.Len(t, res.Errors, 1)
		require.Equal(t, vaultsvc.CodeServiceUnavailable, res.Errors[0].Code)
	})
}

func TestServer_SubmitOverload(t *testing.T) {
	pool, err := util.NewWorkerPool(1, true)
	require.NoError(t, err)

	s := newTestServer(t, WithWorkerPool(pool))

	release := make(chan struct{})
	require.NoError(t, pool.Submit(func() { <-release }))
	defer close(release)

	var resp []byte
	s.submit([]byte(`{"operation":"DELETE","request":{"content":{"name":"alice"}}}`), func(b []byte) {
		resp = b
	})

	res := decodeReply(t, resp)
	require.Len(t, res.Errors, 1)
	require.Equal(t, vaultsvc.CodeServiceUnavailable, res.Errors[0].Code)
	require.Contains(t, res.Errors[0].Message, "workers are busy")
}

func TestServer_ListenNotConnected(t *testing.T) {
	s := newTestServer(t)
	require.ErrorIs(t, s.Listen("infovault", "infovault"), errNotConnected)
}
