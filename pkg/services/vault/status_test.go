package vaultsvc

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestDispatcher_Lifecycle(t *testing.T) {
	var transitions []Status

	d := New(panicStorage{},
		WithLogger(zaptest.NewLogger(t)),
		WithStatusListener(func(s Status) { transitions = append(transitions, s) }),
	)
	require.Equal(t, StatusStopped, d.Status())

	require.NoError(t, d.Stop())
	require.Empty(t, transitions)

	require.NoError(t, d.Start())
	require.Equal(t, StatusRunning, d.Status())

	require.NoError(t, d.Start())
	require.Equal(t, []Status{StatusStarting, StatusRunning}, transitions)

	require.NoError(t, d.Stop())
	require.Equal(t, StatusShutdown, d.Status())
	require.Equal(t, []Status{StatusStarting, StatusRunning, StatusShuttingDown, StatusShutdown}, transitions)

	t.Run("restart", func(t *testing.T) {
		require.NoError(t, d.Start())
		require.Equal(t, StatusRunning, d.Status())
	})
}

func TestDispatcher_InvalidTransition(t *testing.T) {
	d := New(panicStorage{}, WithLogger(zaptest.NewLogger(t)))
	d.status.Store(uint32(StatusShuttingDown))

	require.ErrorIs(t, d.Start(), ErrInvalidTransition)
}

func TestStatus_String(t *testing.T) {
	for s, str := range map[Status]string{
		StatusStopped:      "STOPPED",
		StatusStarting:     "STARTING",
		StatusRunning:      "RUNNING",
		StatusShuttingDown: "SHUTTING_DOWN",
		StatusShutdown:     "SHUTDOWN",
		Status(42):         "UNKNOWN(42)",
	} {
		require.Equal(t, str, s.String())
	}
}
