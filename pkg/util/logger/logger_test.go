package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestPrm(t *testing.T) {
	var p Prm

	require.NoError(t, p.SetLevelString("debug"))
	require.Equal(t, zapcore.DebugLevel, p.level)
	require.Error(t, p.SetLevelString("verbose"))

	require.NoError(t, p.SetEncoding("JSON"))
	require.Equal(t, EncodingJSON, p.encoding)
	require.Error(t, p.SetEncoding("xml"))
}

func TestNewLogger(t *testing.T) {
	var p Prm
	require.NoError(t, p.SetLevelString("warn"))

	l, err := NewLogger(&p)
	require.NoError(t, err)
	require.False(t, l.Core().Enabled(zapcore.InfoLevel))
	require.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l, err = NewLogger(nil)
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zapcore.InfoLevel))
}
