package grace

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// NewGracefulContext returns context that is cancelled by SIGINT, SIGTERM
// or SIGHUP, or by the returned function. Received signal is logged.
func NewGracefulContext(l *zap.Logger) (context.Context, context.CancelFunc) {
	if l == nil {
		l = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		defer signal.Stop(ch)

		select {
		case sig := <-ch:
			l.Info("received signal, shutting down", zap.Stringer("signal", sig))
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
