package grace

import (
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func TestNewGracefulContext(t *testing.T) {
	ctx, cancel := NewGracefulContext(zaptest.NewLogger(t))

	select {
	case <-ctx.Done():
		t.Fatal("context is done before cancellation")
	default:
	}

	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context is not done after cancellation")
	}
}
