package util

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPseudoWorkerPool(t *testing.T) {
	p := NewPseudoWorkerPool()

	var called bool
	require.NoError(t, p.Submit(func() { called = true }))
	require.True(t, called)

	p.Release()
	require.ErrorIs(t, p.Submit(func() {}), ErrPoolClosed)
}

func TestNewWorkerPool(t *testing.T) {
	p, err := NewWorkerPool(0, false)
	require.NoError(t, err)
	require.IsType(t, &pseudoWorkerPool{}, p)

	p, err = NewWorkerPool(4, false)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mtx sync.Mutex
	var n int
	for i := 0; i < 10; i++ {
		wg.Add(1)
		require.NoError(t, p.Submit(func() {
			defer wg.Done()
			mtx.Lock()
			n++
			mtx.Unlock()
		}))
	}
	wg.Wait()
	require.Equal(t, 10, n)

	p.Release()
	require.ErrorIs(t, p.Submit(func() {}), ErrPoolClosed)
}
