package main

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolRunsEveryTask(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		p := newPool(workers)
		var count int64
		for i := 0; i < 100; i++ {
			require.NoError(t, p.Enqueue(context.Background(), func() {
				atomic.AddInt64(&count, 1)
			}))
		}
		p.Wait()
		p.Release()
		require.EqualValues(t, 100, atomic.LoadInt64(&count), "workers=%d", workers)
	}
}

func TestPoolEnqueueCancelled(t *testing.T) {
	p := newPool(2)
	defer p.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ran := false
	require.ErrorIs(t, p.Enqueue(ctx, func() { ran = true }), context.Canceled)
	p.Wait()
	require.False(t, ran)
}
