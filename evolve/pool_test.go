package evolve

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_DispatchRunsEveryWorkerOnce(t *testing.T) {
	rngs := newPRNGPool(1, 4)
	p := newPool(4, rngs, nil)
	defer p.close()

	var calls int64
	p.dispatch(func(w *workerArgs) {
		atomic.AddInt64(&calls, 1)
	})

	assert.EqualValues(t, 4, calls)
}

func TestPool_DispatchIsRepeatable(t *testing.T) {
	rngs := newPRNGPool(1, 2)
	p := newPool(2, rngs, nil)
	defer p.close()

	for round := 0; round < 5; round++ {
		var calls int64
		p.dispatch(func(w *workerArgs) {
			atomic.AddInt64(&calls, 1)
		})
		assert.EqualValues(t, 2, calls)
	}
}

func TestPool_WorkerArgsAreDistinctPerWorker(t *testing.T) {
	rngs := newPRNGPool(1, 3)
	opts := []interface{}{"a", "b", "c"}
	p := newPool(3, rngs, opts)
	defer p.close()

	seen := make(chan interface{}, 3)
	p.dispatch(func(w *workerArgs) {
		seen <- w.opts
	})
	close(seen)

	got := map[interface{}]bool{}
	for v := range seen {
		got[v] = true
	}
	assert.True(t, got["a"] && got["b"] && got["c"])
}
