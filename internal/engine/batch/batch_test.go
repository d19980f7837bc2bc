package batch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestProcessor_Split(t *testing.T) {
	p, err := NewProcessor[int](10)
	require.NoError(t, err)

	batches := p.Split(sequence(25))
	require.Len(t, batches, 3)
	assert.Equal(t, 0, batches[0].Offset)
	assert.Equal(t, 10, batches[1].Offset)
	assert.Equal(t, 20, batches[2].Offset)
	assert.Len(t, batches[2].Items, 5)
	assert.Equal(t, 2, batches[2].Index)
}

func TestProcessor_Process(t *testing.T) {
	items := sequence(25)

	t.Run("Sequential", func(t *testing.T) {
		p, _ := NewProcessor[int](10)
		var seen []int
		err := p.Process(context.Background(), items, func(_ context.Context, b Batch[int]) error {
			seen = append(seen, b.Items...)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, items, seen)
	})

	t.Run("Concurrent writes by offset", func(t *testing.T) {
		p, _ := NewProcessor[int](4)
		out := make([]int, len(items))
		err := p.ProcessConcurrent(context.Background(), items, func(_ context.Context, b Batch[int]) error {
			for i, v := range b.Items {
				out[b.Offset+i] = v * 2
			}
			return nil
		}, 3)
		require.NoError(t, err)
		for i, v := range out {
			assert.Equal(t, i*2, v)
		}
	})

	t.Run("ErrorHandling", func(t *testing.T) {
		p, _ := NewProcessor[int](10)
		err := p.Process(context.Background(), items, func(_ context.Context, b Batch[int]) error {
			if b.Index == 1 {
				return errors.New("fail")
			}
			return nil
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "batch 1 failed")
	})

	t.Run("ConcurrentError", func(t *testing.T) {
		p, _ := NewProcessor[int](5)
		err := p.ProcessConcurrent(context.Background(), items, func(_ context.Context, b Batch[int]) error {
			if b.Index == 2 {
				return errors.New("boom")
			}
			return nil
		}, 2)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("Canceled", func(t *testing.T) {
		p, _ := NewProcessor[int](5)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := p.Process(ctx, items, func(context.Context, Batch[int]) error { return nil })
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("EmptyItems", func(t *testing.T) {
		p := NewProcessorWithDefaults[int]()
		assert.Equal(t, ErrEmptyItems, p.Process(context.Background(), nil, nil))
	})

	t.Run("NilCallback", func(t *testing.T) {
		p := NewProcessorWithDefaults[int]()
		assert.Equal(t, ErrNilCallback, p.Process(context.Background(), items, nil))
	})

	t.Run("InvalidBatchSize", func(t *testing.T) {
		_, err := NewProcessor[int](0)
		assert.ErrorIs(t, err, ErrInvalidBatchSize)
		_, err = NewProcessor[int](2000)
		assert.ErrorIs(t, err, ErrInvalidBatchSize)
	})
}

func TestProcessor_ProgressCallback(t *testing.T) {
	p, _ := NewProcessor[int](10)
	var mu sync.Mutex
	var last Snapshot
	var calls int32
	p.WithProgressCallback(func(s Snapshot) {
		atomic.AddInt32(&calls, 1)
		mu.Lock()
		if s.ProcessedItems > last.ProcessedItems {
			last = s
		}
		mu.Unlock()
	})

	err := p.ProcessConcurrent(context.Background(), sequence(25), func(context.Context, Batch[int]) error {
		return nil
	}, 4)
	require.NoError(t, err)

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.True(t, last.IsComplete())
	assert.InDelta(t, 100.0, last.PercentComplete, 1e-9)
}
