package gocache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/scoop"
	"github.com/fwojciec/scoop/gocache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_Load(t *testing.T) {
	t.Parallel()

	t.Run("computes once and serves from cache", func(t *testing.T) {
		t.Parallel()

		c := gocache.NewCache(time.Hour, time.Hour)
		var calls atomic.Int32
		compute := func(context.Context) (*scoop.Article, error) {
			calls.Add(1)
			return &scoop.Article{ID: "a"}, nil
		}

		first, err := c.Load(context.Background(), "a", compute)
		require.NoError(t, err)
		second, err := c.Load(context.Background(), "a", compute)
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, int32(1), calls.Load())
		assert.Equal(t, 1, c.Len())
	})

	t.Run("concurrent loads share one computation", func(t *testing.T) {
		t.Parallel()

		c := gocache.NewCache(time.Hour, time.Hour)
		var calls atomic.Int32
		release := make(chan struct{})
		compute := func(context.Context) (*scoop.Article, error) {
			calls.Add(1)
			<-release
			return &scoop.Article{ID: "a"}, nil
		}

		var wg sync.WaitGroup
		results := make([]*scoop.Article, 8)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				a, err := c.Load(context.Background(), "a", compute)
				assert.NoError(t, err)
				results[i] = a
			}(i)
		}
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		for _, a := range results {
			assert.Same(t, results[0], a)
		}
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()

		c := gocache.NewCache(time.Hour, time.Hour)
		var calls atomic.Int32
		compute := func(context.Context) (*scoop.Article, error) {
			if calls.Add(1) == 1 {
				return nil, errors.New("fetch failed")
			}
			return &scoop.Article{ID: "a"}, nil
		}

		_, err := c.Load(context.Background(), "a", compute)
		require.Error(t, err)

		a, err := c.Load(context.Background(), "a", compute)
		require.NoError(t, err)
		assert.Equal(t, "a", a.ID)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("entries expire after ttl", func(t *testing.T) {
		t.Parallel()

		c := gocache.NewCache(10*time.Millisecond, time.Hour)
		var calls atomic.Int32
		compute := func(context.Context) (*scoop.Article, error) {
			calls.Add(1)
			return &scoop.Article{ID: "a"}, nil
		}

		_, err := c.Load(context.Background(), "a", compute)
		require.NoError(t, err)
		time.Sleep(30 * time.Millisecond)
		_, err = c.Load(context.Background(), "a", compute)
		require.NoError(t, err)

		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("canceled caller stops waiting", func(t *testing.T) {
		t.Parallel()

		c := gocache.NewCache(time.Hour, time.Hour)
		ctx, cancel := context.WithCancel(context.Background())
		release := make(chan struct{})
		defer close(release)
		compute := func(context.Context) (*scoop.Article, error) {
			cancel()
			<-release
			return nil, errors.New("released")
		}

		a, err := c.Load(ctx, "a", compute)

		assert.Nil(t, a)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("first caller canceling does not fail the others", func(t *testing.T) {
		t.Parallel()

		c := gocache.NewCache(time.Hour, time.Hour)
		started := make(chan struct{})
		release := make(chan struct{})
		var calls atomic.Int32
		compute := func(ctx context.Context) (*scoop.Article, error) {
			calls.Add(1)
			close(started)
			<-release
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return &scoop.Article{ID: "a"}, nil
		}

		firstCtx, cancelFirst := context.WithCancel(context.Background())
		firstErr := make(chan error, 1)
		go func() {
			_, err := c.Load(firstCtx, "a", compute)
			firstErr <- err
		}()
		<-started

		type loaded struct {
			article *scoop.Article
			err     error
		}
		second := make(chan loaded, 1)
		go func() {
			a, err := c.Load(context.Background(), "a", compute)
			second <- loaded{a, err}
		}()

		cancelFirst()
		assert.ErrorIs(t, <-firstErr, context.Canceled)
		close(release)

		got := <-second
		require.NoError(t, got.err)
		assert.Equal(t, "a", got.article.ID)
		assert.Equal(t, int32(1), calls.Load())
		assert.Equal(t, 1, c.Len())
	})

	t.Run("empty id is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := gocache.NewCache(time.Hour, time.Hour).Load(context.Background(), "", nil)

		assert.Equal(t, scoop.EINVALID, scoop.ErrorCode(err))
	})
}
