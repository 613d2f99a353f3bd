// Package gocache provides an in-memory scoop.ArticleCache backed by
// patrickmn/go-cache.
package gocache

import (
	"context"
	"time"

	"github.com/fwojciec/scoop"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Defaults for NewCache.
const (
	DefaultTTL             = 24 * time.Hour
	DefaultCleanupInterval = 10 * time.Minute
)

// Ensure Cache implements scoop.ArticleCache at compile time.
var _ scoop.ArticleCache = (*Cache)(nil)

// Cache stores articles by ID for a fixed time. Concurrent loads of the
// same ID share one computation. Failed computations are not stored.
type Cache struct {
	cache *cache.Cache
	group singleflight.Group
}

// NewCache creates a Cache whose entries expire after ttl.
func NewCache(ttl, cleanupInterval time.Duration) *Cache {
	return &Cache{cache: cache.New(ttl, cleanupInterval)}
}

// Load returns the cached article for id, computing and storing it on a
// miss. The computation is shared by every caller waiting on id, so it
// keeps the first caller's values but not its cancellation. A caller
// whose ctx ends stops waiting and the computation carries on for the
// others.
func (c *Cache) Load(ctx context.Context, id string, compute func(ctx context.Context) (*scoop.Article, error)) (*scoop.Article, error) {
	if id == "" {
		return nil, scoop.Errorf(scoop.EINVALID, "cache key required")
	}
	if a, ok := c.get(id); ok {
		return a, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(id, func() (any, error) {
		if a, ok := c.get(id); ok {
			return a, nil
		}
		a, err := compute(shared)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, scoop.Errorf(scoop.EINTERNAL, "computed nil article for %s", id)
		}
		c.cache.SetDefault(id, a)
		return a, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*scoop.Article), nil
	}
}

// Len returns the number of cached articles, including expired entries
// not yet purged.
func (c *Cache) Len() int {
	return c.cache.ItemCount()
}

func (c *Cache) get(id string) (*scoop.Article, bool) {
	v, ok := c.cache.Get(id)
	if !ok {
		return nil, false
	}
	a, ok := v.(*scoop.Article)
	return a, ok
}
