package remote

import (
	"context"
	"sync"
	"time"

	"github.com/rpupo63/boardgame-journal/models"
	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	page    *models.PlayPage
	expires time.Time
}

// pageCache keeps successful responses for ttl and collapses concurrent misses
// for the same key into a single upstream call. Cached pages are never mutated.
// generation is bumped by clear; a fetch that started before a clear is not stored.
type pageCache struct {
	ttl        time.Duration
	now        func() time.Time
	mu         sync.RWMutex
	items      map[string]cacheEntry
	generation uint64
	inflight   map[string]struct{}
	group      singleflight.Group
}

func newPageCache(ttl time.Duration) *pageCache {
	return &pageCache{
		ttl:      ttl,
		now:      time.Now,
		items:    map[string]cacheEntry{},
		inflight: map[string]struct{}{},
	}
}

func (c *pageCache) lookup(key string) (*models.PlayPage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.items[key]
	if !ok || !c.now().Before(entry.expires) {
		return nil, false
	}
	return entry.page, true
}

// begin marks key as being fetched and returns the generation the fetch belongs to.
func (c *pageCache) begin(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight[key] = struct{}{}
	return c.generation
}

// finish ends the fetch of key and keeps page, if any, unless the cache was
// cleared since the fetch began.
func (c *pageCache) finish(key string, page *models.PlayPage, generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return
	}
	delete(c.inflight, key)
	if page != nil {
		c.items[key] = cacheEntry{page: page, expires: c.now().Add(c.ttl)}
	}
}

// clear drops every entry, e.g. after a new play has been submitted. Fetches
// already in flight finish for their callers but are not cached, and later
// callers start a fresh fetch instead of joining them.
func (c *pageCache) clear() {
	c.mu.Lock()
	c.items = map[string]cacheEntry{}
	c.generation++
	inflight := c.inflight
	c.inflight = map[string]struct{}{}
	c.mu.Unlock()

	for key := range inflight {
		c.group.Forget(key)
	}
}

func (c *pageCache) get(ctx context.Context, key string, fetch func() (*models.PlayPage, error)) (*models.PlayPage, error) {
	if c.ttl <= 0 {
		return fetch()
	}
	if page, ok := c.lookup(key); ok {
		return page, nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		if page, ok := c.lookup(key); ok {
			return page, nil
		}
		generation := c.begin(key)
		page, err := fetch()
		if err != nil {
			c.finish(key, nil, generation)
			return nil, err
		}
		c.finish(key, page, generation)
		return page, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.PlayPage), nil
	}
}
