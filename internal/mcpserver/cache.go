package mcpserver

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/oasmodel/parser"
)

// docCache is a session-scoped LRU of parsed documents with per-entry
// expiry. Cached documents are shared between calls and must not be edited;
// tools that validate or edit work on a clone.
type docCache struct {
	mu       sync.Mutex
	limit    int
	order    *list.List // front is most recently used
	byKey    map[string]*list.Element
	now      func() time.Time
	sweeping atomic.Bool
}

type cached struct {
	key     string
	result  *parser.Result
	expires time.Time
}

func newDocCache(limit int) *docCache {
	return &docCache{
		limit: limit,
		order: list.New(),
		byKey: make(map[string]*list.Element),
		now:   time.Now,
	}
}

var documents = newDocCache(cfg.CacheMaxSize)

// get returns the cached result for key, or nil when it is missing or
// expired. A hit marks the entry as most recently used.
func (c *docCache) get(key string) *parser.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.byKey[key]
	if !ok {
		return nil
	}
	e := el.Value.(*cached)
	if c.now().After(e.expires) {
		c.drop(el)
		return nil
	}
	c.order.MoveToFront(el)
	return e.result
}

// put stores result under key for ttl, evicting the least recently used
// entry when the cache is full.
func (c *docCache) put(key string, result *parser.Result, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := &cached{key: key, result: result, expires: c.now().Add(ttl)}
	if el, ok := c.byKey[key]; ok {
		el.Value = e
		c.order.MoveToFront(el)
		return
	}
	for c.limit > 0 && c.order.Len() >= c.limit {
		c.drop(c.order.Back())
	}
	c.byKey[key] = c.order.PushFront(e)
}

// drop removes el. Callers hold mu.
func (c *docCache) drop(el *list.Element) {
	delete(c.byKey, el.Value.(*cached).key)
	c.order.Remove(el)
}

// sweep removes every expired entry.
func (c *docCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if now.After(el.Value.(*cached).expires) {
			c.drop(el)
		}
		el = prev
	}
}

// startSweeper sweeps every interval until ctx is done. At most one sweeper
// runs per cache.
func (c *docCache) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeping.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeping.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

func (c *docCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.byKey = make(map[string]*list.Element)
}

func (c *docCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
