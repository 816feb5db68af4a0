package language

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"go.uber.org/zap"
)

// Cache stores translations keyed by an opaque string.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// LRUCache is an in-process least-recently-used Cache.
type LRUCache struct {
	capacity int
	items    map[string]*list.Element
	lru      *list.List
	mu       sync.Mutex
}

type lruEntry struct {
	key   string
	value string
}

// NewLRUCache creates a cache holding at most capacity translations.
func NewLRUCache(capacity int) *LRUCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// Get returns the cached value for key if present.
func (c *LRUCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.lru.MoveToFront(elem)
		return elem.Value.(*lruEntry).value, true, nil
	}
	return "", false, nil
}

// Set stores value for key, evicting the oldest entry if at capacity.
func (c *LRUCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*lruEntry).value = value
		return nil
	}

	c.items[key] = c.lru.PushFront(&lruEntry{key: key, value: value})
	if c.lru.Len() > c.capacity {
		if oldest := c.lru.Back(); oldest != nil {
			c.lru.Remove(oldest)
			delete(c.items, oldest.Value.(*lruEntry).key)
		}
	}
	return nil
}

// Len returns the number of cached entries.
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// CachedBackend memoizes successful, non-empty translations of another
// Backend. Detection is not cached; the orchestrator rarely reaches it.
type CachedBackend struct {
	next   Backend
	cache  Cache
	logger *zap.Logger
}

// NewCachedBackend wraps next with cache. A nil logger disables logging.
func NewCachedBackend(next Backend, cache Cache, logger *zap.Logger) *CachedBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedBackend{next: next, cache: cache, logger: logger}
}

// Detect delegates to the wrapped backend.
func (b *CachedBackend) Detect(ctx context.Context, text string) (string, error) {
	return b.next.Detect(ctx, text)
}

// Translate returns a cached translation or calls the wrapped backend. Cache
// failures are logged and otherwise ignored.
func (b *CachedBackend) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	key := cacheKey(req)
	if v, ok, err := b.cache.Get(ctx, key); err != nil {
		b.logger.Warn("translation cache read failed", zap.Error(err))
	} else if ok {
		return v, nil
	}

	out, err := b.next.Translate(ctx, req)
	if err != nil || out == "" {
		return out, err
	}
	if err := b.cache.Set(ctx, key, out); err != nil {
		b.logger.Warn("translation cache write failed", zap.Error(err))
	}
	return out, nil
}

func cacheKey(req TranslateRequest) string {
	h := sha256.New()
	if req.Corrective {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	h.Write([]byte(req.Instruction))
	h.Write([]byte{0})
	h.Write([]byte(req.Text))
	return hex.EncodeToString(h.Sum(nil))
}
