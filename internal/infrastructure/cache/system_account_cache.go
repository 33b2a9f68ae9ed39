package cache

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/hostelbooks/backend/internal/domain/ledger"
	"go.uber.org/zap"
)

// InMemorySystemAccountCache caches resolved system-name mappings in
// process memory. Entries carry no TTL; they live until an explicit full
// invalidation, since mappings change only through rare admin writes.
type InMemorySystemAccountCache struct {
	mu      sync.RWMutex
	entries map[ledger.SystemName]uuid.UUID
	logger  *zap.Logger

	// Stats for monitoring
	hits   int64
	misses int64
}

// InMemorySystemAccountCacheOption is a functional option for configuring the cache
type InMemorySystemAccountCacheOption func(*InMemorySystemAccountCache)

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) InMemorySystemAccountCacheOption {
	return func(c *InMemorySystemAccountCache) {
		c.logger = logger
	}
}

// NewInMemorySystemAccountCache creates an empty cache
func NewInMemorySystemAccountCache(opts ...InMemorySystemAccountCacheOption) *InMemorySystemAccountCache {
	cache := &InMemorySystemAccountCache{
		entries: make(map[ledger.SystemName]uuid.UUID),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// Get returns the cached account id for the system name
func (c *InMemorySystemAccountCache) Get(name ledger.SystemName) (uuid.UUID, bool) {
	c.mu.RLock()
	id, ok := c.entries[name]
	c.mu.RUnlock()

	if ok {
		atomic.AddInt64(&c.hits, 1)
		return id, true
	}
	atomic.AddInt64(&c.misses, 1)
	return uuid.Nil, false
}

// Set stores a resolved mapping. Concurrent populates of the same name may
// race; both writers hold the same resolved value so last-write-wins is fine.
func (c *InMemorySystemAccountCache) Set(name ledger.SystemName, accountID uuid.UUID) {
	c.mu.Lock()
	c.entries[name] = accountID
	c.mu.Unlock()
}

// InvalidateAll drops every cached mapping
func (c *InMemorySystemAccountCache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[ledger.SystemName]uuid.UUID)
	c.mu.Unlock()
	c.logger.Debug("system account cache invalidated")
}

// Len reports the number of cached mappings
func (c *InMemorySystemAccountCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns hit and miss counters
func (c *InMemorySystemAccountCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Ensure InMemorySystemAccountCache implements SystemAccountCache
var _ ledger.SystemAccountCache = (*InMemorySystemAccountCache)(nil)
