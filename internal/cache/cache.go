package cache

import "sync"

// Cache is a generic thread-safe LRU cache with a hard entry limit and an
// eviction callback. When an insertion pushes the cache over its limit,
// the least recently used entries are removed and handed to the callback.
//
// The callback runs after the cache lock has been released, so it may call
// back into the cache.
//
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*lruNode[K, V]
	order   lruList[K, V]
	limit   int
	onEvict func(K, V)

	evictions uint64
}

// New creates a new cache holding at most limit entries.
// A limit of 0 means unlimited. onEvict may be nil.
func New[K comparable, V any](limit int, onEvict func(K, V)) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]*lruNode[K, V]),
		limit:   limit,
		onEvict: onEvict,
	}
}

// Get retrieves a value from the cache and marks it most recently used.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.moveToFront(node)
	return node.value, true
}

// Peek retrieves a value without changing its recency.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return node.value, true
}

// Set stores a value in the cache as the most recently used entry.
// Replacing an existing value does not evict the old one through the
// callback. If the cache exceeds its limit after insertion, the oldest
// entries are evicted.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	if node, ok := c.entries[key]; ok {
		node.value = value
		c.order.moveToFront(node)
		c.mu.Unlock()
		return
	}

	node := &lruNode[K, V]{key: key, value: value}
	c.entries[key] = node
	c.order.pushFront(node)

	var evicted []*lruNode[K, V]
	for c.limit > 0 && len(c.entries) > c.limit {
		old := c.order.popBack()
		delete(c.entries, old.key)
		evicted = append(evicted, old)
	}
	c.evictions += uint64(len(evicted))
	onEvict := c.onEvict
	c.mu.Unlock()

	if onEvict != nil {
		for _, old := range evicted {
			onEvict(old.key, old.value)
		}
	}
}

// Delete removes an entry from the cache without calling the eviction
// callback. Returns true if the entry was found and removed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if !ok {
		return false
	}
	c.order.unlink(node)
	delete(c.entries, key)
	return true
}

// Purge removes all entries, passing each to the eviction callback from
// least to most recently used.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	evicted := make([]*lruNode[K, V], 0, len(c.entries))
	for node := c.order.popBack(); node != nil; node = c.order.popBack() {
		evicted = append(evicted, node)
	}
	clear(c.entries)
	c.evictions += uint64(len(evicted))
	onEvict := c.onEvict
	c.mu.Unlock()

	if onEvict != nil {
		for _, node := range evicted {
			onEvict(node.key, node.value)
		}
	}
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Capacity returns the entry limit of the cache.
func (c *Cache[K, V]) Capacity() int {
	return c.limit
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Len:       len(c.entries),
		Capacity:  c.limit,
		Evictions: c.evictions,
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the entry limit, 0 for unlimited.
	Capacity int
	// Evictions is the number of entries handed to the eviction callback.
	Evictions uint64
}
