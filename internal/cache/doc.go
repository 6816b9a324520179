// Package cache provides a generic LRU cache with an eviction callback.
//
// The cache owns keyed resources whose lifetime ends on eviction, such as
// prepared GPU textures: the callback releases the evicted value.
//
//	c := cache.New[string, *Texture](64, func(key string, tex *Texture) {
//		release(tex)
//	})
//	c.Set("checker", tex)
//	tex, ok := c.Get("checker")
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
// The eviction callback runs outside the cache lock.
package cache
