package guardian

import (
	"github.com/gogpu/gsg/internal/cache"
)

// TexturePool keeps prepared textures under string keys. When the pool
// holds more textures than its limit, the least recently used one is
// released through the guardian.
//
// The pool belongs to its guardian and shares its goroutine.
type TexturePool struct {
	g       *Guardian
	entries *cache.Cache[string, *TextureContext]
	keys    map[*TextureContext]string
}

func newTexturePool(g *Guardian, limit int) *TexturePool {
	p := &TexturePool{
		g:    g,
		keys: make(map[*TextureContext]string),
	}
	p.entries = cache.New(limit, p.evict)
	return p
}

// Get returns the texture stored under key. If there is none, it prepares
// one from desc and stores it.
func (p *TexturePool) Get(key string, desc TextureDesc) (*TextureContext, error) {
	if tc, ok := p.entries.Get(key); ok {
		return tc, nil
	}
	if desc.Label == "" {
		desc.Label = key
	}
	tc, err := p.g.PrepareTexture(desc)
	if err != nil {
		return nil, err
	}
	p.keys[tc] = key
	p.entries.Set(key, tc)
	return tc, nil
}

// Lookup returns the texture stored under key without preparing one.
func (p *TexturePool) Lookup(key string) (*TextureContext, bool) {
	return p.entries.Get(key)
}

// Drop releases the texture stored under key. It reports whether there
// was one.
func (p *TexturePool) Drop(key string) bool {
	tc, ok := p.entries.Peek(key)
	if !ok {
		return false
	}
	p.g.ReleaseTexture(tc)
	return true
}

// Purge releases every pooled texture.
func (p *TexturePool) Purge() {
	p.entries.Purge()
}

// Len returns the number of pooled textures.
func (p *TexturePool) Len() int {
	return p.entries.Len()
}

// Stats returns the statistics of the underlying cache.
func (p *TexturePool) Stats() cache.Stats {
	return p.entries.Stats()
}

// evict is called by the cache for textures pushed out by the limit.
func (p *TexturePool) evict(key string, tc *TextureContext) {
	p.g.logger.Debug("guardian: evicting pooled texture", "key", key, "texture", tc.String())
	p.g.ReleaseTexture(tc)
}

// forget removes tc from the pool after it was released.
func (p *TexturePool) forget(tc *TextureContext) {
	key, ok := p.keys[tc]
	if !ok {
		return
	}
	delete(p.keys, tc)
	if cur, ok := p.entries.Peek(key); ok && cur == tc {
		p.entries.Delete(key)
	}
}
