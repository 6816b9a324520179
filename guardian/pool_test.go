package guardian

import (
	"strconv"
	"testing"
)

func uintString(n uint64) string {
	return strconv.FormatUint(n, 10)
}

func TestTexturePoolGet(t *testing.T) {
	g, _ := newTestGuardian()
	p := g.Textures()

	a, err := p.Get("checker", smallDesc(""))
	if err != nil {
		t.Fatal(err)
	}
	again, err := p.Get("checker", smallDesc(""))
	if err != nil {
		t.Fatal(err)
	}
	if a != again {
		t.Error("second Get prepared a new texture")
	}
	if a.Label() != "checker" {
		t.Errorf("Label() = %q, want the pool key", a.Label())
	}
	if !g.IsPreparedTexture(a) || g.PreparedTextures() != 1 {
		t.Error("pooled texture is not prepared exactly once")
	}
}

func TestTexturePoolEvictsThroughGuardian(t *testing.T) {
	g, b := newTestGuardian(WithTexturePoolSize(2))
	p := g.Textures()

	a, _ := p.Get("a", smallDesc(""))
	p.Get("b", smallDesc(""))
	p.Lookup("a")
	p.Get("c", smallDesc(""))

	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
	if _, ok := p.Lookup("b"); ok {
		t.Error("least recently used texture b was not evicted")
	}
	if len(b.released) != 1 || b.released[0].Label() != "b" {
		t.Errorf("released %v, want b", b.released)
	}
	if !g.IsPreparedTexture(a) || g.PreparedTextures() != 2 {
		t.Errorf("PreparedTextures() = %d, want 2", g.PreparedTextures())
	}
	if p.Stats().Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", p.Stats().Evictions)
	}
}

func TestTexturePoolDrop(t *testing.T) {
	g, b := newTestGuardian()
	p := g.Textures()
	tc, _ := p.Get("a", smallDesc(""))

	if !p.Drop("a") {
		t.Error("Drop(a) = false")
	}
	if p.Drop("a") {
		t.Error("second Drop(a) = true")
	}
	if g.IsPreparedTexture(tc) || len(b.released) != 1 {
		t.Error("dropped texture was not released")
	}
}

func TestGuardianReleaseDropsPoolEntry(t *testing.T) {
	g, _ := newTestGuardian()
	p := g.Textures()
	tc, _ := p.Get("a", smallDesc(""))

	g.ReleaseTexture(tc)

	if p.Len() != 0 {
		t.Errorf("pool still holds %d textures", p.Len())
	}
	again, err := p.Get("a", smallDesc(""))
	if err != nil {
		t.Fatal(err)
	}
	if again == tc {
		t.Error("pool returned a released texture")
	}
}

func TestReleaseAllTexturesEmptiesPool(t *testing.T) {
	g, b := newTestGuardian()
	p := g.Textures()
	p.Get("a", smallDesc(""))
	p.Get("b", smallDesc(""))
	if _, err := g.PrepareTexture(smallDesc("loose")); err != nil {
		t.Fatal(err)
	}

	g.ReleaseAllTextures()

	if p.Len() != 0 || g.PreparedTextures() != 0 {
		t.Errorf("pool %d, prepared %d, want 0, 0", p.Len(), g.PreparedTextures())
	}
	if len(b.released) != 3 {
		t.Errorf("release calls = %d, want 3", len(b.released))
	}
}

func TestTexturePoolPurge(t *testing.T) {
	g, b := newTestGuardian()
	p := g.Textures()
	p.Get("a", smallDesc(""))
	p.Get("b", smallDesc(""))

	p.Purge()

	if p.Len() != 0 || g.PreparedTextures() != 0 || len(b.released) != 2 {
		t.Errorf("after Purge: pool %d, prepared %d, released %d", p.Len(), g.PreparedTextures(), len(b.released))
	}
}
