package script

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/gogpu/gsg/guardian"
	_ "golang.org/x/image/bmp"
)

// TextureDef describes a texture a script uses. A texture is either
// generated from a pattern or loaded from an image file.
type TextureDef struct {
	// Pattern is "solid" or "checker". Ignored when Path is set.
	Pattern string `toml:"pattern"`

	// Path is a PNG or BMP file, relative to the script directory.
	Path string `toml:"path"`

	// Size is the edge length of generated textures, and the maximum edge
	// length of loaded ones (0 keeps the file size).
	Size int `toml:"size"`

	// Colors are the RGBA colors of the pattern in [0, 1]: one for solid,
	// two for checker. Missing colors default to white and black.
	Colors [][]float64 `toml:"colors"`

	// Cell is the checker cell size in pixels, 1 by default.
	Cell int `toml:"cell"`
}

func (d TextureDef) validate() error {
	if d.Path != "" {
		return nil
	}
	switch d.Pattern {
	case "solid", "checker":
	default:
		return fmt.Errorf("%w: pattern %q", ErrBadValue, d.Pattern)
	}
	if d.Size <= 0 {
		return fmt.Errorf("%w: size %d", ErrBadValue, d.Size)
	}
	for _, c := range d.Colors {
		list := make([]any, len(c))
		for i, f := range c {
			list[i] = f
		}
		if _, err := parseColor(list); err != nil {
			return err
		}
	}
	return nil
}

func (d TextureDef) color(i int) color.NRGBA {
	if i >= len(d.Colors) {
		if i == 0 {
			return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return color.NRGBA{A: 255}
	}
	c := [4]float64{3: 1}
	copy(c[:], d.Colors[i])
	return color.NRGBA{
		R: uint8(c[0]*255 + 0.5),
		G: uint8(c[1]*255 + 0.5),
		B: uint8(c[2]*255 + 0.5),
		A: uint8(c[3]*255 + 0.5),
	}
}

// Image returns the texture content. dir resolves a relative Path.
func (d TextureDef) Image(dir string) (image.Image, error) {
	if d.Path != "" {
		path := d.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return img, nil
	}

	img := image.NewNRGBA(image.Rect(0, 0, d.Size, d.Size))
	a, b := d.color(0), d.color(1)
	cell := max(d.Cell, 1)
	for y := range d.Size {
		for x := range d.Size {
			c := a
			if d.Pattern == "checker" && (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img, nil
}

// Desc returns the texture descriptor of the definition named name.
func (d TextureDef) Desc(name, dir string) (guardian.TextureDesc, error) {
	img, err := d.Image(dir)
	if err != nil {
		return guardian.TextureDesc{}, err
	}
	maxSize := 0
	if d.Path != "" {
		maxSize = d.Size
	}
	return guardian.ImageTextureDesc(name, img, maxSize), nil
}

// PrepareTextures prepares every texture of the script on g, in name
// order. On failure the textures prepared so far are released.
func (s *Script) PrepareTextures(g *guardian.Guardian) (map[string]*guardian.TextureContext, error) {
	out := make(map[string]*guardian.TextureContext, len(s.Textures))
	for _, name := range slices.Sorted(maps.Keys(s.Textures)) {
		tc, err := s.prepare(g, name)
		if err != nil {
			for _, prepared := range out {
				g.ReleaseTexture(prepared)
			}
			return nil, fmt.Errorf("texture %q: %w", name, err)
		}
		out[name] = tc
	}
	return out, nil
}

func (s *Script) prepare(g *guardian.Guardian, name string) (*guardian.TextureContext, error) {
	desc, err := s.Textures[name].Desc(name, s.Dir)
	if err != nil {
		return nil, err
	}
	return g.PrepareTexture(desc)
}
