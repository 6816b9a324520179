package guardian

import (
	"image"

	"golang.org/x/image/draw"
)

// ImageTextureDesc returns a descriptor holding the pixels of img as
// straight RGBA8. If maxSize is positive and img is larger in either
// dimension, the image is scaled down to fit, keeping its aspect ratio.
func ImageTextureDesc(label string, img image.Image, maxSize int) TextureDesc {
	rgba := ToRGBA(img, maxSize)
	b := rgba.Bounds()
	return TextureDesc{
		Label:  label,
		Width:  b.Dx(),
		Height: b.Dy(),
		Pixels: rgba.Pix,
	}
}

// ToRGBA converts img to a tightly packed *image.NRGBA anchored at the
// origin, scaling it down to fit maxSize when maxSize is positive.
func ToRGBA(img image.Image, maxSize int) *image.NRGBA {
	src := img.Bounds()
	w, h := fitSize(src.Dx(), src.Dy(), maxSize)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == src.Dx() && h == src.Dy() {
		draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

func fitSize(w, h, maxSize int) (int, int) {
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return w, h
	}
	if w >= h {
		return maxSize, max(1, h*maxSize/w)
	}
	return max(1, w*maxSize/h), maxSize
}
