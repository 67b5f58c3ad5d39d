package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ToStdImage converts img into the standard library image.Image variant
// matching its pixel format: image.NRGBA for RGB, image.Gray for GRAY,
// image.Paletted for INDEXED. palette supplies the RGBA entries (packed
// 0xRRGGBBAA, matching Palette.Colors) for INDEXED images and is ignored
// otherwise. The result is then normalized through imaging.Clone, the
// same NRGBA interchange step disintegration/imaging applies to every
// source image before a transform, so callers get a uniform type to
// save or further edit regardless of the source imgtype.
func (img *Image) ToStdImage(palette []uint32) (*image.NRGBA, error) {
	w, h := int(img.W), int(img.H)
	ls := img.lineSize()
	switch img.ImgType {
	case RGB:
		src := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			copy(src.Pix[y*src.Stride:y*src.Stride+w*4], img.Pix[y*ls:y*ls+w*4])
		}
		return imaging.Clone(src), nil
	case GRAY:
		src := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				src.SetGray(x, y, color.Gray{Y: img.Pix[y*ls+x*2]})
			}
		}
		return imaging.Clone(src), nil
	case INDEXED:
		pal := make(color.Palette, len(palette))
		for i, c := range palette {
			pal[i] = color.NRGBA{R: byte(c >> 24), G: byte(c >> 16), B: byte(c >> 8), A: byte(c)}
		}
		src := image.NewPaletted(image.Rect(0, 0, w, h), pal)
		for y := 0; y < h; y++ {
			copy(src.Pix[y*src.Stride:y*src.Stride+w], img.Pix[y*ls:y*ls+w])
		}
		return imaging.Clone(src), nil
	default:
		return nil, fmt.Errorf("unknown imgtype %d", img.ImgType)
	}
}
