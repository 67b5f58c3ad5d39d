// Package raster provides the raster/document collaborator types the undo
// engine treats as external per spec §6.1 (Image, Stock, Layer, Cel,
// Palette, Mask, Sprite/Document). The engine only ever touches these
// through the small surface described there; everything else here — pixel
// blending, file formats, rendering — is out of scope and absent.
package raster

import (
	"fmt"

	"github.com/anyproto/sprite-undo/objects"
)

// ImgType selects the pixel format and therefore bytes-per-pixel.
type ImgType uint8

const (
	RGB ImgType = iota
	GRAY
	INDEXED
)

// BytesPerPixel returns the per-pixel byte width for t.
func (t ImgType) BytesPerPixel() int {
	switch t {
	case RGB:
		return 4
	case GRAY:
		return 2
	case INDEXED:
		return 1
	default:
		return 0
	}
}

// LineSize returns the byte width of one pixel row of width w.
func (t ImgType) LineSize(w int) int {
	return w * t.BytesPerPixel()
}

// Image is a raw pixel buffer, addressed the way spec §6.1/§6.2 describes:
// row-major, line_size(w) bytes per row, optional per-image mask color.
type Image struct {
	ID        objects.ID
	ImgType   ImgType
	W, H      uint16
	MaskColor uint32
	Pix       []byte
}

// NewImage allocates a zeroed image of the given type and size.
func NewImage(t ImgType, w, h uint16) *Image {
	return &Image{
		ImgType: t,
		W:       w,
		H:       h,
		Pix:     make([]byte, t.LineSize(int(w))*int(h)),
	}
}

func (img *Image) lineSize() int { return img.ImgType.LineSize(int(img.W)) }

// checkRect validates that (x,y,w,h) lies within the image bounds.
func (img *Image) checkRect(x, y, w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("non-positive rect %dx%d", w, h)
	}
	if x < 0 || y < 0 || x+w > int(img.W) || y+h > int(img.H) {
		return fmt.Errorf("rect (%d,%d,%d,%d) out of bounds for %dx%d image", x, y, w, h, img.W, img.H)
	}
	return nil
}

// ReadRect copies the pixel bytes of the given rectangle out of the image.
func (img *Image) ReadRect(x, y, w, h int) ([]byte, error) {
	if err := img.checkRect(x, y, w, h); err != nil {
		return nil, err
	}
	bpp := img.ImgType.BytesPerPixel()
	rowBytes := w * bpp
	out := make([]byte, rowBytes*h)
	ls := img.lineSize()
	for row := 0; row < h; row++ {
		srcOff := (y+row)*ls + x*bpp
		copy(out[row*rowBytes:(row+1)*rowBytes], img.Pix[srcOff:srcOff+rowBytes])
	}
	return out, nil
}

// WriteRect overwrites the given rectangle with data (same layout ReadRect
// returns) and returns the previous contents of that rectangle.
func (img *Image) WriteRect(x, y, w, h int, data []byte) ([]byte, error) {
	if err := img.checkRect(x, y, w, h); err != nil {
		return nil, err
	}
	bpp := img.ImgType.BytesPerPixel()
	rowBytes := w * bpp
	if len(data) != rowBytes*h {
		return nil, fmt.Errorf("data length %d does not match rect %dx%d at %d bpp", len(data), w, h, bpp)
	}
	prev, _ := img.ReadRect(x, y, w, h)
	ls := img.lineSize()
	for row := 0; row < h; row++ {
		dstOff := (y+row)*ls + x*bpp
		copy(img.Pix[dstOff:dstOff+rowBytes], data[row*rowBytes:(row+1)*rowBytes])
	}
	return prev, nil
}

// FlipAxis selects the axis FLIP chunks mirror pixels across.
type FlipAxis uint8

const (
	FlipHorizontal FlipAxis = iota
	FlipVertical
)

// FlipRect mirrors the rectangle (x1,y1)-(x2,y2) (inclusive) across axis,
// in place. Flipping twice is the identity, which is what makes FLIP its
// own inverse.
func (img *Image) FlipRect(x1, y1, x2, y2 int, axis FlipAxis) error {
	if x2 < x1 || y2 < y1 {
		return fmt.Errorf("degenerate flip rect (%d,%d)-(%d,%d)", x1, y1, x2, y2)
	}
	w, h := x2-x1+1, y2-y1+1
	if err := img.checkRect(x1, y1, w, h); err != nil {
		return err
	}
	bpp := img.ImgType.BytesPerPixel()
	ls := img.lineSize()
	pixelAt := func(x, y int) []byte {
		off := y*ls + x*bpp
		return img.Pix[off : off+bpp]
	}
	switch axis {
	case FlipHorizontal:
		for y := y1; y <= y2; y++ {
			for lx, rx := x1, x2; lx < rx; lx, rx = lx+1, rx-1 {
				l, r := pixelAt(lx, y), pixelAt(rx, y)
				for i := range l {
					l[i], r[i] = r[i], l[i]
				}
			}
		}
	case FlipVertical:
		for ty, by := y1, y2; ty < by; ty, by = ty+1, by-1 {
			for x := x1; x <= x2; x++ {
				t, b := pixelAt(x, ty), pixelAt(x, by)
				for i := range t {
					t[i], b[i] = b[i], t[i]
				}
			}
		}
	default:
		return fmt.Errorf("unknown flip axis %d", axis)
	}
	return nil
}
