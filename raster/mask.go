package raster

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"
)

// Mask is the selection bitmap of spec §6.1/§6.2: an (x,y,w,h) rectangle
// plus a packed-bit membership test per pixel. The membership set is a
// Roaring bitmap keyed by row*w+col, which is a natural fit for a mostly
// sparse or mostly-full boolean grid; EncodePacked walks it with the
// bitmap's iterator to produce the spec's packed-row wire format.
type Mask struct {
	X, Y, W, H uint16
	bits       *roaring.Bitmap
}

// NewMask allocates an empty (all-clear) mask over the given rectangle.
func NewMask(x, y, w, h uint16) *Mask {
	return &Mask{X: x, Y: y, W: w, H: h, bits: roaring.New()}
}

func (m *Mask) index(x, y uint16) uint32 {
	return uint32(y)*uint32(m.W) + uint32(x)
}

// Set marks pixel (x,y), relative to the mask rectangle, as selected.
func (m *Mask) Set(x, y uint16) {
	if m.bits == nil {
		m.bits = roaring.New()
	}
	m.bits.Add(m.index(x, y))
}

// Test reports whether pixel (x,y), relative to the mask rectangle, is
// selected.
func (m *Mask) Test(x, y uint16) bool {
	if m.bits == nil || x >= m.W || y >= m.H {
		return false
	}
	return m.bits.Contains(m.index(x, y))
}

// Clone deep-copies the mask, used by SET_MASK's symmetric encode-then-
// overwrite contract.
func (m *Mask) Clone() *Mask {
	c := &Mask{X: m.X, Y: m.Y, W: m.W, H: m.H, bits: roaring.New()}
	if m.bits != nil {
		c.bits.Or(m.bits)
	}
	return c
}

// EncodePacked renders the mask into the raw packed-bit rows spec §6.2
// describes: (w+7)/8 bytes per row, zero w or h meaning no bitmap body.
func (m *Mask) EncodePacked() []byte {
	if m.W == 0 || m.H == 0 {
		return nil
	}
	rowBytes := int(m.W+7) / 8
	out := make([]byte, rowBytes*int(m.H))
	if m.bits == nil {
		return out
	}
	it := m.bits.Iterator()
	for it.HasNext() {
		v := it.Next()
		y := v / uint32(m.W)
		x := v % uint32(m.W)
		out[int(y)*rowBytes+int(x)/8] |= 1 << uint(x%8)
	}
	return out
}

// DecodePacked replaces the mask's membership set from raw packed-bit rows
// matching EncodePacked's layout.
func (m *Mask) DecodePacked(data []byte) error {
	m.bits = roaring.New()
	if m.W == 0 || m.H == 0 {
		return nil
	}
	rowBytes := int(m.W+7) / 8
	if len(data) != rowBytes*int(m.H) {
		return fmt.Errorf("packed mask data length %d does not match %dx%d", len(data), m.W, m.H)
	}
	for y := 0; y < int(m.H); y++ {
		for x := 0; x < int(m.W); x++ {
			b := data[y*rowBytes+x/8]
			if b&(1<<uint(x%8)) != 0 {
				m.bits.Add(uint32(y)*uint32(m.W) + uint32(x))
			}
		}
	}
	return nil
}
