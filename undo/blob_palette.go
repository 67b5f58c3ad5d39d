package undo

import (
	"github.com/anyproto/sprite-undo/raster"
)

// encodePalette renders p in spec.md §6.2's exact Palette wire layout:
// u16 frame; u16 ncolors; ncolors x u32 rgba. A Palette carries no id of
// its own; a caller that needs one to correlate this blob with another
// chunk writes it as a separate field outside this function, the same
// way ADD_IMAGE/REMOVE_IMAGE carry their stock index alongside (not
// inside) the image blob.
func encodePalette(p *raster.Palette) []byte {
	w := newWriter()
	w.u16(p.Frame)
	w.u16(uint16(p.Size()))
	for _, c := range p.Colors {
		w.u32(c)
	}
	return w.bytesOf()
}

func decodePalette(r *reader) (*raster.Palette, error) {
	frame, err := r.u16()
	if err != nil {
		return nil, err
	}
	size, err := r.u16()
	if err != nil {
		return nil, err
	}
	colors := make([]uint32, size)
	for i := range colors {
		v, err := r.u32()
		if err != nil {
			return nil, err
		}
		colors[i] = v
	}
	return &raster.Palette{Frame: frame, Colors: colors}, nil
}
