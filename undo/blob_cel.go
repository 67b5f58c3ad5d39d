package undo

import (
	"github.com/anyproto/sprite-undo/objects"
	"github.com/anyproto/sprite-undo/raster"
)

// encodeCelBlob renders cel as the raw Cel encoding of spec §6.2:
// u32 id; u16 frame; u16 image_idx; i16 x; i16 y; u16 opacity.
func encodeCelBlob(cel *raster.Cel) []byte {
	w := newWriter()
	w.u32(uint32(cel.ID))
	w.u16(cel.Frame)
	w.u16(cel.ImageIdx)
	w.i16(cel.X)
	w.i16(cel.Y)
	w.u16(cel.Opacity)
	return w.bytesOf()
}

func decodeCelBlob(r *reader) (*raster.Cel, error) {
	id, err := r.u32()
	if err != nil {
		return nil, err
	}
	frame, err := r.u16()
	if err != nil {
		return nil, err
	}
	imageIdx, err := r.u16()
	if err != nil {
		return nil, err
	}
	x, err := r.i16()
	if err != nil {
		return nil, err
	}
	y, err := r.i16()
	if err != nil {
		return nil, err
	}
	opacity, err := r.u16()
	if err != nil {
		return nil, err
	}
	return &raster.Cel{ID: objects.ID(id), Frame: frame, ImageIdx: imageIdx, X: x, Y: y, Opacity: opacity}, nil
}
