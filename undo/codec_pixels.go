package undo

import (
	"github.com/anyproto/sprite-undo/objects"
	"github.com/anyproto/sprite-undo/raster"
)

func init() {
	registerInverter(KindData, invertData)
	registerInverter(KindImage, invertImage)
	registerInverter(KindFlip, invertFlip)
}

// RecordData encodes a DATA chunk: a byte-offset patch into img's flat
// pixel buffer, for edits too small or irregular to justify an IMAGE
// rectangle (spec §4.2, §6.2 general contract). data is the bytes
// currently at offset, captured by the caller before it performs the
// write: the chunk stores what to restore.
func (h *History) RecordData(img *raster.Image, offset int, data []byte) error {
	if offset < 0 || len(data) == 0 || offset+len(data) > len(img.Pix) {
		return newFailure(KindData, "byte range out of bounds")
	}
	id := registerImage(h.objects, img)
	w := newWriter()
	w.u32(uint32(id))
	w.u32(uint32(offset))
	w.u32(uint32(len(data)))
	w.bytes(data)
	h.appendUndo(buildChunk(KindData, h.labelOrKindName(KindData), w.bytesOf()))
	return nil
}

func invertData(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	id, err := r.u32()
	if err != nil {
		return wrapFailure(KindData, "decode object id", err)
	}
	offset, err := r.u32()
	if err != nil {
		return wrapFailure(KindData, "decode offset", err)
	}
	length, err := r.u32()
	if err != nil {
		return wrapFailure(KindData, "decode length", err)
	}
	data, err := r.bytes(int(length))
	if err != nil {
		return wrapFailure(KindData, "decode data", err)
	}
	img, err := resolve[*raster.Image](KindData, h.objects, objects.ID(id), "image")
	if err != nil {
		return err
	}
	if int(offset)+int(length) > len(img.Pix) {
		return newFailure(KindData, "byte range out of bounds against current image")
	}
	prev := make([]byte, length)
	copy(prev, img.Pix[offset:offset+length])
	copy(img.Pix[offset:offset+length], data)

	w := newWriter()
	w.u32(id)
	w.u32(offset)
	w.u32(length)
	w.bytes(prev)
	dst.Push(buildChunk(KindData, c.Label(), w.bytesOf()))
	return nil
}

// RecordImage encodes an IMAGE chunk: a snapshot of the current contents
// of the rectangle (x,y,w,h) of img, immediately before the caller
// overwrites it.
func (h *History) RecordImage(img *raster.Image, x, y, w, ht int) error {
	rect, err := img.ReadRect(x, y, w, ht)
	if err != nil {
		return newFailure(KindImage, err.Error())
	}
	id := registerImage(h.objects, img)
	wr := newWriter()
	wr.u32(uint32(id))
	wr.u8(uint8(img.ImgType))
	wr.u16(uint16(x))
	wr.u16(uint16(y))
	wr.u16(uint16(w))
	wr.u16(uint16(ht))
	wr.bytes(rect)
	h.appendUndo(buildChunk(KindImage, h.labelOrKindName(KindImage), wr.bytesOf()))
	return nil
}

func invertImage(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	id, err := r.u32()
	if err != nil {
		return wrapFailure(KindImage, "decode object id", err)
	}
	imgtype, err := r.u8()
	if err != nil {
		return wrapFailure(KindImage, "decode imgtype", err)
	}
	x, err := r.u16()
	if err != nil {
		return wrapFailure(KindImage, "decode x", err)
	}
	y, err := r.u16()
	if err != nil {
		return wrapFailure(KindImage, "decode y", err)
	}
	rw, err := r.u16()
	if err != nil {
		return wrapFailure(KindImage, "decode w", err)
	}
	rh, err := r.u16()
	if err != nil {
		return wrapFailure(KindImage, "decode h", err)
	}
	rectLen := raster.ImgType(imgtype).LineSize(int(rw)) * int(rh)
	rect, err := r.bytes(rectLen)
	if err != nil {
		return wrapFailure(KindImage, "decode pixel rect", err)
	}

	img, err := resolve[*raster.Image](KindImage, h.objects, objects.ID(id), "image")
	if err != nil {
		return err
	}
	if img.ImgType != raster.ImgType(imgtype) {
		return newFailure(KindImage, "imgtype mismatch between chunk and live image")
	}
	prev, ierr := img.ReadRect(int(x), int(y), int(rw), int(rh))
	if ierr != nil {
		return newFailure(KindImage, ierr.Error())
	}
	if _, werr := img.WriteRect(int(x), int(y), int(rw), int(rh), rect); werr != nil {
		return newFailure(KindImage, werr.Error())
	}

	w := newWriter()
	w.u32(id)
	w.u8(imgtype)
	w.u16(x)
	w.u16(y)
	w.u16(rw)
	w.u16(rh)
	w.bytes(prev)
	dst.Push(buildChunk(KindImage, c.Label(), w.bytesOf()))
	return nil
}

// RecordFlip encodes a FLIP chunk. The caller applies the flip itself;
// the chunk stores no pixels, since FLIP's own inverse is simply flipping
// the same rectangle across the same axis again.
func (h *History) RecordFlip(img *raster.Image, x1, y1, x2, y2 int, axis raster.FlipAxis) error {
	id := registerImage(h.objects, img)
	w := newWriter()
	w.u32(uint32(id))
	w.u8(uint8(img.ImgType))
	w.u16(uint16(x1))
	w.u16(uint16(y1))
	w.u16(uint16(x2))
	w.u16(uint16(y2))
	w.u8(uint8(axis))
	h.appendUndo(buildChunk(KindFlip, h.labelOrKindName(KindFlip), w.bytesOf()))
	return nil
}

func invertFlip(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	id, err := r.u32()
	if err != nil {
		return wrapFailure(KindFlip, "decode object id", err)
	}
	imgtype, err := r.u8()
	if err != nil {
		return wrapFailure(KindFlip, "decode imgtype", err)
	}
	x1, err := r.u16()
	if err != nil {
		return wrapFailure(KindFlip, "decode x1", err)
	}
	y1, err := r.u16()
	if err != nil {
		return wrapFailure(KindFlip, "decode y1", err)
	}
	x2, err := r.u16()
	if err != nil {
		return wrapFailure(KindFlip, "decode x2", err)
	}
	y2, err := r.u16()
	if err != nil {
		return wrapFailure(KindFlip, "decode y2", err)
	}
	axis, err := r.u8()
	if err != nil {
		return wrapFailure(KindFlip, "decode axis", err)
	}

	img, rerr := resolve[*raster.Image](KindFlip, h.objects, objects.ID(id), "image")
	if rerr != nil {
		return rerr
	}
	if img.ImgType != raster.ImgType(imgtype) {
		// Unlike IMAGE (spec §7 point 2), FLIP has no named exception: an
		// imgtype mismatch here means the live image was replaced through a
		// path this engine never observed, and is tolerated the same as a
		// deleted collaborator.
		return skip(KindFlip, "imgtype mismatch between chunk and live image")
	}
	if err := img.FlipRect(int(x1), int(y1), int(x2), int(y2), raster.FlipAxis(axis)); err != nil {
		return newFailure(KindFlip, err.Error())
	}

	w := newWriter()
	w.u32(id)
	w.u8(imgtype)
	w.u16(x1)
	w.u16(y1)
	w.u16(x2)
	w.u16(y2)
	w.u8(axis)
	dst.Push(buildChunk(KindFlip, c.Label(), w.bytesOf()))
	return nil
}
