package undo

import (
	"github.com/anyproto/sprite-undo/objects"
	"github.com/anyproto/sprite-undo/raster"
)

func init() {
	registerInverter(KindSetMask, invertSetMask)
	registerInverter(KindSetImgType, invertSetImgType)
	registerInverter(KindSetSize, invertSetSize)
	registerInverter(KindSetFrame, invertSetFrame)
	registerInverter(KindSetFrames, invertSetFrames)
	registerInverter(KindSetFrlen, invertSetFrlen)
}

// encodeMask renders m in spec.md §6.2's exact Mask wire layout: u16 x,
// y, w, h followed by the packed bitmap body, with no length prefix — the
// body's length is always (w+7)/8*h bytes, derivable from w and h alone
// (raster.Mask.EncodePacked guarantees this), and zero for a zero w or h.
func encodeMask(w *writer, m *raster.Mask) {
	w.u16(m.X)
	w.u16(m.Y)
	w.u16(m.W)
	w.u16(m.H)
	w.bytes(m.EncodePacked())
}

func decodeMask(r *reader) (*raster.Mask, error) {
	x, err := r.u16()
	if err != nil {
		return nil, err
	}
	y, err := r.u16()
	if err != nil {
		return nil, err
	}
	w, err := r.u16()
	if err != nil {
		return nil, err
	}
	h, err := r.u16()
	if err != nil {
		return nil, err
	}
	n := 0
	if w != 0 && h != 0 {
		n = int(w+7) / 8 * int(h)
	}
	data, err := r.bytes(n)
	if err != nil {
		return nil, err
	}
	m := raster.NewMask(x, y, w, h)
	if err := m.DecodePacked(data); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordSetMask encodes doc's current mask, then replaces it with next.
func (h *History) RecordSetMask(doc *raster.Document, next *raster.Mask) {
	id := registerDocument(h.objects, doc)
	w := newWriter()
	w.u32(uint32(id))
	encodeMask(w, doc.Mask)
	doc.Mask = next
	h.appendUndo(buildChunk(KindSetMask, h.labelOrKindName(KindSetMask), w.bytesOf()))
}

func invertSetMask(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	id, err := r.u32()
	if err != nil {
		return wrapFailure(KindSetMask, "decode doc id", err)
	}
	stored, err := decodeMask(r)
	if err != nil {
		return wrapFailure(KindSetMask, "decode mask", err)
	}
	doc, rerr := resolve[*raster.Document](KindSetMask, h.objects, objects.ID(id), "document")
	if rerr != nil {
		return rerr
	}
	w := newWriter()
	w.u32(id)
	encodeMask(w, doc.Mask)
	doc.Mask = stored
	dst.Push(buildChunk(KindSetMask, c.Label(), w.bytesOf()))
	return nil
}

// RecordSetImgType encodes the sprite's current pixel format, then
// overwrites it.
func (h *History) RecordSetImgType(sprite *raster.Sprite, t raster.ImgType) {
	id := registerSprite(h.objects, sprite)
	old := sprite.ImgType
	sprite.ImgType = t
	w := newWriter()
	w.u32(uint32(id))
	w.u8(uint8(old))
	h.appendUndo(buildChunk(KindSetImgType, h.labelOrKindName(KindSetImgType), w.bytesOf()))
}

func invertSetImgType(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	id, err := r.u32()
	if err != nil {
		return wrapFailure(KindSetImgType, "decode sprite id", err)
	}
	stored, err := r.u8()
	if err != nil {
		return wrapFailure(KindSetImgType, "decode imgtype", err)
	}
	sprite, rerr := resolve[*raster.Sprite](KindSetImgType, h.objects, objects.ID(id), "sprite")
	if rerr != nil {
		return rerr
	}
	current := sprite.ImgType
	sprite.ImgType = raster.ImgType(stored)

	w := newWriter()
	w.u32(id)
	w.u8(uint8(current))
	dst.Push(buildChunk(KindSetImgType, c.Label(), w.bytesOf()))
	return nil
}

// RecordSetSize encodes the sprite's current canvas dimensions, then
// overwrites them. Pixel reflow, if any, is the caller's responsibility
// (typically a preceding IMAGE/DATA chunk on each affected stock image).
func (h *History) RecordSetSize(sprite *raster.Sprite, w16, h16 uint16) {
	id := registerSprite(h.objects, sprite)
	oldW, oldH := sprite.W, sprite.H
	sprite.W, sprite.H = w16, h16
	w := newWriter()
	w.u32(uint32(id))
	w.u16(oldW)
	w.u16(oldH)
	h.appendUndo(buildChunk(KindSetSize, h.labelOrKindName(KindSetSize), w.bytesOf()))
}

func invertSetSize(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	id, err := r.u32()
	if err != nil {
		return wrapFailure(KindSetSize, "decode sprite id", err)
	}
	storedW, err := r.u16()
	if err != nil {
		return wrapFailure(KindSetSize, "decode width", err)
	}
	storedH, err := r.u16()
	if err != nil {
		return wrapFailure(KindSetSize, "decode height", err)
	}
	sprite, rerr := resolve[*raster.Sprite](KindSetSize, h.objects, objects.ID(id), "sprite")
	if rerr != nil {
		return rerr
	}
	curW, curH := sprite.W, sprite.H
	sprite.W, sprite.H = storedW, storedH

	w := newWriter()
	w.u32(id)
	w.u16(curW)
	w.u16(curH)
	dst.Push(buildChunk(KindSetSize, c.Label(), w.bytesOf()))
	return nil
}

// RecordSetFrame encodes the sprite's current frame pointer, then moves it.
func (h *History) RecordSetFrame(sprite *raster.Sprite, frame uint16) {
	id := registerSprite(h.objects, sprite)
	old := sprite.CurrentFrame
	sprite.CurrentFrame = frame
	w := newWriter()
	w.u32(uint32(id))
	w.u16(old)
	h.appendUndo(buildChunk(KindSetFrame, h.labelOrKindName(KindSetFrame), w.bytesOf()))
}

func invertSetFrame(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	id, err := r.u32()
	if err != nil {
		return wrapFailure(KindSetFrame, "decode sprite id", err)
	}
	stored, err := r.u16()
	if err != nil {
		return wrapFailure(KindSetFrame, "decode frame", err)
	}
	sprite, rerr := resolve[*raster.Sprite](KindSetFrame, h.objects, objects.ID(id), "sprite")
	if rerr != nil {
		return rerr
	}
	current := sprite.CurrentFrame
	sprite.CurrentFrame = stored

	w := newWriter()
	w.u32(id)
	w.u16(current)
	dst.Push(buildChunk(KindSetFrame, c.Label(), w.bytesOf()))
	return nil
}

func encodeFrameDur(w *writer, durs []raster.FrameDuration) {
	w.u16(uint16(len(durs)))
	for _, d := range durs {
		w.u32(uint32(d))
	}
}

func decodeFrameDur(r *reader) ([]raster.FrameDuration, error) {
	n, err := r.u16()
	if err != nil {
		return nil, err
	}
	out := make([]raster.FrameDuration, n)
	for i := range out {
		v, err := r.u32()
		if err != nil {
			return nil, err
		}
		out[i] = raster.FrameDuration(v)
	}
	return out, nil
}

// RecordSetFrames encodes the sprite's current frame count and per-frame
// durations, then resizes both to total (new frames default to 100ms).
func (h *History) RecordSetFrames(sprite *raster.Sprite, total uint16) {
	id := registerSprite(h.objects, sprite)
	w := newWriter()
	w.u32(uint32(id))
	w.u16(sprite.TotalFrames)
	encodeFrameDur(w, sprite.FrameDur)

	durs := make([]raster.FrameDuration, total)
	for i := range durs {
		if i < len(sprite.FrameDur) {
			durs[i] = sprite.FrameDur[i]
		} else {
			durs[i] = 100
		}
	}
	sprite.TotalFrames = total
	sprite.FrameDur = durs
	h.appendUndo(buildChunk(KindSetFrames, h.labelOrKindName(KindSetFrames), w.bytesOf()))
}

func invertSetFrames(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	id, err := r.u32()
	if err != nil {
		return wrapFailure(KindSetFrames, "decode sprite id", err)
	}
	storedTotal, err := r.u16()
	if err != nil {
		return wrapFailure(KindSetFrames, "decode total frames", err)
	}
	storedDurs, err := decodeFrameDur(r)
	if err != nil {
		return wrapFailure(KindSetFrames, "decode durations", err)
	}
	sprite, rerr := resolve[*raster.Sprite](KindSetFrames, h.objects, objects.ID(id), "sprite")
	if rerr != nil {
		return rerr
	}

	w := newWriter()
	w.u32(id)
	w.u16(sprite.TotalFrames)
	encodeFrameDur(w, sprite.FrameDur)

	sprite.TotalFrames = storedTotal
	sprite.FrameDur = storedDurs
	dst.Push(buildChunk(KindSetFrames, c.Label(), w.bytesOf()))
	return nil
}

// RecordSetFrlen encodes a frame's current display duration, then
// overwrites it.
func (h *History) RecordSetFrlen(sprite *raster.Sprite, frame uint16, dur raster.FrameDuration) error {
	if int(frame) >= len(sprite.FrameDur) {
		return newFailure(KindSetFrlen, "frame index out of range")
	}
	id := registerSprite(h.objects, sprite)
	old := sprite.FrameDur[frame]
	sprite.FrameDur[frame] = dur
	w := newWriter()
	w.u32(uint32(id))
	w.u16(frame)
	w.u32(uint32(old))
	h.appendUndo(buildChunk(KindSetFrlen, h.labelOrKindName(KindSetFrlen), w.bytesOf()))
	return nil
}

func invertSetFrlen(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	id, err := r.u32()
	if err != nil {
		return wrapFailure(KindSetFrlen, "decode sprite id", err)
	}
	frame, err := r.u16()
	if err != nil {
		return wrapFailure(KindSetFrlen, "decode frame", err)
	}
	stored, err := r.u32()
	if err != nil {
		return wrapFailure(KindSetFrlen, "decode duration", err)
	}
	sprite, rerr := resolve[*raster.Sprite](KindSetFrlen, h.objects, objects.ID(id), "sprite")
	if rerr != nil {
		return rerr
	}
	if int(frame) >= len(sprite.FrameDur) {
		return newFailure(KindSetFrlen, "frame index out of range")
	}
	current := sprite.FrameDur[frame]
	sprite.FrameDur[frame] = raster.FrameDuration(stored)

	w := newWriter()
	w.u32(id)
	w.u16(frame)
	w.u32(uint32(current))
	dst.Push(buildChunk(KindSetFrlen, c.Label(), w.bytesOf()))
	return nil
}
