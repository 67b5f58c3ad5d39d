package undo

import (
	"github.com/anyproto/sprite-undo/objects"
	"github.com/anyproto/sprite-undo/raster"
)

func init() {
	registerInverter(KindAddPalette, invertAddPalette)
	registerInverter(KindRemovePalette, invertRemovePalette)
	registerInverter(KindSetPaletteColors, invertSetPaletteColors)
	registerInverter(KindRemapPalette, invertRemapPalette)
}

// RecordAddPalette attaches palette at frame on sprite and encodes an
// ADD_PALETTE chunk.
func (h *History) RecordAddPalette(sprite *raster.Sprite, palette *raster.Palette) {
	sprite.Palettes[palette.Frame] = palette
	spriteID := registerSprite(h.objects, sprite)
	paletteID := h.objects.Add(palette)
	w := newWriter()
	w.u32(uint32(spriteID))
	w.u32(uint32(paletteID))
	h.appendUndo(buildChunk(KindAddPalette, h.labelOrKindName(KindAddPalette), w.bytesOf()))
}

func invertAddPalette(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	spriteID, err := r.u32()
	if err != nil {
		return wrapFailure(KindAddPalette, "decode sprite id", err)
	}
	paletteID, err := r.u32()
	if err != nil {
		return wrapFailure(KindAddPalette, "decode palette id", err)
	}
	sprite, rerr := resolve[*raster.Sprite](KindAddPalette, h.objects, objects.ID(spriteID), "sprite")
	if rerr != nil {
		return rerr
	}
	palette, rerr := resolve[*raster.Palette](KindAddPalette, h.objects, objects.ID(paletteID), "palette")
	if rerr != nil {
		return rerr
	}
	delete(sprite.Palettes, palette.Frame)
	h.objects.Remove(objects.ID(paletteID))

	w := newWriter()
	w.u32(spriteID)
	w.u32(paletteID)
	w.bytes(encodePalette(palette))
	dst.Push(buildChunk(KindRemovePalette, c.Label(), w.bytesOf()))
	return nil
}

// RecordRemovePalette detaches the palette at frame from sprite and
// encodes a REMOVE_PALETTE chunk carrying its contents.
func (h *History) RecordRemovePalette(sprite *raster.Sprite, frame uint16) error {
	palette, ok := sprite.Palettes[frame]
	if !ok {
		return newFailure(KindRemovePalette, "no palette at that frame")
	}
	delete(sprite.Palettes, frame)
	spriteID := registerSprite(h.objects, sprite)
	paletteID := h.objects.Add(palette)
	w := newWriter()
	w.u32(uint32(spriteID))
	w.u32(uint32(paletteID))
	w.bytes(encodePalette(palette))
	h.objects.Remove(paletteID)
	h.appendUndo(buildChunk(KindRemovePalette, h.labelOrKindName(KindRemovePalette), w.bytesOf()))
	return nil
}

func invertRemovePalette(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	spriteID, err := r.u32()
	if err != nil {
		return wrapFailure(KindRemovePalette, "decode sprite id", err)
	}
	paletteID, err := r.u32()
	if err != nil {
		return wrapFailure(KindRemovePalette, "decode palette id", err)
	}
	palette, err := decodePalette(r)
	if err != nil {
		return wrapFailure(KindRemovePalette, "decode palette blob", err)
	}
	sprite, rerr := resolve[*raster.Sprite](KindRemovePalette, h.objects, objects.ID(spriteID), "sprite")
	if rerr != nil {
		return rerr
	}
	sprite.Palettes[palette.Frame] = palette
	h.objects.Insert(objects.ID(paletteID), palette)

	w := newWriter()
	w.u32(spriteID)
	w.u32(uint32(paletteID))
	dst.Push(buildChunk(KindAddPalette, c.Label(), w.bytesOf()))
	return nil
}

// RecordSetPaletteColors overwrites entries [from,to) of the palette
// attached to frame with newColors, encoding the previous contents. Per
// the frame-pinning resolution (DESIGN.md), the chunk stores the frame
// index: the inverse writes into whatever palette is attached to that
// frame when it replays, regardless of which frame is current then.
func (h *History) RecordSetPaletteColors(sprite *raster.Sprite, frame uint16, from, to int, newColors []uint32) error {
	palette, ok := sprite.Palettes[frame]
	if !ok {
		return newFailure(KindSetPaletteColors, "no palette at that frame")
	}
	if from < 0 || to > palette.Size() || from > to || to-from != len(newColors) {
		return newFailure(KindSetPaletteColors, "color range out of bounds")
	}
	spriteID := registerSprite(h.objects, sprite)
	w := newWriter()
	w.u32(uint32(spriteID))
	w.u16(frame)
	w.u16(uint16(from))
	w.u16(uint16(to))
	for _, c := range palette.Colors[from:to] {
		w.u32(c)
	}
	copy(palette.Colors[from:to], newColors)
	h.appendUndo(buildChunk(KindSetPaletteColors, h.labelOrKindName(KindSetPaletteColors), w.bytesOf()))
	return nil
}

func invertSetPaletteColors(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	spriteID, err := r.u32()
	if err != nil {
		return wrapFailure(KindSetPaletteColors, "decode sprite id", err)
	}
	frame, err := r.u16()
	if err != nil {
		return wrapFailure(KindSetPaletteColors, "decode frame", err)
	}
	from, err := r.u16()
	if err != nil {
		return wrapFailure(KindSetPaletteColors, "decode from", err)
	}
	to, err := r.u16()
	if err != nil {
		return wrapFailure(KindSetPaletteColors, "decode to", err)
	}
	stored := make([]uint32, int(to)-int(from))
	for i := range stored {
		v, err := r.u32()
		if err != nil {
			return wrapFailure(KindSetPaletteColors, "decode colors", err)
		}
		stored[i] = v
	}
	sprite, rerr := resolve[*raster.Sprite](KindSetPaletteColors, h.objects, objects.ID(spriteID), "sprite")
	if rerr != nil {
		return rerr
	}
	palette, ok := sprite.Palettes[frame]
	if !ok {
		return newFailure(KindSetPaletteColors, "no palette at pinned frame")
	}
	if int(to) > palette.Size() {
		return newFailure(KindSetPaletteColors, "color range out of bounds")
	}

	w := newWriter()
	w.u32(spriteID)
	w.u16(frame)
	w.u16(from)
	w.u16(to)
	for _, c := range palette.Colors[from:to] {
		w.u32(c)
	}
	copy(palette.Colors[from:to], stored)
	dst.Push(buildChunk(KindSetPaletteColors, c.Label(), w.bytesOf()))
	return nil
}

// RecordRemapPalette permutes stock pixel indices in [frameFrom,frameTo]
// through mapping and applies the same permutation to every in-range
// frame's palette entries, then encodes a REMAP_PALETTE chunk.
func (h *History) RecordRemapPalette(sprite *raster.Sprite, frameFrom, frameTo uint16, mapping [256]byte) {
	applyRemap(sprite, frameFrom, frameTo, mapping)
	spriteID := registerSprite(h.objects, sprite)
	w := newWriter()
	w.u32(uint32(spriteID))
	w.u16(frameFrom)
	w.u16(frameTo)
	w.bytes(mapping[:])
	h.appendUndo(buildChunk(KindRemapPalette, h.labelOrKindName(KindRemapPalette), w.bytesOf()))
}

func invertRemapPalette(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	spriteID, err := r.u32()
	if err != nil {
		return wrapFailure(KindRemapPalette, "decode sprite id", err)
	}
	frameFrom, err := r.u16()
	if err != nil {
		return wrapFailure(KindRemapPalette, "decode frame from", err)
	}
	frameTo, err := r.u16()
	if err != nil {
		return wrapFailure(KindRemapPalette, "decode frame to", err)
	}
	mapping, err := r.bytes(256)
	if err != nil {
		return wrapFailure(KindRemapPalette, "decode mapping", err)
	}
	sprite, rerr := resolve[*raster.Sprite](KindRemapPalette, h.objects, objects.ID(spriteID), "sprite")
	if rerr != nil {
		return rerr
	}
	var fwd [256]byte
	copy(fwd[:], mapping)
	var inverse [256]byte
	for i, v := range fwd {
		inverse[v] = byte(i)
	}
	applyRemap(sprite, frameFrom, frameTo, inverse)

	w := newWriter()
	w.u32(spriteID)
	w.u16(frameFrom)
	w.u16(frameTo)
	w.bytes(inverse[:])
	dst.Push(buildChunk(KindRemapPalette, c.Label(), w.bytesOf()))
	return nil
}

func applyRemap(sprite *raster.Sprite, frameFrom, frameTo uint16, mapping [256]byte) {
	sprite.RemapImages(frameFrom, frameTo, mapping)
	for frame, p := range sprite.Palettes {
		if frame < frameFrom || frame > frameTo {
			continue
		}
		remapped := make([]uint32, p.Size())
		for v, c := range p.Colors {
			if v >= len(mapping) {
				continue
			}
			remapped[mapping[v]] = c
		}
		copy(p.Colors, remapped)
	}
}
