package undo

import (
	"github.com/anyproto/sprite-undo/objects"
	"github.com/anyproto/sprite-undo/raster"
)

func init() {
	registerInverter(KindAddImage, invertAddImage)
	registerInverter(KindRemoveImage, invertRemoveImage)
	registerInverter(KindReplaceImage, invertReplaceImage)
}

// RecordAddImage inserts img into stock at index and encodes an ADD_IMAGE
// chunk. The encoder performs the live mutation itself — the same
// convention the other structural codecs (stock, cel, layer) follow; the
// pixel-content codecs (DATA, IMAGE, FLIP) leave the write to the caller.
func (h *History) RecordAddImage(stock *raster.Stock, stockID objects.ID, index int, img *raster.Image) error {
	if err := stock.AddAt(index, img); err != nil {
		return newFailure(KindAddImage, err.Error())
	}
	registerImage(h.objects, img)
	w := newWriter()
	w.u32(uint32(stockID))
	w.u16(uint16(index))
	h.appendUndo(buildChunk(KindAddImage, h.labelOrKindName(KindAddImage), w.bytesOf()))
	return nil
}

func invertAddImage(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	stockID, err := r.u32()
	if err != nil {
		return wrapFailure(KindAddImage, "decode stock id", err)
	}
	index, err := r.u16()
	if err != nil {
		return wrapFailure(KindAddImage, "decode index", err)
	}
	stock, rerr := resolve[*raster.Stock](KindAddImage, h.objects, objects.ID(stockID), "stock")
	if rerr != nil {
		return rerr
	}
	img, err := stock.RemoveAt(int(index))
	if err != nil {
		return newFailure(KindAddImage, err.Error())
	}

	w := newWriter()
	w.u32(stockID)
	w.u16(index)
	w.bytes(encodeImageBlob(h.objects, img))
	if imgID, ok := findID(h.objects, img); ok {
		h.objects.Remove(imgID)
	}
	dst.Push(buildChunk(KindRemoveImage, c.Label(), w.bytesOf()))
	return nil
}

// RecordRemoveImage removes the image at index from stock and encodes a
// REMOVE_IMAGE chunk carrying its full contents.
func (h *History) RecordRemoveImage(stock *raster.Stock, stockID objects.ID, index int) error {
	img, err := stock.RemoveAt(index)
	if err != nil {
		return newFailure(KindRemoveImage, err.Error())
	}
	w := newWriter()
	w.u32(uint32(stockID))
	w.u16(uint16(index))
	w.bytes(encodeImageBlob(h.objects, img))
	if imgID, ok := findID(h.objects, img); ok {
		h.objects.Remove(imgID)
	}
	h.appendUndo(buildChunk(KindRemoveImage, h.labelOrKindName(KindRemoveImage), w.bytesOf()))
	return nil
}

func invertRemoveImage(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	stockID, err := r.u32()
	if err != nil {
		return wrapFailure(KindRemoveImage, "decode stock id", err)
	}
	index, err := r.u16()
	if err != nil {
		return wrapFailure(KindRemoveImage, "decode index", err)
	}
	imgID, img, err := decodeImageBlob(r)
	if err != nil {
		return wrapFailure(KindRemoveImage, "decode image blob", err)
	}
	stock, rerr := resolve[*raster.Stock](KindRemoveImage, h.objects, objects.ID(stockID), "stock")
	if rerr != nil {
		return rerr
	}
	if err := stock.AddAt(int(index), img); err != nil {
		return newFailure(KindRemoveImage, err.Error())
	}
	h.objects.Insert(imgID, img)

	w := newWriter()
	w.u32(stockID)
	w.u16(index)
	dst.Push(buildChunk(KindAddImage, c.Label(), w.bytesOf()))
	return nil
}

// RecordReplaceImage swaps the image at index for newImg and encodes a
// REPLACE_IMAGE chunk carrying the replaced image's contents (the
// symmetric "encode current, then overwrite" contract).
func (h *History) RecordReplaceImage(stock *raster.Stock, stockID objects.ID, index int, newImg *raster.Image) error {
	old, err := stock.ReplaceAt(index, newImg)
	if err != nil {
		return newFailure(KindReplaceImage, err.Error())
	}
	w := newWriter()
	w.u32(uint32(stockID))
	w.u16(uint16(index))
	w.bytes(encodeImageBlob(h.objects, old))
	if oldID, ok := findID(h.objects, old); ok {
		h.objects.Remove(oldID)
	}
	registerImage(h.objects, newImg)
	h.appendUndo(buildChunk(KindReplaceImage, h.labelOrKindName(KindReplaceImage), w.bytesOf()))
	return nil
}

func invertReplaceImage(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	stockID, err := r.u32()
	if err != nil {
		return wrapFailure(KindReplaceImage, "decode stock id", err)
	}
	index, err := r.u16()
	if err != nil {
		return wrapFailure(KindReplaceImage, "decode index", err)
	}
	restoreID, restoreImg, err := decodeImageBlob(r)
	if err != nil {
		return wrapFailure(KindReplaceImage, "decode image blob", err)
	}
	stock, rerr := resolve[*raster.Stock](KindReplaceImage, h.objects, objects.ID(stockID), "stock")
	if rerr != nil {
		return rerr
	}
	current, serr := stock.ReplaceAt(int(index), restoreImg)
	if serr != nil {
		return newFailure(KindReplaceImage, serr.Error())
	}

	w := newWriter()
	w.u32(stockID)
	w.u16(index)
	w.bytes(encodeImageBlob(h.objects, current))
	if curID, ok := findID(h.objects, current); ok {
		h.objects.Remove(curID)
	}
	h.objects.Insert(restoreID, restoreImg)
	dst.Push(buildChunk(KindReplaceImage, c.Label(), w.bytesOf()))
	return nil
}

// findID returns obj's id through objs.Add: the existing id if obj is
// registered, otherwise a newly allocated one (obj is registered as a
// side effect). ok is false only for a nil obj.
func findID(objs *objects.Container, obj *raster.Image) (objects.ID, bool) {
	id := objs.Add(obj)
	return id, id != 0
}
