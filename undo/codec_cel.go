package undo

import (
	"github.com/anyproto/sprite-undo/objects"
	"github.com/anyproto/sprite-undo/raster"
)

func init() {
	registerInverter(KindAddCel, invertAddCel)
	registerInverter(KindRemoveCel, invertRemoveCel)
}

// RecordAddCel adds cel to layer and encodes an ADD_CEL chunk.
func (h *History) RecordAddCel(layer *raster.Layer, cel *raster.Cel) error {
	if err := layer.AddCel(cel); err != nil {
		return newFailure(KindAddCel, err.Error())
	}
	layerID := registerLayer(h.objects, layer)
	celID := registerCel(h.objects, cel)
	cel.ID = celID
	w := newWriter()
	w.u32(uint32(layerID))
	w.u32(uint32(celID))
	h.appendUndo(buildChunk(KindAddCel, h.labelOrKindName(KindAddCel), w.bytesOf()))
	return nil
}

func invertAddCel(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	layerID, err := r.u32()
	if err != nil {
		return wrapFailure(KindAddCel, "decode layer id", err)
	}
	celID, err := r.u32()
	if err != nil {
		return wrapFailure(KindAddCel, "decode cel id", err)
	}
	layer, rerr := resolve[*raster.Layer](KindAddCel, h.objects, objects.ID(layerID), "layer")
	if rerr != nil {
		return rerr
	}
	cel, rerr := resolve[*raster.Cel](KindAddCel, h.objects, objects.ID(celID), "cel")
	if rerr != nil {
		return rerr
	}
	if _, err := layer.RemoveCel(cel.ID); err != nil {
		return newFailure(KindAddCel, err.Error())
	}
	h.objects.Remove(objects.ID(celID))

	w := newWriter()
	w.u32(layerID)
	w.bytes(encodeCelBlob(cel))
	dst.Push(buildChunk(KindRemoveCel, c.Label(), w.bytesOf()))
	return nil
}

// RecordRemoveCel removes cel from layer and encodes a REMOVE_CEL chunk
// carrying its contents.
func (h *History) RecordRemoveCel(layer *raster.Layer, celID objects.ID) error {
	cel, err := layer.RemoveCel(celID)
	if err != nil {
		return newFailure(KindRemoveCel, err.Error())
	}
	layerObjID := registerLayer(h.objects, layer)
	h.objects.Remove(celID)
	w := newWriter()
	w.u32(uint32(layerObjID))
	w.bytes(encodeCelBlob(cel))
	h.appendUndo(buildChunk(KindRemoveCel, h.labelOrKindName(KindRemoveCel), w.bytesOf()))
	return nil
}

func invertRemoveCel(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	layerID, err := r.u32()
	if err != nil {
		return wrapFailure(KindRemoveCel, "decode layer id", err)
	}
	cel, err := decodeCelBlob(r)
	if err != nil {
		return wrapFailure(KindRemoveCel, "decode cel blob", err)
	}
	layer, rerr := resolve[*raster.Layer](KindRemoveCel, h.objects, objects.ID(layerID), "layer")
	if rerr != nil {
		return rerr
	}
	if err := layer.AddCel(cel); err != nil {
		return newFailure(KindRemoveCel, err.Error())
	}
	h.objects.Insert(cel.ID, cel)

	w := newWriter()
	w.u32(layerID)
	w.u32(uint32(cel.ID))
	dst.Push(buildChunk(KindAddCel, c.Label(), w.bytesOf()))
	return nil
}
