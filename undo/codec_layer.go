package undo

import (
	"github.com/anyproto/sprite-undo/objects"
	"github.com/anyproto/sprite-undo/raster"
)

func init() {
	registerInverter(KindSetLayerName, invertSetLayerName)
	registerInverter(KindAddLayer, invertAddLayer)
	registerInverter(KindRemoveLayer, invertRemoveLayer)
	registerInverter(KindMoveLayer, invertMoveLayer)
	registerInverter(KindSetLayer, invertSetLayer)
}

// RecordSetLayerName encodes the layer's current name, then renames it to
// newName. Symmetric: invertSetLayerName performs the identical
// swap-and-re-push in the opposite direction.
func (h *History) RecordSetLayerName(layer *raster.Layer, newName string) {
	id := registerLayer(h.objects, layer)
	old := layer.Name
	layer.Name = newName
	w := newWriter()
	w.u32(uint32(id))
	w.text(old)
	h.appendUndo(buildChunk(KindSetLayerName, h.labelOrKindName(KindSetLayerName), w.bytesOf()))
}

func invertSetLayerName(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	id, err := r.u32()
	if err != nil {
		return wrapFailure(KindSetLayerName, "decode layer id", err)
	}
	stored, err := r.text()
	if err != nil {
		return wrapFailure(KindSetLayerName, "decode name", err)
	}
	layer, rerr := resolve[*raster.Layer](KindSetLayerName, h.objects, objects.ID(id), "layer")
	if rerr != nil {
		return rerr
	}
	current := layer.Name
	layer.Name = stored

	w := newWriter()
	w.u32(id)
	w.text(current)
	dst.Push(buildChunk(KindSetLayerName, c.Label(), w.bytesOf()))
	return nil
}

// RecordAddLayer inserts layer into folder right after the sibling with id
// afterID, and encodes an ADD_LAYER chunk.
func (h *History) RecordAddLayer(folder *raster.Layer, afterID objects.ID, layer *raster.Layer) error {
	if err := folder.InsertChildAfter(afterID, layer); err != nil {
		return newFailure(KindAddLayer, err.Error())
	}
	folderID := registerLayer(h.objects, folder)
	layerID := registerLayer(h.objects, layer)
	w := newWriter()
	w.u32(uint32(folderID))
	w.u32(uint32(layerID))
	h.appendUndo(buildChunk(KindAddLayer, h.labelOrKindName(KindAddLayer), w.bytesOf()))
	return nil
}

func invertAddLayer(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	folderID, err := r.u32()
	if err != nil {
		return wrapFailure(KindAddLayer, "decode folder id", err)
	}
	layerID, err := r.u32()
	if err != nil {
		return wrapFailure(KindAddLayer, "decode layer id", err)
	}
	folder, rerr := resolve[*raster.Layer](KindAddLayer, h.objects, objects.ID(folderID), "folder")
	if rerr != nil {
		return rerr
	}
	layer, rerr := resolve[*raster.Layer](KindAddLayer, h.objects, objects.ID(layerID), "layer")
	if rerr != nil {
		return rerr
	}
	removed, afterID, err := folder.RemoveChild(layer.ID)
	if err != nil {
		return newFailure(KindAddLayer, err.Error())
	}

	w := newWriter()
	w.u32(folderID)
	w.u32(uint32(afterID))
	w.bytes(encodeLayerBlob(h.objects, layerStock(h, folder), removed))
	forgetLayerSubtree(h.objects, removed)
	dst.Push(buildChunk(KindRemoveLayer, c.Label(), w.bytesOf()))
	return nil
}

// RecordRemoveLayer detaches layer from folder and encodes a REMOVE_LAYER
// chunk carrying its whole subtree, so the inverse can rebuild it exactly.
func (h *History) RecordRemoveLayer(folder *raster.Layer, layerID objects.ID) error {
	removed, afterID, err := folder.RemoveChild(layerID)
	if err != nil {
		return newFailure(KindRemoveLayer, err.Error())
	}
	folderObjID := registerLayer(h.objects, folder)
	w := newWriter()
	w.u32(uint32(folderObjID))
	w.u32(uint32(afterID))
	w.bytes(encodeLayerBlob(h.objects, layerStock(h, folder), removed))
	forgetLayerSubtree(h.objects, removed)
	h.appendUndo(buildChunk(KindRemoveLayer, h.labelOrKindName(KindRemoveLayer), w.bytesOf()))
	return nil
}

func invertRemoveLayer(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	folderID, err := r.u32()
	if err != nil {
		return wrapFailure(KindRemoveLayer, "decode folder id", err)
	}
	afterID, err := r.u32()
	if err != nil {
		return wrapFailure(KindRemoveLayer, "decode after id", err)
	}
	folder, rerr := resolve[*raster.Layer](KindRemoveLayer, h.objects, objects.ID(folderID), "folder")
	if rerr != nil {
		return rerr
	}
	layer, err := decodeLayerBlob(h.objects, layerStock(h, folder), r)
	if err != nil {
		return wrapFailure(KindRemoveLayer, "decode layer blob", err)
	}
	if err := folder.InsertChildAfter(objects.ID(afterID), layer); err != nil {
		return newFailure(KindRemoveLayer, err.Error())
	}

	w := newWriter()
	w.u32(folderID)
	w.u32(uint32(layer.ID))
	dst.Push(buildChunk(KindAddLayer, c.Label(), w.bytesOf()))
	return nil
}

// RecordMoveLayer repositions layer within folder to right after afterID
// and encodes a self-inverse MOVE_LAYER chunk carrying its previous
// position.
func (h *History) RecordMoveLayer(folder *raster.Layer, layerID, afterID objects.ID) error {
	layer, prevAfter, err := folder.RemoveChild(layerID)
	if err != nil {
		return newFailure(KindMoveLayer, err.Error())
	}
	if err := folder.InsertChildAfter(afterID, layer); err != nil {
		folder.InsertChildAfter(prevAfter, layer)
		return newFailure(KindMoveLayer, err.Error())
	}
	folderID := registerLayer(h.objects, folder)
	layerObjID := registerLayer(h.objects, layer)
	w := newWriter()
	w.u32(uint32(folderID))
	w.u32(uint32(layerObjID))
	w.u32(uint32(prevAfter))
	h.appendUndo(buildChunk(KindMoveLayer, h.labelOrKindName(KindMoveLayer), w.bytesOf()))
	return nil
}

func invertMoveLayer(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	folderID, err := r.u32()
	if err != nil {
		return wrapFailure(KindMoveLayer, "decode folder id", err)
	}
	layerID, err := r.u32()
	if err != nil {
		return wrapFailure(KindMoveLayer, "decode layer id", err)
	}
	storedAfter, err := r.u32()
	if err != nil {
		return wrapFailure(KindMoveLayer, "decode after id", err)
	}
	folder, rerr := resolve[*raster.Layer](KindMoveLayer, h.objects, objects.ID(folderID), "folder")
	if rerr != nil {
		return rerr
	}
	layer, rerr := resolve[*raster.Layer](KindMoveLayer, h.objects, objects.ID(layerID), "layer")
	if rerr != nil {
		return rerr
	}
	_, currentAfter, err := folder.RemoveChild(layer.ID)
	if err != nil {
		return newFailure(KindMoveLayer, err.Error())
	}
	if err := folder.InsertChildAfter(objects.ID(storedAfter), layer); err != nil {
		return newFailure(KindMoveLayer, err.Error())
	}

	w := newWriter()
	w.u32(folderID)
	w.u32(layerID)
	w.u32(uint32(currentAfter))
	dst.Push(buildChunk(KindMoveLayer, c.Label(), w.bytesOf()))
	return nil
}

// RecordSetLayer encodes the sprite's current-layer pointer, then updates
// it to layerID. Symmetric.
func (h *History) RecordSetLayer(sprite *raster.Sprite, layerID objects.ID) {
	spriteID := registerSprite(h.objects, sprite)
	old := sprite.CurrentLayer
	sprite.CurrentLayer = layerID
	w := newWriter()
	w.u32(uint32(spriteID))
	w.u32(uint32(old))
	h.appendUndo(buildChunk(KindSetLayer, h.labelOrKindName(KindSetLayer), w.bytesOf()))
}

func invertSetLayer(h *History, dst *Stream, c Chunk) error {
	r := newReader(c.Payload())
	spriteID, err := r.u32()
	if err != nil {
		return wrapFailure(KindSetLayer, "decode sprite id", err)
	}
	stored, err := r.u32()
	if err != nil {
		return wrapFailure(KindSetLayer, "decode layer id", err)
	}
	sprite, rerr := resolve[*raster.Sprite](KindSetLayer, h.objects, objects.ID(spriteID), "sprite")
	if rerr != nil {
		return rerr
	}
	current := sprite.CurrentLayer
	sprite.CurrentLayer = objects.ID(stored)

	w := newWriter()
	w.u32(spriteID)
	w.u32(uint32(current))
	dst.Push(buildChunk(KindSetLayer, c.Label(), w.bytesOf()))
	return nil
}

// layerStock finds the stock belonging to the sprite that owns folder, by
// walking up to the root and resolving its SpriteID.
func layerStock(h *History, l *raster.Layer) *raster.Stock {
	for l.Parent != nil {
		l = l.Parent
	}
	if sprite, ok := objects.Get[*raster.Sprite](h.objects, l.SpriteID); ok {
		return sprite.Stock
	}
	return raster.NewStock()
}

// forgetLayerSubtree removes the ids of the removed subtree's layers and
// cels from the container, since encodeLayerBlob has already captured
// everything needed to rebuild them. Image ids are left registered: the
// images stay in the shared stock.
func forgetLayerSubtree(objs *objects.Container, l *raster.Layer) {
	objs.Remove(l.ID)
	switch l.Type {
	case raster.LayerImage:
		for _, cel := range l.Cels {
			objs.Remove(cel.ID)
		}
	case raster.LayerFolder:
		for _, c := range l.Children {
			forgetLayerSubtree(objs, c)
		}
	}
}
