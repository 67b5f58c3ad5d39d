package undo

import (
	"github.com/anyproto/sprite-undo/objects"
	"github.com/anyproto/sprite-undo/raster"
)

// encodeLayerBlob renders the whole subtree rooted at l per spec §6.2's
// Layer format. Each cel additionally carries a "hasImage" flag and,
// when set, a full Image blob — a simplification of the source's format
// (see DESIGN.md): every cel snapshots its current stock image
// unconditionally, and decodeLayerBlob only reinstates that image if the
// stock slot at the cel's index is empty when the subtree is restored,
// leaving shared images that are still present untouched.
func encodeLayerBlob(objs *objects.Container, stock *raster.Stock, l *raster.Layer) []byte {
	w := newWriter()
	w.u32(uint32(registerLayer(objs, l)))
	w.text(l.Name)
	w.u8(l.Flags)
	w.u16(uint16(l.Type))
	w.u32(uint32(l.SpriteID))
	switch l.Type {
	case raster.LayerImage:
		w.u16(uint16(len(l.Cels)))
		for _, cel := range l.Cels {
			w.bytes(encodeCelBlob(cel))
			img := stock.Get(int(cel.ImageIdx))
			if img == nil {
				w.u8(0)
				continue
			}
			w.u8(1)
			w.bytes(encodeImageBlob(objs, img))
		}
	case raster.LayerFolder:
		w.u16(uint16(len(l.Children)))
		for _, c := range l.Children {
			w.bytes(encodeLayerBlob(objs, stock, c))
		}
	}
	return w.bytesOf()
}

// decodeLayerBlob parses a Layer subtree blob, reinstating each layer's
// ObjectId via objs.Insert and, for Image-variant layers, filling any
// empty stock slot a cel's snapshot points to.
func decodeLayerBlob(objs *objects.Container, stock *raster.Stock, r *reader) (*raster.Layer, error) {
	id, err := r.u32()
	if err != nil {
		return nil, err
	}
	name, err := r.text()
	if err != nil {
		return nil, err
	}
	flags, err := r.u8()
	if err != nil {
		return nil, err
	}
	typ, err := r.u16()
	if err != nil {
		return nil, err
	}
	spriteID, err := r.u32()
	if err != nil {
		return nil, err
	}
	l := &raster.Layer{
		ID:       objects.ID(id),
		Name:     name,
		Flags:    flags,
		Type:     raster.LayerType(typ),
		SpriteID: objects.ID(spriteID),
	}
	switch l.Type {
	case raster.LayerImage:
		celCount, err := r.u16()
		if err != nil {
			return nil, err
		}
		l.Cels = make([]*raster.Cel, celCount)
		for i := range l.Cels {
			cel, err := decodeCelBlob(r)
			if err != nil {
				return nil, err
			}
			hasImage, err := r.u8()
			if err != nil {
				return nil, err
			}
			if hasImage == 1 {
				imgID, img, err := decodeImageBlob(r)
				if err != nil {
					return nil, err
				}
				stock.EnsureAt(int(cel.ImageIdx), img)
				if stock.Get(int(cel.ImageIdx)) == img {
					objs.Insert(imgID, img)
				}
			}
			objs.Insert(cel.ID, cel)
			l.Cels[i] = cel
		}
	case raster.LayerFolder:
		childCount, err := r.u16()
		if err != nil {
			return nil, err
		}
		l.Children = make([]*raster.Layer, childCount)
		for i := range l.Children {
			child, err := decodeLayerBlob(objs, stock, r)
			if err != nil {
				return nil, err
			}
			child.Parent = l
			l.Children[i] = child
		}
	}
	objs.Insert(l.ID, l)
	return l, nil
}
