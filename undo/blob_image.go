package undo

import (
	"github.com/anyproto/sprite-undo/objects"
	"github.com/anyproto/sprite-undo/raster"
)

// encodeImageBlob renders img as the raw Image encoding of spec §6.2:
// u32 id; u8 imgtype; u16 w; u16 h; u32 mask_color; pixel bytes. id is
// captured so a later decode can Insert the image back under the same
// handle it had before it was removed from the container.
func encodeImageBlob(objs *objects.Container, img *raster.Image) []byte {
	id := registerImage(objs, img)
	w := newWriter()
	w.u32(uint32(id))
	w.u8(uint8(img.ImgType))
	w.u16(img.W)
	w.u16(img.H)
	w.u32(img.MaskColor)
	w.bytes(img.Pix)
	return w.bytesOf()
}

// decodeImageBlob parses an Image blob and returns its original id plus
// a freshly allocated *raster.Image (not yet reattached to the
// container — callers reattach it with objects.Container.Insert when the
// inverse operation recreates it).
func decodeImageBlob(payload *reader) (objects.ID, *raster.Image, error) {
	id, err := payload.u32()
	if err != nil {
		return 0, nil, err
	}
	imgtype, err := payload.u8()
	if err != nil {
		return 0, nil, err
	}
	w, err := payload.u16()
	if err != nil {
		return 0, nil, err
	}
	h, err := payload.u16()
	if err != nil {
		return 0, nil, err
	}
	maskColor, err := payload.u32()
	if err != nil {
		return 0, nil, err
	}
	t := raster.ImgType(imgtype)
	pix, err := payload.bytes(t.LineSize(int(w)) * int(h))
	if err != nil {
		return 0, nil, err
	}
	pixCopy := make([]byte, len(pix))
	copy(pixCopy, pix)
	return objects.ID(id), &raster.Image{ID: objects.ID(id), ImgType: t, W: w, H: h, MaskColor: maskColor, Pix: pixCopy}, nil
}

func imageBlobLen(t raster.ImgType, w, h uint16) int {
	return 4 + 1 + 2 + 2 + 4 + t.LineSize(int(w))*int(h)
}
