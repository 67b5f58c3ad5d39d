package undo

import (
	"github.com/anyproto/sprite-undo/objects"
	"github.com/anyproto/sprite-undo/raster"
)

func init() {
	registerInverter(KindDirty, invertDirty)
}

// DirtyColumn is one contiguous run of touched pixels within a dirty row.
type DirtyColumn struct {
	X, W uint16
	Pix  []byte
}

// DirtyRow is every touched column at one y coordinate.
type DirtyRow struct {
	Y    uint16
	Cols []DirtyColumn
}

// Dirty is a sparse rectangular pixel diff (spec §4.2, §6.2): a bounding
// box plus the touched pixels themselves, which is enough for
// swapImagePixels to carry both directions of the edit in one structure.
type Dirty struct {
	ImgType        raster.ImgType
	X1, Y1, X2, Y2 uint16
	Rows           []DirtyRow
}

// RecordDirty swaps d's pixels into img in place, then encodes d as a
// DIRTY chunk — the caller passes the NEW pixels in d and gets the old
// ones swapped back into d, which is what the chunk then stores,
// mirroring invertDirty's own swap-then-reencode behavior so recording
// and undoing use identical mechanics.
func (h *History) RecordDirty(img *raster.Image, d *Dirty) error {
	id := registerImage(h.objects, img)
	if err := swapImagePixels(img, d); err != nil {
		return newFailure(KindDirty, err.Error())
	}
	h.appendUndo(buildChunk(KindDirty, h.labelOrKindName(KindDirty), encodeDirty(id, d)))
	return nil
}

func encodeDirty(id objects.ID, d *Dirty) []byte {
	w := newWriter()
	w.u32(uint32(id))
	w.u8(uint8(d.ImgType))
	w.u16(d.X1)
	w.u16(d.Y1)
	w.u16(d.X2)
	w.u16(d.Y2)
	w.u16(uint16(len(d.Rows)))
	for _, row := range d.Rows {
		w.u16(row.Y)
		w.u16(uint16(len(row.Cols)))
		for _, col := range row.Cols {
			w.u16(col.X)
			w.u16(col.W)
			w.bytes(col.Pix)
		}
	}
	return w.bytesOf()
}

func decodeDirty(payload []byte) (objects.ID, *Dirty, error) {
	r := newReader(payload)
	id, err := r.u32()
	if err != nil {
		return 0, nil, err
	}
	imgtype, err := r.u8()
	if err != nil {
		return 0, nil, err
	}
	d := &Dirty{ImgType: raster.ImgType(imgtype)}
	if d.X1, err = r.u16(); err != nil {
		return 0, nil, err
	}
	if d.Y1, err = r.u16(); err != nil {
		return 0, nil, err
	}
	if d.X2, err = r.u16(); err != nil {
		return 0, nil, err
	}
	if d.Y2, err = r.u16(); err != nil {
		return 0, nil, err
	}
	rowCount, err := r.u16()
	if err != nil {
		return 0, nil, err
	}
	d.Rows = make([]DirtyRow, rowCount)
	for i := range d.Rows {
		y, err := r.u16()
		if err != nil {
			return 0, nil, err
		}
		colCount, err := r.u16()
		if err != nil {
			return 0, nil, err
		}
		cols := make([]DirtyColumn, colCount)
		for j := range cols {
			x, err := r.u16()
			if err != nil {
				return 0, nil, err
			}
			cw, err := r.u16()
			if err != nil {
				return 0, nil, err
			}
			pix, err := r.bytes(d.ImgType.LineSize(int(cw)))
			if err != nil {
				return 0, nil, err
			}
			cols[j] = DirtyColumn{X: x, W: cw, Pix: pix}
		}
		d.Rows[i] = DirtyRow{Y: y, Cols: cols}
	}
	return objects.ID(id), d, nil
}

// swapImagePixels overwrites img's pixels at every column of d with d's
// pixels, and writes what was in img back into d — so a single Dirty
// carries both directions of the edit (spec §4.2 DIRTY chunk semantics).
func swapImagePixels(img *raster.Image, d *Dirty) error {
	for ri, row := range d.Rows {
		for ci, col := range row.Cols {
			current, err := img.ReadRect(int(col.X), int(row.Y), int(col.W), 1)
			if err != nil {
				return err
			}
			if _, err := img.WriteRect(int(col.X), int(row.Y), int(col.W), 1, col.Pix); err != nil {
				return err
			}
			d.Rows[ri].Cols[ci].Pix = current
		}
	}
	return nil
}

func invertDirty(h *History, dst *Stream, c Chunk) error {
	id, d, err := decodeDirty(c.Payload())
	if err != nil {
		return wrapFailure(KindDirty, "decode dirty payload", err)
	}
	img, rerr := resolve[*raster.Image](KindDirty, h.objects, id, "image")
	if rerr != nil {
		return rerr
	}
	if img.ImgType != d.ImgType {
		// As with FLIP, DIRTY has no named exception (spec §7 point 2 scopes
		// the raise-on-mismatch case to IMAGE alone): tolerate it the same
		// as a deleted collaborator.
		return skip(KindDirty, "imgtype mismatch between chunk and live image")
	}
	if err := swapImagePixels(img, d); err != nil {
		return newFailure(KindDirty, err.Error())
	}
	dst.Push(buildChunk(KindDirty, c.Label(), encodeDirty(id, d)))
	return nil
}
