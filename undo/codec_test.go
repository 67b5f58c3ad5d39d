package undo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/sprite-undo/raster"
	"github.com/anyproto/sprite-undo/undo"
)

func TestCodec_AddRemoveCelRoundTrip(t *testing.T) {
	fx := newFixture(t, 0)
	layer := raster.NewImageLayer(fx.doc.Sprite.ID, "layer")
	require.NoError(t, fx.doc.Root.InsertChildAfter(0, layer))

	cel := &raster.Cel{Frame: 0, ImageIdx: 0}
	require.NoError(t, fx.h.RecordAddCel(layer, cel))
	assert.Len(t, layer.Cels, 1)

	require.NoError(t, fx.h.DoUndo())
	assert.Len(t, layer.Cels, 0)

	require.NoError(t, fx.h.DoRedo())
	assert.Len(t, layer.Cels, 1)
	assert.Equal(t, uint16(0), layer.Cels[0].Frame)
}

func TestCodec_RemoveCelRoundTrip(t *testing.T) {
	fx := newFixture(t, 0)
	layer := raster.NewImageLayer(fx.doc.Sprite.ID, "layer")
	require.NoError(t, fx.doc.Root.InsertChildAfter(0, layer))
	cel := &raster.Cel{Frame: 2, ImageIdx: 3}
	require.NoError(t, fx.h.RecordAddCel(layer, cel))

	require.NoError(t, fx.h.RecordRemoveCel(layer, cel.ID))
	assert.Len(t, layer.Cels, 0)

	require.NoError(t, fx.h.DoUndo())
	require.Len(t, layer.Cels, 1)
	assert.Equal(t, uint16(2), layer.Cels[0].Frame)

	require.NoError(t, fx.h.DoRedo())
	assert.Len(t, layer.Cels, 0)
}

func TestCodec_AddRemoveLayerRoundTrip(t *testing.T) {
	fx := newFixture(t, 0)
	child := raster.NewImageLayer(fx.doc.Sprite.ID, "child")

	require.NoError(t, fx.h.RecordAddLayer(fx.doc.Root, 0, child))
	assert.Equal(t, 1, len(fx.doc.Root.Children))

	require.NoError(t, fx.h.RecordRemoveLayer(fx.doc.Root, child.ID))
	assert.Equal(t, 0, len(fx.doc.Root.Children))

	require.NoError(t, fx.h.DoUndo())
	require.Equal(t, 1, len(fx.doc.Root.Children))
	assert.Equal(t, "child", fx.doc.Root.Children[0].Name)

	require.NoError(t, fx.h.DoUndo())
	assert.Equal(t, 0, len(fx.doc.Root.Children))

	require.NoError(t, fx.h.DoRedo())
	require.Equal(t, 1, len(fx.doc.Root.Children))

	require.NoError(t, fx.h.DoRedo())
	assert.Equal(t, 0, len(fx.doc.Root.Children))
}

func TestCodec_MoveLayerRoundTrip(t *testing.T) {
	fx := newFixture(t, 0)
	a := raster.NewImageLayer(fx.doc.Sprite.ID, "a")
	b := raster.NewImageLayer(fx.doc.Sprite.ID, "b")
	a.ID = fx.objs.Add(a)
	b.ID = fx.objs.Add(b)
	require.NoError(t, fx.doc.Root.InsertChildAfter(0, a))
	require.NoError(t, fx.doc.Root.InsertChildAfter(a.ID, b))

	require.NoError(t, fx.h.RecordMoveLayer(fx.doc.Root, b.ID, 0))
	assert.Equal(t, "b", fx.doc.Root.Children[0].Name)
	assert.Equal(t, "a", fx.doc.Root.Children[1].Name)

	require.NoError(t, fx.h.DoUndo())
	assert.Equal(t, "a", fx.doc.Root.Children[0].Name)
	assert.Equal(t, "b", fx.doc.Root.Children[1].Name)

	require.NoError(t, fx.h.DoRedo())
	assert.Equal(t, "b", fx.doc.Root.Children[0].Name)
	assert.Equal(t, "a", fx.doc.Root.Children[1].Name)
}

func TestCodec_SetLayerNameAndCurrentLayerRoundTrip(t *testing.T) {
	fx := newFixture(t, 0)
	layer := raster.NewImageLayer(fx.doc.Sprite.ID, "before")
	require.NoError(t, fx.doc.Root.InsertChildAfter(0, layer))

	fx.h.RecordSetLayerName(layer, "after")
	assert.Equal(t, "after", layer.Name)
	require.NoError(t, fx.h.DoUndo())
	assert.Equal(t, "before", layer.Name)
	require.NoError(t, fx.h.DoRedo())
	assert.Equal(t, "after", layer.Name)

	fx.h.RecordSetLayer(fx.doc.Sprite, layer.ID)
	assert.Equal(t, layer.ID, fx.doc.Sprite.CurrentLayer)
	require.NoError(t, fx.h.DoUndo())
	assert.NotEqual(t, layer.ID, fx.doc.Sprite.CurrentLayer)
}

func TestCodec_PaletteAddSetColorsRemoveRoundTrip(t *testing.T) {
	fx := newFixture(t, 0)
	fx.doc.Sprite.ImgType = raster.INDEXED
	palette := raster.NewPalette(0, 4)
	palette.Colors = []uint32{0x000000, 0x111111, 0x222222, 0x333333}

	fx.h.RecordAddPalette(fx.doc.Sprite, palette)
	assert.Same(t, palette, fx.doc.Sprite.Palettes[0])

	require.NoError(t, fx.h.RecordSetPaletteColors(fx.doc.Sprite, 0, 1, 3, []uint32{0xaaaaaa, 0xbbbbbb}))
	assert.Equal(t, uint32(0xaaaaaa), palette.Colors[1])
	assert.Equal(t, uint32(0xbbbbbb), palette.Colors[2])

	require.NoError(t, fx.h.DoUndo())
	assert.Equal(t, uint32(0x111111), palette.Colors[1])
	assert.Equal(t, uint32(0x222222), palette.Colors[2])

	require.NoError(t, fx.h.DoRedo())
	assert.Equal(t, uint32(0xaaaaaa), palette.Colors[1])

	require.NoError(t, fx.h.DoUndo()) // back out SetPaletteColors again before removing

	require.NoError(t, fx.h.RecordRemovePalette(fx.doc.Sprite, 0))
	assert.Nil(t, fx.doc.Sprite.Palettes[0])
	require.NoError(t, fx.h.DoUndo())
	require.NotNil(t, fx.doc.Sprite.Palettes[0])
	assert.Equal(t, uint32(0x111111), fx.doc.Sprite.Palettes[0].Colors[1])
}

func TestCodec_RemapPaletteIsSelfInverse(t *testing.T) {
	fx := newFixture(t, 0)
	fx.doc.Sprite.ImgType = raster.INDEXED
	img := raster.NewImage(raster.INDEXED, 2, 1)
	img.Pix = []byte{1, 2}
	fx.doc.Sprite.Stock.Images = append(fx.doc.Sprite.Stock.Images, img)
	layer := raster.NewImageLayer(fx.doc.Sprite.ID, "l")
	require.NoError(t, fx.doc.Root.InsertChildAfter(0, layer))
	require.NoError(t, layer.AddCel(&raster.Cel{Frame: 0, ImageIdx: 0}))

	var mapping [256]byte
	for i := range mapping {
		mapping[i] = byte(i)
	}
	mapping[1], mapping[9] = 9, 1
	mapping[2], mapping[8] = 8, 2

	fx.h.RecordRemapPalette(fx.doc.Sprite, 0, 0, mapping)
	assert.Equal(t, []byte{9, 8}, img.Pix)

	require.NoError(t, fx.h.DoUndo())
	assert.Equal(t, []byte{1, 2}, img.Pix)

	require.NoError(t, fx.h.DoRedo())
	assert.Equal(t, []byte{9, 8}, img.Pix)
}

func TestCodec_DocLevelSettersRoundTrip(t *testing.T) {
	fx := newFixture(t, 0)
	fx.doc.Mask = raster.NewMask(0, 0, 8, 8)

	newMask := raster.NewMask(1, 1, 2, 2)
	fx.h.RecordSetMask(fx.doc, newMask)
	assert.Same(t, newMask, fx.doc.Mask)
	require.NoError(t, fx.h.DoUndo())
	assert.Equal(t, uint16(8), fx.doc.Mask.W)

	fx.h.RecordSetImgType(fx.doc.Sprite, raster.INDEXED)
	assert.Equal(t, raster.INDEXED, fx.doc.Sprite.ImgType)
	require.NoError(t, fx.h.DoUndo())
	assert.Equal(t, raster.RGB, fx.doc.Sprite.ImgType)

	fx.h.RecordSetSize(fx.doc.Sprite, 16, 16)
	assert.Equal(t, uint16(16), fx.doc.Sprite.W)
	require.NoError(t, fx.h.DoUndo())
	assert.Equal(t, uint16(8), fx.doc.Sprite.W)

	fx.h.RecordSetFrame(fx.doc.Sprite, 3)
	require.NoError(t, fx.h.DoUndo())
	assert.Equal(t, uint16(0), fx.doc.Sprite.CurrentFrame)

	fx.h.RecordSetFrames(fx.doc.Sprite, 5)
	assert.Equal(t, uint16(5), fx.doc.Sprite.TotalFrames)
	require.NoError(t, fx.h.DoUndo())
	assert.Equal(t, uint16(1), fx.doc.Sprite.TotalFrames)

	require.NoError(t, fx.h.RecordSetFrlen(fx.doc.Sprite, 0, 200))
	assert.Equal(t, raster.FrameDuration(200), fx.doc.Sprite.FrameDur[0])
	require.NoError(t, fx.h.DoUndo())
	assert.Equal(t, raster.FrameDuration(100), fx.doc.Sprite.FrameDur[0])
}

func TestCodec_ReplaceImageRoundTrip(t *testing.T) {
	fx := newFixture(t, 0)
	stockID := fx.objs.Add(fx.doc.Stock)
	oldImg := raster.NewImage(raster.RGB, 4, 4)
	require.NoError(t, fx.h.RecordAddImage(fx.doc.Stock, stockID, 0, oldImg))

	newImg := raster.NewImage(raster.RGB, 4, 4)
	require.NoError(t, fx.h.RecordReplaceImage(fx.doc.Stock, stockID, 0, newImg))
	assert.Same(t, newImg, fx.doc.Stock.Get(0))

	// Undo and redo rebuild the image from the chunk's blob, so the
	// restored image is a fresh object carrying the original's id.
	require.NoError(t, fx.h.DoUndo())
	require.NotNil(t, fx.doc.Stock.Get(0))
	assert.Equal(t, oldImg.ID, fx.doc.Stock.Get(0).ID)

	require.NoError(t, fx.h.DoRedo())
	require.NotNil(t, fx.doc.Stock.Get(0))
	assert.Equal(t, newImg.ID, fx.doc.Stock.Get(0).ID)
}

func TestCodec_FlipRoundTrip(t *testing.T) {
	fx := newFixture(t, 0)
	img := raster.NewImage(raster.RGB, 4, 4)
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}
	before := append([]byte(nil), img.Pix...)

	require.NoError(t, img.FlipRect(0, 0, 3, 3, raster.FlipHorizontal))
	require.NoError(t, fx.h.RecordFlip(img, 0, 0, 3, 3, raster.FlipHorizontal))
	assert.NotEqual(t, before, img.Pix)

	require.NoError(t, fx.h.DoUndo())
	assert.Equal(t, before, img.Pix)
}

func TestCodec_DirtyRoundTrip(t *testing.T) {
	fx := newFixture(t, 0)
	img := raster.NewImage(raster.RGB, 4, 4)
	before, err := img.ReadRect(0, 0, 2, 1)
	require.NoError(t, err)

	newPix := make([]byte, len(before))
	for i := range newPix {
		newPix[i] = 0xff
	}
	d := &undo.Dirty{
		ImgType: raster.RGB,
		X1:      0, Y1: 0, X2: 1, Y2: 0,
		Rows: []undo.DirtyRow{{Y: 0, Cols: []undo.DirtyColumn{{X: 0, W: 2, Pix: newPix}}}},
	}

	require.NoError(t, fx.h.RecordDirty(img, d))
	after, err := img.ReadRect(0, 0, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, newPix, after)

	require.NoError(t, fx.h.DoUndo())
	restored, err := img.ReadRect(0, 0, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, before, restored)

	require.NoError(t, fx.h.DoRedo())
	after2, err := img.ReadRect(0, 0, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, newPix, after2)
}
