package raster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/sprite-undo/raster"
)

func TestDocument_ValidateCleanTree(t *testing.T) {
	doc := raster.NewDocument(8, 8, raster.RGB)
	img := raster.NewImage(raster.RGB, 8, 8)
	doc.Stock.Images = append(doc.Stock.Images, img)

	layer := raster.NewImageLayer(doc.Sprite.ID, "layer")
	require.NoError(t, doc.Root.InsertChildAfter(0, layer))
	require.NoError(t, layer.AddCel(&raster.Cel{Frame: 0, ImageIdx: 0}))

	assert.NoError(t, doc.Validate())
}

func TestDocument_ValidateCatchesDanglingCel(t *testing.T) {
	doc := raster.NewDocument(8, 8, raster.RGB)
	layer := raster.NewImageLayer(doc.Sprite.ID, "layer")
	require.NoError(t, doc.Root.InsertChildAfter(0, layer))
	require.NoError(t, layer.AddCel(&raster.Cel{Frame: 0, ImageIdx: 5}))

	err := doc.Validate()
	assert.Error(t, err)
}

func TestDocument_ValidateCatchesVariantMismatch(t *testing.T) {
	doc := raster.NewDocument(8, 8, raster.RGB)
	folder := raster.NewFolderLayer(doc.Sprite.ID, "folder")
	require.NoError(t, doc.Root.InsertChildAfter(0, folder))
	folder.Cels = append(folder.Cels, &raster.Cel{})

	err := doc.Validate()
	assert.Error(t, err)
}

func TestDocument_ValidateCatchesParentMismatch(t *testing.T) {
	doc := raster.NewDocument(8, 8, raster.RGB)
	layer := raster.NewImageLayer(doc.Sprite.ID, "layer")
	require.NoError(t, doc.Root.InsertChildAfter(0, layer))
	layer.Parent = nil

	err := doc.Validate()
	assert.Error(t, err)
}
