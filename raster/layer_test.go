package raster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/sprite-undo/objects"
	"github.com/anyproto/sprite-undo/raster"
)

func TestLayer_InsertAndRemoveChildRoundTrips(t *testing.T) {
	root := raster.NewFolderLayer(1, "root")
	a := raster.NewImageLayer(1, "a")
	a.ID = 10
	b := raster.NewImageLayer(1, "b")
	b.ID = 20

	require.NoError(t, root.InsertChildAfter(0, a))
	require.NoError(t, root.InsertChildAfter(a.ID, b))
	require.Equal(t, []*raster.Layer{a, b}, root.Children)

	removed, afterID, err := root.RemoveChild(b.ID)
	require.NoError(t, err)
	assert.Same(t, b, removed)
	assert.Equal(t, a.ID, afterID)
	assert.Len(t, root.Children, 1)

	require.NoError(t, root.InsertChildAfter(afterID, removed))
	assert.Equal(t, []*raster.Layer{a, b}, root.Children)
}

func TestLayer_RemoveChildNotFound(t *testing.T) {
	root := raster.NewFolderLayer(1, "root")
	_, _, err := root.RemoveChild(objects.ID(99))
	assert.Error(t, err)
}

func TestLayer_AddCelRejectsFolder(t *testing.T) {
	folder := raster.NewFolderLayer(1, "root")
	err := folder.AddCel(&raster.Cel{})
	assert.Error(t, err)
}

func TestLayer_FindChild(t *testing.T) {
	root := raster.NewFolderLayer(1, "root")
	a := raster.NewImageLayer(1, "a")
	a.ID = 10
	require.NoError(t, root.InsertChildAfter(0, a))

	assert.Same(t, a, root.FindChild(10))
	assert.Nil(t, root.FindChild(999))
}
