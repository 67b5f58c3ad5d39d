package raster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/sprite-undo/raster"
)

func TestImage_WriteRectReturnsPrevious(t *testing.T) {
	img := raster.NewImage(raster.GRAY, 4, 4)
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}
	patch := make([]byte, raster.GRAY.LineSize(2)*2)
	for i := range patch {
		patch[i] = 0xff
	}

	prev, err := img.WriteRect(1, 1, 2, 2, patch)
	require.NoError(t, err)
	assert.NotEqual(t, patch, prev)

	restored, err := img.WriteRect(1, 1, 2, 2, prev)
	require.NoError(t, err)
	assert.Equal(t, patch, restored)
}

func TestImage_ReadRectOutOfBounds(t *testing.T) {
	img := raster.NewImage(raster.RGB, 4, 4)
	_, err := img.ReadRect(3, 3, 4, 4)
	assert.Error(t, err)
}

func TestImage_FlipRectHorizontalIsSelfInverse(t *testing.T) {
	img := raster.NewImage(raster.INDEXED, 4, 4)
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}
	original := append([]byte(nil), img.Pix...)

	require.NoError(t, img.FlipRect(0, 0, 3, 3, raster.FlipHorizontal))
	assert.NotEqual(t, original, img.Pix)

	require.NoError(t, img.FlipRect(0, 0, 3, 3, raster.FlipHorizontal))
	assert.Equal(t, original, img.Pix)
}

func TestImgType_BytesPerPixel(t *testing.T) {
	assert.Equal(t, 4, raster.RGB.BytesPerPixel())
	assert.Equal(t, 2, raster.GRAY.BytesPerPixel())
	assert.Equal(t, 1, raster.INDEXED.BytesPerPixel())
}
