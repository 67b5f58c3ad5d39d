package raster

import "github.com/anyproto/sprite-undo/objects"

// Cel places a stock image at a frame with an offset and opacity, per
// spec §6.1/§6.2.
type Cel struct {
	ID       objects.ID
	Frame    uint16
	ImageIdx uint16
	X, Y     int16
	Opacity  uint16
}
