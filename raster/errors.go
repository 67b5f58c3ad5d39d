package raster

import (
	"fmt"

	"github.com/anyproto/sprite-undo/objects"
)

func errParentMismatch(id objects.ID) error {
	return fmt.Errorf("layer %d: parent pointer does not match its position in the tree", id)
}

func errVariantMismatch(id objects.ID, msg string) error {
	return fmt.Errorf("layer %d: %s", id, msg)
}

func errDanglingCel(celID objects.ID, imageIdx uint16) error {
	return fmt.Errorf("cel %d: stock index %d is out of range", celID, imageIdx)
}
