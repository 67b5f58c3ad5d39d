package raster

import (
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/anyproto/sprite-undo/objects"
)

// Document wraps a Sprite with the document-level Mask spec §6.1 places
// on Document rather than Sprite, plus a per-process SessionID — it never
// appears in the wire format, ObjectId stays the only cross-reference the
// engine deals in.
type Document struct {
	ID        objects.ID
	SessionID uuid.UUID
	*Sprite
	Mask *Mask
}

// NewDocument allocates a document around a fresh sprite.
func NewDocument(w, h uint16, t ImgType) *Document {
	return &Document{
		SessionID: uuid.New(),
		Sprite:    NewSprite(w, h, t),
	}
}

// Validate cross-checks structural invariants a well-formed document must
// hold: every cel's stock index must be in range, every layer's Parent
// must agree with the tree it's reachable from, and folders/leaves must
// not cross-contaminate their variant-only fields. It aggregates every
// violation found via go-multierror instead of stopping at the first, so
// a caller sees the whole picture at once.
func (d *Document) Validate() error {
	var result *multierror.Error
	var walk func(l *Layer, parent *Layer)
	walk = func(l *Layer, parent *Layer) {
		if l.Parent != parent {
			result = multierror.Append(result, errParentMismatch(l.ID))
		}
		switch l.Type {
		case LayerImage:
			if len(l.Children) != 0 {
				result = multierror.Append(result, errVariantMismatch(l.ID, "image layer has children"))
			}
			for _, cel := range l.Cels {
				if d.Stock.Get(int(cel.ImageIdx)) == nil {
					result = multierror.Append(result, errDanglingCel(cel.ID, cel.ImageIdx))
				}
			}
		case LayerFolder:
			if len(l.Cels) != 0 {
				result = multierror.Append(result, errVariantMismatch(l.ID, "folder layer has cels"))
			}
			for _, c := range l.Children {
				walk(c, l)
			}
		}
	}
	walk(d.Root, nil)
	return result.ErrorOrNil()
}
