package undo

import (
	"github.com/anyproto/sprite-undo/objects"
	"github.com/anyproto/sprite-undo/raster"
)

// registerLayer, registerCel and registerImage add obj to the container
// and, the first time an object is seen, stamp its own ID field with the
// id it was given — Add is otherwise identity-keyed and never touches the
// object itself, but several codecs (forgetLayerSubtree, RemoveChild,
// RemoveCel lookups) key off the struct's own ID field rather than a
// separately tracked id, exactly like a freshly decoded blob does.

func registerLayer(objs *objects.Container, l *raster.Layer) objects.ID {
	id := objs.Add(l)
	if l.ID == 0 {
		l.ID = id
	}
	return id
}

func registerCel(objs *objects.Container, c *raster.Cel) objects.ID {
	id := objs.Add(c)
	if c.ID == 0 {
		c.ID = id
	}
	return id
}

func registerImage(objs *objects.Container, img *raster.Image) objects.ID {
	id := objs.Add(img)
	if img.ID == 0 {
		img.ID = id
	}
	return id
}

func registerSprite(objs *objects.Container, s *raster.Sprite) objects.ID {
	id := objs.Add(s)
	if s.ID == 0 {
		s.ID = id
	}
	// NewSprite allocates Root before the sprite itself has an id, so Root
	// (and any layer created against it before this call) carries a zero
	// SpriteID until the sprite's first registration backfills it.
	if s.Root != nil && s.Root.SpriteID == 0 {
		s.Root.SpriteID = id
	}
	return id
}

func registerDocument(objs *objects.Container, d *raster.Document) objects.ID {
	id := objs.Add(d)
	if d.ID == 0 {
		d.ID = id
	}
	return id
}
