package raster

import (
	"fmt"

	"github.com/anyproto/sprite-undo/objects"
)

// LayerType discriminates the two Layer variants. Per Design Notes §9 this
// is modeled as a tagged sum matched on Type rather than as an interface
// with virtual dispatch, mirroring the source's plain enum-tagged struct.
type LayerType uint16

const (
	LayerImage LayerType = iota
	LayerFolder
)

const (
	LayerFlagVisible = 1 << iota
	LayerFlagEditable
	LayerFlagLocked
)

// Layer is either an Image layer (owns a Cels list) or a Folder layer
// (owns a Children list), per spec §6.1.
type Layer struct {
	ID       objects.ID
	Name     string
	Flags    uint8
	Type     LayerType
	SpriteID objects.ID
	Parent   *Layer // nil for the sprite's root folder

	Cels     []*Cel  // valid when Type == LayerImage
	Children []*Layer // valid when Type == LayerFolder
}

// NewImageLayer returns an empty Image-variant layer.
func NewImageLayer(spriteID objects.ID, name string) *Layer {
	return &Layer{Name: name, Type: LayerImage, SpriteID: spriteID, Flags: LayerFlagVisible | LayerFlagEditable}
}

// NewFolderLayer returns an empty Folder-variant layer.
func NewFolderLayer(spriteID objects.ID, name string) *Layer {
	return &Layer{Name: name, Type: LayerFolder, SpriteID: spriteID, Flags: LayerFlagVisible | LayerFlagEditable}
}

// childIndexAfter finds the insertion index right after the child whose
// id is afterID, or 0 if afterID is 0 (insert at front).
func (l *Layer) childIndexAfter(afterID objects.ID) (int, error) {
	if afterID == 0 {
		return 0, nil
	}
	for i, c := range l.Children {
		if c.ID == afterID {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("layer %d not found among children of folder %d", afterID, l.ID)
}

// InsertChildAfter inserts child right after the sibling with id afterID
// (or at index 0 if afterID is 0).
func (l *Layer) InsertChildAfter(afterID objects.ID, child *Layer) error {
	if l.Type != LayerFolder {
		return fmt.Errorf("layer %d is not a folder", l.ID)
	}
	idx, err := l.childIndexAfter(afterID)
	if err != nil {
		return err
	}
	l.Children = append(l.Children, nil)
	copy(l.Children[idx+1:], l.Children[idx:])
	l.Children[idx] = child
	child.Parent = l
	return nil
}

// RemoveChild detaches and returns the child with the given id, plus the
// id of its previous sibling (0 if it was first).
func (l *Layer) RemoveChild(id objects.ID) (child *Layer, afterID objects.ID, err error) {
	for i, c := range l.Children {
		if c.ID == id {
			if i > 0 {
				afterID = l.Children[i-1].ID
			}
			l.Children = append(l.Children[:i], l.Children[i+1:]...)
			c.Parent = nil
			return c, afterID, nil
		}
	}
	return nil, 0, fmt.Errorf("layer %d not found among children of folder %d", id, l.ID)
}

// AddCel appends cel to an Image-variant layer.
func (l *Layer) AddCel(cel *Cel) error {
	if l.Type != LayerImage {
		return fmt.Errorf("layer %d is not an image layer", l.ID)
	}
	l.Cels = append(l.Cels, cel)
	return nil
}

// RemoveCel detaches and returns the cel with the given id.
func (l *Layer) RemoveCel(id objects.ID) (*Cel, error) {
	for i, c := range l.Cels {
		if c.ID == id {
			l.Cels = append(l.Cels[:i], l.Cels[i+1:]...)
			return c, nil
		}
	}
	return nil, fmt.Errorf("cel %d not found on layer %d", id, l.ID)
}

// FindChild searches the folder's direct children by id.
func (l *Layer) FindChild(id objects.ID) *Layer {
	for _, c := range l.Children {
		if c.ID == id {
			return c
		}
	}
	return nil
}
