package raster

import (
	"github.com/anyproto/sprite-undo/objects"
)

// FrameDuration is a display duration in milliseconds.
type FrameDuration uint32

// Sprite is the animation document proper, per spec §6.1: current
// frame/layer, total frames, per-frame durations, per-frame palettes,
// canvas size and type, and the layer tree root.
type Sprite struct {
	ID objects.ID

	CurrentFrame uint16
	CurrentLayer objects.ID
	TotalFrames  uint16
	FrameDur     []FrameDuration
	Palettes     map[uint16]*Palette

	W, H    uint16
	ImgType ImgType

	Root  *Layer // folder-variant root of the layer tree
	Stock *Stock
}

// NewSprite allocates a sprite with a single frame, an empty root folder,
// and an empty stock.
func NewSprite(w, h uint16, t ImgType) *Sprite {
	s := &Sprite{
		TotalFrames: 1,
		FrameDur:    []FrameDuration{100},
		Palettes:    make(map[uint16]*Palette),
		W:           w,
		H:           h,
		ImgType:     t,
		Stock:       NewStock(),
	}
	s.Root = NewFolderLayer(0, "root")
	return s
}

// PaletteForFrame returns the palette registered at exactly frame, or nil.
func (s *Sprite) PaletteForFrame(frame uint16) *Palette {
	return s.Palettes[frame]
}

// FindLayer searches the whole tree, starting at Root, for id.
func (s *Sprite) FindLayer(id objects.ID) *Layer {
	var walk func(l *Layer) *Layer
	walk = func(l *Layer) *Layer {
		if l.ID == id {
			return l
		}
		if l.Type == LayerFolder {
			for _, c := range l.Children {
				if found := walk(c); found != nil {
					return found
				}
			}
		}
		return nil
	}
	return walk(s.Root)
}

// WalkImageLayers calls f for every Image-variant layer in the tree.
func (s *Sprite) WalkImageLayers(f func(*Layer)) {
	var walk func(l *Layer)
	walk = func(l *Layer) {
		if l.Type == LayerImage {
			f(l)
			return
		}
		for _, c := range l.Children {
			walk(c)
		}
	}
	walk(s.Root)
}

// RemapImages applies mapping (a permutation of [0,256)) to every indexed
// pixel of every stock image referenced by a cel whose frame lies in
// [from,to], each image remapped at most once even if several cels in
// range share it. Per spec §4.2, palette entries are remapped separately
// by the REMAP_PALETTE codec.
func (s *Sprite) RemapImages(from, to uint16, mapping [256]byte) {
	seen := make(map[*Image]bool)
	s.WalkImageLayers(func(l *Layer) {
		for _, cel := range l.Cels {
			if cel.Frame < from || cel.Frame > to {
				continue
			}
			img := s.Stock.Get(int(cel.ImageIdx))
			if img == nil || img.ImgType != INDEXED || seen[img] {
				continue
			}
			seen[img] = true
			for i, p := range img.Pix {
				img.Pix[i] = mapping[p]
			}
		}
	})
}
