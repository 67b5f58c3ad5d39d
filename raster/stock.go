package raster

import "fmt"

// Stock is the indexed collection of images cels reference, per spec
// §6.1. Index gaps are represented by nil entries (EnsureAt creates them
// when it fills a slot past the end). RemoveAt and AddAt shift later
// images, and cel indices are not adjusted when they do.
type Stock struct {
	Images []*Image
}

// NewStock returns an empty stock.
func NewStock() *Stock { return &Stock{} }

// Get returns the image at index, or nil if out of range or empty.
func (s *Stock) Get(index int) *Image {
	if index < 0 || index >= len(s.Images) {
		return nil
	}
	return s.Images[index]
}

// AddAt inserts img at index, growing the stock and shifting later images
// up by one slot. Used both for fresh additions and for REMOVE_IMAGE's
// inverse, which must reinsert at the original index.
func (s *Stock) AddAt(index int, img *Image) error {
	if index < 0 || index > len(s.Images) {
		return fmt.Errorf("stock index %d out of range (len %d)", index, len(s.Images))
	}
	s.Images = append(s.Images, nil)
	copy(s.Images[index+1:], s.Images[index:])
	s.Images[index] = img
	return nil
}

// RemoveAt removes and returns the image at index, shifting later images
// down by one slot.
func (s *Stock) RemoveAt(index int) (*Image, error) {
	if index < 0 || index >= len(s.Images) {
		return nil, fmt.Errorf("stock index %d out of range (len %d)", index, len(s.Images))
	}
	img := s.Images[index]
	copy(s.Images[index:], s.Images[index+1:])
	s.Images = s.Images[:len(s.Images)-1]
	return img, nil
}

// ReplaceAt swaps the image at index for img and returns the previous one.
func (s *Stock) ReplaceAt(index int, img *Image) (*Image, error) {
	if index < 0 || index >= len(s.Images) {
		return nil, fmt.Errorf("stock index %d out of range (len %d)", index, len(s.Images))
	}
	prev := s.Images[index]
	s.Images[index] = img
	return prev, nil
}

// EnsureAt grows the stock with nil gaps up to index if needed and fills
// slot index with img only if it is currently empty — used to restore an
// image that traveled inside a removed layer's cel snapshot without
// disturbing indices any other cel already relies on.
func (s *Stock) EnsureAt(index int, img *Image) {
	for len(s.Images) <= index {
		s.Images = append(s.Images, nil)
	}
	if s.Images[index] == nil {
		s.Images[index] = img
	}
}

// IndexOf returns the index of img by identity, or -1.
func (s *Stock) IndexOf(img *Image) int {
	for i, c := range s.Images {
		if c == img {
			return i
		}
	}
	return -1
}
