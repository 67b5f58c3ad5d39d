// Package undo implements the undo/redo engine: the chunk taxonomy and
// invert protocol, the UndoStream chunk buffer, and the UndoHistory
// dual-stream controller described in spec.md.
package undo

import (
	"encoding/binary"
)

// Kind selects a chunk's encoder/inverter pair.
type Kind uint16

const (
	KindOpen Kind = iota + 1
	KindClose
	KindData
	KindImage
	KindFlip
	KindDirty
	KindAddImage
	KindRemoveImage
	KindReplaceImage
	KindAddCel
	KindRemoveCel
	KindSetLayerName
	KindAddLayer
	KindRemoveLayer
	KindMoveLayer
	KindSetLayer
	KindAddPalette
	KindRemovePalette
	KindSetPaletteColors
	KindRemapPalette
	KindSetMask
	KindSetImgType
	KindSetSize
	KindSetFrame
	KindSetFrames
	KindSetFrlen
)

var kindNames = map[Kind]string{
	KindOpen:             "OPEN",
	KindClose:            "CLOSE",
	KindData:             "DATA",
	KindImage:            "IMAGE",
	KindFlip:             "FLIP",
	KindDirty:            "DIRTY",
	KindAddImage:         "ADD_IMAGE",
	KindRemoveImage:      "REMOVE_IMAGE",
	KindReplaceImage:     "REPLACE_IMAGE",
	KindAddCel:           "ADD_CEL",
	KindRemoveCel:        "REMOVE_CEL",
	KindSetLayerName:     "SET_LAYER_NAME",
	KindAddLayer:         "ADD_LAYER",
	KindRemoveLayer:      "REMOVE_LAYER",
	KindMoveLayer:        "MOVE_LAYER",
	KindSetLayer:         "SET_LAYER",
	KindAddPalette:       "ADD_PALETTE",
	KindRemovePalette:    "REMOVE_PALETTE",
	KindSetPaletteColors: "SET_PALETTE_COLORS",
	KindRemapPalette:     "REMAP_PALETTE",
	KindSetMask:          "SET_MASK",
	KindSetImgType:       "SET_IMGTYPE",
	KindSetSize:          "SET_SIZE",
	KindSetFrame:         "SET_FRAME",
	KindSetFrames:        "SET_FRAMES",
	KindSetFrlen:         "SET_FRLEN",
}

// String returns the kind's canonical name, used as a chunk's label when
// the caller never set one explicitly (spec §4.4).
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// chunkHeaderSize is kind(2) + size(4) + labelLen(2).
const chunkHeaderSize = 8

// Chunk is a single heap-allocated byte block: header followed by the
// label text followed by the kind-specific payload. It is a typed view
// over a []byte rather than a decoded struct, per Design Notes §9 — the
// only allocation a chunk ever needs is the slice itself.
type Chunk []byte

// buildChunk assembles a chunk from its kind, label and payload.
func buildChunk(kind Kind, label string, payload []byte) Chunk {
	total := chunkHeaderSize + len(label) + len(payload)
	c := make(Chunk, total)
	binary.LittleEndian.PutUint16(c[0:2], uint16(kind))
	binary.LittleEndian.PutUint32(c[2:6], uint32(total))
	binary.LittleEndian.PutUint16(c[6:8], uint16(len(label)))
	copy(c[8:8+len(label)], label)
	copy(c[8+len(label):], payload)
	return c
}

// Kind returns the chunk's kind tag.
func (c Chunk) Kind() Kind { return Kind(binary.LittleEndian.Uint16(c[0:2])) }

// Size returns the chunk's total byte length, header included.
func (c Chunk) Size() uint32 { return binary.LittleEndian.Uint32(c[2:6]) }

// Label returns the group label captured when the chunk was encoded.
func (c Chunk) Label() string {
	n := binary.LittleEndian.Uint16(c[6:8])
	return string(c[8 : 8+n])
}

// Payload returns the kind-specific tail following the header and label.
func (c Chunk) Payload() []byte {
	n := binary.LittleEndian.Uint16(c[6:8])
	return c[8+int(n):]
}

// IsGroupMarker reports whether the chunk is an OPEN or CLOSE delimiter.
func (c Chunk) IsGroupMarker() bool {
	k := c.Kind()
	return k == KindOpen || k == KindClose
}
