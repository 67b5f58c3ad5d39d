package undo

import (
	"errors"
	"fmt"

	"github.com/anyproto/sprite-undo/objects"
)

// errSkipChunk is the sentinel an inverter returns for the tolerated case
// of spec §5/§7 point 2: the chunk's target no longer exists (or no
// longer has the expected live shape) because the surrounding editor
// deleted or replaced it through a path this engine never observed.
// runUndo treats it as "drop this chunk, push no inverse, keep replaying
// the group" rather than aborting — the two named exceptions (IMAGE's
// imgtype/shape mismatch, SET_PALETTE_COLORS' missing palette) are raised
// as an ordinary Failure by their own callers instead of going through
// this sentinel.
var errSkipChunk = errors.New("undo: chunk skipped")

// skip wraps errSkipChunk with kind/reason context for logging.
func skip(kind Kind, reason string) error {
	return fmt.Errorf("%s: %s: %w", kind, reason, errSkipChunk)
}

// resolve looks id up in h's container as a T. A missing id, or one that
// now holds a different type, is the deleted-collaborator case spec §5
// documents as tolerable, not a bug — it returns errSkipChunk rather than
// a Failure so the caller's inverter (and runUndo above it) treat the
// whole chunk as a no-op instead of aborting the group it belongs to.
func resolve[T any](kind Kind, objs *objects.Container, id objects.ID, what string) (T, error) {
	v, ok := objects.Get[T](objs, id)
	if !ok {
		var zero T
		return zero, skip(kind, fmt.Sprintf("%s (id %d) not found", what, id))
	}
	return v, nil
}
