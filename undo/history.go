package undo

import (
	"errors"

	"github.com/anyproto/sprite-undo/logging"
	"github.com/anyproto/sprite-undo/objects"
)

var log = logging.Logger("undo-history")

const (
	defaultLimitMiB = 8
	mib             = 1 << 20
)

// direction selects which stream is the source and which is the
// destination for a single runUndo pass.
type direction int

const (
	dirUndo direction = iota
	dirRedo
)

// History is the UndoHistory controller of spec §4.3: it owns the undo
// and redo streams, the current label, the enabled flag, the diff
// counters that drive saved-state tracking, and the memory budget.
//
// Storage convention: Stream.Push always appends to the stream's tail, so
// a stream's head-to-tail order is exactly chronological recording order
// — this is what makes invariant 4 (running OPEN/CLOSE depth never
// negative, walking head to tail) hold directly. runUndo therefore
// replays from the tail (the most recently recorded chunk) inward, LIFO,
// which is the correct undo/redo replay order; budget pruning removes
// whole groups from the head (the oldest content), matching "prunes the
// oldest atomic actions" (spec §1). See DESIGN.md for the full rationale;
// this is a deliberate resolution of spec.md §4.3's pseudocode, which
// names both ends "head"/"tail" without pinning which one is chronologically
// newest.
type History struct {
	objects *objects.Container

	undoS *Stream
	redoS *Stream

	label      string
	labelStack []string

	enabled bool

	diffCount int
	diffSaved int

	limitBytes uint64
}

// New returns a history over objs with the given size limit in MiB (spec
// §6.3; limitMiB <= 0 uses the default of 8).
func New(objs *objects.Container, limitMiB int) *History {
	if limitMiB <= 0 {
		limitMiB = defaultLimitMiB
	}
	return &History{
		objects:    objs,
		undoS:      NewStream(),
		redoS:      NewStream(),
		enabled:    true,
		limitBytes: uint64(limitMiB) * mib,
	}
}

// Objects returns the container the history resolves chunk ids through.
func (h *History) Objects() *objects.Container { return h.objects }

// CanUndo reports whether the undo stream has anything to replay.
func (h *History) CanUndo() bool { return !h.undoS.IsEmpty() }

// CanRedo reports whether the redo stream has anything to replay.
func (h *History) CanRedo() bool { return !h.redoS.IsEmpty() }

// IsEnabled reports whether recording is currently active.
func (h *History) IsEnabled() bool { return h.enabled }

// SetEnabled toggles recording. While disabled, Record* calls still
// perform their live mutation but append no chunk to the undo stream.
func (h *History) SetEnabled(v bool) { h.enabled = v }

// SetLabel tags subsequently encoded chunks with text, until either the
// label is replaced or a still-open group's outer label overrides it
// (spec §4.4; see SPEC_FULL.md §9 for the group-label-stack extension).
func (h *History) SetLabel(text string) { h.label = text }

// effectiveLabel returns the label the next encoded chunk should carry:
// the outermost open group's label if any group is open, else the
// caller's current label, else "" (encoders fall back to the kind's
// canonical name).
func (h *History) effectiveLabel() string {
	if len(h.labelStack) > 0 {
		return h.labelStack[0]
	}
	return h.label
}

// labelOrKindName returns effectiveLabel(), or kind's canonical name if
// no label was ever set.
func (h *History) labelOrKindName(kind Kind) string {
	if l := h.effectiveLabel(); l != "" {
		return l
	}
	return kind.String()
}

// UndoOpen emits an OPEN group delimiter.
func (h *History) UndoOpen() {
	label := h.labelOrKindName(KindOpen)
	h.labelStack = append(h.labelStack, label)
	h.appendUndo(buildChunk(KindOpen, label, nil))
}

// UndoClose emits a CLOSE group delimiter, closing the innermost open
// group.
func (h *History) UndoClose() {
	label := h.labelOrKindName(KindClose)
	if len(h.labelStack) > 0 {
		h.labelStack = h.labelStack[:len(h.labelStack)-1]
	}
	h.appendUndo(buildChunk(KindClose, label, nil))
}

// appendUndo pushes chunk onto the undo stream (if recording is enabled)
// and runs updateUndo.
func (h *History) appendUndo(c Chunk) {
	if !h.enabled {
		return
	}
	h.undoS.Push(c)
	h.updateUndo()
}

// updateUndo runs after every encoded chunk (spec §4.3): bump diffCount,
// clear the redo stream, and — only when the undo stream is currently
// out of any group — enforce the memory budget by discarding whole
// oldest groups.
func (h *History) updateUndo() {
	h.diffCount++
	h.clearRedoLocked()
	if h.undoS.OutOfGroup() {
		h.enforceBudget()
	}
}

func (h *History) enforceBudget() {
	for h.undoS.GroupCount() > 1 && h.undoS.MemSize() > h.limitBytes {
		log.Debugw("undo budget exceeded, discarding oldest group",
			"memSize", h.undoS.MemSize(), "limit", h.limitBytes, "groups", h.undoS.GroupCount())
		h.undoS.discardOldestGroup()
	}
}

// ClearRedo empties the redo stream (spec invariant 5: redo is empty
// whenever a new recording occurs).
func (h *History) ClearRedo() { h.clearRedoLocked() }

func (h *History) clearRedoLocked() {
	if !h.redoS.IsEmpty() {
		h.redoS.Clear()
	}
}

// MarkSavedState records the current diffCount as the saved baseline.
func (h *History) MarkSavedState() { h.diffSaved = h.diffCount }

// IsSavedState reports whether diffCount matches the last saved baseline.
func (h *History) IsSavedState() bool { return h.diffCount == h.diffSaved }

// GetNextUndoLabel returns the label of the group DoUndo would apply
// next, or "" if the undo stream is empty.
func (h *History) GetNextUndoLabel() string {
	c := h.undoS.PeekTail()
	if c == nil {
		return ""
	}
	return c.Label()
}

// GetNextRedoLabel returns the label of the group DoRedo would apply
// next, or "" if the redo stream is empty.
func (h *History) GetNextRedoLabel() string {
	c := h.redoS.PeekTail()
	if c == nil {
		return ""
	}
	return c.Label()
}

// Stats is a read-only snapshot of the history's counters, useful for a
// UI status bar (SPEC_FULL.md §9).
type Stats struct {
	UndoCount, RedoCount int
	UndoMemSize          uint64
	UndoGroupCount       int
}

// Stats returns a snapshot of the current counters.
func (h *History) Stats() Stats {
	return Stats{
		UndoCount:      h.undoS.Len(),
		RedoCount:      h.redoS.Len(),
		UndoMemSize:    h.undoS.MemSize(),
		UndoGroupCount: h.undoS.GroupCount(),
	}
}

// DoUndo replays exactly one group (or one ungrouped chunk) from the undo
// stream, pushing its inverse onto the redo stream.
func (h *History) DoUndo() error { return h.runUndo(dirUndo) }

// DoRedo replays exactly one group (or one ungrouped chunk) from the redo
// stream, pushing its inverse onto the undo stream.
func (h *History) DoRedo() error { return h.runUndo(dirRedo) }

// runUndo implements spec §4.3's runUndo(direction) for both directions,
// popping from the source stream's active (most-recently-recorded) end
// and pushing inverses onto the destination stream, one full group at a
// time.
func (h *History) runUndo(dir direction) error {
	src, dst := h.undoS, h.redoS
	delta := -1
	if dir == dirRedo {
		src, dst = h.redoS, h.undoS
		delta = 1
	}
	depth := 0
	for {
		c := src.PopTail()
		if c == nil {
			break
		}
		h.label = c.Label()
		inv, ok := inverters[c.Kind()]
		if !ok {
			return newFailure(c.Kind(), "no inverter registered for this kind")
		}
		if err := inv(h, dst, c); err != nil {
			if !errors.Is(err, errSkipChunk) {
				return err
			}
			log.Debugw("skipping chunk during replay", "kind", c.Kind(), "label", c.Label(), "error", err)
		}
		switch c.Kind() {
		case KindOpen:
			depth++
		case KindClose:
			depth--
		}
		h.diffCount += delta
		if depth == 0 {
			break
		}
	}
	return nil
}
