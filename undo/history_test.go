package undo_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/sprite-undo/objects"
	"github.com/anyproto/sprite-undo/raster"
	"github.com/anyproto/sprite-undo/undo"
)

type fixture struct {
	objs *objects.Container
	doc  *raster.Document
	h    *undo.History
}

func newFixture(t *testing.T, limitMiB int) *fixture {
	t.Helper()
	objs := objects.New()
	doc := raster.NewDocument(8, 8, raster.RGB)
	doc.ID = objs.Add(doc)
	doc.Sprite.ID = objs.Add(doc.Sprite)
	doc.Root.SpriteID = doc.Sprite.ID
	doc.Root.ID = objs.Add(doc.Root)
	return &fixture{objs: objs, doc: doc, h: undo.New(objs, limitMiB)}
}

// writePatch records a DATA chunk (which stores the pre-write bytes for
// restoration) then performs the actual write, matching the caller
// contract documented on RecordData.
func writePatch(t *testing.T, h *undo.History, img *raster.Image, offset int, newBytes []byte) {
	t.Helper()
	old := append([]byte(nil), img.Pix[offset:offset+len(newBytes)]...)
	require.NoError(t, h.RecordData(img, offset, old))
	copy(img.Pix[offset:offset+len(newBytes)], newBytes)
}

// TestHistory_UndoRedoRoundTrip is property P1: undoing then redoing a
// single action restores the document to its pre-undo state.
func TestHistory_UndoRedoRoundTrip(t *testing.T) {
	fx := newFixture(t, 0)
	img := raster.NewImage(raster.RGB, 8, 8)
	require.NoError(t, fx.h.RecordAddImage(fx.doc.Stock, fx.objs.Add(fx.doc.Stock), 0, img))

	before := append([]byte(nil), img.Pix...)
	writePatch(t, fx.h, img, 0, []byte{9, 9, 9, 9})
	assert.NotEqual(t, before, img.Pix)

	require.NoError(t, fx.h.DoUndo())
	assert.Equal(t, before, img.Pix)

	require.NoError(t, fx.h.DoRedo())
	assert.NotEqual(t, before, img.Pix)
}

// TestHistory_GroupUndoesAsOneAtomicUnit is property P3: an OPEN..CLOSE
// group is undone or redone as a single unit, never partially.
func TestHistory_GroupUndoesAsOneAtomicUnit(t *testing.T) {
	fx := newFixture(t, 0)
	img := raster.NewImage(raster.RGB, 8, 8)

	fx.h.UndoOpen()
	require.NoError(t, fx.h.RecordAddImage(fx.doc.Stock, fx.objs.Add(fx.doc.Stock), 0, img))
	writePatch(t, fx.h, img, 0, []byte{1, 2, 3, 4})
	fx.h.UndoClose()

	require.True(t, fx.h.CanUndo())
	require.NoError(t, fx.h.DoUndo())

	assert.False(t, fx.h.CanUndo())
	assert.Equal(t, -1, fx.doc.Stock.IndexOf(img))
	assert.Nil(t, fx.doc.Stock.Get(0))
}

// TestHistory_ClearRedoOnNewRecording is invariant 5: recording a new
// action empties the redo stream.
func TestHistory_ClearRedoOnNewRecording(t *testing.T) {
	fx := newFixture(t, 0)
	img := raster.NewImage(raster.RGB, 8, 8)
	require.NoError(t, fx.h.RecordAddImage(fx.doc.Stock, fx.objs.Add(fx.doc.Stock), 0, img))
	writePatch(t, fx.h, img, 0, []byte{1, 1, 1, 1})
	require.NoError(t, fx.h.DoUndo())
	require.True(t, fx.h.CanRedo())

	writePatch(t, fx.h, img, 4, []byte{2, 2, 2, 2})
	assert.False(t, fx.h.CanRedo())
}

// TestHistory_SavedStateTracksDiffCount checks that IsSavedState turns
// false after an edit past MarkSavedState and true again once it is undone.
func TestHistory_SavedStateTracksDiffCount(t *testing.T) {
	fx := newFixture(t, 0)
	img := raster.NewImage(raster.RGB, 8, 8)
	require.NoError(t, fx.h.RecordAddImage(fx.doc.Stock, fx.objs.Add(fx.doc.Stock), 0, img))
	fx.h.MarkSavedState()
	assert.True(t, fx.h.IsSavedState())

	writePatch(t, fx.h, img, 0, []byte{5, 5, 5, 5})
	assert.False(t, fx.h.IsSavedState())

	require.NoError(t, fx.h.DoUndo())
	assert.True(t, fx.h.IsSavedState())
}

// TestHistory_BudgetEvictsOldestGroupOnly is property P4: budget pruning
// removes complete groups from the oldest end and never evicts the last
// remaining group.
func TestHistory_BudgetEvictsOldestGroupOnly(t *testing.T) {
	fx := newFixture(t, 1) // 1 MiB ceiling, small enough for this test to cross
	img := raster.NewImage(raster.RGB, 512, 512)
	require.NoError(t, fx.h.RecordAddImage(fx.doc.Stock, fx.objs.Add(fx.doc.Stock), 0, img))

	patch := make([]byte, 200000)
	for i := range patch {
		patch[i] = 0xAA
	}

	var lastLabel string
	for i := 0; i < 6; i++ {
		lastLabel = fmt.Sprintf("patch-%d", i)
		fx.h.SetLabel(lastLabel)
		fx.h.UndoOpen()
		writePatch(t, fx.h, img, 0, patch)
		fx.h.UndoClose()
	}

	// 6 groups of ~200KB comfortably exceed the 1 MiB ceiling, so
	// enforceBudget must have discarded whole groups from the oldest end.
	stats := fx.h.Stats()
	assert.LessOrEqual(t, stats.UndoMemSize, uint64(1<<20))
	assert.Less(t, stats.UndoGroupCount, 7)
	assert.GreaterOrEqual(t, stats.UndoGroupCount, 1) // eviction never goes below one group

	// The newest group must survive eviction untouched.
	assert.Equal(t, lastLabel, fx.h.GetNextUndoLabel())
}

// TestHistory_LabelStackReportsOutermostLabel exercises the supplemented
// nested-group label feature.
func TestHistory_LabelStackReportsOutermostLabel(t *testing.T) {
	fx := newFixture(t, 0)
	img := raster.NewImage(raster.RGB, 8, 8)
	require.NoError(t, fx.h.RecordAddImage(fx.doc.Stock, fx.objs.Add(fx.doc.Stock), 0, img))

	fx.h.SetLabel("outer")
	fx.h.UndoOpen()
	fx.h.SetLabel("inner")
	fx.h.UndoOpen()
	writePatch(t, fx.h, img, 0, []byte{1, 1, 1, 1})
	fx.h.UndoClose()
	fx.h.UndoClose()

	assert.Equal(t, "outer", fx.h.GetNextUndoLabel())
}

// TestHistory_ResolveSkipsStaleReference exercises spec §5/§7 point 2's
// tolerant default: a chunk whose object id no longer resolves (the
// object was deleted through a path this engine never observed) is
// dropped silently during replay rather than raising a Failure.
func TestHistory_ResolveSkipsStaleReference(t *testing.T) {
	fx := newFixture(t, 0)
	img := raster.NewImage(raster.RGB, 8, 8)
	require.NoError(t, fx.h.RecordAddImage(fx.doc.Stock, fx.objs.Add(fx.doc.Stock), 0, img))
	writePatch(t, fx.h, img, 0, []byte{1, 1, 1, 1})
	patched := append([]byte(nil), img.Pix...)

	// Desync the DATA chunk's already-recorded id from the live container,
	// simulating an object deleted through a path this engine never
	// observed.
	fx.objs.Remove(fx.objs.Add(img))

	require.NoError(t, fx.h.DoUndo())
	assert.Equal(t, patched, img.Pix) // skipped chunk leaves live state untouched
	assert.False(t, fx.h.CanRedo())   // no inverse was pushed for the skipped chunk
	assert.True(t, fx.h.CanUndo())    // the earlier AddImage chunk is unaffected
}

// TestHistory_GroupSkipsStaleReferenceWithoutStranding is property P3
// under the case spec §5/§7 point 2 explicitly anticipates: a group
// containing a chunk whose object was deleted still undoes as one atomic
// unit — the stale chunk is skipped but the rest of the group inverts
// normally and the streams are left balanced, not stranded mid-group.
func TestHistory_GroupSkipsStaleReferenceWithoutStranding(t *testing.T) {
	fx := newFixture(t, 0)
	img := raster.NewImage(raster.RGB, 8, 8)
	img2 := raster.NewImage(raster.RGB, 8, 8)

	fx.h.UndoOpen()
	require.NoError(t, fx.h.RecordAddImage(fx.doc.Stock, fx.objs.Add(fx.doc.Stock), 0, img))
	require.NoError(t, fx.h.RecordAddImage(fx.doc.Stock, fx.objs.Add(fx.doc.Stock), 1, img2))
	writePatch(t, fx.h, img2, 0, []byte{9, 9, 9, 9})
	fx.h.UndoClose()

	// Delete img2 through a path this engine never observed: the DATA
	// chunk recorded against it now references a stale id.
	fx.objs.Remove(fx.objs.Add(img2))

	require.NoError(t, fx.h.DoUndo())
	assert.False(t, fx.h.CanUndo())
	assert.Equal(t, -1, fx.doc.Stock.IndexOf(img))
	assert.Equal(t, -1, fx.doc.Stock.IndexOf(img2))

	// The group unwound fully and left the streams balanced: redo is
	// available and replays cleanly, rather than the source stream being
	// left with a stranded, half-open group.
	require.True(t, fx.h.CanRedo())
	require.NoError(t, fx.h.DoRedo())
}
