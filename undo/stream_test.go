package undo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunk(kind Kind, size int) Chunk {
	return buildChunk(kind, "", make([]byte, size))
}

func TestStream_PushOrderIsChronological(t *testing.T) {
	s := NewStream()
	a := chunk(KindData, 4)
	b := chunk(KindData, 4)
	s.Push(a)
	s.Push(b)

	assert.Equal(t, a, s.PeekHead())
	assert.Equal(t, b, s.PeekTail())
}

func TestStream_PopTailIsLIFO(t *testing.T) {
	s := NewStream()
	s.Push(chunk(KindData, 1))
	s.Push(chunk(KindData, 2))
	s.Push(chunk(KindData, 3))

	first := s.PopTail()
	require.NotNil(t, first)
	assert.Equal(t, uint32(chunkHeaderSize+3), first.Size())
	assert.Equal(t, 2, s.Len())
}

func TestStream_GroupCountP5(t *testing.T) {
	s := NewStream()
	s.Push(chunk(KindData, 1)) // ungrouped chunk #1
	s.Push(chunk(KindOpen, 0))
	s.Push(chunk(KindData, 1))
	s.Push(chunk(KindOpen, 0)) // nested
	s.Push(chunk(KindData, 1))
	s.Push(chunk(KindClose, 0))
	s.Push(chunk(KindClose, 0)) // group #2 closes here
	s.Push(chunk(KindData, 1)) // ungrouped chunk #3

	assert.Equal(t, 3, s.GroupCount())
	assert.True(t, s.OutOfGroup())
}

func TestStream_OutOfGroupFalseMidGroup(t *testing.T) {
	s := NewStream()
	s.Push(chunk(KindOpen, 0))
	s.Push(chunk(KindData, 1))
	assert.False(t, s.OutOfGroup())
}

func TestStream_DiscardOldestGroupRemovesWholeGroupNotJustHead(t *testing.T) {
	s := NewStream()
	s.Push(chunk(KindOpen, 0))
	s.Push(chunk(KindData, 5))
	s.Push(chunk(KindData, 5))
	s.Push(chunk(KindClose, 0))
	s.Push(chunk(KindData, 1)) // second, ungrouped group

	before := s.Len()
	s.discardOldestGroup()
	assert.Equal(t, before-4, s.Len())
	assert.Equal(t, 1, s.GroupCount())
}

func TestStream_DiscardOldestGroupSingleUngroupedChunk(t *testing.T) {
	s := NewStream()
	s.Push(chunk(KindData, 1))
	s.Push(chunk(KindData, 1))

	s.discardOldestGroup()
	assert.Equal(t, 1, s.Len())
}

func TestStream_ClearResetsMemSize(t *testing.T) {
	s := NewStream()
	s.Push(chunk(KindData, 10))
	s.Clear()
	assert.True(t, s.IsEmpty())
	assert.Equal(t, uint64(0), s.MemSize())
}
