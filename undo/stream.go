package undo

// Stream is an UndoStream: an ordered chunk buffer with O(1) amortized
// head-pop, tail-pop and append, plus running memory accounting (spec
// §4.1). It is implemented as a doubly linked list so popHead/popTail
// never need to shift a backing array.
type Stream struct {
	head, tail *streamNode
	length     int
	memSize    uint64
}

type streamNode struct {
	chunk      Chunk
	prev, next *streamNode
}

// NewStream returns an empty stream.
func NewStream() *Stream { return &Stream{} }

// Push appends chunk to the tail and adds its size to memSize.
func (s *Stream) Push(c Chunk) {
	n := &streamNode{chunk: c}
	if s.tail == nil {
		s.head, s.tail = n, n
	} else {
		n.prev = s.tail
		s.tail.next = n
		s.tail = n
	}
	s.length++
	s.memSize += uint64(c.Size())
}

// PopHead removes and returns the oldest chunk, or nil if empty.
func (s *Stream) PopHead() Chunk {
	if s.head == nil {
		return nil
	}
	n := s.head
	s.head = n.next
	if s.head != nil {
		s.head.prev = nil
	} else {
		s.tail = nil
	}
	s.length--
	s.memSize -= uint64(n.chunk.Size())
	return n.chunk
}

// PopTail removes and returns the newest chunk, or nil if empty.
func (s *Stream) PopTail() Chunk {
	if s.tail == nil {
		return nil
	}
	n := s.tail
	s.tail = n.prev
	if s.tail != nil {
		s.tail.next = nil
	} else {
		s.head = nil
	}
	s.length--
	s.memSize -= uint64(n.chunk.Size())
	return n.chunk
}

// PeekHead returns the oldest chunk without removing it, or nil if empty.
func (s *Stream) PeekHead() Chunk {
	if s.head == nil {
		return nil
	}
	return s.head.chunk
}

// PeekTail returns the newest chunk without removing it, or nil if empty.
func (s *Stream) PeekTail() Chunk {
	if s.tail == nil {
		return nil
	}
	return s.tail.chunk
}

// Clear frees all chunks and resets memSize to zero.
func (s *Stream) Clear() {
	s.head, s.tail = nil, nil
	s.length = 0
	s.memSize = 0
}

// IsEmpty reports whether the stream holds no chunks.
func (s *Stream) IsEmpty() bool { return s.length == 0 }

// Len returns the number of chunks in the stream.
func (s *Stream) Len() int { return s.length }

// MemSize returns the sum of the sizes of all contained chunks.
func (s *Stream) MemSize() uint64 { return s.memSize }

// Each iterates chunks from head to tail, stopping early if f returns
// false.
func (s *Stream) Each(f func(Chunk) bool) {
	for n := s.head; n != nil; n = n.next {
		if !f(n.chunk) {
			return
		}
	}
}

// OutOfGroup reports whether the running OPEN/CLOSE depth returns to zero
// after walking the whole stream — the "intended semantics" spec.md §9
// asks implementations to follow rather than the source's discarded-
// intermediate-results quirk.
func (s *Stream) OutOfGroup() bool {
	depth := 0
	s.Each(func(c Chunk) bool {
		switch c.Kind() {
		case KindOpen:
			depth++
		case KindClose:
			depth--
		}
		return true
	})
	return depth == 0
}

// GroupCount walks head to tail counting how many times the running depth
// returns to zero (spec §4.3/§8 P5).
func (s *Stream) GroupCount() int {
	depth := 0
	count := 0
	s.Each(func(c Chunk) bool {
		switch c.Kind() {
		case KindOpen:
			depth++
		case KindClose:
			depth--
			if depth == 0 {
				count++
			}
		default:
			if depth == 0 {
				count++
			}
		}
		return true
	})
	return count
}

// discardOldestGroup pops chunks from the head until a full group (or a
// single ungrouped chunk) has been freed, without invoking any inverter
// or touching live state (spec §4.3 discardTail — see DESIGN.md for why
// this implementation discards from the head rather than literally from
// the tail).
func (s *Stream) discardOldestGroup() {
	depth := 0
	for {
		c := s.PopHead()
		if c == nil {
			return
		}
		switch c.Kind() {
		case KindOpen:
			depth++
		case KindClose:
			depth--
		}
		if depth == 0 {
			return
		}
	}
}
