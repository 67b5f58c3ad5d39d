package undo

func init() {
	registerInverter(KindOpen, invertOpen)
	registerInverter(KindClose, invertClose)
}

// invertOpen emits a CLOSE using the source chunk's label (spec §4.2:
// OPEN inverts to CLOSE). Group markers carry no payload and never touch
// live state.
func invertOpen(h *History, dst *Stream, c Chunk) error {
	dst.Push(buildChunk(KindClose, c.Label(), nil))
	return nil
}

// invertClose emits an OPEN using the source chunk's label.
func invertClose(h *History, dst *Stream, c Chunk) error {
	dst.Push(buildChunk(KindOpen, c.Label(), nil))
	return nil
}
