package undo

// inverterFunc reads a source chunk, emits its inverse onto dst (reusing
// the source chunk's label per spec §4.4), and mutates live state back to
// what the chunk encodes. It returns a *Failure (via newFailure/wrapFailure)
// for the non-recoverable error categories of spec §7.
type inverterFunc func(h *History, dst *Stream, c Chunk) error

var inverters = make(map[Kind]inverterFunc)

// registerInverter wires kind's inverter. Called from each codec file's
// init(), mirroring the driver-registration pattern (database/sql-style)
// rather than one central switch statement.
func registerInverter(kind Kind, fn inverterFunc) {
	inverters[kind] = fn
}
