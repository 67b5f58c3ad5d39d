// Package objects implements the ObjectsContainer collaborator: a
// bidirectional map between live document objects and stable ObjectIds.
// Add never hands out an id twice, and a removed id fails lookup until
// Insert reattaches an object to it.
package objects

import (
	"github.com/anyproto/sprite-undo/logging"
)

var log = logging.Logger("objects")

// ID is a stable numeric handle. The zero value means "no object".
type ID uint32

type slot struct {
	obj        any
	generation uint32
	occupied   bool
}

// Container is the ObjectsContainer of spec §6.1. It is not safe for
// concurrent use; the engine it serves is single-threaded by design.
type Container struct {
	slots  map[ID]*slot
	byObj  map[any]ID
	nextID ID
}

// New returns an empty container.
func New() *Container {
	return &Container{
		slots: make(map[ID]*slot),
		byObj: make(map[any]ID),
	}
}

// Add registers obj and returns its id. Calling Add again with the same
// obj (compared by identity) returns the existing id — idempotent per
// spec §3.
func (c *Container) Add(obj any) ID {
	if obj == nil {
		return 0
	}
	if id, ok := c.byObj[obj]; ok {
		return id
	}
	c.nextID++
	id := c.nextID
	c.slots[id] = &slot{obj: obj, occupied: true}
	c.byObj[obj] = id
	return id
}

// Insert reattaches obj at a known id, used when an inverter recreates an
// object that was previously removed. It bumps the slot's generation
// counter, but an ID carries no generation and lookups do not consult it:
// an id captured before the remove resolves to the reinserted object.
func (c *Container) Insert(id ID, obj any) {
	if id == 0 || obj == nil {
		return
	}
	s, ok := c.slots[id]
	if !ok {
		s = &slot{}
		c.slots[id] = s
	}
	s.generation++
	s.obj = obj
	s.occupied = true
	c.byObj[obj] = id
	if id >= c.nextID {
		c.nextID = id
	}
}

// Remove detaches id from the container. The slot itself is retained (to
// keep the generation counter alive) but is marked unoccupied so Get fails.
func (c *Container) Remove(id ID) {
	s, ok := c.slots[id]
	if !ok {
		return
	}
	if s.obj != nil {
		delete(c.byObj, s.obj)
	}
	s.obj = nil
	s.occupied = false
}

func (c *Container) get(id ID) (any, bool) {
	if id == 0 {
		return nil, false
	}
	s, ok := c.slots[id]
	if !ok || !s.occupied {
		log.Debugw("stale object lookup", "id", id)
		return nil, false
	}
	return s.obj, true
}

// Get returns id's live object typed as T, or the zero value and false if
// the id is unknown, was removed, or holds a different type.
func Get[T any](c *Container, id ID) (T, bool) {
	var zero T
	v, ok := c.get(id)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
