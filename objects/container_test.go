package objects_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/sprite-undo/objects"
)

func TestContainer_AddIsIdempotent(t *testing.T) {
	c := objects.New()
	type thing struct{ n int }
	obj := &thing{n: 1}

	id1 := c.Add(obj)
	id2 := c.Add(obj)
	assert.Equal(t, id1, id2)

	got, ok := objects.Get[*thing](c, id1)
	require.True(t, ok)
	assert.Same(t, obj, got)
}

func TestContainer_AddNilReturnsZero(t *testing.T) {
	c := objects.New()
	assert.Equal(t, objects.ID(0), c.Add(nil))
}

func TestContainer_RemoveThenLookupFails(t *testing.T) {
	c := objects.New()
	type thing struct{ n int }
	obj := &thing{n: 1}
	id := c.Add(obj)

	c.Remove(id)

	_, ok := objects.Get[*thing](c, id)
	assert.False(t, ok)
}

func TestContainer_InsertReattachesRemovedID(t *testing.T) {
	c := objects.New()
	type thing struct{ n int }
	first := &thing{n: 1}
	id := c.Add(first)
	c.Remove(id)

	second := &thing{n: 2}
	c.Insert(id, second)

	got, ok := objects.Get[*thing](c, id)
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestContainer_GetWrongTypeFails(t *testing.T) {
	c := objects.New()
	type a struct{}
	type b struct{}
	id := c.Add(&a{})

	_, ok := objects.Get[*b](c, id)
	assert.False(t, ok)
}

func TestContainer_InsertExtendsNextID(t *testing.T) {
	c := objects.New()
	type thing struct{ n int }
	c.Insert(100, &thing{n: 1})

	next := c.Add(&thing{n: 2})
	assert.Greater(t, next, objects.ID(100))
}
