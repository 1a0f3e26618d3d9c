package rmi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityCache_PutIfAbsent_GetRoundTrip(t *testing.T) {
	c := NewIdentityCache()
	src := &InterfaceSource{Name: "Calc"}
	desc := &InterfaceDescriptor{id: newIdentifier(), name: "Calc"}

	published, inserted := c.putIfAbsent(src, desc)
	require.True(t, inserted)
	assert.Same(t, desc, published)

	got, ok := c.get(src)
	require.True(t, ok)
	assert.Same(t, desc, got)
}

func TestIdentityCache_PutIfAbsent_SecondCallNoOp(t *testing.T) {
	c := NewIdentityCache()
	src := &InterfaceSource{Name: "Calc"}
	first := &InterfaceDescriptor{id: newIdentifier(), name: "Calc"}
	second := &InterfaceDescriptor{id: newIdentifier(), name: "Calc"}

	_, inserted := c.putIfAbsent(src, first)
	require.True(t, inserted)

	published, inserted := c.putIfAbsent(src, second)
	assert.False(t, inserted)
	assert.Same(t, first, published)
}

func TestIdentityCache_Remove(t *testing.T) {
	c := NewIdentityCache()
	src := &InterfaceSource{Name: "Calc"}
	desc := &InterfaceDescriptor{id: newIdentifier(), name: "Calc"}
	c.putIfAbsent(src, desc)

	c.remove(src)
	_, ok := c.get(src)
	assert.False(t, ok)

	_, ok = c.descriptorByID(desc.id)
	assert.False(t, ok)
}

func TestIdentityCache_DescriptorByID(t *testing.T) {
	c := NewIdentityCache()
	src := &InterfaceSource{Name: "Calc"}
	desc := &InterfaceDescriptor{id: newIdentifier(), name: "Calc"}
	c.putIfAbsent(src, desc)

	got, ok := c.descriptorByID(desc.id)
	require.True(t, ok)
	assert.Same(t, desc, got)
}

func TestIdentityCache_Counters(t *testing.T) {
	c := NewIdentityCache()
	assert.Equal(t, int64(0), c.ValidateCount())
	assert.Equal(t, int64(0), c.HitCount())

	c.recordValidate()
	c.recordHit()
	c.recordHit()

	assert.Equal(t, int64(1), c.ValidateCount())
	assert.Equal(t, int64(2), c.HitCount())
}
