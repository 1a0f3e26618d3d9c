package rmi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterfaceDescriptor_Equal_ShortCircuitsOnIdentifier(t *testing.T) {
	id := newIdentifier()
	a := &InterfaceDescriptor{id: id, name: "Calc", methods: nil}
	b := &InterfaceDescriptor{id: id, name: "Calc", methods: nil}
	assert.True(t, a.Equal(b))

	c := &InterfaceDescriptor{id: newIdentifier(), name: "Calc", methods: nil}
	assert.False(t, a.Equal(c))
}

func TestInterfaceDescriptor_MethodsByName(t *testing.T) {
	m1 := &MethodDescriptor{id: newIdentifier(), name: "add"}
	m2 := &MethodDescriptor{id: newIdentifier(), name: "sub"}
	d := &InterfaceDescriptor{id: newIdentifier(), name: "Calc", methods: []*MethodDescriptor{m1, m2}}

	got := d.MethodsByName("add")
	require.Len(t, got, 1)
	assert.Equal(t, m1, got[0])
}

func TestInterfaceDescriptor_MethodByID_NotFound(t *testing.T) {
	d := &InterfaceDescriptor{id: newIdentifier(), name: "Calc"}
	_, err := d.MethodByID(newIdentifier())
	require.Error(t, err)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestInterfaceDescriptor_FindMethod(t *testing.T) {
	p := intParam()
	m := &MethodDescriptor{id: newIdentifier(), name: "add", parameters: []*ParameterDescriptor{p, p}}
	d := &InterfaceDescriptor{id: newIdentifier(), name: "Calc", methods: []*MethodDescriptor{m}}

	found, err := d.FindMethod("add", paramTypeKey(p), paramTypeKey(p))
	require.NoError(t, err)
	assert.Equal(t, m, found)

	_, err = d.FindMethod("add", paramTypeKey(p))
	assert.Error(t, err)
}
