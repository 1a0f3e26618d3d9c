package rmi

import "sync"

// InterfaceDescriptor aggregates all methods of one interface; indexed by
// name and by method-ID. Immutable and serializable once resolve returns.
type InterfaceDescriptor struct {
	id      Identifier
	name    string
	methods []*MethodDescriptor // first-seen order, preserved across equality

	indexOnce sync.Once
	byName    map[string][]*MethodDescriptor
	byID      map[Identifier]*MethodDescriptor
}

// ID returns the descriptor's Identifier.
func (d *InterfaceDescriptor) ID() Identifier { return d.id }

// Name returns the fully qualified textual name of the source interface.
func (d *InterfaceDescriptor) Name() string { return d.name }

// Methods returns the method list in first-seen order.
func (d *InterfaceDescriptor) Methods() []*MethodDescriptor {
	return append([]*MethodDescriptor(nil), d.methods...)
}

// Equal reports whether two InterfaceDescriptors are the same descriptor.
// Comparison short-circuits on Identifier, which is assigned once per
// introspection, so the recursion implied by cyclic method graphs never
// has to perform a structural comparison.
func (d *InterfaceDescriptor) Equal(other *InterfaceDescriptor) bool {
	if d == other {
		return true
	}
	if d == nil || other == nil {
		return false
	}
	return d.id.Equal(other.id) && d.name == other.name && len(d.methods) == len(other.methods)
}

func (d *InterfaceDescriptor) buildIndices() {
	d.indexOnce.Do(func() {
		byName := make(map[string][]*MethodDescriptor, len(d.methods))
		byID := make(map[Identifier]*MethodDescriptor, len(d.methods))
		for _, m := range d.methods {
			byName[m.name] = append(byName[m.name], m)
			byID[m.id] = m
		}
		d.byName = byName
		d.byID = byID
	})
}

// MethodsByName returns every method with the given name.
func (d *InterfaceDescriptor) MethodsByName(name string) []*MethodDescriptor {
	d.buildIndices()
	return append([]*MethodDescriptor(nil), d.byName[name]...)
}

// MethodByID looks up a method by its Identifier.
func (d *InterfaceDescriptor) MethodByID(id Identifier) (*MethodDescriptor, error) {
	d.buildIndices()
	m, ok := d.byID[id]
	if !ok {
		return nil, NewNotFoundError("method", id.String())
	}
	return m, nil
}

// FindMethod matches by exact, order-sensitive parameter-type equality
// against value-kind parameter types. Remote-typed parameters are matched
// by the referenced interface's name.
func (d *InterfaceDescriptor) FindMethod(name string, paramTypeNames ...string) (*MethodDescriptor, error) {
	for _, m := range d.MethodsByName(name) {
		if len(m.parameters) != len(paramTypeNames) {
			continue
		}
		match := true
		for i, p := range m.parameters {
			if paramTypeKey(p) != paramTypeNames[i] {
				match = false
				break
			}
		}
		if match {
			return m, nil
		}
	}
	return nil, NewNotFoundError("method", name)
}
