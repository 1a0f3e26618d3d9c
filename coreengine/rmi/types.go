package rmi

import "reflect"

// TypeRef is a serialized-type handle in the input model, decoupled from
// Go reflection so introspection can be driven by hand-built sources or by
// the JSON schema loader. Exactly one of GoType or Remote is populated.
type TypeRef struct {
	// GoType is the value-kind type handle. Populated when Remote is nil.
	GoType reflect.Type
	// Remote points at the nested interface source for a remote-typed
	// parameter or return value. Populated when GoType is nil.
	Remote *InterfaceSource
	// Dimensions is the array rank of the referenced type.
	Dimensions int
}

// Annotations carries the behavioral flags recognized on an input method.
type Annotations struct {
	Asynchronous          bool
	Idempotent            bool
	ResponseTimeoutMillis int64 // -1 means unset
}

// MethodSource describes one method visible on a candidate interface.
type MethodSource struct {
	Name        string
	Return      *TypeRef // nil means void
	Parameters  []TypeRef
	Exceptions  []TypeRef
	Annotations Annotations
}

// InterfaceSource is the reflective view of a candidate remote interface
// supplied by the environment: name, visibility, and a stable ordered list
// of visible methods plus declared supertypes.
type InterfaceSource struct {
	Name          string
	Public        bool
	IsInterface   bool
	ExtendsRemote bool
	Supertypes    []*InterfaceSource
	Methods       []MethodSource
}
