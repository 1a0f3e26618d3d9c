package rmi

import (
	"reflect"
	"sync"
)

// typeRegistry maps a type's wire name back to its reflect.Type so that
// ParameterDescriptor.UnmarshalJSON can reconstruct value-kind descriptors
// without requiring the receiving process to already hold a Go value of
// that type. Built-in primitives are registered at init; callers (notably
// the JSON schema loader) register their own domain types.
var (
	typeRegistryMu sync.RWMutex
	typeRegistry   = map[string]reflect.Type{}
)

// RegisterType makes a Go type resolvable by its reflect.Type.String() wire
// name during ParameterDescriptor deserialization.
func RegisterType(t reflect.Type) {
	typeRegistryMu.Lock()
	defer typeRegistryMu.Unlock()
	typeRegistry[t.String()] = t
}

func typeByName(name string) (reflect.Type, bool) {
	typeRegistryMu.RLock()
	defer typeRegistryMu.RUnlock()
	t, ok := typeRegistry[name]
	return t, ok
}

// LookupRegisteredType exposes typeByName to callers outside the package,
// such as the JSON schema loader, that need to turn a wire type name back
// into a reflect.Type before building a TypeRef.
func LookupRegisteredType(name string) (reflect.Type, bool) {
	return typeByName(name)
}

func init() {
	for _, v := range []any{
		bool(false), int(0), int8(0), int16(0), int32(0), int64(0),
		uint(0), uint8(0), uint16(0), uint32(0), uint64(0),
		float32(0), float64(0), string(""),
	} {
		RegisterType(reflect.TypeOf(v))
	}
}
