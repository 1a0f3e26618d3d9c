package rmi

import (
	"encoding/json"
	"reflect"
)

// Kind classifies a ParameterDescriptor as pass-by-value serialized or
// pass-by-reference remote.
type Kind int

const (
	// KindValue carries a serialized-type handle.
	KindValue Kind = iota
	// KindRemote carries a reference to an InterfaceDescriptor.
	KindRemote
)

func (k Kind) String() string {
	if k == KindRemote {
		return "remote"
	}
	return "value"
}

// ParameterDescriptor represents a single parameter, return, or exception
// type: classified as serialized-value or remote-reference, with array rank
// and sharing flag. Instances are immutable and canonically interned; two
// ParameterDescriptors built from equal fields are the same pointer once
// interned.
type ParameterDescriptor struct {
	kind       Kind
	dimensions int
	unshared   bool
	goType     reflect.Type         // populated when kind == KindValue
	remoteType *InterfaceDescriptor // populated when kind == KindRemote and resolved

	// pendingSrc holds the nested interface source for a KindRemote
	// parameter that has not yet been resolved. Never populated on an
	// interned, published descriptor.
	pendingSrc *InterfaceSource
}

// IsRemote reports whether this descriptor carries a remote reference.
func (p *ParameterDescriptor) IsRemote() bool {
	return p.kind == KindRemote
}

// RemoteType returns the referenced InterfaceDescriptor, if this descriptor
// is a resolved remote reference.
func (p *ParameterDescriptor) RemoteType() (*InterfaceDescriptor, bool) {
	if p.kind != KindRemote || p.remoteType == nil {
		return nil, false
	}
	return p.remoteType, true
}

// SerializedType returns the value-kind type handle, if this descriptor is
// a value.
func (p *ParameterDescriptor) SerializedType() (reflect.Type, bool) {
	if p.kind != KindValue {
		return nil, false
	}
	return p.goType, true
}

// ArrayRank returns the array rank of the described type.
func (p *ParameterDescriptor) ArrayRank() int {
	return p.dimensions
}

// IsUnshared reports whether this value will be serialized without
// reference-sharing tracking.
func (p *ParameterDescriptor) IsUnshared() bool {
	return p.unshared
}

// withUnshared returns an uninterned copy carrying the requested flag;
// callers must intern the result through the owning cache to obtain the
// canonical instance.
func (p *ParameterDescriptor) withUnshared(unshared bool) *ParameterDescriptor {
	cp := *p
	cp.unshared = unshared
	return &cp
}

// key derives the comparable projection used by the canonical interner.
func (p *ParameterDescriptor) key() paramKey {
	k := paramKey{kind: p.kind, dimensions: p.dimensions, unshared: p.unshared}
	if p.kind == KindRemote {
		if p.remoteType != nil {
			k.typeKey = p.remoteType.id.String()
		}
	} else if p.goType != nil {
		k.typeKey = p.goType.String()
	}
	return k
}

// sameSerializedType reports whether a and b describe the same underlying
// type, ignoring dimensions and sharing flag. Used by the unshared sweep's
// duplicate-type scan.
func sameSerializedType(a, b *ParameterDescriptor) bool {
	if a.kind != b.kind {
		return false
	}
	if a.kind == KindRemote {
		return a.remoteType != nil && b.remoteType != nil && a.remoteType.id.Equal(b.remoteType.id)
	}
	return a.goType == b.goType
}

type paramKey struct {
	kind       Kind
	dimensions int
	unshared   bool
	typeKey    string
}

// wireParameterDescriptor is the JSON wire form of ParameterDescriptor.
type wireParameterDescriptor struct {
	Kind        string `json:"kind"`
	TypeName    string `json:"type_name,omitempty"`
	RemoteName  string `json:"remote_name,omitempty"`
	RemoteID    string `json:"remote_id,omitempty"`
	Dimensions  int    `json:"dimensions"`
	Unshared    bool   `json:"unshared"`
}

// MarshalJSON implements json.Marshaler.
func (p *ParameterDescriptor) MarshalJSON() ([]byte, error) {
	w := wireParameterDescriptor{
		Kind:       p.kind.String(),
		Dimensions: p.dimensions,
		Unshared:   p.unshared,
	}
	if p.kind == KindRemote && p.remoteType != nil {
		w.RemoteName = p.remoteType.name
		w.RemoteID = p.remoteType.id.String()
	} else if p.goType != nil {
		w.TypeName = p.goType.String()
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler. A remote-kind wire value is
// re-resolved against the default context's published InterfaceDescriptors
// by Identifier; this is the readResolve-equivalent path, so it only
// succeeds for interfaces the receiving process has already examined. A
// value-kind wire value is reconstructed from the type registry and
// canonically interned.
func (p *ParameterDescriptor) UnmarshalJSON(data []byte) error {
	var w wireParameterDescriptor
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	cp := &ParameterDescriptor{dimensions: w.Dimensions, unshared: w.Unshared}
	switch w.Kind {
	case "remote":
		var id Identifier
		if err := json.Unmarshal([]byte(`"`+w.RemoteID+`"`), &id); err != nil {
			return err
		}
		desc, ok := defaultContext.cache.descriptorByID(id)
		if !ok {
			return NewNotFoundError("interface", w.RemoteName)
		}
		cp.kind = KindRemote
		cp.remoteType = desc
	default:
		t, ok := typeByName(w.TypeName)
		if !ok {
			return NewNotFoundError("type", w.TypeName)
		}
		cp.kind = KindValue
		cp.goType = t
	}
	*p = *defaultContext.cache.internParameter(cp)
	return nil
}
