package rmi

import (
	"reflect"
	"strings"
)

// MethodDescriptor represents one remote method: name, ID, return,
// parameters, thrown set, behavioral flags, response timeout. Immutable
// after the owning InterfaceDescriptor's resolve pass completes.
type MethodDescriptor struct {
	id                    Identifier
	name                  string
	ret                   *ParameterDescriptor // nil == void
	parameters            []*ParameterDescriptor
	exceptions            []*ParameterDescriptor
	asynchronous          bool
	idempotent            bool
	responseTimeoutMillis int64
}

// ID returns the method's Identifier.
func (m *MethodDescriptor) ID() Identifier { return m.id }

// Name returns the method name.
func (m *MethodDescriptor) Name() string { return m.name }

// Return returns the return ParameterDescriptor, or nil for void.
func (m *MethodDescriptor) Return() *ParameterDescriptor { return m.ret }

// Parameters returns the ordered parameter list.
func (m *MethodDescriptor) Parameters() []*ParameterDescriptor {
	return append([]*ParameterDescriptor(nil), m.parameters...)
}

// Exceptions returns the declared exception set.
func (m *MethodDescriptor) Exceptions() []*ParameterDescriptor {
	return append([]*ParameterDescriptor(nil), m.exceptions...)
}

// Asynchronous reports the asynchronous flag.
func (m *MethodDescriptor) Asynchronous() bool { return m.asynchronous }

// Idempotent reports the idempotent flag.
func (m *MethodDescriptor) Idempotent() bool { return m.idempotent }

// ResponseTimeoutMillis returns the response timeout in milliseconds, or -1
// if unset.
func (m *MethodDescriptor) ResponseTimeoutMillis() int64 { return m.responseTimeoutMillis }

// DeclaresException reports whether some declared exception type is a
// supertype of t, including equality.
func (m *MethodDescriptor) DeclaresException(t reflect.Type) bool {
	for _, e := range m.exceptions {
		if gt, ok := e.SerializedType(); ok && isSupertypeOrEqual(gt, t) {
			return true
		}
	}
	return false
}

// SignatureString renders "<return> [className.]name(param, …) throws exc, …".
func (m *MethodDescriptor) SignatureString(className string) string {
	var b strings.Builder
	if m.ret != nil {
		b.WriteString(typeDisplayName(m.ret))
	} else {
		b.WriteString("void")
	}
	b.WriteString(" ")
	if className != "" {
		b.WriteString(className)
		b.WriteString(".")
	}
	b.WriteString(m.name)
	b.WriteString("(")
	for i, p := range m.parameters {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(typeDisplayName(p))
	}
	b.WriteString(")")
	if len(m.exceptions) > 0 {
		b.WriteString(" throws ")
		for i, e := range m.exceptions {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(typeDisplayName(e))
		}
	}
	return b.String()
}

func typeDisplayName(p *ParameterDescriptor) string {
	var base string
	if rt, ok := p.RemoteType(); ok {
		base = rt.Name()
	} else if gt, ok := p.SerializedType(); ok {
		base = gt.String()
	} else {
		base = "?"
	}
	return base + strings.Repeat("[]", p.ArrayRank())
}

// methodKey derives the (name, full signature) accumulation key used while
// merging inherited method declarations.
func methodKey(m *MethodDescriptor) string {
	var b strings.Builder
	b.WriteString(m.name)
	b.WriteString("(")
	for i, p := range m.parameters {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(paramTypeKey(p))
	}
	b.WriteString(")")
	if m.ret != nil {
		b.WriteString(paramTypeKey(m.ret))
	} else {
		b.WriteString("void")
	}
	return b.String()
}

func paramTypeKey(p *ParameterDescriptor) string {
	if p.pendingSrc != nil {
		return "remote:" + p.pendingSrc.Name
	}
	if rt, ok := p.RemoteType(); ok {
		return "remote:" + rt.Name()
	}
	if gt, ok := p.SerializedType(); ok {
		return "value:" + gt.String()
	}
	return "?"
}

// sameParameterTypes reports whether two parameter lists describe the same
// ordered sequence of types (ignoring sharing flags), used by intersect's
// signature-agreement precondition.
func sameParameterTypes(a, b []*ParameterDescriptor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if paramTypeKey(a[i]) != paramTypeKey(b[i]) || a[i].ArrayRank() != b[i].ArrayRank() {
			return false
		}
	}
	return true
}

func sameReturnType(a, b *ParameterDescriptor) bool {
	if a == nil || b == nil {
		return a == b
	}
	return paramTypeKey(a) == paramTypeKey(b) && a.ArrayRank() == b.ArrayRank()
}

// intersectMethodDescriptors merges two MethodDescriptors accumulated under
// the same (name, signature) key from distinct parent interfaces. It
// retains the first-seen identifier, name, return, and parameters, and sets
// exceptions to the mutual intersection of both throws sets.
func intersectMethodDescriptors(a, b *MethodDescriptor) (*MethodDescriptor, error) {
	if !sameParameterTypes(a.parameters, b.parameters) || !sameReturnType(a.ret, b.ret) {
		return nil, NewMalformedInterfaceError("", a.name, "conflicting signature for inherited method")
	}
	if a.asynchronous != b.asynchronous {
		return nil, NewMalformedInterfaceError("", a.name, "conflicting 'asynchronous' annotation for inherited method")
	}
	if a.idempotent != b.idempotent {
		return nil, NewMalformedInterfaceError("", a.name, "conflicting 'idempotent' annotation for inherited method")
	}
	if a.responseTimeoutMillis != b.responseTimeoutMillis {
		return nil, NewMalformedInterfaceError("", a.name, "conflicting 'responseTimeout' annotation for inherited method")
	}
	return &MethodDescriptor{
		id:                    a.id,
		name:                  a.name,
		ret:                   a.ret,
		parameters:            a.parameters,
		exceptions:            intersectExceptions(a, b),
		asynchronous:          a.asynchronous,
		idempotent:            a.idempotent,
		responseTimeoutMillis: a.responseTimeoutMillis,
	}, nil
}

// intersectExceptions keeps e from the union of a's and b's exceptions only
// when both sides declare e or a supertype of it.
func intersectExceptions(a, b *MethodDescriptor) []*ParameterDescriptor {
	seen := map[reflect.Type]bool{}
	var union []*ParameterDescriptor
	for _, e := range append(append([]*ParameterDescriptor(nil), a.exceptions...), b.exceptions...) {
		gt, ok := e.SerializedType()
		if !ok || seen[gt] {
			continue
		}
		seen[gt] = true
		union = append(union, e)
	}
	var result []*ParameterDescriptor
	for _, e := range union {
		gt, _ := e.SerializedType()
		if a.DeclaresException(gt) && b.DeclaresException(gt) {
			result = append(result, e)
		}
	}
	return result
}
