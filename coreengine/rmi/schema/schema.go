// Package schema builds rmi.InterfaceSource values from declarative JSON
// documents, so a candidate interface can be introspected without a caller
// hand-constructing a Go InterfaceSource.
package schema

import (
	"fmt"

	"github.com/jeeves-cluster-organization/rmi-introspector/coreengine/rmi"
	"github.com/jeeves-cluster-organization/rmi-introspector/coreengine/typeutil"
)

// Document is the top-level decoded JSON shape: one named interface plus
// its supertypes and methods.
//
//	{
//	  "name": "Calculator",
//	  "public": true,
//	  "extendsRemote": true,
//	  "supertypes": ["Base", {"name": "Other", "methods": [...]}],
//	  "methods": [
//	    {"name": "add", "parameters": ["int", "int"], "return": "int",
//	     "exceptions": ["*rmi.RemoteCallFailure"], "asynchronous": false,
//	     "idempotent": true, "responseTimeoutMillis": -1},
//	    {"name": "next", "parameters": [{"type": "remote", "ref": "Calculator"}]}
//	  ]
//	}
//
// A parameter/return/exception entry is either a plain value-type name
// (resolved through rmi.RegisterType's registry) or a remote-type object of
// the form {"type": "remote", "ref": "<name>", "dimensions": n}, where ref
// names an interface either already under construction in the same Load
// call (supporting self- and mutually-referential schemas) or present in
// the supplied Registry. A "supertypes" entry is either an interface name,
// looked up the same way as ref, or an inline interface document.
type Document = map[string]any

// Registry maps an interface name to the Document that defines it, letting
// "ref" entries name an interface declared elsewhere instead of inlining it.
type Registry map[string]Document

// Load decodes a top-level document into an InterfaceSource, recursively
// decoding nested "supertypes" entries and resolving remote-type references
// against registry. registry may be nil if every reference is either
// inlined or self-referential.
func Load(doc Document, registry Registry) (*rmi.InterfaceSource, error) {
	l := &loader{registry: registry, building: map[string]*rmi.InterfaceSource{}}
	return l.loadSource(doc)
}

// loader tracks interface sources under construction so a remote-type
// reference naming an interface still being decoded - including the
// interface's own name - resolves to the same InterfaceSource pointer
// instead of recursing forever or missing because it isn't published yet.
type loader struct {
	registry Registry
	building map[string]*rmi.InterfaceSource
}

func (l *loader) loadSource(doc Document) (*rmi.InterfaceSource, error) {
	name, ok := typeutil.SafeString(doc["name"])
	if !ok || name == "" {
		return nil, fmt.Errorf("schema: interface document missing \"name\"")
	}
	if existing, ok := l.building[name]; ok {
		return existing, nil
	}

	src := &rmi.InterfaceSource{
		Name:          name,
		Public:        typeutil.SafeBoolDefault(doc["public"], true),
		IsInterface:   typeutil.SafeBoolDefault(doc["isInterface"], true),
		ExtendsRemote: typeutil.SafeBoolDefault(doc["extendsRemote"], true),
	}
	l.building[name] = src

	if rawSupers, ok := typeutil.SafeSlice(doc["supertypes"]); ok {
		for _, raw := range rawSupers {
			super, err := l.resolveInterfaceRef(name, raw)
			if err != nil {
				return nil, err
			}
			src.Supertypes = append(src.Supertypes, super)
		}
	}

	rawMethods, _ := typeutil.SafeSlice(doc["methods"])
	for _, raw := range rawMethods {
		methodDoc, ok := typeutil.SafeMapStringAny(raw)
		if !ok {
			return nil, fmt.Errorf("schema: %s: methods entries must be objects", name)
		}
		method, err := l.loadMethod(name, methodDoc)
		if err != nil {
			return nil, err
		}
		src.Methods = append(src.Methods, method)
	}

	return src, nil
}

// resolveInterfaceRef resolves one "supertypes" entry: either an inline
// document or a name looked up against the in-progress build or registry.
func (l *loader) resolveInterfaceRef(ownerName string, raw any) (*rmi.InterfaceSource, error) {
	if name, ok := typeutil.SafeString(raw); ok {
		return l.loadNamed(ownerName, name)
	}
	doc, ok := typeutil.SafeMapStringAny(raw)
	if !ok {
		return nil, fmt.Errorf("schema: %s: supertypes entries must be an object or a registry name", ownerName)
	}
	return l.loadSource(doc)
}

// loadNamed resolves name against interfaces already under construction
// before falling back to registry, so a self-referential ref resolves to
// the same pointer rather than triggering a registry lookup for itself.
func (l *loader) loadNamed(ownerName, name string) (*rmi.InterfaceSource, error) {
	if src, ok := l.building[name]; ok {
		return src, nil
	}
	doc, ok := l.registry[name]
	if !ok {
		return nil, fmt.Errorf("schema: %s: no registry entry for interface %q", ownerName, name)
	}
	return l.loadSource(doc)
}

func (l *loader) loadMethod(ownerName string, doc Document) (rmi.MethodSource, error) {
	name, ok := typeutil.SafeString(doc["name"])
	if !ok || name == "" {
		return rmi.MethodSource{}, fmt.Errorf("schema: %s: method document missing \"name\"", ownerName)
	}

	ms := rmi.MethodSource{
		Name: name,
		Annotations: rmi.Annotations{
			Asynchronous:          typeutil.SafeBoolDefault(doc["asynchronous"], false),
			Idempotent:            typeutil.SafeBoolDefault(doc["idempotent"], false),
			ResponseTimeoutMillis: int64(typeutil.SafeIntDefault(doc["responseTimeoutMillis"], -1)),
		},
	}

	if rawParams, ok := typeutil.SafeSlice(doc["parameters"]); ok {
		for _, raw := range rawParams {
			ref, err := l.resolveTypeRef(ownerName, raw)
			if err != nil {
				return rmi.MethodSource{}, err
			}
			ms.Parameters = append(ms.Parameters, ref)
		}
	}

	if rawRet, ok := doc["return"]; ok && rawRet != nil && rawRet != "" {
		ref, err := l.resolveTypeRef(ownerName, rawRet)
		if err != nil {
			return rmi.MethodSource{}, err
		}
		ms.Return = &ref
	}

	if rawExc, ok := typeutil.SafeSlice(doc["exceptions"]); ok {
		for _, raw := range rawExc {
			ref, err := l.resolveTypeRef(ownerName, raw)
			if err != nil {
				return rmi.MethodSource{}, err
			}
			ms.Exceptions = append(ms.Exceptions, ref)
		}
	}

	return ms, nil
}

// resolveTypeRef resolves one parameter/return/exception entry. A plain
// string names a registered value type. An object of the form
// {"type": "remote", "ref": "<interface name>", "dimensions": n} names a
// remote-typed reference, resolved against interfaces already under
// construction (supporting self-reference) or the registry.
func (l *loader) resolveTypeRef(ownerName string, raw any) (rmi.TypeRef, error) {
	if typeName, ok := typeutil.SafeString(raw); ok {
		t, ok := rmi.LookupRegisteredType(typeName)
		if !ok {
			return rmi.TypeRef{}, fmt.Errorf("schema: %s: unregistered type %q; call rmi.RegisterType first", ownerName, typeName)
		}
		return rmi.TypeRef{GoType: t}, nil
	}

	doc, ok := typeutil.SafeMapStringAny(raw)
	if !ok {
		return rmi.TypeRef{}, fmt.Errorf("schema: %s: parameter entries must be a type name or a remote-type object", ownerName)
	}
	kind, _ := typeutil.SafeString(doc["type"])
	if kind != "remote" {
		return rmi.TypeRef{}, fmt.Errorf("schema: %s: unsupported parameter object kind %q", ownerName, kind)
	}
	refName, ok := typeutil.SafeString(doc["ref"])
	if !ok || refName == "" {
		return rmi.TypeRef{}, fmt.Errorf("schema: %s: remote-type entry missing \"ref\"", ownerName)
	}
	nested, err := l.loadNamed(ownerName, refName)
	if err != nil {
		return rmi.TypeRef{}, err
	}
	return rmi.TypeRef{Remote: nested, Dimensions: typeutil.SafeIntDefault(doc["dimensions"], 0)}, nil
}
