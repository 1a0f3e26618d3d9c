package rmi

import (
	"runtime"
	"sync"
	"unsafe"
	"weak"
)

// IdentityCache is the process-wide weak-keyed cache of InterfaceDescriptor,
// plus the canonical set for ParameterDescriptor. Both stores share a single
// monitor, matching the Introspector's single-mutex concurrency model.
type IdentityCache struct {
	mu sync.Mutex

	// interfaces is keyed by the address of the *InterfaceSource, not the
	// pointer itself, so the cache never holds a strong reference that
	// would defeat weak eviction; weak.Pointer lets get() confirm the
	// source is still alive before trusting a hit.
	interfaces map[uintptr]*interfaceCacheEntry

	// descriptorsByID supports wire re-resolution of remote-typed
	// ParameterDescriptors: a session that already holds the referenced
	// InterfaceDescriptor can look it up by Identifier alone.
	descriptorsByID map[Identifier]*InterfaceDescriptor

	interner map[paramKey]*ParameterDescriptor

	validateTotal int64
	hitTotal      int64
}

type interfaceCacheEntry struct {
	weak weak.Pointer[InterfaceSource]
	desc *InterfaceDescriptor
}

// NewIdentityCache constructs an empty cache.
func NewIdentityCache() *IdentityCache {
	return &IdentityCache{
		interfaces:      make(map[uintptr]*interfaceCacheEntry),
		descriptorsByID: make(map[Identifier]*InterfaceDescriptor),
		interner:        make(map[paramKey]*ParameterDescriptor),
	}
}

func srcAddr(src *InterfaceSource) uintptr {
	return uintptr(unsafe.Pointer(src))
}

// get returns the cached InterfaceDescriptor for src, if present and the
// source is still the one that published it.
func (c *IdentityCache) get(src *InterfaceSource) (*InterfaceDescriptor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.interfaces[srcAddr(src)]
	if !ok {
		return nil, false
	}
	if entry.weak.Value() != src {
		// A different allocation landed at the same address after the
		// original source was collected; treat as a miss.
		delete(c.interfaces, srcAddr(src))
		return nil, false
	}
	return entry.desc, true
}

// putIfAbsent installs desc for src unless an entry already exists, and
// registers a cleanup so the entry is evicted once src becomes unreachable.
func (c *IdentityCache) putIfAbsent(src *InterfaceSource, desc *InterfaceDescriptor) (*InterfaceDescriptor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := srcAddr(src)
	if entry, ok := c.interfaces[key]; ok && entry.weak.Value() == src {
		return entry.desc, false
	}
	entry := &interfaceCacheEntry{weak: weak.Make(src), desc: desc}
	c.interfaces[key] = entry
	c.descriptorsByID[desc.id] = desc
	runtime.AddCleanup(src, func(k uintptr) {
		c.mu.Lock()
		defer c.mu.Unlock()
		// The address at k may have been reused by a new InterfaceSource
		// (with its own entry installed by putIfAbsent) between src becoming
		// unreachable and this cleanup running. Only remove the entry this
		// cleanup actually owns, identified by struct identity, so a
		// still-live entry for the new occupant is never evicted out from
		// under it.
		if c.interfaces[k] == entry {
			delete(c.interfaces, k)
		}
	}, key)
	return desc, true
}

// remove evicts src's entry, used when resolve fails after publication.
func (c *IdentityCache) remove(src *InterfaceSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := srcAddr(src)
	if entry, ok := c.interfaces[key]; ok {
		delete(c.descriptorsByID, entry.desc.id)
		delete(c.interfaces, key)
	}
}

// descriptorByID looks up a previously published InterfaceDescriptor by
// Identifier, used by ParameterDescriptor.UnmarshalJSON's re-resolution of
// remote-typed wire values.
func (c *IdentityCache) descriptorByID(id Identifier) (*InterfaceDescriptor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.descriptorsByID[id]
	return d, ok
}

// internParameter returns the canonical instance for p, constructing the
// entry on first sight.
func (c *IdentityCache) internParameter(p *ParameterDescriptor) *ParameterDescriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := p.key()
	if existing, ok := c.interner[k]; ok {
		return existing
	}
	c.interner[k] = p
	return p
}

func (c *IdentityCache) recordValidate() {
	c.mu.Lock()
	c.validateTotal++
	c.mu.Unlock()
}

func (c *IdentityCache) recordHit() {
	c.mu.Lock()
	c.hitTotal++
	c.mu.Unlock()
}

// ValidateCount returns the number of times a candidate interface has been
// fully validated (as opposed to served from cache), the injectable counter
// the caching invariant asks for.
func (c *IdentityCache) ValidateCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateTotal
}

// HitCount returns the number of Examine calls served from the cache.
func (c *IdentityCache) HitCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hitTotal
}
