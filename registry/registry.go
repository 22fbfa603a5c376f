// Package registry provides the default TypeRegistry collaborator of
// spec.md §4.7: a concrete, mutable catalog of user types that a
// codec.Writer or codec.Reader consumes through the codec.Catalog
// interface.
//
// The split mirrors mebo's relationship between its blob encoders and
// internal/collision.Tracker: the format engine (codec) only ever reads
// from a Catalog, while registry owns the mutation surface
// (Register/Unregister) a host application actually calls during startup.
package registry

import (
	"reflect"
	"sync"

	"github.com/brinewire/pof/codec"
	"github.com/brinewire/pof/errs"
	"github.com/brinewire/pof/internal/hash"
)

// entry bundles everything the registry knows about one registered type.
type entry struct {
	descriptor codec.Descriptor
	serializer codec.Serializer
	goType     reflect.Type
}

// Registry is a concrete, mutable implementation of codec.Catalog. It is
// safe for concurrent use: Register/Unregister take a write lock, and the
// codec.Catalog methods Writer/Reader call on the hot path take a read
// lock.
type Registry struct {
	mu      sync.RWMutex
	byID    map[int32]*entry
	byGoType map[reflect.Type]*entry
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		byID:     make(map[int32]*entry),
		byGoType: make(map[reflect.Type]*entry),
	}
}

// NamedTypeID derives a stable, non-negative type id from a qualified
// name (e.g. "com.example.Order"), for hosts that want name-addressed
// types instead of hand-assigned small integers.
func NamedTypeID(qualifiedName string) int32 {
	return hash.QualifiedName(qualifiedName)
}

// Register binds typeID to serializer for encoding/decoding values of
// sampleValue's concrete Go type. It returns errs.ErrDuplicateIdentity if
// typeID is already registered — a registry's type ids are as
// stream-critical as a Writer's object identities, and silently
// overwriting one would let two parts of a program disagree about what a
// given typeID means on the wire.
func (reg *Registry) Register(typeID int32, name string, evolvable bool, sampleValue any, serializer codec.Serializer) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, exists := reg.byID[typeID]; exists {
		return errs.DuplicateIdentity(int64(typeID))
	}

	e := &entry{
		descriptor: codec.Descriptor{TypeID: typeID, Name: name, Evolvable: evolvable},
		serializer: serializer,
		goType:     reflect.TypeOf(sampleValue),
	}

	reg.byID[typeID] = e
	reg.byGoType[e.goType] = e

	return nil
}

// Unregister removes typeID, if present. It is a no-op otherwise.
func (reg *Registry) Unregister(typeID int32) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e, ok := reg.byID[typeID]
	if !ok {
		return
	}

	delete(reg.byID, typeID)
	if reg.byGoType[e.goType] == e {
		delete(reg.byGoType, e.goType)
	}
}

// SerializerFor implements codec.Catalog.
func (reg *Registry) SerializerFor(typeID int32) (codec.Serializer, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	e, ok := reg.byID[typeID]
	if !ok {
		return nil, errs.UnknownType(typeID)
	}

	return e.serializer, nil
}

// TypeIDForValue implements codec.Catalog.
func (reg *Registry) TypeIDForValue(value any) (int32, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	e, ok := reg.byGoType[reflect.TypeOf(value)]
	if !ok {
		return 0, false
	}

	return e.descriptor.TypeID, true
}

// DescriptorFor implements codec.Catalog.
func (reg *Registry) DescriptorFor(typeID int32) (codec.Descriptor, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	e, ok := reg.byID[typeID]
	if !ok {
		return codec.Descriptor{}, false
	}

	return e.descriptor, true
}

// ReferenceEnabled implements codec.Catalog. Evolvable types disable
// identity sharing: see codec.Descriptor's doc comment for why.
func (reg *Registry) ReferenceEnabled(typeID int32) bool {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	e, ok := reg.byID[typeID]
	if !ok {
		return true
	}

	return !e.descriptor.Evolvable
}

var _ codec.Catalog = (*Registry)(nil)
