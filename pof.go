// Package pof provides a compact, self-describing binary serialization
// engine structurally equivalent to Oracle Coherence's Portable Object
// Format: a type-tagged token stream where every value carries enough
// information (or inherits enough from an enclosing uniform container) to
// be decoded without an external schema, while still allowing a decoder
// that knows a type's shape to skip straight to the property it wants.
//
// # Core features
//
//   - Packed variable-length integers for every length, index, and ordinal
//     on the wire, so small streams stay small
//   - Sparse property encoding with index-ordered skip-forward, so a
//     decoder that only wants property 5 never pays to decode 0 through 4
//   - Uniform collections and maps that elide the per-element type tag
//     when every element shares one type
//   - Object identity and back-references for serializing value graphs
//     that share or cycle through instances
//   - Schema evolution: decoding an older or newer version of a user type
//     preserves the properties it doesn't recognize as an opaque remainder
//
// # Basic usage
//
// Writing a stream of values:
//
//	import "github.com/brinewire/pof"
//
//	w, err := pof.NewWriter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Finish()
//
//	w.WriteInt32(0, 42)
//	w.WriteString(1, "hello")
//	data := append([]byte(nil), w.Bytes()...)
//
// Reading it back:
//
//	r, err := pof.NewReader(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	n, _ := r.ReadInt32(0)
//	s, _ := r.ReadString(1)
//
// # Package structure
//
// This package is a thin convenience layer over codec and registry.
// For the full Writer/Reader surface (uniform and sparse collections,
// user types, identity, skip-forward) use the codec package directly;
// for wiring Serializer plug-ins to type ids use the registry package.
package pof

import (
	"github.com/brinewire/pof/codec"
	"github.com/brinewire/pof/registry"
)

// NewWriter creates a Writer with no attached type catalog. Without
// codec.WithWriterCatalog, WriteObject fails with errs.ErrUnsupported
// because no value has a registered type id.
//
// Available options:
//   - codec.WithWriterMaxDepth(n)
//   - codec.WithWriterCatalog(catalog)
//
// Example:
//
//	w, err := pof.NewWriter(codec.WithWriterCatalog(reg))
func NewWriter(opts ...codec.WriterOption) (*codec.Writer, error) {
	return codec.NewWriter(opts...)
}

// NewReader creates a Reader over data with no attached type catalog.
// Without codec.WithReaderCatalog, decoding a user-type value through
// ReadObject fails with errs.ErrUnknownType.
//
// Available options:
//   - codec.WithReaderMaxDepth(n)
//   - codec.WithReaderCatalog(catalog)
//
// Example:
//
//	r, err := pof.NewReader(data, codec.WithReaderCatalog(reg))
func NewReader(data []byte, opts ...codec.ReaderOption) (*codec.Reader, error) {
	return codec.NewReader(data, opts...)
}

// NewWriterWithCatalog is a convenience constructor for the common case of
// a Writer that always needs one fixed catalog, avoiding the
// codec.WithWriterCatalog boilerplate at every call site.
//
// Example:
//
//	reg := registry.New()
//	reg.Register(1001, "com.example.Order", false, Order{}, orderSerializer{})
//	w, err := pof.NewWriterWithCatalog(reg)
func NewWriterWithCatalog(catalog codec.Catalog, opts ...codec.WriterOption) (*codec.Writer, error) {
	return codec.NewWriter(append(opts, codec.WithWriterCatalog(catalog))...)
}

// NewReaderWithCatalog mirrors NewWriterWithCatalog for the read side.
func NewReaderWithCatalog(data []byte, catalog codec.Catalog, opts ...codec.ReaderOption) (*codec.Reader, error) {
	return codec.NewReader(data, append(opts, codec.WithReaderCatalog(catalog))...)
}

// NewRegistry creates an empty TypeRegistry for hosting Serializer
// plug-ins. See registry.Registry.Register for binding a type id to a
// Go type and its Serializer.
func NewRegistry() *registry.Registry {
	return registry.New()
}

// NamedTypeID derives a stable, non-negative type id from a qualified
// name (e.g. "com.example.Order"), for hosts that prefer name-addressed
// types over hand-assigned small integers.
//
// Use this when:
//   - Type ids need to agree across independently-deployed services
//     without a shared integer allocation table
//   - Types are added dynamically and a central registry of integer ids
//     would be one more thing to keep in sync
//
// Example:
//
//	orderTypeID := pof.NamedTypeID("com.example.Order")
//	reg.Register(orderTypeID, "com.example.Order", false, Order{}, orderSerializer{})
func NamedTypeID(qualifiedName string) int32 {
	return registry.NamedTypeID(qualifiedName)
}
