// Package codec is the format engine: Writer (the event-driven
// WritingHandler of spec.md §4.2), Reader (the pull API with property
// cursor of §4.3-4.6), the skip-forward routine (§4.5), and the coercion
// table (§4.4).
//
// Structure and idiom are carried over from mebo's blob package — a
// config-embedding encoder/decoder pair with explicit offset/length state
// — generalized from mebo's fixed columnar layout to this format's
// recursive, self-describing token stream.
package codec

import "github.com/brinewire/pof/errs"

// Descriptor is the per-user-type metadata a Catalog exposes: its
// registered id, a diagnostic name, and whether it is evolvable.
//
// Evolvable types preserve unknown trailing properties via
// Reader.Remainder (§4.6) across a decode/re-encode round trip. A
// reference to an evolvable object observed from two points in the graph
// could disagree on which remainder bytes it carries depending on decode
// order, so Catalog.ReferenceEnabled reports false for evolvable types.
// Writer and Reader do not consult ReferenceEnabled: an identity written
// for an evolvable value is encoded and resolved like any other.
type Descriptor struct {
	TypeID    int32
	Name      string
	Evolvable bool
}

// Serializer encodes and decodes the body of one user type, in ascending
// property-index order, the way mebo's per-format encoder/decoder pairs
// (NumericEncoder/NumericDecoder, TextEncoder/TextDecoder) each own one
// wire shape end to end.
type Serializer interface {
	// Encode writes value's properties into w, which is already
	// positioned inside an open user-type frame (see Writer.BeginUserType).
	Encode(w *Writer, value any) error

	// Decode reads a value's properties from r, which is already
	// positioned inside the user-type's frame at the given version id.
	// Reader.Remainder lets a Decode written against an older
	// version preserve bytes from a newer one.
	Decode(r *Reader, version int32) (any, error)
}

// Catalog is the consumed half of the TypeRegistry collaborator interface
// from spec.md §4.7 — everything Reader and Writer need to dispatch user
// types. The mutation half (Register/Unregister) belongs to whichever
// concrete registry a host wires in; see package registry for the default
// implementation.
type Catalog interface {
	// SerializerFor returns the serializer registered for typeID.
	SerializerFor(typeID int32) (Serializer, error)

	// TypeIDForValue returns the type id a concrete Go value should be
	// encoded as.
	TypeIDForValue(value any) (int32, bool)

	// DescriptorFor returns the descriptor registered for typeID.
	DescriptorFor(typeID int32) (Descriptor, bool)

	// ReferenceEnabled reports whether values of typeID may be shared via
	// T_IDENTITY/T_REFERENCE. False for evolvable types (see Descriptor).
	ReferenceEnabled(typeID int32) bool
}

// emptyCatalog is used when a stream contains no user types, so Reader and
// Writer never need a nil check on the hot path.
type emptyCatalog struct{}

func (emptyCatalog) SerializerFor(typeID int32) (Serializer, error) {
	return nil, errs.UnknownType(typeID)
}

func (emptyCatalog) TypeIDForValue(value any) (int32, bool) { return 0, false }
func (emptyCatalog) DescriptorFor(typeID int32) (Descriptor, bool) {
	return Descriptor{}, false
}
func (emptyCatalog) ReferenceEnabled(typeID int32) bool { return true }
