package codec

import (
	"iter"
	"math"
	"math/big"
	"unicode/utf8"

	"github.com/brinewire/pof/endian"
	"github.com/brinewire/pof/errs"
	"github.com/brinewire/pof/format"
	"github.com/brinewire/pof/internal/identity"
	"github.com/brinewire/pof/internal/options"
	"github.com/brinewire/pof/raw"
	"github.com/brinewire/pof/varint"
)

// readFrame tracks one open complex value on the decode side, the mirror
// of Writer's complexFrame.
type readFrame struct {
	kind    format.Tag
	sparse  bool
	uniform bool
	elemTag format.Tag

	isMap      bool
	isUniformK bool
	isUniformV bool
	keyTag     format.Tag
	valTag     format.Tag
	awaitValue bool

	count    int32 // declared length; -1 for degenerate frames
	consumed int32 // elements read so far (dense) or map entries read (pairs)
	lastPos  int32 // last property/element index accepted (sparse); starts at -1
	done     bool  // sparse: the -1 terminator has been consumed
	degenerate bool
}

// Reader is the pull-API ReadingHandler of spec.md §4.3: a caller asks for
// properties/elements by position, in strictly increasing order, and the
// Reader advances through the stream's sparse index tokens on its behalf,
// skipping whatever the caller doesn't ask for.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	data []byte
	pos  int

	frames  []*readFrame
	idents  *identity.Table
	catalog Catalog

	maxDepth int
	floats   endian.Engine
}

// NewReader wraps data for decoding. data is not copied; the caller must
// not mutate it while the Reader is in use.
func NewReader(data []byte, opts ...ReaderOption) (*Reader, error) {
	r := &Reader{
		data:     data,
		idents:   identity.NewTable(),
		catalog:  emptyCatalog{},
		maxDepth: DefaultMaxDepth,
		floats:   endian.WireFloatEngine(),
	}

	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	return r, nil
}

// Remaining reports how many bytes are left unconsumed.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

func (r *Reader) top() *readFrame {
	if len(r.frames) == 0 {
		return nil
	}

	return r.frames[len(r.frames)-1]
}

func (r *Reader) push(f *readFrame) error {
	if len(r.frames) >= r.maxDepth {
		return errs.Range("reader: maximum nesting depth exceeded")
	}
	r.frames = append(r.frames, f)

	return nil
}

func (r *Reader) readRawTag() (format.Tag, error) {
	n, err := r.readInt()
	return format.Tag(n), err
}

func (r *Reader) readInt() (int32, error) {
	v, n, err := varint.DecodeInt32(r.data[r.pos:])
	if err != nil {
		return 0, err
	}
	r.pos += n

	return v, nil
}

func (r *Reader) readLong() (int64, error) {
	v, n, err := varint.DecodeInt64(r.data[r.pos:])
	if err != nil {
		return 0, err
	}
	r.pos += n

	return v, nil
}

func (r *Reader) readInt128() (varint.Int128, error) {
	v, n, err := varint.DecodeInt128(r.data[r.pos:])
	if err != nil {
		return varint.Int128{}, err
	}
	r.pos += n

	return v, nil
}

func (r *Reader) readBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errs.Range("reader: negative length")
	}
	if r.pos+n > len(r.data) {
		return nil, errs.Truncated("reader: not enough bytes")
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

// beginValue implements the shared order discipline for positional
// reads: sparse frames scan forward through index tokens (skipping
// whatever the caller didn't ask for), dense frames require strictly
// sequential access, and a nil frame (top-level value) always reads
// directly.
func (r *Reader) beginValue(pos int32) (bool, error) {
	f := r.top()
	if f == nil {
		return true, nil
	}
	if f.isMap {
		return false, errs.Range("reader: positional read inside a map frame; use NextEntry")
	}

	if f.sparse {
		return r.advanceSparse(f, pos)
	}

	if f.done || f.consumed >= f.count {
		return false, nil
	}
	if pos != f.consumed {
		return false, errs.OrderViolation(pos, f.consumed-1)
	}
	f.consumed++

	return true, nil
}

// advanceSparse scans the index tokens of a sparse frame (a user type's
// properties or a sparse array's elements) until it finds pos, determines
// pos is absent, or exhausts the frame. It never consumes an index token
// belonging to a property past pos, so a later call can still read it.
func (r *Reader) advanceSparse(f *readFrame, pos int32) (bool, error) {
	if f.lastPos >= 0 && pos <= f.lastPos {
		return false, errs.OrderViolation(pos, f.lastPos)
	}
	if f.done {
		return false, nil
	}

	for {
		idx, n, err := varint.DecodeInt32(r.data[r.pos:])
		if err != nil {
			return false, err
		}

		if idx == -1 {
			r.pos += n
			f.done = true
			return false, nil
		}
		if idx <= f.lastPos && f.lastPos >= 0 {
			return false, errs.OrderViolation(idx, f.lastPos)
		}
		if idx > pos {
			return false, nil // not consumed: still there for a later, higher pos
		}

		r.pos += n
		f.lastPos = idx

		if idx == pos {
			return true, nil
		}

		if err := r.skipValue(); err != nil {
			return false, err
		}
	}
}

// nextTag returns the tag governing the value about to be read: the
// frame's declared element type when uniform elision applies, or a tag
// read fresh from the stream otherwise.
func (r *Reader) nextTag() (format.Tag, error) {
	return r.nextTagIn(r.top())
}

// nextTagIn is nextTag parameterized on an explicit frame, used by the
// frame-closing cleanup loops in EndComplexValue: by the time they run,
// the frame being drained has already been popped off the stack, so its
// uniform-element context must be passed in rather than read from top().
//
// A uniform frame still allows any individual element to carry T_IDENTITY,
// T_REFERENCE, or V_REFERENCE_NULL in place of the elided element tag, so
// elision over a complex element type (a user type, collection, array, or
// map) can't be unconditional: the raw tag is peeked first, and only
// rolled back in favor of the frame's declared element tag when it isn't
// one of those three. Scalar element types skip the peek entirely: an
// elided scalar's payload is raw bytes, not a tag-shaped token, so
// treating it as one risks a spurious decode error or, worse, a byte
// pattern that coincidentally matches a reserved tag value.
func (r *Reader) nextTagIn(f *readFrame) (format.Tag, error) {
	if f != nil {
		if elemTag, uniform := f.elementTag(); uniform {
			if !elementTagIsComplex(elemTag) {
				return elemTag, nil
			}

			mark := r.pos
			tag, err := r.readRawTag()
			if err != nil {
				return 0, err
			}

			switch tag {
			case format.TagIdentity, format.TagReference, format.ValueReferenceNull:
				return tag, nil
			}

			r.pos = mark
			return elemTag, nil
		}
	}

	return r.readRawTag()
}

// elementTagIsComplex reports whether a uniform frame's declared element
// tag denotes a value that is itself introduced by a tag on the wire
// (user types, collections, arrays, sparse arrays, maps) as opposed to a
// scalar whose elided payload is raw bytes.
func elementTagIsComplex(tag format.Tag) bool {
	return format.IsUserType(tag) || format.IsCollectionTag(tag) || format.IsMapTag(tag)
}

// readProperty performs the full positional-read pipeline: order
// discipline, tag resolution, identity/reference handling, and generic
// decoding. It returns (nil, nil) for an absent sparse property so typed
// getters can substitute their Go zero value.
func (r *Reader) readProperty(pos int32) (any, error) {
	present, err := r.beginValue(pos)
	if err != nil || !present {
		return nil, err
	}

	return r.readGenericValue()
}

func (r *Reader) readGenericValue() (any, error) {
	tag, err := r.nextTag()
	if err != nil {
		return nil, err
	}

	return r.decodeFromTag(tag)
}

// decodeFromTag resolves a tag already read (or implied by a uniform
// frame) into a Go value, handling the two tags that can precede any
// value regardless of context: T_IDENTITY and T_REFERENCE. Because this
// is also the entry point skipValueIn uses, identity registration and
// reference resolution work the same way whether the value is actually
// being decoded or merely skipped past — resolving the ambiguity of
// whether a uniform container's elements can carry identity.
func (r *Reader) decodeFromTag(tag format.Tag) (any, error) {
	if tag == format.TagIdentity {
		id, err := r.readLong()
		if err != nil {
			return nil, err
		}

		innerTag, err := r.readRawTag()
		if err != nil {
			return nil, err
		}

		val, err := r.decodeByTag(innerTag)
		if err != nil {
			return nil, err
		}
		if err := r.idents.Register(id, val); err != nil {
			return nil, err
		}

		return val, nil
	}

	if tag == format.TagReference {
		id, err := r.readLong()
		if err != nil {
			return nil, err
		}

		return r.idents.MustLookup(id)
	}

	return r.decodeByTag(tag)
}

// decodeByTag builds the Go value denoted by a tag already read from the
// stream (or implied by a uniform frame). Scalars map onto the narrowest
// natural Go type; containers recurse.
func (r *Reader) decodeByTag(tag format.Tag) (any, error) {
	switch {
	case format.IsTinyInt(tag):
		return format.TinyIntValue(tag), nil
	case format.IsUserType(tag):
		return r.decodeUserType(tag)
	case format.IsCollectionTag(tag):
		return r.decodeContainer(tag)
	case format.IsMapTag(tag):
		return r.decodeMap(tag)
	}

	switch tag {
	case format.ValueBooleanFalse:
		return false, nil
	case format.ValueBooleanTrue:
		return true, nil
	case format.ValueStringZeroLength:
		return "", nil
	case format.ValueCollectionEmpty:
		return []any{}, nil
	case format.ValueReferenceNull:
		return nil, nil
	case format.ValueFPPosInfinity:
		return math.Inf(1), nil
	case format.ValueFPNegInfinity:
		return math.Inf(-1), nil
	case format.ValueFPNaN:
		return math.NaN(), nil
	case format.TagInt16, format.TagInt32:
		return r.readInt()
	case format.TagInt64:
		return r.readLong()
	case format.TagInt128:
		return r.readInt128()
	case format.TagFloat32:
		bits, err := r.readBytes(4)
		if err != nil {
			return nil, err
		}
		return math.Float32frombits(r.floats.Uint32(bits)), nil
	case format.TagFloat64:
		bits, err := r.readBytes(8)
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(r.floats.Uint64(bits)), nil
	case format.TagFloat128:
		b, err := r.readBytes(16)
		if err != nil {
			return nil, err
		}
		var out [16]byte
		copy(out[:], b)
		return out, nil
	case format.TagDecimal32, format.TagDecimal64, format.TagDecimal128:
		return r.decodeDecimal()
	case format.TagBoolean:
		v, err := r.readInt()
		return v != 0, err
	case format.TagOctet:
		b, err := r.readBytes(1)
		if err != nil {
			return nil, err
		}
		return b[0], nil
	case format.TagOctetString:
		n, err := r.readInt()
		if err != nil {
			return nil, err
		}
		b, err := r.readBytes(int(n))
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), b...), nil
	case format.TagChar:
		return r.decodeChar()
	case format.TagCharString:
		n, err := r.readInt()
		if err != nil {
			return nil, err
		}
		b, err := r.readBytes(int(n))
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case format.TagDate:
		return r.decodeDate()
	case format.TagTime:
		return r.decodeTime()
	case format.TagDateTime:
		d, err := r.decodeDate()
		if err != nil {
			return nil, err
		}
		t, err := r.decodeTime()
		if err != nil {
			return nil, err
		}
		return raw.DateTime{Date: d, Time: t}, nil
	case format.TagYearMonthInterval:
		years, err := r.readInt()
		if err != nil {
			return nil, err
		}
		months, err := r.readInt()
		return raw.YearMonthInterval{Years: int(years), Months: int(months)}, err
	case format.TagTimeInterval:
		h, err := r.readInt()
		if err != nil {
			return nil, err
		}
		m, err := r.readInt()
		if err != nil {
			return nil, err
		}
		s, err := r.readInt()
		if err != nil {
			return nil, err
		}
		ns, err := r.readInt()
		return raw.TimeInterval{Hours: int(h), Minutes: int(m), Seconds: int(s), Nanoseconds: int(ns)}, err
	case format.TagDayTimeInterval:
		d, err := r.readInt()
		if err != nil {
			return nil, err
		}
		h, err := r.readInt()
		if err != nil {
			return nil, err
		}
		m, err := r.readInt()
		if err != nil {
			return nil, err
		}
		s, err := r.readInt()
		if err != nil {
			return nil, err
		}
		ns, err := r.readInt()
		return raw.DayTimeInterval{Days: int(d), Hours: int(h), Minutes: int(m), Seconds: int(s), Nanoseconds: int(ns)}, err
	}

	return nil, errs.TypeMismatch("known tag", int32(tag))
}

func (r *Reader) decodeChar() (rune, error) {
	if r.pos >= len(r.data) {
		return 0, errs.Truncated("char: missing lead byte")
	}
	ru, size := utf8.DecodeRune(r.data[r.pos:])
	r.pos += size

	return ru, nil
}

func (r *Reader) decodeDate() (raw.Date, error) {
	year, err := r.readInt()
	if err != nil {
		return raw.Date{}, err
	}
	month, err := r.readInt()
	if err != nil {
		return raw.Date{}, err
	}
	day, err := r.readInt()
	if err != nil {
		return raw.Date{}, err
	}

	d := raw.Date{Year: int(year), Month: int(month), Day: int(day)}
	return d, d.Validate()
}

func (r *Reader) decodeTime() (raw.Time, error) {
	hour, err := r.readInt()
	if err != nil {
		return raw.Time{}, err
	}
	minute, err := r.readInt()
	if err != nil {
		return raw.Time{}, err
	}
	second, err := r.readInt()
	if err != nil {
		return raw.Time{}, err
	}
	fraction, err := r.readInt()
	if err != nil {
		return raw.Time{}, err
	}
	zone, err := r.readInt()
	if err != nil {
		return raw.Time{}, err
	}

	nanos := int(fraction) * 1_000_000
	if fraction < 0 {
		nanos = -int(fraction)
	}

	t := raw.Time{Hour: int(hour), Minute: int(minute), Second: int(second), Nanosecond: nanos, Zone: raw.ZoneKind(zone)}

	if t.Zone == raw.ZoneOffset {
		hourOff, err := r.readInt()
		if err != nil {
			return raw.Time{}, err
		}
		minOff, err := r.readInt()
		if err != nil {
			return raw.Time{}, err
		}
		t.HourOffset = int(hourOff)
		t.MinuteOffset = int(minOff)
	}

	return t, t.Validate()
}

func (r *Reader) decodeDecimal() (raw.Decimal, error) {
	mag, err := r.readInt128()
	if err != nil {
		return raw.Decimal{}, err
	}
	scale, err := r.readInt()
	if err != nil {
		return raw.Decimal{}, err
	}

	be := append([]byte(nil), mag.Magnitude...)
	reverseBytes(be) // wire magnitude is little-endian; big.Int.SetBytes wants big-endian

	unscaled := new(big.Int).SetBytes(be)
	if mag.Negative {
		unscaled.Neg(unscaled)
	}

	return raw.NewDecimal(unscaled, scale), nil
}

// decodeContainer reads a collection or array frame (dense or sparse) into
// a generic []any. Absent sparse slots decode as nil.
func (r *Reader) decodeContainer(tag format.Tag) ([]any, error) {
	uniform := format.IsUniform(tag)
	sparse := format.IsSparse(tag)

	var elemTag format.Tag
	if uniform {
		t, err := r.readRawTag()
		if err != nil {
			return nil, err
		}
		elemTag = t
	}

	n, err := r.readInt()
	if err != nil {
		return nil, err
	}

	if err := r.push(&readFrame{kind: tag, sparse: sparse, uniform: uniform, elemTag: elemTag, count: n, lastPos: -1}); err != nil {
		return nil, err
	}

	out := make([]any, n)
	for i := int32(0); i < n; i++ {
		v, err := r.readProperty(i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	if err := r.EndComplexValue(); err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Reader) decodeMap(tag format.Tag) (map[any]any, error) {
	uniformK := tag == format.TagUniformKeysMap || tag == format.TagUniformMap
	uniformV := tag == format.TagUniformMap

	var keyTag, valTag format.Tag
	if uniformK {
		t, err := r.readRawTag()
		if err != nil {
			return nil, err
		}
		keyTag = t
	}
	if uniformV {
		t, err := r.readRawTag()
		if err != nil {
			return nil, err
		}
		valTag = t
	}

	n, err := r.readInt()
	if err != nil {
		return nil, err
	}

	if err := r.push(&readFrame{kind: tag, isMap: true, isUniformK: uniformK, isUniformV: uniformV, keyTag: keyTag, valTag: valTag, count: n, lastPos: -1}); err != nil {
		return nil, err
	}

	out := make(map[any]any, n)
	for i := int32(0); i < n; i++ {
		k, v, ok, err := r.NextEntry()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out[k] = v
	}

	if err := r.EndComplexValue(); err != nil {
		return nil, err
	}

	return out, nil
}

// NextEntry reads the next key/value pair of the map frame on top of the
// stack. ok is false once the frame's declared entry count is exhausted.
func (r *Reader) NextEntry() (key, value any, ok bool, err error) {
	f := r.top()
	if f == nil || !f.isMap {
		return nil, nil, false, errs.Range("reader: NextEntry outside a map frame")
	}
	if f.consumed >= f.count {
		return nil, nil, false, nil
	}

	f.awaitValue = false
	key, err = r.readGenericValue()
	if err != nil {
		return nil, nil, false, err
	}

	f.awaitValue = true
	value, err = r.readGenericValue()
	if err != nil {
		return nil, nil, false, err
	}

	f.consumed++

	return key, value, true, nil
}

func (f *readFrame) elementTag() (format.Tag, bool) {
	if !f.isMap {
		return f.elemTag, f.uniform
	}
	if !f.awaitValue {
		return f.keyTag, f.isUniformK
	}

	return f.valTag, f.isUniformV
}

func (r *Reader) decodeUserType(tag format.Tag) (any, error) {
	typeID := int32(tag)

	versionID, err := r.readInt()
	if err != nil {
		return nil, err
	}

	if err := r.push(&readFrame{kind: tag, sparse: true, lastPos: -1}); err != nil {
		return nil, err
	}

	ser, err := r.catalog.SerializerFor(typeID)
	if err != nil {
		r.frames = r.frames[:len(r.frames)-1]
		return nil, err
	}

	val, err := ser.Decode(r, versionID)
	if err != nil {
		return nil, err
	}

	if err := r.EndComplexValue(); err != nil {
		return nil, err
	}

	return val, nil
}

// EndComplexValue closes the innermost open frame. Any properties or
// elements the caller didn't read are skipped so the stream cursor lands
// correctly on the frame's end for the caller's enclosing scope.
func (r *Reader) EndComplexValue() error {
	if len(r.frames) == 0 {
		return errs.Range("reader: EndComplexValue with no open frame")
	}

	f := r.frames[len(r.frames)-1]
	r.frames = r.frames[:len(r.frames)-1]

	if f.degenerate {
		return nil
	}

	if f.sparse {
		for !f.done {
			idx, n, err := varint.DecodeInt32(r.data[r.pos:])
			if err != nil {
				return err
			}
			r.pos += n
			if idx == -1 {
				f.done = true
				break
			}
			f.lastPos = idx
			if err := r.skipValueIn(f); err != nil {
				return err
			}
		}

		return nil
	}

	if f.isMap {
		// NextEntry reads the frame on top of the stack, so f goes back on
		// it while its unread entries are drained.
		r.frames = append(r.frames, f)
		defer func() { r.frames = r.frames[:len(r.frames)-1] }()

		for f.consumed < f.count {
			if _, _, ok, err := r.NextEntry(); err != nil {
				return err
			} else if !ok {
				break
			}
		}

		return nil
	}

	for f.consumed < f.count {
		f.consumed++
		if err := r.skipValueIn(f); err != nil {
			return err
		}
	}

	return nil
}

// UserTypeFrame describes the type/version header of a user type the
// caller has begun reading via BeginUserType.
type UserTypeFrame struct {
	TypeID    int32
	VersionID int32
}

// BeginUserType reads the header of a user-type value at pos (identity
// registration, if present, type id, and version id) and opens its sparse
// property frame, returning frame metadata a Serializer.Decode uses to
// branch on schema version. present is false if the value was absent
// (sparse default) or V_REFERENCE_NULL.
func (r *Reader) BeginUserType(pos int32) (frame UserTypeFrame, present bool, err error) {
	present, err = r.beginValue(pos)
	if err != nil || !present {
		return UserTypeFrame{}, false, err
	}

	tag, err := r.nextTag()
	if err != nil {
		return UserTypeFrame{}, false, err
	}

	if tag == format.ValueReferenceNull {
		return UserTypeFrame{}, false, nil
	}

	hasIdentity := false
	var identID int64

	if tag == format.TagIdentity {
		id, err := r.readLong()
		if err != nil {
			return UserTypeFrame{}, false, err
		}
		tag, err = r.readRawTag()
		if err != nil {
			return UserTypeFrame{}, false, err
		}
		hasIdentity, identID = true, id
	}

	if !format.IsUserType(tag) {
		return UserTypeFrame{}, false, errs.TypeMismatch("user type", int32(tag))
	}

	versionID, err := r.readInt()
	if err != nil {
		return UserTypeFrame{}, false, err
	}

	frame = UserTypeFrame{TypeID: int32(tag), VersionID: versionID}

	if hasIdentity {
		if err := r.idents.Register(identID, frame); err != nil {
			return UserTypeFrame{}, false, err
		}
	}

	return frame, true, r.push(&readFrame{kind: tag, sparse: true, lastPos: -1})
}

// Remainder captures the raw bytes of every property from the current
// read cursor through (but not including) the frame's -1 terminator,
// without decoding them, for schema-evolution round trips (§4.6): a
// Serializer that doesn't recognize a trailing property can carry it
// forward verbatim via Writer.WriteRemainder.
func (r *Reader) Remainder() ([]byte, error) {
	f := r.top()
	if f == nil || !f.sparse {
		return nil, errs.Range("reader: Remainder outside a sparse frame")
	}
	if f.done {
		return nil, nil
	}

	start := r.pos
	for {
		idx, n, err := varint.DecodeInt32(r.data[r.pos:])
		if err != nil {
			return nil, err
		}
		if idx == -1 {
			end := r.pos
			r.pos += n
			f.done = true
			return append([]byte(nil), r.data[start:end]...), nil
		}
		if idx <= f.lastPos && f.lastPos >= 0 {
			return nil, errs.OrderViolation(idx, f.lastPos)
		}
		f.lastPos = idx
		r.pos += n
		if err := r.skipValue(); err != nil {
			return nil, err
		}
	}
}

// Typed getters. Each coerces the generically decoded value into the
// requested Go type, substituting the type's zero value for an absent
// sparse property.

func (r *Reader) ReadInt16(pos int32) (int16, error) {
	v, err := r.readProperty(pos)
	if err != nil {
		return 0, err
	}
	return toInt16(v)
}

func (r *Reader) ReadInt32(pos int32) (int32, error) {
	v, err := r.readProperty(pos)
	if err != nil {
		return 0, err
	}
	return toInt32(v)
}

func (r *Reader) ReadInt64(pos int32) (int64, error) {
	v, err := r.readProperty(pos)
	if err != nil {
		return 0, err
	}
	return toInt64(v)
}

func (r *Reader) ReadInt128(pos int32) (varint.Int128, error) {
	v, err := r.readProperty(pos)
	if err != nil || v == nil {
		return varint.Int128{}, err
	}
	i128, ok := v.(varint.Int128)
	if !ok {
		return varint.Int128{}, errs.TypeMismatch("int128", 0)
	}

	return i128, nil
}

func (r *Reader) ReadFloat32(pos int32) (float32, error) {
	v, err := r.readProperty(pos)
	if err != nil {
		return 0, err
	}
	return toFloat32(v)
}

func (r *Reader) ReadFloat64(pos int32) (float64, error) {
	v, err := r.readProperty(pos)
	if err != nil {
		return 0, err
	}
	return toFloat64(v)
}

func (r *Reader) ReadDecimal(pos int32) (raw.Decimal, error) {
	v, err := r.readProperty(pos)
	if err != nil || v == nil {
		return raw.Decimal{}, err
	}

	return toDecimal(v)
}

func (r *Reader) ReadBool(pos int32) (bool, error) {
	v, err := r.readProperty(pos)
	if err != nil || v == nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, errs.TypeMismatch("bool", 0)
	}

	return b, nil
}

func (r *Reader) ReadOctet(pos int32) (byte, error) {
	v, err := r.readProperty(pos)
	if err != nil || v == nil {
		return 0, err
	}
	b, ok := v.(byte)
	if !ok {
		return 0, errs.TypeMismatch("octet", 0)
	}

	return b, nil
}

func (r *Reader) ReadOctetString(pos int32) ([]byte, error) {
	v, err := r.readProperty(pos)
	if err != nil || v == nil {
		return nil, err
	}

	return toOctetString(v)
}

func (r *Reader) ReadChar(pos int32) (rune, error) {
	v, err := r.readProperty(pos)
	if err != nil || v == nil {
		return 0, err
	}

	return toChar(v)
}

func (r *Reader) ReadString(pos int32) (string, error) {
	v, err := r.readProperty(pos)
	if err != nil || v == nil {
		return "", err
	}

	return toStringValue(v)
}

func (r *Reader) ReadDate(pos int32) (raw.Date, error) {
	v, err := r.readProperty(pos)
	if err != nil || v == nil {
		return raw.Date{}, err
	}
	d, ok := v.(raw.Date)
	if !ok {
		return raw.Date{}, errs.TypeMismatch("date", 0)
	}

	return d, nil
}

func (r *Reader) ReadTime(pos int32) (raw.Time, error) {
	v, err := r.readProperty(pos)
	if err != nil || v == nil {
		return raw.Time{}, err
	}
	t, ok := v.(raw.Time)
	if !ok {
		return raw.Time{}, errs.TypeMismatch("time", 0)
	}

	return t, nil
}

func (r *Reader) ReadDateTime(pos int32) (raw.DateTime, error) {
	v, err := r.readProperty(pos)
	if err != nil || v == nil {
		return raw.DateTime{}, err
	}
	dt, ok := v.(raw.DateTime)
	if !ok {
		return raw.DateTime{}, errs.TypeMismatch("datetime", 0)
	}

	return dt, nil
}

// ReadObject reads a user-type value at pos through the Reader's Catalog,
// resolving T_REFERENCE and V_REFERENCE_NULL along the way.
func (r *Reader) ReadObject(pos int32) (any, error) {
	return r.readProperty(pos)
}

// Elements lazily decodes a dense or sparse array/collection frame opened
// by the caller (e.g. via ReadObject landing on a container, or manual use
// of the lower-level decode path) as a sequence of generic values. Iterate
// it fully; abandoning it early leaves the Reader's cursor mid-frame.
func (r *Reader) Elements(n int32) iter.Seq2[int32, any] {
	return func(yield func(int32, any) bool) {
		for i := int32(0); i < n; i++ {
			v, err := r.readProperty(i)
			if err != nil {
				return
			}
			if !yield(i, v) {
				return
			}
		}
	}
}
