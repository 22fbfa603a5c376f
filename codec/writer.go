package codec

import (
	"math"
	"math/big"

	"github.com/brinewire/pof/endian"
	"github.com/brinewire/pof/errs"
	"github.com/brinewire/pof/format"
	"github.com/brinewire/pof/internal/bufpool"
	"github.com/brinewire/pof/internal/identity"
	"github.com/brinewire/pof/internal/options"
	"github.com/brinewire/pof/raw"
	"github.com/brinewire/pof/varint"
)

// Writer is the WritingHandler of spec.md §4.2: it turns a sequence of
// typed "write this value at this position" calls into the packed byte
// stream, applying position encoding, sparse default-value skipping,
// tiny-value compression, and uniform-container type elision along the
// way.
//
// A Writer is not safe for concurrent use and is not reusable once
// Finish() returns its buffer to the pool; build a new one per stream.
type Writer struct {
	buf     *bufpool.Buffer
	frames  []*complexFrame
	idents  *identity.Table
	catalog Catalog

	maxDepth int
	floats   endian.Engine
}

// NewWriter creates a Writer ready to encode a single top-level value.
func NewWriter(opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		buf:      bufpool.Get(),
		idents:   identity.NewTable(),
		catalog:  emptyCatalog{},
		maxDepth: DefaultMaxDepth,
		floats:   endian.WireFloatEngine(),
	}

	if err := options.Apply(w, opts...); err != nil {
		return nil, err
	}

	return w, nil
}

// Bytes returns the bytes written so far. The slice is owned by the
// Writer; copy it before reusing the Writer.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Finish returns the Writer's scratch buffer to the pool. Call it once no
// further reads of Bytes() are needed. The Writer must not be used
// afterward.
func (w *Writer) Finish() {
	bufpool.Put(w.buf)
	w.buf = nil
}

func (w *Writer) top() *complexFrame {
	if len(w.frames) == 0 {
		return nil
	}

	return w.frames[len(w.frames)-1]
}

func (w *Writer) push(f *complexFrame) error {
	if len(w.frames) >= w.maxDepth {
		return errs.Range("writer: maximum nesting depth exceeded")
	}
	w.frames = append(w.frames, f)

	return nil
}

func (w *Writer) writeTag(tag format.Tag) {
	w.buf.B = varint.AppendInt32(w.buf.B, int32(tag))
}

func (w *Writer) writeInt(n int32) {
	w.buf.B = varint.AppendInt32(w.buf.B, n)
}

func (w *Writer) writeLong(n int64) {
	w.buf.B = varint.AppendInt64(w.buf.B, n)
}

// RegisterIdentity marks the next value written in the current frame as
// referenceable under id: it writes T_IDENTITY+id ahead of the value and
// suppresses sparse default-skipping and uniform/compact substitution
// decisions from treating the upcoming value as absent.
func (w *Writer) RegisterIdentity(id int64) error {
	f := w.top()
	if f == nil {
		return errs.Range("writer: RegisterIdentity called outside any complex value")
	}
	if err := w.idents.Register(id, struct{}{}); err != nil {
		return err
	}

	f.pendingIdentity = true
	f.pendingIdentityID = id

	return nil
}

// valuePrelude implements the contract shared by every "on value" event in
// §4.2: sparse default-skipping, position/property-index emission, and
// consuming a pending identity registration. It returns ok=false when the
// value was skipped entirely (sparse default omission).
//
// A nil frame means this value is the stream's single top-level value
// (mirrors Reader.beginValue's nil-frame case): there is no position to
// encode, no map alternator to flip, and nothing pending to emit.
func (w *Writer) valuePrelude(pos int32, isDefault bool) (bool, error) {
	f := w.top()
	if f == nil {
		return true, nil
	}

	if f.sparse && isDefault && !f.pendingIdentity {
		return false, nil
	}

	if f.sparse {
		w.writeInt(pos)
	}

	if f.isMap {
		f.awaitValue = !f.awaitValue
	}

	if f.pendingIdentity {
		w.writeTag(format.TagIdentity)
		w.writeLong(f.pendingIdentityID)
		f.pendingIdentity = false
	}

	return true, nil
}

// writeScalar is the common path for every primitive/temporal value: it
// decides whether the enclosing uniform frame elides the tag, runs
// valuePrelude, then otherwise tries a compact substitution before
// writing the full tag + payload.
//
// The element-tag lookup happens before valuePrelude runs, not after: for
// a map frame, valuePrelude flips the key/value alternator as part of
// admitting this value, so reading it afterward would report the slot
// the *next* call will fill rather than this one.
func (w *Writer) writeScalar(pos int32, tag format.Tag, isDefault bool, compact func() (format.Tag, bool), payload func()) error {
	var elemTag format.Tag
	var isUniformSlot bool
	if f := w.top(); f != nil {
		elemTag, isUniformSlot = f.elementTag()
	}

	ok, err := w.valuePrelude(pos, isDefault)
	if err != nil || !ok {
		return err
	}

	if isUniformSlot && elemTag == tag {
		payload()
		return nil
	}

	if compact != nil {
		if ct, has := compact(); has {
			w.writeTag(ct)
			return nil
		}
	}

	w.writeTag(tag)
	payload()

	return nil
}

// WriteInt16 writes a 16-bit integer at pos.
func (w *Writer) WriteInt16(pos int32, v int16) error {
	return w.writeScalar(pos, format.TagInt16, v == 0, tinyIntCompact(int64(v)), func() {
		w.writeInt(int32(v))
	})
}

// WriteInt32 writes a 32-bit integer at pos.
func (w *Writer) WriteInt32(pos int32, v int32) error {
	return w.writeScalar(pos, format.TagInt32, v == 0, tinyIntCompact(int64(v)), func() {
		w.writeInt(v)
	})
}

// WriteInt64 writes a 64-bit integer at pos.
func (w *Writer) WriteInt64(pos int32, v int64) error {
	return w.writeScalar(pos, format.TagInt64, v == 0, tinyIntCompact(v), func() {
		w.writeLong(v)
	})
}

// WriteInt128 writes a 128-bit integer at pos.
func (w *Writer) WriteInt128(pos int32, v varint.Int128) error {
	isDefault := len(v.Magnitude) == 0 && !v.Negative
	return w.writeScalar(pos, format.TagInt128, isDefault, nil, func() {
		w.buf.B = varint.AppendInt128(w.buf.B, v)
	})
}

func tinyIntCompact(v int64) func() (format.Tag, bool) {
	return func() (format.Tag, bool) { return format.TinyIntTag(v) }
}

// WriteFloat32 writes a 32-bit IEEE-754 float at pos.
func (w *Writer) WriteFloat32(pos int32, v float32) error {
	return w.writeScalar(pos, format.TagFloat32, v == 0, floatCompact32(v), func() {
		w.buf.B = w.floats.AppendUint32(w.buf.B, math.Float32bits(v))
	})
}

// WriteFloat64 writes a 64-bit IEEE-754 float at pos.
func (w *Writer) WriteFloat64(pos int32, v float64) error {
	return w.writeScalar(pos, format.TagFloat64, v == 0, floatCompact64(v), func() {
		w.buf.B = w.floats.AppendUint64(w.buf.B, math.Float64bits(v))
	})
}

// WriteFloat128 writes an opaque 16-byte big-endian float128 payload at
// pos. Go has no 128-bit float type, so callers must supply the already
// laid-out bytes; see SPEC_FULL.md's open-question decision 4.
func (w *Writer) WriteFloat128(pos int32, bits [16]byte) error {
	allZero := bits == [16]byte{}
	return w.writeScalar(pos, format.TagFloat128, allZero, nil, func() {
		w.buf.MustWrite(bits[:])
	})
}

func floatCompact32(v float32) func() (format.Tag, bool) {
	return func() (format.Tag, bool) {
		switch {
		case math.IsInf(float64(v), 1):
			return format.ValueFPPosInfinity, true
		case math.IsInf(float64(v), -1):
			return format.ValueFPNegInfinity, true
		case v != v: // NaN
			return format.ValueFPNaN, true
		default:
			return 0, false
		}
	}
}

func floatCompact64(v float64) func() (format.Tag, bool) {
	return func() (format.Tag, bool) {
		switch {
		case math.IsInf(v, 1):
			return format.ValueFPPosInfinity, true
		case math.IsInf(v, -1):
			return format.ValueFPNegInfinity, true
		case v != v:
			return format.ValueFPNaN, true
		default:
			return 0, false
		}
	}
}

// WriteDecimal writes a decimal value, choosing the narrowest wire width
// that represents it (§3's "writer picks the smallest" invariant).
func (w *Writer) WriteDecimal(pos int32, v raw.Decimal) error {
	width, err := v.Width()
	if err != nil {
		return err
	}

	var tag format.Tag
	switch width {
	case 32:
		tag = format.TagDecimal32
	case 64:
		tag = format.TagDecimal64
	default:
		tag = format.TagDecimal128
	}

	isDefault := v.Unscaled == nil || v.Unscaled.Sign() == 0

	return w.writeScalar(pos, tag, isDefault, nil, func() {
		mag := varint.Int128{}
		if v.Unscaled != nil {
			mag.Negative = v.Unscaled.Sign() < 0
			magnitude := new(big.Int).Abs(v.Unscaled).Bytes() // big-endian
			reverseBytes(magnitude)                           // wire magnitude is little-endian
			mag.Magnitude = magnitude
		}
		w.buf.B = varint.AppendInt128(w.buf.B, mag)
		w.writeInt(v.Scale)
	})
}

// reverseBytes reverses b in place.
func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// WriteBool writes a boolean at pos. Booleans always have a compact
// one-byte encoding (V_BOOLEAN_TRUE/FALSE) unless uniform-elided.
func (w *Writer) WriteBool(pos int32, v bool) error {
	return w.writeScalar(pos, format.TagBoolean, !v, func() (format.Tag, bool) {
		if v {
			return format.ValueBooleanTrue, true
		}
		return format.ValueBooleanFalse, true
	}, func() {
		if v {
			w.writeInt(1)
		} else {
			w.writeInt(0)
		}
	})
}

// WriteOctet writes a single raw byte at pos.
func (w *Writer) WriteOctet(pos int32, v byte) error {
	return w.writeScalar(pos, format.TagOctet, v == 0, nil, func() {
		w.buf.MustWriteByte(v)
	})
}

// WriteOctetString writes a length-prefixed binary blob at pos.
func (w *Writer) WriteOctetString(pos int32, v []byte) error {
	return w.writeScalar(pos, format.TagOctetString, len(v) == 0, func() (format.Tag, bool) {
		if len(v) == 0 {
			return format.ValueStringZeroLength, true
		}
		return 0, false
	}, func() {
		w.writeInt(int32(len(v))) //nolint:gosec
		w.buf.MustWrite(v)
	})
}

// WriteChar writes a single Unicode scalar value at pos.
func (w *Writer) WriteChar(pos int32, v rune) error {
	return w.writeScalar(pos, format.TagChar, v == 0, nil, func() {
		w.buf.MustWrite([]byte(string(v)))
	})
}

// WriteString writes a length-prefixed UTF-8 string at pos.
func (w *Writer) WriteString(pos int32, v string) error {
	return w.writeScalar(pos, format.TagCharString, v == "", func() (format.Tag, bool) {
		if v == "" {
			return format.ValueStringZeroLength, true
		}
		return 0, false
	}, func() {
		w.writeInt(int32(len(v))) //nolint:gosec
		w.buf.MustWrite([]byte(v))
	})
}

// WriteDate writes a raw calendar date at pos.
func (w *Writer) WriteDate(pos int32, v raw.Date) error {
	if err := v.Validate(); err != nil {
		return err
	}

	isDefault := v == raw.Date{}

	return w.writeScalar(pos, format.TagDate, isDefault, nil, func() {
		w.writeInt(int32(v.Year)) //nolint:gosec
		w.writeInt(int32(v.Month))
		w.writeInt(int32(v.Day))
	})
}

// WriteTime writes a raw time-of-day at pos.
func (w *Writer) WriteTime(pos int32, v raw.Time) error {
	if err := v.Validate(); err != nil {
		return err
	}

	isDefault := v == raw.Time{}

	return w.writeScalar(pos, format.TagTime, isDefault, nil, func() {
		w.writeTimeBody(v)
	})
}

func (w *Writer) writeTimeBody(v raw.Time) {
	w.writeInt(int32(v.Hour))
	w.writeInt(int32(v.Minute))
	w.writeInt(int32(v.Second))

	fraction := int32(v.Nanosecond / 1_000_000)
	if v.Nanosecond%1_000_000 != 0 {
		fraction = -int32(v.Nanosecond) //nolint:gosec
	}
	w.writeInt(fraction)
	w.writeInt(int32(v.Zone))

	if v.Zone == raw.ZoneOffset {
		w.writeInt(int32(v.HourOffset))
		w.writeInt(int32(v.MinuteOffset))
	}
}

// WriteDateTime writes a raw date combined with a raw time-of-day at pos.
func (w *Writer) WriteDateTime(pos int32, v raw.DateTime) error {
	if err := v.Validate(); err != nil {
		return err
	}

	isDefault := v == raw.DateTime{}

	return w.writeScalar(pos, format.TagDateTime, isDefault, nil, func() {
		w.writeInt(int32(v.Date.Year))
		w.writeInt(int32(v.Date.Month))
		w.writeInt(int32(v.Date.Day))
		w.writeTimeBody(v.Time)
	})
}

// WriteYearMonthInterval writes a raw (years, months) interval at pos.
func (w *Writer) WriteYearMonthInterval(pos int32, v raw.YearMonthInterval) error {
	isDefault := v == raw.YearMonthInterval{}
	return w.writeScalar(pos, format.TagYearMonthInterval, isDefault, nil, func() {
		w.writeInt(int32(v.Years))
		w.writeInt(int32(v.Months))
	})
}

// WriteTimeInterval writes a raw (hours, minutes, seconds, nanoseconds)
// interval at pos.
func (w *Writer) WriteTimeInterval(pos int32, v raw.TimeInterval) error {
	isDefault := v == raw.TimeInterval{}
	return w.writeScalar(pos, format.TagTimeInterval, isDefault, nil, func() {
		w.writeInt(int32(v.Hours))
		w.writeInt(int32(v.Minutes))
		w.writeInt(int32(v.Seconds))
		w.writeInt(int32(v.Nanoseconds))
	})
}

// WriteDayTimeInterval writes a raw (days, hours, minutes, seconds,
// nanoseconds) interval at pos.
func (w *Writer) WriteDayTimeInterval(pos int32, v raw.DayTimeInterval) error {
	isDefault := v == raw.DayTimeInterval{}
	return w.writeScalar(pos, format.TagDayTimeInterval, isDefault, nil, func() {
		w.writeInt(int32(v.Days))
		w.writeInt(int32(v.Hours))
		w.writeInt(int32(v.Minutes))
		w.writeInt(int32(v.Seconds))
		w.writeInt(int32(v.Nanoseconds))
	})
}

// WriteNullReference writes the V_REFERENCE_NULL compact tag at pos — the
// wire representation of an absent object reference.
func (w *Writer) WriteNullReference(pos int32) error {
	ok, err := w.valuePrelude(pos, false)
	if err != nil || !ok {
		return err
	}
	w.writeTag(format.ValueReferenceNull)

	return nil
}

// WriteReference writes a T_REFERENCE to a previously registered identity
// at pos. The referenced id need not have been registered yet on the
// Writer's own bookkeeping side (the caller is trusted to have emitted the
// T_IDENTITY earlier in the same stream); Writer does not re-validate
// forward references the way Reader validates on decode.
func (w *Writer) WriteReference(pos int32, id int64) error {
	ok, err := w.valuePrelude(pos, false)
	if err != nil || !ok {
		return err
	}
	w.writeTag(format.TagReference)
	w.writeLong(id)

	return nil
}

// BeginCollection opens a heterogeneous, dense (count-based) collection.
func (w *Writer) BeginCollection(pos int32, n int) error {
	return w.beginDense(pos, format.TagCollection, n, false, 0)
}

// BeginUniformCollection opens a homogeneous, dense collection whose
// element type is elided from each member.
func (w *Writer) BeginUniformCollection(pos int32, n int, elem format.Tag) error {
	return w.beginDense(pos, format.TagUniformCollection, n, true, elem)
}

// BeginArray opens a heterogeneous, dense array.
func (w *Writer) BeginArray(pos int32, n int) error {
	return w.beginDense(pos, format.TagArray, n, false, 0)
}

// BeginUniformArray opens a homogeneous, dense array.
func (w *Writer) BeginUniformArray(pos int32, n int, elem format.Tag) error {
	return w.beginDense(pos, format.TagUniformArray, n, true, elem)
}

func (w *Writer) beginDense(pos int32, tag format.Tag, n int, uniform bool, elem format.Tag) error {
	if n < 0 {
		return errs.Range("begin: negative element count")
	}

	ok, err := w.valuePrelude(pos, n == 0 && !uniform)
	if err != nil {
		return err
	}
	if !ok {
		// Skipped as a sparse default: still open a frame for the caller's
		// matching EndComplexValue to close.
		return w.push(&complexFrame{kind: tag, degenerate: true})
	}

	if n == 0 && !uniform {
		w.writeTag(format.ValueCollectionEmpty)
		return w.push(&complexFrame{kind: tag, degenerate: true})
	}

	w.writeTag(tag)
	if uniform {
		w.writeTag(elem)
	}
	w.writeInt(int32(n)) //nolint:gosec

	return w.push(&complexFrame{kind: tag, uniform: uniform, elemTag: elem})
}

// BeginSparseArray opens a sparse array of logical length n (the array's
// declared size; not every index need be written).
func (w *Writer) BeginSparseArray(pos int32, n int) error {
	return w.beginSparse(pos, format.TagSparseArray, n, false, 0)
}

// BeginUniformSparseArray opens a homogeneous sparse array.
func (w *Writer) BeginUniformSparseArray(pos int32, n int, elem format.Tag) error {
	return w.beginSparse(pos, format.TagUniformSparseArray, n, true, elem)
}

func (w *Writer) beginSparse(pos int32, tag format.Tag, n int, uniform bool, elem format.Tag) error {
	if n < 0 {
		return errs.Range("begin: negative element count")
	}

	ok, err := w.valuePrelude(pos, false)
	if err != nil || !ok {
		return err
	}

	w.writeTag(tag)
	if uniform {
		w.writeTag(elem)
	}
	w.writeInt(int32(n)) //nolint:gosec

	return w.push(&complexFrame{kind: tag, sparse: true, uniform: uniform, elemTag: elem})
}

// BeginMap opens a heterogeneous map.
func (w *Writer) BeginMap(pos int32, n int) error {
	return w.beginMap(pos, format.TagMap, n, false, false, 0, 0)
}

// BeginUniformKeysMap opens a map whose keys share a declared type.
func (w *Writer) BeginUniformKeysMap(pos int32, n int, keyTag format.Tag) error {
	return w.beginMap(pos, format.TagUniformKeysMap, n, true, false, keyTag, 0)
}

// BeginUniformMap opens a map whose keys and values each share a declared
// type.
func (w *Writer) BeginUniformMap(pos int32, n int, keyTag, valTag format.Tag) error {
	return w.beginMap(pos, format.TagUniformMap, n, true, true, keyTag, valTag)
}

func (w *Writer) beginMap(pos int32, tag format.Tag, n int, uniformK, uniformV bool, keyTag, valTag format.Tag) error {
	if n < 0 {
		return errs.Range("begin: negative entry count")
	}

	ok, err := w.valuePrelude(pos, false)
	if err != nil || !ok {
		return err
	}

	w.writeTag(tag)
	if uniformK {
		w.writeTag(keyTag)
	}
	if uniformV {
		w.writeTag(valTag)
	}
	w.writeInt(int32(n)) //nolint:gosec

	return w.push(&complexFrame{
		kind: tag, isMap: true,
		isUniformK: uniformK, isUniformV: uniformV,
		keyTag: keyTag, valTag: valTag,
	})
}

// BeginUserType opens a user-type body. If hasID is true, id is registered
// as the object's identity before any property is written, matching
// §4.2's "if id ≥ 0, registers identity first". A user type is always a
// sparse frame: every property is preceded by its index and the body is
// terminated with -1.
//
// Like writeScalar, the enclosing frame's uniform-element context is read
// before valuePrelude runs, for the same map-alternator-ordering reason.
// The typeID token itself is only elided when nothing precedes it that
// would force the reader to fall back to a full tag read: an identity
// wrapper (whether from hasID or a pending RegisterIdentity) always reads
// its wrapped value's tag in full, so elision is suppressed whenever one
// is written.
func (w *Writer) BeginUserType(pos int32, id int64, hasID bool, typeID int32, versionID int32) error {
	var elemTag format.Tag
	var isUniformSlot bool
	var hadPendingIdentity bool
	if f := w.top(); f != nil {
		elemTag, isUniformSlot = f.elementTag()
		hadPendingIdentity = f.pendingIdentity
	}

	ok, err := w.valuePrelude(pos, false)
	if err != nil || !ok {
		return err
	}

	if hasID {
		if err := w.idents.Register(id, struct{}{}); err != nil {
			return err
		}
		w.writeTag(format.TagIdentity)
		w.writeLong(id)
	}

	if !isUniformSlot || hasID || hadPendingIdentity || elemTag != format.Tag(typeID) {
		w.writeInt(typeID)
	}
	w.writeInt(versionID)

	return w.push(&complexFrame{kind: format.Tag(typeID), sparse: true})
}

// EndComplexValue closes the innermost open frame, writing the sparse
// terminator (-1) when the frame requires one.
func (w *Writer) EndComplexValue() error {
	if len(w.frames) == 0 {
		return errs.Range("writer: EndComplexValue with no open frame")
	}

	f := w.frames[len(w.frames)-1]
	w.frames = w.frames[:len(w.frames)-1]

	if f.sparse && !f.degenerate {
		w.writeInt(-1)
	}

	return nil
}

// WriteObject writes value as a complete user-type token: BeginUserType,
// the registered Serializer's Encode, then EndComplexValue. The type id is
// resolved from value via the Writer's Catalog.
func (w *Writer) WriteObject(pos int32, id int64, hasID bool, value any) error {
	if value == nil {
		return w.WriteNullReference(pos)
	}

	typeID, ok := w.catalog.TypeIDForValue(value)
	if !ok {
		return errs.Unsupported("no type id registered for value's concrete type")
	}

	ser, err := w.catalog.SerializerFor(typeID)
	if err != nil {
		return err
	}

	if err := w.BeginUserType(pos, id, hasID, typeID, 0); err != nil {
		return err
	}
	if err := ser.Encode(w, value); err != nil {
		return err
	}

	return w.EndComplexValue()
}

// WriteRemainder copies a previously captured remainder (see
// Reader.Remainder) verbatim into the current user-type frame,
// preserving unknown trailing properties across a decode/re-encode cycle
// for schema evolution (§4.6, §8's seed scenario S5).
func (w *Writer) WriteRemainder(data []byte) error {
	f := w.top()
	if f == nil || !f.sparse {
		return errs.Range("writer: WriteRemainder outside a user-type frame")
	}

	w.buf.MustWrite(data)

	return nil
}
