package codec_test

import (
	"testing"

	"github.com/brinewire/pof/codec"
	"github.com/brinewire/pof/errs"
	"github.com/brinewire/pof/format"
	"github.com/stretchr/testify/require"
)

// seedCatalog is a minimal codec.Catalog backing a single registered type,
// used only to exercise Writer/Reader's user-type path in these tests
// without pulling in the registry package.
type seedCatalog struct {
	typeID int32
	ser    codec.Serializer
	match  func(value any) bool
}

func (c seedCatalog) SerializerFor(typeID int32) (codec.Serializer, error) {
	if typeID != c.typeID {
		return nil, errs.UnknownType(typeID)
	}
	return c.ser, nil
}

func (c seedCatalog) TypeIDForValue(value any) (int32, bool) {
	if c.match(value) {
		return c.typeID, true
	}
	return 0, false
}

func (c seedCatalog) DescriptorFor(typeID int32) (codec.Descriptor, bool) {
	if typeID != c.typeID {
		return codec.Descriptor{}, false
	}
	return codec.Descriptor{TypeID: typeID, Name: "seed"}, true
}

func (c seedCatalog) ReferenceEnabled(int32) bool { return true }

// point is the seed types' shared payload shape: a single int32 property.
type point struct{ X int32 }

type pointSerializer struct{}

func (pointSerializer) Encode(w *codec.Writer, value any) error {
	return w.WriteInt32(0, value.(point).X)
}

func (pointSerializer) Decode(r *codec.Reader, _ int32) (any, error) {
	x, err := r.ReadInt32(0)
	if err != nil {
		return nil, err
	}
	return point{X: x}, nil
}

// TestSeedScenarioS2 writes and reads back a sparse user type with a mix
// of present and absent (default) properties.
func TestSeedScenarioS2(t *testing.T) {
	w, err := codec.NewWriter()
	require.NoError(t, err)

	require.NoError(t, w.BeginUserType(0, 0, false, 1000, 0))
	require.NoError(t, w.WriteInt32(0, 42))
	require.NoError(t, w.WriteString(1, "hi"))
	require.NoError(t, w.WriteBool(2, true))
	require.NoError(t, w.WriteNullReference(5))
	require.NoError(t, w.EndComplexValue())

	data := append([]byte(nil), w.Bytes()...)
	w.Finish()

	r, err := codec.NewReader(data)
	require.NoError(t, err)

	frame, present, err := r.BeginUserType(0)
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, int32(1000), frame.TypeID)

	n, err := r.ReadInt32(0)
	require.NoError(t, err)
	require.Equal(t, int32(42), n)

	s, err := r.ReadString(1)
	require.NoError(t, err)
	require.Equal(t, "hi", s)

	b, err := r.ReadBool(2)
	require.NoError(t, err)
	require.True(t, b)

	null, err := r.ReadObject(5)
	require.NoError(t, err)
	require.Nil(t, null)

	require.NoError(t, r.EndComplexValue())
}

// TestSeedScenarioS3 writes a three-element list where every element
// shares the identity of one registered user type, then verifies that
// decoding all three yields the same underlying value.
func TestSeedScenarioS3(t *testing.T) {
	catalog := seedCatalog{typeID: 5, ser: pointSerializer{}, match: func(v any) bool { _, ok := v.(point); return ok }}

	w, err := codec.NewWriter(codec.WithWriterCatalog(catalog))
	require.NoError(t, err)

	require.NoError(t, w.BeginArray(0, 3))
	require.NoError(t, w.RegisterIdentity(100))
	require.NoError(t, w.WriteObject(0, 0, false, point{X: 7}))
	require.NoError(t, w.WriteReference(1, 100))
	require.NoError(t, w.WriteReference(2, 100))
	require.NoError(t, w.EndComplexValue())

	data := append([]byte(nil), w.Bytes()...)
	w.Finish()

	r, err := codec.NewReader(data, codec.WithReaderCatalog(catalog))
	require.NoError(t, err)

	v, err := r.ReadObject(0)
	require.NoError(t, err)
	elems := v.([]any)
	require.Equal(t, point{X: 7}, elems[0])
	require.Equal(t, point{X: 7}, elems[1])
	require.Equal(t, point{X: 7}, elems[2])
}

// TestSeedScenarioS4 writes a sparse array of logical length 1000 with
// only two entries present, checks the encoding stays small, and checks
// that the generic decode yields both entries with an absent index coming
// back as nil.
func TestSeedScenarioS4(t *testing.T) {
	w, err := codec.NewWriter()
	require.NoError(t, err)

	require.NoError(t, w.BeginSparseArray(0, 1000))
	require.NoError(t, w.WriteString(0, "A"))
	require.NoError(t, w.WriteString(999, "B"))
	require.NoError(t, w.EndComplexValue())

	data := append([]byte(nil), w.Bytes()...)
	w.Finish()
	require.Less(t, len(data), 40)

	r, err := codec.NewReader(data)
	require.NoError(t, err)

	v, err := r.ReadObject(0)
	require.NoError(t, err)
	elems := v.([]any)
	require.Equal(t, "A", elems[0])
	require.Nil(t, elems[500])
	require.Equal(t, "B", elems[999])
}

// TestSeedScenarioS4Ordered re-encodes the S4 sparse array and reads it
// through the positional user-type API instead of the generic []any
// decode, checking that BeginUserType rejects a value that is a sparse
// array rather than a user type.
func TestSeedScenarioS4Ordered(t *testing.T) {
	w, err := codec.NewWriter()
	require.NoError(t, err)

	require.NoError(t, w.BeginSparseArray(0, 1000))
	require.NoError(t, w.WriteString(0, "A"))
	require.NoError(t, w.WriteString(999, "B"))
	require.NoError(t, w.EndComplexValue())

	data := append([]byte(nil), w.Bytes()...)
	w.Finish()

	r, err := codec.NewReader(data)
	require.NoError(t, err)

	_, present, err := r.BeginUserType(0)
	require.Error(t, err) // position 0 is a sparse array, not a user type
	require.False(t, present)
}

// TestSeedScenarioS5 walks through forward-compatibility via remainder: a
// version-1 writer with properties {0,1,2}, a version-0 reader that only
// understands property 0 and carries the rest forward as a remainder, and
// a re-encode that replaces property 0 while leaving the remainder intact.
func TestSeedScenarioS5(t *testing.T) {
	w, err := codec.NewWriter()
	require.NoError(t, err)

	require.NoError(t, w.BeginUserType(0, 0, false, 42, 1))
	require.NoError(t, w.WriteString(0, "a"))
	require.NoError(t, w.WriteString(1, "b"))
	require.NoError(t, w.WriteString(2, "c"))
	require.NoError(t, w.EndComplexValue())

	original := append([]byte(nil), w.Bytes()...)
	w.Finish()

	r, err := codec.NewReader(original)
	require.NoError(t, err)

	_, present, err := r.BeginUserType(0)
	require.NoError(t, err)
	require.True(t, present)

	first, err := r.ReadString(0)
	require.NoError(t, err)
	require.Equal(t, "a", first)

	remainder, err := r.Remainder()
	require.NoError(t, err)
	require.NoError(t, r.EndComplexValue())

	w2, err := codec.NewWriter()
	require.NoError(t, err)
	defer w2.Finish()

	require.NoError(t, w2.BeginUserType(0, 0, false, 42, 1))
	require.NoError(t, w2.WriteString(0, "A")) // replaced property 0
	require.NoError(t, w2.WriteRemainder(remainder))
	require.NoError(t, w2.EndComplexValue())

	reencoded := w2.Bytes()

	r2, err := codec.NewReader(reencoded)
	require.NoError(t, err)

	_, present, err = r2.BeginUserType(0)
	require.NoError(t, err)
	require.True(t, present)

	v0, err := r2.ReadString(0)
	require.NoError(t, err)
	require.Equal(t, "A", v0)

	v1, err := r2.ReadString(1)
	require.NoError(t, err)
	require.Equal(t, "b", v1)

	v2, err := r2.ReadString(2)
	require.NoError(t, err)
	require.Equal(t, "c", v2)

	require.NoError(t, r2.EndComplexValue())
}

// TestSeedScenarioS6 writes a uniform array of user-type values mixing
// T_IDENTITY, T_REFERENCE, and two direct values, verifying the reader
// resolves identity/reference inside a uniform container without
// requiring a per-element type tag.
func TestSeedScenarioS6(t *testing.T) {
	catalog := seedCatalog{typeID: 9, ser: pointSerializer{}, match: func(v any) bool { _, ok := v.(point); return ok }}

	w, err := codec.NewWriter(codec.WithWriterCatalog(catalog))
	require.NoError(t, err)

	require.NoError(t, w.BeginUniformArray(0, 4, format.Tag(9)))
	require.NoError(t, w.RegisterIdentity(55))
	require.NoError(t, w.WriteObject(0, 0, false, point{X: 1}))
	require.NoError(t, w.WriteReference(1, 55))
	require.NoError(t, w.WriteObject(2, 0, false, point{X: 2}))
	require.NoError(t, w.WriteObject(3, 0, false, point{X: 3}))
	require.NoError(t, w.EndComplexValue())

	data := append([]byte(nil), w.Bytes()...)
	w.Finish()

	r, err := codec.NewReader(data, codec.WithReaderCatalog(catalog))
	require.NoError(t, err)

	v, err := r.ReadObject(0)
	require.NoError(t, err)
	elems := v.([]any)
	require.Equal(t, point{X: 1}, elems[0])
	require.Equal(t, point{X: 1}, elems[1]) // resolved via T_REFERENCE
	require.Equal(t, point{X: 2}, elems[2])
	require.Equal(t, point{X: 3}, elems[3])
}
