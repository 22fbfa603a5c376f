package codec_test

import (
	"math/big"
	"testing"

	"github.com/brinewire/pof/codec"
	"github.com/brinewire/pof/format"
	"github.com/brinewire/pof/raw"
	"github.com/stretchr/testify/require"
)

func TestRoundtripScalars(t *testing.T) {
	w, err := codec.NewWriter()
	require.NoError(t, err)

	require.NoError(t, w.WriteInt32(0, 42))
	require.NoError(t, w.WriteString(1, "hello"))
	require.NoError(t, w.WriteBool(2, true))
	require.NoError(t, w.WriteFloat64(3, 3.5))

	data := append([]byte(nil), w.Bytes()...)
	w.Finish()

	r, err := codec.NewReader(data)
	require.NoError(t, err)

	n, err := r.ReadInt32(0)
	require.NoError(t, err)
	require.Equal(t, int32(42), n)

	s, err := r.ReadString(1)
	require.NoError(t, err)
	require.Equal(t, "hello", s)

	b, err := r.ReadBool(2)
	require.NoError(t, err)
	require.True(t, b)

	f, err := r.ReadFloat64(3)
	require.NoError(t, err)
	require.Equal(t, 3.5, f)
}

// TestRoundtripChar covers the full leading-byte taxonomy of UTF-8: a
// one-byte ASCII char, a two-byte char, a three-byte char (the range
// §9 calls out as a source of off-by-one lead-byte mistakes), and a
// four-byte char outside the Basic Multilingual Plane.
func TestRoundtripChar(t *testing.T) {
	chars := []rune{'A', 'é', '中', '😀'}

	w, err := codec.NewWriter()
	require.NoError(t, err)

	for i, c := range chars {
		require.NoError(t, w.WriteChar(int32(i), c))
	}

	data := append([]byte(nil), w.Bytes()...)
	w.Finish()

	r, err := codec.NewReader(data)
	require.NoError(t, err)

	for i, c := range chars {
		got, err := r.ReadChar(int32(i))
		require.NoError(t, err)
		require.Equal(t, c, got)
	}
}

// TestCoercionWidenings exercises the §4.4 getters that widen from a
// source tag other than their own: a string read back from an octet
// string and from an array of chars, a binary blob read back from an
// array of octets, a decimal read back from integer and float sources,
// and a char read back from an octet.
func TestCoercionWidenings(t *testing.T) {
	w, err := codec.NewWriter()
	require.NoError(t, err)

	require.NoError(t, w.WriteOctetString(0, []byte("héllo")))

	require.NoError(t, w.BeginArray(1, 3))
	require.NoError(t, w.WriteChar(0, 'a'))
	require.NoError(t, w.WriteChar(1, 'b'))
	require.NoError(t, w.WriteChar(2, 'c'))
	require.NoError(t, w.EndComplexValue())

	require.NoError(t, w.BeginArray(2, 2))
	require.NoError(t, w.WriteOctet(0, 0x41))
	require.NoError(t, w.WriteOctet(1, 0x42))
	require.NoError(t, w.EndComplexValue())

	require.NoError(t, w.WriteInt32(3, 7))
	require.NoError(t, w.WriteFloat64(4, 2.5))
	require.NoError(t, w.WriteOctet(5, 9))

	data := append([]byte(nil), w.Bytes()...)
	w.Finish()

	r, err := codec.NewReader(data)
	require.NoError(t, err)

	s, err := r.ReadString(0)
	require.NoError(t, err)
	require.Equal(t, "héllo", s)

	arr, err := r.ReadString(1)
	require.NoError(t, err)
	require.Equal(t, "abc", arr)

	bin, err := r.ReadOctetString(2)
	require.NoError(t, err)
	require.Equal(t, []byte{0x41, 0x42}, bin)

	d, err := r.ReadDecimal(3)
	require.NoError(t, err)
	require.Equal(t, int64(7), d.Unscaled.Int64())
	require.Equal(t, int32(0), d.Scale)

	d2, err := r.ReadDecimal(4)
	require.NoError(t, err)
	require.Equal(t, int64(25), d2.Unscaled.Int64())
	require.Equal(t, int32(1), d2.Scale)

	c, err := r.ReadChar(5)
	require.NoError(t, err)
	require.Equal(t, rune(9), c)
}

func TestRoundtripSparseDefaultSkip(t *testing.T) {
	w, err := codec.NewWriter()
	require.NoError(t, err)

	require.NoError(t, w.BeginUserType(0, 0, false, 500, 0))
	require.NoError(t, w.WriteInt32(0, 0)) // default, sparse-skipped
	require.NoError(t, w.WriteString(1, "present"))
	require.NoError(t, w.EndComplexValue())

	data := append([]byte(nil), w.Bytes()...)
	w.Finish()

	r, err := codec.NewReader(data)
	require.NoError(t, err)

	frame, present, err := r.BeginUserType(0)
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, int32(500), frame.TypeID)

	n, err := r.ReadInt32(0)
	require.NoError(t, err)
	require.Equal(t, int32(0), n) // absent property reads as the zero value

	s, err := r.ReadString(1)
	require.NoError(t, err)
	require.Equal(t, "present", s)

	require.NoError(t, r.EndComplexValue())
}

func TestRoundtripUniformArray(t *testing.T) {
	w, err := codec.NewWriter()
	require.NoError(t, err)

	require.NoError(t, w.BeginUniformArray(0, 3, format.TagInt32))
	require.NoError(t, w.WriteInt32(0, 10))
	require.NoError(t, w.WriteInt32(1, 20))
	require.NoError(t, w.WriteInt32(2, 30))
	require.NoError(t, w.EndComplexValue())

	data := append([]byte(nil), w.Bytes()...)
	w.Finish()

	r, err := codec.NewReader(data)
	require.NoError(t, err)

	v, err := r.ReadObject(0)
	require.NoError(t, err)
	elems, ok := v.([]any)
	require.True(t, ok)
	require.Equal(t, []any{int32(10), int32(20), int32(30)}, elems)
}

func TestRoundtripMap(t *testing.T) {
	w, err := codec.NewWriter()
	require.NoError(t, err)

	require.NoError(t, w.BeginMap(0, 2))
	require.NoError(t, w.WriteString(0, "a"))
	require.NoError(t, w.WriteInt32(0, 1))
	require.NoError(t, w.WriteString(0, "b"))
	require.NoError(t, w.WriteInt32(0, 2))
	require.NoError(t, w.EndComplexValue())

	data := append([]byte(nil), w.Bytes()...)
	w.Finish()

	r, err := codec.NewReader(data)
	require.NoError(t, err)

	v, err := r.ReadObject(0)
	require.NoError(t, err)
	m, ok := v.(map[any]any)
	require.True(t, ok)
	require.Equal(t, int64(1), m["a"]) // tiny-int compact tags decode as int64
	require.Equal(t, int64(2), m["b"])
}

func TestRoundtripIdentityAndReference(t *testing.T) {
	w, err := codec.NewWriter()
	require.NoError(t, err)

	require.NoError(t, w.BeginCollection(0, 2))
	require.NoError(t, w.RegisterIdentity(7))
	require.NoError(t, w.WriteString(0, "shared"))
	require.NoError(t, w.WriteReference(1, 7))
	require.NoError(t, w.EndComplexValue())

	data := append([]byte(nil), w.Bytes()...)
	w.Finish()

	r, err := codec.NewReader(data)
	require.NoError(t, err)

	v, err := r.ReadObject(0)
	require.NoError(t, err)
	elems := v.([]any)
	require.Equal(t, "shared", elems[0])
	require.Equal(t, "shared", elems[1])
}

func TestRoundtripDecimal(t *testing.T) {
	w, err := codec.NewWriter()
	require.NoError(t, err)

	d := raw.NewDecimal(big.NewInt(12345), 2)
	require.NoError(t, w.WriteDecimal(0, d))

	data := append([]byte(nil), w.Bytes()...)
	w.Finish()

	r, err := codec.NewReader(data)
	require.NoError(t, err)

	got, err := r.ReadDecimal(0)
	require.NoError(t, err)
	require.Equal(t, int32(2), got.Scale)
	require.Equal(t, "12345", got.Unscaled.String())
}
