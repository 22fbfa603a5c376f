package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTinyIntRoundTrip(t *testing.T) {
	for n := int64(-1); n <= 22; n++ {
		tag, ok := TinyIntTag(n)
		require.True(t, ok)
		require.True(t, IsTinyInt(tag))
		require.Equal(t, n, TinyIntValue(tag))
	}
}

func TestTinyIntOutOfRange(t *testing.T) {
	_, ok := TinyIntTag(-2)
	require.False(t, ok)

	_, ok = TinyIntTag(23)
	require.False(t, ok)
}

func TestIsBuiltinAndUserType(t *testing.T) {
	require.True(t, IsBuiltin(TagInt32))
	require.False(t, IsUserType(TagInt32))

	require.True(t, IsUserType(Tag(1000)))
	require.False(t, IsBuiltin(Tag(1000)))
}

func TestClassification(t *testing.T) {
	require.True(t, IsCollectionTag(TagUniformArray))
	require.True(t, IsUniform(TagUniformArray))
	require.False(t, IsSparse(TagUniformArray))

	require.True(t, IsSparse(TagUniformSparseArray))
	require.True(t, IsMapTag(TagUniformMap))
}

func TestTagString(t *testing.T) {
	require.Equal(t, "INT32", TagInt32.String())
	require.Equal(t, "V_INT_22", ValueIntCeil.String())
	require.Equal(t, "user-type(1000)", Tag(1000).String())
}
