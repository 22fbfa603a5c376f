package registry

import (
	"errors"
	"testing"

	"github.com/brinewire/pof/codec"
	"github.com/brinewire/pof/errs"
	"github.com/stretchr/testify/require"
)

type point struct{ X, Y int32 }

type pointSerializer struct{}

func (pointSerializer) Encode(w *codec.Writer, value any) error {
	p := value.(point)
	if err := w.WriteInt32(0, p.X); err != nil {
		return err
	}
	return w.WriteInt32(1, p.Y)
}

func (pointSerializer) Decode(r *codec.Reader, _ int32) (any, error) {
	x, err := r.ReadInt32(0)
	if err != nil {
		return nil, err
	}
	y, err := r.ReadInt32(1)
	if err != nil {
		return nil, err
	}

	return point{X: x, Y: y}, nil
}

func TestRegisterAndLookup(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(100, "point", false, point{}, pointSerializer{}))

	id, ok := reg.TypeIDForValue(point{X: 1, Y: 2})
	require.True(t, ok)
	require.Equal(t, int32(100), id)

	ser, err := reg.SerializerFor(100)
	require.NoError(t, err)
	require.NotNil(t, ser)

	desc, ok := reg.DescriptorFor(100)
	require.True(t, ok)
	require.Equal(t, "point", desc.Name)
	require.True(t, reg.ReferenceEnabled(100))
}

func TestRegisterDuplicateRejected(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(1, "a", false, point{}, pointSerializer{}))

	err := reg.Register(1, "b", false, point{}, pointSerializer{})
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrDuplicateIdentity))
}

func TestUnregister(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(1, "a", false, point{}, pointSerializer{}))
	reg.Unregister(1)

	_, err := reg.SerializerFor(1)
	require.True(t, errors.Is(err, errs.ErrUnknownType))
}

func TestEvolvableDisablesReference(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(2, "evolvable-point", true, point{}, pointSerializer{}))
	require.False(t, reg.ReferenceEnabled(2))
}

func TestNamedTypeIDStable(t *testing.T) {
	a := NamedTypeID("com.example.Order")
	b := NamedTypeID("com.example.Order")
	require.Equal(t, a, b)
	require.GreaterOrEqual(t, a, int32(0))
}
