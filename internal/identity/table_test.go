package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brinewire/pof/errs"
)

func TestRegisterAndLookup(t *testing.T) {
	tbl := NewTable()

	require.NoError(t, tbl.Register(100, "hello"))

	v, ok := tbl.Lookup(100)
	require.True(t, ok)
	require.Equal(t, "hello", v)
	require.Equal(t, 1, tbl.Count())
}

func TestDuplicateRegistration(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.Register(1, "a"))

	err := tbl.Register(1, "a")
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrDuplicateIdentity))
}

func TestMissingIdentity(t *testing.T) {
	tbl := NewTable()

	_, err := tbl.MustLookup(42)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrMissingIdentity))
}

func TestReset(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.Register(1, "a"))
	tbl.Reset()

	require.Equal(t, 0, tbl.Count())
	require.False(t, tbl.Has(1))
}
