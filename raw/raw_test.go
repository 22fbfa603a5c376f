package raw

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDateValidate(t *testing.T) {
	require.NoError(t, Date{Year: 2024, Month: 2, Day: 29}.Validate())
	require.Error(t, Date{Year: 2023, Month: 2, Day: 29}.Validate())
	require.Error(t, Date{Year: 2024, Month: 13, Day: 1}.Validate())
	require.Error(t, Date{Year: 2024, Month: 4, Day: 31}.Validate())
}

func TestTimeValidate(t *testing.T) {
	require.NoError(t, Time{Hour: 23, Minute: 59, Second: 60, Nanosecond: 0}.Validate())
	require.Error(t, Time{Hour: 23, Minute: 59, Second: 60, Nanosecond: 1}.Validate())
	require.Error(t, Time{Hour: 24}.Validate())

	require.NoError(t, Time{Hour: 1, Zone: ZoneOffset, HourOffset: -12, MinuteOffset: 30}.Validate())
	require.Error(t, Time{Hour: 1, Zone: ZoneOffset, HourOffset: 24}.Validate())
}

func TestDecimalWidth(t *testing.T) {
	small := NewDecimal(big.NewInt(9_999_999), 2)
	w, err := small.Width()
	require.NoError(t, err)
	require.Equal(t, 32, w)

	mid := NewDecimal(big.NewInt(10_000_000), 2)
	w, err = mid.Width()
	require.NoError(t, err)
	require.Equal(t, 64, w)

	big128 := new(big.Int)
	big128.SetString("9999999999999999999999999999999999", 10) // 34 nines
	d := NewDecimal(big128, 0)
	w, err = d.Width()
	require.NoError(t, err)
	require.Equal(t, 128, w)

	tooBig := new(big.Int)
	tooBig.SetString("99999999999999999999999999999999999", 10) // 35 nines
	over := NewDecimal(tooBig, 0)
	_, err = over.Width()
	require.Error(t, err)
}
