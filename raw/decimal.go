package raw

import (
	"math/big"

	"github.com/brinewire/pof/errs"
)

// Decimal is a host-agnostic arbitrary-precision decimal: an unscaled
// integer magnitude and a base-10 scale (value = unscaled * 10^-scale).
//
// Go has no native 128-bit integer, so unlike most of this package
// Decimal leans on math/big — the one place raw intentionally reaches
// past a fixed-width Go type, because no ecosystem library in the
// retrieval pack provides IEEE-754r decimal arithmetic and the format
// itself must support the full 34-nines Decimal128 range (see
// SPEC_FULL.md's open-question decision 4).
type Decimal struct {
	Unscaled *big.Int
	Scale    int32
}

// maxMagnitude32, maxMagnitude64 and maxMagnitude128 bound the unscaled
// magnitude representable at each wire width, per the IEEE-754r ranges
// cited in the wire grammar (§6): 7, 16, and 34 nines respectively.
var (
	maxMagnitude32  = mustPow10Minus1(7)
	maxMagnitude64  = mustPow10Minus1(16)
	maxMagnitude128 = mustPow10Minus1(34)
)

func mustPow10Minus1(nines int) *big.Int {
	ten := big.NewInt(10)
	limit := new(big.Int).Exp(ten, big.NewInt(int64(nines)), nil)
	return limit.Sub(limit, big.NewInt(1))
}

// NewDecimal builds a Decimal from an unscaled magnitude and scale.
func NewDecimal(unscaled *big.Int, scale int32) Decimal {
	return Decimal{Unscaled: unscaled, Scale: scale}
}

// Width reports the smallest wire width (32, 64, or 128) able to hold the
// decimal's unscaled magnitude, matching the writer's "picks the smallest"
// requirement (§3's invariants). It returns errs.Unsupported if the
// magnitude exceeds even the 128-bit range.
func (d Decimal) Width() (int, error) {
	if d.Unscaled == nil {
		return 32, nil
	}

	abs := new(big.Int).Abs(d.Unscaled)

	switch {
	case abs.Cmp(maxMagnitude32) <= 0:
		return 32, nil
	case abs.Cmp(maxMagnitude64) <= 0:
		return 64, nil
	case abs.Cmp(maxMagnitude128) <= 0:
		return 128, nil
	default:
		return 0, errs.Unsupported("decimal unscaled magnitude exceeds 34-nines Decimal128 range")
	}
}

// Validate reports whether d's magnitude fits any supported wire width.
func (d Decimal) Validate() error {
	_, err := d.Width()
	return err
}
