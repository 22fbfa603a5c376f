package codec

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/brinewire/pof/errs"
	"github.com/brinewire/pof/raw"
)

// The functions below implement the coercion table of spec.md §4.4: an
// integer property may be requested as a narrower or wider integer type,
// provided the stored value fits, and integer sources widen into the
// float and decimal getters. The integer getters accept integer, boolean,
// octet and char sources only; a float or Int128 source requested as an
// integer is a type mismatch. Tiny-int compact tags decode generically as int64 (see decodeByTag),
// so they flow through the same int64 case as a full-width integer.

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32: // also matches rune, so char sources land here
		return int64(n), true
	case int16:
		return int64(n), true
	case byte:
		return int64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func toInt16(v any) (int16, error) {
	if v == nil {
		return 0, nil
	}
	n, ok := asInt64(v)
	if !ok {
		return 0, errs.TypeMismatch("int16", 0)
	}
	if n < -1<<15 || n > 1<<15-1 {
		return 0, errs.Range("value out of range for int16")
	}

	return int16(n), nil
}

func toInt32(v any) (int32, error) {
	if v == nil {
		return 0, nil
	}
	n, ok := asInt64(v)
	if !ok {
		return 0, errs.TypeMismatch("int32", 0)
	}
	if n < -1<<31 || n > 1<<31-1 {
		return 0, errs.Range("value out of range for int32")
	}

	return int32(n), nil
}

func toInt64(v any) (int64, error) {
	if v == nil {
		return 0, nil
	}
	n, ok := asInt64(v)
	if !ok {
		return 0, errs.TypeMismatch("int64", 0)
	}

	return n, nil
}

func toFloat32(v any) (float32, error) {
	if v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case float32:
		return n, nil
	case float64:
		return float32(n), nil
	}
	if i, ok := asInt64(v); ok {
		return float32(i), nil
	}

	return 0, errs.TypeMismatch("float32", 0)
}

func toFloat64(v any) (float64, error) {
	if v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	}
	if i, ok := asInt64(v); ok {
		return float64(i), nil
	}

	return 0, errs.TypeMismatch("float64", 0)
}

// toDecimal widens integer and float kinds into a Decimal, per §4.4's
// "decimal: integer and float kinds". A float's shortest exact decimal
// text (strconv's %f with -1 precision) fixes its unscaled magnitude and
// scale; an integer gets scale 0.
func toDecimal(v any) (raw.Decimal, error) {
	if v == nil {
		return raw.Decimal{}, nil
	}
	if d, ok := v.(raw.Decimal); ok {
		return d, nil
	}
	if n, ok := asInt64(v); ok {
		return raw.NewDecimal(big.NewInt(n), 0), nil
	}

	switch f := v.(type) {
	case float64:
		return decimalFromFloat(f)
	case float32:
		return decimalFromFloat(float64(f))
	}

	return raw.Decimal{}, errs.TypeMismatch("decimal", 0)
}

func decimalFromFloat(f float64) (raw.Decimal, error) {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")

	unscaled, ok := new(big.Int).SetString(intPart+fracPart, 10)
	if !ok {
		return raw.Decimal{}, errs.TypeMismatch("decimal", 0)
	}
	if neg {
		unscaled.Neg(unscaled)
	}

	return raw.NewDecimal(unscaled, int32(len(fracPart))), nil //nolint:gosec
}

// toChar widens T_OCTET and integer promotions into a rune, per §4.4's
// "char: T_CHAR, T_OCTET, plus integer promotions".
func toChar(v any) (rune, error) {
	if v == nil {
		return 0, nil
	}

	switch n := v.(type) {
	case rune: // also matches int32, the tiny-int decode's narrower sibling
		return n, nil
	case byte:
		return rune(n), nil
	case int64:
		return rune(n), nil
	case int16:
		return rune(n), nil
	}

	return 0, errs.TypeMismatch("char", 0)
}

// toStringValue widens T_OCTET_STRING and array/collection-of-char values
// into a string, per §4.4. A nil element inside an array/collection
// source (a sparse gap) fills as the zero rune rather than being dropped,
// matching the table's "sparse variants (fill indices)" entry.
func toStringValue(v any) (string, error) {
	if v == nil {
		return "", nil
	}

	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	case []any:
		var b strings.Builder
		for _, e := range s {
			if e == nil {
				b.WriteRune(0)
				continue
			}
			r, ok := e.(rune)
			if !ok {
				return "", errs.TypeMismatch("string", 0)
			}
			b.WriteRune(r)
		}

		return b.String(), nil
	}

	return "", errs.TypeMismatch("string", 0)
}

// toOctetString widens an array/collection of octets into a []byte, per
// §4.4's "binary: ... T_ARRAY of octets, sparse variants".
func toOctetString(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}

	switch s := v.(type) {
	case []byte:
		return s, nil
	case []any:
		out := make([]byte, len(s))
		for i, e := range s {
			if e == nil {
				continue
			}
			b, ok := e.(byte)
			if !ok {
				return nil, errs.TypeMismatch("octet string", 0)
			}
			out[i] = b
		}

		return out, nil
	}

	return nil, errs.TypeMismatch("octet string", 0)
}
