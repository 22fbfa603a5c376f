package varint

import "github.com/brinewire/pof/errs"

// Int128 holds a signed 128-bit magnitude as used by T_INT128 payloads and
// the unscaled magnitude of a Decimal128. Magnitude is stored little-endian
// and may be shorter than 16 bytes (trailing most-significant zero bytes
// trimmed); AppendInt128 pads it back to 16 bytes on the wire.
type Int128 struct {
	Negative  bool
	Magnitude []byte // little-endian, no implicit padding
}

// AppendInt128 appends the wire encoding of v: packed_int(16) + a sign byte
// (0 = non-negative, 1 = negative) + the little-endian magnitude zero-padded
// to 16 bytes, see SPEC_FULL.md's open-question decision on RawInt128. A
// magnitude longer than 16 bytes is written with its own length, which
// DecodeInt128 rejects.
func AppendInt128(buf []byte, v Int128) []byte {
	size := len(v.Magnitude)
	if size < 16 {
		size = 16
	}
	buf = AppendInt32(buf, int32(size)) //nolint:gosec
	if v.Negative {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}

	buf = append(buf, v.Magnitude...)
	for i := len(v.Magnitude); i < size; i++ {
		buf = append(buf, 0)
	}

	return buf
}

// DecodeInt128 reads an Int128 from the front of data, returning the value
// and the number of bytes consumed.
func DecodeInt128(data []byte) (Int128, int, error) {
	length, n, err := DecodeInt32(data)
	if err != nil {
		return Int128{}, 0, err
	}
	if length < 0 || length > 16 {
		return Int128{}, 0, errs.Range("int128 magnitude length out of range")
	}

	offset := n
	if offset >= len(data) {
		return Int128{}, 0, errs.Truncated("int128: missing sign byte")
	}

	negative := data[offset] != 0
	offset++

	if offset+int(length) > len(data) {
		return Int128{}, 0, errs.Truncated("int128: magnitude bytes missing")
	}

	magnitude := make([]byte, length)
	copy(magnitude, data[offset:offset+int(length)])
	offset += int(length)

	return Int128{Negative: negative, Magnitude: magnitude}, offset, nil
}
