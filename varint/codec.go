package varint

import "github.com/brinewire/pof/errs"

// MaxLen32 is the longest a packed 32-bit integer can encode to.
const MaxLen32 = 5

// MaxLen64 is the longest a packed 64-bit integer can encode to.
const MaxLen64 = 10

// AppendInt32 appends the packed encoding of n to buf and returns the
// extended slice. The encoding is canonical: it is always the shortest
// valid representation of n.
func AppendInt32(buf []byte, n int32) []byte {
	var uv uint32

	negative := n < 0
	if negative {
		uv = uint32(^n)
	} else {
		uv = uint32(n)
	}

	first := byte(uv & 0x3F)
	if negative {
		first |= 0x40
	}
	uv >>= 6

	if uv != 0 {
		first |= 0x80
	}
	buf = append(buf, first)

	for uv != 0 {
		b := byte(uv & 0x7F)
		uv >>= 7
		if uv != 0 {
			b |= 0x80
		}
		buf = append(buf, b)
	}

	return buf
}

// AppendInt64 appends the packed encoding of n to buf and returns the
// extended slice.
func AppendInt64(buf []byte, n int64) []byte {
	var uv uint64

	negative := n < 0
	if negative {
		uv = uint64(^n)
	} else {
		uv = uint64(n)
	}

	first := byte(uv & 0x3F)
	if negative {
		first |= 0x40
	}
	uv >>= 6

	if uv != 0 {
		first |= 0x80
	}
	buf = append(buf, first)

	for uv != 0 {
		b := byte(uv & 0x7F)
		uv >>= 7
		if uv != 0 {
			b |= 0x80
		}
		buf = append(buf, b)
	}

	return buf
}

// Len32 returns the number of bytes AppendInt32 would emit for n, without
// allocating.
func Len32(n int32) int {
	return len(AppendInt32(nil, n))
}

// Len64 returns the number of bytes AppendInt64 would emit for n, without
// allocating.
func Len64(n int64) int {
	return len(AppendInt64(nil, n))
}

// DecodeInt32 reads a packed 32-bit integer from the front of data.
// It returns the decoded value, the number of bytes consumed, and an error
// if data is truncated or the encoding exceeds MaxLen32 bytes.
//
// The decoder is lenient: it accepts any valid encoding of a value,
// including non-canonical (over-long) ones, as the spec requires.
func DecodeInt32(data []byte) (int32, int, error) {
	if len(data) == 0 {
		return 0, 0, errs.Truncated("packed int32: no bytes available")
	}

	first := data[0]
	negative := first&0x40 != 0

	var uv uint32 = uint32(first & 0x3F)
	shift := uint(6)
	consumed := 1
	cont := first&0x80 != 0

	for cont {
		if consumed >= MaxLen32 {
			return 0, 0, errs.Unsupported("packed int32: encoding exceeds maximum length")
		}
		if consumed >= len(data) {
			return 0, 0, errs.Truncated("packed int32: stream exhausted mid-token")
		}

		b := data[consumed]
		uv |= uint32(b&0x7F) << shift
		cont = b&0x80 != 0
		shift += 7
		consumed++
	}

	var n int32
	if negative {
		n = ^int32(uv) //nolint:gosec
	} else {
		n = int32(uv) //nolint:gosec
	}

	return n, consumed, nil
}

// DecodeInt64 reads a packed 64-bit integer from the front of data.
func DecodeInt64(data []byte) (int64, int, error) {
	if len(data) == 0 {
		return 0, 0, errs.Truncated("packed int64: no bytes available")
	}

	first := data[0]
	negative := first&0x40 != 0

	var uv uint64 = uint64(first & 0x3F)
	shift := uint(6)
	consumed := 1
	cont := first&0x80 != 0

	for cont {
		if consumed >= MaxLen64 {
			return 0, 0, errs.Unsupported("packed int64: encoding exceeds maximum length")
		}
		if consumed >= len(data) {
			return 0, 0, errs.Truncated("packed int64: stream exhausted mid-token")
		}

		b := data[consumed]
		uv |= uint64(b&0x7F) << shift
		cont = b&0x80 != 0
		shift += 7
		consumed++
	}

	var n int64
	if negative {
		n = ^int64(uv) //nolint:gosec
	} else {
		n = int64(uv) //nolint:gosec
	}

	return n, consumed, nil
}
