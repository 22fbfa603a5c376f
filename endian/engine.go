// Package endian supplies the byte-order engines the wire format needs:
// IEEE-754 float payloads are always big-endian per the wire grammar.
// Rather than hand-rolling byte shuffling for each width, codec reads and
// writes them through one small interface over encoding/binary.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// Engine combines ByteOrder and AppendByteOrder so callers can both decode
// in place and append into a growing buffer without an intermediate copy.
// binary.LittleEndian and binary.BigEndian both satisfy it.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// WireFloatEngine returns the byte order mandated by the wire grammar for
// T_FLOAT32/T_FLOAT64/T_FLOAT128 payloads: big-endian, regardless of host
// or caller endianness preference elsewhere.
func WireFloatEngine() Engine { return binary.BigEndian }

// Little returns the little-endian engine.
func Little() Engine { return binary.LittleEndian }

// Big returns the big-endian engine.
func Big() Engine { return binary.BigEndian }

// hostOrder detects the native byte order using a canary value, for
// diagnostics only — the wire format itself never depends on host
// endianness.
func hostOrder() binary.ByteOrder {
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsHostLittleEndian reports whether the running process is little-endian.
func IsHostLittleEndian() bool {
	return hostOrder() == binary.LittleEndian
}
