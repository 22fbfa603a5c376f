// Package varint implements the packed signed integer codec that underlies
// every length, position, and small numeric payload on the wire.
//
// The encoding is not standard LEB128: the sign occupies bit 6 of the first
// byte (so the first byte carries 6 data bits), and every subsequent byte
// carries 7 data bits, with bit 7 of every byte acting as a continuation
// flag. Negative numbers are stored as their ones' complement with the
// sign bit set, so -1 and 0 both encode in a single byte.
package varint
