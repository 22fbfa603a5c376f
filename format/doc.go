// Package format holds the numeric constants that identify every token kind
// on the wire — the built-in type tags and the one-byte compact value tags —
// together with helpers for classifying and converting between them.
//
// These assignments are fixed for wire compatibility: two independent
// readers and writers built against this package produce and consume
// identical bytes for the same logical value.
package format
