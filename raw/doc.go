// Package raw is the thin temporal/decimal data model the wire format
// carries: raw year/month, raw time-of-day, raw date-time, and raw
// interval values, plus a host-agnostic decimal. Per spec.md §1 these are
// specified as a data model, not core engineering — there is no encode
// loop or identity tracking here, only field layout, range validation, and
// String() for diagnostics, in the style of mebo's format/types.go enums.
package raw
