// Package hash supplies the non-cryptographic hash used to derive a stable
// type id from a user type's qualified name, for registries that want
// name-addressed types instead of hand-assigned ones — the same role
// xxHash64 plays for mebo's metric-name-to-id lookup.
package hash

import "github.com/cespare/xxhash/v2"

// QualifiedName computes a 31-bit non-negative hash of name, suitable for
// use as a user-type id (type ids are required to be non-negative).
func QualifiedName(name string) int32 {
	sum := xxhash.Sum64String(name)
	return int32(sum & 0x7FFFFFFF) //nolint:gosec
}
