// Package identity tracks the per-stream mapping from identity id to the
// value registered under it, for both Writer (detecting an id registered
// twice) and Reader (resolving T_REFERENCE back to its subject value).
//
// This is the same shape of bookkeeping problem mebo's
// internal/collision.Tracker solves for metric-name hash collisions,
// applied here to stream-local identity ids instead of metric-name hashes.
package identity

import "github.com/brinewire/pof/errs"

// Table is a per-stream identity → value map. It is not safe for
// concurrent use; a Reader or Writer owns exactly one Table for its
// lifetime.
type Table struct {
	values map[int64]any
	order  []int64
}

// NewTable creates an empty identity table.
func NewTable() *Table {
	return &Table{values: make(map[int64]any)}
}

// Register binds id to value. It returns errs.DuplicateIdentity if id was
// already registered in this stream — ids are a stream-local namespace,
// not a value-equality cache, so a second registration is always rejected
// even if the value would compare equal.
func (t *Table) Register(id int64, value any) error {
	if _, exists := t.values[id]; exists {
		return errs.DuplicateIdentity(id)
	}

	t.values[id] = value
	t.order = append(t.order, id)

	return nil
}

// Lookup returns the value registered under id, if any.
func (t *Table) Lookup(id int64) (any, bool) {
	v, ok := t.values[id]
	return v, ok
}

// MustLookup returns the value registered under id, or
// errs.MissingIdentity if id was never registered.
func (t *Table) MustLookup(id int64) (any, error) {
	v, ok := t.values[id]
	if !ok {
		return nil, errs.MissingIdentity(id)
	}

	return v, nil
}

// Has reports whether id has been registered.
func (t *Table) Has(id int64) bool {
	_, ok := t.values[id]
	return ok
}

// Count returns the number of identities registered so far.
func (t *Table) Count() int { return len(t.order) }

// Reset clears the table for reuse by a new stream.
func (t *Table) Reset() {
	for k := range t.values {
		delete(t.values, k)
	}
	t.order = t.order[:0]
}
