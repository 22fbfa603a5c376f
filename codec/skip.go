package codec

// skipValue discards one value positioned at the stream's current read
// cursor, using the frame on top of the stack to resolve uniform-element
// elision. Every shape the format defines (scalars, temporals, nested
// containers and maps, user types, identities, and references) is
// skippable this way because skipValueIn shares the same tag-dispatch
// path as a real read; it just discards the decoded value.
func (r *Reader) skipValue() error {
	return r.skipValueIn(r.top())
}

// skipValueIn is skipValue parameterized on an explicit frame. It exists
// for the frame-draining loops in Reader.EndComplexValue, which run after
// the frame being drained has already been popped off the stack — at that
// point r.top() would resolve to the wrong (enclosing) frame's uniform
// element type.
func (r *Reader) skipValueIn(f *readFrame) error {
	tag, err := r.nextTagIn(f)
	if err != nil {
		return err
	}

	_, err = r.decodeFromTag(tag)

	return err
}
