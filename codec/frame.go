package codec

import "github.com/brinewire/pof/format"

// complexFrame tracks one open composite value: a collection, array,
// sparse array, map, or user type. Writer keeps a stack of these, one per
// nesting level, the way mebo's NumericEncoder keeps an encoderState per
// column — here generalized to an arbitrary-depth stack because the wire
// format is recursive rather than flat-columnar.
type complexFrame struct {
	kind format.Tag // the begin_* tag that opened this frame

	sparse  bool // positions/property indices are written per-value and the frame ends with -1
	uniform bool
	elemTag format.Tag // valid when uniform

	isMap      bool
	isUniformK bool // uniform key type (UniformKeysMap, UniformMap)
	isUniformV bool // uniform value type (UniformMap only)
	keyTag     format.Tag
	valTag     format.Tag
	awaitValue bool // map alternator: false=expecting a key next, true=expecting a value

	degenerate bool // V_COLLECTION_EMPTY/V_STRING_ZERO_LENGTH-style frame with nothing to terminate

	pendingIdentity   bool
	pendingIdentityID int64
}

// elementTag returns the tag a map frame expects next (key or value), used
// by Writer to decide uniform elision for map entries.
func (f *complexFrame) elementTag() (format.Tag, bool) {
	if !f.isMap {
		return f.elemTag, f.uniform
	}
	if !f.awaitValue {
		return f.keyTag, f.isUniformK
	}

	return f.valTag, f.isUniformV
}
