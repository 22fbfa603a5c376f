// Package bufpool provides a pooled, growable byte buffer for the codec's
// Writer. A Writer's scratch buffer is requested once per stream (by
// NewWriter) and returned to the pool by Writer.Finish, the same lifecycle
// mebo's blob encoders use for their internal pool.ByteBuffer.
package bufpool

import "sync"

// DefaultSize is the capacity a fresh Buffer starts with.
const DefaultSize = 4 * 1024 // 4KiB: most user-type bodies fit without a regrow.

// MaxRetained is the largest buffer capacity the pool will keep around;
// larger buffers are discarded on Put rather than retained, to avoid one
// oversized stream bloating the pool for everyone after it.
const MaxRetained = 1024 * 1024 // 1MiB

// Buffer is a growable byte slice with an amortized growth strategy,
// reusable across streams via Get/Put.
type Buffer struct {
	B []byte
}

// Bytes returns the buffer's contents.
func (b *Buffer) Bytes() []byte { return b.B }

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int { return len(b.B) }

// Reset empties the buffer without releasing its backing array.
func (b *Buffer) Reset() { b.B = b.B[:0] }

// MustWrite appends data, growing the backing array if necessary.
func (b *Buffer) MustWrite(data []byte) {
	b.B = append(b.B, data...)
}

// MustWriteByte appends a single byte.
func (b *Buffer) MustWriteByte(c byte) {
	b.B = append(b.B, c)
}

// Slice returns the backing bytes from start to end. It panics if the
// range falls outside the buffer's capacity, matching the teacher's
// fail-fast contract for an internal-only type.
func (b *Buffer) Slice(start, end int) []byte {
	if start < 0 || end < start || end > cap(b.B) {
		panic("bufpool: Slice: invalid indices")
	}

	return b.B[start:end]
}

// Grow ensures the buffer can accept requiredBytes more bytes without a
// further reallocation.
func (b *Buffer) Grow(requiredBytes int) {
	available := cap(b.B) - len(b.B)
	if available >= requiredBytes {
		return
	}

	growBy := DefaultSize
	if cap(b.B) > 4*DefaultSize {
		growBy = cap(b.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(b.B), len(b.B)+growBy)
	copy(newBuf, b.B)
	b.B = newBuf
}

var pool = sync.Pool{
	New: func() any {
		return &Buffer{B: make([]byte, 0, DefaultSize)}
	},
}

// Get retrieves a reset Buffer from the pool.
func Get() *Buffer {
	buf, _ := pool.Get().(*Buffer)
	return buf
}

// Put returns buf to the pool, or discards it if it grew past MaxRetained.
func Put(buf *Buffer) {
	if buf == nil {
		return
	}
	if cap(buf.B) > MaxRetained {
		return
	}

	buf.Reset()
	pool.Put(buf)
}
