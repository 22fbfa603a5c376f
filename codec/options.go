package codec

import (
	"github.com/brinewire/pof/errs"
	"github.com/brinewire/pof/internal/options"
)

// DefaultMaxDepth bounds how deeply Reader.skipValue and Reader's typed
// getters will recurse into nested complex values before giving up with a
// range error. See spec.md §9's "recursion on large collections" note: an
// adversarial stream should not be able to blow the host's call stack.
const DefaultMaxDepth = 1000

// WriterOption configures a Writer.
type WriterOption = options.Option[*Writer]

// ReaderOption configures a Reader.
type ReaderOption = options.Option[*Reader]

// WithWriterMaxDepth overrides the nesting-depth guard on a Writer.
func WithWriterMaxDepth(depth int) WriterOption {
	return options.New(func(w *Writer) error {
		if depth <= 0 {
			return errs.Range("max depth must be positive")
		}
		w.maxDepth = depth
		return nil
	})
}

// WithReaderMaxDepth overrides the nesting-depth guard on a Reader.
func WithReaderMaxDepth(depth int) ReaderOption {
	return options.New(func(r *Reader) error {
		if depth <= 0 {
			return errs.Range("max depth must be positive")
		}
		r.maxDepth = depth
		return nil
	})
}

// WithWriterCatalog and WithReaderCatalog attach the Catalog a Writer or
// Reader uses to resolve user type serializers. Without one,
// Writer.WriteObject fails with errs.ErrUnsupported (no value has a
// registered type id) and decoding a user-type value through
// Reader.ReadObject fails with errs.ErrUnknownType; BeginUserType on
// either side does not consult the catalog.
func WithWriterCatalog(c Catalog) WriterOption {
	return options.New(func(w *Writer) error {
		w.catalog = c
		return nil
	})
}

func WithReaderCatalog(c Catalog) ReaderOption {
	return options.New(func(r *Reader) error {
		r.catalog = c
		return nil
	})
}
