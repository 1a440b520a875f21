package schema

import (
	"errors"

	"github.com/kilianp07/perfmap/core/logger"
)

// Optional downgrades a missing-field error to a warning on log and returns
// nil. Any other error is returned unchanged.
func Optional(log logger.Logger, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrMissingField) {
		logger.OrNop(log).Warnf("%v", err)
		return nil
	}
	return err
}

// Reader reads fields out of a Document. Reads are optional unless the key
// was listed in Require: a missing key produces a warning and leaves the
// destination untouched. Conversion failures are collected and returned by
// Err.
type Reader struct {
	doc     Document
	log     logger.Logger
	present  bool
	required map[string]bool
	errs     *[]error
}

// NewReader returns a Reader over doc reporting warnings on log.
func NewReader(doc Document, log logger.Logger) *Reader {
	return &Reader{doc: doc, log: logger.OrNop(log), present: true, errs: new([]error)}
}

// Document returns the document being read.
func (r *Reader) Document() Document { return r.doc }

// Present reports whether the object behind r exists.
func (r *Reader) Present() bool { return r.present }

// Err joins every error recorded by r and the readers derived from it.
func (r *Reader) Err() error { return errors.Join(*r.errs...) }

// Require records an error for every key that is missing and reports
// whether all were present. An absent object requires nothing.
func (r *Reader) Require(keys ...string) bool {
	if !r.present {
		return true
	}
	if r.required == nil {
		r.required = make(map[string]bool, len(keys))
	}
	ok := true
	for _, k := range keys {
		r.required[k] = true
		if !r.doc.Has(k) {
			*r.errs = append(*r.errs, r.doc.fieldErr(k, ErrMissingField))
			ok = false
		}
	}
	return ok
}

// Object returns a Reader for the nested object under key. A missing object
// is reported once as a warning; reads through the returned Reader are then
// skipped silently.
func (r *Reader) Object(key string) *Reader {
	child := &Reader{log: r.log, errs: r.errs}
	if !r.present {
		return child
	}
	sub, err := r.doc.Sub(key)
	if err != nil {
		r.handle(key, err)
		return child
	}
	child.doc = sub
	child.present = true
	return child
}

// Fail records err against key, for values that decode but fail validation.
func (r *Reader) Fail(key string, err error) {
	*r.errs = append(*r.errs, r.doc.fieldErr(key, err))
}

// handle records err, or warns when an optional key is missing. A missing
// required key was already recorded by Require.
func (r *Reader) handle(key string, err error) {
	if r.required[key] && errors.Is(err, ErrMissingField) {
		return
	}
	if err := Optional(r.log, err); err != nil {
		*r.errs = append(*r.errs, err)
	}
}

func read[T any](r *Reader, key string, dst *T, get func(Document, string) (T, error)) bool {
	if !r.present {
		return false
	}
	v, err := get(r.doc, key)
	if err != nil {
		r.handle(key, err)
		return false
	}
	*dst = v
	return true
}

// String reads a string field into dst.
func (r *Reader) String(key string, dst *string) bool { return read(r, key, dst, Document.String) }

// Float reads a numeric field into dst.
func (r *Reader) Float(key string, dst *float64) bool { return read(r, key, dst, Document.Float) }

// Int reads an integer field into dst.
func (r *Reader) Int(key string, dst *int) bool { return read(r, key, dst, Document.Int) }

// Bool reads a boolean field into dst.
func (r *Reader) Bool(key string, dst *bool) bool { return read(r, key, dst, Document.Bool) }

// Floats reads a numeric sequence into dst.
func (r *Reader) Floats(key string, dst *[]float64) bool { return read(r, key, dst, Document.Floats) }

// Ints reads an integer sequence into dst.
func (r *Reader) Ints(key string, dst *[]int) bool { return read(r, key, dst, Document.Ints) }

// Strings reads a string sequence into dst.
func (r *Reader) Strings(key string, dst *[]string) bool { return read(r, key, dst, Document.Strings) }

// Decode decodes the object under key into out using json struct tags.
func (r *Reader) Decode(key string, out any) bool {
	if !r.present {
		return false
	}
	if err := r.doc.Decode(key, out); err != nil {
		r.handle(key, err)
		return false
	}
	return true
}
