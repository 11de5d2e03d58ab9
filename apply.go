package ot

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when a Skip or Delete would move past the end of the text.
	ErrOutOfBounds = errors.New("operation out of bounds")

	// ErrStateMismatch is returned when the replayed document differs from the expected one.
	ErrStateMismatch = errors.New("final state mismatch")

	// ErrInvalidDocument is returned when the starting document's cursor is outside its text.
	ErrInvalidDocument = errors.New("invalid document")
)

// OutOfBoundsError describes the first operation that overran the text.
type OutOfBoundsError struct {
	Index  int       // position of the operation in the transformation
	Op     Operation // the offending operation
	Cursor int       // cursor before the operation
	Len    int       // text length before the operation
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("op %d %s: cursor %d, text length %d: %v", e.Index, e.Op, e.Cursor, e.Len, ErrOutOfBounds)
}

func (e *OutOfBoundsError) Unwrap() error { return ErrOutOfBounds }

// MismatchError is returned when replay succeeded but produced the wrong document.
type MismatchError struct {
	Got  Document
	Want Document
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("got %s, want %s: %v", e.Got, e.Want, ErrStateMismatch)
}

func (e *MismatchError) Unwrap() error { return ErrStateMismatch }

// InvalidDocumentError is returned when a replay starts from a document whose
// cursor breaks 0 <= cursor <= len(text).
type InvalidDocumentError struct {
	Doc Document
}

func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("cursor %d outside text of length %d: %v", e.Doc.Cursor, len(e.Doc.Text), ErrInvalidDocument)
}

func (e *InvalidDocumentError) Unwrap() error { return ErrInvalidDocument }

// Step is one applied operation reported by ReplayFunc.
type Step struct {
	Index int
	Op    Operation
	Doc   Document // document state after Op
}

// Replay applies t to a copy of before and returns the resulting document.
//
// Returns an *OutOfBoundsError for the first Skip or Delete that would move
// past the end of the text; no later operations are attempted.
func Replay(before Document, t Transformation) (Document, error) {
	return ReplayFunc(before, t, nil)
}

// ReplayFunc is Replay with a callback invoked after every applied operation.
// fn may be nil.
func ReplayFunc(before Document, t Transformation, fn func(Step)) (Document, error) {
	if !before.Valid() {
		return Document{}, &InvalidDocumentError{Doc: before}
	}

	s := newStale(before)

	for i, op := range t.Ops {
		switch v := op.(type) {
		case Insert:
			s.insert(v.Text)
		case Skip:
			if v.N > s.remaining() {
				return Document{}, &OutOfBoundsError{Index: i, Op: op, Cursor: s.cursor, Len: len(s.text)}
			}
			s.skip(v.N)
		case Delete:
			if v.N > s.remaining() {
				return Document{}, &OutOfBoundsError{Index: i, Op: op, Cursor: s.cursor, Len: len(s.text)}
			}
			s.del(v.N)
		default:
			return Document{}, fmt.Errorf("op %d: unknown operation type %T", i, op)
		}

		if fn != nil {
			fn(Step{Index: i, Op: op, Doc: s.document()})
		}
	}

	return s.document(), nil
}

// Check replays t against before and compares the result with after.
//
// Returns nil if the transformation is valid, an *OutOfBoundsError if an
// operation overran the text, or a *MismatchError if the final text or
// cursor differ from after.
func Check(before, after Document, t Transformation) error {
	got, err := Replay(before, t)
	if err != nil {
		return err
	}
	if !got.Equal(after) {
		return &MismatchError{Got: got, Want: after}
	}
	return nil
}

// Validate reports whether t, applied to before, produces exactly after.
//
// It never panics on malformed input; every failure is reported as false.
// Use Check to learn why a transformation was rejected.
func Validate(before, after Document, t Transformation) bool {
	return Check(before, after, t) == nil
}
