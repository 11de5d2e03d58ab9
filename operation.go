// Package ot validates operational-transformation edits.
//
// A Transformation is an ordered list of operations anchored at a moving
// cursor. Validating a transformation replays it against a working copy of the
// document it claims to start from and compares the result with the document
// it claims to produce.
//
// The basic operations are:
//   - Skip(n): Move cursor n bytes forward
//   - Delete(n): Delete n bytes at the cursor, cursor stays put
//   - Insert(s): Insert string s at the cursor, cursor moves past it
//
// All offsets and counts are byte offsets into the UTF-8 text, not runes or
// grapheme clusters.
package ot

import (
	"fmt"
	"strconv"
)

// Operation represents a single operation in a transformation.
// The set is closed: Insert, Delete and Skip are the only implementations.
type Operation interface {
	isOperation()
	fmt.Stringer
}

// Skip moves the cursor n bytes forward without modifying the document.
type Skip struct {
	N uint64
}

func (Skip) isOperation() {}

func (s Skip) String() string { return "Skip(" + strconv.FormatUint(s.N, 10) + ")" }

// Delete removes n bytes at the current cursor position.
type Delete struct {
	N uint64
}

func (Delete) isOperation() {}

func (d Delete) String() string { return "Delete(" + strconv.FormatUint(d.N, 10) + ")" }

// Insert adds text at the current cursor position.
type Insert struct {
	Text string
}

func (Insert) isOperation() {}

func (i Insert) String() string { return "Insert(" + strconv.Quote(i.Text) + ")" }

// Transformation is an ordered sequence of operations proposed as one edit.
//
// Operations are kept exactly as given. Unlike a composing operation sequence,
// adjacent operations are never merged or reordered, because each one is
// bounds-checked against the document state left by the previous one.
type Transformation struct {
	Ops []Operation
}

// NewTransformation creates a transformation from the given operations.
func NewTransformation(ops ...Operation) Transformation {
	return Transformation{Ops: ops}
}

// WithCapacity creates an empty transformation with pre-allocated capacity.
func WithCapacity(capacity int) *Transformation {
	return &Transformation{Ops: make([]Operation, 0, capacity)}
}

// Len returns the number of operations.
func (t Transformation) Len() int {
	return len(t.Ops)
}

// IsNoop returns true if replaying the transformation cannot change the text.
func (t Transformation) IsNoop() bool {
	for _, op := range t.Ops {
		switch v := op.(type) {
		case Insert:
			if v.Text != "" {
				return false
			}
		case Delete:
			if v.N != 0 {
				return false
			}
		}
	}
	return true
}

// Insert appends an Insert operation and returns t for chaining.
func (t *Transformation) Insert(s string) *Transformation {
	t.Ops = append(t.Ops, Insert{Text: s})
	return t
}

// Delete appends a Delete operation and returns t for chaining.
func (t *Transformation) Delete(n uint64) *Transformation {
	t.Ops = append(t.Ops, Delete{N: n})
	return t
}

// Skip appends a Skip operation and returns t for chaining.
func (t *Transformation) Skip(n uint64) *Transformation {
	t.Ops = append(t.Ops, Skip{N: n})
	return t
}

// Clone returns a copy of t whose operation slice is independent of t's.
func (t Transformation) Clone() Transformation {
	if t.Ops == nil {
		return Transformation{}
	}
	ops := make([]Operation, len(t.Ops))
	copy(ops, t.Ops)
	return Transformation{Ops: ops}
}
