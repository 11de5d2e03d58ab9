package ot

import "strconv"

// Document is one version of the edited text together with the cursor the
// next operation is anchored at.
type Document struct {
	Text   string `json:"text" yaml:"text"`
	Cursor int    `json:"cursor" yaml:"cursor"`
}

// NewDocument creates a document with the given text and cursor.
func NewDocument(text string, cursor int) Document {
	return Document{Text: text, Cursor: cursor}
}

// Valid reports whether 0 <= Cursor <= len(Text).
func (d Document) Valid() bool {
	return d.Cursor >= 0 && d.Cursor <= len(d.Text)
}

// Equal reports whether both text and cursor match.
func (d Document) Equal(o Document) bool {
	return d.Text == o.Text && d.Cursor == o.Cursor
}

func (d Document) String() string {
	return "(" + strconv.Quote(d.Text) + ", " + strconv.Itoa(d.Cursor) + ")"
}

// stale is the working copy mutated during replay. It owns its bytes so the
// caller's document is never touched.
type stale struct {
	text   []byte
	cursor int
}

func newStale(d Document) *stale {
	return &stale{text: []byte(d.Text), cursor: d.Cursor}
}

// remaining returns the number of bytes after the cursor.
func (s *stale) remaining() uint64 {
	return uint64(len(s.text) - s.cursor)
}

func (s *stale) insert(str string) {
	if str == "" {
		return
	}
	s.text = append(s.text, str...)
	copy(s.text[s.cursor+len(str):], s.text[s.cursor:len(s.text)-len(str)])
	copy(s.text[s.cursor:], str)
	s.cursor += len(str)
}

// skip and del assume the caller already checked n <= remaining().
func (s *stale) skip(n uint64) {
	s.cursor += int(n)
}

func (s *stale) del(n uint64) {
	end := s.cursor + int(n)
	s.text = append(s.text[:s.cursor], s.text[end:]...)
}

func (s *stale) document() Document {
	return Document{Text: string(s.text), Cursor: s.cursor}
}
