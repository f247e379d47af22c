package peekio

import (
	"io"
	"unicode/utf8"
)

// State is the per-session state of a Cursor. It is zeroed when a session
// starts and discarded when the Cursor is closed; it exists so that
// implementations without storage of their own (for example BytesReader)
// have somewhere to keep their bookkeeping.
type State struct {
	// Pos is the peek cursor's offset relative to the read cursor.
	// It is never negative.
	Pos int64
	// Scratch is a one-byte window for implementations that need a
	// temporary buffer to produce a PeekFillBuf view.
	Scratch [1]byte
	// ReadAhead is a caller hint requesting larger batched reads from the
	// underlying source. Zero means read only what is needed.
	ReadAhead int
}

// Cursor is a peek session over a PeekReader. It reads ahead in the stream
// without moving the read cursor.
//
// A Cursor implements io.Reader, io.Seeker, and io.Closer. Seeking is
// relative to the read cursor: offset 0 from io.SeekStart is exactly where
// the read cursor stood when the session began, and seeks can never land
// before it. Close must be called on every exit path; for SeekReader it is
// what restores the source's position. Operations on a closed Cursor return
// ErrClosed.
type Cursor struct {
	impl   Implementation
	state  State
	closed bool
}

// NewCursor binds a Cursor to a backing implementation. Wrappers call this
// from their Peek method; there is no reason to call it otherwise.
func NewCursor(impl Implementation) *Cursor {
	return &Cursor{impl: impl}
}

// SetReadAhead asks the backing implementation to read at least n bytes at a
// time from the underlying source. Larger read-ahead can reduce the number
// of small reads at the cost of blocking for data the caller may not need.
func (c *Cursor) SetReadAhead(n int) {
	c.state.ReadAhead = n
}

func (c *Cursor) Read(p []byte) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	return c.impl.PeekRead(&c.state, p)
}

// ReadFull reads exactly len(p) bytes, returning io.ErrUnexpectedEOF if the
// stream ends first (or io.EOF if it ends before any bytes are read).
func (c *Cursor) ReadFull(p []byte) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	if rf, ok := c.impl.(ReadFuller); ok {
		return rf.PeekReadFull(&c.state, p)
	}
	return io.ReadFull(implReader{c.impl, &c.state}, p)
}

// ReadToEnd reads all remaining peekable bytes.
func (c *Cursor) ReadToEnd() ([]byte, error) {
	if c.closed {
		return nil, ErrClosed
	}
	return io.ReadAll(implReader{c.impl, &c.state})
}

// ReadString reads all remaining peekable bytes as text, returning
// ErrInvalidData if they are not valid UTF-8.
func (c *Cursor) ReadString() (string, error) {
	b, err := c.ReadToEnd()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidData
	}
	return string(b), nil
}

// FillBuf returns a view of at least one byte of lookahead without advancing
// the peek cursor. An empty view means the stream has ended. The view is
// only valid until the next operation on the Cursor or its stream.
func (c *Cursor) FillBuf() ([]byte, error) {
	if c.closed {
		return nil, ErrClosed
	}
	return c.impl.PeekFillBuf(&c.state)
}

// Consume marks the first n bytes of the last FillBuf view as read.
func (c *Cursor) Consume(n int) {
	if c.closed {
		return
	}
	c.impl.PeekConsume(&c.state, n)
}

func (c *Cursor) Seek(offset int64, whence int) (int64, error) {
	if c.closed {
		return 0, ErrClosed
	}
	return c.impl.PeekSeek(&c.state, offset, whence)
}

// Position returns the peek cursor's offset from the read cursor.
func (c *Cursor) Position() (int64, error) {
	if c.closed {
		return 0, ErrClosed
	}
	if p, ok := c.impl.(Positioner); ok {
		return p.PeekPosition(&c.state)
	}
	return c.impl.PeekSeek(&c.state, 0, io.SeekCurrent)
}

// Close ends the peek session, running the implementation's cleanup hook.
// Closing an already closed Cursor is a no-op.
func (c *Cursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if pc, ok := c.impl.(Closer); ok {
		pc.PeekClose(&c.state)
	}
	return nil
}
