// Package peekio provides lookahead reading over byte streams.
//
// A PeekReader has, in addition to its normal read cursor, a session-scoped
// peek cursor that can move ahead of the read cursor but never behind it.
// Reading through the peek cursor does not affect the read cursor, so a
// parser can sniff magic bytes, try a format, and back out without consuming
// anything from the stream.
//
// Two wrappers turn an ordinary stream into a PeekReader: BufReader buffers
// peeked bytes for forward-only sources like sockets and pipes, and
// SeekReader uses the source's native seeking for files and in-memory
// buffers. Both present the same Cursor interface and behave identically for
// identical inputs.
package peekio

import (
	"errors"
	"io"
)

var (
	// ErrInvalidSeek indicates a seek whose target position does not fit
	// in an int64.
	ErrInvalidSeek = errors.New("invalid seek offset")

	// ErrInvalidData indicates that ReadString encountered bytes that are
	// not valid UTF-8.
	ErrInvalidData = errors.New("invalid UTF-8")

	// ErrClosed indicates an operation on a closed Cursor.
	ErrClosed = errors.New("closed peek cursor")
)

// PeekReader is a readable stream with a peek cursor.
//
// At most one Cursor may be open per PeekReader, and the stream must not be
// read directly while a Cursor is open. Close the Cursor before touching the
// read cursor again.
type PeekReader interface {
	io.Reader
	// Peek opens a peek session positioned at the read cursor. The
	// returned Cursor must be closed, typically with defer.
	Peek() *Cursor
}

// Implementation is the contract a stream wrapper satisfies to back a
// Cursor. Cursor forwards every operation here along with the session State.
//
// Only the four primitives are required. A wrapper that can do better than
// the generic composites built from them may additionally implement
// ReadFuller, Positioner, or Closer.
type Implementation interface {
	// PeekSeek repositions the peek cursor. Offset 0 from io.SeekStart is
	// the read cursor's position; seeking before it clamps to zero.
	PeekSeek(s *State, offset int64, whence int) (int64, error)

	// PeekRead reads from the peek cursor, advancing it by the number of
	// bytes read. It follows io.Reader semantics.
	PeekRead(s *State, p []byte) (int, error)

	// PeekFillBuf returns a view of at least one byte of lookahead
	// without advancing the peek cursor. An empty view means the stream
	// has ended.
	PeekFillBuf(s *State) ([]byte, error)

	// PeekConsume advances the peek cursor past the first n bytes of the
	// view last returned by PeekFillBuf.
	PeekConsume(s *State, n int)
}

// ReadFuller is implemented by wrappers that can satisfy an exact-size peek
// read more efficiently than repeated PeekRead calls.
type ReadFuller interface {
	PeekReadFull(s *State, p []byte) (int, error)
}

// Positioner is implemented by wrappers that can report the peek position
// without a seek.
type Positioner interface {
	PeekPosition(s *State) (int64, error)
}

// Closer is the cleanup hook run when a Cursor is closed. SeekReader uses it
// to restore the source's position.
type Closer interface {
	PeekClose(s *State)
}

// implReader adapts an Implementation and its session State to io.Reader so
// the generic composites can reuse the io helpers.
type implReader struct {
	impl Implementation
	s    *State
}

func (r implReader) Read(p []byte) (int, error) {
	return r.impl.PeekRead(r.s, p)
}
