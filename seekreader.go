package peekio

import "io"

// SeekReader turns an io.ReadSeeker into a PeekReader using the source's
// native seeking, with no buffering of its own. Each peek session records
// the source position it started at; every peek operation seeks to the
// absolute position startPos+Pos, and closing the session seeks back.
//
// The restoring seek on Close is best effort: an interrupted seek is
// retried, but any other failure is swallowed and leaves the source at an
// undefined position. Callers for whom that matters should seek the source
// explicitly after closing the Cursor.
type SeekReader struct {
	inner     io.ReadSeeker
	startPos  int64
	haveStart bool
}

var (
	_ PeekReader = (*SeekReader)(nil)
	_ Positioner = (*SeekReader)(nil)
	_ Closer     = (*SeekReader)(nil)
)

// NewSeekReader returns a SeekReader wrapping r.
func NewSeekReader(r io.ReadSeeker) *SeekReader {
	return &SeekReader{inner: r}
}

// Peek opens a peek session at the read cursor. Closing the returned Cursor
// restores the source's position.
func (r *SeekReader) Peek() *Cursor {
	r.haveStart = false
	return NewCursor(r)
}

func (r *SeekReader) Read(p []byte) (int, error) {
	return readRetry(r.inner, p)
}

func (r *SeekReader) Seek(offset int64, whence int) (int64, error) {
	return seekRetry(r.inner, offset, whence)
}

// Unwrap returns the underlying stream.
func (r *SeekReader) Unwrap() io.ReadSeeker {
	return r.inner
}

// start returns the session's start position, capturing it from the source
// on the first peek operation of the session.
func (r *SeekReader) start() (int64, error) {
	if !r.haveStart {
		pos, err := seekRetry(r.inner, 0, io.SeekCurrent)
		if err != nil {
			return 0, err
		}
		r.startPos = pos
		r.haveStart = true
	}
	return r.startPos, nil
}

func (r *SeekReader) PeekRead(s *State, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	start, err := r.start()
	if err != nil {
		return 0, err
	}
	if _, err := seekRetry(r.inner, start+s.Pos, io.SeekStart); err != nil {
		return 0, err
	}
	n, err := readRetry(r.inner, p)
	s.Pos += int64(n)
	return n, err
}

func (r *SeekReader) PeekFillBuf(s *State) ([]byte, error) {
	start, err := r.start()
	if err != nil {
		return nil, err
	}
	if _, err := seekRetry(r.inner, start+s.Pos, io.SeekStart); err != nil {
		return nil, err
	}
	for {
		// A source may return data together with io.EOF on the same
		// call; the byte still counts.
		n, err := readRetry(r.inner, s.Scratch[:])
		if n > 0 {
			return s.Scratch[:n], nil
		}
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (r *SeekReader) PeekConsume(s *State, n int) {
	s.Pos += int64(n)
}

func (r *SeekReader) PeekSeek(s *State, offset int64, whence int) (int64, error) {
	start, err := r.start()
	if err != nil {
		return 0, err
	}
	switch whence {
	case io.SeekStart:
		s.Pos = max(offset, 0)
	case io.SeekCurrent:
		pos, err := addOffset(s.Pos, offset)
		if err != nil {
			return 0, err
		}
		s.Pos = pos
	case io.SeekEnd:
		end, err := seekRetry(r.inner, 0, io.SeekEnd)
		if err != nil {
			return 0, err
		}
		// A truncated stream whose end precedes the session start
		// degenerates to an empty remainder.
		end = max(end, start)
		pos, err := addOffset(end-start, offset)
		if err != nil {
			return 0, err
		}
		s.Pos = pos
	default:
		return 0, ErrInvalidSeek
	}
	return s.Pos, nil
}

func (r *SeekReader) PeekPosition(s *State) (int64, error) {
	return s.Pos, nil
}

// PeekClose restores the source to the session's start position. Failures
// other than interruption are swallowed; see the type comment.
func (r *SeekReader) PeekClose(s *State) {
	if r.haveStart {
		seekRetry(r.inner, r.startPos, io.SeekStart)
	}
}
