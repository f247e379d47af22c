package peekio

import "io"

// BytesReader is a PeekReader over a fixed byte slice. The whole content is
// already addressable, so peeking needs no buffering: all bookkeeping lives
// in the session State.
type BytesReader struct {
	s   []byte
	off int
}

var (
	_ PeekReader = (*BytesReader)(nil)
	_ ReadFuller = (*BytesReader)(nil)
	_ Positioner = (*BytesReader)(nil)
)

// NewBytesReader returns a BytesReader reading from b.
func NewBytesReader(b []byte) *BytesReader {
	return &BytesReader{s: b}
}

// rest returns the bytes remaining past the read cursor.
func (r *BytesReader) rest() []byte {
	return r.s[r.off:]
}

func (r *BytesReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.off >= len(r.s) {
		return 0, io.EOF
	}
	n := copy(p, r.s[r.off:])
	r.off += n
	return n, nil
}

func (r *BytesReader) Peek() *Cursor {
	return NewCursor(r)
}

// ahead returns the bytes past the peek cursor.
func (r *BytesReader) ahead(s *State) []byte {
	rest := r.rest()
	if s.Pos >= int64(len(rest)) {
		return nil
	}
	return rest[s.Pos:]
}

func (r *BytesReader) PeekRead(s *State, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	avail := r.ahead(s)
	if len(avail) == 0 {
		return 0, io.EOF
	}
	n := copy(p, avail)
	s.Pos += int64(n)
	return n, nil
}

func (r *BytesReader) PeekReadFull(s *State, p []byte) (int, error) {
	avail := r.ahead(s)
	if len(avail) == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	n := copy(p, avail)
	s.Pos += int64(n)
	if n < len(p) {
		return n, io.ErrUnexpectedEOF
	}
	return n, nil
}

func (r *BytesReader) PeekFillBuf(s *State) ([]byte, error) {
	return r.ahead(s), nil
}

func (r *BytesReader) PeekConsume(s *State, n int) {
	s.Pos += int64(n)
}

func (r *BytesReader) PeekSeek(s *State, offset int64, whence int) (int64, error) {
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
		pos, err := addOffset(int64(len(r.rest())), offset)
		if err != nil {
			return 0, err
		}
		s.Pos = pos
	default:
		return 0, ErrInvalidSeek
	}
	return s.Pos, nil
}

func (r *BytesReader) PeekPosition(s *State) (int64, error) {
	return s.Pos, nil
}

// Empty is a PeekReader with no bytes.
type Empty struct{}

var _ PeekReader = Empty{}

func (Empty) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return 0, io.EOF
}

func (e Empty) Peek() *Cursor {
	return NewCursor(e)
}

func (Empty) PeekRead(s *State, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return 0, io.EOF
}

func (Empty) PeekFillBuf(s *State) ([]byte, error) {
	return nil, nil
}

func (Empty) PeekConsume(s *State, n int) {}

func (Empty) PeekSeek(s *State, offset int64, whence int) (int64, error) {
	return 0, nil
}

// Take is a PeekReader limited to the next n bytes of another PeekReader.
// Reading and peeking both stop at the limit; the underlying stream's bytes
// past it are untouched.
type Take struct {
	r     PeekReader
	limit int64
}

var _ PeekReader = (*Take)(nil)

// NewTake returns a Take reading at most limit bytes from r.
func NewTake(r PeekReader, limit int64) *Take {
	return &Take{r: r, limit: limit}
}

// Remaining returns the number of bytes left before the limit.
func (t *Take) Remaining() int64 {
	return t.limit
}

func (t *Take) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if t.limit <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > t.limit {
		p = p[:t.limit]
	}
	n, err := t.r.Read(p)
	t.limit -= int64(n)
	return n, err
}

func (t *Take) Peek() *Cursor {
	return NewCursor(t)
}

func (t *Take) PeekRead(s *State, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	rem := t.limit - s.Pos
	if rem <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > rem {
		p = p[:rem]
	}
	c := t.r.Peek()
	defer c.Close()
	if _, err := c.Seek(s.Pos, io.SeekStart); err != nil {
		return 0, err
	}
	n, err := c.Read(p)
	s.Pos += int64(n)
	return n, err
}

func (t *Take) PeekFillBuf(s *State) ([]byte, error) {
	if t.limit-s.Pos <= 0 {
		return nil, nil
	}
	c := t.r.Peek()
	defer c.Close()
	if _, err := c.Seek(s.Pos, io.SeekStart); err != nil {
		return nil, err
	}
	for {
		n, err := c.Read(s.Scratch[:])
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

func (t *Take) PeekConsume(s *State, n int) {
	s.Pos = min(s.Pos+int64(n), t.limit)
}

func (t *Take) PeekSeek(s *State, offset int64, whence int) (int64, error) {
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
		end, err := t.end()
		if err != nil {
			return 0, err
		}
		pos, err := addOffset(end, offset)
		if err != nil {
			return 0, err
		}
		s.Pos = pos
	default:
		return 0, ErrInvalidSeek
	}
	s.Pos = min(s.Pos, t.limit)
	return s.Pos, nil
}

// end finds the sub-stream's logical end: the limit, or the underlying
// stream's end if that comes first.
func (t *Take) end() (int64, error) {
	c := t.r.Peek()
	defer c.Close()
	end, err := c.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	return min(end, t.limit), nil
}
