package peekio

import (
	"io"
	"math"
)

// BufReader turns any forward-only io.Reader into a PeekReader by
// materializing peeked bytes in an elastic internal buffer. The buffer holds
// exactly the bytes between the read cursor and the furthest point peeked,
// so memory use is bounded by how far ahead the caller looks.
//
// BufReader also supports Unread, pushing bytes back in front of the read
// cursor so they are read again before the stream continues.
type BufReader struct {
	buf     elasticBuffer
	minRead int
	inner   io.Reader
}

// seekEndProbe is the smallest buffer request used when scanning for the end
// of the stream.
const seekEndProbe = 32

var (
	_ PeekReader = (*BufReader)(nil)
	_ ReadFuller = (*BufReader)(nil)
	_ Positioner = (*BufReader)(nil)
)

// NewBufReader returns a BufReader wrapping r. Reads against r are
// unbuffered until something is peeked or unread; see SetMinReadSize.
func NewBufReader(r io.Reader) *BufReader {
	return &BufReader{inner: r}
}

// Peek opens a peek session at the read cursor.
func (r *BufReader) Peek() *Cursor {
	return NewCursor(r)
}

// Unread pushes data back into the stream ahead of the read cursor. The
// next reads return data before the rest of the stream.
func (r *BufReader) Unread(data []byte) {
	r.buf.pushFront(data)
}

// SetMinReadSize sets the minimum size of reads issued to the underlying
// stream. A nonzero size gives buffered-read behavior like bufio.Reader but
// may block for more data than a caller asked for, so it is zero by default.
func (r *BufReader) SetMinReadSize(n int) {
	r.minRead = n
}

// MinReadSize returns the minimum underlying read size.
func (r *BufReader) MinReadSize() int {
	return r.minRead
}

// Buffered returns the bytes sitting between the read cursor and the
// furthest point peeked or unread. It does not read from the stream.
func (r *BufReader) Buffered() []byte {
	return r.buf.bytes()
}

// Unwrap returns the underlying reader. Reading from it directly while the
// BufReader holds buffered bytes will skip them.
func (r *BufReader) Unwrap() io.Reader {
	return r.inner
}

// request tries to make at least n bytes available in the buffer. Falling
// short because the stream ended is not an error.
func (r *BufReader) request(n int64, hint int) error {
	need := n - int64(r.buf.length())
	if need <= 0 {
		return nil
	}
	r.buf.compact()
	size := max(need, int64(r.minRead), int64(hint))
	_, err := r.buf.readFrom(r.inner, int(min(size, math.MaxInt)))
	return err
}

func (r *BufReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.buf.length() == 0 {
		// A read larger than the buffer bypasses it entirely to avoid
		// the extra copy.
		if len(p) >= max(r.buf.capacity(), r.minRead) {
			return readRetry(r.inner, p)
		}
		if err := r.request(int64(max(len(p), r.minRead)), 0); err != nil {
			return 0, err
		}
	}
	avail := r.buf.bytes()
	if len(avail) == 0 {
		return 0, io.EOF
	}
	n := copy(p, avail)
	r.buf.drop(n)
	return n, nil
}

// FillBuf returns the buffered bytes at the read cursor, pulling at least
// one byte from the stream if the buffer is empty. An empty result means
// the stream has ended.
func (r *BufReader) FillBuf() ([]byte, error) {
	if err := r.request(int64(max(1, r.minRead)), 0); err != nil {
		return nil, err
	}
	return r.buf.bytes(), nil
}

// Consume advances the read cursor past the first n buffered bytes.
func (r *BufReader) Consume(n int) {
	r.buf.drop(n)
}

func (r *BufReader) PeekRead(s *State, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := r.request(s.Pos+int64(len(p)), s.ReadAhead); err != nil {
		return 0, err
	}
	avail := r.buf.bytes()
	if s.Pos >= int64(len(avail)) {
		return 0, io.EOF
	}
	n := copy(p, avail[s.Pos:])
	s.Pos += int64(n)
	return n, nil
}

func (r *BufReader) PeekReadFull(s *State, p []byte) (int, error) {
	if err := r.request(s.Pos+int64(len(p)), s.ReadAhead); err != nil {
		return 0, err
	}
	avail := r.buf.bytes()
	if s.Pos >= int64(len(avail)) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, avail[s.Pos:])
	s.Pos += int64(n)
	if n < len(p) {
		return n, io.ErrUnexpectedEOF
	}
	return n, nil
}

func (r *BufReader) PeekFillBuf(s *State) ([]byte, error) {
	if err := r.request(s.Pos+1, s.ReadAhead); err != nil {
		return nil, err
	}
	avail := r.buf.bytes()
	if s.Pos >= int64(len(avail)) {
		return nil, nil
	}
	return avail[s.Pos:], nil
}

func (r *BufReader) PeekConsume(s *State, n int) {
	s.Pos += int64(n)
}

func (r *BufReader) PeekSeek(s *State, offset int64, whence int) (int64, error) {
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
		// The stream's end is unknown, so grow the buffer by doubling
		// requests until it stops growing.
		want := r.buf.length()
		for {
			want = max(2*want, seekEndProbe)
			if err := r.request(int64(want), s.ReadAhead); err != nil {
				return 0, err
			}
			if r.buf.length() < want {
				break
			}
		}
		pos, err := addOffset(int64(r.buf.length()), offset)
		if err != nil {
			return 0, err
		}
		s.Pos = pos
	default:
		return 0, ErrInvalidSeek
	}
	return s.Pos, nil
}

func (r *BufReader) PeekPosition(s *State) (int64, error) {
	return s.Pos, nil
}
