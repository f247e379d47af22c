package peekio

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufReaderPeekLeavesReadCursorAlone(t *testing.T) {
	r := NewBufReader(strings.NewReader("hello world"))
	c := r.Peek()
	view, err := c.FillBuf()
	require.NoError(t, err)
	require.NotEmpty(t, view)
	assert.Equal(t, byte('h'), view[0])
	c.Consume(6)
	rest, err := c.ReadToEnd()
	require.NoError(t, err)
	assert.Equal(t, []byte("world"), rest)
	require.NoError(t, c.Close())

	all, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), all)
}

func TestBufReaderUnreadRoundTrip(t *testing.T) {
	r := NewBufReader(strings.NewReader("world"))
	r.Unread([]byte("hello "))
	all, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), all)
}

func TestBufReaderUnreadAfterRead(t *testing.T) {
	r := NewBufReader(strings.NewReader("hello world"))
	buf := make([]byte, 6)
	_, err := io.ReadFull(r, buf)
	require.NoError(t, err)
	r.Unread(buf)
	all, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), all)
}

func TestBufReaderRepeatedUnread(t *testing.T) {
	r := NewBufReader(strings.NewReader("!"))
	for i := 0; i < 1000; i++ {
		r.Unread([]byte("ab"))
	}
	all, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ab", 1000)+"!", string(all))
}

func TestBufReaderSeekEnd(t *testing.T) {
	r := NewBufReader(strings.NewReader("hello world"))
	c := r.Peek()
	defer c.Close()
	pos, err := c.Seek(0, io.SeekEnd)
	require.NoError(t, err)
	assert.EqualValues(t, 11, pos)
	pos, err = c.Seek(-5, io.SeekEnd)
	require.NoError(t, err)
	assert.EqualValues(t, 6, pos)
	rest, err := c.ReadToEnd()
	require.NoError(t, err)
	assert.Equal(t, []byte("world"), rest)
}

func TestBufReaderSeekClampsAtReadCursor(t *testing.T) {
	r := NewBufReader(strings.NewReader("hello world"))
	c := r.Peek()
	defer c.Close()
	_, err := c.Seek(5, io.SeekStart)
	require.NoError(t, err)
	pos, err := c.Seek(-1000000, io.SeekCurrent)
	require.NoError(t, err)
	assert.EqualValues(t, 0, pos)
	pos, err = c.Seek(-3, io.SeekStart)
	require.NoError(t, err)
	assert.EqualValues(t, 0, pos)
}

func TestBufReaderPeekSessionsAreIndependent(t *testing.T) {
	r := NewBufReader(strings.NewReader("hello world"))
	c := r.Peek()
	_, err := c.ReadFull(make([]byte, 8))
	require.NoError(t, err)
	require.NoError(t, c.Close())

	// A new session starts back at the read cursor.
	c = r.Peek()
	defer c.Close()
	pos, err := c.Position()
	require.NoError(t, err)
	assert.EqualValues(t, 0, pos)
	buf := make([]byte, 5)
	_, err = c.ReadFull(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), buf)
}

func TestBufReaderMinReadSize(t *testing.T) {
	r := NewBufReader(strings.NewReader("abcdefghij"))
	r.SetMinReadSize(8)
	assert.Equal(t, 8, r.MinReadSize())
	buf := make([]byte, 1)
	_, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), buf)
	assert.Equal(t, []byte("bcdefgh"), r.Buffered())
}

func TestBufReaderLargeReadBypassesBuffer(t *testing.T) {
	inner := &countReader{Reader: strings.NewReader(strings.Repeat("x", 1000))}
	r := NewBufReader(inner)
	buf := make([]byte, 1000)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 1000, n)
	assert.Equal(t, 1, inner.calls)
	assert.Empty(t, r.Buffered())
}

func TestBufReaderFillBufConsume(t *testing.T) {
	r := NewBufReader(strings.NewReader("hello"))
	view, err := r.FillBuf()
	require.NoError(t, err)
	require.NotEmpty(t, view)
	assert.Equal(t, byte('h'), view[0])
	r.Consume(1)
	all, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("ello"), all)
}

func TestBufReaderFillBufAtEOF(t *testing.T) {
	r := NewBufReader(strings.NewReader(""))
	view, err := r.FillBuf()
	require.NoError(t, err)
	assert.Empty(t, view)
}

func TestBufReaderUnwrap(t *testing.T) {
	inner := strings.NewReader("abc")
	r := NewBufReader(inner)
	assert.Same(t, inner, r.Unwrap().(*strings.Reader))
}

func TestBufReaderPeekBeyondEOF(t *testing.T) {
	r := NewBufReader(strings.NewReader("abc"))
	c := r.Peek()
	defer c.Close()
	_, err := c.Seek(100, io.SeekStart)
	require.NoError(t, err)
	n, err := c.Read(make([]byte, 1))
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 0, n)
	view, err := c.FillBuf()
	require.NoError(t, err)
	assert.Empty(t, view)
}

type countReader struct {
	io.Reader
	calls int
}

func (r *countReader) Read(p []byte) (int, error) {
	r.calls++
	return r.Reader.Read(p)
}
