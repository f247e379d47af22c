package peekio

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesReader(t *testing.T) {
	r := NewBytesReader([]byte("hello world"))
	c := r.Peek()
	view, err := c.FillBuf()
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), view)
	c.Consume(6)
	rest, err := c.ReadToEnd()
	require.NoError(t, err)
	assert.Equal(t, []byte("world"), rest)
	require.NoError(t, c.Close())

	all, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), all)
}

func TestBytesReaderPeekIsRelativeToReadCursor(t *testing.T) {
	r := NewBytesReader([]byte("hello world"))
	_, err := io.CopyN(io.Discard, r, 6)
	require.NoError(t, err)
	c := r.Peek()
	defer c.Close()
	pos, err := c.Seek(0, io.SeekEnd)
	require.NoError(t, err)
	assert.EqualValues(t, 5, pos)
	_, err = c.Seek(0, io.SeekStart)
	require.NoError(t, err)
	buf := make([]byte, 5)
	_, err = c.ReadFull(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("world"), buf)
}

func TestEmpty(t *testing.T) {
	var e Empty
	c := e.Peek()
	defer c.Close()
	n, err := c.Read(make([]byte, 10))
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 0, n)
	pos, err := c.Seek(0, io.SeekEnd)
	require.NoError(t, err)
	assert.EqualValues(t, 0, pos)
	view, err := c.FillBuf()
	require.NoError(t, err)
	assert.Empty(t, view)
}

func TestTakeLimitsReads(t *testing.T) {
	r := NewTake(NewBytesReader([]byte("hello world")), 5)
	all, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), all)
	assert.EqualValues(t, 0, r.Remaining())
}

func TestTakeLimitsPeeks(t *testing.T) {
	r := NewTake(NewBytesReader([]byte("hello world")), 5)
	c := r.Peek()
	defer c.Close()
	b, err := c.ReadToEnd()
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), b)

	// Peeking consumed nothing from the sub-stream.
	assert.EqualValues(t, 5, r.Remaining())
	all, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), all)
}

func TestTakeSeekEnd(t *testing.T) {
	r := NewTake(NewBytesReader([]byte("hello world")), 5)
	c := r.Peek()
	defer c.Close()
	pos, err := c.Seek(0, io.SeekEnd)
	require.NoError(t, err)
	assert.EqualValues(t, 5, pos)
}

func TestTakeLimitPastEndOfStream(t *testing.T) {
	r := NewTake(NewBytesReader([]byte("abc")), 100)
	c := r.Peek()
	defer c.Close()
	pos, err := c.Seek(0, io.SeekEnd)
	require.NoError(t, err)
	assert.EqualValues(t, 3, pos)
	all, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), all)
}

func TestTakeFillBufEagerEOF(t *testing.T) {
	// A SeekReader underneath forwards a source's data-plus-EOF read;
	// the byte must still reach the FillBuf view.
	inner := NewSeekReader(&eagerEOFReader{bytes.NewReader([]byte("hi"))})
	r := NewTake(inner, 2)
	c := r.Peek()
	defer c.Close()
	view, err := c.FillBuf()
	require.NoError(t, err)
	assert.Equal(t, []byte("h"), view)
	c.Consume(1)
	view, err = c.FillBuf()
	require.NoError(t, err)
	assert.Equal(t, []byte("i"), view)
	c.Consume(1)
	view, err = c.FillBuf()
	require.NoError(t, err)
	assert.Empty(t, view)
}

func TestTakeOverBufReader(t *testing.T) {
	r := NewTake(NewBufReader(iotest.OneByteReader(strings.NewReader("hello world"))), 8)
	ok, err := StartsWith(r, []byte("hello"))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = StartsWith(r, []byte("hello wor"))
	require.NoError(t, err)
	assert.False(t, ok, "prefix past the limit must not match")
	all, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello wo"), all)
}
