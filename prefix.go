package peekio

import (
	"bytes"
	"io"
)

// prefixChunk is the read granularity for prefix comparison, so checking a
// long prefix against a short stream stops early.
const prefixChunk = 32

// StartsWith reports whether the next bytes of r equal prefix, without
// consuming anything. A stream shorter than prefix is a mismatch, not an
// error.
func StartsWith(r PeekReader, prefix []byte) (bool, error) {
	c := r.Peek()
	defer c.Close()
	var buf [prefixChunk]byte
	for len(prefix) > 0 {
		n := min(len(prefix), prefixChunk)
		if _, err := c.ReadFull(buf[:n]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return false, nil
			}
			return false, err
		}
		if !bytes.Equal(buf[:n], prefix[:n]) {
			return false, nil
		}
		prefix = prefix[n:]
	}
	return true, nil
}

// ConsumePrefix consumes prefix from r if and only if the stream starts
// with it, reporting whether it did. On a mismatch the read cursor is left
// untouched.
func ConsumePrefix(r PeekReader, prefix []byte) (bool, error) {
	ok, err := StartsWith(r, prefix)
	if err != nil || !ok {
		return false, err
	}
	if _, err := io.CopyN(io.Discard, r, int64(len(prefix))); err != nil {
		return false, err
	}
	return true, nil
}
