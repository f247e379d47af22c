package peekio

import (
	"errors"
	"io"
	"syscall"
)

// readRetry reads from r, retrying reads interrupted by a signal so EINTR
// never surfaces to callers.
func readRetry(r io.Reader, p []byte) (int, error) {
	for {
		n, err := r.Read(p)
		if n == 0 && errors.Is(err, syscall.EINTR) {
			continue
		}
		return n, err
	}
}

// seekRetry seeks s, retrying seeks interrupted by a signal.
func seekRetry(s io.Seeker, offset int64, whence int) (int64, error) {
	for {
		pos, err := s.Seek(offset, whence)
		if errors.Is(err, syscall.EINTR) {
			continue
		}
		return pos, err
	}
}
