package peekio

import "math"

// addOffset computes base+offset for a seek target. A result before the read
// cursor clamps to zero rather than erroring; a result past the int64 range
// returns ErrInvalidSeek. base must be nonnegative.
func addOffset(base, offset int64) (int64, error) {
	if offset > 0 && base > math.MaxInt64-offset {
		return 0, ErrInvalidSeek
	}
	if pos := base + offset; pos > 0 {
		return pos, nil
	}
	return 0, nil
}
