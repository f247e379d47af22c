package peekio

import "io"

// compactAt is the capacity below which an elasticBuffer never bothers
// reclaiming front slack.
const compactAt = 24 * 1024

// elasticBuffer holds the bytes between the read cursor and the furthest
// point ever peeked. Live bytes occupy storage[begin:]; storage[:begin] is
// front slack kept so that pushFront is cheap. slack records how much front
// space to reserve the next time the buffer reallocates for a pushFront,
// doubling under pushback-heavy use and shrinking again on compaction.
type elasticBuffer struct {
	storage []byte
	begin   int
	slack   int
}

func (b *elasticBuffer) bytes() []byte {
	return b.storage[b.begin:]
}

func (b *elasticBuffer) length() int {
	return len(b.storage) - b.begin
}

func (b *elasticBuffer) capacity() int {
	return cap(b.storage)
}

// drop discards up to n live bytes from the front.
func (b *elasticBuffer) drop(n int) {
	b.begin = min(b.begin+n, len(b.storage))
	if b.begin == len(b.storage) {
		b.storage = b.storage[:0]
		b.begin = 0
	}
}

// compact shifts live bytes to the start when front slack dominates a
// sufficiently large buffer, reclaiming the space for future fills.
func (b *elasticBuffer) compact() {
	if cap(b.storage) >= compactAt && b.begin >= cap(b.storage)/2 {
		n := copy(b.storage, b.storage[b.begin:])
		b.storage = b.storage[:n]
		b.begin = 0
		b.slack /= 2
	}
}

// pushFront inserts data ahead of the live bytes. When the front slack is
// too small the buffer reallocates, reserving geometrically more slack so
// repeated small pushbacks amortize to O(1) per byte.
func (b *elasticBuffer) pushFront(data []byte) {
	n := len(data)
	if n == 0 {
		return
	}
	if n <= b.begin {
		b.begin -= n
		copy(b.storage[b.begin:], data)
		return
	}
	b.slack = 2*b.slack + n
	live := b.storage[b.begin:]
	storage := make([]byte, b.slack+n+len(live))
	copy(storage[b.slack:], data)
	copy(storage[b.slack+n:], live)
	b.storage = storage
	b.begin = b.slack
}

// readFrom pulls up to n more bytes from r into the tail of the buffer,
// stopping early only at end of stream. Reaching EOF is not an error; the
// buffer is simply left short.
func (b *elasticBuffer) readFrom(r io.Reader, n int) (int, error) {
	grown := 0
	for grown < n {
		if len(b.storage) == cap(b.storage) {
			storage := make([]byte, len(b.storage), max(2*cap(b.storage), len(b.storage)+n-grown, 64))
			copy(storage, b.storage)
			b.storage = storage
		}
		spare := b.storage[len(b.storage):cap(b.storage)]
		if len(spare) > n-grown {
			spare = spare[:n-grown]
		}
		nn, err := readRetry(r, spare)
		b.storage = b.storage[:len(b.storage)+nn]
		grown += nn
		if err == io.EOF {
			break
		}
		if err != nil {
			return grown, err
		}
	}
	return grown, nil
}
