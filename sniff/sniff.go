// Package sniff detects compression framings by their magic bytes using
// peekio lookahead, so detection never consumes from the stream.
package sniff

import (
	"compress/bzip2"
	"errors"
	"fmt"
	"io"

	"github.com/brimdata/peekio"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// ErrUnsupported indicates a framing that is detected but cannot be
// decoded.
var ErrUnsupported = errors.New("unsupported compression format")

// Format identifies a compression framing.
type Format int

const (
	Unknown Format = iota
	Gzip
	Zstd
	LZ4
	Snappy
	Bzip2
	Xz
)

func (f Format) String() string {
	switch f {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	case Snappy:
		return "snappy"
	case Bzip2:
		return "bzip2"
	case Xz:
		return "xz"
	default:
		return "unknown"
	}
}

// Longer magics come first so a prefix of one magic can't shadow another.
var magics = []struct {
	format Format
	magic  []byte
}{
	{Snappy, []byte("\xff\x06\x00\x00sNaPpY")},
	{Xz, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
	{Zstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{LZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
	{Bzip2, []byte("BZh")},
	{Gzip, []byte{0x1f, 0x8b}},
}

// Detect reports the compression framing of the upcoming bytes without
// consuming them. An unrecognized stream yields Unknown, not an error.
func Detect(r peekio.PeekReader) (Format, error) {
	for _, m := range magics {
		ok, err := peekio.StartsWith(r, m.magic)
		if err != nil {
			return Unknown, err
		}
		if ok {
			return m.format, nil
		}
	}
	return Unknown, nil
}

// NewReader sniffs r and returns a reader producing its decompressed bytes
// along with the detected framing. An unrecognized stream is passed through
// unchanged. The returned reader buffers; do not read from r directly
// afterward.
func NewReader(r io.Reader) (io.Reader, Format, error) {
	pr, ok := r.(peekio.PeekReader)
	if !ok {
		pr = peekio.NewBufReader(r)
	}
	format, err := Detect(pr)
	if err != nil {
		return nil, Unknown, err
	}
	switch format {
	case Gzip:
		zr, err := gzip.NewReader(pr)
		if err != nil {
			return nil, format, fmt.Errorf("gzip: %w", err)
		}
		return zr, format, nil
	case Zstd:
		zr, err := zstd.NewReader(pr)
		if err != nil {
			return nil, format, fmt.Errorf("zstd: %w", err)
		}
		return zr.IOReadCloser(), format, nil
	case LZ4:
		return lz4.NewReader(pr), format, nil
	case Snappy:
		return snappy.NewReader(pr), format, nil
	case Bzip2:
		return bzip2.NewReader(pr), format, nil
	case Xz:
		return nil, format, fmt.Errorf("xz: %w", ErrUnsupported)
	default:
		return pr, Unknown, nil
	}
}
