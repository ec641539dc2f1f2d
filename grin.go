package grin

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// Magic is the 32-bit number at the start of every .grin stream.
const Magic = 0x736

const magicBits = 32

// BitReader is the bit-granular source the decoding side consumes.
// *bitio.Reader implements it.
type BitReader interface {
	ReadBool() (bool, error)
	ReadBits(n uint8) (uint64, error)
}

// BitWriter is the bit-granular sink the encoding side produces into.
// *bitio.Writer implements it; its Close pads the trailing partial byte.
type BitWriter interface {
	WriteBool(b bool) error
	WriteBits(r uint64, n uint8) error
}

var (
	_ BitReader = (*bitio.Reader)(nil)
	_ BitWriter = (*bitio.Writer)(nil)
)

var (
	// ErrBadMagic reports a stream that does not start with Magic.
	ErrBadMagic = errors.New("grin: bad magic number")

	// ErrTruncatedTree reports a bit source exhausted in the middle of a
	// serialized tree description.
	ErrTruncatedTree = errors.New("grin: truncated tree description")

	// ErrMalformedTree reports a serialized tree that no encoder
	// produces.
	ErrMalformedTree = errors.New("grin: malformed tree description")
)

// Compress writes the complete .grin stream for src to dst.  It reads src
// twice, once to count symbol frequencies and once to encode, rewinding in
// between.
func Compress(dst io.Writer, src io.ReadSeeker) error {
	freqs, err := CountFrequencies(bufio.NewReader(src))
	if err != nil {
		return err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return err
	}
	tree := NewTree(freqs)

	bufw := bufio.NewWriter(dst)
	bw := bitio.NewWriter(bufw)
	if err := bw.WriteBits(Magic, magicBits); err != nil {
		return err
	}
	if err := tree.Serialize(bw); err != nil {
		return err
	}
	if err := tree.Encode(bufio.NewReader(src), bw); err != nil {
		return err
	}
	if err := bw.Close(); err != nil {
		return err
	}
	return bufw.Flush()
}

// Decompress reads a .grin stream from src and writes the decoded bytes to
// dst.  A stream that does not start with the magic number fails with
// ErrBadMagic before anything is written to dst.
func Decompress(dst io.Writer, src io.Reader) error {
	br := bitio.NewReader(bufio.NewReader(src))
	magic, err := br.ReadBits(magicBits)
	if err != nil {
		// A stream too short to hold the magic is a format error; any
		// other read failure is the underlying I/O error and passes
		// through unchanged.
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: %v", ErrBadMagic, err)
		}
		return err
	}
	if magic != Magic {
		return fmt.Errorf("%w: 0x%x", ErrBadMagic, magic)
	}
	tree, err := ReadTree(br)
	if err != nil {
		return err
	}

	bufw := bufio.NewWriter(dst)
	if err := tree.Decode(br, bufw); err != nil {
		return err
	}
	return bufw.Flush()
}
