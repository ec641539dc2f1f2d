package grin

import (
	"errors"
	"fmt"
	"io"
)

// Decode reads codewords from br and writes the corresponding bytes to dst,
// stopping when the EOF codeword is read.  The EOF symbol itself is not
// written: it is a 9-bit control symbol, not a data byte.
//
// A bit source that runs out before the EOF codeword is a truncated stream;
// Decode keeps everything produced so far and returns nil rather than
// failing, since a well-formed stream always ends via EOF and the trailing
// padding of the final byte must not be mistaken for data.
func (t *Tree) Decode(br BitReader, dst io.ByteWriter) error {
	// A lone-leaf tree assigns a zero-length codeword, so the walk below
	// would never consume a bit.  The only such tree an encoder produces
	// is the EOF-only tree of an empty input.
	if t.root.leaf() {
		if t.root.symbol == EOF {
			return nil
		}
		return fmt.Errorf("%w: lone leaf %d makes every payload ambiguous", ErrMalformedTree, t.root.symbol)
	}

	cur := t.root
	for {
		bit, err := br.ReadBool()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return err
		}
		if bit {
			cur = cur.right
		} else {
			cur = cur.left
		}
		if cur.leaf() {
			if cur.symbol == EOF {
				return nil
			}
			if err := dst.WriteByte(byte(cur.symbol)); err != nil {
				return err
			}
			cur = t.root
		}
	}
}
