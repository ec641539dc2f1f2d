package grin

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// maxCodeBits is the widest codeword a CodeTable can carry.  Reaching it
// takes a frequency distribution skewed beyond anything a real file
// produces, so wider codes are rejected rather than truncated.
const maxCodeBits = 64

// CodeTable maps each Symbol to its codeword, indexed by Symbol.  Symbols
// absent from the tree have a zero-Size entry.
type CodeTable []Code

// CodeTable derives the codeword for every leaf of the tree: descending to a
// left child appends a 0 bit, descending to a right child appends a 1 bit.
// In the degenerate single-leaf tree the sole symbol gets the empty
// codeword.
func (t *Tree) CodeTable() (CodeTable, error) {
	codes := make(CodeTable, NumSymbols)
	if err := fillCodes(t.root, Code{}, codes); err != nil {
		return nil, err
	}
	return codes, nil
}

func fillCodes(n *node, prefix Code, codes CodeTable) error {
	if n.leaf() {
		codes[n.symbol] = prefix
		return nil
	}
	if prefix.Size == maxCodeBits {
		return fmt.Errorf("grin: codeword longer than %d bits", maxCodeBits)
	}
	if err := fillCodes(n.left, prefix.appendBit(0), codes); err != nil {
		return err
	}
	return fillCodes(n.right, prefix.appendBit(1), codes)
}

// Encode writes the codeword of every byte read from src to bw, in order,
// followed by the codeword for EOF.  The final EOF codeword is what lets the
// decoder recognize the end of the payload without trusting the trailing
// byte-alignment padding.
//
// Every byte of src must have a codeword; a byte outside the tree means the
// tree was not built from this input, which is a bug in the caller.
func (t *Tree) Encode(src io.ByteReader, bw BitWriter) error {
	codes, err := t.CodeTable()
	if err != nil {
		return err
	}
	for {
		b, err := src.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		hc := codes[b]
		assert.Assertf(hc.Size != 0, "no codeword for byte 0x%02x", b)
		if err := bw.WriteBits(hc.Bits, hc.Size); err != nil {
			return err
		}
	}
	// Only the lone-EOF-leaf tree of an empty input legitimately assigns
	// EOF the empty codeword; any other zero-Size entry means the tree
	// has no EOF leaf and the payload could never be terminated.
	eof := codes[EOF]
	assert.Assertf(eof.Size != 0 || (t.root.leaf() && t.root.symbol == EOF), "no codeword for EOF")
	return bw.WriteBits(eof.Bits, eof.Size)
}

// Dump writes a programmer-readable debugging dump of the code table to the
// given writer.  Symbols without a codeword are omitted.
func (ct CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	for symbol := Symbol(0); symbol < NumSymbols; symbol++ {
		hc := ct[symbol]
		if hc.Size == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\tCode(%d) = %s\n", symbol, hc)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
