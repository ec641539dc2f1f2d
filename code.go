package grin

import (
	"fmt"
	"strconv"
)

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The first bit of the
	// sequence is the most significant of the Size low-order bits, which
	// is the order bitio's WriteBits emits them in.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// appendBit returns the Code extended by one trailing bit.
func (hc Code) appendBit(bit uint64) Code {
	return Code{Size: hc.Size + 1, Bits: hc.Bits<<1 | bit}
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Bits))
}

var _ fmt.Stringer = Code{}
