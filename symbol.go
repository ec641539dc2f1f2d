package grin

// Symbol represents a symbol in the GRIN alphabet: the byte values 0 through
// 255, plus EOF.
type Symbol uint16

// EOF is the end-of-stream symbol.  It terminates every GRIN payload and
// never appears as data.
const EOF = Symbol(256)

// NumSymbols is the size of the alphabet.
const NumSymbols = 257

// symbolBits is the fixed width of a serialized Symbol.  Nine bits
// accommodate the 256 sentinel, which does not fit in a byte.
const symbolBits = 9
