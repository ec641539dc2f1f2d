// Package grin implements the GRIN lossless file format: a static Huffman
// code over a 257-symbol alphabet (the 256 byte values plus one end-of-stream
// marker), with the code tree serialized into the stream itself.
//
// A .grin file is a 32-bit magic number, a pre-order bit encoding of the
// Huffman tree, and the concatenated codewords of the input bytes terminated
// by the codeword for the end-of-stream symbol.  Because the tree travels
// with the data, decoding needs no side channel, and the end-of-stream
// codeword makes the trailing byte-alignment padding harmless.
//
// References:
//
//	<https://en.wikipedia.org/wiki/Huffman_coding>
package grin
