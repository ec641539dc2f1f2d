package grin

import (
	"container/heap"
	"fmt"

	"github.com/chronos-tachyon/assert"
)

// Tree is an immutable Huffman code tree over the GRIN alphabet.  It is
// built either from a FrequencyTable via NewTree or from a serialized bit
// stream via ReadTree.
type Tree struct {
	root *node
}

// node is a binary tree node.  Leaves have nil children and carry a symbol;
// internal nodes carry exactly two children.  freq is meaningful only during
// construction and is zero on deserialized trees.
type node struct {
	left   *node
	right  *node
	symbol Symbol
	freq   uint64
}

func (n *node) leaf() bool {
	return n.left == nil
}

// NewTree builds the optimal prefix-code tree for the given frequency table
// using the standard greedy merge: repeatedly extract the two
// lowest-frequency nodes and replace them with an internal node summing
// their frequencies, until one node remains.  The first node extracted
// becomes the left child.
//
// A table with a single entry yields a tree that is a lone leaf; the decoder
// treats that case specially since its codeword has length zero.
func NewTree(freqs *FrequencyTable) *Tree {
	h := make(nodeHeap, 0, NumSymbols)
	var seq int
	for symbol := Symbol(0); symbol < NumSymbols; symbol++ {
		if f := freqs.Count(symbol); f != 0 {
			h = append(h, nodeAndSeq{&node{symbol: symbol, freq: f}, seq})
			seq++
		}
	}
	assert.Assertf(len(h) != 0, "frequency table has no entries")

	heap.Init(&h)
	for len(h) > 1 {
		first := heap.Pop(&h).(nodeAndSeq).node
		second := heap.Pop(&h).(nodeAndSeq).node
		parent := &node{
			left:  first,
			right: second,
			freq:  first.freq + second.freq,
		}
		heap.Push(&h, nodeAndSeq{parent, seq})
		seq++
	}
	return &Tree{root: heap.Pop(&h).(nodeAndSeq).node}
}

// maxTreeDepth bounds deserialization recursion.  A prefix tree over at most
// 257 distinct symbols is never deeper than 256 levels.
const maxTreeDepth = NumSymbols - 1

// Serialize writes the tree to bw in pre-order: a leaf is the bit 0 followed
// by its symbol as a 9-bit value, an internal node is the bit 1 followed by
// its left and then right subtree.  The shape is self-describing, so no node
// count or length prefix is written.
func (t *Tree) Serialize(bw BitWriter) error {
	return writeNode(t.root, bw)
}

func writeNode(n *node, bw BitWriter) error {
	if n.leaf() {
		if err := bw.WriteBool(false); err != nil {
			return err
		}
		return bw.WriteBits(uint64(n.symbol), symbolBits)
	}
	if err := bw.WriteBool(true); err != nil {
		return err
	}
	if err := writeNode(n.left, bw); err != nil {
		return err
	}
	return writeNode(n.right, bw)
}

// ReadTree reconstructs a Tree from its serialized form, consuming exactly
// the bits Serialize wrote.  A bit source that runs out mid-structure fails
// with ErrTruncatedTree; a leaf value above 256 or a structure deeper than
// any real tree fails with ErrMalformedTree.
func ReadTree(br BitReader) (*Tree, error) {
	root, err := readNode(br, 0)
	if err != nil {
		return nil, err
	}
	return &Tree{root: root}, nil
}

func readNode(br BitReader, depth int) (*node, error) {
	if depth > maxTreeDepth {
		return nil, fmt.Errorf("%w: deeper than %d levels", ErrMalformedTree, maxTreeDepth)
	}
	internal, err := br.ReadBool()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedTree, err)
	}
	if !internal {
		value, err := br.ReadBits(symbolBits)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncatedTree, err)
		}
		if value > uint64(EOF) {
			return nil, fmt.Errorf("%w: symbol %d out of range", ErrMalformedTree, value)
		}
		return &node{symbol: Symbol(value)}, nil
	}
	left, err := readNode(br, depth+1)
	if err != nil {
		return nil, err
	}
	right, err := readNode(br, depth+1)
	if err != nil {
		return nil, err
	}
	return &node{left: left, right: right}, nil
}

// type nodeAndSeq + type nodeHeap {{{

// nodeAndSeq tags a node with its insertion sequence number so that heap
// ordering is a total order and a single run is reproducible.
type nodeAndSeq struct {
	node *node
	seq  int
}

type nodeHeap []nodeAndSeq

func (h nodeHeap) Len() int {
	return len(h)
}

func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h nodeHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.node.freq != b.node.freq {
		return a.node.freq < b.node.freq
	}
	return a.seq < b.seq
}

func (h *nodeHeap) Push(x any) {
	*h = append(*h, x.(nodeAndSeq))
}

func (h *nodeHeap) Pop() any {
	old := *h
	last := len(old) - 1
	x := old[last]
	*h = old[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
