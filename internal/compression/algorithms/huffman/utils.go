package huffman

import (
	"errors"

	"github.com/adilg123/file-compressor/internal/compression/heap"
)

var (
	// ErrCorruptStream reports a compressed stream whose header or codes
	// cannot belong to any valid encoding.
	ErrCorruptStream = errors.New("huffman: corrupt stream")
	// ErrTruncated reports a stream that ended before every symbol announced
	// by its header was decoded. Only returned in strict mode.
	ErrTruncated = errors.New("huffman: truncated stream")
)

// bitString is a code written as '0' and '1' characters.
type bitString string

// codeTable holds the code of every byte value; absent symbols are empty.
type codeTable [256]bitString

// buildTree combines the two lowest-frequency nodes until a single root is
// left. Zero-count bytes get no leaf; a table with no symbols yields an empty
// tree and a table with one symbol yields a lone leaf.
func buildTree(freqs *FrequencyTable) huffmanTree {
	t := huffmanTree{root: noNode}
	var leaves []nodeID
	for b, c := range freqs {
		if c > 0 {
			leaves = append(leaves, t.addLeaf(byte(b), c))
		}
	}
	if len(leaves) == 0 {
		return t
	}
	pq := heap.New(leaves, t.outranks)
	for pq.Len() > 1 {
		x, _ := pq.RemoveMax()
		y, _ := pq.RemoveMax()
		pq.Insert(t.addInternal(x, y))
	}
	t.root, _ = pq.RemoveMax()
	return t
}

// generateCodes walks the tree depth-first with an explicit stack, so code
// length is never limited by call depth. Left edges append '0', right edges
// append '1'. A lone leaf gets the one-bit code "0".
func generateCodes(t *huffmanTree) codeTable {
	var table codeTable
	if t.empty() {
		return table
	}
	if root := t.nodes[t.root]; root.isLeaf() {
		table[root.symbol] = "0"
		return table
	}

	type frame struct {
		id   nodeID
		code bitString
	}
	stack := make([]frame, 0, 256)
	stack = append(stack, frame{id: t.root})
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := t.nodes[f.id]
		if node.isLeaf() {
			table[node.symbol] = f.code
			continue
		}
		stack = append(stack,
			frame{id: node.right, code: f.code + "1"},
			frame{id: node.left, code: f.code + "0"},
		)
	}
	return table
}
