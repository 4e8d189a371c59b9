package huffman

// nodeID is a handle into a tree's node arena.
type nodeID int32

const noNode nodeID = -1

// symbolNode is either a leaf (symbol + frequency) or an internal node whose
// frequency is the sum of its two children.
type symbolNode struct {
	freq        uint64
	left, right nodeID
	symbol      byte
}

func (n symbolNode) isLeaf() bool {
	return n.left == noNode
}

// huffmanTree owns every node of one prefix-code tree. Children are stored as
// arena handles, so traversal never needs pointer recursion.
type huffmanTree struct {
	nodes []symbolNode
	root  nodeID
}

func (t *huffmanTree) addLeaf(symbol byte, freq uint64) nodeID {
	t.nodes = append(t.nodes, symbolNode{freq: freq, left: noNode, right: noNode, symbol: symbol})
	return nodeID(len(t.nodes) - 1)
}

func (t *huffmanTree) addInternal(left, right nodeID) nodeID {
	freq := t.nodes[left].freq + t.nodes[right].freq
	t.nodes = append(t.nodes, symbolNode{freq: freq, left: left, right: right})
	return nodeID(len(t.nodes) - 1)
}

func (t *huffmanTree) empty() bool {
	return t.root == noNode
}

// outranks orders nodes for the tree-building heap: lower frequency wins,
// and among equal frequencies the older handle wins so that the encoder and
// decoder always build the same tree.
func (t *huffmanTree) outranks(a, b nodeID) bool {
	fa, fb := t.nodes[a].freq, t.nodes[b].freq
	if fa != fb {
		return fa < fb
	}
	return a < b
}
