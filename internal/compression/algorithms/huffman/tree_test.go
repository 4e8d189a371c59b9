package huffman

import (
	"strings"
	"testing"
)

// recursiveCodes is the straightforward recursive traversal, kept as an
// oracle for the explicit-stack version.
func recursiveCodes(t *huffmanTree) codeTable {
	var table codeTable
	var walk func(id nodeID, code bitString)
	walk = func(id nodeID, code bitString) {
		node := t.nodes[id]
		if node.isLeaf() {
			table[node.symbol] = code
			return
		}
		walk(node.left, code+"0")
		walk(node.right, code+"1")
	}
	if !t.empty() {
		walk(t.root, "")
	}
	return table
}

func tableFrom(s string) FrequencyTable {
	var freqs FrequencyTable
	countSerial(&freqs, []byte(s))
	return freqs
}

func TestBuildTreeShape(t *testing.T) {
	freqs := tableFrom("this is an example of a huffman tree")
	tree := buildTree(&freqs)
	k := freqs.Distinct()
	if len(tree.nodes) != 2*k-1 {
		t.Fatalf("%d nodes for %d symbols, want %d", len(tree.nodes), k, 2*k-1)
	}
	if tree.nodes[tree.root].freq != freqs.Total() {
		t.Fatalf("root frequency %d, want %d", tree.nodes[tree.root].freq, freqs.Total())
	}
	for id, n := range tree.nodes {
		if n.isLeaf() {
			if freqs[n.symbol] != n.freq {
				t.Fatalf("leaf %q has frequency %d, want %d", n.symbol, n.freq, freqs[n.symbol])
			}
			continue
		}
		if sum := tree.nodes[n.left].freq + tree.nodes[n.right].freq; sum != n.freq {
			t.Fatalf("node %d frequency %d, children sum %d", id, n.freq, sum)
		}
	}
}

func TestCodesArePrefixFree(t *testing.T) {
	freqs := tableFrom(strings.Repeat("abracadabra", 10) + "xyz")
	tree := buildTree(&freqs)
	codes := generateCodes(&tree)

	var present []bitString
	for b, c := range freqs {
		if c == 0 {
			if codes[b] != "" {
				t.Fatalf("absent byte %#02x got code %q", b, codes[b])
			}
			continue
		}
		present = append(present, codes[b])
	}
	for i, a := range present {
		for j, b := range present {
			if i != j && strings.HasPrefix(string(b), string(a)) {
				t.Fatalf("code %q is a prefix of %q", a, b)
			}
		}
	}
	if len(codes['a']) > len(codes['z']) {
		t.Fatalf("frequent 'a' got a longer code (%q) than rare 'z' (%q)", codes['a'], codes['z'])
	}
}

func TestStackAndRecursiveTraversalAgree(t *testing.T) {
	var fib FrequencyTable
	// Fibonacci weights give the most unbalanced tree possible.
	a, b := uint64(1), uint64(1)
	for i := 0; i < 80; i++ {
		fib[i] = a
		a, b = b, a+b
	}

	for _, freqs := range []FrequencyTable{fib, tableFrom("mississippi river"), tableFrom("q")} {
		tree := buildTree(&freqs)
		if got, want := generateCodes(&tree), recursiveCodes(&tree); got != want && freqs.Distinct() > 1 {
			t.Fatalf("stack traversal differs from recursive traversal")
		}
	}

	tree := buildTree(&fib)
	codes := generateCodes(&tree)
	longest := 0
	for _, c := range codes {
		longest = max(longest, len(c))
	}
	if longest < 64 {
		t.Fatalf("longest code is %d bits, expected a degenerate chain", longest)
	}
}

func TestSingleSymbolTree(t *testing.T) {
	freqs := tableFrom(strings.Repeat("A", 1000))
	tree := buildTree(&freqs)
	if len(tree.nodes) != 1 || !tree.nodes[tree.root].isLeaf() {
		t.Fatalf("expected a lone leaf, got %d nodes", len(tree.nodes))
	}
	codes := generateCodes(&tree)
	if codes['A'] != "0" {
		t.Fatalf("code for lone symbol = %q, want \"0\"", codes['A'])
	}
}

func TestEmptyTree(t *testing.T) {
	var freqs FrequencyTable
	tree := buildTree(&freqs)
	if !tree.empty() {
		t.Fatal("empty table built a non-empty tree")
	}
	if codes := generateCodes(&tree); codes != (codeTable{}) {
		t.Fatal("empty tree produced codes")
	}
}

func TestTreeBuildIsDeterministic(t *testing.T) {
	freqs := tableFrom("aaaabbbbccccddddeeeeffff")
	first := buildTree(&freqs)
	for i := 0; i < 10; i++ {
		again := buildTree(&freqs)
		if generateCodes(&first) != generateCodes(&again) {
			t.Fatal("equal-frequency ties produced different trees")
		}
	}
}
